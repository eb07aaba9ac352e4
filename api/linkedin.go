package api

import (
	"context"
	"net/http"
)

// GeneratePostRequest is the body of POST /api/linkedin-post/generate.
type GeneratePostRequest struct {
	ConversationID        int64  `json:"conversation_id"`
	JobTitle              string `json:"job_title"`
	CompanyName           string `json:"company_name"`
	JobDescriptionSummary string `json:"job_description_summary"`
	Tone                  string `json:"tone"`
	Length                string `json:"length"`
}

type generatePostResponse struct {
	LinkedInPost string `json:"linkedin_post"`
}

// GenerateLinkedInPost asks the backend to draft a LinkedIn job post from the
// conversation's saved job artifact plus the caller-supplied company context.
func (c *Client) GenerateLinkedInPost(ctx context.Context, req GeneratePostRequest) (string, error) {
	var resp generatePostResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/linkedin-post/generate", req, &resp); err != nil {
		return "", err
	}
	return resp.LinkedInPost, nil
}
