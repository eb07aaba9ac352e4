package api

import (
	"context"
	"fmt"
	"net/http"

	"magnecruit-client/models"
)

// GetJobSections fetches the saved job artifact for a conversation.
// Returns ErrNotFound when no artifact has been saved yet; callers seed a
// default template in that case.
func (c *Client) GetJobSections(ctx context.Context, conversationID int64) (*models.Jobs, error) {
	var job models.Jobs
	path := fmt.Sprintf("/api/job-sections/get/%d", conversationID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// sectionInput is the section shape the save endpoint accepts: headings and
// bodies keyed by section_number, no client-side IDs.
type sectionInput struct {
	SectionNumber int    `json:"section_number"`
	Heading       string `json:"heading"`
	Body          string `json:"body"`
}

type saveJobRequest struct {
	ID             int64          `json:"id,omitempty"`
	ConversationID int64          `json:"conversation_id"`
	UserID         int64          `json:"user_id,omitempty"`
	Jobrole        string         `json:"jobrole"`
	Description    string         `json:"description"`
	Sections       []sectionInput `json:"sections"`
}

// SaveJobsResult is the save response. Sections, when present, carry the
// backend-assigned section IDs the form adopts so the next save updates in
// place instead of duplicating.
type SaveJobsResult struct {
	ID       int64               `json:"id"`
	Sections []models.JobSection `json:"sections,omitempty"`
	Message  string              `json:"message,omitempty"`
}

// SaveJobSections persists the artifact. The job's ID being zero means
// "create"; the backend requires conversation and user IDs in that case.
func (c *Client) SaveJobSections(ctx context.Context, job models.Jobs) (*SaveJobsResult, error) {
	req := saveJobRequest{
		ID:             job.ID,
		ConversationID: job.ConversationID,
		UserID:         job.UserID,
		Jobrole:        job.Jobrole,
		Description:    job.Description,
		Sections:       make([]sectionInput, 0, len(job.Sections)),
	}
	for _, s := range job.Sections {
		req.Sections = append(req.Sections, sectionInput{
			SectionNumber: s.SectionNumber,
			Heading:       s.Heading,
			Body:          s.Body,
		})
	}

	var result SaveJobsResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/job-sections/save", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
