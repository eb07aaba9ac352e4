package api

import (
	"context"
	"net/http"

	"magnecruit-client/models"
)

// ListConversations fetches the sidebar history for the logged-in user,
// newest first. Returns ErrUnauthorized when the session is gone.
func (c *Client) ListConversations(ctx context.Context) ([]models.ConversationSummary, error) {
	var conversations []models.ConversationSummary
	if err := c.doJSON(ctx, http.MethodGet, "/api/chat/conversations", nil, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}
