package socket

import (
	"encoding/json"

	"magnecruit-client/models"
)

// Outbound event names.
const (
	EventAuthenticate        = "authenticate"
	EventRequestConversation = "request_conversation_messages"
	EventSendUserMessage     = "send_user_message"
)

// Inbound event names.
const (
	EventConversationCreated  = "conversation_created"
	EventConversationMessages = "conversation_messages"
	EventAIResponse           = "ai_response"
	EventJobUpdated           = "job_updated"
)

// ConversationCreated announces the conversation minted for a first message.
type ConversationCreated struct {
	ConversationID int64  `json:"conversationId"`
	Title          string `json:"title"`
}

// ConversationMessages carries the full history of one conversation.
type ConversationMessages struct {
	ConversationID int64            `json:"conversationId"`
	Messages       []models.Message `json:"messages"`
}

type requestMessagesPayload struct {
	ConversationID int64 `json:"conversationId"`
}

type sendUserMessagePayload struct {
	Content        string `json:"content"`
	ConversationID *int64 `json:"conversationId"`
	ActiveView     string `json:"activeView"`
}

// RequestConversationMessages asks the backend for a conversation's history.
func (c *Client) RequestConversationMessages(conversationID int64) error {
	return c.Emit(EventRequestConversation, requestMessagesPayload{ConversationID: conversationID})
}

// SendUserMessage submits a chat message. A zero conversationID sends a null
// id, which tells the backend to create a new conversation.
func (c *Client) SendUserMessage(content string, conversationID int64, activeView models.WorkspaceView) error {
	payload := sendUserMessagePayload{Content: content, ActiveView: string(activeView)}
	if conversationID != 0 {
		payload.ConversationID = &conversationID
	}
	return c.Emit(EventSendUserMessage, payload)
}

// OnConversationCreated registers a typed conversation_created handler.
func (c *Client) OnConversationCreated(fn func(ConversationCreated)) {
	c.On(EventConversationCreated, func(data json.RawMessage) {
		var payload ConversationCreated
		if err := json.Unmarshal(data, &payload); err != nil {
			c.logger.Warn("Bad conversation_created payload: %v", err)
			return
		}
		fn(payload)
	})
}

// OnConversationMessages registers a typed conversation_messages handler.
func (c *Client) OnConversationMessages(fn func(ConversationMessages)) {
	c.On(EventConversationMessages, func(data json.RawMessage) {
		var payload ConversationMessages
		if err := json.Unmarshal(data, &payload); err != nil {
			c.logger.Warn("Bad conversation_messages payload: %v", err)
			return
		}
		fn(payload)
	})
}

// OnAIResponse registers a typed ai_response handler.
func (c *Client) OnAIResponse(fn func(models.Message)) {
	c.On(EventAIResponse, func(data json.RawMessage) {
		var payload models.Message
		if err := json.Unmarshal(data, &payload); err != nil {
			c.logger.Warn("Bad ai_response payload: %v", err)
			return
		}
		fn(payload)
	})
}

// OnJobUpdated registers a typed job_updated handler.
func (c *Client) OnJobUpdated(fn func(models.JobsUpdatePayload)) {
	c.On(EventJobUpdated, func(data json.RawMessage) {
		var payload models.JobsUpdatePayload
		if err := json.Unmarshal(data, &payload); err != nil {
			c.logger.Warn("Bad job_updated payload: %v", err)
			return
		}
		fn(payload)
	})
}
