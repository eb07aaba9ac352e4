package core

import (
	"time"

	"magnecruit-client/models"
	"magnecruit-client/socket"
	"magnecruit-client/store"
)

// handleConnect replays the history request for the current selection so a
// reconnect converges on server truth. Runs once per successful connect.
func (c *Controller) handleConnect() {
	if c.onConnection != nil {
		c.onConnection(true)
	}

	selected := c.chat.State().SelectedConversationID
	if selected == 0 {
		return
	}
	if err := c.events.RequestConversationMessages(selected); err != nil {
		c.logger.Warn("History replay failed for conversation %d: %v", selected, err)
	}
}

func (c *Controller) handleDisconnect(err error) {
	c.logger.Warn("Event channel down: %v", err)
	if c.onConnection != nil {
		c.onConnection(false)
	}
	c.scheduleReconnect()
}

// scheduleReconnect retries the connection with a growing delay until it
// comes back or the controller context ends. Only one loop runs at a time.
func (c *Controller) scheduleReconnect() {
	c.mu.Lock()
	if c.reconnecting || c.ReconnectInterval <= 0 {
		c.mu.Unlock()
		return
	}
	c.reconnecting = true
	ctx := c.ctx
	c.mu.Unlock()

	go func() {
		defer func() {
			c.mu.Lock()
			c.reconnecting = false
			c.mu.Unlock()
		}()

		for attempt := 1; ; attempt++ {
			delay := time.Duration(attempt) * c.ReconnectInterval
			if max := 30 * time.Second; delay > max {
				delay = max
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}

			if c.User() == nil {
				return
			}
			if err := c.events.Connect(ctx); err != nil {
				c.logger.Warn("Reconnect attempt %d failed: %v", attempt, err)
				continue
			}
			return
		}
	}()
}

// handleConversationCreated adopts the conversation the backend minted for a
// first message: it becomes the selection without clearing the optimistic
// message, and appears at the top of the sidebar.
func (c *Controller) handleConversationCreated(payload socket.ConversationCreated) {
	c.chat.Dispatch(store.AdoptConversation{ID: payload.ConversationID})

	summary := models.ConversationSummary{ID: payload.ConversationID}
	if payload.Title != "" {
		title := payload.Title
		summary.Title = &title
	}

	c.mu.Lock()
	list := append([]models.ConversationSummary{summary}, c.conversations...)
	c.mu.Unlock()
	c.setConversations(list)

	if c.mirror != nil {
		if err := c.mirror.UpsertConversation(payload.ConversationID, payload.Title); err != nil {
			c.logger.Warn("Cache upsert failed: %v", err)
		}
	}
}

// handleConversationMessages installs a fetched history. Server truth wins
// wholesale, but only for the conversation the user is still looking at.
func (c *Controller) handleConversationMessages(payload socket.ConversationMessages) {
	if c.mirror != nil {
		if err := c.mirror.ReplaceMessages(payload.ConversationID, payload.Messages); err != nil {
			c.logger.Warn("Cache replace failed: %v", err)
		}
	}

	if payload.ConversationID != c.chat.State().SelectedConversationID {
		c.logger.Debug("Dropping history for conversation %d, selection moved on", payload.ConversationID)
		return
	}
	c.chat.Dispatch(store.SetMessages{Messages: payload.Messages})
}

func (c *Controller) handleAIResponse(msg models.Message) {
	c.chat.Dispatch(store.AddMessage{Message: msg})
	if c.mirror != nil {
		if err := c.mirror.AppendMessage(msg); err != nil {
			c.logger.Warn("Cache append failed: %v", err)
		}
	}
}

// handleJobUpdated applies a pushed job artifact when it belongs to the
// selected conversation, then schedules the highlight clear.
func (c *Controller) handleJobUpdated(payload models.JobsUpdatePayload) {
	selected := c.chat.State().SelectedConversationID
	if payload.ConversationID != 0 && payload.ConversationID != selected {
		c.logger.Debug("Dropping job update for conversation %d", payload.ConversationID)
		return
	}

	c.ws.Dispatch(store.ApplyJobUpdate{Payload: &payload, Now: time.Now()})

	seq := c.ws.State().UpdateSeq
	time.AfterFunc(c.HighlightDelay, func() {
		c.ws.Dispatch(store.ClearHighlights{Seq: seq})
	})
}
