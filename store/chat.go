// Package store holds the client-side application state. Each store is a
// small state container: a pure reducer over (state, action) plus change
// subscriptions for the presentation layer. State transitions are total
// functions; invalid actions leave the state unchanged rather than erroring.
package store

import (
	"sync"

	"magnecruit-client/models"
)

// ChatState is the chat panel's state: the selected conversation and its
// ordered message list. The list always belongs to the selected conversation.
type ChatState struct {
	SelectedConversationID int64 // 0 means no conversation selected
	Messages               []models.Message
}

// ChatAction is a chat state transition request.
type ChatAction interface{ isChatAction() }

// SetMessages replaces the message list wholesale (bulk history load).
type SetMessages struct{ Messages []models.Message }

// AddMessage appends one message. Messages tagged with a conversation other
// than the selected one are dropped, as are duplicate IDs.
type AddMessage struct{ Message models.Message }

// RemoveMessage deletes a message by ID (optimistic rollback).
type RemoveMessage struct{ ID models.MessageID }

// ClearMessages empties the message list.
type ClearMessages struct{}

// SelectConversation changes the selection; a change clears the message list.
// ID zero deselects ("new chat" state).
type SelectConversation struct{ ID int64 }

// AdoptConversation sets the selection to a conversation the backend just
// minted for an in-flight first message. Unlike SelectConversation it keeps
// the message list, retagging untagged messages with the new id.
type AdoptConversation struct{ ID int64 }

func (SetMessages) isChatAction()        {}
func (AddMessage) isChatAction()         {}
func (RemoveMessage) isChatAction()      {}
func (ClearMessages) isChatAction()      {}
func (SelectConversation) isChatAction() {}
func (AdoptConversation) isChatAction()  {}

// ReduceChat applies one action to the chat state and returns the next state.
// It never mutates its input.
func ReduceChat(state ChatState, action ChatAction) ChatState {
	switch a := action.(type) {
	case SetMessages:
		state.Messages = append([]models.Message(nil), a.Messages...)

	case AddMessage:
		// A message claiming a different conversation than the current
		// selection is stale or misrouted; drop it.
		if a.Message.ConversationID != 0 && a.Message.ConversationID != state.SelectedConversationID {
			return state
		}
		for _, existing := range state.Messages {
			if existing.ID == a.Message.ID {
				return state
			}
		}
		state.Messages = append(append([]models.Message(nil), state.Messages...), a.Message)

	case RemoveMessage:
		kept := make([]models.Message, 0, len(state.Messages))
		for _, msg := range state.Messages {
			if msg.ID != a.ID {
				kept = append(kept, msg)
			}
		}
		state.Messages = kept

	case ClearMessages:
		state.Messages = nil

	case SelectConversation:
		if a.ID != state.SelectedConversationID {
			state.SelectedConversationID = a.ID
			state.Messages = nil
		}

	case AdoptConversation:
		state.SelectedConversationID = a.ID
		retagged := make([]models.Message, len(state.Messages))
		for i, m := range state.Messages {
			if m.ConversationID == 0 {
				m.ConversationID = a.ID
			}
			retagged[i] = m
		}
		state.Messages = retagged
	}
	return state
}

// Chat wraps ChatState with dispatch and subscription.
type Chat struct {
	mu        sync.Mutex
	state     ChatState
	listeners []func(ChatState)
}

// NewChat creates an empty chat store.
func NewChat() *Chat {
	return &Chat{}
}

// State returns a snapshot of the current state.
func (c *Chat) State() ChatState {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := c.state
	snapshot.Messages = append([]models.Message(nil), c.state.Messages...)
	return snapshot
}

// Dispatch applies an action and notifies subscribers.
func (c *Chat) Dispatch(action ChatAction) {
	c.mu.Lock()
	c.state = ReduceChat(c.state, action)
	snapshot := c.state
	snapshot.Messages = append([]models.Message(nil), c.state.Messages...)
	listeners := make([]func(ChatState), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

// Subscribe registers a change listener and returns an unsubscribe func.
func (c *Chat) Subscribe(fn func(ChatState)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
	index := len(c.listeners) - 1
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.listeners[index] = func(ChatState) {}
	}
}
