// Package core orchestrates the client: session resolution, the sidebar
// directory, the event channel lifecycle, and reconciliation of pushed
// events into the stores. The UI layer renders store state and calls the
// controller; it never touches the transports directly.
package core

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"magnecruit-client/api"
	"magnecruit-client/cache"
	"magnecruit-client/models"
	"magnecruit-client/socket"
	"magnecruit-client/store"
	"magnecruit-client/utils"
)

var (
	// ErrEmptyMessage is returned when a send contains only whitespace.
	ErrEmptyMessage = errors.New("core: message is empty")

	// ErrNotLoggedIn is returned by operations that need a session.
	ErrNotLoggedIn = errors.New("core: not logged in")
)

// Backend is the REST surface the controller needs.
type Backend interface {
	CheckSession(ctx context.Context) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	ListConversations(ctx context.Context) ([]models.ConversationSummary, error)
}

// EventChannel is the bidirectional channel surface the controller needs.
type EventChannel interface {
	SetAuth(*socket.AuthPayload)
	Connect(ctx context.Context) error
	Disconnect()
	Connected() bool
	RequestConversationMessages(conversationID int64) error
	SendUserMessage(content string, conversationID int64, activeView models.WorkspaceView) error
	OnConversationCreated(func(socket.ConversationCreated))
	OnConversationMessages(func(socket.ConversationMessages))
	OnAIResponse(func(models.Message))
	OnJobUpdated(func(models.JobsUpdatePayload))
	OnConnect(func())
	OnDisconnect(func(error))
}

// Controller owns the session and the event channel, and feeds the stores.
type Controller struct {
	backend Backend
	events  EventChannel
	chat    *store.Chat
	ws      *store.Workspace
	mirror  *cache.Cache // optional, nil disables mirroring
	logger  *utils.Logger

	// HighlightDelay is how long job update highlights stay visible.
	HighlightDelay time.Duration

	// ReconnectInterval is the base delay between reconnect attempts.
	ReconnectInterval time.Duration

	mu            sync.Mutex
	ctx           context.Context
	user          *models.User
	conversations []models.ConversationSummary
	reconnecting  bool

	onSession       func(*models.User)
	onConversations func([]models.ConversationSummary)
	onConnection    func(bool)
}

// NewController wires a controller to its transports and stores and
// registers the inbound event handlers.
func NewController(backend Backend, events EventChannel, chat *store.Chat, ws *store.Workspace, mirror *cache.Cache, logger *utils.Logger) *Controller {
	c := &Controller{
		backend:           backend,
		events:            events,
		chat:              chat,
		ws:                ws,
		mirror:            mirror,
		logger:            logger,
		HighlightDelay:    3 * time.Second,
		ReconnectInterval: 2 * time.Second,
		ctx:               context.Background(),
	}

	events.OnConversationCreated(c.handleConversationCreated)
	events.OnConversationMessages(c.handleConversationMessages)
	events.OnAIResponse(c.handleAIResponse)
	events.OnJobUpdated(c.handleJobUpdated)
	events.OnConnect(c.handleConnect)
	events.OnDisconnect(c.handleDisconnect)

	return c
}

// SetOnSession registers the session change listener.
func (c *Controller) SetOnSession(fn func(*models.User)) { c.onSession = fn }

// SetOnConversations registers the sidebar list change listener.
func (c *Controller) SetOnConversations(fn func([]models.ConversationSummary)) {
	c.onConversations = fn
}

// SetOnConnection registers the channel up/down listener.
func (c *Controller) SetOnConnection(fn func(bool)) { c.onConnection = fn }

// User returns the logged-in user, nil when logged out.
func (c *Controller) User() *models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// Conversations returns the current sidebar list.
func (c *Controller) Conversations() []models.ConversationSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.ConversationSummary(nil), c.conversations...)
}

// Start resolves the persisted session. A live session brings the directory
// and the event channel up; any failure lands in the logged-out state.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()

	user, err := c.backend.CheckSession(ctx)
	if err != nil {
		c.logger.Warn("Session check failed, starting logged out: %v", err)
		c.setUser(nil)
		return
	}
	if user == nil {
		c.setUser(nil)
		return
	}

	c.completeLogin(ctx, user)
}

// Login authenticates and brings the session up.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	user, err := c.backend.Login(ctx, email, password)
	if err != nil {
		return err
	}
	c.completeLogin(ctx, user)
	return nil
}

// Logout tears the session down and clears all local state. The backend
// call is best effort; local state clears regardless.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.backend.Logout(ctx); err != nil {
		c.logger.Warn("Logout request failed: %v", err)
	}
	c.clearSession()
}

func (c *Controller) completeLogin(ctx context.Context, user *models.User) {
	c.setUser(user)

	auth := &socket.AuthPayload{UserID: user.ID, Email: user.Email}
	if user.Username != nil {
		auth.Username = *user.Username
	}
	c.events.SetAuth(auth)

	if err := c.RefreshConversations(ctx); err != nil {
		// An expired session here already tore everything down; the
		// channel must stay closed while logged out.
		if errors.Is(err, api.ErrUnauthorized) {
			return
		}
		c.logger.Error("Directory fetch failed: %v", err)
		c.loadCachedConversations()
	}
	if err := c.events.Connect(ctx); err != nil {
		c.logger.Error("Event channel connect failed: %v", err)
		c.scheduleReconnect()
	}
}

func (c *Controller) clearSession() {
	c.events.SetAuth(nil)
	c.events.Disconnect()
	c.setUser(nil)
	c.setConversations(nil)
	c.chat.Dispatch(store.SelectConversation{ID: 0})
	c.chat.Dispatch(store.ClearMessages{})
	c.ws.Dispatch(store.ApplyJobUpdate{Payload: nil})
	if c.mirror != nil {
		if err := c.mirror.Clear(); err != nil {
			c.logger.Warn("Cache clear failed: %v", err)
		}
	}
}

// RefreshConversations refetches the sidebar directory. An expired session
// observed here drops the client back to the logged-out state.
func (c *Controller) RefreshConversations(ctx context.Context) error {
	list, err := c.backend.ListConversations(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			c.logger.Info("Session expired, logging out")
			c.clearSession()
		} else {
			c.setConversations(nil)
		}
		return err
	}

	c.setConversations(list)
	if c.mirror != nil {
		if err := c.mirror.ReplaceConversations(list); err != nil {
			c.logger.Warn("Cache refresh failed: %v", err)
		}
	}
	return nil
}

// SelectConversation switches the chat panel to a conversation. Selecting
// zero starts a fresh "new chat". While the channel is down the cached
// history renders and the fetch is replayed on the next connect.
func (c *Controller) SelectConversation(id int64) {
	c.chat.Dispatch(store.SelectConversation{ID: id})
	if id == 0 {
		return
	}

	if !c.events.Connected() {
		c.loadCachedMessages(id)
		return
	}

	if err := c.events.RequestConversationMessages(id); err != nil {
		if !errors.Is(err, socket.ErrNotConnected) {
			c.logger.Error("History request failed: %v", err)
			return
		}
		// The channel dropped between the check above and the request.
		c.loadCachedMessages(id)
	}
}

// loadCachedConversations seeds the sidebar from the mirror when the
// directory endpoint is unreachable.
func (c *Controller) loadCachedConversations() {
	if c.mirror == nil {
		return
	}
	cached, err := c.mirror.ListConversations()
	if err != nil {
		c.logger.Warn("Cache read failed for conversations: %v", err)
		return
	}
	if len(cached) > 0 {
		c.setConversations(cached)
	}
}

func (c *Controller) loadCachedMessages(id int64) {
	if c.mirror == nil {
		return
	}
	cached, err := c.mirror.ListMessages(id)
	if err != nil {
		c.logger.Warn("Cache read failed for conversation %d: %v", id, err)
		return
	}
	if len(cached) > 0 {
		c.chat.Dispatch(store.SetMessages{Messages: cached})
	}
}

// SendMessage performs an optimistic send: the message renders immediately
// with a placeholder id and is removed again if the channel rejects it.
func (c *Controller) SendMessage(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyMessage
	}
	if c.User() == nil {
		return ErrNotLoggedIn
	}

	selected := c.chat.State().SelectedConversationID
	optimistic := models.Message{
		ID:             models.NewTempMessageID(uuid.NewString()),
		Sender:         models.SenderUser,
		Content:        content,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		ConversationID: selected,
	}
	c.chat.Dispatch(store.AddMessage{Message: optimistic})

	activeView := c.ws.State().ActiveView
	if err := c.events.SendUserMessage(content, selected, activeView); err != nil {
		c.chat.Dispatch(store.RemoveMessage{ID: optimistic.ID})
		return utils.WrapError(err, "send message")
	}
	return nil
}

func (c *Controller) setUser(user *models.User) {
	c.mu.Lock()
	c.user = user
	c.mu.Unlock()
	if c.onSession != nil {
		c.onSession(user)
	}
}

func (c *Controller) setConversations(list []models.ConversationSummary) {
	c.mu.Lock()
	c.conversations = list
	c.mu.Unlock()
	if c.onConversations != nil {
		c.onConversations(append([]models.ConversationSummary(nil), list...))
	}
}
