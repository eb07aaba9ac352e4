package core

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magnecruit-client/api"
	"magnecruit-client/cache"
	"magnecruit-client/models"
	"magnecruit-client/socket"
	"magnecruit-client/store"
	"magnecruit-client/utils"
)

type fakeBackend struct {
	sessionUser *models.User
	sessionErr  error
	loginUser   *models.User
	loginErr    error
	listResult  []models.ConversationSummary
	listErr     error
	logoutCalls int
}

func (f *fakeBackend) CheckSession(context.Context) (*models.User, error) {
	return f.sessionUser, f.sessionErr
}

func (f *fakeBackend) Login(context.Context, string, string) (*models.User, error) {
	return f.loginUser, f.loginErr
}

func (f *fakeBackend) Logout(context.Context) error {
	f.logoutCalls++
	return nil
}

func (f *fakeBackend) ListConversations(context.Context) ([]models.ConversationSummary, error) {
	return f.listResult, f.listErr
}

type sentMessage struct {
	content        string
	conversationID int64
	activeView     models.WorkspaceView
}

// fakeChannel records emits and lets tests fire inbound events by hand.
type fakeChannel struct {
	connected  bool
	connectErr error
	auth       *socket.AuthPayload
	requests   []int64
	sends      []sentMessage
	sendErr    error

	onCreated    func(socket.ConversationCreated)
	onMessages   func(socket.ConversationMessages)
	onAIResponse func(models.Message)
	onJobUpdated func(models.JobsUpdatePayload)
	onConnect    func()
	onDisconnect func(error)
}

func (f *fakeChannel) SetAuth(a *socket.AuthPayload) { f.auth = a }

func (f *fakeChannel) Connect(context.Context) error {
	if f.connectErr != nil {
		return f.connectErr
	}
	f.connected = true
	if f.onConnect != nil {
		f.onConnect()
	}
	return nil
}

func (f *fakeChannel) Disconnect()     { f.connected = false }
func (f *fakeChannel) Connected() bool { return f.connected }

func (f *fakeChannel) RequestConversationMessages(id int64) error {
	if !f.connected {
		return socket.ErrNotConnected
	}
	f.requests = append(f.requests, id)
	return nil
}

func (f *fakeChannel) SendUserMessage(content string, conversationID int64, view models.WorkspaceView) error {
	if !f.connected {
		return socket.ErrNotConnected
	}
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sends = append(f.sends, sentMessage{content, conversationID, view})
	return nil
}

func (f *fakeChannel) OnConversationCreated(fn func(socket.ConversationCreated)) { f.onCreated = fn }
func (f *fakeChannel) OnConversationMessages(fn func(socket.ConversationMessages)) {
	f.onMessages = fn
}
func (f *fakeChannel) OnAIResponse(fn func(models.Message))            { f.onAIResponse = fn }
func (f *fakeChannel) OnJobUpdated(fn func(models.JobsUpdatePayload))  { f.onJobUpdated = fn }
func (f *fakeChannel) OnConnect(fn func())                             { f.onConnect = fn }
func (f *fakeChannel) OnDisconnect(fn func(error))                     { f.onDisconnect = fn }

type fixture struct {
	backend *fakeBackend
	channel *fakeChannel
	chat    *store.Chat
	ws      *store.Workspace
	mirror  *cache.Cache
	ctrl    *Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger, err := utils.NewLogger(filepath.Join(t.TempDir(), "test.log"))
	require.NoError(t, err)
	t.Cleanup(func() { logger.Close() })

	mirror, err := cache.Open(filepath.Join(t.TempDir(), "mirror.db"))
	require.NoError(t, err)
	t.Cleanup(func() { mirror.Close() })

	f := &fixture{
		backend: &fakeBackend{},
		channel: &fakeChannel{},
		chat:    store.NewChat(),
		ws:      store.NewWorkspace(),
		mirror:  mirror,
	}
	f.ctrl = NewController(f.backend, f.channel, f.chat, f.ws, f.mirror, logger)
	f.ctrl.ReconnectInterval = 0 // tests drive reconnects by hand
	return f
}

func loggedInUser() *models.User {
	name := "recruiter"
	return &models.User{ID: 7, Username: &name, Email: "r@example.com"}
}

func (f *fixture) startLoggedIn(t *testing.T) {
	t.Helper()
	f.backend.sessionUser = loggedInUser()
	f.ctrl.Start(context.Background())
	require.True(t, f.channel.connected)
}

func TestStartWithLiveSessionBringsEverythingUp(t *testing.T) {
	f := newFixture(t)
	f.backend.sessionUser = loggedInUser()
	title := "Backend role"
	f.backend.listResult = []models.ConversationSummary{{ID: 3, Title: &title}}

	f.ctrl.Start(context.Background())

	require.NotNil(t, f.ctrl.User())
	assert.Equal(t, int64(7), f.ctrl.User().ID)
	require.NotNil(t, f.channel.auth)
	assert.Equal(t, "r@example.com", f.channel.auth.Email)
	assert.Equal(t, "recruiter", f.channel.auth.Username)
	assert.True(t, f.channel.connected)
	require.Len(t, f.ctrl.Conversations(), 1)

	// Directory fetch is mirrored for offline rendering.
	cached, err := f.mirror.ListConversations()
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "Backend role", cached[0].DisplayTitle())
}

func TestStartWithoutSessionStaysLoggedOut(t *testing.T) {
	f := newFixture(t)

	f.ctrl.Start(context.Background())

	assert.Nil(t, f.ctrl.User())
	assert.False(t, f.channel.connected)
}

func TestStartWithUnreachableBackendStaysLoggedOut(t *testing.T) {
	f := newFixture(t)
	f.backend.sessionErr = assert.AnError

	f.ctrl.Start(context.Background())

	assert.Nil(t, f.ctrl.User())
	assert.False(t, f.channel.connected)
}

func TestExpiredSessionOnDirectoryFetchLogsOut(t *testing.T) {
	f := newFixture(t)
	f.startLoggedIn(t)

	f.backend.listErr = api.ErrUnauthorized
	err := f.ctrl.RefreshConversations(context.Background())

	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Nil(t, f.ctrl.User())
	assert.False(t, f.channel.connected)
	assert.Empty(t, f.ctrl.Conversations())
}

func TestLogoutClearsAllLocalState(t *testing.T) {
	f := newFixture(t)
	f.startLoggedIn(t)
	f.ctrl.SelectConversation(3)
	f.channel.onAIResponse(models.Message{ID: "1", Sender: models.SenderAI, Content: "hi", ConversationID: 3})
	f.channel.onJobUpdated(models.JobsUpdatePayload{Jobs: models.Jobs{ConversationID: 3, Jobrole: "x"}})

	f.ctrl.Logout(context.Background())

	assert.Equal(t, 1, f.backend.logoutCalls)
	assert.Nil(t, f.ctrl.User())
	assert.Empty(t, f.chat.State().Messages)
	assert.Zero(t, f.chat.State().SelectedConversationID)
	assert.Nil(t, f.ws.State().Job)

	stats, err := f.mirror.GetStats()
	require.NoError(t, err)
	assert.Zero(t, stats.MessageCount)
}

func TestExpiredSessionDuringLoginNeverConnects(t *testing.T) {
	// The session check passes but the directory fetch observes a 401: the
	// client lands logged out and the channel must stay down.
	f := newFixture(t)
	f.backend.sessionUser = loggedInUser()
	f.backend.listErr = api.ErrUnauthorized

	f.ctrl.Start(context.Background())

	assert.Nil(t, f.ctrl.User())
	assert.False(t, f.channel.connected)
	assert.Nil(t, f.channel.auth)
	assert.Empty(t, f.ctrl.Conversations())
}

func TestUnreachableDirectoryFallsBackToCache(t *testing.T) {
	f := newFixture(t)
	title := "Cached role"
	require.NoError(t, f.mirror.ReplaceConversations([]models.ConversationSummary{{ID: 4, Title: &title}}))

	f.backend.sessionUser = loggedInUser()
	f.backend.listErr = assert.AnError
	f.ctrl.Start(context.Background())

	list := f.ctrl.Conversations()
	require.Len(t, list, 1)
	assert.Equal(t, "Cached role", list[0].DisplayTitle())
}

func TestSelectConversationWhileConnectedRequestsHistory(t *testing.T) {
	f := newFixture(t)
	f.startLoggedIn(t)

	f.ctrl.SelectConversation(5)

	assert.Equal(t, []int64{5}, f.channel.requests)
	assert.Equal(t, int64(5), f.chat.State().SelectedConversationID)
}

func TestSelectWhileDisconnectedReplaysExactlyOnceOnConnect(t *testing.T) {
	f := newFixture(t)
	f.startLoggedIn(t)
	require.NoError(t, f.mirror.ReplaceMessages(5, []models.Message{
		{ID: "1", Sender: models.SenderUser, Content: "cached", ConversationID: 5},
	}))

	f.channel.connected = false
	f.ctrl.SelectConversation(5)

	// No emit happened; the cached history renders instead.
	assert.Empty(t, f.channel.requests)
	require.Len(t, f.chat.State().Messages, 1)
	assert.Equal(t, "cached", f.chat.State().Messages[0].Content)

	require.NoError(t, f.channel.Connect(context.Background()))
	assert.Equal(t, []int64{5}, f.channel.requests)
}

func TestSelectWhileDisconnectedWithEmptyCacheShowsNothing(t *testing.T) {
	f := newFixture(t)
	f.startLoggedIn(t)
	f.channel.connected = false

	f.ctrl.SelectConversation(7)

	assert.Equal(t, int64(7), f.chat.State().SelectedConversationID)
	assert.Empty(t, f.chat.State().Messages)
	assert.Empty(t, f.channel.requests)

	require.NoError(t, f.channel.Connect(context.Background()))
	assert.Equal(t, []int64{7}, f.channel.requests)
}

func TestConnectWithNothingSelectedRequestsNothing(t *testing.T) {
	f := newFixture(t)
	f.startLoggedIn(t)
	assert.Empty(t, f.channel.requests)
}

func TestSendMessageOptimisticAppend(t *testing.T) {
	f := newFixture(t)
	f.startLoggedIn(t)
	f.ctrl.SelectConversation(3)
	f.ws.Dispatch(store.SetActiveView{View: models.ViewJobSections})

	require.NoError(t, f.ctrl.SendMessage("  draft the role  "))

	messages := f.chat.State().Messages
	require.Len(t, messages, 1)
	assert.True(t, messages[0].ID.IsTemp())
	assert.Equal(t, models.SenderUser, messages[0].Sender)
	assert.Equal(t, "draft the role", messages[0].Content)

	require.Len(t, f.channel.sends, 1)
	assert.Equal(t, sentMessage{"draft the role", 3, models.ViewJobSections}, f.channel.sends[0])
}

func TestSendMessageWhileDisconnectedRollsBackOptimistic(t *testing.T) {
	f := newFixture(t)
	f.startLoggedIn(t)
	f.ctrl.SelectConversation(3)
	f.channel.connected = false

	err := f.ctrl.SendMessage("lost words")

	assert.ErrorIs(t, err, socket.ErrNotConnected)
	assert.Empty(t, f.chat.State().Messages)
}

func TestSendMessageRejectsBlankAndLoggedOut(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.ctrl.SendMessage("   "), ErrEmptyMessage)
	assert.ErrorIs(t, f.ctrl.SendMessage("hello"), ErrNotLoggedIn)
}

func TestConversationCreatedAdoptsIDAndKeepsOptimistic(t *testing.T) {
	f := newFixture(t)
	f.startLoggedIn(t)

	require.NoError(t, f.ctrl.SendMessage("first message"))
	require.Len(t, f.chat.State().Messages, 1)

	f.channel.onCreated(socket.ConversationCreated{ConversationID: 9, Title: "New role"})

	state := f.chat.State()
	assert.Equal(t, int64(9), state.SelectedConversationID)
	require.Len(t, state.Messages, 1)
	assert.Equal(t, int64(9), state.Messages[0].ConversationID)

	list := f.ctrl.Conversations()
	require.NotEmpty(t, list)
	assert.Equal(t, int64(9), list[0].ID)
	assert.Equal(t, "New role", list[0].DisplayTitle())
}

func TestConversationMessagesForSelectedConversationInstalls(t *testing.T) {
	f := newFixture(t)
	f.startLoggedIn(t)
	f.ctrl.SelectConversation(5)

	f.channel.onMessages(socket.ConversationMessages{ConversationID: 5, Messages: []models.Message{
		{ID: "1", Sender: models.SenderUser, Content: "hi", ConversationID: 5},
		{ID: "2", Sender: models.SenderAI, Content: "hello", ConversationID: 5},
	}})

	assert.Len(t, f.chat.State().Messages, 2)
}

func TestConversationMessagesForStaleSelectionDropped(t *testing.T) {
	f := newFixture(t)
	f.startLoggedIn(t)
	f.ctrl.SelectConversation(5)
	f.ctrl.SelectConversation(6)

	f.channel.onMessages(socket.ConversationMessages{ConversationID: 5, Messages: []models.Message{
		{ID: "1", Sender: models.SenderUser, Content: "stale", ConversationID: 5},
	}})

	assert.Empty(t, f.chat.State().Messages)

	// Stale histories still refresh the mirror.
	cached, err := f.mirror.ListMessages(5)
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}

func TestAIResponseForOtherConversationNotRendered(t *testing.T) {
	f := newFixture(t)
	f.startLoggedIn(t)
	f.ctrl.SelectConversation(5)

	f.channel.onAIResponse(models.Message{ID: "9", Sender: models.SenderAI, Content: "elsewhere", ConversationID: 6})

	assert.Empty(t, f.chat.State().Messages)
}

func TestJobUpdatedForSelectedConversationApplies(t *testing.T) {
	f := newFixture(t)
	f.startLoggedIn(t)
	f.ctrl.SelectConversation(3)
	f.ctrl.HighlightDelay = 20 * time.Millisecond

	f.channel.onJobUpdated(models.JobsUpdatePayload{
		Jobs:             models.Jobs{ConversationID: 3, Jobrole: "Backend Engineer"},
		UpdatedFieldKeys: []string{"jobrole"},
	})

	state := f.ws.State()
	require.NotNil(t, state.Job)
	assert.Equal(t, "Backend Engineer", state.Job.Jobrole)
	assert.Equal(t, []string{"jobrole"}, state.UpdatedFields)

	assert.Eventually(t, func() bool {
		return len(f.ws.State().UpdatedFields) == 0
	}, time.Second, 10*time.Millisecond, "highlights should auto-clear")
	assert.NotNil(t, f.ws.State().Job)
}

func TestJobUpdatedForOtherConversationIgnored(t *testing.T) {
	f := newFixture(t)
	f.startLoggedIn(t)
	f.ctrl.SelectConversation(3)

	f.channel.onJobUpdated(models.JobsUpdatePayload{
		Jobs: models.Jobs{ConversationID: 8, Jobrole: "Should not appear"},
	})

	assert.Nil(t, f.ws.State().Job)
}
