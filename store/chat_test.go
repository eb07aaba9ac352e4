package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magnecruit-client/models"
)

func msg(id models.MessageID, sender string, content string, conversationID int64) models.Message {
	return models.Message{ID: id, Sender: sender, Content: content, ConversationID: conversationID}
}

func TestReduceChatSetMessagesReplacesList(t *testing.T) {
	state := ChatState{SelectedConversationID: 3, Messages: []models.Message{
		msg("1", models.SenderUser, "old", 3),
	}}

	state = ReduceChat(state, SetMessages{Messages: []models.Message{
		msg("10", models.SenderUser, "hi", 3),
		msg("11", models.SenderAI, "hello", 3),
	}})

	require.Len(t, state.Messages, 2)
	assert.Equal(t, models.MessageID("10"), state.Messages[0].ID)
	assert.Equal(t, models.MessageID("11"), state.Messages[1].ID)
}

func TestReduceChatAddMessageDropsForeignConversation(t *testing.T) {
	state := ChatState{SelectedConversationID: 3}

	state = ReduceChat(state, AddMessage{Message: msg("1", models.SenderAI, "for 3", 3)})
	state = ReduceChat(state, AddMessage{Message: msg("2", models.SenderAI, "for 7", 7)})

	require.Len(t, state.Messages, 1)
	assert.Equal(t, models.MessageID("1"), state.Messages[0].ID)
}

func TestReduceChatAddMessageDropsWhenNothingSelected(t *testing.T) {
	state := ChatState{}

	state = ReduceChat(state, AddMessage{Message: msg("2", models.SenderAI, "for 7", 7)})

	assert.Empty(t, state.Messages)
}

func TestReduceChatAddMessageAllowsUntaggedMessage(t *testing.T) {
	// Optimistic sends in a not-yet-created conversation carry no
	// conversation id; they must still render.
	state := ChatState{}

	state = ReduceChat(state, AddMessage{Message: msg(models.NewTempMessageID("a"), models.SenderUser, "first", 0)})

	assert.Len(t, state.Messages, 1)
}

func TestReduceChatAddMessageIgnoresDuplicateID(t *testing.T) {
	state := ChatState{SelectedConversationID: 3}

	state = ReduceChat(state, AddMessage{Message: msg("5", models.SenderAI, "once", 3)})
	state = ReduceChat(state, AddMessage{Message: msg("5", models.SenderAI, "twice", 3)})

	require.Len(t, state.Messages, 1)
	assert.Equal(t, "once", state.Messages[0].Content)
}

func TestReduceChatRemoveMessage(t *testing.T) {
	temp := models.NewTempMessageID("x")
	state := ChatState{SelectedConversationID: 3, Messages: []models.Message{
		msg("1", models.SenderUser, "keep", 3),
		msg(temp, models.SenderUser, "pending", 3),
	}}

	state = ReduceChat(state, RemoveMessage{ID: temp})

	require.Len(t, state.Messages, 1)
	assert.Equal(t, models.MessageID("1"), state.Messages[0].ID)
}

func TestReduceChatSelectConversationClearsMessages(t *testing.T) {
	state := ChatState{SelectedConversationID: 3, Messages: []models.Message{
		msg("1", models.SenderUser, "old", 3),
	}}

	state = ReduceChat(state, SelectConversation{ID: 7})

	assert.Equal(t, int64(7), state.SelectedConversationID)
	assert.Empty(t, state.Messages)
}

func TestReduceChatReselectingSameConversationKeepsMessages(t *testing.T) {
	state := ChatState{SelectedConversationID: 3, Messages: []models.Message{
		msg("1", models.SenderUser, "old", 3),
	}}

	state = ReduceChat(state, SelectConversation{ID: 3})

	assert.Len(t, state.Messages, 1)
}

func TestReduceChatSwitchNeverLeaksForeignMessages(t *testing.T) {
	// After any switch sequence, every rendered message belongs to the
	// selected conversation.
	state := ChatState{}
	state = ReduceChat(state, SelectConversation{ID: 3})
	state = ReduceChat(state, SetMessages{Messages: []models.Message{msg("1", models.SenderUser, "a", 3)}})
	state = ReduceChat(state, SelectConversation{ID: 7})
	state = ReduceChat(state, AddMessage{Message: msg("2", models.SenderAI, "late for 3", 3)})
	state = ReduceChat(state, SetMessages{Messages: []models.Message{msg("9", models.SenderUser, "b", 7)}})

	for _, m := range state.Messages {
		assert.Equal(t, state.SelectedConversationID, m.ConversationID)
	}
}

func TestReduceChatAdoptConversationKeepsAndRetagsMessages(t *testing.T) {
	temp := models.NewTempMessageID("first")
	state := ChatState{Messages: []models.Message{
		msg(temp, models.SenderUser, "first message", 0),
	}}

	state = ReduceChat(state, AdoptConversation{ID: 9})

	assert.Equal(t, int64(9), state.SelectedConversationID)
	require.Len(t, state.Messages, 1)
	assert.Equal(t, int64(9), state.Messages[0].ConversationID)
}

func TestChatStoreNotifiesSubscribers(t *testing.T) {
	chat := NewChat()
	var seen []int
	chat.Subscribe(func(s ChatState) { seen = append(seen, len(s.Messages)) })

	chat.Dispatch(SelectConversation{ID: 3})
	chat.Dispatch(AddMessage{Message: msg("1", models.SenderUser, "hi", 3)})

	assert.Equal(t, []int{0, 1}, seen)
	assert.Len(t, chat.State().Messages, 1)
}

func TestChatStoreUnsubscribeStopsNotifications(t *testing.T) {
	chat := NewChat()
	calls := 0
	unsubscribe := chat.Subscribe(func(ChatState) { calls++ })

	chat.Dispatch(SelectConversation{ID: 1})
	unsubscribe()
	chat.Dispatch(SelectConversation{ID: 2})

	assert.Equal(t, 1, calls)
}

func TestChatStoreStateIsACopy(t *testing.T) {
	chat := NewChat()
	chat.Dispatch(SelectConversation{ID: 3})
	chat.Dispatch(AddMessage{Message: msg("1", models.SenderUser, "hi", 3)})

	snapshot := chat.State()
	snapshot.Messages[0].Content = "mutated"

	assert.Equal(t, "hi", chat.State().Messages[0].Content)
}
