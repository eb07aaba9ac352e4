package ui

import (
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"magnecruit-client/core"
	"magnecruit-client/models"
	"magnecruit-client/socket"
	"magnecruit-client/store"
	"magnecruit-client/utils"
)

// ChatView renders the message transcript and the composer row.
type ChatView struct {
	app *App

	messages   []models.Message
	transcript *widget.List
	entry      *widget.Entry
	errorLabel *widget.Label
	container  *fyne.Container
}

// NewChatView creates the chat panel.
func NewChatView(app *App) *ChatView {
	v := &ChatView{app: app}

	v.transcript = widget.NewList(
		func() int { return len(v.messages) },
		func() fyne.CanvasObject {
			label := widget.NewLabel("message")
			label.Wrapping = fyne.TextWrapWord
			return label
		},
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			if i >= len(v.messages) {
				return
			}
			label := obj.(*widget.Label)
			label.SetText(formatMessage(v.messages[i]))
		},
	)

	v.entry = widget.NewMultiLineEntry()
	v.entry.SetPlaceHolder("Ask the recruiting assistant...")
	v.entry.Wrapping = fyne.TextWrapWord
	v.entry.SetMinRowsVisible(2)

	sendButton := widget.NewButtonWithIcon("", theme.MailSendIcon(), v.send)
	v.entry.OnSubmitted = func(string) { v.send() }

	v.errorLabel = widget.NewLabel("")
	v.errorLabel.Importance = widget.DangerImportance
	v.errorLabel.Hide()

	composer := container.NewBorder(v.errorLabel, nil, nil, sendButton, v.entry)
	v.container = container.NewBorder(nil, composer, nil, nil, v.transcript)
	return v
}

// Container returns the chat panel's root object.
func (v *ChatView) Container() fyne.CanvasObject {
	return v.container
}

// Render redraws the transcript from a store snapshot.
func (v *ChatView) Render(state store.ChatState) {
	v.messages = state.Messages
	v.transcript.Refresh()
	if len(v.messages) > 0 {
		v.transcript.ScrollToBottom()
	}
}

func (v *ChatView) send() {
	content := v.entry.Text
	v.entry.SetText("")
	v.errorLabel.Hide()

	utils.SafeGo(v.app.logger, "send message", func() {
		err := v.app.ctrl.SendMessage(content)
		if err == nil {
			return
		}
		if errors.Is(err, core.ErrEmptyMessage) {
			return
		}
		fyne.Do(func() {
			switch {
			case errors.Is(err, socket.ErrNotConnected):
				v.showError("Not connected - message not sent")
			case errors.Is(err, core.ErrNotLoggedIn):
				v.showError("Log in to send messages")
			default:
				v.showError("Message failed to send")
			}
			// Give the user their words back to retry.
			v.entry.SetText(content)
		})
	})
}

func (v *ChatView) showError(text string) {
	v.errorLabel.SetText(text)
	v.errorLabel.Show()
}

func formatMessage(msg models.Message) string {
	switch msg.Sender {
	case models.SenderUser:
		return "You: " + msg.Content
	case models.SenderAI:
		return "Assistant: " + msg.Content
	default:
		return msg.Content
	}
}
