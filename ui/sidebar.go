package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"magnecruit-client/models"
	"magnecruit-client/utils"
)

// Sidebar shows the conversation history list with a new-chat action and the
// logged-in account row.
type Sidebar struct {
	app *App

	conversations []models.ConversationSummary
	selectedID    int64

	list         *widget.List
	accountLabel *widget.Label
	container    *fyne.Container
}

// NewSidebar creates the sidebar panel.
func NewSidebar(app *App) *Sidebar {
	s := &Sidebar{app: app}

	s.list = widget.NewList(
		func() int { return len(s.conversations) },
		func() fyne.CanvasObject { return widget.NewLabel("conversation") },
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			if i >= len(s.conversations) {
				return
			}
			label := obj.(*widget.Label)
			label.SetText(s.conversations[i].DisplayTitle())
		},
	)
	s.list.OnSelected = func(i widget.ListItemID) {
		if i < len(s.conversations) {
			s.app.SelectConversation(s.conversations[i].ID)
		}
	}

	newChatButton := widget.NewButtonWithIcon("New Chat", theme.ContentAddIcon(), func() {
		s.list.UnselectAll()
		s.app.SelectConversation(0)
	})

	refreshButton := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() {
		utils.SafeGoWithError(s.app.logger, "directory refresh", func() error {
			return s.app.ctrl.RefreshConversations(context.Background())
		}, nil)
	})

	s.accountLabel = widget.NewLabel("")
	logoutButton := widget.NewButtonWithIcon("", theme.LogoutIcon(), func() {
		s.app.Logout()
	})
	accountRow := container.NewBorder(nil, nil, nil, logoutButton, s.accountLabel)

	header := container.NewBorder(nil, nil, nil, refreshButton, newChatButton)
	s.container = container.NewBorder(header, accountRow, nil, nil, s.list)
	return s
}

// Container returns the sidebar's root object.
func (s *Sidebar) Container() fyne.CanvasObject {
	return s.container
}

// SetConversations replaces the history list.
func (s *Sidebar) SetConversations(list []models.ConversationSummary) {
	s.conversations = list
	s.list.Refresh()
	s.applySelection()
}

// SetSelected highlights the selected conversation's row.
func (s *Sidebar) SetSelected(id int64) {
	if s.selectedID == id {
		return
	}
	s.selectedID = id
	s.applySelection()
}

func (s *Sidebar) applySelection() {
	if s.selectedID == 0 {
		s.list.UnselectAll()
		return
	}
	for i, conv := range s.conversations {
		if conv.ID == s.selectedID {
			s.list.Select(i)
			return
		}
	}
}

// SetAccount updates the account row, empty when logged out.
func (s *Sidebar) SetAccount(name string) {
	if name == "" {
		s.accountLabel.SetText("Not logged in")
		s.SetConversations(nil)
	} else {
		s.accountLabel.SetText(name)
	}
}
