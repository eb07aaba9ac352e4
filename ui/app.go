// Package ui is the Fyne presentation layer. Views render store snapshots
// and call the controller; network work runs on SafeGo goroutines with
// results marshalled back through fyne.Do.
package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"magnecruit-client/api"
	"magnecruit-client/core"
	"magnecruit-client/models"
	"magnecruit-client/store"
	"magnecruit-client/utils"
)

// App represents the main application
type App struct {
	fyneApp    fyne.App
	window     fyne.Window
	config     *utils.Config
	configPath string
	logger     *utils.Logger
	backend    *api.Client
	ctrl       *core.Controller
	chat       *store.Chat
	workspace  *store.Workspace

	// UI components
	sidebar       *Sidebar
	chatView      *ChatView
	workspaceView *WorkspaceView
	statusLabel   *widget.Label

	loginShown bool
}

// NewApp creates the main window and wires the views to the stores.
func NewApp(config *utils.Config, configPath string, backend *api.Client, ctrl *core.Controller, chat *store.Chat, workspace *store.Workspace, logger *utils.Logger) *App {
	fyneApp := app.NewWithID("magnecruit-client")
	window := fyneApp.NewWindow("Magnecruit")

	window.Resize(fyne.NewSize(
		float32(config.UI.WindowWidth),
		float32(config.UI.WindowHeight),
	))

	application := &App{
		fyneApp:    fyneApp,
		window:     window,
		config:     config,
		configPath: configPath,
		logger:     logger,
		backend:    backend,
		ctrl:       ctrl,
		chat:       chat,
		workspace:  workspace,
	}

	// Save window size when closing
	window.SetOnClosed(func() {
		size := window.Canvas().Size()
		application.config.UI.WindowWidth = int(size.Width)
		application.config.UI.WindowHeight = int(size.Height)
		if err := utils.SaveConfig(application.configPath, application.config); err != nil {
			application.logger.Error("Failed to save window size: %v", err)
		}
	})

	application.buildUI()
	application.wireController()

	return application
}

// buildUI assembles the three-panel layout: sidebar, chat, workspace.
func (a *App) buildUI() {
	a.sidebar = NewSidebar(a)
	a.chatView = NewChatView(a)
	a.workspaceView = NewWorkspaceView(a)
	a.statusLabel = widget.NewLabel("Connecting...")

	right := container.NewHSplit(a.chatView.Container(), a.workspaceView.Container())
	right.SetOffset(0.45)

	split := container.NewHSplit(a.sidebar.Container(), right)
	split.SetOffset(0.18)

	content := container.NewBorder(nil, a.statusLabel, nil, nil, split)
	a.window.SetContent(content)
}

// wireController registers store and controller listeners. Listener callbacks
// arrive from network goroutines, so every widget touch goes through fyne.Do.
func (a *App) wireController() {
	a.ctrl.SetOnSession(func(user *models.User) {
		fyne.Do(func() { a.handleSession(user) })
	})
	a.ctrl.SetOnConversations(func(list []models.ConversationSummary) {
		fyne.Do(func() { a.sidebar.SetConversations(list) })
	})
	a.ctrl.SetOnConnection(func(up bool) {
		fyne.Do(func() {
			if up {
				a.statusLabel.SetText("Connected")
			} else {
				a.statusLabel.SetText("Disconnected - reconnecting...")
			}
		})
	})

	a.chat.Subscribe(func(state store.ChatState) {
		fyne.Do(func() {
			a.chatView.Render(state)
			a.sidebar.SetSelected(state.SelectedConversationID)
			a.workspaceView.SetConversation(state.SelectedConversationID)
		})
	})
	a.workspace.Subscribe(func(state store.WorkspaceState) {
		fyne.Do(func() { a.workspaceView.Render(state) })
	})
}

func (a *App) handleSession(user *models.User) {
	if user == nil {
		a.sidebar.SetAccount("")
		a.statusLabel.SetText("Not logged in")
		a.showLogin()
		return
	}
	a.loginShown = false
	a.sidebar.SetAccount(user.DisplayName())
	a.logger.Info("Logged in as %s", user.DisplayName())
}

func (a *App) showLogin() {
	if a.loginShown {
		return
	}
	a.loginShown = true
	ShowLoginDialog(a)
}

// SelectConversation is called by the sidebar.
func (a *App) SelectConversation(id int64) {
	a.ctrl.SelectConversation(id)
}

// Logout tears down the session off the UI thread.
func (a *App) Logout() {
	utils.SafeGo(a.logger, "logout", func() {
		a.ctrl.Logout(context.Background())
	})
}

// Run shows the window, resolves the session in the background, and blocks
// until the window closes.
func (a *App) Run() {
	utils.SafeGo(a.logger, "session resolve", func() {
		a.ctrl.Start(context.Background())
	})
	a.window.ShowAndRun()
}
