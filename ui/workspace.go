package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"magnecruit-client/models"
	"magnecruit-client/store"
)

// workspaceAction describes one tile on the actions overview grid.
type workspaceAction struct {
	view        models.WorkspaceView
	title       string
	description string
}

var workspaceActions = []workspaceAction{
	{models.ViewJobSections, "Create Job Description", "Draft and refine a structured job description with the assistant."},
	{models.ViewLinkedInPost, "LinkedIn Post", "Turn the job description into a LinkedIn announcement."},
	{models.ViewInterviewScheduling, "Interview Scheduling", "Coordinate interview slots with candidates."},
	{models.ViewCandidateManagement, "Candidate Management", "Track candidates through the pipeline."},
	{models.ViewFollowUp, "Follow-up Reminders", "Never leave a candidate waiting."},
	{models.ViewSubmitExpense, "Submit Expense", "File recruiting expenses for approval."},
}

// WorkspaceView hosts the tool views and switches between them.
type WorkspaceView struct {
	app *App

	activeView  models.WorkspaceView
	titleLabel  *widget.Label
	backButton  *widget.Button
	content     *fyne.Container
	container   *fyne.Container
	jobSections *JobSectionsView
	linkedIn    *LinkedInView
}

// NewWorkspaceView creates the workspace panel showing the actions grid.
func NewWorkspaceView(app *App) *WorkspaceView {
	v := &WorkspaceView{app: app, activeView: models.ViewActions}
	v.jobSections = NewJobSectionsView(app)
	v.linkedIn = NewLinkedInView(app)

	v.titleLabel = widget.NewLabel("Workspace")
	v.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	v.backButton = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		v.app.workspace.Dispatch(store.SetActiveView{View: models.ViewActions})
	})
	v.backButton.Hide()

	v.content = container.NewStack(v.buildActionsGrid())
	header := container.NewBorder(nil, nil, v.backButton, nil, v.titleLabel)
	v.container = container.NewBorder(header, nil, nil, nil, v.content)
	return v
}

// Container returns the workspace panel's root object.
func (v *WorkspaceView) Container() fyne.CanvasObject {
	return v.container
}

func (v *WorkspaceView) buildActionsGrid() fyne.CanvasObject {
	tiles := make([]fyne.CanvasObject, 0, len(workspaceActions))
	for _, action := range workspaceActions {
		action := action
		description := widget.NewLabel(action.description)
		description.Wrapping = fyne.TextWrapWord
		open := widget.NewButton(action.title, func() {
			v.app.workspace.Dispatch(store.SetActiveView{View: action.view})
		})
		tiles = append(tiles, container.NewVBox(open, description))
	}
	return container.NewVScroll(container.NewGridWithColumns(2, tiles...))
}

// Render reacts to workspace store changes: view switches and job pushes.
func (v *WorkspaceView) Render(state store.WorkspaceState) {
	if state.ActiveView != v.activeView {
		v.activeView = state.ActiveView
		v.showActiveView()
	}
	v.jobSections.ApplyPush(state)
	v.linkedIn.Prefill(state.Job)
}

func (v *WorkspaceView) showActiveView() {
	var content fyne.CanvasObject
	title := "Workspace"

	switch v.activeView {
	case models.ViewJobSections:
		title = "Job Description"
		content = v.jobSections.Container()
		v.jobSections.OnShow()
	case models.ViewLinkedInPost:
		title = "LinkedIn Post"
		content = v.linkedIn.Container()
		v.linkedIn.OnShow()
	case models.ViewInterviewScheduling:
		title = "Interview Scheduling"
		content = newStubPanel("Interview scheduling is on its way.",
			"Soon you will coordinate slots, send invites, and sync calendars from here.")
	case models.ViewCandidateManagement:
		title = "Candidate Management"
		content = newStubPanel("Candidate management is on its way.",
			"A pipeline board for every open role, kept up to date by the assistant.")
	case models.ViewFollowUp:
		title = "Follow-up Reminders"
		content = newStubPanel("Follow-up reminders are on their way.",
			"The assistant will nudge you before a candidate goes cold.")
	case models.ViewSubmitExpense:
		title = "Submit Expense"
		content = newStubPanel("Expense submission is on its way.",
			"File recruiting expenses without leaving the workspace.")
	default:
		content = v.buildActionsGrid()
	}

	v.titleLabel.SetText(title)
	if v.activeView == models.ViewActions {
		v.backButton.Hide()
	} else {
		v.backButton.Show()
	}
	v.content.Objects = []fyne.CanvasObject{content}
	v.content.Refresh()
}

// SetConversation tells the tool views which conversation is active.
func (v *WorkspaceView) SetConversation(id int64) {
	v.jobSections.SetConversation(id)
	v.linkedIn.SetConversation(id)
}

func newStubPanel(headline, detail string) fyne.CanvasObject {
	head := widget.NewLabel(headline)
	head.TextStyle = fyne.TextStyle{Bold: true}
	body := widget.NewLabel(detail)
	body.Wrapping = fyne.TextWrapWord
	return container.NewVBox(head, body)
}
