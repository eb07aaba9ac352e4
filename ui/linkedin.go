package ui

import (
	"context"
	"errors"
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"magnecruit-client/api"
	"magnecruit-client/models"
	"magnecruit-client/utils"
)

var (
	toneOptions   = []string{"professional", "friendly", "enthusiastic", "formal"}
	lengthOptions = []string{"short", "medium", "long"}
)

// LinkedInView turns a saved job description into a LinkedIn announcement.
type LinkedInView struct {
	app *App

	conversationID int64
	prefilled      bool

	titleEntry   *widget.Entry
	companyEntry *widget.Entry
	summaryEntry *widget.Entry
	toneSelect   *widget.Select
	lengthSelect *widget.Select
	result       *widget.Entry
	errorLabel   *widget.Label
	copyButton   *widget.Button
	shareButton  *widget.Button
	container    *fyne.Container
}

// NewLinkedInView creates the generator form.
func NewLinkedInView(app *App) *LinkedInView {
	v := &LinkedInView{app: app}

	v.titleEntry = widget.NewEntry()
	v.titleEntry.SetPlaceHolder("Job title")
	v.companyEntry = widget.NewEntry()
	v.companyEntry.SetPlaceHolder("Company name")
	v.summaryEntry = widget.NewMultiLineEntry()
	v.summaryEntry.SetPlaceHolder("Short summary of the role (optional)")
	v.summaryEntry.Wrapping = fyne.TextWrapWord

	v.toneSelect = widget.NewSelect(toneOptions, nil)
	v.toneSelect.SetSelected("professional")
	v.lengthSelect = widget.NewSelect(lengthOptions, nil)
	v.lengthSelect.SetSelected("medium")

	v.result = widget.NewMultiLineEntry()
	v.result.Wrapping = fyne.TextWrapWord
	v.result.SetMinRowsVisible(8)
	v.result.Disable()

	v.errorLabel = widget.NewLabel("")
	v.errorLabel.Importance = widget.DangerImportance
	v.errorLabel.Hide()

	generateButton := widget.NewButtonWithIcon("Generate Post", theme.MediaPlayIcon(), v.generate)
	v.copyButton = widget.NewButtonWithIcon("Copy", theme.ContentCopyIcon(), v.copy)
	v.copyButton.Disable()
	v.shareButton = widget.NewButtonWithIcon("Open in LinkedIn", theme.MailForwardIcon(), v.openComposer)
	v.shareButton.Disable()

	form := widget.NewForm(
		widget.NewFormItem("Job Title", v.titleEntry),
		widget.NewFormItem("Company", v.companyEntry),
		widget.NewFormItem("Summary", v.summaryEntry),
		widget.NewFormItem("Tone", v.toneSelect),
		widget.NewFormItem("Length", v.lengthSelect),
	)

	actions := container.NewHBox(generateButton, v.copyButton, v.shareButton)
	v.container = container.NewStack(container.NewVScroll(container.NewVBox(
		v.errorLabel, form, actions, v.result,
	)))
	return v
}

// Container returns the generator's root object.
func (v *LinkedInView) Container() fyne.CanvasObject {
	return v.container
}

// SetConversation rebinds the form; fields refill on the next showing.
func (v *LinkedInView) SetConversation(id int64) {
	if id == v.conversationID {
		return
	}
	v.conversationID = id
	v.prefilled = false
	v.result.SetText("")
	v.copyButton.Disable()
	v.shareButton.Disable()
	v.errorLabel.Hide()
}

// OnShow prefills from the saved artifact, best effort. No artifact yet
// just leaves the fields blank.
func (v *LinkedInView) OnShow() {
	if v.prefilled || v.conversationID == 0 {
		return
	}
	v.prefilled = true
	requestID := v.conversationID

	utils.SafeGo(v.app.logger, "linkedin prefill", func() {
		job, err := v.app.backend.GetJobSections(context.Background(), requestID)
		if err != nil {
			if !errors.Is(err, api.ErrNotFound) {
				v.app.logger.Warn("LinkedIn prefill failed: %v", err)
			}
			return
		}
		fyne.Do(func() {
			if v.conversationID != requestID {
				return
			}
			v.Prefill(job)
		})
	})
}

// Prefill fills empty fields from an artifact without clobbering user input.
func (v *LinkedInView) Prefill(job *models.Jobs) {
	if job == nil {
		return
	}
	if v.titleEntry.Text == "" && job.Jobrole != "" {
		v.titleEntry.SetText(job.Jobrole)
	}
	if v.summaryEntry.Text == "" && job.Description != "" {
		v.summaryEntry.SetText(job.Description)
	}
}

func (v *LinkedInView) generate() {
	v.errorLabel.Hide()
	switch {
	case v.conversationID == 0:
		v.showError("Select or start a conversation first")
		return
	case v.titleEntry.Text == "":
		v.showError("Job title is required")
		return
	case v.companyEntry.Text == "":
		v.showError("Company name is required")
		return
	}

	req := api.GeneratePostRequest{
		ConversationID:        v.conversationID,
		JobTitle:              v.titleEntry.Text,
		CompanyName:           v.companyEntry.Text,
		JobDescriptionSummary: v.summaryEntry.Text,
		Tone:                  v.toneSelect.Selected,
		Length:                v.lengthSelect.Selected,
	}

	utils.SafeGo(v.app.logger, "linkedin generate", func() {
		post, err := v.app.backend.GenerateLinkedInPost(context.Background(), req)
		fyne.Do(func() {
			if err != nil {
				v.app.logger.Error("LinkedIn generation failed: %v", err)
				v.showError("Generation failed, try again")
				return
			}
			v.result.Enable()
			v.result.SetText(post)
			v.result.Disable()
			v.copyButton.Enable()
			v.shareButton.Enable()
		})
	})
}

func (v *LinkedInView) copy() {
	v.app.window.Clipboard().SetContent(v.result.Text)
}

// openComposer opens the LinkedIn share box in the system browser with the
// generated post preloaded.
func (v *LinkedInView) openComposer() {
	share, err := url.Parse("https://www.linkedin.com/feed/")
	if err != nil {
		return
	}
	query := share.Query()
	query.Set("shareActive", "true")
	query.Set("text", v.result.Text)
	share.RawQuery = query.Encode()

	if err := v.app.fyneApp.OpenURL(share); err != nil {
		v.app.logger.Error("Could not open browser: %v", err)
		v.showError("Could not open the browser")
	}
}

func (v *LinkedInView) showError(text string) {
	v.errorLabel.SetText(text)
	v.errorLabel.Show()
}
