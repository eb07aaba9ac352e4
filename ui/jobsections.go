package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"magnecruit-client/api"
	"magnecruit-client/models"
	"magnecruit-client/store"
	"magnecruit-client/utils"
)

const bannerDuration = 5 * time.Second

// JobSectionsView is the job description editor: role and summary fields
// plus the ordered section list, saved to the backend and co-edited by the
// assistant over the event channel.
type JobSectionsView struct {
	app *App

	form           *JobForm
	conversationID int64
	loaded         bool
	appliedPushSeq int64
	bannerSeq      int64

	jobroleEntry     *widget.Entry
	descriptionEntry *widget.Entry
	sectionsBox      *fyne.Container
	banner           *widget.Label
	highlightLabel   *widget.Label
	container        *fyne.Container
}

// NewJobSectionsView creates the editor, empty until a conversation loads.
func NewJobSectionsView(app *App) *JobSectionsView {
	v := &JobSectionsView{app: app, form: NewJobForm(0)}

	v.jobroleEntry = widget.NewEntry()
	v.jobroleEntry.SetPlaceHolder("Job role, e.g. Backend Engineer")
	v.jobroleEntry.OnChanged = func(text string) { v.form.Jobrole = text }

	v.descriptionEntry = widget.NewMultiLineEntry()
	v.descriptionEntry.SetPlaceHolder("One-paragraph summary of the role")
	v.descriptionEntry.Wrapping = fyne.TextWrapWord
	v.descriptionEntry.OnChanged = func(text string) { v.form.Description = text }

	v.sectionsBox = container.NewVBox()

	v.banner = widget.NewLabel("")
	v.banner.Hide()
	v.highlightLabel = widget.NewLabel("")
	v.highlightLabel.Importance = widget.HighImportance
	v.highlightLabel.Hide()

	addButton := widget.NewButtonWithIcon("Add Section", theme.ContentAddIcon(), func() {
		v.form.AddSection()
		v.renderSections()
	})
	saveButton := widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), v.save)
	exportJSON := widget.NewButton("Export JSON", func() { v.export(utils.FormatJSON) })
	exportMarkdown := widget.NewButton("Export Markdown", func() { v.export(utils.FormatMarkdown) })
	actions := container.NewHBox(addButton, saveButton, exportJSON, exportMarkdown)

	formTop := container.NewVBox(
		v.banner,
		v.highlightLabel,
		widget.NewForm(
			widget.NewFormItem("Role", v.jobroleEntry),
			widget.NewFormItem("Summary", v.descriptionEntry),
		),
	)

	body := container.NewVScroll(container.NewVBox(formTop, v.sectionsBox, actions))
	v.container = container.NewStack(body)
	return v
}

// Container returns the editor's root object.
func (v *JobSectionsView) Container() fyne.CanvasObject {
	return v.container
}

// SetConversation rebinds the editor to a conversation. The next showing
// refetches; an already visible editor refetches immediately.
func (v *JobSectionsView) SetConversation(id int64) {
	if id == v.conversationID {
		return
	}
	v.conversationID = id
	v.form = NewJobForm(id)
	v.loaded = false
	if v.visible() {
		v.fetch()
	} else {
		v.renderForm()
	}
}

func (v *JobSectionsView) visible() bool {
	return v.app.workspace.State().ActiveView == models.ViewJobSections
}

// OnShow fetches the saved artifact the first time the view opens for the
// current conversation.
func (v *JobSectionsView) OnShow() {
	if !v.loaded {
		v.fetch()
	}
}

// fetch loads the artifact off the UI thread. Responses for a conversation
// the user has already left are discarded, not cancelled.
func (v *JobSectionsView) fetch() {
	requestID := v.conversationID
	v.loaded = true

	if requestID == 0 {
		v.form.SeedDefault()
		v.renderForm()
		return
	}

	utils.SafeGo(v.app.logger, "job sections fetch", func() {
		job, err := v.app.backend.GetJobSections(context.Background(), requestID)
		fyne.Do(func() {
			if v.conversationID != requestID {
				return
			}
			switch {
			case err == nil:
				v.form.LoadArtifact(job)
			case errors.Is(err, api.ErrNotFound):
				v.form.SeedDefault()
			default:
				v.app.logger.Error("Job sections fetch failed: %v", err)
				v.form.SeedLoadError()
				v.showBanner("Could not load the saved job description", true)
			}
			v.renderForm()
		})
	})
}

// ApplyPush installs an assistant-pushed artifact and shows the transient
// updated-fields highlight.
func (v *JobSectionsView) ApplyPush(state store.WorkspaceState) {
	if state.Job == nil || state.UpdateSeq == v.appliedPushSeq {
		if len(state.UpdatedFields) == 0 {
			v.highlightLabel.Hide()
		}
		return
	}
	v.appliedPushSeq = state.UpdateSeq

	v.form.LoadArtifact(state.Job)
	v.loaded = true
	v.renderForm()

	if len(state.UpdatedFields) > 0 {
		v.highlightLabel.SetText("Assistant updated: " + strings.Join(state.UpdatedFields, ", "))
		v.highlightLabel.Show()
	}
}

func (v *JobSectionsView) save() {
	if err := v.form.Validate(); err != nil {
		v.showBanner(err.Error(), true)
		return
	}
	if user := v.app.ctrl.User(); user != nil {
		v.form.UserID = user.ID
	}

	job := v.form.ToJob()
	utils.SafeGo(v.app.logger, "job sections save", func() {
		result, err := v.app.backend.SaveJobSections(context.Background(), job)
		fyne.Do(func() {
			if err != nil {
				v.app.logger.Error("Job sections save failed: %v", err)
				v.showBanner("Save failed, try again", true)
				return
			}
			v.form.AdoptSaveResult(result)
			v.renderSections()
			message := result.Message
			if message == "" {
				message = "Job description saved"
			}
			v.showBanner(message, false)
		})
	})
}

func (v *JobSectionsView) export(format utils.ExportFormat) {
	if v.form.Jobrole == "" {
		v.showBanner("Nothing to export yet", true)
		return
	}
	job := v.form.ToJob()

	utils.SafeGo(v.app.logger, "job export", func() {
		dir, err := utils.ResolveExportDir(v.app.config.Data.ExportDir)
		if err == nil {
			path := filepath.Join(dir, utils.GenerateExportFilename(job.Jobrole, format))
			if format == utils.FormatJSON {
				err = utils.ExportJobToJSON(job, path)
			} else {
				err = utils.ExportJobToMarkdown(job, path)
			}
			if err == nil {
				fyne.Do(func() { v.showBanner("Exported to "+path, false) })
				return
			}
		}
		v.app.logger.Error("Export failed: %v", err)
		fyne.Do(func() { v.showBanner("Export failed", true) })
	})
}

// showBanner displays a status line that clears itself after a few seconds.
func (v *JobSectionsView) showBanner(text string, isError bool) {
	v.bannerSeq++
	seq := v.bannerSeq
	v.banner.SetText(text)
	if isError {
		v.banner.Importance = widget.DangerImportance
	} else {
		v.banner.Importance = widget.SuccessImportance
	}
	v.banner.Show()

	time.AfterFunc(bannerDuration, func() {
		fyne.Do(func() {
			if v.bannerSeq == seq {
				v.banner.Hide()
			}
		})
	})
}

// renderForm redraws every field from the form model.
func (v *JobSectionsView) renderForm() {
	v.jobroleEntry.SetText(v.form.Jobrole)
	v.descriptionEntry.SetText(v.form.Description)
	v.renderSections()
}

// renderSections rebuilds the section rows.
func (v *JobSectionsView) renderSections() {
	rows := make([]fyne.CanvasObject, 0, len(v.form.Sections))
	for i := range v.form.Sections {
		rows = append(rows, v.sectionRow(i))
	}
	v.sectionsBox.Objects = rows
	v.sectionsBox.Refresh()
}

func (v *JobSectionsView) sectionRow(index int) fyne.CanvasObject {
	section := &v.form.Sections[index]

	heading := widget.NewEntry()
	heading.SetText(section.Heading)
	heading.OnChanged = func(text string) { section.Heading = text }

	body := widget.NewMultiLineEntry()
	body.SetText(section.Body)
	body.Wrapping = fyne.TextWrapWord
	body.OnChanged = func(text string) { section.Body = text }

	remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		if err := v.form.RemoveSection(index); err != nil {
			v.showBanner(err.Error(), true)
			return
		}
		v.renderSections()
	})

	numberLabel := widget.NewLabel("Section " + strconv.Itoa(section.SectionNumber))
	header := container.NewBorder(nil, nil, numberLabel, remove, heading)
	return container.NewVBox(header, body, widget.NewSeparator())
}
