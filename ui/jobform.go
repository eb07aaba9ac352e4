package ui

import (
	"errors"

	"magnecruit-client/api"
	"magnecruit-client/models"
)

var (
	// ErrLastSection is returned when removing would leave zero sections.
	ErrLastSection = errors.New("a job description needs at least one section")

	// ErrMissingJobrole is returned by Validate when the role field is blank.
	ErrMissingJobrole = errors.New("job role is required")

	// ErrNoConversation is returned by Validate when no conversation is
	// selected; the artifact is always scoped to one.
	ErrNoConversation = errors.New("select or start a conversation first")
)

// defaultSectionHeadings is the starter template for a conversation without
// a saved artifact.
var defaultSectionHeadings = []string{
	"About the Company / Role",
	"Responsibilities",
	"Required Qualifications",
	"Benefits / Offer Details",
	"Additional Information",
}

// JobForm is the editable state behind the job sections view. It is plain
// data so the edit rules can be exercised without a window.
type JobForm struct {
	ConversationID int64
	JobID          int64
	UserID         int64
	Jobrole        string
	Description    string
	Sections       []models.JobSection
}

// NewJobForm returns an empty form bound to a conversation.
func NewJobForm(conversationID int64) *JobForm {
	return &JobForm{ConversationID: conversationID}
}

// SeedDefault fills the form with the five-section starter template.
func (f *JobForm) SeedDefault() {
	f.JobID = 0
	f.Jobrole = ""
	f.Description = ""
	f.Sections = make([]models.JobSection, 0, len(defaultSectionHeadings))
	for i, heading := range defaultSectionHeadings {
		f.Sections = append(f.Sections, models.JobSection{SectionNumber: i + 1, Heading: heading})
	}
}

// SeedLoadError fills the form with a single placeholder section shown when
// the artifact fetch failed for a reason other than "not saved yet".
func (f *JobForm) SeedLoadError() {
	f.JobID = 0
	f.Sections = []models.JobSection{{SectionNumber: 1, Heading: "Error Loading Data"}}
}

// LoadArtifact installs a saved or pushed artifact into the form.
func (f *JobForm) LoadArtifact(job *models.Jobs) {
	f.JobID = job.ID
	if job.ConversationID != 0 {
		f.ConversationID = job.ConversationID
	}
	if job.UserID != 0 {
		f.UserID = job.UserID
	}
	f.Jobrole = job.Jobrole
	f.Description = job.Description
	f.Sections = append([]models.JobSection(nil), job.Sections...)
	f.Renumber()
}

// AddSection appends an empty section with the next number.
func (f *JobForm) AddSection() {
	f.Sections = append(f.Sections, models.JobSection{SectionNumber: len(f.Sections) + 1})
}

// RemoveSection deletes one section and renumbers the rest. The last
// remaining section cannot be removed.
func (f *JobForm) RemoveSection(index int) error {
	if len(f.Sections) <= 1 {
		return ErrLastSection
	}
	if index < 0 || index >= len(f.Sections) {
		return nil
	}
	f.Sections = append(f.Sections[:index], f.Sections[index+1:]...)
	f.Renumber()
	return nil
}

// Renumber rewrites section numbers densely from 1 in display order.
func (f *JobForm) Renumber() {
	for i := range f.Sections {
		f.Sections[i].SectionNumber = i + 1
	}
}

// Validate checks the form is saveable.
func (f *JobForm) Validate() error {
	if f.ConversationID == 0 {
		return ErrNoConversation
	}
	if f.Jobrole == "" {
		return ErrMissingJobrole
	}
	return nil
}

// ToJob converts the form into the save payload.
func (f *JobForm) ToJob() models.Jobs {
	return models.Jobs{
		ID:             f.JobID,
		ConversationID: f.ConversationID,
		UserID:         f.UserID,
		Jobrole:        f.Jobrole,
		Description:    f.Description,
		Sections:       append([]models.JobSection(nil), f.Sections...),
	}
}

// AdoptSaveResult takes the backend-assigned IDs from a save response so the
// next save updates the same artifact.
func (f *JobForm) AdoptSaveResult(result *api.SaveJobsResult) {
	if result == nil {
		return
	}
	if result.ID != 0 {
		f.JobID = result.ID
	}
	if len(result.Sections) > 0 {
		f.Sections = append([]models.JobSection(nil), result.Sections...)
		f.Renumber()
	}
}
