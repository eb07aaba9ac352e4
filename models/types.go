package models

import "strconv"

// User is the logged-in user as returned by the auth endpoints. It is a
// read-only DTO; the backend owns the account.
type User struct {
	ID       int64   `json:"id"`
	Username *string `json:"username"`
	Email    string  `json:"email"`
}

// DisplayName returns the username if set, otherwise the email.
func (u *User) DisplayName() string {
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return u.Email
}

// ConversationSummary is one entry in the sidebar history list.
type ConversationSummary struct {
	ID        int64   `json:"id"`
	Title     *string `json:"title"`
	CreatedAt string  `json:"created_at"`
}

// DisplayTitle returns the title, falling back to "Chat <id>" for untitled
// conversations (the backend leaves titles null until the assistant names them).
func (c *ConversationSummary) DisplayTitle() string {
	if c.Title != nil && *c.Title != "" {
		return *c.Title
	}
	return "Chat " + strconv.FormatInt(c.ID, 10)
}

// Message sender tags as they appear on the wire.
const (
	SenderUser   = "user"
	SenderAI     = "ai"
	SenderSystem = "system"
)

// Message is a single chat message. ConversationID is zero for optimistic
// messages sent before a conversation exists.
type Message struct {
	ID             MessageID `json:"id"`
	Sender         string    `json:"sender"`
	Content        string    `json:"content"`
	Timestamp      string    `json:"timestamp,omitempty"`
	ConversationID int64     `json:"conversation_id,omitempty"`
}

// JobSection is one ordered section of a job description. SectionNumber is
// dense and 1-based within its job.
type JobSection struct {
	ID            int64  `json:"id"`
	SectionNumber int    `json:"section_number"`
	Heading       string `json:"heading"`
	Body          string `json:"body"`
}

// Jobs is the structured job artifact co-edited by the user and the assistant.
type Jobs struct {
	ID             int64        `json:"id,omitempty"`
	ConversationID int64        `json:"conversation_id,omitempty"`
	UserID         int64        `json:"user_id,omitempty"`
	Jobrole        string       `json:"jobrole"`
	Description    string       `json:"description"`
	Sections       []JobSection `json:"sections"`
	CreatedAt      string       `json:"created_at,omitempty"`
}

// JobsUpdatePayload is the job_updated event body: the full artifact plus the
// keys the assistant changed, used to drive the transient highlight.
type JobsUpdatePayload struct {
	Jobs
	UpdatedFieldKeys []string `json:"updated_field_keys,omitempty"`
}

// WorkspaceView selects which form is shown in the workspace panel.
type WorkspaceView string

const (
	ViewActions             WorkspaceView = "actions"
	ViewJobSections         WorkspaceView = "job-sections"
	ViewLinkedInPost        WorkspaceView = "linkedin-post-creation"
	ViewInterviewScheduling WorkspaceView = "interview-scheduling"
	ViewCandidateManagement WorkspaceView = "candidate-management"
	ViewFollowUp            WorkspaceView = "follow-up"
	ViewSubmitExpense       WorkspaceView = "submit-expense"
)
