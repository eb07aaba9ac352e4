package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magnecruit-client/models"
)

func jobUpdate(conversationID int64, keys ...string) *models.JobsUpdatePayload {
	return &models.JobsUpdatePayload{
		Jobs: models.Jobs{
			ID:             42,
			ConversationID: conversationID,
			Jobrole:        "Backend Engineer",
			Sections: []models.JobSection{
				{ID: 1, SectionNumber: 1, Heading: "About the Role", Body: "..."},
			},
		},
		UpdatedFieldKeys: keys,
	}
}

func TestReduceWorkspaceDefaultsToActionsView(t *testing.T) {
	ws := NewWorkspace()
	assert.Equal(t, models.ViewActions, ws.State().ActiveView)
}

func TestReduceWorkspaceSetActiveView(t *testing.T) {
	state := ReduceWorkspace(WorkspaceState{ActiveView: models.ViewActions},
		SetActiveView{View: models.ViewJobSections})
	assert.Equal(t, models.ViewJobSections, state.ActiveView)
}

func TestReduceWorkspaceApplyJobUpdateInstallsArtifactAndHighlights(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	state := ReduceWorkspace(WorkspaceState{}, ApplyJobUpdate{Payload: jobUpdate(3, "jobrole", "section_1"), Now: now})

	require.NotNil(t, state.Job)
	assert.Equal(t, "Backend Engineer", state.Job.Jobrole)
	assert.Equal(t, []string{"jobrole", "section_1"}, state.UpdatedFields)
	assert.Equal(t, int64(1), state.UpdateSeq)
	assert.Equal(t, now, state.LastUpdateTime)
}

func TestReduceWorkspaceApplyJobUpdateLastWriteWins(t *testing.T) {
	state := ReduceWorkspace(WorkspaceState{}, ApplyJobUpdate{Payload: jobUpdate(3, "jobrole")})
	second := jobUpdate(3, "description")
	second.Jobs.Jobrole = "Platform Engineer"
	state = ReduceWorkspace(state, ApplyJobUpdate{Payload: second})

	assert.Equal(t, "Platform Engineer", state.Job.Jobrole)
	assert.Equal(t, []string{"description"}, state.UpdatedFields)
	assert.Equal(t, int64(2), state.UpdateSeq)
}

func TestReduceWorkspaceNilPayloadClearsArtifact(t *testing.T) {
	state := ReduceWorkspace(WorkspaceState{}, ApplyJobUpdate{Payload: jobUpdate(3, "jobrole")})
	state = ReduceWorkspace(state, ApplyJobUpdate{Payload: nil})

	assert.Nil(t, state.Job)
	assert.Empty(t, state.UpdatedFields)
}

func TestReduceWorkspaceClearHighlightsKeepsArtifact(t *testing.T) {
	state := ReduceWorkspace(WorkspaceState{}, ApplyJobUpdate{Payload: jobUpdate(3, "jobrole")})
	state = ReduceWorkspace(state, ClearHighlights{Seq: state.UpdateSeq})

	assert.NotNil(t, state.Job)
	assert.Empty(t, state.UpdatedFields)
}

func TestReduceWorkspaceStaleClearDoesNotEraseNewerHighlights(t *testing.T) {
	state := ReduceWorkspace(WorkspaceState{}, ApplyJobUpdate{Payload: jobUpdate(3, "jobrole")})
	staleSeq := state.UpdateSeq
	state = ReduceWorkspace(state, ApplyJobUpdate{Payload: jobUpdate(3, "description")})
	state = ReduceWorkspace(state, ClearHighlights{Seq: staleSeq})

	assert.Equal(t, []string{"description"}, state.UpdatedFields)
}

func TestWorkspaceStoreStateIsACopy(t *testing.T) {
	ws := NewWorkspace()
	ws.Dispatch(ApplyJobUpdate{Payload: jobUpdate(3, "jobrole")})

	snapshot := ws.State()
	snapshot.Job.Sections[0].Heading = "mutated"
	snapshot.UpdatedFields[0] = "mutated"

	assert.Equal(t, "About the Role", ws.State().Job.Sections[0].Heading)
	assert.Equal(t, "jobrole", ws.State().UpdatedFields[0])
}
