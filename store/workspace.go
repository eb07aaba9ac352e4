package store

import (
	"sync"
	"time"

	"magnecruit-client/models"
)

// WorkspaceState is the workspace panel's state: which tool view is active
// and the latest AI-produced job artifact with its change highlights.
type WorkspaceState struct {
	ActiveView models.WorkspaceView

	// Job is the most recent AI-generated artifact, nil when none received.
	Job *models.Jobs

	// UpdatedFields lists the field keys changed by the latest update, used
	// by views to highlight what the assistant just touched.
	UpdatedFields []string

	// UpdateSeq increments on every ApplyJobUpdate. Highlight clears carry
	// the sequence they were scheduled for, so a late clear cannot erase the
	// highlights of a newer update.
	UpdateSeq int64

	LastUpdateTime time.Time
}

// WorkspaceAction is a workspace state transition request.
type WorkspaceAction interface{ isWorkspaceAction() }

// SetActiveView switches the visible workspace tool.
type SetActiveView struct{ View models.WorkspaceView }

// ApplyJobUpdate installs a pushed job artifact. A nil payload clears the
// artifact and its highlights.
type ApplyJobUpdate struct {
	Payload *models.JobsUpdatePayload
	Now     time.Time
}

// ClearHighlights removes update highlights. When Seq is non-zero the clear
// only applies if no newer update has arrived since.
type ClearHighlights struct{ Seq int64 }

func (SetActiveView) isWorkspaceAction()   {}
func (ApplyJobUpdate) isWorkspaceAction()  {}
func (ClearHighlights) isWorkspaceAction() {}

// ReduceWorkspace applies one action to the workspace state.
func ReduceWorkspace(state WorkspaceState, action WorkspaceAction) WorkspaceState {
	switch a := action.(type) {
	case SetActiveView:
		state.ActiveView = a.View

	case ApplyJobUpdate:
		if a.Payload == nil {
			state.Job = nil
			state.UpdatedFields = nil
			return state
		}
		job := a.Payload.Jobs
		state.Job = &job
		state.UpdatedFields = append([]string(nil), a.Payload.UpdatedFieldKeys...)
		state.UpdateSeq++
		state.LastUpdateTime = a.Now

	case ClearHighlights:
		if a.Seq != 0 && a.Seq != state.UpdateSeq {
			return state
		}
		state.UpdatedFields = nil
	}
	return state
}

// Workspace wraps WorkspaceState with dispatch and subscription.
type Workspace struct {
	mu        sync.Mutex
	state     WorkspaceState
	listeners []func(WorkspaceState)
}

// NewWorkspace creates a workspace store showing the actions overview.
func NewWorkspace() *Workspace {
	return &Workspace{state: WorkspaceState{ActiveView: models.ViewActions}}
}

// State returns a snapshot of the current state.
func (w *Workspace) State() WorkspaceState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

// Dispatch applies an action and notifies subscribers.
func (w *Workspace) Dispatch(action WorkspaceAction) {
	w.mu.Lock()
	w.state = ReduceWorkspace(w.state, action)
	snapshot := w.snapshotLocked()
	listeners := make([]func(WorkspaceState), len(w.listeners))
	copy(listeners, w.listeners)
	w.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

// Subscribe registers a change listener and returns an unsubscribe func.
func (w *Workspace) Subscribe(fn func(WorkspaceState)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
	index := len(w.listeners) - 1
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.listeners[index] = func(WorkspaceState) {}
	}
}

func (w *Workspace) snapshotLocked() WorkspaceState {
	snapshot := w.state
	snapshot.UpdatedFields = append([]string(nil), w.state.UpdatedFields...)
	if w.state.Job != nil {
		job := *w.state.Job
		job.Sections = append([]models.JobSection(nil), w.state.Job.Sections...)
		snapshot.Job = &job
	}
	return snapshot
}
