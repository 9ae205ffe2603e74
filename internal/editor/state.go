// Package editor holds the curation editor's state, the actions that change it,
// and the view model derived from it.
package editor

import (
	"time"

	"github.com/rcliao/curate/internal/model"
)

// Phase tracks a form submission: Idle → Validating → ConfirmPending → Submitting → Idle.
// ConfirmPending is also used while a delete or clear-all awaits confirmation.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseConfirmPending
	PhaseSubmitting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseConfirmPending:
		return "confirm-pending"
	case PhaseSubmitting:
		return "submitting"
	}
	return "unknown"
}

// PendingKind is the operation waiting behind a confirmation.
type PendingKind int

const (
	PendingSubmit PendingKind = iota
	PendingDelete
	PendingClearAll
)

// Pending is an operation awaiting the user's yes/no.
type Pending struct {
	Kind    PendingKind
	Prompt  string
	Record  model.Record
	EntryID string
}

// Flash is a message that disappears on its own once Until has passed.
type Flash struct {
	Text  string
	Until time.Time
}

func (f *Flash) live(now time.Time) bool {
	return f != nil && now.Before(f.Until)
}

// State is the editor's page-lifetime state. Dataset mirrors the backend and
// is only ever replaced wholesale.
type State struct {
	Format     model.FormatMode
	Dataset    []model.Entry
	Page       int
	PerPage    int
	Validation *model.ValidationResult
	Validating bool
	Phase      Phase
	Pending    *Pending
	Form       Form

	Banner *Flash
	Notice *Flash
	Alert  string
	Detail *model.Entry
}

func newState(perPage int) State {
	return State{
		Format:  model.FormatChat,
		Dataset: []model.Entry{},
		Page:    1,
		PerPage: perPage,
		Form:    NewForm(),
	}
}

func (s State) clone() State {
	out := s
	out.Dataset = append([]model.Entry(nil), s.Dataset...)
	out.Form = s.Form.clone()
	if s.Validation != nil {
		v := *s.Validation
		out.Validation = &v
	}
	if s.Pending != nil {
		p := *s.Pending
		out.Pending = &p
	}
	if s.Detail != nil {
		d := *s.Detail
		out.Detail = &d
	}
	return out
}

func (s *State) clampPage() {
	s.Page = ClampPage(s.Page, len(s.Dataset), s.PerPage)
}
