// Package membership models the single-membership rule for sharing
// rooms: a user belongs to at most one room, and switching rooms needs an
// explicit confirmation before the prior membership is given up.
package membership

import (
	"errors"

	"github.com/google/uuid"
)

type State int

const (
	StateNone State = iota
	StateJoined
	StatePendingConfirm
)

// Decision tells the caller what a join attempt requires next. The
// workflow itself never performs membership mutations.
type Decision int

const (
	DecisionJoin Decision = iota
	DecisionNoop
	DecisionConfirm
)

var ErrNoPending = errors.New("no pending membership change")

type Workflow struct {
	state   State
	joined  uuid.UUID
	pending uuid.UUID
}

func NewWorkflow(joined uuid.UUID) *Workflow {
	if joined == uuid.Nil {
		return &Workflow{state: StateNone}
	}
	return &Workflow{state: StateJoined, joined: joined}
}

func (w *Workflow) State() State       { return w.state }
func (w *Workflow) Joined() uuid.UUID  { return w.joined }
func (w *Workflow) Pending() uuid.UUID { return w.pending }

// Join records the intent to join target. From StateNone the caller may
// join directly; joining the current room is a no-op; joining a
// different room while one is held parks the target until Confirm or
// Cancel. No counts or flags change here.
func (w *Workflow) Join(target uuid.UUID) Decision {
	switch w.state {
	case StateJoined:
		if target == w.joined {
			return DecisionNoop
		}
		w.state = StatePendingConfirm
		w.pending = target
		return DecisionConfirm
	case StatePendingConfirm:
		if target == w.joined {
			w.pending = uuid.Nil
			w.state = StateJoined
			return DecisionNoop
		}
		w.pending = target
		return DecisionConfirm
	default:
		return DecisionJoin
	}
}

// Confirm returns the parked target and the room that must be left. The
// caller performs both mutations and reports back via Committed; on
// failure the workflow stays pending so the local state never diverges
// from the backend.
func (w *Workflow) Confirm() (target, prior uuid.UUID, err error) {
	if w.state != StatePendingConfirm {
		return uuid.Nil, uuid.Nil, ErrNoPending
	}
	return w.pending, w.joined, nil
}

// Cancel discards the parked target and returns to the prior membership
// untouched.
func (w *Workflow) Cancel() error {
	if w.state != StatePendingConfirm {
		return ErrNoPending
	}
	w.pending = uuid.Nil
	w.state = StateJoined
	return nil
}

// Committed records that the join mutation (and the implicit leave, when
// switching) succeeded.
func (w *Workflow) Committed(target uuid.UUID) {
	w.state = StateJoined
	w.joined = target
	w.pending = uuid.Nil
}
