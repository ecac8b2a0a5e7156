// Package editor drives one save attempt of a survey document through
// validation, the network call and identifier reconciliation.
package editor

import (
	"context"

	"github.com/BryanM518/encuestas-cli/client"
	"github.com/BryanM518/encuestas-cli/log"
	"github.com/BryanM518/encuestas-cli/model"
	"github.com/BryanM518/encuestas-cli/reconcile"
)

// State of a save attempt. Done and the failure states are terminal; a
// new attempt starts over at Idle.
type State int

const (
	Idle State = iota
	Validating
	ValidationFailed
	Sending
	SendFailed
	Reconciling
	ReconciliationFailed
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case ValidationFailed:
		return "validation_failed"
	case Sending:
		return "sending"
	case SendFailed:
		return "send_failed"
	case Reconciling:
		return "reconciling"
	case ReconciliationFailed:
		return "reconciliation_failed"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

type Editor struct {
	client *client.Client
	state  State
}

func New(c *client.Client) *Editor {
	return &Editor{client: c}
}

// State reports where the last save attempt ended up.
func (e *Editor) State() State {
	return e.state
}

// Save runs one attempt end to end and returns the reconciled document.
// A survey without an ID is created, otherwise it is replaced wholesale.
// On any failure the input document is returned unchanged so callers
// never observe a partially-rewritten state.
func (e *Editor) Save(ctx context.Context, session client.Session, s model.Survey) (model.Survey, error) {
	e.state = Validating
	outgoing, pending, err := reconcile.PrepareForSave(s)
	if err != nil {
		e.state = ValidationFailed
		return s, err
	}

	e.state = Sending
	var saved model.Survey
	if s.ID == "" {
		saved, err = e.client.CreateSurvey(ctx, session, outgoing)
	} else {
		saved, err = e.client.ReplaceSurvey(ctx, session, outgoing)
	}
	if err != nil {
		e.state = SendFailed
		return s, err
	}

	e.state = Reconciling
	final, err := reconcile.ReconcileAfterSave(saved, s.Questions, pending)
	if err != nil {
		e.state = ReconciliationFailed
		log.Errorf("editor.save.reconcile: %s", err)
		return s, err
	}

	e.state = Done
	log.Debugf("editor.save: survey %s at version %d", final.ID, final.Version)
	return final, nil
}
