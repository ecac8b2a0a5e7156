// Package reconcile bridges client-generated temporary question
// identifiers and the real identifiers the backend assigns on save.
package reconcile

import (
	"github.com/BryanM518/encuestas-cli/errs"
	"github.com/BryanM518/encuestas-cli/model"
	"github.com/BryanM518/encuestas-cli/tempid"
)

// Pending maps each temporary identifier present in an outgoing document
// to itself, until Resolve replaces the values with real identifiers. It
// is built fresh on every save attempt and discarded afterwards.
type Pending map[string]string

// PrepareForSave validates the survey and produces the outgoing document:
// a deep copy with temporary identifiers removed (the backend assigns
// real ones) and options stripped from question types that do not use
// them. Questions already carrying a real identifier pass through
// unchanged. No network call must be attempted when validation fails.
func PrepareForSave(s model.Survey) (model.Survey, Pending, error) {
	if err := s.Validate(); err != nil {
		return model.Survey{}, nil, err
	}

	out := s.Clone()
	pending := Pending{}
	for i, q := range out.Questions {
		if tempid.Is(q.ID) {
			pending[q.ID] = q.ID
			out.Questions[i].ID = ""
		}
		if !q.UsesOptions() {
			out.Questions[i].Options = nil
		} else if q.Options == nil {
			out.Questions[i].Options = []string{}
		}
	}
	return out, pending, nil
}

// ReconcileAfterSave merges the backend's saved document with the
// question order that was submitted. The backend contract is positional:
// exactly one saved question per submitted question, same order. Each
// temporary identifier is resolved to the real one assigned at its
// position, then every visibility condition still referencing a
// temporary identifier is rewritten. Conditions only reference earlier
// questions, so a single left-to-right pass suffices.
//
// On a count mismatch the document cannot be repaired safely and a
// ReconciliationError is returned; callers must not advance their local
// state to the partially-saved document.
func ReconcileAfterSave(saved model.Survey, submitted []model.Question, pending Pending) (model.Survey, error) {
	if len(saved.Questions) != len(submitted) {
		return model.Survey{}, errs.Reconciliation(
			"backend returned %d questions for %d submitted",
			len(saved.Questions), len(submitted))
	}

	final := saved.Clone()
	for i, orig := range submitted {
		if tempid.Is(orig.ID) {
			pending[orig.ID] = final.Questions[i].ID
		}
	}
	for i, q := range final.Questions {
		if q.VisibleIf == nil {
			continue
		}
		if real, ok := pending[q.VisibleIf.QuestionID]; ok {
			final.Questions[i].VisibleIf.QuestionID = real
		}
	}
	return final, nil
}
