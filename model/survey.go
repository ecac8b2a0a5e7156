package model

import (
	"time"

	"github.com/BryanM518/encuestas-cli/errs"
)

// DeriveStatus computes the survey status from its scheduling window.
// Status is never authored directly: a survey is closed once end_date has
// passed, published once start_date has passed, and created before that.
func (s Survey) DeriveStatus(now time.Time) string {
	if s.EndDate != nil && s.EndDate.Before(now) {
		return StatusClosed
	}
	if s.StartDate != nil && !s.StartDate.After(now) {
		return StatusPublished
	}
	return StatusCreated
}

// Validate checks the local save preconditions. A malformed scheduling
// window blocks the save before any network call.
func (s Survey) Validate() error {
	if s.Title == "" {
		return errs.Validation("survey title must not be empty")
	}
	if s.StartDate != nil && s.EndDate != nil && s.StartDate.After(*s.EndDate) {
		return errs.Validation("start_date %s is after end_date %s",
			s.StartDate.Format(time.RFC3339), s.EndDate.Format(time.RFC3339))
	}
	return nil
}

// Question returns the question with the given ID, or false.
func (s Survey) Question(id string) (Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Clone returns a deep copy, so callers can build an outgoing document
// without mutating the editing session's copy.
func (s Survey) Clone() Survey {
	out := s
	if s.StartDate != nil {
		t := *s.StartDate
		out.StartDate = &t
	}
	if s.EndDate != nil {
		t := *s.EndDate
		out.EndDate = &t
	}
	out.Questions = make([]Question, len(s.Questions))
	for i, q := range s.Questions {
		out.Questions[i] = q.Clone()
	}
	return out
}

func (q Question) Clone() Question {
	out := q
	if q.Options != nil {
		out.Options = append([]string(nil), q.Options...)
	}
	if q.VisibleIf != nil {
		cond := *q.VisibleIf
		out.VisibleIf = &cond
	}
	return out
}
