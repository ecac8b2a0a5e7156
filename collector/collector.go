// Package collector owns one response-collection session: the answer
// set's lifecycle from survey load to successful submission.
package collector

import (
	"context"

	"github.com/BryanM518/encuestas-cli/client"
	"github.com/BryanM518/encuestas-cli/errs"
	"github.com/BryanM518/encuestas-cli/model"
	"github.com/BryanM518/encuestas-cli/visibility"
)

type Collector struct {
	survey  model.Survey
	answers model.Answers
}

// New starts a session for a loaded survey with every answer initialized
// empty: an empty selection for checkbox_group, an empty string
// otherwise.
func New(s model.Survey) *Collector {
	c := &Collector{survey: s}
	c.reset()
	return c
}

func (c *Collector) reset() {
	c.answers = model.Answers{}
	for _, q := range c.survey.Questions {
		if q.Type == model.TypeCheckboxGroup {
			c.answers[q.ID] = []string{}
		} else {
			c.answers[q.ID] = ""
		}
	}
}

func (c *Collector) Survey() model.Survey {
	return c.survey
}

// Answers returns the live answer set. Mutations must go through
// SetAnswer and Toggle so the checkbox invariant holds.
func (c *Collector) Answers() model.Answers {
	return c.answers
}

// SetAnswer records a scalar answer for a question.
func (c *Collector) SetAnswer(questionID, value string) {
	c.answers[questionID] = value
}

// Toggle adds the option to a checkbox_group answer, or removes it when
// already selected.
func (c *Collector) Toggle(questionID, option string) {
	current, _ := c.answers[questionID].([]string)
	for i, o := range current {
		if o == option {
			c.answers[questionID] = append(current[:i:i], current[i+1:]...)
			return
		}
	}
	c.answers[questionID] = append(current, option)
}

// Visible recomputes the visible questions from the current answers.
// It must be called again after every mutation; there is no cache.
func (c *Collector) Visible() []model.Question {
	return visibility.Visible(c.survey, c.answers)
}

// Submit validates and sends the current answers. Required questions
// that are currently hidden are exempt, and only visible questions'
// answers go into the payload. On success the answer set is cleared for
// a fresh session.
func (c *Collector) Submit(ctx context.Context, api *client.Client, responderEmail string) error {
	if responderEmail == "" {
		return errs.Validation("responder email is required")
	}

	visible := c.Visible()
	for _, q := range visible {
		if q.Required && !visibility.Answered(q, c.answers) {
			return errs.Validation("question %q is required", q.Text)
		}
	}

	payload := model.Answers{}
	for _, q := range visible {
		payload[q.ID] = c.answers[q.ID]
	}

	if err := api.SubmitResponse(ctx, c.survey.ID, responderEmail, payload); err != nil {
		return err
	}

	c.reset()
	return nil
}
