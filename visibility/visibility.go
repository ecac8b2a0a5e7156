// Package visibility evaluates conditional-logic rules over a response
// session's answers. Everything here is a pure function of its inputs:
// the caller re-runs it after every answer mutation.
package visibility

import (
	"fmt"
	"strings"

	"github.com/BryanM518/encuestas-cli/model"
)

// IsVisible reports whether q should be shown given the current answers.
// Questions with no condition, or a condition with no target, are always
// visible. Unknown operators are treated as visible on purpose: a
// malformed condition must never silently hide required content and
// block submission.
func IsVisible(q model.Question, answers model.Answers) bool {
	cond := q.VisibleIf
	if cond == nil || cond.QuestionID == "" {
		return true
	}

	answer := normalize(answers[cond.QuestionID])
	expected := normalize(cond.Value)

	operator := cond.Operator
	if operator == "" {
		operator = model.OpEquals
	}

	switch operator {
	case model.OpEquals:
		return strings.Join(answer, ",") == strings.Join(expected, ",")
	case model.OpNotEquals:
		return strings.Join(answer, ",") != strings.Join(expected, ",")
	case model.OpIn:
		return overlaps(answer, expected)
	case model.OpNotIn:
		return !overlaps(answer, expected)
	default:
		return true
	}
}

// Visible returns the currently visible questions in their original
// order. There is no cached state: conditions only look at raw answers,
// so chained conditions resolve correctly by recomputing every question
// independently.
func Visible(s model.Survey, answers model.Answers) []model.Question {
	visible := make([]model.Question, 0, len(s.Questions))
	for _, q := range s.Questions {
		if IsVisible(q, answers) {
			visible = append(visible, q)
		}
	}
	return visible
}

// Answered reports whether q has a non-empty answer. An empty string or
// an empty selection counts as unanswered.
func Answered(q model.Question, answers model.Answers) bool {
	for _, v := range normalize(answers[q.ID]) {
		if v != "" {
			return true
		}
	}
	return false
}

// normalize coerces an answer or expected value into a sequence of
// strings: nil becomes empty, a scalar becomes one element, sequences
// keep their order.
func normalize(v any) []string {
	switch v := v.(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		out := make([]string, len(v))
		for i, e := range v {
			out[i] = toString(e)
		}
		return out
	default:
		return []string{toString(v)}
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func overlaps(answer, expected []string) bool {
	for _, a := range answer {
		for _, e := range expected {
			if a == e {
				return true
			}
		}
	}
	return false
}
