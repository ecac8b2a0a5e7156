package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BryanM518/encuestas-cli/errs"
)

func ts(t time.Time) *time.Time { return &t }

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name   string
		survey Survey
		want   string
	}{
		{"no window", Survey{}, StatusCreated},
		{"start in future", Survey{StartDate: ts(future)}, StatusCreated},
		{"start in past", Survey{StartDate: ts(past)}, StatusPublished},
		{"open window", Survey{StartDate: ts(past), EndDate: ts(future)}, StatusPublished},
		{"end in past", Survey{StartDate: ts(past.Add(-time.Hour)), EndDate: ts(past)}, StatusClosed},
		{"end in past without start", Survey{EndDate: ts(past)}, StatusClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.survey.DeriveStatus(now))
		})
	}
}

func TestValidateDateWindow(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	err := Survey{Title: "t", StartDate: &start, EndDate: &end}.Validate()
	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)

	assert.NoError(t, Survey{Title: "t", StartDate: &end, EndDate: &start}.Validate())
	assert.NoError(t, Survey{Title: "t", StartDate: &start, EndDate: &start}.Validate())
	assert.Error(t, Survey{}.Validate(), "empty title must not validate")
}

func TestCloneIsDeep(t *testing.T) {
	start := time.Now()
	survey := Survey{
		Title:     "orig",
		StartDate: &start,
		Questions: []Question{
			{
				ID: "q1", Options: []string{"a"},
				VisibleIf: &VisibilityCondition{QuestionID: "q0", Operator: OpEquals, Value: "x"},
			},
		},
	}

	clone := survey.Clone()
	clone.Questions[0].Options[0] = "changed"
	clone.Questions[0].VisibleIf.QuestionID = "other"
	*clone.StartDate = start.Add(time.Hour)

	assert.Equal(t, "a", survey.Questions[0].Options[0])
	assert.Equal(t, "q0", survey.Questions[0].VisibleIf.QuestionID)
	assert.True(t, survey.StartDate.Equal(start))
}

func TestUsesOptions(t *testing.T) {
	assert.True(t, Question{Type: TypeMultipleChoice}.UsesOptions())
	assert.True(t, Question{Type: TypeCheckboxGroup}.UsesOptions())
	assert.False(t, Question{Type: TypeTextInput}.UsesOptions())
	assert.False(t, Question{Type: TypeNumberInput}.UsesOptions())
	assert.False(t, Question{Type: TypeSatisfactionScale}.UsesOptions())
}
