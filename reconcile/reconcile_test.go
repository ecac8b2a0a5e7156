package reconcile

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BryanM518/encuestas-cli/errs"
	"github.com/BryanM518/encuestas-cli/model"
	"github.com/BryanM518/encuestas-cli/tempid"
)

func draftWithForwardReference() model.Survey {
	t1, t2 := tempid.New(), tempid.New()
	return model.Survey{
		Title: "Feedback",
		Questions: []model.Question{
			{ID: t1, Type: model.TypeMultipleChoice, Text: "Happy?", Options: []string{"yes", "no"}},
			{
				ID: t2, Type: model.TypeTextInput, Text: "Tell us more",
				VisibleIf: &model.VisibilityCondition{QuestionID: t1, Operator: model.OpEquals, Value: "no"},
			},
		},
	}
}

func TestPrepareForSaveStripsTemporaryIDs(t *testing.T) {
	draft := draftWithForwardReference()
	tempIDs := []string{draft.Questions[0].ID, draft.Questions[1].ID}

	outgoing, pending, err := PrepareForSave(draft)
	require.NoError(t, err)

	for i, q := range outgoing.Questions {
		assert.Empty(t, q.ID, "question %d should go out without an identifier", i)
	}
	for _, id := range tempIDs {
		assert.Equal(t, id, pending[id], "pending must map the temporary identifier to itself")
	}

	// the input document is untouched
	assert.Equal(t, tempIDs[0], draft.Questions[0].ID)
}

func TestPrepareForSaveKeepsRealIDs(t *testing.T) {
	survey := model.Survey{
		Title: "Existing",
		Questions: []model.Question{
			{ID: "real-1", Type: model.TypeTextInput, Text: "Name?"},
			{ID: tempid.New(), Type: model.TypeTextInput, Text: "New one"},
		},
	}

	outgoing, pending, err := PrepareForSave(survey)
	require.NoError(t, err)

	assert.Equal(t, "real-1", outgoing.Questions[0].ID)
	assert.Empty(t, outgoing.Questions[1].ID)
	assert.Len(t, pending, 1)
}

func TestPrepareForSaveStripsUnusedOptions(t *testing.T) {
	survey := model.Survey{
		Title: "Options",
		Questions: []model.Question{
			{ID: "q1", Type: model.TypeTextInput, Options: []string{"stale"}},
			{ID: "q2", Type: model.TypeMultipleChoice},
		},
	}

	outgoing, _, err := PrepareForSave(survey)
	require.NoError(t, err)

	assert.Nil(t, outgoing.Questions[0].Options)
	require.NotNil(t, outgoing.Questions[1].Options)
	assert.Empty(t, outgoing.Questions[1].Options)
}

func TestPrepareForSaveRejectsBadDateWindow(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	survey := model.Survey{Title: "Scheduled", StartDate: &start, EndDate: &end}

	_, _, err := PrepareForSave(survey)
	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestReconcileAfterSaveRewritesConditionReferences(t *testing.T) {
	draft := draftWithForwardReference()
	tempFirst := draft.Questions[0].ID

	outgoing, pending, err := PrepareForSave(draft)
	require.NoError(t, err)

	// the backend assigns real identifiers, in order
	saved := outgoing.Clone()
	saved.ID = "s1"
	saved.Questions[0].ID = "real-a"
	saved.Questions[1].ID = "real-b"

	final, err := ReconcileAfterSave(saved, draft.Questions, pending)
	require.NoError(t, err)

	assert.Equal(t, "real-a", pending[tempFirst])
	require.NotNil(t, final.Questions[1].VisibleIf)
	assert.Equal(t, "real-a", final.Questions[1].VisibleIf.QuestionID)

	for _, q := range final.Questions {
		assert.False(t, tempid.Is(q.ID))
		if q.VisibleIf != nil {
			assert.False(t, tempid.Is(q.VisibleIf.QuestionID),
				"condition still references a temporary identifier")
		}
	}
}

func TestReconcileAfterSaveLeavesRealReferencesAlone(t *testing.T) {
	saved := model.Survey{
		ID: "s1",
		Questions: []model.Question{
			{ID: "real-a", Type: model.TypeTextInput},
			{
				ID: "real-b", Type: model.TypeTextInput,
				VisibleIf: &model.VisibilityCondition{QuestionID: "real-a", Operator: model.OpEquals, Value: "x"},
			},
		},
	}

	final, err := ReconcileAfterSave(saved, saved.Questions, Pending{})
	require.NoError(t, err)
	assert.Equal(t, "real-a", final.Questions[1].VisibleIf.QuestionID)
}

func TestReconcileAfterSaveCountMismatch(t *testing.T) {
	draft := draftWithForwardReference()
	outgoing, pending, err := PrepareForSave(draft)
	require.NoError(t, err)

	saved := outgoing.Clone()
	saved.Questions = saved.Questions[:1] // backend dropped one

	_, err = ReconcileAfterSave(saved, draft.Questions, pending)
	var rerr *errs.ReconciliationError
	require.ErrorAs(t, err, &rerr)
	assert.True(t, strings.Contains(rerr.Error(), "1 questions for 2 submitted"), rerr.Error())
}
