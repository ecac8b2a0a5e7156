package collector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BryanM518/encuestas-cli/client"
	"github.com/BryanM518/encuestas-cli/errs"
	"github.com/BryanM518/encuestas-cli/model"
)

func conditionalSurvey() model.Survey {
	return model.Survey{
		ID:    "s1",
		Title: "Exit interview",
		Questions: []model.Question{
			{ID: "q1", Type: model.TypeMultipleChoice, Text: "Recommend us?", Options: []string{"yes", "no"}, Required: true},
			{
				ID: "q2", Type: model.TypeTextInput, Text: "What went wrong?", Required: true,
				VisibleIf: &model.VisibilityCondition{QuestionID: "q1", Operator: model.OpEquals, Value: "no"},
			},
			{ID: "q3", Type: model.TypeCheckboxGroup, Text: "Topics", Options: []string{"price", "support"}},
		},
	}
}

// submitRecorder captures the flat response payload the collector sends.
type submitRecorder struct {
	calls    int
	payloads []map[string]any
}

func (rec *submitRecorder) server(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.calls++
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		rec.payloads = append(rec.payloads, payload)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"_id":"r1"}`))
	}))
}

func TestNewInitializesAnswers(t *testing.T) {
	col := New(conditionalSurvey())

	answers := col.Answers()
	assert.Equal(t, "", answers["q1"])
	assert.Equal(t, "", answers["q2"])
	assert.Equal(t, []string{}, answers["q3"])
}

func TestVisibleFollowsAnswers(t *testing.T) {
	col := New(conditionalSurvey())

	ids := func() []string {
		var out []string
		for _, q := range col.Visible() {
			out = append(out, q.ID)
		}
		return out
	}

	assert.Equal(t, []string{"q1", "q3"}, ids())

	col.SetAnswer("q1", "no")
	assert.Equal(t, []string{"q1", "q2", "q3"}, ids())

	col.SetAnswer("q1", "yes")
	assert.Equal(t, []string{"q1", "q3"}, ids())
}

func TestToggle(t *testing.T) {
	col := New(conditionalSurvey())

	col.Toggle("q3", "price")
	assert.Equal(t, []string{"price"}, col.Answers()["q3"])

	col.Toggle("q3", "support")
	assert.Equal(t, []string{"price", "support"}, col.Answers()["q3"])

	col.Toggle("q3", "price")
	assert.Equal(t, []string{"support"}, col.Answers()["q3"])
}

func TestSubmitRequiresEmail(t *testing.T) {
	rec := &submitRecorder{}
	srv := rec.server(t)
	defer srv.Close()

	col := New(conditionalSurvey())
	col.SetAnswer("q1", "yes")

	err := col.Submit(context.Background(), client.New(srv.URL, srv.Client()), "")
	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, rec.calls, "no request may be issued on a precondition failure")
}

func TestSubmitBlocksOnRequiredVisibleQuestion(t *testing.T) {
	rec := &submitRecorder{}
	srv := rec.server(t)
	defer srv.Close()

	col := New(conditionalSurvey())
	col.SetAnswer("q1", "no") // reveals q2, which stays unanswered

	err := col.Submit(context.Background(), client.New(srv.URL, srv.Client()), "ana@example.com")
	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "What went wrong?")
	assert.Zero(t, rec.calls)
}

func TestSubmitExemptsHiddenRequiredQuestion(t *testing.T) {
	rec := &submitRecorder{}
	srv := rec.server(t)
	defer srv.Close()

	col := New(conditionalSurvey())
	col.SetAnswer("q1", "yes") // q2 stays hidden and unanswered

	err := col.Submit(context.Background(), client.New(srv.URL, srv.Client()), "ana@example.com")
	require.NoError(t, err)
	require.Equal(t, 1, rec.calls)

	payload := rec.payloads[0]
	assert.Equal(t, "ana@example.com", payload["responder_email"])
	assert.Equal(t, "yes", payload["q1"])
	assert.NotContains(t, payload, "q2", "hidden answers must not be submitted")
}

func TestSubmitClearsAnswersOnSuccess(t *testing.T) {
	rec := &submitRecorder{}
	srv := rec.server(t)
	defer srv.Close()

	col := New(conditionalSurvey())
	col.SetAnswer("q1", "yes")
	col.Toggle("q3", "price")

	require.NoError(t, col.Submit(context.Background(), client.New(srv.URL, srv.Client()), "ana@example.com"))

	assert.Equal(t, "", col.Answers()["q1"])
	assert.Equal(t, []string{}, col.Answers()["q3"])
}
