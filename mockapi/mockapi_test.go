package mockapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BryanM518/encuestas-cli/model"
)

// seedSurvey injects a survey record directly, bypassing HTTP.
func seedSurvey(s *Server, survey model.Survey, owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surveys[survey.ID] = &surveyRecord{survey: survey, owner: owner}
}

func TestPublicViewDerivesStatus(t *testing.T) {
	server := NewServer("secret")
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	server.now = func() time.Time { return now }

	past := now.Add(-time.Hour)
	ended := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	tests := []struct {
		name   string
		survey model.Survey
		want   string
	}{
		{"scheduled", model.Survey{ID: "a", Title: "t", StartDate: &future}, model.StatusCreated},
		{"open", model.Survey{ID: "b", Title: "t", StartDate: &past, EndDate: &future}, model.StatusPublished},
		{"ended", model.Survey{ID: "c", Title: "t", StartDate: &past, EndDate: &ended}, model.StatusClosed},
	}

	handler := server.Router()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seedSurvey(server, tt.survey, "ana")

			req := httptest.NewRequest(http.MethodGet, "/api/survey_api/surveys/public/"+tt.survey.ID, nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)

			var got model.Survey
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

func TestSubmitRejectedOutsideWindow(t *testing.T) {
	server := NewServer("secret")
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	server.now = func() time.Time { return now }

	future := now.Add(time.Hour)
	seedSurvey(server, model.Survey{
		ID: "s1", Title: "t", StartDate: &future,
		Questions: []model.Question{{ID: "q1", Type: model.TypeTextInput, Text: "x"}},
	}, "ana")

	payload, _ := json.Marshal(map[string]any{"responder_email": "bob@example.com", "q1": "hi"})
	req := httptest.NewRequest(http.MethodPost, "/api/survey_api/surveys/s1/responses", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "created")
}

func TestSubmitDropsUnknownQuestions(t *testing.T) {
	server := NewServer("secret")
	past := time.Now().Add(-time.Hour)
	seedSurvey(server, model.Survey{
		ID: "s1", Title: "t", StartDate: &past,
		Questions: []model.Question{{ID: "q1", Type: model.TypeTextInput, Text: "x"}},
	}, "ana")

	payload, _ := json.Marshal(map[string]any{
		"responder_email": "bob@example.com",
		"q1":              "hi",
		"q-unknown":       "junk",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/survey_api/surveys/s1/responses", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	server.mu.Lock()
	responses := server.responses["s1"]
	server.mu.Unlock()
	require.Len(t, responses, 1)
	assert.Equal(t, map[string]any{"q1": "hi"}, responses[0].Answers)
}

func TestSubmitRequiresEmail(t *testing.T) {
	server := NewServer("secret")
	past := time.Now().Add(-time.Hour)
	seedSurvey(server, model.Survey{ID: "s1", Title: "t", StartDate: &past}, "ana")

	payload, _ := json.Marshal(map[string]any{"q1": "hi"})
	req := httptest.NewRequest(http.MethodPost, "/api/survey_api/surveys/s1/responses", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "responder_email")
}

func TestAssignQuestionIDsReplacesTemporaryOnes(t *testing.T) {
	survey := model.Survey{Questions: []model.Question{
		{ID: ""},
		{ID: "temp_17123abc"},
		{ID: "real-1"},
	}}
	assignQuestionIDs(&survey)

	assert.NotEmpty(t, survey.Questions[0].ID)
	assert.NotContains(t, survey.Questions[1].ID, "temp_")
	assert.Equal(t, "real-1", survey.Questions[2].ID)
}
