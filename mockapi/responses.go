package mockapi

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/BryanM518/encuestas-cli/httpx"
	"github.com/BryanM518/encuestas-cli/log"
	"github.com/BryanM518/encuestas-cli/model"
)

// submitResponse accepts the flat payload: responder_email plus one
// entry per answered question ID. Only published surveys accept
// responses.
func (s *Server) submitResponse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload map[string]any
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "responses.submit.parse_body", "invalid request body")
		return
	}

	email, _ := payload["responder_email"].(string)
	if email == "" {
		httpx.Detail(w, r, http.StatusUnprocessableEntity, "responder_email is required")
		return
	}
	delete(payload, "responder_email")

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.surveys[id]
	if !ok {
		httpx.LogNotFound(w, r, "responses.submit", id)
		return
	}
	if status := rec.survey.DeriveStatus(s.now()); status != model.StatusPublished {
		httpx.Detail(w, r, http.StatusConflict, "survey is %s", status)
		return
	}

	// drop answers for unknown questions, keep the rest as sent
	answers := map[string]any{}
	for qid, value := range payload {
		if _, ok := rec.survey.Question(qid); ok {
			answers[qid] = value
		}
	}

	response := model.Response{
		ID:             uuid.NewString(),
		ResponderEmail: email,
		SubmittedAt:    s.now(),
		Answers:        answers,
	}
	s.responses[id] = append(s.responses[id], response)

	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, map[string]string{"_id": response.ID})
}

func (s *Server) listResponses(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	rec, ok := s.surveys[id]
	responses := append([]model.Response(nil), s.responses[id]...)
	s.mu.Unlock()
	if !ok || rec.owner != credential(r) {
		httpx.LogNotFound(w, r, "responses.list", id)
		return
	}
	if responses == nil {
		responses = []model.Response{}
	}
	render.JSON(w, r, responses)
}

// exportResponses renders CSV, one column per question in survey order.
// The xlsx format of the real backend is not replicated here.
func (s *Server) exportResponses(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	format := r.URL.Query().Get("format")

	if format == "xlsx" {
		httpx.Detail(w, r, http.StatusNotImplemented, "xlsx export is not available in the mock server")
		return
	}
	if format != "" && format != "csv" {
		httpx.Detail(w, r, http.StatusUnprocessableEntity, "unsupported format %q", format)
		return
	}

	s.mu.Lock()
	rec, ok := s.surveys[id]
	responses := append([]model.Response(nil), s.responses[id]...)
	s.mu.Unlock()
	if !ok || rec.owner != credential(r) {
		httpx.LogNotFound(w, r, "responses.export", id)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	out := csv.NewWriter(w)

	header := []string{"responder_email", "submitted_at"}
	for _, q := range rec.survey.Questions {
		header = append(header, q.Text)
	}
	out.Write(header)

	for _, resp := range responses {
		row := []string{resp.ResponderEmail, resp.SubmittedAt.Format("2006-01-02 15:04:05")}
		for _, q := range rec.survey.Questions {
			row = append(row, flattenAnswer(resp.Answers[q.ID]))
		}
		out.Write(row)
	}
	out.Flush()
}

// finalReport returns a minimal PDF so clients can exercise the binary
// download path.
func (s *Server) finalReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	rec, ok := s.surveys[id]
	count := len(s.responses[id])
	s.mu.Unlock()
	if !ok || rec.owner != credential(r) {
		httpx.LogNotFound(w, r, "responses.report", id)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	fmt.Fprintf(w, "%%PDF-1.4\n%% mock report: %s, %d responses\n%%%%EOF\n", rec.survey.Title, count)
}

func flattenAnswer(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		raw, _ := json.Marshal(v)
		return string(raw)
	case []any:
		raw, _ := json.Marshal(v)
		return string(raw)
	default:
		return fmt.Sprint(v)
	}
}
