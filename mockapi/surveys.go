package mockapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/BryanM518/encuestas-cli/httpx"
	"github.com/BryanM518/encuestas-cli/log"
	"github.com/BryanM518/encuestas-cli/model"
	"github.com/BryanM518/encuestas-cli/tempid"
)

func (s *Server) createSurvey(w http.ResponseWriter, r *http.Request) {
	var survey model.Survey
	if err := render.DecodeJSON(r.Body, &survey); err != nil {
		httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "surveys.create.parse_body", "invalid request body")
		return
	}
	if err := survey.Validate(); err != nil {
		httpx.Detail(w, r, http.StatusUnprocessableEntity, "%s", err)
		return
	}

	survey.ID = uuid.NewString()
	survey.Version = 1
	assignQuestionIDs(&survey)

	s.mu.Lock()
	s.surveys[survey.ID] = &surveyRecord{survey: survey, owner: credential(r)}
	s.mu.Unlock()

	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, survey)
}

func (s *Server) updateSurvey(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var survey model.Survey
	if err := render.DecodeJSON(r.Body, &survey); err != nil {
		httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "surveys.update.parse_body", "invalid request body")
		return
	}
	if err := survey.Validate(); err != nil {
		httpx.Detail(w, r, http.StatusUnprocessableEntity, "%s", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.surveys[id]
	if !ok || rec.owner != credential(r) {
		httpx.LogNotFound(w, r, "surveys.update", id)
		return
	}

	// archive the outgoing revision, then replace wholesale
	rec.versions = append(rec.versions, model.SurveyVersion{
		Version:    rec.survey.Version,
		ModifiedAt: s.now(),
		Survey:     rec.survey,
	})

	survey.ID = id
	survey.Version = rec.survey.Version + 1
	assignQuestionIDs(&survey)
	rec.survey = survey

	render.JSON(w, r, survey)
}

func (s *Server) getSurvey(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	rec, ok := s.surveys[id]
	s.mu.Unlock()
	if !ok || rec.owner != credential(r) {
		httpx.LogNotFound(w, r, "surveys.get", id)
		return
	}
	render.JSON(w, r, rec.survey)
}

// getPublicSurvey is the respondent view: derived status, no owner
// metadata.
func (s *Server) getPublicSurvey(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	rec, ok := s.surveys[id]
	s.mu.Unlock()
	if !ok {
		httpx.LogNotFound(w, r, "surveys.get_public", id)
		return
	}

	public := rec.survey.Clone()
	public.Status = public.DeriveStatus(s.now())
	public.Version = 0
	render.JSON(w, r, public)
}

func (s *Server) listSurveys(w http.ResponseWriter, r *http.Request) {
	owner := credential(r)

	s.mu.Lock()
	surveys := []model.Survey{}
	for _, rec := range s.surveys {
		if rec.owner == owner {
			surveys = append(surveys, rec.survey)
		}
	}
	s.mu.Unlock()

	render.JSON(w, r, surveys)
}

func (s *Server) deleteSurvey(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.surveys[id]
	if !ok || rec.owner != credential(r) {
		httpx.LogNotFound(w, r, "surveys.delete", id)
		return
	}
	delete(s.surveys, id)
	delete(s.responses, id)

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listVersions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	rec, ok := s.surveys[id]
	s.mu.Unlock()
	if !ok || rec.owner != credential(r) {
		httpx.LogNotFound(w, r, "surveys.versions", id)
		return
	}

	versions := rec.versions
	if versions == nil {
		versions = []model.SurveyVersion{}
	}
	render.JSON(w, r, versions)
}

// assignQuestionIDs gives every question without a real identifier a
// fresh one, preserving order. Temporary identifiers are never accepted
// as real: a client that forgot to strip one still gets a replacement.
func assignQuestionIDs(s *model.Survey) {
	for i, q := range s.Questions {
		if q.ID == "" || tempid.Is(q.ID) {
			s.Questions[i].ID = uuid.NewString()
		}
	}
}
