// Package mockapi is an in-memory stand-in for the survey backend,
// mirroring its REST surface under /api/survey_api. It exists for
// frontend development and for the integration tests; it is not the
// production backend.
package mockapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/oauth"

	"github.com/BryanM518/encuestas-cli/model"
)

type surveyRecord struct {
	survey   model.Survey
	owner    string
	versions []model.SurveyVersion
}

type Server struct {
	mu        sync.Mutex
	secret    string
	tokenTTL  time.Duration
	users     map[string][]byte // username -> bcrypt hash
	surveys   map[string]*surveyRecord
	responses map[string][]model.Response
	files     map[string][]byte
	bearer    *oauth.BearerServer

	// now is swappable so tests can pin the scheduling clock.
	now func() time.Time
}

func NewServer(secret string) *Server {
	s := &Server{
		secret:    secret,
		tokenTTL:  2 * time.Hour,
		users:     map[string][]byte{},
		surveys:   map[string]*surveyRecord{},
		responses: map[string][]model.Response{},
		files:     map[string][]byte{},
		now:       time.Now,
	}
	s.bearer = oauth.NewBearerServer(secret, s.tokenTTL, &credentialsVerifier{server: s}, nil)
	return s
}

// Router wires the full collaborator surface.
func (s *Server) Router() http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Recoverer)

	root.Route("/api/survey_api", func(api chi.Router) {
		api.Post("/auth/register", s.register)
		api.Post("/auth/token", s.token)
		api.Post("/auth/refresh", s.refresh)

		api.Get("/surveys/public/{id}", s.getPublicSurvey)
		api.Post("/surveys/{id}/responses", s.submitResponse)
		api.Get("/surveys/files/{id}", s.getFile)

		api.Group(func(r chi.Router) {
			r.Use(oauth.Authorize(s.secret, nil))

			r.Post("/surveys/", s.createSurvey)
			r.Get("/surveys/", s.listSurveys)
			r.Get("/surveys/{id}", s.getSurvey)
			r.Put("/surveys/{id}", s.updateSurvey)
			r.Delete("/surveys/{id}", s.deleteSurvey)
			r.Get("/surveys/{id}/versions", s.listVersions)
			r.Get("/surveys/{id}/stats", s.getStats)
			r.Get("/surveys/{id}/responses", s.listResponses)
			r.Get("/surveys/{id}/export", s.exportResponses)
			r.Get("/surveys/{id}/final-report", s.finalReport)
			r.Post("/surveys/upload-logo", s.uploadLogo)
		})
	})

	return root
}

// credential returns the authenticated username the authorize middleware
// stored on the request context.
func credential(r *http.Request) string {
	if cred, ok := r.Context().Value(oauth.CredentialContext).(string); ok {
		return cred
	}
	return ""
}
