package mockapi

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/BryanM518/encuestas-cli/httpx"
	"github.com/BryanM518/encuestas-cli/log"
)

const maxLogoSize = 4 << 20

func (s *Server) uploadLogo(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "files.upload.form_file", "missing file field")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxLogoSize+1))
	if err != nil {
		httpx.LogInternalError(w, r, "files.upload.read", err)
		return
	}
	if len(content) > maxLogoSize {
		httpx.Detail(w, r, http.StatusRequestEntityTooLarge, "logo exceeds %d bytes", maxLogoSize)
		return
	}

	fileID := uuid.NewString()
	s.mu.Lock()
	s.files[fileID] = content
	s.mu.Unlock()

	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, map[string]string{"file_id": fileID})
}

func (s *Server) getFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	content, ok := s.files[id]
	s.mu.Unlock()
	if !ok {
		httpx.LogNotFound(w, r, "files.get", id)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(content))
	w.Write(content)
}
