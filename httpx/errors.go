package httpx

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"

	"github.com/BryanM518/encuestas-cli/log"
)

// Detail sends the backend's structured error shape: a JSON body with a
// single "detail" message.
func Detail(w http.ResponseWriter, r *http.Request, status int, msg string, args ...any) {
	w.WriteHeader(status)
	render.JSON(w, r, map[string]string{"detail": fmt.Sprintf(msg, args...)})
}

// LogInternalError logs an error code and sends a 500 with a generic detail.
func LogInternalError(w http.ResponseWriter, r *http.Request, code string, err error) {
	log.Errorf("%s: %s", code, err)
	Detail(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// LogNotFound logs at debug level and sends a 404 detail.
func LogNotFound(w http.ResponseWriter, r *http.Request, code string, id any) {
	log.Debugf("%s: not found (%v)", code, id)
	Detail(w, r, http.StatusNotFound, "not found")
}

// LogStatusMsg logs an error code and message at the given level, and
// sends the formatted message as the response detail.
func LogStatusMsg(w http.ResponseWriter, r *http.Request, status int, level log.Level, code string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	log.Log(level, code+":", errMsg)
	Detail(w, r, status, errMsg)
}
