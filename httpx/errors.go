package httpx

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/mbolis/case-report/log"
)

func requestFields(r *http.Request, code string) log.Fields {
	fields := log.Fields{"code": code}
	if id := middleware.GetReqID(r.Context()); id != "" {
		fields["req"] = id
	}
	return fields
}

// Will log an error, and send an HTTP response with status 500 and default text
func LogInternalError(w http.ResponseWriter, r *http.Request, code string, err error) {
	log.WithFields(requestFields(r, code)).Error(err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Will log an error code at the given level, and send
// an HTTP response with status and default text
func LogStatus(w http.ResponseWriter, r *http.Request, status int, level log.Level, code string) {
	log.WithFields(requestFields(r, code)).Log(level.Logrus(), http.StatusText(status))
	http.Error(w, http.StatusText(status), status)
}

// Will log an error code and message at the given level,
// and send a JSON body {"error": msg} with the given status
func LogStatusJSON(w http.ResponseWriter, r *http.Request, status int, level log.Level, code string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	log.WithFields(requestFields(r, code)).Log(level.Logrus(), errMsg)
	render.Status(r, status)
	render.JSON(w, r, map[string]any{"error": errMsg})
}
