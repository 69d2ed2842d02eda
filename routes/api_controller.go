package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/mbolis/case-report/app"
	"github.com/mbolis/case-report/httpx"
	"github.com/mbolis/case-report/log"
	"github.com/mbolis/case-report/model"
	"github.com/mbolis/case-report/report"
	"github.com/mbolis/case-report/routes/middlewares"
)

func GetReport(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := middlewares.SessionFrom(r.Context())
		render.JSON(w, r, s.Controller.State())
	}
}

func UpdateReportField(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := middlewares.SessionFrom(r.Context())

		field, ok := model.ParseField(chi.URLParam(r, "field"))
		if !ok {
			httpx.LogStatusJSON(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.field", "unknown field %q", chi.URLParam(r, "field"))
			return
		}

		err := r.ParseForm()
		if err != nil {
			httpx.LogStatusJSON(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "malformed body")
			return
		}
		raw := r.PostForm.Get("value")

		var value any = raw
		if field == model.FieldConsent {
			consent, err := strconv.ParseBool(raw)
			if err != nil {
				httpx.LogStatusJSON(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body.consent", "consent must be true or false")
				return
			}
			value = consent
		}

		err = s.Controller.UpdateField(field, value)
		switch {
		case errors.Is(err, report.ErrSubmitted):
			httpx.LogStatusJSON(w, r, http.StatusConflict, log.DebugLevel, "report.update_field", "report already submitted")
			return
		case err != nil:
			httpx.LogStatusJSON(w, r, http.StatusBadRequest, log.DebugLevel, "report.update_field", "invalid value for %s", field)
			return
		}
		app.Metrics.FieldUpdates.WithLabelValues(string(field)).Inc()

		render.JSON(w, r, s.Controller.State())
	}
}

type submitResponse struct {
	report.State
	Notifications []model.Notification `json:"notifications"`
}

func SubmitReport(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := middlewares.SessionFrom(r.Context())

		err := submit(app, s.Controller)
		switch {
		case errors.Is(err, report.ErrSubmitted):
			httpx.LogStatusJSON(w, r, http.StatusConflict, log.DebugLevel, "report.submit", "report already submitted")
			return
		case errors.Is(err, report.ErrValidation):
			render.Status(r, http.StatusUnprocessableEntity)
		}

		render.JSON(w, r, submitResponse{
			State:         s.Controller.State(),
			Notifications: s.Drain(),
		})
	}
}
