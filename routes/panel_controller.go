package routes

import (
	"errors"
	"net/http"

	"github.com/ajg/form"

	"github.com/mbolis/case-report/app"
	"github.com/mbolis/case-report/httpx"
	"github.com/mbolis/case-report/log"
	"github.com/mbolis/case-report/model"
	"github.com/mbolis/case-report/report"
	"github.com/mbolis/case-report/routes/middlewares"
	"github.com/mbolis/case-report/views"
)

func ShowPanel(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var panel views.Panel
		if !app.Enabled {
			panel = views.NewPanel(false, report.State{}, nil)
		} else {
			s := middlewares.SessionFrom(r.Context())
			panel = views.NewPanel(true, s.Controller.State(), s.Drain())
		}

		buf := httpx.NewResponseBuffer()
		buf.Header().Set("content-type", "text/html; charset=utf-8")
		buf.Header().Set("cache-control", "no-store")
		if err := views.RenderPanel(buf, panel); err != nil {
			httpx.LogInternalError(w, r, "panel.render", err)
			return
		}
		if err := buf.Flush(w); err != nil {
			log.WithFields(log.Fields{"code": "panel.write"}).Debug(err)
		}
	}
}

// PostReport takes a whole browser form post: every field is updated, then
// the report is submitted. The outcome is shown on the redirected page.
func PostReport(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := middlewares.SessionFrom(r.Context())

		in := model.FormInput{}
		dec := form.NewDecoder(r.Body)
		dec.IgnoreUnknownKeys(true)
		err := dec.Decode(&in)
		if err != nil {
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		err = applyInput(app, s.Controller, in)
		switch {
		case errors.Is(err, report.ErrSubmitted):
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		case err != nil:
			httpx.LogStatus(w, r, http.StatusBadRequest, log.DebugLevel, "report.update_field")
			return
		}

		submit(app, s.Controller)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func applyInput(app app.App, c *report.Controller, in model.FormInput) error {
	values := map[model.Field]any{
		model.FieldConclusion: in.Conclusion,
		model.FieldReasoning:  in.Reasoning,
		model.FieldName:       in.Name,
		model.FieldEmail:      in.Email,
		model.FieldRollNumber: in.RollNumber,
		model.FieldPhone:      in.Phone,
		model.FieldConsent:    in.Consent,
	}
	for _, f := range model.Fields() {
		if err := c.UpdateField(f, values[f]); err != nil {
			return err
		}
		app.Metrics.FieldUpdates.WithLabelValues(string(f)).Inc()
	}
	return nil
}

// submit runs Submit and records the outcome. Notifications reach the user
// through the session.
func submit(app app.App, c *report.Controller) error {
	err := c.Submit()
	switch {
	case err == nil:
		app.Metrics.Submissions.Inc()
		log.WithFields(log.Fields{"code": "report.submit"}).Info("report submitted")
	case errors.Is(err, report.ErrValidation):
		app.Metrics.ValidationErrors.Inc()
		log.WithFields(log.Fields{"code": "report.submit"}).Debug(err)
	}
	return err
}
