package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mbolis/case-report/app"
	"github.com/mbolis/case-report/log"
	"github.com/mbolis/case-report/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(
		middleware.RequestID,
		middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log.Logger, NoColor: true}),
		middleware.Recoverer,
		app.Metrics.Middleware,
	)

	root.Get("/healthz", Health)
	root.Method(http.MethodGet, "/metrics", app.Metrics.Handler())

	root.Group(func(r chi.Router) {
		// a locked panel renders without ever touching a session
		if app.Enabled {
			r.Use(middlewares.Session(app.Sessions))
		}
		r.Get("/", ShowPanel(app))
		r.With(middlewares.Gate(app.Enabled)).Post("/report", PostReport(app))
	})

	root.Route("/api/report", func(r chi.Router) {
		r.Use(middlewares.Gate(app.Enabled), middlewares.Session(app.Sessions))

		r.Get("/", GetReport(app))
		r.Put("/fields/{field}", UpdateReportField(app))
		r.Post("/submit", SubmitReport(app))
	})

	return root
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("content-type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
