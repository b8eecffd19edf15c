package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Development-mode CORS policy: any origin. Production deployments
	// must restrict this.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS", "PUT", "DELETE"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	r.Get("/ping", PingHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/events", app.ListEventsHandler)
		r.Get("/events/detail", app.EventDetailHandler)
		r.Post("/feedback", app.SubmitFeedbackHandler)
		r.Get("/reports", app.ReportsHandler)
		r.Get("/reports/detail", app.ReportDetailHandler)
		r.Get("/cameras", app.ListCamerasHandler)
		r.Get("/cameras/stream", app.CameraStreamHandler)
		r.Post("/auth/register", app.RegisterHandler)
		r.Post("/auth/login", app.LoginHandler)
	})

	return r
}
