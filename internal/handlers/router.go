package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gridwatch/dominion-schedule/internal/config"
	"github.com/gridwatch/dominion-schedule/internal/middleware"
	"github.com/gridwatch/dominion-schedule/internal/store"
)

// NewRouter wires the schedule API: public read endpoints, the authenticated
// write from the extractor, and operational endpoints. Full-record reads are
// exposed only on file-backed deployments, where the record lives next to the
// process and is cheap to serve whole.
func NewRouter(cfg config.Config, st store.Store) http.Handler {
	h := &ScheduleHandler{Store: st, Now: time.Now}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/", h.Index)
	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/api/designation", h.Designation)
	r.Get("/api/next", h.Next)
	r.Get("/api/today", h.Today)
	r.Get("/api/upcoming", h.Upcoming)
	r.Get("/api/summary", h.Summary)

	writeLimiter := middleware.WriteRateLimiter()
	r.Group(func(r chi.Router) {
		r.Use(writeLimiter.Middleware)
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
		r.Use(middleware.BearerAuth(cfg.APIKey))
		r.Post("/dominion-schedule", h.Receive)
		r.Post("/api/schedule", h.Receive)
	})

	if st.Name() == "file" {
		r.Get("/dominion-schedule", h.FullRecord)
		r.Get("/api/schedule", h.FullRecord)
	}

	return r
}
