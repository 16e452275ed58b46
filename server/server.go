// Package server exposes the filter-aggregate pipeline as an HTTP
// dashboard API. It renders whatever the pipeline returns and never
// feeds edits back into the canonical dataset.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"tagboard/config"
	"tagboard/session"
	"tagboard/store"
	"tagboard/telemetry"
)

// Server hosts the dashboard API.
type Server struct {
	cfg      config.Config
	logger   zerolog.Logger
	metrics  *telemetry.Metrics
	loader   *store.Loader
	sessions *session.Manager
}

// New creates a dashboard server.
func New(cfg config.Config, logger zerolog.Logger, metrics *telemetry.Metrics, loader *store.Loader) *Server {
	return &Server{
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
		loader:   loader,
		sessions: session.NewManager(),
	}
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Post("/sessions", s.createSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Use(s.sessionCtx)

			r.Delete("/", s.closeSession)
			r.Get("/options", s.filterOptions)
			r.Put("/filters", s.setFilters)
			r.Get("/summary", s.summary)
			r.Get("/records", s.records)
			r.Get("/untagged", s.untagged)
			r.Get("/groups/{field}", s.groupCosts)
			r.Get("/groups/{field}/top", s.topGroup)
			r.Get("/completeness", s.completeness)
			r.Get("/missing", s.missingCensus)
			r.Get("/crosstab", s.crosstab)
			r.Get("/environments", s.environments)

			r.Post("/remediation", s.startRemediation)
			r.Get("/remediation", s.remediationRecords)
			r.Post("/remediation/rows", s.addRemediationRow)
			r.Patch("/remediation/rows/{row}", s.editRemediation)
			r.Delete("/remediation/rows/{row}", s.removeRemediationRow)
			r.Get("/remediation/comparison", s.remediationComparison)

			r.Get("/export/{kind}", s.exportCSV)
		})
	})

	return r
}

// Serve runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.Listen).Msg("dashboard server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// requestLogger logs every request with status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
