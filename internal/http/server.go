// Package http serves the web UI: dashboard, property pages, auth
// screens, and printable reports, all rendered server side from
// embedded templates.
package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"frota/internal/auth"
	"frota/internal/cache"
	"frota/internal/middleware/security"
	"frota/internal/middleware/trace"
	"frota/internal/report"
	"frota/internal/services"
	appweb "frota/web"
)

// Options tunes server behavior beyond the wiring.
type Options struct {
	SessionTTL time.Duration
}

type Server struct {
	http.Server

	svc      *services.PropertyService
	gate     *auth.Gate
	renderer *report.Renderer

	templates *template.Template
	sessions  *sessionStore

	// Built reports are cheap but recomputed on every page; a short
	// TTL keeps the dashboard snappy without risking stale totals.
	reportCache  *cache.LRUCache[report.PropertyReport]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, svc *services.PropertyService, gate *auth.Gate, opts Options) (*Server, error) {
	renderer, err := report.NewRenderer()
	if err != nil {
		return nil, err
	}

	templates, err := template.New("web").Funcs(report.Funcs()).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 12 * time.Hour
	}

	s := &Server{
		svc:         svc,
		gate:        gate,
		renderer:    renderer,
		templates:   templates,
		sessions:    newSessionStore(opts.SessionTTL),
		reportCache: cache.NewLRUCache[report.PropertyReport](200, 2*time.Minute),
	}

	s.cacheManager = cache.NewManager()
	s.cacheManager.Register(s.reportCache)
	s.cacheManager.Register(s.sessions)
	s.cacheManager.StartCleanup(10 * time.Minute)

	r := chi.NewRouter()
	r.Use(trace.Middleware)
	r.Use(security.Headers)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady)

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		r.Get("/static/*", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, req)
		})
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(30, time.Minute))
		r.Get("/login", s.handleLoginPage)
		r.Post("/login", s.handleLogin)
		r.Get("/register", s.handleRegisterPage)
		r.Post("/register", s.handleRegister)
	})
	r.Post("/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Use(httprate.LimitByIP(120, time.Minute))

		r.Get("/", s.handleDashboard)

		r.Post("/properties", s.handleCreateProperty)
		r.Route("/properties/{propertyID}", func(r chi.Router) {
			r.Get("/", s.handlePropertyPage)
			r.Post("/", s.handleUpdateProperty)
			r.Post("/delete", s.handleDeleteProperty)

			r.Post("/apartments", s.handleAddApartment)
			r.Route("/apartments/{apartmentID}", func(r chi.Router) {
				r.Post("/", s.handleUpdateApartment)
				r.Post("/delete", s.handleDeleteApartment)

				r.Post("/tenant", s.handleAssignTenant)
				r.Post("/tenant/update", s.handleUpdateTenant)
				r.Post("/tenant/remove", s.handleRemoveTenant)

				r.Post("/payments", s.handleRecordPayment)
				r.Post("/payments/{paymentID}/delete", s.handleDeletePayment)
			})
		})

		// UI partials
		r.Get("/ui/property-summary", s.handleSummaryPartial)
		r.Get("/ui/payment-history", s.handleHistoryPartial)

		// Printable reports
		r.Get("/reports/property/{propertyID}", s.handlePropertyReport)
		r.Get("/reports/tenant/{propertyID}/{apartmentID}", s.handleTenantReport)
	})

	s.Server = http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

// Shutdown stops background routines before draining the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopBackground()
	return s.Server.Shutdown(ctx)
}

// Close releases background routines along with the listener.
func (s *Server) Close() error {
	s.stopBackground()
	return s.Server.Close()
}

func (s *Server) stopBackground() {
	s.shutdownOnce.Do(func() {
		if s.cacheManager != nil {
			s.cacheManager.Stop()
		}
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
