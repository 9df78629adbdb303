// Package httpapi is the HTTP boundary of the storefront: chi routing,
// cookie sessions, and the JSON handlers for registration, login, the
// catalog, and purchases.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/felipemebarak500-lgtm/mebawear/internal/config"
	"github.com/felipemebarak500-lgtm/mebawear/internal/notify"
	"github.com/felipemebarak500-lgtm/mebawear/internal/store"
)

type Server struct {
	cfg      config.Config
	store    *store.Store
	notifier notify.Notifier
	log      *slog.Logger
}

func New(cfg config.Config, st *store.Store, n notify.Notifier, log *slog.Logger) *Server {
	return &Server{cfg: cfg, store: st, notifier: n, log: log}
}

// Router builds the full route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Set-Cookie"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Auth
	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	// Storefront API
	r.Get("/api/products", s.handleListProducts)
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/api/me", s.handleMe)
		r.Get("/api/products/all", s.handleListAllProducts)
		r.Post("/api/purchase", s.handlePurchase)
	})

	// Health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	return r
}
