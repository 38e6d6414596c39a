package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// Static files (served from embedded filesystem)
	r.Handle("/static/*", http.StripPrefix("/static/", h.staticServer))

	// Pages
	r.Get("/", h.handleIndex)
	r.Get("/admin/login", h.handleLoginPage)

	// WebSocket
	r.Get("/ws", h.Hub.ServeWs)

	// Deck API (public)
	r.Get("/api/cards", h.handleGetCards)
	r.Post("/api/cards", h.handleAddCards)
	r.Put("/api/cards/{id}/done", h.handleSetCardDone)
	r.Delete("/api/cards/{id}", h.handleDeleteCard)
	r.Get("/api/stats", h.handleGetStats)

	// Draw API (public)
	r.Post("/api/draw", h.handleStartDraw)
	r.Get("/api/draw", h.handleGetDrawState)

	// Share QR (public)
	r.Get("/share/qr", h.handleShareQR)

	// Auth (public)
	r.Post("/admin/login", h.handleLogin)
	r.Post("/admin/logout", h.handleLogout)

	// Admin API (protected)
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireAuthAPI)
		r.Post("/api/admin/reset", h.handleReset)
		r.Get("/api/admin/settings", h.handleGetSettings)
		r.Put("/api/admin/settings", h.handleUpdateSettings)
	})

	return r
}
