package handlers

import (
	"net/http"

	"github.com/suaudpierre/deckpick/internal/auth"
)

// handleIndex renders the deck picker page
func (h *Handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	if err := h.templates.Index.Execute(w, nil); err != nil {
		respondError(w, InternalError(err))
	}
}

// handleLoginPage renders the admin login page
func (h *Handlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if err := h.templates.Login.Execute(w, nil); err != nil {
		respondError(w, InternalError(err))
	}
}

// handleLogin validates the admin password and sets a session cookie
func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	token, ok := h.Auth.Login(req.Password)
	if !ok {
		respondError(w, Unauthorized("Invalid password"))
		return
	}

	auth.SetSessionCookie(w, token)
	respondSuccess(w, "Logged in")
}

// handleLogout clears the admin session
func (h *Handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		h.Auth.Logout(cookie.Value)
	}
	auth.ClearSessionCookie(w)
	respondSuccess(w, "Logged out")
}

// handleReset clears the requested tables
func (h *Handlers) handleReset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Settings.ResetTables(r.Context(), req.Tables)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

// handleGetSettings returns the application settings
func (h *Handlers) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.AllSettings(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, settings)
}

// handleUpdateSettings updates application settings
func (h *Handlers) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if req.BaseURL != "" {
		if err := h.Settings.SetBaseURL(r.Context(), req.BaseURL); err != nil {
			respondError(w, err)
			return
		}
	}
	respondSuccess(w, "Settings updated")
}
