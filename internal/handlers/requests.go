package handlers

// AddCardsRequest is the body for POST /api/cards
type AddCardsRequest struct {
	Names []string `json:"names"`
}

// SetDoneRequest is the body for PUT /api/cards/{id}/done
type SetDoneRequest struct {
	Done bool `json:"done"`
}

// LoginRequest is the body for POST /admin/login
type LoginRequest struct {
	Password string `json:"password"`
}

// ResetRequest is the body for POST /api/admin/reset
type ResetRequest struct {
	Tables []string `json:"tables"`
}

// UpdateSettingsRequest is the body for PUT /api/admin/settings
type UpdateSettingsRequest struct {
	BaseURL string `json:"base_url"`
}
