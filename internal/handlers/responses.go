package handlers

import "github.com/suaudpierre/deckpick/internal/models"

// DrawStateResponse is the body for GET /api/draw
type DrawStateResponse struct {
	Roll     models.RollState `json:"roll"`
	LastPick *models.Card     `json:"last_pick,omitempty"`
}

// DrawStartedResponse is the body for POST /api/draw
type DrawStartedResponse struct {
	Status string `json:"status"`
}
