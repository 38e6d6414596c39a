package models

import "time"

// Card represents a named deck entry with a completion flag
type Card struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

// RollState is the externally visible state of the rolling selector
type RollState struct {
	Active    bool  `json:"active"`
	Displayed *Card `json:"displayed,omitempty"`
	Committed *Card `json:"committed,omitempty"`
}

// DeckStats summarizes the deck for the dashboard
type DeckStats struct {
	TotalCards    int `json:"total_cards"`
	EligibleCards int `json:"eligible_cards"`
	DoneCards     int `json:"done_cards"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
