package handlers

import (
	"net/http"

	"github.com/suaudpierre/deckpick/internal/models"
)

// handleGetCards returns the whole deck
func (h *Handlers) handleGetCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.Cards.ListCards(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if cards == nil {
		cards = []models.Card{}
	}
	respondOK(w, cards)
}

// handleAddCards adds one or more named cards to the deck
func (h *Handlers) handleAddCards(w http.ResponseWriter, r *http.Request) {
	var req AddCardsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Cards.AddCards(r.Context(), req.Names)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, result)
}

// handleSetCardDone toggles a card's done flag
func (h *Handlers) handleSetCardDone(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req SetDoneRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Cards.SetDone(r.Context(), id, req.Done); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Card updated")
}

// handleDeleteCard removes a card from the deck
func (h *Handlers) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Cards.DeleteCard(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondDeleted(w)
}

// handleGetStats returns deck counts
func (h *Handlers) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Cards.Stats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, stats)
}
