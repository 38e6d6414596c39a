package handlers

import "net/http"

// handleStartDraw starts a draw over the current eligible set. The call
// returns immediately; the animation and committed pick are pushed over
// the websocket.
func (h *Handlers) handleStartDraw(w http.ResponseWriter, r *http.Request) {
	if err := h.Draw.StartDraw(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	respondAccepted(w, DrawStartedResponse{Status: "rolling"})
}

// handleGetDrawState returns the current selector state and last pick
func (h *Handlers) handleGetDrawState(w http.ResponseWriter, r *http.Request) {
	lastPick, err := h.Draw.LastPick(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, DrawStateResponse{
		Roll:     h.Draw.State(),
		LastPick: lastPick,
	})
}
