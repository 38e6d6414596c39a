package handlers

import (
	"net/http"

	qrcode "github.com/skip2/go-qrcode"
)

// handleShareQR returns a QR code PNG of the app's base URL so other
// devices on the LAN can open the deck.
func (h *Handlers) handleShareQR(w http.ResponseWriter, r *http.Request) {
	baseURL, err := h.Settings.GetBaseURL(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if baseURL == "" {
		respondError(w, NotFound("Base URL is not configured yet"))
		return
	}

	png, err := qrcode.Encode(baseURL, qrcode.Medium, 256)
	if err != nil {
		respondError(w, InternalError(err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
