package rest

import (
	"net/http"

	"github.com/ewilliams-labs/vibematch/internal/core/ports"
)

// SpotifyToken handles GET /spotify-token. The frontend uses the raw bearer
// token for preview playback; the cache makes this nearly always a local read.
func (h *Handler) SpotifyToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.tokens.Token(r.Context())
	if err != nil {
		kind, detail := ports.Describe(err)
		writeErrorWithCode(w, http.StatusInternalServerError, detail, string(kind))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}
