package rest

import (
	"encoding/json"
	"net/http"

	"github.com/ewilliams-labs/vibematch/internal/core/ports"
)

// maxBodyBytes caps request bodies; five inline data URIs add up.
const maxBodyBytes = 25 << 20

// analyzeSongRequest defines what the client sends us. The list is typed as
// []any on purpose: non-string entries are the validator's problem, not a
// decode failure.
type analyzeSongRequest struct {
	ImageURLs []any `json:"imageUrls"`
}

// AnalyzeSong handles POST /song.
func (h *Handler) AnalyzeSong(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req analyzeSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.ImageURLs) == 0 {
		writeError(w, http.StatusBadRequest, "no image URLs or files provided")
		return
	}

	analysis, err := h.svc.AnalyzeImages(r.Context(), req.ImageURLs)
	if err != nil {
		kind, detail := ports.Describe(err)
		writeErrorWithCode(w, statusForKind(kind), detail, string(kind))
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

func statusForKind(kind ports.Kind) int {
	if kind == ports.KindInvalidInput {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
