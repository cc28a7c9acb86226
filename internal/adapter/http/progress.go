package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleProgress returns a creator's aggregated completion state against a
// retainer campaign, recomputed on every request.
func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.svc.Progress(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "creatorID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, progress)
}

// handleCompleteRetainer settles a fulfilled retainer quota: it stamps the
// tier price on the creator's most recent approved submission, which the
// payout endpoint then settles.
func (h *Handler) handleCompleteRetainer(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		http.Error(w, "missing X-Actor-ID header", http.StatusBadRequest)
		return
	}
	var body struct {
		Tier string `json:"tier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	sub, err := h.svc.CompleteRetainer(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "creatorID"), body.Tier, actor)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sub)
}
