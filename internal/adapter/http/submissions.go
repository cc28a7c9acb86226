package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleApprove moves a pending submission to approved. The acting admin
// arrives in the X-Actor-ID header; a missing header is rejected with
// HTTP 400 since every decision must be attributable.
func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		http.Error(w, "missing X-Actor-ID header", http.StatusBadRequest)
		return
	}
	sub, err := h.svc.Approve(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sub)
}

// handleDeny moves a pending submission to rejected. The request body must
// carry a non-empty reason.
func (h *Handler) handleDeny(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		http.Error(w, "missing X-Actor-ID header", http.StatusBadRequest)
		return
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	sub, err := h.svc.Deny(r.Context(), chi.URLParam(r, "id"), actor, body.Reason)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sub)
}

// handlePayout issues the payment for an approved submission. The call is
// idempotent: repeating it returns the existing payment record.
func (h *Handler) handlePayout(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		http.Error(w, "missing X-Actor-ID header", http.StatusBadRequest)
		return
	}
	rec, err := h.svc.Payout(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

// handleRecordViews syncs a submission's observed view count from the
// platform tracker.
func (h *Handler) handleRecordViews(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Views int64 `json:"views"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	sub, err := h.svc.RecordViews(r.Context(), chi.URLParam(r, "id"), body.Views)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sub)
}

// handleAwardPrize records the judged position for an approved challenge
// submission.
func (h *Handler) handleAwardPrize(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(r)
	if !ok {
		http.Error(w, "missing X-Actor-ID header", http.StatusBadRequest)
		return
	}
	var body struct {
		Position int `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	sub, err := h.svc.AwardPrize(r.Context(), chi.URLParam(r, "id"), body.Position, actor)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sub)
}
