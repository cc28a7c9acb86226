package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lukasminkov/creative-funding-hub/internal/core/port"
	"github.com/lukasminkov/creative-funding-hub/internal/telemetry"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP: it maps admin requests to the lifecycle operations and serializes
// the results. Authentication sits in front of this handler; the admin's
// identity arrives in the X-Actor-ID header.
type Handler struct {
	svc    port.LifecycleUseCase
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.LifecycleUseCase, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/submissions/{id}/approve", h.handleApprove)
		r.Post("/submissions/{id}/deny", h.handleDeny)
		r.Post("/submissions/{id}/payout", h.handlePayout)
		r.Post("/submissions/{id}/views", h.handleRecordViews)
		r.Post("/submissions/{id}/award", h.handleAwardPrize)
		r.Post("/campaigns/{id}/creators/{creatorID}/retainer-payout", h.handleCompleteRetainer)
		r.Get("/campaigns/{id}/creators/{creatorID}/progress", h.handleProgress)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", telemetry.Handler())

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
