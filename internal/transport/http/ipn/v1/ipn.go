package http

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/csytan/triplecrownforheart/internal/model"
	"github.com/csytan/triplecrownforheart/platform/logger"
)

// maxBodyBytes bounds an inbound notification. Real ones are a few KB.
const maxBodyBytes = 64 << 10

type IPNService interface {
	Handle(ctx context.Context, body []byte) (model.IPNResult, error)
}

type handler struct {
	svc IPNService
}

func NewIPNHandler(svc IPNService) *handler {
	return &handler{svc: svc}
}

func (h *handler) Routes(r chi.Router) {
	r.Post("/paypal/ipn", h.Notify)
}

// Notify always acknowledges with 200 and body "1". The processor retries on
// anything else, and every outcome has already been logged and counted.
func (h *handler) Notify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		logger.Warn(ctx, "ipn body unreadable", logger.ErrorF(err))
	} else if _, err := h.svc.Handle(ctx, body); err != nil {
		logger.Debug(ctx, "ipn not applied", logger.ErrorF(err))
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("1")); err != nil {
		logger.Error(ctx, "ipn ack", logger.ErrorF(err))
	}
}
