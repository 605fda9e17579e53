package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/csytan/triplecrownforheart/internal/converter/public"
	"github.com/csytan/triplecrownforheart/internal/model"
	"github.com/csytan/triplecrownforheart/platform/logger"
)

type LedgerReader interface {
	Snapshot() *model.Ledger
}

type Cache interface {
	Get(key string, load func() ([]byte, error)) ([]byte, error)
}

type handler struct {
	ledger LedgerReader
	cache  Cache
}

func NewLedgerHandler(ledger LedgerReader, cache Cache) *handler {
	return &handler{ledger: ledger, cache: cache}
}

func (h *handler) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/riders", h.Riders)
		r.Get("/donations", h.Donations)
	})
}

func (h *handler) Riders(w http.ResponseWriter, r *http.Request) {
	order := public.OrderName
	if r.URL.Query().Get("order") == public.OrderRaised {
		order = public.OrderRaised
	}

	h.serve(w, r, "riders:"+order, func() any {
		return public.Riders(h.ledger.Snapshot(), order)
	})
}

func (h *handler) Donations(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "donations", func() any {
		return public.Donations(h.ledger.Snapshot())
	})
}

func (h *handler) serve(w http.ResponseWriter, r *http.Request, key string, view func() any) {
	body, err := h.cache.Get(key, func() ([]byte, error) {
		return json.Marshal(view())
	})
	if err != nil {
		logger.Error(r.Context(), "render ledger view", logger.String("view", key), logger.ErrorF(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(body); err != nil {
		logger.Error(r.Context(), "write ledger view", logger.ErrorF(err))
	}
}
