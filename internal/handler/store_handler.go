package handler

import (
	"net/http"

	"garastore/internal/service"

	"github.com/rs/zerolog"
)

// KeysResponse carries a client-side API key.
type KeysResponse struct {
	Key string `json:"key"`
}

// StoreHandler serves client keys and the sample data loader.
type StoreHandler struct {
	seed           service.SeedService
	payPalClientID string
	googleAPIKey   string
	logger         zerolog.Logger
}

// NewStoreHandler creates a new store handler.
func NewStoreHandler(seed service.SeedService, payPalClientID, googleAPIKey string, logger zerolog.Logger) *StoreHandler {
	return &StoreHandler{
		seed:           seed,
		payPalClientID: payPalClientID,
		googleAPIKey:   googleAPIKey,
		logger:         logger.With().Str("handler", "store").Logger(),
	}
}

// PayPalKey handles GET /api/keys/paypal. The client id is sent as plain text.
func (h *StoreHandler) PayPalKey(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(h.payPalClientID))
}

// GoogleKey handles GET /api/keys/google.
func (h *StoreHandler) GoogleKey(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, KeysResponse{Key: h.googleAPIKey})
}

// Seed handles GET /api/seed.
func (h *StoreHandler) Seed(w http.ResponseWriter, r *http.Request) {
	result, err := h.seed.Seed(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	h.logger.Warn().Msg("store reset to sample data")
	writeJSON(w, http.StatusOK, result)
}
