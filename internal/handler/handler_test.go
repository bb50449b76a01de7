package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"garastore/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var body model.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{"Validation", model.ErrEmptyOrder, http.StatusBadRequest, "Cart is empty"},
		{"Authentication", model.ErrInvalidToken, http.StatusUnauthorized, "Invalid Token"},
		{"Authorization", model.ErrAdminRequired, http.StatusForbidden, "Invalid Admin Token"},
		{"Not found", model.ErrOrderNotFound, http.StatusNotFound, "Order Not Found"},
		{"Duplicate", model.ErrDuplicateEmail, http.StatusConflict, "Email is already registered"},
		{"Upstream", model.ErrUploadFailed, http.StatusBadGateway, "Upload failed"},
		{"Wrapped domain error", errors.Join(errors.New("context"), model.ErrProductNotFound), http.StatusNotFound, "Product Not Found"},
		{"Unexpected", errors.New("connection refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeError(w, tt.err, zerolog.Nop())

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.expectedMessage, decodeError(t, w).Message)
		})
	}
}
