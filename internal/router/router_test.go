package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"garastore/internal/auth"
	"garastore/internal/handler"
	"garastore/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter mounts handlers without services; only requests rejected
// before reaching a service may be sent through it.
func newTestRouter(t *testing.T, opts Options) (http.Handler, auth.TokenService) {
	t.Helper()
	logger := zerolog.Nop()
	tokens := auth.NewTokenService("router-secret", time.Hour, time.Hour)

	h := Handlers{
		User:    handler.NewUserHandler(nil, logger),
		Product: handler.NewProductHandler(nil, logger),
		Order:   handler.NewOrderHandler(nil, nil, logger),
		Upload:  handler.NewUploadHandler(nil, logger),
		Store:   handler.NewStoreHandler(nil, "sb", "maps", logger),
		OrderFeed: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}),
	}
	return New(h, tokens, opts, logger), tokens
}

func TestRouter_Access(t *testing.T) {
	r, tokens := newTestRouter(t, Options{})

	customer, err := tokens.Issue(&model.User{ID: uuid.New(), Name: "Jane"})
	require.NoError(t, err)
	admin, err := tokens.Issue(&model.User{ID: uuid.New(), Name: "Admin", IsAdmin: true})
	require.NoError(t, err)

	tests := []struct {
		name           string
		method         string
		path           string
		token          string
		expectedStatus int
	}{
		{"Health", http.MethodGet, "/health", "", http.StatusOK},
		{"PayPal key", http.MethodGet, "/api/keys/paypal", "", http.StatusOK},
		{"Google key", http.MethodGet, "/api/keys/google", "", http.StatusOK},
		{"Own orders need a token", http.MethodGet, "/api/orders/mine", "", http.StatusUnauthorized},
		{"Profile needs a token", http.MethodPut, "/api/users/profile", "", http.StatusUnauthorized},
		{"User list needs admin", http.MethodGet, "/api/users", customer, http.StatusForbidden},
		{"Summary needs admin", http.MethodGet, "/api/orders/summary", customer, http.StatusForbidden},
		{"Deliver needs admin", http.MethodPut, "/api/orders/" + uuid.NewString() + "/deliver", customer, http.StatusForbidden},
		{"Upload needs admin", http.MethodPost, "/api/upload", customer, http.StatusForbidden},
		{"Order feed for admin", http.MethodGet, "/api/orders/events", admin, http.StatusTeapot},
		{"Order feed for customer", http.MethodGet, "/api/orders/events", customer, http.StatusForbidden},
		{"Seed disabled", http.MethodGet, "/api/seed", "", http.StatusNotFound},
		{"Wrong method", http.MethodPatch, "/api/orders", admin, http.StatusMethodNotAllowed},
		{"Preflight", http.MethodOptions, "/api/orders", "", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRouter_Uploads(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abc.jpg"), []byte("jpeg"), 0o644))

	r, _ := newTestRouter(t, Options{UploadDir: dir})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/abc.jpg", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpeg", w.Body.String())
}
