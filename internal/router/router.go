package router

import (
	"net/http"

	"garastore/internal/auth"
	"garastore/internal/handler"
	"garastore/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	User    *handler.UserHandler
	Product *handler.ProductHandler
	Order   *handler.OrderHandler
	Upload  *handler.UploadHandler
	Store   *handler.StoreHandler
	// OrderFeed serves the admin websocket feed.
	OrderFeed http.Handler
}

// Options controls optional routes.
type Options struct {
	UploadDir   string
	SeedEnabled bool
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, tokens auth.TokenService, opts Options, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(tokens, logger)
	requireAdmin := middleware.RequireAdmin(logger)

	authed := func(fn http.HandlerFunc) http.Handler {
		return requireAuth(fn)
	}
	admin := func(next http.Handler) http.Handler {
		return requireAuth(requireAdmin(next))
	}

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Users
	mux.HandleFunc("POST /api/users/signin", h.User.SignIn)
	mux.HandleFunc("POST /api/users/signup", h.User.SignUp)
	mux.HandleFunc("POST /api/users/forget-password", h.User.ForgetPassword)
	mux.HandleFunc("POST /api/users/reset-password", h.User.ResetPassword)
	mux.Handle("PUT /api/users/profile", authed(h.User.UpdateProfile))
	mux.Handle("GET /api/users", admin(http.HandlerFunc(h.User.List)))
	mux.Handle("GET /api/users/{id}", admin(http.HandlerFunc(h.User.GetByID)))
	mux.Handle("PUT /api/users/{id}", admin(http.HandlerFunc(h.User.Update)))
	mux.Handle("DELETE /api/users/{id}", admin(http.HandlerFunc(h.User.Delete)))

	// Products
	mux.HandleFunc("GET /api/products", h.Product.GetAll)
	mux.HandleFunc("GET /api/products/search", h.Product.Search)
	mux.HandleFunc("GET /api/products/categories", h.Product.Categories)
	mux.HandleFunc("GET /api/products/slug/{slug}", h.Product.GetBySlug)
	mux.HandleFunc("GET /api/products/{id}", h.Product.GetByID)
	mux.Handle("GET /api/products/admin", admin(http.HandlerFunc(h.Product.ListAdmin)))
	mux.Handle("GET /api/products/export", admin(http.HandlerFunc(h.Product.Export)))
	mux.Handle("POST /api/products", admin(http.HandlerFunc(h.Product.Create)))
	mux.Handle("PUT /api/products/{id}", admin(http.HandlerFunc(h.Product.Update)))
	mux.Handle("DELETE /api/products/{id}", admin(http.HandlerFunc(h.Product.Delete)))
	mux.Handle("POST /api/products/{id}/reviews", authed(h.Product.AddReview))

	// Orders
	mux.Handle("POST /api/orders", authed(h.Order.Create))
	mux.Handle("GET /api/orders", admin(http.HandlerFunc(h.Order.List)))
	mux.Handle("GET /api/orders/summary", admin(http.HandlerFunc(h.Order.Summary)))
	mux.Handle("GET /api/orders/mine", authed(h.Order.Mine))
	mux.Handle("GET /api/orders/events", admin(h.OrderFeed))
	mux.Handle("GET /api/orders/export", admin(http.HandlerFunc(h.Order.Export)))
	mux.Handle("GET /api/orders/{id}", authed(h.Order.GetByID))
	mux.Handle("PUT /api/orders/{id}/pay", authed(h.Order.Pay))
	mux.Handle("PUT /api/orders/{id}/deliver", admin(http.HandlerFunc(h.Order.Deliver)))
	mux.Handle("DELETE /api/orders/{id}", admin(http.HandlerFunc(h.Order.Delete)))

	// Uploads
	mux.Handle("POST /api/upload", admin(http.HandlerFunc(h.Upload.Upload)))
	if opts.UploadDir != "" {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir))))
	}

	// Client keys and sample data
	mux.HandleFunc("GET /api/keys/paypal", h.Store.PayPalKey)
	mux.HandleFunc("GET /api/keys/google", h.Store.GoogleKey)
	if opts.SeedEnabled {
		mux.HandleFunc("GET /api/seed", h.Store.Seed)
	}

	// Apply middleware in order: Recovery -> Logging -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
