package service

import (
	"context"
	"io"

	"garastore/internal/auth"
	"garastore/internal/model"

	"github.com/google/uuid"
)

// UserService defines account and identity operations.
type UserService interface {
	// SignIn checks credentials and issues a session token.
	SignIn(ctx context.Context, req *model.SignInRequest) (*model.AuthResponse, error)

	// SignUp registers a customer account and issues a session token.
	SignUp(ctx context.Context, req *model.SignUpRequest) (*model.AuthResponse, error)

	// UpdateProfile changes the caller's own name, email or password.
	UpdateProfile(ctx context.Context, caller *auth.Identity, req *model.ProfileUpdateRequest) (*model.AuthResponse, error)

	// List retrieves every account.
	List(ctx context.Context) ([]model.User, error)

	// GetByID retrieves an account. Returns model.ErrUserNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// Update applies an admin edit to an account.
	Update(ctx context.Context, id uuid.UUID, req *model.UserUpdateRequest) (*model.UserUpdateResponse, error)

	// Delete removes an account. The seed administrator cannot be deleted.
	Delete(ctx context.Context, id uuid.UUID) error

	// ForgetPassword stores a reset token and mails a reset link.
	ForgetPassword(ctx context.Context, req *model.ForgetPasswordRequest) error

	// ResetPassword sets a new password for the holder of a valid reset token.
	ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) error
}

// ProductService defines catalogue operations.
type ProductService interface {
	// GetAll retrieves every product.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a product with its reviews.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetBySlug retrieves a product with its reviews.
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)

	// Search runs a catalogue query and returns one page of results.
	Search(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error)

	// ListAdmin returns one page of the full catalogue for administration.
	ListAdmin(ctx context.Context, page, pageSize int) (*model.ProductPage, error)

	// Categories returns the distinct categories.
	Categories(ctx context.Context) ([]string, error)

	// CreateSample inserts a placeholder product for an administrator to edit.
	CreateSample(ctx context.Context) (*model.Product, error)

	// Update applies an admin edit to a product.
	Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error)

	// Delete removes a product.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddReview records the caller's review and returns the refreshed aggregates.
	AddReview(ctx context.Context, productID uuid.UUID, caller *auth.Identity, req *model.ReviewRequest) (*model.ReviewResponse, error)

	// Export writes the catalogue as a spreadsheet.
	Export(ctx context.Context, w io.Writer) error
}

// OrderService defines order lifecycle operations.
type OrderService interface {
	// CreateOrder places an order for the caller.
	CreateOrder(ctx context.Context, caller *auth.Identity, req *model.OrderRequest) (*model.Order, error)

	// GetByID retrieves an order. Returns model.ErrOrderNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListMine retrieves the orders placed by userID.
	ListMine(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// ListAll retrieves every order with owner names resolved.
	ListAll(ctx context.Context) ([]model.OrderSummary, error)

	// MarkPaid records a payment capture and queues a receipt.
	MarkPaid(ctx context.Context, id uuid.UUID, result *model.PaymentResult) (*model.Order, error)

	// MarkDelivered records delivery.
	MarkDelivered(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// Delete removes an order.
	Delete(ctx context.Context, id uuid.UUID) error

	// Export writes every order as a spreadsheet.
	Export(ctx context.Context, w io.Writer) error
}

// ReportService builds the admin dashboard.
type ReportService interface {
	// Summary aggregates sales, users and catalogue health.
	Summary(ctx context.Context) (*model.Summary, error)
}

// SeedService resets the store to the sample data set.
type SeedService interface {
	// Seed replaces every product and user with the sample data.
	Seed(ctx context.Context) (*model.SeedResult, error)
}
