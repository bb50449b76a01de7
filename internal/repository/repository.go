package repository

import (
	"context"

	"garastore/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Create inserts a new user. Returns model.ErrDuplicateEmail on email collision.
	Create(ctx context.Context, user *model.User) error

	// GetByID retrieves a user by ID. Returns nil, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByEmail retrieves a user by email. Returns nil, nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// List retrieves every user ordered by creation time.
	List(ctx context.Context) ([]model.User, error)

	// Update persists name, email, password hash, roles and reset token.
	Update(ctx context.Context, user *model.User) error

	// Delete removes a user. Orders referencing the user are left untouched.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of registered users.
	Count(ctx context.Context) (int, error)

	// ReplaceAll deletes every user and inserts users in one transaction.
	ReplaceAll(ctx context.Context, users []model.User) error
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product with its reviews. Returns nil, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetBySlug retrieves a single product with its reviews. Returns nil, nil when absent.
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)

	// Search runs a filtered, sorted, paginated catalogue query.
	Search(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error)

	// List returns one page of products in insertion order for the admin list.
	List(ctx context.Context, limit, offset int) ([]model.Product, int, error)

	// Categories returns the distinct product categories.
	Categories(ctx context.Context) ([]string, error)

	// Create inserts a product. Returns model.ErrDuplicateProduct on name or slug collision.
	Create(ctx context.Context, product *model.Product) error

	// Update persists the editable product fields.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product and its reviews.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddReview appends a review and recomputes rating and numReviews atomically.
	// Returns model.ErrProductNotFound or model.ErrAlreadyReviewed.
	AddReview(ctx context.Context, productID uuid.UUID, review *model.Review) (*model.Product, error)

	// ReplaceAll deletes every product and inserts products in one transaction.
	ReplaceAll(ctx context.Context, products []model.Product) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items. Returns nil, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser retrieves a user's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// ListAll retrieves every order with the owner's name resolved.
	ListAll(ctx context.Context) ([]model.OrderSummary, error)

	// MarkPaid sets the paid flag, payment time and payment result.
	// Returns the updated order, or nil, nil when absent.
	MarkPaid(ctx context.Context, id uuid.UUID, result *model.PaymentResult) (*model.Order, error)

	// MarkDelivered sets the delivered flag and delivery time.
	// Returns the updated order, or nil, nil when absent.
	MarkDelivered(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// Delete removes an order and its items. Returns false when absent.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// ReportRepository defines the read-only aggregations behind the admin summary.
type ReportRepository interface {
	// OrderTotals returns the order count and total sales.
	OrderTotals(ctx context.Context) (model.OrderTotals, error)

	// SalesSeries groups orders by creation date at the given granularity, ascending.
	SalesSeries(ctx context.Context, granularity model.SalesGranularity) ([]model.SalesBucket, error)

	// ProductCategories counts products per category.
	ProductCategories(ctx context.Context) ([]model.CategoryCount, error)

	// TopProducts sums quantity and revenue per product, by quantity descending.
	TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error)

	// LowStockProducts returns products with countInStock at or below threshold.
	LowStockProducts(ctx context.Context, threshold int) ([]model.LowStockProduct, error)

	// RecentOrders returns the newest orders with user names resolved.
	RecentOrders(ctx context.Context, limit int) ([]model.RecentOrder, error)

	// StatusCounts returns the delivered, paid and discounted order counts.
	StatusCounts(ctx context.Context) (delivered, paid, discounted int, err error)
}
