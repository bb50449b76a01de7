package repository

import (
	"context"
	"errors"
	"fmt"

	"garastore/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = `id, name, slug, image, images, material, category, description,
	price, count_in_stock, rating, num_reviews, created_at, updated_at`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Image,
		&p.Images,
		&p.Material,
		&p.Category,
		&p.Description,
		&p.Price,
		&p.CountInStock,
		&p.Rating,
		&p.NumReviews,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	p.Reviews = []model.Review{}
	return &p, nil
}

func insertProduct(ctx context.Context, q querier, p *model.Product) error {
	images := p.Images
	if images == nil {
		images = []string{}
	}

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := q.Exec(ctx, query,
		p.ID, p.Name, p.Slug, p.Image, images, p.Material, p.Category, p.Description,
		p.Price, p.CountInStock, p.Rating, p.NumReviews, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetAll retrieves all products in insertion order.
func (r *productRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
}

// GetByID retrieves a single product with its reviews.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return r.getOne(ctx, "id", id)
}

// GetBySlug retrieves a single product with its reviews.
func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return r.getOne(ctx, "slug", slug)
}

func (r *productRepository) getOne(ctx context.Context, column string, value any) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + column + ` = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str(column, fmt.Sprint(value)).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str(column, fmt.Sprint(value)).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	reviews, err := r.reviews(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Reviews = reviews

	return p, nil
}

func (r *productRepository) reviews(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	query := `
		SELECT id, product_id, name, comment, rating, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.Name, &rv.Comment, &rv.Rating, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// Search runs a filtered, sorted, paginated catalogue query and returns the
// page together with the total number of matches.
func (r *productRepository) Search(ctx context.Context, filter model.ProductFilter) ([]model.Product, int, error) {
	q, err := buildProductQuery(filter)
	if err != nil {
		return nil, 0, err
	}

	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products `+q.where, q.args...).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	args := append(append([]any{}, q.args...), q.limit, q.offset)
	query := fmt.Sprintf(`SELECT %s FROM products %s %s LIMIT $%d OFFSET $%d`,
		productColumns, q.where, q.orderBy, len(args)-1, len(args))

	products, err := r.queryProducts(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	r.logger.Debug().
		Int("count", count).
		Int("page", q.page).
		Int("returned", len(products)).
		Msg("catalogue search")

	return products, count, nil
}

// List returns one page of products in insertion order for the admin list.
func (r *productRepository) List(ctx context.Context, limit, offset int) ([]model.Product, int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	products, err := r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

// Categories returns the distinct product categories in alphabetical order.
func (r *productRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect categories: %w", err)
	}
	return categories, nil
}

// Create inserts a product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	if err := insertProduct(ctx, r.pool, product); err != nil {
		if isUniqueViolation(err) {
			r.logger.Debug().Str("constraint", constraintName(err)).Msg("duplicate product")
			return model.ErrDuplicateProduct
		}
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("product_id", product.ID.String()).Msg("product created successfully")
	return nil
}

// Update persists the editable product fields. Rating, numReviews and reviews
// are owned by AddReview and never written here.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	images := product.Images
	if images == nil {
		images = []string{}
	}

	query := `
		UPDATE products
		SET name = $2, slug = $3, image = $4, images = $5, material = $6,
			category = $7, description = $8, price = $9, count_in_stock = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		product.ID, product.Name, product.Slug, product.Image, images, product.Material,
		product.Category, product.Description, product.Price, product.CountInStock,
	).Scan(&product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrProductNotFound
		}
		if isUniqueViolation(err) {
			return model.ErrDuplicateProduct
		}
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

// Delete removes a product; its reviews cascade.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	r.logger.Debug().Str("product_id", id.String()).Msg("product deleted")
	return nil
}

// AddReview appends review and recomputes the product's rating and
// numReviews from the full review set in the same transaction. The product
// row is locked first so concurrent reviews serialize.
func (r *productRepository) AddReview(ctx context.Context, productID uuid.UUID, review *model.Review) (*model.Product, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	var locked uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM products WHERE id = $1 FOR UPDATE`, productID).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to lock product: %w", err)
	}

	review.ProductID = productID
	_, err = tx.Exec(ctx, `
		INSERT INTO reviews (id, product_id, name, comment, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, review.ID, review.ProductID, review.Name, review.Comment, review.Rating, review.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Debug().
				Str("product_id", productID.String()).
				Str("reviewer", review.Name).
				Msg("reviewer already reviewed product")
			return nil, model.ErrAlreadyReviewed
		}
		r.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to insert review")
		return nil, fmt.Errorf("failed to insert review: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE products
		SET num_reviews = (SELECT COUNT(*) FROM reviews WHERE product_id = $1),
			rating = COALESCE((SELECT AVG(rating)::float8 FROM reviews WHERE product_id = $1), 0),
			updated_at = NOW()
		WHERE id = $1
	`, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to recompute rating")
		return nil, fmt.Errorf("failed to recompute rating: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit review: %w", err)
	}

	r.logger.Debug().Str("product_id", productID.String()).Msg("review added")

	return r.GetByID(ctx, productID)
}

// ReplaceAll deletes every product and inserts products in one transaction.
func (r *productRepository) ReplaceAll(ctx context.Context, products []model.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}

	for i := range products {
		if err := insertProduct(ctx, tx, &products[i]); err != nil {
			r.logger.Error().Err(err).Str("slug", products[i].Slug).Msg("failed to insert seed product")
			return fmt.Errorf("failed to insert product %s: %w", products[i].Slug, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit products: %w", err)
	}

	r.logger.Info().Int("count", len(products)).Msg("products replaced")
	return nil
}
