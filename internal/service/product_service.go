package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"garastore/internal/auth"
	"garastore/internal/export"
	"garastore/internal/model"
	"garastore/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
		now:         time.Now,
	}
}

// GetAll retrieves every product.
func (s *productService) GetAll(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a product with its reviews.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// GetBySlug retrieves a product with its reviews.
func (s *productService) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		s.logger.Error().Err(err).Str("slug", slug).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// Search runs a catalogue query and returns one page of results.
func (s *productService) Search(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = model.DefaultPageSize
	}

	products, count, err := s.productRepo.Search(ctx, filter)
	if err != nil {
		if _, ok := model.AsDomainError(err); ok {
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return &model.ProductPage{
		Products:      products,
		CountProducts: count,
		Page:          filter.Page,
		Pages:         model.TotalPages(count, filter.PageSize),
	}, nil
}

// ListAdmin returns one page of the full catalogue in insertion order.
func (s *productService) ListAdmin(ctx context.Context, page, pageSize int) (*model.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = model.DefaultPageSize
	}

	products, count, err := s.productRepo.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return &model.ProductPage{
		Products:      products,
		CountProducts: count,
		Page:          page,
		Pages:         model.TotalPages(count, pageSize),
	}, nil
}

// Categories returns the distinct categories.
func (s *productService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.productRepo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// CreateSample inserts a placeholder product. Name and slug carry a
// millisecond timestamp so consecutive samples stay unique.
func (s *productService) CreateSample(ctx context.Context) (*model.Product, error) {
	now := s.now().UTC()
	stamp := now.UnixMilli()

	product := &model.Product{
		ID:          model.NewID(),
		Name:        fmt.Sprintf("sample name %d", stamp),
		Slug:        fmt.Sprintf("sample-name-%d", stamp),
		Image:       "/images/p1.jpg",
		Images:      []string{},
		Material:    "sample material",
		Category:    "sample category",
		Description: "sample description",
		Reviews:     []model.Review{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", product.ID.String()).Msg("sample product created")
	return product, nil
}

// Update applies an admin edit to a product.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = strings.TrimSpace(req.Name)
	product.Slug = strings.TrimSpace(req.Slug)
	product.Image = req.Image
	product.Images = req.Images
	product.Material = req.Material
	product.Category = strings.TrimSpace(req.Category)
	product.Description = req.Description
	product.Price = req.Price
	product.CountInStock = req.CountInStock

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product updated")
	return product, nil
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product deleted")
	return nil
}

// AddReview records the caller's review. The reviewer is identified by the
// caller's display name; a second review under the same name is rejected.
func (s *productService) AddReview(ctx context.Context, productID uuid.UUID, caller *auth.Identity, req *model.ReviewRequest) (*model.ReviewResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, model.ErrInvalidRating
	}

	review := &model.Review{
		ID:        uuid.New(),
		Name:      caller.Name,
		Comment:   strings.TrimSpace(req.Comment),
		Rating:    req.Rating,
		CreatedAt: s.now().UTC(),
	}

	product, err := s.productRepo.AddReview(ctx, productID, review)
	if err != nil {
		if _, ok := model.AsDomainError(err); !ok {
			s.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to add review")
		}
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().
		Str("product_id", productID.String()).
		Int("num_reviews", product.NumReviews).
		Float64("rating", product.Rating).
		Msg("review created")

	return &model.ReviewResponse{
		Message:    "Review Created",
		Review:     *review,
		NumReviews: product.NumReviews,
		Rating:     product.Rating,
	}, nil
}

// Export writes the catalogue as a spreadsheet.
func (s *productService) Export(ctx context.Context, w io.Writer) error {
	products, err := s.GetAll(ctx)
	if err != nil {
		return err
	}
	return export.WriteProducts(w, products)
}

func validateProductRequest(req *model.ProductRequest) error {
	if req == nil {
		return model.NewValidationError("product payload is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return model.NewValidationError("Name is required")
	}
	if strings.TrimSpace(req.Slug) == "" {
		return model.NewValidationError("Slug is required")
	}
	if strings.TrimSpace(req.Category) == "" {
		return model.NewValidationError("Category is required")
	}
	if req.Price < 0 {
		return model.NewValidationError("Price cannot be negative")
	}
	if req.CountInStock < 0 {
		return model.NewValidationError("Count in stock cannot be negative")
	}
	return nil
}
