package service

import (
	"context"
	"fmt"
	"time"

	"garastore/internal/auth"
	"garastore/internal/model"
	"garastore/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SeedPassword is the password of every sample account.
const SeedPassword = "123456"

type sampleProduct struct {
	name, slug, category, image string
	price                       float64
	countInStock                int
	rating                      float64
	numReviews                  int
	description                 string
}

var sampleProducts = []sampleProduct{
	{"Wrapround Linen Dress", "Wrapround-Linen-Dress", "Dress", "/images/p1.jpg", 3500, 0, 4.5, 25, "Good quality Linen Wrapround Dress"},
	{"Sleevless Shift Dress", "Sleevless-Shift-Dress", "Dress", "/images/p2.jpg", 2500, 20, 2.5, 10, "Good quality Linen Sleevless Shift Dress"},
	{"BackButton Sleevless Top", "Back-Button-Sleevless-Top", "Tops", "/images/p3.jpg", 1700, 20, 4.5, 20, "Good quality Linen Back Button Sleevless Top"},
	{"Sleeveless FrontButton Dress", "Sleeveless-Front-Button-Dress", "Dress", "/images/p4.jpg", 3500, 20, 4.5, 25, "Good quality Linen Sleeveless Front Button Dress"},
	{"Red Color Bottom Top", "Red-Color-Bottom-Top", "Tops", "/images/p5.jpg", 2800, 20, 4.5, 30, "Good quality Linen Sleeveless Bottom Top"},
	{"Yellow Color Top", "Yellow-Color-Top", "Tops", "/images/p6.jpg", 4500, 20, 4.5, 25, "Good quality Tops"},
	{"Red Short Skirt", "Red-Short-Skirt", "Skirts", "/images/p7.jpg", 2500, 20, 4.5, 25, "Good quality Linen Skirts"},
	{"Sleevless Black Top", "Sleevless-Black-Top", "Top", "/images/p8.jpg", 4500, 20, 3.5, 35, "Good quality Linen Top"},
}

type sampleUser struct {
	name, email string
	isAdmin     bool
}

var sampleUsers = []sampleUser{
	{"Thenura", model.SeedAdminEmail, true},
	{"John", "user@example.com", false},
}

// seedService implements SeedService.
type seedService struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	logger      zerolog.Logger
}

// NewSeedService creates a new seed service.
func NewSeedService(productRepo repository.ProductRepository, userRepo repository.UserRepository, logger zerolog.Logger) SeedService {
	return &seedService{
		productRepo: productRepo,
		userRepo:    userRepo,
		logger:      logger.With().Str("service", "seed").Logger(),
	}
}

// Seed replaces every product and user with the sample data.
func (s *seedService) Seed(ctx context.Context) (*model.SeedResult, error) {
	now := time.Now().UTC()

	products := make([]model.Product, len(sampleProducts))
	for i, p := range sampleProducts {
		products[i] = model.Product{
			ID:           model.NewID(),
			Name:         p.name,
			Slug:         p.slug,
			Image:        p.image,
			Images:       []string{},
			Material:     "Linen",
			Category:     p.category,
			Description:  p.description,
			Price:        p.price,
			CountInStock: p.countInStock,
			Rating:       p.rating,
			NumReviews:   p.numReviews,
			Reviews:      []model.Review{},
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	hash, err := auth.HashPassword(SeedPassword)
	if err != nil {
		return nil, err
	}

	users := make([]model.User, len(sampleUsers))
	for i, u := range sampleUsers {
		users[i] = model.User{
			ID:           uuid.New(),
			Name:         u.name,
			Email:        u.email,
			PasswordHash: hash,
			IsAdmin:      u.isAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	if err := s.productRepo.ReplaceAll(ctx, products); err != nil {
		return nil, fmt.Errorf("failed to seed products: %w", err)
	}
	if err := s.userRepo.ReplaceAll(ctx, users); err != nil {
		return nil, fmt.Errorf("failed to seed users: %w", err)
	}

	s.logger.Info().
		Int("products", len(products)).
		Int("users", len(users)).
		Msg("sample data seeded")

	return &model.SeedResult{CreatedProducts: products, CreatedUsers: users}, nil
}
