package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"garastore/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_CreateAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewProductRepository(pool, zerolog.Nop())

	p := newTestProduct("Free Shirt", "Shirts", 70, 20)
	p.Images = []string{"/images/free-shirt-2.jpg"}
	require.NoError(t, repo.Create(ctx, &p))

	byID, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Free Shirt", byID.Name)
	assert.Equal(t, 70.0, byID.Price)
	assert.Equal(t, []string{"/images/free-shirt-2.jpg"}, byID.Images)
	assert.Empty(t, byID.Reviews)

	bySlug, err := repo.GetBySlug(ctx, "free-shirt")
	require.NoError(t, err)
	require.NotNil(t, bySlug)
	assert.Equal(t, p.ID, bySlug.ID)

	missing, err := repo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	dup := newTestProduct("Free Shirt", "Shirts", 10, 1)
	dup.Slug = "another-slug"
	assert.ErrorIs(t, repo.Create(ctx, &dup), model.ErrDuplicateProduct)
}

func TestProductRepository_UpdateAndDelete(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewProductRepository(pool, zerolog.Nop())

	p := newTestProduct("Slim Pants", "Pants", 90, 5)
	require.NoError(t, repo.Create(ctx, &p))

	p.Price = 95.5
	p.CountInStock = 0
	require.NoError(t, repo.Update(ctx, &p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 95.5, got.Price)
	assert.Equal(t, 0, got.CountInStock)

	ghost := newTestProduct("Ghost", "Pants", 1, 1)
	assert.ErrorIs(t, repo.Update(ctx, &ghost), model.ErrProductNotFound)

	require.NoError(t, repo.Delete(ctx, p.ID))
	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductRepository_SearchPagination(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewProductRepository(pool, zerolog.Nop())

	for i := 0; i < 7; i++ {
		seedProducts(t, repo, newTestProduct(fmt.Sprintf("Item %d", i), "Shirts", float64(10+i), 5))
	}

	seen := map[uuid.UUID]bool{}
	total := 0
	pages := 0
	for page := 1; ; page++ {
		products, count, err := repo.Search(ctx, model.ProductFilter{Page: page, PageSize: 3})
		require.NoError(t, err)
		assert.Equal(t, 7, count)
		pages = model.TotalPages(count, 3)
		if len(products) == 0 {
			break
		}
		for _, p := range products {
			assert.False(t, seen[p.ID], "product %s returned twice", p.Name)
			seen[p.ID] = true
		}
		total += len(products)
	}

	assert.Equal(t, 7, total)
	assert.Equal(t, 3, pages)
}

func TestProductRepository_SearchFilters(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewProductRepository(pool, zerolog.Nop())

	shirt := newTestProduct("Fit Shirt", "Shirts", 80, 20)
	shirt.Rating = 4.5
	pants := newTestProduct("Fit Pants", "Pants", 25, 20)
	pants.Rating = 3
	cheap := newTestProduct("Classic Pants", "Pants", 5, 20)
	cheap.Rating = 4
	seedProducts(t, repo, shirt, pants, cheap)

	tests := []struct {
		name     string
		filter   model.ProductFilter
		expected []string
	}{
		{"Category", model.ProductFilter{Category: "Pants", Order: "lowest"}, []string{"Classic Pants", "Fit Pants"}},
		{"Price range", model.ProductFilter{Price: "1-50", Order: "highest"}, []string{"Fit Pants", "Classic Pants"}},
		{"Rating", model.ProductFilter{Rating: "4", Order: "toprated"}, []string{"Fit Shirt", "Classic Pants"}},
		{"Query case insensitive", model.ProductFilter{Query: "fit", Order: "lowest"}, []string{"Fit Pants", "Fit Shirt"}},
		{"Newest first by default", model.ProductFilter{}, []string{"Classic Pants", "Fit Pants", "Fit Shirt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.filter.PageSize = 10
			products, count, err := repo.Search(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, len(tt.expected), count)

			names := make([]string, len(products))
			for i, p := range products {
				names[i] = p.Name
			}
			assert.Equal(t, tt.expected, names)
		})
	}

	categories, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pants", "Shirts"}, categories)
}

func TestProductRepository_AddReview(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewProductRepository(pool, zerolog.Nop())

	p := newTestProduct("Golf Pants", "Pants", 90, 10)
	seedProducts(t, repo, p)

	review := func(name string, rating int) *model.Review {
		return &model.Review{
			ID:        uuid.New(),
			Name:      name,
			Comment:   "comment from " + name,
			Rating:    rating,
			CreatedAt: time.Now().UTC(),
		}
	}

	updated, err := repo.AddReview(ctx, p.ID, review("Alice", 5))
	require.NoError(t, err)
	assert.Equal(t, 1, updated.NumReviews)
	assert.Equal(t, 5.0, updated.Rating)

	updated, err = repo.AddReview(ctx, p.ID, review("Bob", 2))
	require.NoError(t, err)
	assert.Equal(t, 2, updated.NumReviews)
	assert.InDelta(t, 3.5, updated.Rating, 1e-9)
	require.Len(t, updated.Reviews, 2)

	_, err = repo.AddReview(ctx, p.ID, review("Alice", 1))
	assert.ErrorIs(t, err, model.ErrAlreadyReviewed)

	_, err = repo.AddReview(ctx, uuid.New(), review("Carol", 4))
	assert.ErrorIs(t, err, model.ErrProductNotFound)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.NumReviews)
	assert.InDelta(t, 3.5, got.Rating, 1e-9)
}

func TestProductRepository_ListAndReplaceAll(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewProductRepository(pool, zerolog.Nop())

	seedProducts(t, repo, newTestProduct("Old One", "Shirts", 10, 1))

	err := repo.ReplaceAll(ctx, []model.Product{
		newTestProduct("Seed A", "Shirts", 10, 1),
		newTestProduct("Seed B", "Pants", 20, 2),
		newTestProduct("Seed C", "Pants", 30, 3),
	})
	require.NoError(t, err)

	page, count, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.Len(t, page, 2)
	assert.Equal(t, "Seed A", page[0].Name)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
