package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultPageSize is the page size used by catalogue search and the admin list.
const DefaultPageSize = 3

// Product represents a catalogue item.
type Product struct {
	ID           uuid.UUID `json:"_id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Slug         string    `json:"slug" db:"slug"`
	Image        string    `json:"image" db:"image"`
	Images       []string  `json:"images" db:"images"`
	Material     string    `json:"material" db:"material"`
	Category     string    `json:"category" db:"category"`
	Description  string    `json:"description" db:"description"`
	Price        float64   `json:"price" db:"price"`
	CountInStock int       `json:"countInStock" db:"count_in_stock"`
	Rating       float64   `json:"rating" db:"rating"`
	NumReviews   int       `json:"numReviews" db:"num_reviews"`
	Reviews      []Review  `json:"reviews"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Review is a customer review attached to a product.
type Review struct {
	ID        uuid.UUID `json:"_id" db:"id"`
	ProductID uuid.UUID `json:"-" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Comment   string    `json:"comment" db:"comment"`
	Rating    int       `json:"rating" db:"rating"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ProductRequest is the admin payload for creating or updating a product.
type ProductRequest struct {
	Name         string   `json:"name"`
	Slug         string   `json:"slug"`
	Image        string   `json:"image"`
	Images       []string `json:"images"`
	Material     string   `json:"material"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	CountInStock int      `json:"countInStock"`
}

// ReviewRequest is the payload for POST /api/products/{id}/reviews.
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ReviewResponse carries the new review with the refreshed aggregate fields.
type ReviewResponse struct {
	Message    string  `json:"message"`
	Review     Review  `json:"review"`
	NumReviews int     `json:"numReviews"`
	Rating     float64 `json:"rating"`
}

// ProductFilter describes a catalogue query. Zero values mean "no constraint".
type ProductFilter struct {
	Category string
	Price    string // "min-max"
	Rating   string
	Query    string
	Order    string
	Page     int
	PageSize int
}

// Catalogue sort orders.
const (
	SortFeatured = "featured"
	SortLowest   = "lowest"
	SortHighest  = "highest"
	SortTopRated = "toprated"
	SortNewest   = "newest"
)

// ProductPage is a page of catalogue results.
type ProductPage struct {
	Products      []Product `json:"products"`
	CountProducts int       `json:"countProducts"`
	Page          int       `json:"page"`
	Pages         int       `json:"pages"`
}

// TotalPages returns ceil(count/pageSize).
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// ProductMutationResponse is returned by admin create/update.
type ProductMutationResponse struct {
	Message string   `json:"message"`
	Product *Product `json:"product,omitempty"`
}

// NewID returns a time-ordered identifier, so ordering by id follows insertion order.
func NewID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}
