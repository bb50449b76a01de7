package handler

import (
	"bytes"
	"net/http"
	"strconv"

	"garastore/internal/model"
	"garastore/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles catalogue HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// GetAll handles GET /api/products.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetAll(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// Search handles GET /api/products/search.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := queryInt(q.Get("page"), "page")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	pageSize, err := queryInt(q.Get("pageSize"), "pageSize")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	result, err := h.service.Search(r.Context(), model.ProductFilter{
		Category: q.Get("category"),
		Price:    q.Get("price"),
		Rating:   q.Get("rating"),
		Query:    q.Get("query"),
		Order:    q.Get("order"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ListAdmin handles GET /api/products/admin.
func (h *ProductHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := queryInt(q.Get("page"), "page")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	pageSize, err := queryInt(q.Get("pageSize"), "pageSize")
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	result, err := h.service.ListAdmin(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Categories handles GET /api/products/categories.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

// GetBySlug handles GET /api/products/slug/{slug}.
func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// GetByID handles GET /api/products/{id}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, model.ErrProductNotFound)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products by inserting a sample product.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.CreateSample(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.ProductMutationResponse{Message: "Product Created", Product: product})
}

// Update handles PUT /api/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, model.ErrProductNotFound)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req model.ProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	product, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.ProductMutationResponse{Message: "Product Updated", Product: product})
}

// Delete handles DELETE /api/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, model.ErrProductNotFound)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Product Deleted"})
}

// AddReview handles POST /api/products/{id}/reviews.
func (h *ProductHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	identity, err := caller(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	id, err := pathID(r, model.ErrProductNotFound)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	var req model.ReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	resp, err := h.service.AddReview(r.Context(), id, identity, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Export handles GET /api/products/export.
func (h *ProductHandler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.service.Export(r.Context(), &buf); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeFile(w, "products.xlsx", buf.Bytes(), h.logger)
}

// queryInt parses an optional integer query parameter; empty means zero.
func queryInt(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.NewValidationError("invalid " + name + " parameter")
	}
	return v, nil
}
