package storefront

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/okrause/sportshop/internal/domain"
	"github.com/okrause/sportshop/internal/handler"
	"github.com/okrause/sportshop/internal/service"
)

// ProductHandler handles the public product catalog routes
type ProductHandler struct {
	products *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// productListResponse is the catalog page payload. CurrentCategory is empty
// when the full catalog is shown.
type productListResponse struct {
	Products        []domain.Product `json:"products"`
	Categories      []string         `json:"categories"`
	CurrentCategory string           `json:"currentCategory,omitempty"`
}

// List handles GET /products with an optional category filter
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	category := r.URL.Query().Get("category")

	products, err := h.products.ListByCategory(ctx, category)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	categories, err := h.products.Categories(ctx)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, productListResponse{
		Products:        products,
		Categories:      categories,
		CurrentCategory: category,
	})
}

// Image handles GET /products/{id}/image, serving the stored image bytes
// with their recorded content type.
func (h *ProductHandler) Image(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("product.image", "invalid product id"))
		return
	}

	data, mimeType, err := h.products.GetImage(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			handler.ErrorResponse(w, r, domain.NotFound("product.image", "product image", r.PathValue("id")))
			return
		}
		handler.ErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", mimeType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
