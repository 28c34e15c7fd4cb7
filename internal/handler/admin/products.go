package admin

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/okrause/sportshop/internal/domain"
	"github.com/okrause/sportshop/internal/handler"
	"github.com/okrause/sportshop/internal/service"
)

// maxImageUploadBytes caps product image uploads.
const maxImageUploadBytes = 5 << 20 // 5 MiB

// ProductHandler handles the admin product CRUD routes
type ProductHandler struct {
	products *service.ProductService
}

// NewProductHandler creates a new admin product handler
func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List handles GET /admin/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]any{
		"products": products,
	})
}

// Edit handles GET /admin/products/{id}
func (h *ProductHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("admin.product.edit", "invalid product id"))
		return
	}

	p, err := h.products.Get(r.Context(), id)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if p == nil {
		handler.ErrorResponse(w, r, domain.NotFound("admin.product.edit", "product", r.PathValue("id")))
		return
	}

	handler.RespondJSON(w, http.StatusOK, p)
}

// Save handles POST /admin/products for both creates and updates.
// An id of 0 (or no id) creates a new product. The form may be multipart
// to carry an image upload; without one an existing product keeps its
// stored image.
func (h *ProductHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
			handler.ErrorResponse(w, r, domain.Invalid("admin.product.save", "invalid form data"))
			return
		}
	} else if err := r.ParseForm(); err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("admin.product.save", "invalid form data"))
		return
	}

	var id int64
	if idValue := r.FormValue("id"); idValue != "" {
		parsed, err := strconv.ParseInt(idValue, 10, 64)
		if err != nil {
			handler.ErrorResponse(w, r, domain.Invalid("admin.product.save", "invalid product id"))
			return
		}
		id = parsed
	}

	var priceCents int64
	if priceValue := r.FormValue("price_cents"); priceValue != "" {
		parsed, err := strconv.ParseInt(priceValue, 10, 64)
		if err != nil {
			handler.ErrorResponse(w, r, domain.Invalid("admin.product.save", "invalid price"))
			return
		}
		priceCents = parsed
	}

	p := &domain.Product{
		ID:          id,
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		PriceCents:  priceCents,
		Category:    r.FormValue("category"),
	}

	imageData, imageMimeType, err := readImageUpload(r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	switch {
	case imageData != nil:
		p.ImageData = imageData
		p.ImageMimeType = imageMimeType
	case id != 0:
		// No new upload: an update keeps the stored image.
		existing, err := h.products.Get(ctx, id)
		if err != nil {
			handler.ErrorResponse(w, r, err)
			return
		}
		if existing != nil {
			p.ImageData = existing.ImageData
			p.ImageMimeType = existing.ImageMimeType
		}
	}

	if err := h.products.Save(ctx, p); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// Delete handles POST /admin/products/{id}/delete
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("admin.product.delete", "invalid product id"))
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// readImageUpload extracts an optional image file from a multipart form.
// Returns (nil, "", nil) when no file was uploaded.
func readImageUpload(r *http.Request) ([]byte, string, error) {
	if r.MultipartForm == nil {
		return nil, "", nil
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", domain.Invalid("admin.product.save", "invalid image upload")
	}
	defer file.Close()

	if header.Size > maxImageUploadBytes {
		return nil, "", domain.Invalid("admin.product.save", "image too large")
	}

	// Read one byte past the cap so a stream longer than the declared
	// size is rejected rather than truncated.
	data, err := io.ReadAll(io.LimitReader(file, maxImageUploadBytes+1))
	if err != nil {
		return nil, "", domain.Internal(err, "admin.product.save", "failed to read image upload")
	}
	if len(data) > maxImageUploadBytes {
		return nil, "", domain.Invalid("admin.product.save", "image too large")
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	return data, mimeType, nil
}
