package domain

import "context"

// Product represents a catalog item.
// Money is integer cents throughout; totals never touch floating point.
// Once a product is placed into a cart line the cart holds its own copy,
// so later catalog edits do not rewrite carts in flight.
type Product struct {
	ID            int64  `json:"id"`
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description" validate:"required"`
	PriceCents    int64  `json:"priceCents" validate:"min=1"`
	Category      string `json:"category" validate:"required"`
	ImageData     []byte `json:"-"`
	ImageMimeType string `json:"imageMimeType,omitempty"`
}

// productMessages maps validation failures to user-facing form messages.
var productMessages = map[string]string{
	"name":        "Please enter a product name",
	"description": "Please enter a description",
	"price":       "Please enter a positive price",
	"category":    "Please specify a category",
}

// Validate checks the entity's required and range rules.
// Returns a *ValidationError with a field->message mapping, or nil.
func (p *Product) Validate() error {
	fields := checkStruct(p, map[string]string{
		"Name":        "name",
		"Description": "description",
		"PriceCents":  "price",
		"Category":    "category",
	}, productMessages)
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Op: "product.validate", Fields: fields}
}

// Product-specific errors.
var ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found"}

// ProductRepository supplies the product catalog. The core treats it as
// potentially slow and external and never caches its results.
type ProductRepository interface {
	// ListProducts returns the full catalog in repository order.
	ListProducts(ctx context.Context) ([]Product, error)

	// ListProductsByCategory returns the products in one category,
	// repository order preserved.
	ListProductsByCategory(ctx context.Context, category string) ([]Product, error)

	// GetProduct returns the product with the given id, or
	// ErrProductNotFound when no such product exists.
	GetProduct(ctx context.Context, id int64) (*Product, error)

	// SaveProduct inserts the product when ID is zero, otherwise updates
	// the existing row. On insert the generated ID is written back.
	SaveProduct(ctx context.Context, p *Product) error

	// DeleteProduct removes the product with the given id. Deleting an
	// unknown id is not an error.
	DeleteProduct(ctx context.Context, id int64) error

	// ListCategories returns the distinct categories in the catalog.
	ListCategories(ctx context.Context) ([]string, error)
}
