package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/okrause/sportshop/internal/domain"
)

// ProductService provides catalog reads plus the admin CRUD workflow on
// top of the repository. Entities are validated before the repository is
// touched; "not found" lookups are normal branches, never faults.
type ProductService struct {
	repo   domain.ProductRepository
	logger *slog.Logger
}

// NewProductService creates a new ProductService instance.
func NewProductService(repo domain.ProductRepository, logger *slog.Logger) *ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductService{
		repo:   repo,
		logger: logger,
	}
}

// List returns the full catalog, repository order preserved.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

// ListByCategory returns the products in one category, or the full catalog
// when category is empty.
func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	if category == "" {
		return s.repo.ListProducts(ctx)
	}
	return s.repo.ListProductsByCategory(ctx, category)
}

// Categories returns the distinct categories in the catalog.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}

// Get returns the product with the given id, or nil when no product has
// that id.
func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, nil
		}
		return nil, domain.WrapError(err, domain.EINTERNAL, "product.get", "failed to load product")
	}
	return p, nil
}

// Save validates p and persists it. Validation failures are returned as a
// *domain.ValidationError without touching the repository.
func (s *ProductService) Save(ctx context.Context, p *domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if err := s.repo.SaveProduct(ctx, p); err != nil {
		return domain.WrapError(err, domain.EINTERNAL, "product.save", "failed to save product")
	}

	s.logger.Info("product saved", "id", p.ID, "name", p.Name)
	return nil
}

// Delete removes the product with the given id. Deleting an unknown id is
// delegated to repository semantics and is not a client-visible error.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return domain.WrapError(err, domain.EINTERNAL, "product.delete", "failed to delete product")
	}

	s.logger.Info("product deleted", "id", id)
	return nil
}

// GetImage returns the stored image bytes and MIME type for a product.
// Unknown ids and products without an image both report ErrProductNotFound.
func (s *ProductService) GetImage(ctx context.Context, id int64) ([]byte, string, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if len(p.ImageData) == 0 {
		return nil, "", domain.ErrProductNotFound
	}
	return p.ImageData, p.ImageMimeType, nil
}
