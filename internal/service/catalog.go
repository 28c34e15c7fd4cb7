package service

import (
	"context"
	"errors"

	"github.com/okrause/sportshop/internal/domain"
)

// CatalogService translates product identifiers into cart mutations.
// The cart itself is supplied by the caller from the session store.
type CatalogService struct {
	repo domain.ProductRepository
}

// NewCatalogService creates a new CatalogService instance.
func NewCatalogService(repo domain.ProductRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// AddToCart looks up productID and adds quantity of it to the cart.
// An unknown id is silently a no-op: the caller was bound to a catalog
// listing, so a missing product means the listing is stale, not that the
// request is faulty. Returns whether a line was added or merged.
func (s *CatalogService) AddToCart(ctx context.Context, cart *domain.Cart, productID int64, quantity int) (bool, error) {
	p, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return false, nil
		}
		return false, domain.WrapError(err, domain.EINTERNAL, "cart.add", "failed to look up product")
	}

	cart.AddItem(*p, quantity)
	return true, nil
}

// RemoveFromCart removes the line for productID from the cart. Unknown ids
// and products not in the cart are both no-ops.
func (s *CatalogService) RemoveFromCart(ctx context.Context, cart *domain.Cart, productID int64) error {
	p, err := s.repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil
		}
		return domain.WrapError(err, domain.EINTERNAL, "cart.remove", "failed to look up product")
	}

	cart.RemoveLine(*p)
	return nil
}
