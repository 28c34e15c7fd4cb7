package service

import (
	"context"
	"errors"

	"github.com/okrause/sportshop/internal/domain"
)

// fakeRepo implements domain.ProductRepository in memory for tests,
// preserving insertion order.
type fakeRepo struct {
	products []domain.Product
	nextID   int64

	saveCalls   int
	deleteCalls int
	failWith    error
}

func newFakeRepo(products ...domain.Product) *fakeRepo {
	r := &fakeRepo{nextID: 1}
	for _, p := range products {
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
		r.products = append(r.products, p)
	}
	return r
}

func (r *fakeRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *fakeRepo) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var out []domain.Product
	for _, p := range r.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for i := range r.products {
		if r.products[i].ID == id {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *fakeRepo) SaveProduct(ctx context.Context, p *domain.Product) error {
	r.saveCalls++
	if r.failWith != nil {
		return r.failWith
	}
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
		r.products = append(r.products, *p)
		return nil
	}
	for i := range r.products {
		if r.products[i].ID == p.ID {
			r.products[i] = *p
			return nil
		}
	}
	r.products = append(r.products, *p)
	return nil
}

func (r *fakeRepo) DeleteProduct(ctx context.Context, id int64) error {
	r.deleteCalls++
	if r.failWith != nil {
		return r.failWith
	}
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeRepo) ListCategories(ctx context.Context) ([]string, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	seen := map[string]bool{}
	var out []string
	for _, p := range r.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out, nil
}

var errRepoDown = errors.New("connection refused")
