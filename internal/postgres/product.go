// Package postgres implements the catalog repository over PostgreSQL.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okrause/sportshop/internal/domain"
)

// ProductRepository implements domain.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// Compile-time check that ProductRepository implements domain.ProductRepository.
var _ domain.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `id, name, description, price_cents, category, image_data, image_mime_type`

// ListProducts returns the full catalog ordered by id.
func (r *ProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, domain.Internal(err, "product.list", "failed to list products")
	}
	defer rows.Close()

	return scanProducts(rows)
}

// ListProductsByCategory returns one category's products ordered by id.
func (r *ProductRepository) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE category = $1 ORDER BY id`, category)
	if err != nil {
		return nil, domain.Internal(err, "product.list", "failed to list products by category")
	}
	defer rows.Close()

	return scanProducts(rows)
}

// GetProduct returns the product with the given id, or ErrProductNotFound.
func (r *ProductRepository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, "product.get", "failed to load product")
	}
	return p, nil
}

// SaveProduct inserts when ID is zero, otherwise updates the existing row.
// On insert the generated id is written back to p.
func (r *ProductRepository) SaveProduct(ctx context.Context, p *domain.Product) error {
	mime := pgtype.Text{String: p.ImageMimeType, Valid: p.ImageMimeType != ""}

	if p.ID == 0 {
		err := r.pool.QueryRow(ctx,
			`INSERT INTO products (name, description, price_cents, category, image_data, image_mime_type)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id`,
			p.Name, p.Description, p.PriceCents, p.Category, p.ImageData, mime,
		).Scan(&p.ID)
		if err != nil {
			return domain.Internal(err, "product.save", "failed to insert product")
		}
		return nil
	}

	_, err := r.pool.Exec(ctx,
		`UPDATE products
		 SET name = $2, description = $3, price_cents = $4, category = $5,
		     image_data = $6, image_mime_type = $7
		 WHERE id = $1`,
		p.ID, p.Name, p.Description, p.PriceCents, p.Category, p.ImageData, mime,
	)
	if err != nil {
		return domain.Internal(err, "product.save", "failed to update product")
	}
	return nil
}

// DeleteProduct removes the product with the given id. Unknown ids are not
// an error.
func (r *ProductRepository) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return domain.Internal(err, "product.delete", "failed to delete product")
	}
	return nil
}

// ListCategories returns the distinct categories in alphabetical order.
func (r *ProductRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, domain.Internal(err, "product.categories", "failed to list categories")
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, domain.Internal(err, "product.categories", "failed to scan category")
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "product.categories", "failed to read categories")
	}
	return categories, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p    domain.Product
		mime pgtype.Text
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Category, &p.ImageData, &mime); err != nil {
		return nil, err
	}
	if mime.Valid {
		p.ImageMimeType = mime.String
	}
	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.Internal(err, "product.list", "failed to scan product")
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, "product.list", "failed to read products")
	}
	return products, nil
}
