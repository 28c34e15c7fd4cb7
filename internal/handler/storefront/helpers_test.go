package storefront

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/okrause/sportshop/internal/cookie"
	"github.com/okrause/sportshop/internal/domain"
	"github.com/okrause/sportshop/internal/service"
	"github.com/okrause/sportshop/internal/session"
)

// fakeRepo is an in-memory ProductRepository for handler tests.
type fakeRepo struct {
	products []domain.Product
}

func (r *fakeRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return append([]domain.Product(nil), r.products...), nil
}

func (r *fakeRepo) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range r.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *fakeRepo) SaveProduct(ctx context.Context, p *domain.Product) error {
	for i := range r.products {
		if r.products[i].ID == p.ID {
			r.products[i] = *p
			return nil
		}
	}
	if p.ID == 0 {
		p.ID = int64(len(r.products) + 1)
	}
	r.products = append(r.products, *p)
	return nil
}

func (r *fakeRepo) DeleteProduct(ctx context.Context, id int64) error {
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeRepo) ListCategories(ctx context.Context) ([]string, error) {
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

var errSMTPDown = errors.New("smtp: connection refused")

// mockProcessor records order submissions.
type mockProcessor struct {
	calls int
	err   error
}

func (m *mockProcessor) ProcessOrder(ctx context.Context, cart *domain.Cart, details *domain.ShippingDetails) error {
	m.calls++
	return m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Kayak", Description: "A boat for one person", PriceCents: 27500, Category: "Watersports"},
		{ID: 2, Name: "Lifejacket", Description: "Protective and fashionable", PriceCents: 4895, Category: "Watersports"},
		{ID: 3, Name: "Soccer ball", Description: "FIFA-approved size and weight", PriceCents: 1950, Category: "Soccer"},
	}
}

const testCookieName = "sportshop_session"

func newCartTestHandler(t *testing.T, repo *fakeRepo) (*CartHandler, *session.Store) {
	t.Helper()
	sessions := session.NewStore(time.Hour, discardLogger())
	catalog := service.NewCatalogService(repo)
	cookies := cookie.NewConfig(false)
	return NewCartHandler(catalog, sessions, cookies, testCookieName), sessions
}

// postForm builds a form POST with an optional session cookie.
func postForm(target string, form url.Values, sessionID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: sessionID})
	}
	return req
}

// sessionIDFromResponse extracts the session cookie set by a handler.
func sessionIDFromResponse(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookieName {
			return c.Value
		}
	}
	t.Fatal("no session cookie in response")
	return ""
}
