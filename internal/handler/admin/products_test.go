package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/okrause/sportshop/internal/domain"
	"github.com/okrause/sportshop/internal/service"
)

// fakeRepo is an in-memory ProductRepository for admin handler tests.
type fakeRepo struct {
	products []domain.Product
	nextID   int64
}

func newFakeRepo(products ...domain.Product) *fakeRepo {
	r := &fakeRepo{products: products}
	for _, p := range products {
		if p.ID >= r.nextID {
			r.nextID = p.ID
		}
	}
	return r
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
	if p.ID == 0 {
		r.nextID++
		p.ID = r.nextID
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

var _ domain.ProductRepository = (*fakeRepo)(nil)

func newTestHandler(repo *fakeRepo) *ProductHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewProductHandler(service.NewProductService(repo, logger))
}

func seedProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Kayak", Description: "A boat for one person", PriceCents: 27500, Category: "Watersports"},
		{ID: 2, Name: "Lifejacket", Description: "Protective and fashionable", PriceCents: 4895, Category: "Watersports"},
	}
}

func postProductForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestAdminList(t *testing.T) {
	h := newTestHandler(newFakeRepo(seedProducts()...))

	req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var response struct {
		Products []domain.Product `json:"products"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Products) != 2 {
		t.Errorf("products = %d, want 2", len(response.Products))
	}
}

func TestAdminEdit(t *testing.T) {
	h := newTestHandler(newFakeRepo(seedProducts()...))

	req := httptest.NewRequest(http.MethodGet, "/admin/products/2", nil)
	req.SetPathValue("id", "2")
	rec := httptest.NewRecorder()
	h.Edit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var p domain.Product
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if p.Name != "Lifejacket" {
		t.Errorf("name = %q, want Lifejacket", p.Name)
	}
}

func TestAdminEdit_UnknownProductIs404(t *testing.T) {
	h := newTestHandler(newFakeRepo(seedProducts()...))

	req := httptest.NewRequest(http.MethodGet, "/admin/products/99", nil)
	req.SetPathValue("id", "99")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.Edit(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestAdminSave_CreatesNewProduct(t *testing.T) {
	repo := newFakeRepo(seedProducts()...)
	h := newTestHandler(repo)

	form := url.Values{
		"name":        {"Corner flags"},
		"description": {"Give your playing field a professional touch"},
		"price_cents": {"3495"},
		"category":    {"Soccer"},
	}
	rec := httptest.NewRecorder()
	h.Save(rec, postProductForm("/admin/products", form))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if location := rec.Header().Get("Location"); location != "/admin/products" {
		t.Errorf("Location = %q, want /admin/products", location)
	}

	if len(repo.products) != 3 {
		t.Fatalf("repo holds %d products, want 3", len(repo.products))
	}
	created := repo.products[2]
	if created.ID == 0 {
		t.Error("new product was not assigned an id")
	}
	if created.Name != "Corner flags" || created.PriceCents != 3495 {
		t.Errorf("created = %+v", created)
	}
}

func TestAdminSave_UpdatesExistingProduct(t *testing.T) {
	repo := newFakeRepo(seedProducts()...)
	h := newTestHandler(repo)

	form := url.Values{
		"id":          {"1"},
		"name":        {"Kayak"},
		"description": {"A boat for one person"},
		"price_cents": {"30000"},
		"category":    {"Watersports"},
	}
	rec := httptest.NewRecorder()
	h.Save(rec, postProductForm("/admin/products", form))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if repo.products[0].PriceCents != 30000 {
		t.Errorf("price = %d, want 30000", repo.products[0].PriceCents)
	}
	if len(repo.products) != 2 {
		t.Errorf("repo holds %d products, want 2", len(repo.products))
	}
}

func TestAdminSave_InvalidProductReturnsFieldErrors(t *testing.T) {
	repo := newFakeRepo(seedProducts()...)
	h := newTestHandler(repo)

	form := url.Values{
		"name":        {""},
		"description": {"No name, no price"},
		"price_cents": {"0"},
		"category":    {"Soccer"},
	}
	req := postProductForm("/admin/products", form)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.Save(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var response struct {
		Error struct {
			Fields map[string]string `json:"fields"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Error.Fields["name"] == "" {
		t.Error("expected a field error for name")
	}
	if response.Error.Fields["price"] == "" {
		t.Error("expected a field error for price")
	}

	if len(repo.products) != 2 {
		t.Errorf("repo holds %d products, want 2 (invalid save must not persist)", len(repo.products))
	}
}

func TestAdminSave_ImageUpload(t *testing.T) {
	repo := newFakeRepo(seedProducts()...)
	h := newTestHandler(repo)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("id", "1")
	mw.WriteField("name", "Kayak")
	mw.WriteField("description", "A boat for one person")
	mw.WriteField("price_cents", "27500")
	mw.WriteField("category", "Watersports")
	fw, err := mw.CreateFormFile("image", "kayak.png")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte{0x89, 0x50, 0x4E, 0x47})
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/products", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Save(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if len(repo.products[0].ImageData) != 4 {
		t.Errorf("image data length = %d, want 4", len(repo.products[0].ImageData))
	}
	if repo.products[0].ImageMimeType == "" {
		t.Error("image mime type was not recorded")
	}
}

func TestAdminSave_OversizedImageRejected(t *testing.T) {
	repo := newFakeRepo(seedProducts()...)
	h := newTestHandler(repo)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("id", "1")
	mw.WriteField("name", "Kayak")
	mw.WriteField("description", "A boat for one person")
	mw.WriteField("price_cents", "27500")
	mw.WriteField("category", "Watersports")
	fw, err := mw.CreateFormFile("image", "kayak.png")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(make([]byte, maxImageUploadBytes+1))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/products", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Save(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(repo.products[0].ImageData) != 0 {
		t.Errorf("image data length = %d, want 0 (oversized upload must not persist)", len(repo.products[0].ImageData))
	}
}

func TestAdminSave_MalformedPriceRejected(t *testing.T) {
	repo := newFakeRepo(seedProducts()...)
	h := newTestHandler(repo)

	form := url.Values{
		"id":          {"1"},
		"name":        {"Kayak"},
		"description": {"A boat for one person"},
		"price_cents": {"twelve"},
		"category":    {"Watersports"},
	}
	rec := httptest.NewRecorder()
	h.Save(rec, postProductForm("/admin/products", form))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if repo.products[0].PriceCents != 27500 {
		t.Errorf("price = %d, want 27500 (malformed save must not persist)", repo.products[0].PriceCents)
	}
}

func TestAdminSave_UpdateWithoutUploadKeepsImage(t *testing.T) {
	products := seedProducts()
	products[0].ImageData = []byte{1, 2, 3}
	products[0].ImageMimeType = "image/png"
	repo := newFakeRepo(products...)
	h := newTestHandler(repo)

	form := url.Values{
		"id":          {"1"},
		"name":        {"Kayak"},
		"description": {"A boat for one person"},
		"price_cents": {"27500"},
		"category":    {"Watersports"},
	}
	rec := httptest.NewRecorder()
	h.Save(rec, postProductForm("/admin/products", form))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if len(repo.products[0].ImageData) != 3 {
		t.Errorf("image data length = %d, want 3 (image must survive update)", len(repo.products[0].ImageData))
	}
}

func TestAdminDelete(t *testing.T) {
	repo := newFakeRepo(seedProducts()...)
	h := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodPost, "/admin/products/1/delete", nil)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if len(repo.products) != 1 {
		t.Fatalf("repo holds %d products, want 1", len(repo.products))
	}
	if repo.products[0].ID != 2 {
		t.Errorf("remaining product id = %d, want 2", repo.products[0].ID)
	}
}

func TestAdminDelete_UnknownIDIsNoop(t *testing.T) {
	repo := newFakeRepo(seedProducts()...)
	h := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodPost, "/admin/products/99/delete", nil)
	req.SetPathValue("id", "99")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if len(repo.products) != 2 {
		t.Errorf("repo holds %d products, want 2", len(repo.products))
	}
}
