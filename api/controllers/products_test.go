package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	product "github.com/apexitsupply/apex-backend/internal/products"
	pkgerrors "github.com/apexitsupply/apex-backend/pkg/errors"
	"github.com/apexitsupply/apex-backend/pkg/pagination"
)

type stubProductService struct {
	listResult *product.ListResult
	dto        *product.ProductDTO
	categories []string
	featured   []product.ProductDTO
	err        error

	lastList   product.ListProductsInput
	lastCreate product.CreateProductInput
	lastUpdate product.UpdateProductInput
	deletedID  int64
}

func (s *stubProductService) ListProducts(_ context.Context, input product.ListProductsInput) (*product.ListResult, error) {
	s.lastList = input
	return s.listResult, s.err
}

func (s *stubProductService) GetProduct(context.Context, int64) (*product.ProductDTO, error) {
	return s.dto, s.err
}

func (s *stubProductService) SearchProducts(_ context.Context, query string, params pagination.Params) (*product.ListResult, error) {
	if query == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}
	return s.listResult, s.err
}

func (s *stubProductService) ListByCategory(context.Context, string, pagination.Params) (*product.ListResult, error) {
	return s.listResult, s.err
}

func (s *stubProductService) ListCategories(context.Context) ([]string, error) {
	return s.categories, s.err
}

func (s *stubProductService) ListFeatured(context.Context) ([]product.ProductDTO, error) {
	return s.featured, s.err
}

func (s *stubProductService) CreateProduct(_ context.Context, input product.CreateProductInput) (*product.ProductDTO, error) {
	s.lastCreate = input
	return s.dto, s.err
}

func (s *stubProductService) UpdateProduct(_ context.Context, _ int64, input product.UpdateProductInput) (*product.ProductDTO, error) {
	s.lastUpdate = input
	return s.dto, s.err
}

func (s *stubProductService) DeleteProduct(_ context.Context, id int64) error {
	s.deletedID = id
	return s.err
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func sampleProductDTO() *product.ProductDTO {
	return &product.ProductDTO{
		ID:       7,
		Name:     "24-port switch",
		Category: "networking",
		Price:    decimal.NewFromInt(379),
	}
}

func TestListProductsParsesFilters(t *testing.T) {
	svc := &stubProductService{listResult: &product.ListResult{Data: []product.ProductDTO{*sampleProductDTO()}, Total: 1}}
	handler := ListProducts(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/products?page=2&per_page=24&category=networking&sort_by=price&sort_order=asc&available=true", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastList.Pagination.Page != 2 || svc.lastList.Pagination.PerPage != 24 {
		t.Fatalf("unexpected pagination %+v", svc.lastList.Pagination)
	}
	if svc.lastList.Filters.Category != "networking" {
		t.Fatalf("unexpected category %q", svc.lastList.Filters.Category)
	}
	if svc.lastList.Filters.Available == nil || !*svc.lastList.Filters.Available {
		t.Fatal("expected available filter true")
	}
}

func TestListProductsRejectsBadSort(t *testing.T) {
	handler := ListProducts(&stubProductService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/products?sort_by=name", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestGetProduct(t *testing.T) {
	handler := GetProduct(&stubProductService{dto: sampleProductDTO()}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/products/7", nil), "productID", "7")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data product.ProductDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != 7 {
		t.Fatalf("expected id 7 got %d", envelope.Data.ID)
	}
}

func TestGetProductBadID(t *testing.T) {
	handler := GetProduct(&stubProductService{}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/products/abc", nil), "productID", "abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestGetProductNotFound(t *testing.T) {
	handler := GetProduct(&stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/products/99", nil), "productID", "99")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestAdminCreateProduct(t *testing.T) {
	svc := &stubProductService{dto: sampleProductDTO()}
	handler := AdminCreateProduct(svc, nil)

	body := map[string]any{
		"name":        "24-port switch",
		"description": "Managed gigabit switch",
		"category":    "networking",
		"price":       379,
	}
	raw, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if !svc.lastCreate.Availability {
		t.Fatal("expected availability to default true")
	}
}

func TestAdminCreateProductValidation(t *testing.T) {
	handler := AdminCreateProduct(&stubProductService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products", bytes.NewReader([]byte(`{"name":"x"}`)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAdminDeleteProduct(t *testing.T) {
	svc := &stubProductService{}
	handler := AdminDeleteProduct(svc, nil)

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/admin/products/7", nil), "productID", "7")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.deletedID != 7 {
		t.Fatalf("expected delete id 7 got %d", svc.deletedID)
	}
}
