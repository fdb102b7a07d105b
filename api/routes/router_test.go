package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	admin "github.com/apexitsupply/apex-backend/internal/admins"
	"github.com/apexitsupply/apex-backend/internal/contact"
	"github.com/apexitsupply/apex-backend/internal/newsletter"
	product "github.com/apexitsupply/apex-backend/internal/products"
	quote "github.com/apexitsupply/apex-backend/internal/quotes"
	pkgAuth "github.com/apexitsupply/apex-backend/pkg/auth"
	"github.com/apexitsupply/apex-backend/pkg/config"
	"github.com/apexitsupply/apex-backend/pkg/enums"
	"github.com/apexitsupply/apex-backend/pkg/logger"
	"github.com/apexitsupply/apex-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubProductService struct{}

func (stubProductService) ListProducts(context.Context, product.ListProductsInput) (*product.ListResult, error) {
	return &product.ListResult{}, nil
}

func (stubProductService) GetProduct(context.Context, int64) (*product.ProductDTO, error) {
	return &product.ProductDTO{ID: 1}, nil
}

func (stubProductService) SearchProducts(context.Context, string, pagination.Params) (*product.ListResult, error) {
	return &product.ListResult{}, nil
}

func (stubProductService) ListByCategory(context.Context, string, pagination.Params) (*product.ListResult, error) {
	return &product.ListResult{}, nil
}

func (stubProductService) ListCategories(context.Context) ([]string, error) {
	return []string{"networking"}, nil
}

func (stubProductService) ListFeatured(context.Context) ([]product.ProductDTO, error) {
	return nil, nil
}

func (stubProductService) CreateProduct(context.Context, product.CreateProductInput) (*product.ProductDTO, error) {
	return &product.ProductDTO{ID: 1}, nil
}

func (stubProductService) UpdateProduct(context.Context, int64, product.UpdateProductInput) (*product.ProductDTO, error) {
	return &product.ProductDTO{ID: 1}, nil
}

func (stubProductService) DeleteProduct(context.Context, int64) error { return nil }

type stubQuoteService struct{}

func (stubQuoteService) SubmitQuote(context.Context, quote.SubmitQuoteInput) (*quote.Receipt, error) {
	return &quote.Receipt{QuoteID: 1, Message: "received"}, nil
}

func (stubQuoteService) ListQuotes(context.Context, quote.ListInput) (*quote.ListResult, error) {
	return &quote.ListResult{}, nil
}

func (stubQuoteService) GetQuote(context.Context, int64) (*quote.QuoteDTO, error) {
	return &quote.QuoteDTO{ID: 1}, nil
}

func (stubQuoteService) UpdateStatus(context.Context, int64, enums.QuoteStatus) (*quote.QuoteDTO, error) {
	return &quote.QuoteDTO{ID: 1}, nil
}

func (stubQuoteService) DeleteQuote(context.Context, int64) error { return nil }

func (stubQuoteService) DashboardSummary(context.Context) (*quote.DashboardSummary, error) {
	return &quote.DashboardSummary{}, nil
}

type stubContactService struct{}

func (stubContactService) SubmitMessage(context.Context, contact.MessageInput) (string, error) {
	return "received", nil
}

func (stubContactService) SubmitCallback(context.Context, contact.CallbackInput) (string, error) {
	return "received", nil
}

func (stubContactService) ListMessages(context.Context, pagination.Params) (*contact.ListResult, error) {
	return &contact.ListResult{}, nil
}

type stubNewsletterService struct{}

func (stubNewsletterService) Subscribe(context.Context, string) (string, error) {
	return "subscribed", nil
}

func (stubNewsletterService) ListSubscribers(context.Context, pagination.Params) (*newsletter.ListResult, error) {
	return &newsletter.ListResult{}, nil
}

func (stubNewsletterService) ExportCSV(context.Context, io.Writer) error { return nil }

type stubAdminService struct{}

func (stubAdminService) Login(context.Context, admin.LoginInput) (*admin.LoginResult, error) {
	return &admin.LoginResult{Token: "token"}, nil
}

func (stubAdminService) Profile(context.Context, int64) (*admin.AdminDTO, error) {
	return &admin.AdminDTO{ID: 7}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		Deps{DB: stubPinger{}},
		stubProductService{},
		stubQuoteService{},
		stubContactService{},
		stubNewsletterService{},
		stubAdminService{},
	)
}

func buildToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		AdminID: 7,
		Email:   "ops@apexitsupply.com",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveRoute(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestPublicProductRoutes(t *testing.T) {
	router := newTestRouter(testConfig())
	for _, path := range []string{"/products", "/products/categories", "/products/featured", "/products/7"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d: %s", path, resp.Code, resp.Body.String())
		}
	}
}

func TestQuoteIntakeRoute(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"customer_name":"Dana","email":"dana@example.com","products":[{"description":"Switch","quantity":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/quote-request", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestQuoteIntakeRejectsBadJSON(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/quote-request", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestAdminGroupAcceptsValidJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAdminLoginIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"email":"ops@apexitsupply.com","password":"hunter22"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}
