package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/apexitsupply/apex-backend/api/middleware"
	admin "github.com/apexitsupply/apex-backend/internal/admins"
	pkgerrors "github.com/apexitsupply/apex-backend/pkg/errors"
)

type stubAdminService struct {
	result *admin.LoginResult
	dto    *admin.AdminDTO
	err    error

	lastLogin     admin.LoginInput
	lastProfileID int64
}

func (s *stubAdminService) Login(_ context.Context, input admin.LoginInput) (*admin.LoginResult, error) {
	s.lastLogin = input
	return s.result, s.err
}

func (s *stubAdminService) Profile(_ context.Context, adminID int64) (*admin.AdminDTO, error) {
	s.lastProfileID = adminID
	return s.dto, s.err
}

func TestAdminLogin(t *testing.T) {
	svc := &stubAdminService{result: &admin.LoginResult{
		Token:     "token-123",
		ExpiresIn: 3600,
		Admin:     admin.AdminDTO{ID: 7, Email: "ops@apexitsupply.com"},
	}}
	handler := AdminLogin(svc, nil)

	body := []byte(`{"email":"ops@apexitsupply.com","password":"hunter22"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data admin.LoginResult `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Token != "token-123" || envelope.Data.Admin.ID != 7 {
		t.Fatalf("unexpected result %+v", envelope.Data)
	}
	if svc.lastLogin.Email != "ops@apexitsupply.com" {
		t.Fatalf("unexpected login input %+v", svc.lastLogin)
	}
}

func TestAdminLoginBadCredentials(t *testing.T) {
	svc := &stubAdminService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")}
	handler := AdminLogin(svc, nil)

	body := []byte(`{"email":"ops@apexitsupply.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAdminLoginValidation(t *testing.T) {
	handler := AdminLogin(&stubAdminService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader([]byte(`{"email":"ops@apexitsupply.com"}`)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAdminProfile(t *testing.T) {
	svc := &stubAdminService{dto: &admin.AdminDTO{ID: 7, Email: "ops@apexitsupply.com"}}
	handler := AdminProfile(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/profile", nil)
	req = req.WithContext(middleware.WithAdmin(req.Context(), 7, "ops@apexitsupply.com"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lastProfileID != 7 {
		t.Fatalf("expected profile lookup for 7 got %d", svc.lastProfileID)
	}
}

func TestAdminProfileUnauthenticated(t *testing.T) {
	handler := AdminProfile(&stubAdminService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/profile", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}
