package controllers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/apexitsupply/apex-backend/internal/newsletter"
	pkgerrors "github.com/apexitsupply/apex-backend/pkg/errors"
	"github.com/apexitsupply/apex-backend/pkg/pagination"
)

type stubNewsletterService struct {
	message string
	list    *newsletter.ListResult
	csv     string
	err     error

	lastEmail string
}

func (s *stubNewsletterService) Subscribe(_ context.Context, email string) (string, error) {
	s.lastEmail = email
	return s.message, s.err
}

func (s *stubNewsletterService) ListSubscribers(context.Context, pagination.Params) (*newsletter.ListResult, error) {
	return s.list, s.err
}

func (s *stubNewsletterService) ExportCSV(_ context.Context, w io.Writer) error {
	if s.err != nil {
		return s.err
	}
	_, err := io.WriteString(w, s.csv)
	return err
}

func TestSubscribeNewsletter(t *testing.T) {
	svc := &stubNewsletterService{message: "subscribed"}
	handler := SubscribeNewsletter(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/newsletter", bytes.NewReader([]byte(`{"email":"dana@example.com"}`)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastEmail != "dana@example.com" {
		t.Fatalf("unexpected email %q", svc.lastEmail)
	}
}

func TestSubscribeNewsletterDuplicate(t *testing.T) {
	svc := &stubNewsletterService{err: pkgerrors.New(pkgerrors.CodeConflict, "email is already subscribed")}
	handler := SubscribeNewsletter(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/newsletter", bytes.NewReader([]byte(`{"email":"dana@example.com"}`)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
}

func TestSubscribeNewsletterRejectsBadEmail(t *testing.T) {
	handler := SubscribeNewsletter(&stubNewsletterService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/newsletter", bytes.NewReader([]byte(`{"email":"nope"}`)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAdminExportSubscribers(t *testing.T) {
	svc := &stubNewsletterService{csv: "id,email,created_at\n1,dana@example.com,2026-08-01T00:00:00Z\n"}
	handler := AdminExportSubscribers(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/subscribers/export", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/csv" {
		t.Fatalf("unexpected content type %q", got)
	}
	if disposition := rec.Header().Get("Content-Disposition"); !strings.Contains(disposition, "subscribers-") {
		t.Fatalf("unexpected disposition %q", disposition)
	}
	if !strings.HasPrefix(rec.Body.String(), "id,email,created_at\n") {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestAdminListSubscribers(t *testing.T) {
	svc := &stubNewsletterService{list: &newsletter.ListResult{
		Data:  []newsletter.SubscriberDTO{{ID: 1, Email: "dana@example.com"}},
		Total: 1, Page: 1, PerPage: 12, LastPage: 1,
	}}
	handler := AdminListSubscribers(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/subscribers", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}
