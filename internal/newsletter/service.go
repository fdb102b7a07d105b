package newsletter

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/apexitsupply/apex-backend/internal/repo"
	"github.com/apexitsupply/apex-backend/pkg/db"
	"github.com/apexitsupply/apex-backend/pkg/db/models"
	pkgerrors "github.com/apexitsupply/apex-backend/pkg/errors"
	"github.com/apexitsupply/apex-backend/pkg/pagination"
)

const subscribedMessage = "You are subscribed. Watch your inbox for deals and new arrivals."

// Service handles newsletter signups and the admin subscriber views.
type Service interface {
	Subscribe(ctx context.Context, email string) (string, error)
	ListSubscribers(ctx context.Context, params pagination.Params) (*ListResult, error)
	ExportCSV(ctx context.Context, w io.Writer) error
}

// SubscriberDTO is the admin-facing view of a signup.
type SubscriberDTO struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// ListResult is one admin page of subscribers with totals.
type ListResult struct {
	Data     []SubscriberDTO `json:"data"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PerPage  int             `json:"per_page"`
	LastPage int             `json:"last_page"`
}

// Repository persists newsletter subscribers.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a subscriber row.
func (r *Repository) Create(ctx context.Context, row *models.Subscriber) (*models.Subscriber, error) {
	if err := r.DB(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// List returns subscribers newest first with a total count.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.Subscriber, int64, error) {
	normalized := params.Normalize()
	qb := r.DB(ctx).Model(&models.Subscriber{})

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Subscriber
	err := qb.
		Order("created_at DESC").
		Offset(normalized.Offset()).
		Limit(normalized.PerPage).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListAll returns every subscriber, oldest first, for exports.
func (r *Repository) ListAll(ctx context.Context) ([]models.Subscriber, error) {
	var rows []models.Subscriber
	err := r.DB(ctx).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type repository interface {
	Create(ctx context.Context, row *models.Subscriber) (*models.Subscriber, error)
	List(ctx context.Context, params pagination.Params) ([]models.Subscriber, int64, error)
	ListAll(ctx context.Context) ([]models.Subscriber, error)
}

type service struct {
	repo repository
}

// NewService constructs a newsletter service instance.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("newsletter repository required")
	}
	return &service{repo: repo}, nil
}

// Subscribe records a signup. Duplicate emails come back as a conflict.
func (s *service) Subscribe(ctx context.Context, email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if !strings.Contains(normalized, "@") || strings.HasPrefix(normalized, "@") || strings.HasSuffix(normalized, "@") {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "email is not valid")
	}

	_, err := s.repo.Create(ctx, &models.Subscriber{Email: normalized})
	if err != nil {
		if db.IsUniqueViolation(err, "subscribers_email_key") {
			return "", pkgerrors.New(pkgerrors.CodeConflict, "email is already subscribed")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert subscriber")
	}
	return subscribedMessage, nil
}

// ListSubscribers returns one admin page of subscribers.
func (s *service) ListSubscribers(ctx context.Context, params pagination.Params) (*ListResult, error) {
	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list subscribers")
	}

	data := make([]SubscriberDTO, 0, len(rows))
	for _, row := range rows {
		data = append(data, SubscriberDTO{
			ID:        row.ID,
			Email:     row.Email,
			CreatedAt: row.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	page := pagination.Build(params, total)
	return &ListResult{
		Data:     data,
		Total:    page.Total,
		Page:     page.Page,
		PerPage:  page.PerPage,
		LastPage: page.LastPage,
	}, nil
}

// ExportCSV streams the full subscriber list as id,email,created_at rows.
func (s *service) ExportCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: export subscribers")
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "email", "created_at"}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "csv: write header")
	}
	for _, row := range rows {
		record := []string{
			strconv.FormatInt(row.ID, 10),
			row.Email,
			row.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := writer.Write(record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "csv: write row")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "csv: flush")
	}
	return nil
}
