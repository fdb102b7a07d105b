package quote

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/apexitsupply/apex-backend/internal/repo"
	"github.com/apexitsupply/apex-backend/pkg/db/models"
	"github.com/apexitsupply/apex-backend/pkg/enums"
	"github.com/apexitsupply/apex-backend/pkg/pagination"
)

// ListFilters narrows the admin quote listing.
type ListFilters struct {
	Status  enums.QuoteStatus
	Urgency enums.QuoteUrgency
	Email   string
}

// ListInput carries pagination plus filters from the API layer.
type ListInput struct {
	Pagination pagination.Params
	Filters    ListFilters
}

// Repository wires together quote request persistence helpers.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(tx)}
}

// CreateQuote inserts the quote request and its items in one go.
func (r *Repository) CreateQuote(ctx context.Context, row *models.QuoteRequest) (*models.QuoteRequest, error) {
	if err := r.DB(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// FindByID loads a quote with its items.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.QuoteRequest, error) {
	var row models.QuoteRequest
	err := r.DB(ctx).
		Preload("Items").
		First(&row, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// UpdateStatus transitions the quote to the provided status.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status enums.QuoteStatus) error {
	return r.DB(ctx).
		Model(&models.QuoteRequest{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}

// DeleteQuote removes a quote request; items cascade.
func (r *Repository) DeleteQuote(ctx context.Context, id int64) error {
	return r.DB(ctx).Where("id = ?", id).Delete(&models.QuoteRequest{}).Error
}

// ListQuotes applies filters and offset pagination, newest first.
func (r *Repository) ListQuotes(ctx context.Context, input ListInput) ([]models.QuoteRequest, int64, error) {
	params := input.Pagination.Normalize()
	qb := r.applyFilters(r.DB(ctx).Model(&models.QuoteRequest{}), input.Filters)

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.QuoteRequest
	err := qb.
		Preload("Items").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// CountByStatus returns quote totals grouped by status.
func (r *Repository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "status")
}

// CountByUrgency returns quote totals grouped by urgency.
func (r *Repository) CountByUrgency(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "urgency")
}

func (r *Repository) countGrouped(ctx context.Context, column string) (map[string]int64, error) {
	type bucket struct {
		Key   string
		Count int64
	}
	var buckets []bucket
	err := r.DB(ctx).
		Model(&models.QuoteRequest{}).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Scan(&buckets).
		Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(buckets))
	for _, b := range buckets {
		out[b.Key] = b.Count
	}
	return out, nil
}

// ListRecent returns the newest quotes with items preloaded.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]models.QuoteRequest, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []models.QuoteRequest
	err := r.DB(ctx).
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}

func (r *Repository) applyFilters(qb *gorm.DB, filters ListFilters) *gorm.DB {
	if filters.Status != "" {
		qb = qb.Where("status = ?", filters.Status)
	}
	if filters.Urgency != "" {
		qb = qb.Where("urgency = ?", filters.Urgency)
	}
	if email := strings.TrimSpace(filters.Email); email != "" {
		qb = qb.Where("LOWER(email) = ?", strings.ToLower(email))
	}
	return qb
}
