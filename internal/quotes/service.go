package quote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/apexitsupply/apex-backend/pkg/db/models"
	"github.com/apexitsupply/apex-backend/pkg/enums"
	pkgerrors "github.com/apexitsupply/apex-backend/pkg/errors"
	"github.com/apexitsupply/apex-backend/pkg/logger"
	"github.com/apexitsupply/apex-backend/pkg/pagination"
)

const (
	intakeMessage    = "Quote request received. Our team will contact you within one business day."
	maxItemsPerQuote = 100
	recentQuoteCount = 5
)

// defaultItemCode mirrors what the storefront sends for free-text lines.
const defaultItemCode = "CUSTOM"

// Service exposes quote intake for the storefront and management for the back office.
type Service interface {
	SubmitQuote(ctx context.Context, input SubmitQuoteInput) (*Receipt, error)
	ListQuotes(ctx context.Context, input ListInput) (*ListResult, error)
	GetQuote(ctx context.Context, id int64) (*QuoteDTO, error)
	UpdateStatus(ctx context.Context, id int64, status enums.QuoteStatus) (*QuoteDTO, error)
	DeleteQuote(ctx context.Context, id int64) error
	DashboardSummary(ctx context.Context) (*DashboardSummary, error)
}

// SubmitQuoteInput is the validated intake payload.
type SubmitQuoteInput struct {
	CustomerName           string
	Email                  string
	Phone                  *string
	CompanyName            *string
	AdditionalRequirements *string
	Urgency                enums.QuoteUrgency
	Items                  []ItemInput
}

// ItemInput is one requested line. ProductID is nil for free-text lines.
type ItemInput struct {
	ProductID    *int64
	Code         string
	Description  string
	Quantity     int
	CurrentPrice decimal.Decimal
}

// ListResult is one admin page of quotes with totals.
type ListResult struct {
	Data     []QuoteDTO `json:"data"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PerPage  int        `json:"per_page"`
	LastPage int        `json:"last_page"`
}

// Notifier delivers the sales-team notification after intake.
type Notifier interface {
	QuoteSubmitted(ctx context.Context, quote *QuoteDTO) error
}

type repository interface {
	CreateQuote(ctx context.Context, row *models.QuoteRequest) (*models.QuoteRequest, error)
	FindByID(ctx context.Context, id int64) (*models.QuoteRequest, error)
	UpdateStatus(ctx context.Context, id int64, status enums.QuoteStatus) error
	DeleteQuote(ctx context.Context, id int64) error
	ListQuotes(ctx context.Context, input ListInput) ([]models.QuoteRequest, int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountByUrgency(ctx context.Context) (map[string]int64, error)
	ListRecent(ctx context.Context, limit int) ([]models.QuoteRequest, error)
}

type service struct {
	repo     repository
	notifier Notifier
	logg     *logger.Logger
}

// NewService constructs a quote service instance. The notifier is optional.
func NewService(repo repository, notifier Notifier, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quote repository required")
	}
	return &service{repo: repo, notifier: notifier, logg: logg}, nil
}

// SubmitQuote validates and persists the intake, then notifies sales.
// Notification failures never fail the submission.
func (s *service) SubmitQuote(ctx context.Context, input SubmitQuoteInput) (*Receipt, error) {
	if err := validateSubmitInput(input); err != nil {
		return nil, err
	}

	urgency := input.Urgency
	if urgency == "" {
		urgency = enums.QuoteUrgencyStandard
	}

	items := make([]models.QuoteItem, 0, len(input.Items))
	for _, item := range input.Items {
		code := strings.TrimSpace(item.Code)
		if code == "" {
			code = defaultItemCode
		}
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		price := item.CurrentPrice
		if price.IsNegative() {
			price = decimal.Zero
		}
		items = append(items, models.QuoteItem{
			ProductID:    item.ProductID,
			Code:         code,
			Description:  strings.TrimSpace(item.Description),
			Quantity:     qty,
			CurrentPrice: price,
		})
	}

	row := &models.QuoteRequest{
		CustomerName:           strings.TrimSpace(input.CustomerName),
		Email:                  strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:                  input.Phone,
		CompanyName:            input.CompanyName,
		AdditionalRequirements: input.AdditionalRequirements,
		Urgency:                urgency,
		Status:                 enums.QuoteStatusPending,
		Items:                  items,
	}

	created, err := s.repo.CreateQuote(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert quote request")
	}

	if s.notifier != nil {
		if notifyErr := s.notifier.QuoteSubmitted(ctx, NewQuoteDTO(created)); notifyErr != nil && s.logg != nil {
			s.logg.Error(ctx, "quote.notify.failed", notifyErr)
		}
	}

	return &Receipt{QuoteID: created.ID, Message: intakeMessage}, nil
}

// ListQuotes returns one admin page of quote requests.
func (s *service) ListQuotes(ctx context.Context, input ListInput) (*ListResult, error) {
	rows, total, err := s.repo.ListQuotes(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list quotes")
	}
	page := pagination.Build(input.Pagination, total)
	return &ListResult{
		Data:     NewQuoteDTOs(rows),
		Total:    page.Total,
		Page:     page.Page,
		PerPage:  page.PerPage,
		LastPage: page.LastPage,
	}, nil
}

// GetQuote loads one quote with its lines.
func (s *service) GetQuote(ctx context.Context, id int64) (*QuoteDTO, error) {
	row, err := s.findQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewQuoteDTO(row), nil
}

// UpdateStatus transitions the quote along its lifecycle.
func (s *service) UpdateStatus(ctx context.Context, id int64, status enums.QuoteStatus) (*QuoteDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid quote status")
	}

	row, err := s.findQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(row.Status, status) {
		return nil, pkgerrors.New(pkgerrors.CodeConflict,
			fmt.Sprintf("cannot move quote from %s to %s", row.Status, status))
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update quote status")
	}
	row.Status = status
	return NewQuoteDTO(row), nil
}

// DeleteQuote removes a quote request and its lines.
func (s *service) DeleteQuote(ctx context.Context, id int64) error {
	if _, err := s.findQuote(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteQuote(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete quote")
	}
	return nil
}

// DashboardSummary aggregates totals for the admin landing page.
func (s *service) DashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count by status")
	}
	byUrgency, err := s.repo.CountByUrgency(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count by urgency")
	}
	recent, err := s.repo.ListRecent(ctx, recentQuoteCount)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: recent quotes")
	}

	var total int64
	for _, count := range byStatus {
		total += count
	}
	return &DashboardSummary{
		TotalQuotes:   total,
		ByStatus:      byStatus,
		UrgencyCounts: byUrgency,
		RecentQuotes:  NewQuoteDTOs(recent),
	}, nil
}

func (s *service) findQuote(ctx context.Context, id int64) (*models.QuoteRequest, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote id must be positive")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load quote")
	}
	return row, nil
}

func validateSubmitInput(input SubmitQuoteInput) error {
	if strings.TrimSpace(input.CustomerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if input.Urgency != "" && !input.Urgency.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid urgency")
	}
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}
	if len(input.Items) > maxItemsPerQuote {
		return pkgerrors.New(pkgerrors.CodeValidation, "too many items in one request")
	}
	for _, item := range input.Items {
		if strings.TrimSpace(item.Description) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "item description is required")
		}
	}
	return nil
}

// transitionAllowed encodes the back-office lifecycle. Completed and cancelled
// quotes are terminal.
func transitionAllowed(from, to enums.QuoteStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case enums.QuoteStatusPending:
		return to == enums.QuoteStatusProcessing || to == enums.QuoteStatusCancelled
	case enums.QuoteStatusProcessing:
		return to == enums.QuoteStatusQuoted || to == enums.QuoteStatusCancelled
	case enums.QuoteStatusQuoted:
		return to == enums.QuoteStatusCompleted || to == enums.QuoteStatusCancelled
	default:
		return false
	}
}
