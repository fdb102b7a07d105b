package contact

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/apexitsupply/apex-backend/internal/repo"
	"github.com/apexitsupply/apex-backend/pkg/db/models"
	"github.com/apexitsupply/apex-backend/pkg/enums"
	pkgerrors "github.com/apexitsupply/apex-backend/pkg/errors"
	"github.com/apexitsupply/apex-backend/pkg/logger"
	"github.com/apexitsupply/apex-backend/pkg/pagination"
)

const (
	messageReceived  = "Thank you for reaching out. We will get back to you shortly."
	callbackReceived = "Callback request received. Our team will call you at the preferred time."
)

// Service handles contact-form and callback-request intake plus admin reads.
type Service interface {
	SubmitMessage(ctx context.Context, input MessageInput) (string, error)
	SubmitCallback(ctx context.Context, input CallbackInput) (string, error)
	ListMessages(ctx context.Context, params pagination.Params) (*ListResult, error)
}

// MessageInput is the contact-form payload.
type MessageInput struct {
	Name    string
	Email   string
	Phone   *string
	Company *string
	Message string
}

// CallbackInput is the callback-request payload.
type CallbackInput struct {
	Name          string
	Phone         string
	PreferredTime *string
	Topic         string
}

// MessageDTO is the admin-facing view of a stored message.
type MessageDTO struct {
	ID            int64             `json:"id"`
	Kind          enums.ContactKind `json:"kind"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Phone         *string           `json:"phone,omitempty"`
	Company       *string           `json:"company,omitempty"`
	PreferredTime *string           `json:"preferred_time,omitempty"`
	Message       string            `json:"message"`
	CreatedAt     string            `json:"created_at"`
}

// ListResult is one admin page of messages with totals.
type ListResult struct {
	Data     []MessageDTO `json:"data"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PerPage  int          `json:"per_page"`
	LastPage int          `json:"last_page"`
}

// Notifier forwards the message to the sales inbox.
type Notifier interface {
	ContactReceived(ctx context.Context, kind enums.ContactKind, name, email, message string) error
}

// Repository persists contact messages.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a contact message row.
func (r *Repository) Create(ctx context.Context, row *models.ContactMessage) (*models.ContactMessage, error) {
	if err := r.DB(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// List returns messages newest first with a total count.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.ContactMessage, int64, error) {
	normalized := params.Normalize()
	qb := r.DB(ctx).Model(&models.ContactMessage{})

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ContactMessage
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

type repository interface {
	Create(ctx context.Context, row *models.ContactMessage) (*models.ContactMessage, error)
	List(ctx context.Context, params pagination.Params) ([]models.ContactMessage, int64, error)
}

type service struct {
	repo     repository
	notifier Notifier
	logg     *logger.Logger
}

// NewService constructs a contact service instance. The notifier is optional.
func NewService(repo repository, notifier Notifier, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("contact repository required")
	}
	return &service{repo: repo, notifier: notifier, logg: logg}, nil
}

// SubmitMessage stores a contact-form submission.
func (s *service) SubmitMessage(ctx context.Context, input MessageInput) (string, error) {
	if strings.TrimSpace(input.Name) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if strings.TrimSpace(input.Message) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}

	row := &models.ContactMessage{
		Kind:    enums.ContactKindMessage,
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:   input.Phone,
		Company: input.Company,
		Message: strings.TrimSpace(input.Message),
	}
	created, err := s.repo.Create(ctx, row)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert contact message")
	}

	s.notify(ctx, created)
	return messageReceived, nil
}

// SubmitCallback stores a callback request as a contact message.
func (s *service) SubmitCallback(ctx context.Context, input CallbackInput) (string, error) {
	if strings.TrimSpace(input.Name) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(input.Phone) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}

	phone := strings.TrimSpace(input.Phone)
	row := &models.ContactMessage{
		Kind:          enums.ContactKindCallback,
		Name:          strings.TrimSpace(input.Name),
		Phone:         &phone,
		PreferredTime: input.PreferredTime,
		Message:       strings.TrimSpace(input.Topic),
	}
	created, err := s.repo.Create(ctx, row)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert callback request")
	}

	s.notify(ctx, created)
	return callbackReceived, nil
}

// ListMessages returns one admin page of stored messages.
func (s *service) ListMessages(ctx context.Context, params pagination.Params) (*ListResult, error) {
	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list contact messages")
	}

	data := make([]MessageDTO, 0, len(rows))
	for _, row := range rows {
		data = append(data, MessageDTO{
			ID:            row.ID,
			Kind:          row.Kind,
			Name:          row.Name,
			Email:         row.Email,
			Phone:         row.Phone,
			Company:       row.Company,
			PreferredTime: row.PreferredTime,
			Message:       row.Message,
			CreatedAt:     row.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
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

func (s *service) notify(ctx context.Context, row *models.ContactMessage) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.ContactReceived(ctx, row.Kind, row.Name, row.Email, row.Message); err != nil && s.logg != nil {
		s.logg.Error(ctx, "contact.notify.failed", err)
	}
}
