package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/apexitsupply/apex-backend/internal/repo"
	"github.com/apexitsupply/apex-backend/pkg/auth"
	"github.com/apexitsupply/apex-backend/pkg/config"
	"github.com/apexitsupply/apex-backend/pkg/db/models"
	pkgerrors "github.com/apexitsupply/apex-backend/pkg/errors"
	"github.com/apexitsupply/apex-backend/pkg/logger"
	"github.com/apexitsupply/apex-backend/pkg/security"
)

// Service authenticates back-office accounts.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Profile(ctx context.Context, adminID int64) (*AdminDTO, error)
}

// LoginInput is the credential payload from the admin login form.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the minted token and the authenticated account.
type LoginResult struct {
	Token     string   `json:"token"`
	ExpiresIn int      `json:"expires_in"`
	Admin     AdminDTO `json:"admin"`
}

// AdminDTO is the API view of a back-office account.
type AdminDTO struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// Repository loads and updates back-office accounts.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindByEmail loads an account by its lowercase email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var row models.AdminUser
	err := r.DB(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&row).
		Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByID loads an account by primary key.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.AdminUser, error) {
	var row models.AdminUser
	if err := r.DB(ctx).First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// TouchLastLogin records the most recent successful login.
func (r *Repository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	return r.DB(ctx).
		Model(&models.AdminUser{}).
		Where("id = ?", id).
		Update("last_login_at", at).
		Error
}

type repository interface {
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id int64) (*models.AdminUser, error)
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}

type service struct {
	repo repository
	jwt  config.JWTConfig
	logg *logger.Logger
	now  func() time.Time
}

// NewService constructs an admin auth service instance.
func NewService(repo repository, jwt config.JWTConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("admin repository required")
	}
	return &service{repo: repo, jwt: jwt, logg: logg, now: time.Now}, nil
}

// Login verifies credentials and mints an access token. Bad credentials and
// unknown emails come back as the same unauthorized error.
func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidCredentials()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load admin account")
	}
	if !account.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account is disabled")
	}

	match, err := security.VerifyPassword(input.Password, account.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password hash")
	}
	if !match {
		return nil, invalidCredentials()
	}

	now := s.now()
	token, err := auth.MintAccessToken(s.jwt, now, auth.AccessTokenPayload{
		AdminID: account.ID,
		Email:   account.Email,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	if err := s.repo.TouchLastLogin(ctx, account.ID, now); err != nil && s.logg != nil {
		s.logg.Error(ctx, "admin.last_login.update_failed", err)
	}

	lastLogin := account.LastLoginAt
	return &LoginResult{
		Token:     token,
		ExpiresIn: s.jwt.ExpirationMinutes * 60,
		Admin: AdminDTO{
			ID:          account.ID,
			Email:       account.Email,
			FullName:    account.FullName,
			LastLoginAt: lastLogin,
		},
	}, nil
}

// Profile returns the account behind an authenticated request.
func (s *service) Profile(ctx context.Context, adminID int64) (*AdminDTO, error) {
	if adminID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "not authenticated")
	}
	account, err := s.repo.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account no longer exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load admin account")
	}
	return &AdminDTO{
		ID:          account.ID,
		Email:       account.Email,
		FullName:    account.FullName,
		LastLoginAt: account.LastLoginAt,
	}, nil
}

func invalidCredentials() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
}
