package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/apexitsupply/apex-backend/pkg/db/models"
	pkgerrors "github.com/apexitsupply/apex-backend/pkg/errors"
	"github.com/apexitsupply/apex-backend/pkg/pagination"
)

const featuredLimit = 8

// Service exposes catalog reads for the storefront and CRUD for the back office.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*ListResult, error)
	GetProduct(ctx context.Context, id int64) (*ProductDTO, error)
	SearchProducts(ctx context.Context, query string, params pagination.Params) (*ListResult, error)
	ListByCategory(ctx context.Context, category string, params pagination.Params) (*ListResult, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListFeatured(ctx context.Context) ([]ProductDTO, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name           string
	Description    string
	Price          decimal.Decimal
	Images         []string
	Category       string
	Brand          string
	Availability   bool
	Features       []string
	Specifications map[string]string
	IsFeatured     bool
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name           *string
	Description    *string
	Price          *decimal.Decimal
	Images         *[]string
	Category       *string
	Brand          *string
	Availability   *bool
	Features       *[]string
	Specifications *map[string]string
	IsFeatured     *bool
}

type repository interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context, input ListProductsInput) ([]models.Product, int64, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListFeatured(ctx context.Context, limit int) ([]models.Product, error)
}

type service struct {
	repo repository
}

// NewService constructs a catalog service instance.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

// ListProducts returns one catalog page with totals for the storefront grid.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ListResult, error) {
	rows, total, err := s.repo.ListProducts(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	return buildListResult(rows, total, input.Pagination), nil
}

// GetProduct loads one product by ID.
func (s *service) GetProduct(ctx context.Context, id int64) (*ProductDTO, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return NewProductDTO(row), nil
}

// SearchProducts runs a text search across name, description, and brand.
func (s *service) SearchProducts(ctx context.Context, query string, params pagination.Params) (*ListResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}
	return s.ListProducts(ctx, ListProductsInput{
		Pagination: params,
		Filters:    ListFilters{Query: query},
	})
}

// ListByCategory returns the catalog page for a single category.
func (s *service) ListByCategory(ctx context.Context, category string, params pagination.Params) (*ListResult, error) {
	if strings.TrimSpace(category) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	return s.ListProducts(ctx, ListProductsInput{
		Pagination: params,
		Filters:    ListFilters{Category: category},
	})
}

// ListCategories returns the distinct category names.
func (s *service) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	return categories, nil
}

// ListFeatured returns the highlighted products for the homepage.
func (s *service) ListFeatured(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.ListFeatured(ctx, featuredLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list featured products")
	}
	return NewProductDTOs(rows), nil
}

// CreateProduct inserts a catalog listing.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	row := &models.Product{
		Name:           strings.TrimSpace(input.Name),
		Description:    strings.TrimSpace(input.Description),
		Price:          input.Price,
		Images:         input.Images,
		Category:       strings.TrimSpace(input.Category),
		Brand:          strings.TrimSpace(input.Brand),
		Availability:   input.Availability,
		Features:       input.Features,
		Specifications: input.Specifications,
		IsFeatured:     input.IsFeatured,
	}

	created, err := s.repo.CreateProduct(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}
	return NewProductDTO(created), nil
}

// UpdateProduct applies the provided fields to an existing listing.
func (s *service) UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*ProductDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		row.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		row.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		row.Price = *input.Price
	}
	if input.Images != nil {
		row.Images = *input.Images
	}
	if input.Category != nil {
		if strings.TrimSpace(*input.Category) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category cannot be empty")
		}
		row.Category = strings.TrimSpace(*input.Category)
	}
	if input.Brand != nil {
		row.Brand = strings.TrimSpace(*input.Brand)
	}
	if input.Availability != nil {
		row.Availability = *input.Availability
	}
	if input.Features != nil {
		row.Features = *input.Features
	}
	if input.Specifications != nil {
		row.Specifications = *input.Specifications
	}
	if input.IsFeatured != nil {
		row.IsFeatured = *input.IsFeatured
	}

	updated, err := s.repo.UpdateProduct(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}
	return NewProductDTO(updated), nil
}

// DeleteProduct removes a catalog listing.
func (s *service) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return nil
}

func validateCreateInput(input CreateProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	if strings.TrimSpace(input.Category) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	if input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	return nil
}

func buildListResult(rows []models.Product, total int64, params pagination.Params) *ListResult {
	page := pagination.Build(params, total)
	return &ListResult{
		Data:     NewProductDTOs(rows),
		Total:    page.Total,
		Page:     page.Page,
		PerPage:  page.PerPage,
		LastPage: page.LastPage,
	}
}
