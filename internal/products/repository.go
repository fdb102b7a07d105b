package product

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/apexitsupply/apex-backend/internal/repo"
	"github.com/apexitsupply/apex-backend/pkg/db/models"
	"github.com/apexitsupply/apex-backend/pkg/enums"
	"github.com/apexitsupply/apex-backend/pkg/pagination"
)

// Repository wires together catalog persistence helpers.
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

// FindByID loads a single product.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.DB(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct persists the full product row.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.DB(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product by ID.
func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	return r.DB(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// ListProducts applies filters, sorting, and offset pagination.
func (r *Repository) ListProducts(ctx context.Context, input ListProductsInput) ([]models.Product, int64, error) {
	params := input.Pagination.Normalize()
	qb := r.applyFilters(r.DB(ctx).Model(&models.Product{}), input.Filters)

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	qb = qb.Order(orderClause(input.Filters.SortBy, input.Filters.SortOrder)).
		Offset(params.Offset()).
		Limit(params.PerPage)

	var rows []models.Product
	if err := qb.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListCategories returns the distinct category names in the catalog.
func (r *Repository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.DB(ctx).
		Model(&models.Product{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).
		Error
	return categories, err
}

// ListFeatured returns featured products, newest first.
func (r *Repository) ListFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = pagination.DefaultPerPage
	}
	var rows []models.Product
	err := r.DB(ctx).
		Where("is_featured = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}

func (r *Repository) applyFilters(qb *gorm.DB, filters ListFilters) *gorm.DB {
	if category := strings.TrimSpace(filters.Category); category != "" {
		qb = qb.Where("LOWER(category) = ?", strings.ToLower(category))
	}
	if brand := strings.TrimSpace(filters.Brand); brand != "" {
		qb = qb.Where("LOWER(brand) = ?", strings.ToLower(brand))
	}
	if filters.PriceMin != nil {
		qb = qb.Where("price >= ?", *filters.PriceMin)
	}
	if filters.PriceMax != nil {
		qb = qb.Where("price <= ?", *filters.PriceMax)
	}
	if filters.Available != nil {
		qb = qb.Where("availability = ?", *filters.Available)
	}
	if search := strings.TrimSpace(filters.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(brand) LIKE ?)", pattern, pattern, pattern)
	}
	return qb
}

func orderClause(field enums.ProductSortField, order enums.SortOrder) string {
	column := "created_at"
	switch field {
	case enums.ProductSortPrice:
		column = "price"
	case enums.ProductSortRating:
		column = "rating"
	case enums.ProductSortCreatedAt:
		column = "created_at"
	}
	direction := "DESC"
	if order == enums.SortAsc {
		direction = "ASC"
	}
	return column + " " + direction
}
