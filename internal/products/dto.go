package product

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/apexitsupply/apex-backend/pkg/db/models"
)

// ProductDTO represents the catalog payload returned to the storefront.
type ProductDTO struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          decimal.Decimal   `json:"price"`
	Images         []string          `json:"images"`
	Category       string            `json:"category"`
	Brand          string            `json:"brand"`
	Availability   bool              `json:"availability"`
	Features       []string          `json:"features"`
	Specifications map[string]string `json:"specifications"`
	Rating         float64           `json:"rating"`
	ReviewsCount   int               `json:"reviews_count"`
	IsFeatured     bool              `json:"is_featured"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:             product.ID,
		Name:           product.Name,
		Description:    product.Description,
		Price:          product.Price,
		Images:         append([]string{}, product.Images...),
		Category:       product.Category,
		Brand:          product.Brand,
		Availability:   product.Availability,
		Features:       append([]string{}, product.Features...),
		Specifications: product.Specifications,
		Rating:         product.Rating,
		ReviewsCount:   product.ReviewsCount,
		IsFeatured:     product.IsFeatured,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
	if dto.Specifications == nil {
		dto.Specifications = map[string]string{}
	}
	return dto
}

// NewProductDTOs maps a slice of models.
func NewProductDTOs(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewProductDTO(&rows[i]))
	}
	return out
}
