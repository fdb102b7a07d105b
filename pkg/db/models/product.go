package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is a catalog listing shown on the storefront and referenced by
// quote request lines.
type Product struct {
	ID             int64             `gorm:"column:id;primaryKey;autoIncrement"`
	Name           string            `gorm:"column:name;not null"`
	Description    string            `gorm:"column:description;not null"`
	Price          decimal.Decimal   `gorm:"column:price;type:numeric(12,2);not null"`
	Images         pq.StringArray    `gorm:"column:images;type:text[]"`
	Category       string            `gorm:"column:category;not null;index:products_category_idx"`
	Brand          string            `gorm:"column:brand"`
	Availability   bool              `gorm:"column:availability;not null;default:true"`
	Features       pq.StringArray    `gorm:"column:features;type:text[]"`
	Specifications map[string]string `gorm:"column:specifications;type:jsonb;serializer:json"`
	Rating         float64           `gorm:"column:rating;type:numeric(3,2);not null;default:0"`
	ReviewsCount   int               `gorm:"column:reviews_count;not null;default:0"`
	IsFeatured     bool              `gorm:"column:is_featured;not null;default:false"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
