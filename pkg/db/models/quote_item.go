package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteItem is one product line inside a quote request. ProductID is set only
// for catalog lines; guest lines carry free text and get identity server-side.
type QuoteItem struct {
	ID             int64           `gorm:"column:id;primaryKey;autoIncrement"`
	QuoteRequestID int64           `gorm:"column:quote_request_id;not null;index:quote_items_request_idx"`
	ProductID      *int64          `gorm:"column:product_id;index:quote_items_product_idx"`
	Code           string          `gorm:"column:code;not null;default:'CUSTOM'"`
	Description    string          `gorm:"column:description;not null"`
	Quantity       int             `gorm:"column:quantity;not null"`
	CurrentPrice   decimal.Decimal `gorm:"column:current_price;type:numeric(12,2);not null"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
}
