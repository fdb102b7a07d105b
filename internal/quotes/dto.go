package quote

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/apexitsupply/apex-backend/pkg/db/models"
	"github.com/apexitsupply/apex-backend/pkg/enums"
)

// QuoteDTO is the admin-facing view of a quote request.
type QuoteDTO struct {
	ID                     int64              `json:"id"`
	CustomerName           string             `json:"customer_name"`
	Email                  string             `json:"email"`
	Phone                  *string            `json:"phone,omitempty"`
	CompanyName            *string            `json:"company_name,omitempty"`
	AdditionalRequirements *string            `json:"additional_requirements,omitempty"`
	Urgency                enums.QuoteUrgency `json:"urgency"`
	Status                 enums.QuoteStatus  `json:"status"`
	Items                  []QuoteItemDTO     `json:"items"`
	CreatedAt              time.Time          `json:"created_at"`
	UpdatedAt              time.Time          `json:"updated_at"`
}

// QuoteItemDTO is one requested line.
type QuoteItemDTO struct {
	ID           int64           `json:"id"`
	ProductID    *int64          `json:"product_id,omitempty"`
	Code         string          `json:"code"`
	Description  string          `json:"description"`
	Quantity     int             `json:"quantity"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}

// Receipt is the acknowledgement returned to the storefront after intake.
type Receipt struct {
	QuoteID int64  `json:"quote_id"`
	Message string `json:"message"`
}

// DashboardSummary aggregates counts for the admin landing page.
type DashboardSummary struct {
	TotalQuotes   int64            `json:"total_quotes"`
	ByStatus      map[string]int64 `json:"by_status"`
	RecentQuotes  []QuoteDTO       `json:"recent_quotes"`
	UrgencyCounts map[string]int64 `json:"urgency_counts"`
}

// NewQuoteDTO builds a DTO from the persisted model.
func NewQuoteDTO(row *models.QuoteRequest) *QuoteDTO {
	items := make([]QuoteItemDTO, 0, len(row.Items))
	for _, item := range row.Items {
		items = append(items, QuoteItemDTO{
			ID:           item.ID,
			ProductID:    item.ProductID,
			Code:         item.Code,
			Description:  item.Description,
			Quantity:     item.Quantity,
			CurrentPrice: item.CurrentPrice,
		})
	}
	return &QuoteDTO{
		ID:                     row.ID,
		CustomerName:           row.CustomerName,
		Email:                  row.Email,
		Phone:                  row.Phone,
		CompanyName:            row.CompanyName,
		AdditionalRequirements: row.AdditionalRequirements,
		Urgency:                row.Urgency,
		Status:                 row.Status,
		Items:                  items,
		CreatedAt:              row.CreatedAt,
		UpdatedAt:              row.UpdatedAt,
	}
}

// NewQuoteDTOs maps a slice of models.
func NewQuoteDTOs(rows []models.QuoteRequest) []QuoteDTO {
	out := make([]QuoteDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewQuoteDTO(&rows[i]))
	}
	return out
}
