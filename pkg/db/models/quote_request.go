package models

import (
	"time"

	"github.com/apexitsupply/apex-backend/pkg/enums"
)

// QuoteRequest is a customer-submitted pricing request routed to the sales
// team for human follow-up.
type QuoteRequest struct {
	ID                     int64              `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerName           string             `gorm:"column:customer_name;not null"`
	Email                  string             `gorm:"column:email;not null;index:quote_requests_email_idx"`
	Phone                  *string            `gorm:"column:phone"`
	CompanyName            *string            `gorm:"column:company_name"`
	AdditionalRequirements *string            `gorm:"column:additional_requirements"`
	Urgency                enums.QuoteUrgency `gorm:"column:urgency;type:varchar(16);not null;default:'standard'"`
	Status                 enums.QuoteStatus  `gorm:"column:status;type:varchar(16);not null;default:'pending';index:quote_requests_status_idx"`
	Items                  []QuoteItem        `gorm:"foreignKey:QuoteRequestID;constraint:OnDelete:CASCADE"`
	CreatedAt              time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
