package models

import (
	"time"

	"github.com/apexitsupply/apex-backend/pkg/enums"
)

// ContactMessage stores contact-form submissions and callback requests.
type ContactMessage struct {
	ID            int64             `gorm:"column:id;primaryKey;autoIncrement"`
	Kind          enums.ContactKind `gorm:"column:kind;type:varchar(16);not null"`
	Name          string            `gorm:"column:name;not null"`
	Email         string            `gorm:"column:email;not null"`
	Phone         *string           `gorm:"column:phone"`
	Company       *string           `gorm:"column:company"`
	PreferredTime *string           `gorm:"column:preferred_time"`
	Message       string            `gorm:"column:message;not null"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
}
