package models

import "time"

// Subscriber is a newsletter signup.
type Subscriber struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Email     string    `gorm:"column:email;not null;uniqueIndex:subscribers_email_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
