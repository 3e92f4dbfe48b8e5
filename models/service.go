package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a bookable offering with a fixed duration and price.
type Service struct {
	ID              string          `bson:"id" json:"id" gorm:"primaryKey;type:uuid"`
	Name            string          `bson:"name" json:"name" gorm:"not null"`
	Price           decimal.Decimal `bson:"price" json:"price" gorm:"type:numeric(12,2);not null"`
	DurationSeconds int             `bson:"duration_seconds" json:"duration_seconds" gorm:"not null"` // > 0
	Active          bool            `bson:"active" json:"active" gorm:"not null"`
	CreatedAt       time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `bson:"updated_at" json:"updated_at"`
}

// Duration returns the service length as a time.Duration.
func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationSeconds) * time.Second
}

// ServiceInput is the admin payload for creating or editing a service.
type ServiceInput struct {
	Name            string          `json:"name" binding:"required"`
	Price           decimal.Decimal `json:"price" binding:"required"`
	DurationSeconds int             `json:"duration_seconds" binding:"required,gt=0,lte=86400"`
	Active          *bool           `json:"active,omitempty"`
}
