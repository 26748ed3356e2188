package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StudioPackage is a bookable recording package priced per hour.
type StudioPackage struct {
	ID           string          `gorm:"primaryKey;size:36" json:"id"`
	Name         string          `gorm:"size:120;not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description,omitempty"`
	PricePerHour decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"pricePerHour"`
	Currency     string          `gorm:"size:8;not null" json:"currency"`
	Active       bool            `gorm:"default:true" json:"active"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Service is a production service: either an add-on line item on a
// booking or a standalone purchase through the order path.
type Service struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	Name          string          `gorm:"size:120;not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description,omitempty"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Currency      string          `gorm:"size:8;not null" json:"currency"`
	EstimatedDays int             `json:"estimatedDays,omitempty"` // delivery estimate for order purchases
	Active        bool            `gorm:"default:true" json:"active"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
