package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus enumerates order lifecycle states.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Order is a non-time-boxed purchase of a single production service.
type Order struct {
	ID             string          `gorm:"primaryKey;size:36" json:"id"`
	ServiceID      string          `gorm:"size:36;not null" json:"serviceId"`
	ContactID      string          `gorm:"size:36;index;not null" json:"contactId"`
	Status         OrderStatus     `gorm:"size:16;index;default:PENDING" json:"status"`
	BaseAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalCost"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discountAmount"`
	VATAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"vatAmount"`
	FinalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"finalAmount"`
	Currency       string          `gorm:"size:8;not null" json:"currency"`
	DiscountCodeID *string         `gorm:"size:36" json:"discountCodeId,omitempty"`
	EstimatedDays  int             `json:"estimatedDays,omitempty"`
	Deadline       *time.Time      `json:"deadline,omitempty"`
	Contact        *Contact        `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
