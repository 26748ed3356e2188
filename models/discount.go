package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType enumerates how a discount value is interpreted.
type DiscountType string

const (
	DiscountPercentage  DiscountType = "PERCENTAGE"
	DiscountFixedAmount DiscountType = "FIXED_AMOUNT"
)

// DiscountCode is a promotional code with an active window and an
// optional usage limit. UsedCount only ever increases and is bounded by
// UsageLimit through a conditional update at application time.
type DiscountCode struct {
	ID             string           `gorm:"primaryKey;size:36" json:"id"`
	Code           string           `gorm:"size:64;uniqueIndex;not null" json:"code"`
	Type           DiscountType     `gorm:"size:16;not null" json:"type"`
	Value          decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"value"`
	StartDate      time.Time        `json:"startDate"`
	EndDate        time.Time        `json:"endDate"`
	UsageLimit     *int             `json:"usageLimit,omitempty"`
	UsedCount      int              `gorm:"default:0" json:"usedCount"`
	FirstTimeOnly  bool             `gorm:"default:false" json:"firstTimeOnly"`
	MinOrderAmount *decimal.Decimal `gorm:"type:decimal(12,2)" json:"minOrderAmount,omitempty"`
	Currency       string           `gorm:"size:8" json:"currency,omitempty"`
	Active         bool             `gorm:"default:true" json:"active"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}
