package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus enumerates payment lifecycle states.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

// Payment is the payment-link record for a reservation. At most one
// non-FAILED payment exists per reservation at a time.
type Payment struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	ReservationID string          `gorm:"size:36;index;not null" json:"reservationId"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency      string          `gorm:"size:8;not null" json:"currency"`
	Status        PaymentStatus   `gorm:"size:16;index;default:PENDING" json:"status"`
	ExternalID    string          `gorm:"size:128;index" json:"externalId"` // provider payment-link id
	Metadata      string          `gorm:"type:jsonb" json:"-"`              // raw provider response snapshot
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
	RefundedAt    *time.Time      `json:"refundedAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// OrderPayment mirrors Payment for the order purchase path.
type OrderPayment struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	OrderID     string          `gorm:"size:36;index;not null" json:"orderId"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency    string          `gorm:"size:8;not null" json:"currency"`
	Status      PaymentStatus   `gorm:"size:16;index;default:PENDING" json:"status"`
	ExternalID  string          `gorm:"size:128;index" json:"externalId"`
	Metadata    string          `gorm:"type:jsonb" json:"-"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
	RefundedAt  *time.Time      `json:"refundedAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// WebhookEvent records a processed provider event so replays can be
// acknowledged without re-applying transitions.
type WebhookEvent struct {
	EventKey    string    `gorm:"primaryKey;size:192" json:"eventKey"`
	EventType   string    `gorm:"size:64;index" json:"eventType"`
	ProcessedAt time.Time `json:"processedAt"`
}
