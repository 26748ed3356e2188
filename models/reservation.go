package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReservationStatus enumerates reservation lifecycle states.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// Reservation is a time-boxed studio booking. The window is [StartTime,
// EndTime) in UTC; no two non-cancelled reservations on the same studio
// may overlap. Monetary fields are persisted verbatim for audit and
// never recomputed.
type Reservation struct {
	ID             string            `gorm:"primaryKey;size:36" json:"id"`
	StudioID       string            `gorm:"size:36;index;not null" json:"studioId"`
	PackageID      string            `gorm:"size:36;not null" json:"packageId"`
	ContactID      string            `gorm:"size:36;index;not null" json:"contactId"`
	StartTime      time.Time         `gorm:"index;not null" json:"startTime"`
	EndTime        time.Time         `gorm:"not null" json:"endTime"`
	Seats          int               `gorm:"not null" json:"seats"`
	Status         ReservationStatus `gorm:"size:16;index;default:PENDING" json:"status"`
	BaseAmount     decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"totalCost"`
	DiscountAmount decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"discountAmount"`
	VATAmount      decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"vatAmount"`
	FinalAmount    decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"finalAmount"`
	Currency       string            `gorm:"size:8;not null" json:"currency"`
	DiscountCodeID *string           `gorm:"size:36" json:"discountCodeId,omitempty"`
	Items          []ReservationItem `gorm:"foreignKey:ReservationID" json:"items,omitempty"`
	Contact        *Contact          `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// ReservationItem is an add-on service line with a unit price snapshot
// taken at booking time.
type ReservationItem struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	ReservationID string          `gorm:"size:36;index;not null" json:"reservationId"`
	ServiceID     string          `gorm:"size:36;not null" json:"serviceId"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
	LineTotal     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"lineTotal"`
}
