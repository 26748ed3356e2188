package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingResult is returned after a successful booking. PaymentURL is
// omitted when payment-link creation failed; the reservation itself is
// still committed.
type BookingResult struct {
	ID             string          `json:"id"`
	StartTime      time.Time       `json:"startTime"`
	EndTime        time.Time       `json:"endTime"`
	Status         string          `json:"status"`
	TotalCost      decimal.Decimal `json:"totalCost"`
	VATAmount      decimal.Decimal `json:"vatAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	FinalAmount    decimal.Decimal `json:"finalAmount"`
	Currency       string          `json:"currency"`
	PaymentURL     string          `json:"paymentUrl,omitempty"`
}

// OrderResult mirrors BookingResult for the order path.
type OrderResult struct {
	ID             string          `json:"id"`
	Status         string          `json:"status"`
	TotalCost      decimal.Decimal `json:"totalCost"`
	VATAmount      decimal.Decimal `json:"vatAmount"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	FinalAmount    decimal.Decimal `json:"finalAmount"`
	Currency       string          `json:"currency"`
	EstimatedDays  int             `json:"estimatedDays,omitempty"`
	Deadline       *time.Time      `json:"deadline,omitempty"`
	PaymentURL     string          `json:"paymentUrl,omitempty"`
}
