package models

import "time"

// LeadInput carries contact details submitted with a booking or order.
type LeadInput struct {
	FullName          string `json:"fullName" binding:"required"`
	Email             string `json:"email" binding:"omitempty,email"`
	PhoneNumber       string `json:"phoneNumber" binding:"omitempty"`
	WhatsappNumber    string `json:"whatsappNumber" binding:"omitempty"`
	RecordingLocation string `json:"recordingLocation" binding:"omitempty"`
}

// AdditionalServiceInput selects an add-on service for a booking.
type AdditionalServiceInput struct {
	ID       string `json:"id" binding:"required"`
	Quantity int    `json:"quantity" binding:"omitempty,gt=0"`
}

// BookingInput is the request body for POST /api/bookings.
type BookingInput struct {
	StudioID           string                   `json:"studioId" binding:"required"`
	PackageID          string                   `json:"packageId" binding:"required"`
	NumberOfSeats      int                      `json:"numberOfSeats" binding:"required,gt=0"`
	SelectedTime       time.Time                `json:"selectedTime" binding:"required"`
	Duration           int                      `json:"duration" binding:"required,gt=0"` // hours
	DiscountCode       string                   `json:"discountCode" binding:"omitempty"`
	AdditionalServices []AdditionalServiceInput `json:"additionalServices" binding:"omitempty,dive"`
	Lead               LeadInput                `json:"lead" binding:"required"`
}

// OrderInput is the request body for POST /api/orders.
type OrderInput struct {
	ServiceID    string    `json:"serviceId" binding:"omitempty"`
	DiscountCode string    `json:"discountCode" binding:"omitempty"`
	Lead         LeadInput `json:"lead" binding:"required"`
}
