package models

import "time"

// Contact is the lead behind a reservation or order. Looked up by email
// on the booking path and by email-or-phone on the order path; updated
// in place when found, created otherwise.
type Contact struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	FullName          string    `gorm:"size:160;not null" json:"fullName"`
	Email             string    `gorm:"size:160;index" json:"email,omitempty"`
	PhoneNumber       string    `gorm:"size:32;index" json:"phoneNumber,omitempty"`
	WhatsappNumber    string    `gorm:"size:32" json:"whatsappNumber,omitempty"`
	RecordingLocation string    `gorm:"size:160" json:"recordingLocation,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
