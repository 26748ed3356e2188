package models

import "time"

// Studio represents a bookable recording studio. OpenTime and
// CloseTime are "HH:MM" local-time clock strings; check constraints
// keep capacity positive and the operating window non-inverted.
type Studio struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Capacity    int       `gorm:"not null;check:capacity > 0" json:"capacity"`
	OpenTime    string    `gorm:"size:5;not null" json:"openTime"`
	CloseTime   string    `gorm:"size:5;not null;check:open_time < close_time" json:"closeTime"`
	Timezone    string    `gorm:"size:64;default:UTC" json:"timezone"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
