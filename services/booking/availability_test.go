package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"studiobook/models"
)

func ts(hour, min int) time.Time {
	return time.Date(2026, 9, 14, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart time.Time
		aEnd   time.Time
		bStart time.Time
		bEnd   time.Time
		want   bool
	}{
		{"identical windows", ts(10, 0), ts(12, 0), ts(10, 0), ts(12, 0), true},
		{"partial overlap tail", ts(11, 0), ts(13, 0), ts(10, 0), ts(12, 0), true},
		{"partial overlap head", ts(9, 0), ts(11, 0), ts(10, 0), ts(12, 0), true},
		{"contained", ts(10, 30), ts(11, 30), ts(10, 0), ts(12, 0), true},
		{"touching end-to-start is free", ts(12, 0), ts(14, 0), ts(10, 0), ts(12, 0), false},
		{"touching start-to-end is free", ts(8, 0), ts(10, 0), ts(10, 0), ts(12, 0), false},
		{"disjoint", ts(14, 0), ts(16, 0), ts(10, 0), ts(12, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFitsOperatingHours(t *testing.T) {
	studio := &models.Studio{
		ID:        "s1",
		Name:      "Studio A",
		OpenTime:  "09:00",
		CloseTime: "21:00",
		Timezone:  "UTC",
	}

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		wantCode string
	}{
		{"inside hours", ts(10, 0), ts(12, 0), ""},
		{"exactly open to close", ts(9, 0), ts(21, 0), ""},
		{"before opening", ts(7, 0), ts(9, 0), CodeOutsideWorkingHours},
		{"straddles opening", ts(8, 0), ts(10, 0), CodeOutsideWorkingHours},
		{"past closing", ts(20, 0), ts(22, 0), CodeOutsideWorkingHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FitsOperatingHours(tt.start, tt.end, studio)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			e, ok := AsError(err)
			if assert.True(t, ok, "expected a booking error") {
				assert.Equal(t, tt.wantCode, e.Code)
			}
		})
	}
}

func TestFitsOperatingHoursRespectsStudioTimezone(t *testing.T) {
	studio := &models.Studio{
		ID:        "s2",
		OpenTime:  "09:00",
		CloseTime: "17:00",
		Timezone:  "Africa/Nairobi", // UTC+3
	}

	// 07:00 UTC is 10:00 in Nairobi: inside hours.
	start := time.Date(2026, 9, 14, 7, 0, 0, 0, time.UTC)
	assert.NoError(t, FitsOperatingHours(start, start.Add(2*time.Hour), studio))

	// 15:00 UTC is 18:00 in Nairobi: past closing.
	late := time.Date(2026, 9, 14, 15, 0, 0, 0, time.UTC)
	err := FitsOperatingHours(late, late.Add(time.Hour), studio)
	e, ok := AsError(err)
	if assert.True(t, ok) {
		assert.Equal(t, CodeOutsideWorkingHours, e.Code)
	}
}

func TestHasCapacity(t *testing.T) {
	studio := &models.Studio{Name: "Studio A", Capacity: 4}

	assert.NoError(t, HasCapacity(4, studio))
	assert.NoError(t, HasCapacity(1, studio))

	err := HasCapacity(5, studio)
	e, ok := AsError(err)
	if assert.True(t, ok) {
		assert.Equal(t, CodeCapacityExceeded, e.Code)
	}
}

func TestMisconfiguredStudioIsInternalError(t *testing.T) {
	// A zero-capacity row is a data fault, not a capacity rejection.
	empty := &models.Studio{ID: "s3", Name: "Empty", Capacity: 0}
	err := HasCapacity(1, empty)
	e, ok := AsError(err)
	if assert.True(t, ok) {
		assert.Equal(t, CodeInternalError, e.Code)
	}

	// Inverted hours likewise fail as a configuration fault instead of
	// rejecting every window as outside working hours.
	inverted := &models.Studio{ID: "s4", OpenTime: "21:00", CloseTime: "09:00", Timezone: "UTC"}
	err = FitsOperatingHours(ts(10, 0), ts(12, 0), inverted)
	e, ok = AsError(err)
	if assert.True(t, ok) {
		assert.Equal(t, CodeInternalError, e.Code)
	}
}

func TestCheckConflictsIgnoresCancelled(t *testing.T) {
	existing := []models.Reservation{
		{StartTime: ts(10, 0), EndTime: ts(12, 0), Status: models.ReservationPending},
	}
	err := CheckConflicts(ts(11, 0), ts(13, 0), existing)
	e, ok := AsError(err)
	if assert.True(t, ok) {
		assert.Equal(t, CodeBookingConflict, e.Code)
	}

	// The repository query excludes cancelled rows; an empty candidate
	// set never conflicts.
	assert.NoError(t, CheckConflicts(ts(11, 0), ts(13, 0), nil))
}
