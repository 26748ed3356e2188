package booking

import (
	"fmt"
	"time"

	"studiobook/models"
)

// Overlaps reports whether two closed-open windows intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// HasCapacity checks the requested seat count against the studio.
func HasCapacity(seats int, studio *models.Studio) error {
	if studio.Capacity <= 0 {
		return NewError(CodeInternalError,
			fmt.Sprintf("studio %s has no seating capacity configured", studio.ID))
	}
	if seats > studio.Capacity {
		return NewError(CodeCapacityExceeded,
			fmt.Sprintf("studio %s seats %d guests at most", studio.Name, studio.Capacity))
	}
	return nil
}

// FitsOperatingHours verifies the requested window, interpreted in the
// studio's local business day, lies entirely within [open, close).
func FitsOperatingHours(start, end time.Time, studio *models.Studio) error {
	loc := studioLocation(studio)
	localStart := start.In(loc)
	localEnd := end.In(loc)

	openAt, err := clockOnDay(localStart, studio.OpenTime, loc)
	if err != nil {
		return NewError(CodeInternalError, fmt.Sprintf("studio %s has malformed opening time", studio.ID))
	}
	closeAt, err := clockOnDay(localStart, studio.CloseTime, loc)
	if err != nil {
		return NewError(CodeInternalError, fmt.Sprintf("studio %s has malformed closing time", studio.ID))
	}
	if !openAt.Before(closeAt) {
		return NewError(CodeInternalError,
			fmt.Sprintf("studio %s has inverted operating hours", studio.ID))
	}

	if localStart.Before(openAt) || localEnd.After(closeAt) {
		return NewError(CodeOutsideWorkingHours,
			fmt.Sprintf("studio is open %s to %s", studio.OpenTime, studio.CloseTime))
	}
	return nil
}

// CheckConflicts fails with a bookingConflict error when the requested
// window intersects any of the existing (non-cancelled) reservations.
func CheckConflicts(start, end time.Time, existing []models.Reservation) error {
	for _, r := range existing {
		if Overlaps(start, end, r.StartTime, r.EndTime) {
			return NewError(CodeBookingConflict, "the selected time is no longer available")
		}
	}
	return nil
}

func studioLocation(studio *models.Studio) *time.Location {
	if studio.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(studio.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// clockOnDay places an "HH:MM" clock string on ref's calendar day.
func clockOnDay(ref time.Time, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}
