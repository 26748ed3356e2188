package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"studiobook/database/repository"
)

// DaySchedule lists a studio's busy windows for one business day, for
// rendering free slots on the booking form.
type DaySchedule struct {
	StudioID  string       `json:"studioId"`
	Date      string       `json:"date"`
	OpenTime  string       `json:"openTime"`
	CloseTime string       `json:"closeTime"`
	Busy      []BusyWindow `json:"busy"`
}

type BusyWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

const scheduleCacheTTL = 60 * time.Second

// DaySchedule returns the studio's reservations for the given day.
// Results are cached briefly; the cache is bypass-on-error and never
// authoritative for the conflict check, which always reads the database
// inside the booking transaction.
func (s *DefaultBookingService) DaySchedule(ctx context.Context, studioID string, day time.Time) (*DaySchedule, error) {
	dateStr := day.Format("2006-01-02")
	cacheKey := fmt.Sprintf("schedule:%s:%s", studioID, dateStr)

	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var schedule DaySchedule
			if err := json.Unmarshal([]byte(cached), &schedule); err == nil {
				return &schedule, nil
			}
		}
	}

	studio, err := s.Store.Studios().GetByID(ctx, studioID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewError(CodeResourceNotFound, "studio not found")
	}
	if err != nil {
		return nil, err
	}

	loc := studioLocation(studio)
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	reservations, err := s.Store.Reservations().ActiveForStudioBetween(ctx, studio.ID, dayStart.UTC(), dayEnd.UTC())
	if err != nil {
		return nil, err
	}

	schedule := &DaySchedule{
		StudioID:  studio.ID,
		Date:      dateStr,
		OpenTime:  studio.OpenTime,
		CloseTime: studio.CloseTime,
		Busy:      make([]BusyWindow, 0, len(reservations)),
	}
	for _, r := range reservations {
		schedule.Busy = append(schedule.Busy, BusyWindow{Start: r.StartTime, End: r.EndTime})
	}

	if s.Cache != nil {
		if data, err := json.Marshal(schedule); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, data, scheduleCacheTTL).Err(); err != nil {
				s.Logger.Debug("schedule cache write failed", zap.Error(err))
			}
		}
	}
	return schedule, nil
}
