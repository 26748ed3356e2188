package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiobook/models"
)

func TestDaySchedule(t *testing.T) {
	store := seededStore()
	svc := testService(store, &fakeLinker{url: "https://pay.example/pl"})

	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	_, err := svc.CreateBooking(context.Background(), bookingInput(day.Add(10*time.Hour), 2, 2))
	require.NoError(t, err)
	_, err = svc.CreateBooking(context.Background(), bookingInput(day.Add(14*time.Hour), 3, 1))
	require.NoError(t, err)

	schedule, err := svc.DaySchedule(context.Background(), "studio-a", day)
	require.NoError(t, err)
	assert.Equal(t, "studio-a", schedule.StudioID)
	assert.Equal(t, "2026-09-14", schedule.Date)
	assert.Equal(t, "09:00", schedule.OpenTime)
	assert.Equal(t, "21:00", schedule.CloseTime)
	require.Len(t, schedule.Busy, 2)
}

func TestDayScheduleIgnoresCancelled(t *testing.T) {
	store := seededStore()
	svc := testService(store, &fakeLinker{})

	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	result, err := svc.CreateBooking(context.Background(), bookingInput(day.Add(10*time.Hour), 2, 2))
	require.NoError(t, err)
	require.NoError(t, store.Reservations().UpdateStatus(context.Background(), result.ID, models.ReservationCancelled))

	schedule, err := svc.DaySchedule(context.Background(), "studio-a", day)
	require.NoError(t, err)
	assert.Empty(t, schedule.Busy)
}

func TestDayScheduleUnknownStudio(t *testing.T) {
	svc := testService(seededStore(), &fakeLinker{})

	_, err := svc.DaySchedule(context.Background(), "missing", time.Now())
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeResourceNotFound, e.Code)
}
