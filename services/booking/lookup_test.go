package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiobook/models"
)

func TestGetBooking(t *testing.T) {
	store := seededStore()
	svc := testService(store, &fakeLinker{url: "https://pay.example/pl"})

	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	created, err := svc.CreateBooking(context.Background(), bookingInput(start, 2, 2))
	require.NoError(t, err)

	reservation, err := svc.GetBooking(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, reservation.ID)
	assert.True(t, reservation.FinalAmount.Equal(d("232.00")))

	_, err = svc.GetBooking(context.Background(), "missing")
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeResourceNotFound, e.Code)
}

func TestGetOrder(t *testing.T) {
	store := seededStore()
	svc := testService(store, &fakeLinker{})

	created, err := svc.CreateOrder(context.Background(), models.OrderInput{
		ServiceID: "svc-video",
		Lead:      models.LeadInput{FullName: "Baraka Mwangi", Email: "baraka@studio.io"},
	})
	require.NoError(t, err)

	order, err := svc.GetOrder(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, order.ID)

	_, err = svc.GetOrder(context.Background(), "missing")
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeOrderNotFound, e.Code)
}
