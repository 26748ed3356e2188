package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"studiobook/database/repository"
	"studiobook/models"
	"studiobook/services/booking"
)

type memState struct {
	reservations  map[string]*models.Reservation
	orders        map[string]*models.Order
	payments      map[string]*models.Payment
	orderPayments map[string]*models.OrderPayment
	events        map[string]bool
}

func newMemState() *memState {
	return &memState{
		reservations:  map[string]*models.Reservation{},
		orders:        map[string]*models.Order{},
		payments:      map[string]*models.Payment{},
		orderPayments: map[string]*models.OrderPayment{},
		events:        map[string]bool{},
	}
}

type memReservations struct{ s *memState }

func (r memReservations) Create(_ context.Context, reservation *models.Reservation) error {
	r.s.reservations[reservation.ID] = reservation
	return nil
}

func (r memReservations) GetByID(_ context.Context, id string) (*models.Reservation, error) {
	if res, ok := r.s.reservations[id]; ok {
		return res, nil
	}
	return nil, repository.ErrNotFound
}

func (r memReservations) OverlappingForStudio(context.Context, string, time.Time, time.Time) ([]models.Reservation, error) {
	return nil, nil
}

func (r memReservations) ActiveForStudioBetween(context.Context, string, time.Time, time.Time) ([]models.Reservation, error) {
	return nil, nil
}

func (r memReservations) CountByContactEmail(context.Context, string) (int64, error) {
	return 0, nil
}

func (r memReservations) UpdateStatus(_ context.Context, id string, status models.ReservationStatus) error {
	res, ok := r.s.reservations[id]
	if !ok {
		return repository.ErrNotFound
	}
	res.Status = status
	return nil
}

type memOrders struct{ s *memState }

func (r memOrders) Create(_ context.Context, order *models.Order) error {
	r.s.orders[order.ID] = order
	return nil
}

func (r memOrders) GetByID(_ context.Context, id string) (*models.Order, error) {
	if order, ok := r.s.orders[id]; ok {
		return order, nil
	}
	return nil, repository.ErrNotFound
}

func (r memOrders) CountByContactEmail(context.Context, string) (int64, error) { return 0, nil }

func (r memOrders) UpdateStatus(_ context.Context, id string, status models.OrderStatus) error {
	order, ok := r.s.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	order.Status = status
	return nil
}

type memPayments struct{ s *memState }

func (r memPayments) Create(_ context.Context, payment *models.Payment) error {
	r.s.payments[payment.ID] = payment
	return nil
}

func (r memPayments) ActiveByReservation(_ context.Context, reservationID string) (*models.Payment, error) {
	for _, p := range r.s.payments {
		if p.ReservationID == reservationID && p.Status != models.PaymentFailed {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memPayments) GetByExternalID(_ context.Context, externalID string) (*models.Payment, error) {
	for _, p := range r.s.payments {
		if p.ExternalID == externalID {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memPayments) Save(_ context.Context, payment *models.Payment) error {
	r.s.payments[payment.ID] = payment
	return nil
}

type memOrderPayments struct{ s *memState }

func (r memOrderPayments) Create(_ context.Context, payment *models.OrderPayment) error {
	r.s.orderPayments[payment.ID] = payment
	return nil
}

func (r memOrderPayments) ActiveByOrder(_ context.Context, orderID string) (*models.OrderPayment, error) {
	for _, p := range r.s.orderPayments {
		if p.OrderID == orderID && p.Status != models.PaymentFailed {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memOrderPayments) GetByExternalID(_ context.Context, externalID string) (*models.OrderPayment, error) {
	for _, p := range r.s.orderPayments {
		if p.ExternalID == externalID {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memOrderPayments) Save(_ context.Context, payment *models.OrderPayment) error {
	r.s.orderPayments[payment.ID] = payment
	return nil
}

type memEvents struct{ s *memState }

func (r memEvents) MarkProcessed(_ context.Context, eventKey, _ string) (bool, error) {
	if r.s.events[eventKey] {
		return true, nil
	}
	r.s.events[eventKey] = true
	return false, nil
}

func (r memEvents) Remove(_ context.Context, eventKey string) error {
	delete(r.s.events, eventKey)
	return nil
}

var frozen = time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

func testReconciler(s *memState) *Reconciler {
	return &Reconciler{
		Reservations:  memReservations{s},
		Orders:        memOrders{s},
		Payments:      memPayments{s},
		OrderPayments: memOrderPayments{s},
		Events:        memEvents{s},
		Logger:        zap.NewNop(),
		Secret:        "whsec_test",
		Now:           func() time.Time { return frozen },
	}
}

func seedReservationPayment(s *memState) {
	s.reservations["res-1"] = &models.Reservation{ID: "res-1", Status: models.ReservationPending}
	s.payments["pay-1"] = &models.Payment{
		ID:            "pay-1",
		ReservationID: "res-1",
		Status:        models.PaymentPending,
		ExternalID:    "pl_1",
	}
}

func seedOrderPayment(s *memState) {
	s.orders["ord-1"] = &models.Order{ID: "ord-1", Status: models.OrderPending}
	s.orderPayments["opay-1"] = &models.OrderPayment{
		ID:         "opay-1",
		OrderID:    "ord-1",
		Status:     models.PaymentPending,
		ExternalID: "pl_2",
	}
}

func event(eventType, id, externalID string) models.ProviderEvent {
	return models.ProviderEvent{
		EventType: eventType,
		Data: models.ProviderEventData{
			ID:         id,
			ExternalID: externalID,
			Status:     "settled",
			Amount:     "232.00",
			Currency:   "KES",
		},
	}
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	r := testReconciler(newMemState())
	body := []byte(`{"event_type":"charge.succeeded"}`)

	assert.NoError(t, r.VerifySignature(body, sign("whsec_test", body)))

	err := r.VerifySignature(body, sign("wrong-secret", body))
	e, ok := booking.AsError(err)
	require.True(t, ok)
	assert.Equal(t, booking.CodeInvalidSignature, e.Code)

	err = r.VerifySignature(body, "")
	e, ok = booking.AsError(err)
	require.True(t, ok)
	assert.Equal(t, booking.CodeInvalidSignature, e.Code)
}

func TestVerifySignatureFailsClosedWithoutSecret(t *testing.T) {
	r := testReconciler(newMemState())
	r.Secret = ""
	body := []byte(`{}`)

	err := r.VerifySignature(body, sign("", body))
	e, ok := booking.AsError(err)
	require.True(t, ok)
	assert.Equal(t, booking.CodeInvalidSignature, e.Code)
}

func TestProcessChargeSucceeded(t *testing.T) {
	s := newMemState()
	seedReservationPayment(s)
	r := testReconciler(s)

	err := r.Process(context.Background(), event("charge.succeeded", "evt-1", "pl_1"))
	require.NoError(t, err)

	assert.Equal(t, models.ReservationConfirmed, s.reservations["res-1"].Status)
	payment := s.payments["pay-1"]
	assert.Equal(t, models.PaymentCompleted, payment.Status)
	require.NotNil(t, payment.CompletedAt)
	assert.Equal(t, frozen, *payment.CompletedAt)
}

func TestProcessReplayIsNoOp(t *testing.T) {
	s := newMemState()
	seedReservationPayment(s)
	r := testReconciler(s)

	require.NoError(t, r.Process(context.Background(), event("charge.succeeded", "evt-1", "pl_1")))

	// Undo the transition, then replay the same delivery.
	s.reservations["res-1"].Status = models.ReservationPending
	s.payments["pay-1"].Status = models.PaymentPending

	require.NoError(t, r.Process(context.Background(), event("charge.succeeded", "evt-1", "pl_1")))
	assert.Equal(t, models.ReservationPending, s.reservations["res-1"].Status,
		"replayed delivery must not re-apply the transition")
}

func TestProcessRetryAfterFailureApplies(t *testing.T) {
	s := newMemState()
	r := testReconciler(s)

	// First delivery races ahead of the payment-row write and fails
	// with a lookup error, which the handler surfaces as a 404 so the
	// provider retries.
	err := r.Process(context.Background(), event("charge.succeeded", "evt-race", "pl_1"))
	e, ok := booking.AsError(err)
	require.True(t, ok)
	assert.Equal(t, booking.CodeResourceNotFound, e.Code)

	// The payment row lands, then the identical event is redelivered.
	// The failed attempt must not have claimed the dedup key.
	seedReservationPayment(s)
	require.NoError(t, r.Process(context.Background(), event("charge.succeeded", "evt-race", "pl_1")))
	assert.Equal(t, models.ReservationConfirmed, s.reservations["res-1"].Status)
	assert.Equal(t, models.PaymentCompleted, s.payments["pay-1"].Status)
}

func TestProcessChargeFailed(t *testing.T) {
	s := newMemState()
	seedReservationPayment(s)
	r := testReconciler(s)

	err := r.Process(context.Background(), event("charge.failed", "evt-2", "pl_1"))
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, s.reservations["res-1"].Status)
	assert.Equal(t, models.PaymentFailed, s.payments["pay-1"].Status)
}

func TestProcessChargeRefunded(t *testing.T) {
	s := newMemState()
	seedReservationPayment(s)
	s.reservations["res-1"].Status = models.ReservationConfirmed
	s.payments["pay-1"].Status = models.PaymentCompleted
	r := testReconciler(s)

	err := r.Process(context.Background(), event("charge.refunded", "evt-3", "pl_1"))
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, s.reservations["res-1"].Status)
	payment := s.payments["pay-1"]
	assert.Equal(t, models.PaymentRefunded, payment.Status)
	require.NotNil(t, payment.RefundedAt)
	assert.Equal(t, frozen, *payment.RefundedAt)
}

func TestProcessChargeAuthorizedKeepsPending(t *testing.T) {
	s := newMemState()
	seedReservationPayment(s)
	r := testReconciler(s)

	err := r.Process(context.Background(), event("charge.authorized", "evt-4", "pl_1"))
	require.NoError(t, err)
	assert.Equal(t, models.ReservationPending, s.reservations["res-1"].Status)
	payment := s.payments["pay-1"]
	assert.Equal(t, models.PaymentPending, payment.Status)
	assert.Contains(t, payment.Metadata, "charge.authorized")
}

func TestProcessInformationalEvent(t *testing.T) {
	s := newMemState()
	seedReservationPayment(s)
	r := testReconciler(s)

	err := r.Process(context.Background(), event("payout.processed", "evt-5", "pl_1"))
	require.NoError(t, err)
	assert.Equal(t, models.ReservationPending, s.reservations["res-1"].Status)
	assert.Equal(t, models.PaymentPending, s.payments["pay-1"].Status)
}

func TestProcessOrderEvents(t *testing.T) {
	s := newMemState()
	seedOrderPayment(s)
	r := testReconciler(s)

	err := r.Process(context.Background(), event("charge.succeeded", "evt-6", "pl_2"))
	require.NoError(t, err)
	assert.Equal(t, models.OrderConfirmed, s.orders["ord-1"].Status)
	payment := s.orderPayments["opay-1"]
	assert.Equal(t, models.PaymentCompleted, payment.Status)
	require.NotNil(t, payment.CompletedAt)

	err = r.Process(context.Background(), event("subscription.failed", "evt-7", "pl_2"))
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, s.orders["ord-1"].Status)
}

func TestProcessMissingExternalID(t *testing.T) {
	r := testReconciler(newMemState())

	err := r.Process(context.Background(), event("charge.succeeded", "evt-8", ""))
	e, ok := booking.AsError(err)
	require.True(t, ok)
	assert.Equal(t, booking.CodeInvalidRequest, e.Code)
}

func TestProcessUnresolvableExternalID(t *testing.T) {
	r := testReconciler(newMemState())

	err := r.Process(context.Background(), event("charge.succeeded", "evt-9", "pl_none"))
	e, ok := booking.AsError(err)
	require.True(t, ok)
	assert.Equal(t, booking.CodeResourceNotFound, e.Code)
}
