package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"studiobook/database/repository"
	"studiobook/models"
	"studiobook/services/booking"
)

// Reconciler consumes payment-provider callback events and applies the
// resulting state transitions to reservations, orders and their payment
// records.
type Reconciler struct {
	Reservations  repository.ReservationRepository
	Orders        repository.OrderRepository
	Payments      repository.PaymentRepository
	OrderPayments repository.OrderPaymentRepository
	Events        repository.WebhookEventRepository
	Logger        *zap.Logger
	Secret        string
	Now           func() time.Time
}

func (r *Reconciler) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now().UTC()
}

// VerifySignature checks the HMAC-SHA256 hex signature of the raw body
// in constant time. With no secret configured the reconciler fails
// closed: every delivery is rejected.
func (r *Reconciler) VerifySignature(body []byte, signature string) error {
	if r.Secret == "" {
		return booking.NewError(booking.CodeInvalidSignature, "webhook secret is not configured")
	}
	if signature == "" {
		return booking.NewError(booking.CodeInvalidSignature, "missing signature header")
	}
	mac := hmac.New(sha256.New, []byte(r.Secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return booking.NewError(booking.CodeInvalidSignature, "signature mismatch")
	}
	return nil
}

// Process applies one provider event. Unknown event types are logged
// and acknowledged; replayed events short-circuit through the
// processed-event ledger. The ledger entry is claimed up front so
// concurrent duplicate deliveries apply at most once, and released
// again when the transition fails, so the provider's retry (after a
// 404 or 5xx response) is reprocessed instead of being mistaken for a
// replay.
func (r *Reconciler) Process(ctx context.Context, event models.ProviderEvent) error {
	if event.Data.ExternalID == "" {
		return booking.NewValidationError("event is missing external_id",
			booking.FieldError{Field: "data.external_id", Message: "external_id is required"})
	}

	eventKey := event.EventType + ":" + event.Data.ID
	replayed, err := r.Events.MarkProcessed(ctx, eventKey, event.EventType)
	if err != nil {
		r.Logger.Warn("webhook event ledger write failed", zap.Error(err))
	} else if replayed {
		r.Logger.Info("webhook event replayed, skipping",
			zap.String("eventKey", eventKey))
		return nil
	}

	if err := r.apply(ctx, event); err != nil {
		if rmErr := r.Events.Remove(ctx, eventKey); rmErr != nil {
			r.Logger.Warn("webhook event ledger release failed",
				zap.String("eventKey", eventKey), zap.Error(rmErr))
		}
		return err
	}
	return nil
}

func (r *Reconciler) apply(ctx context.Context, event models.ProviderEvent) error {
	payment, err := r.Payments.GetByExternalID(ctx, event.Data.ExternalID)
	if err == nil {
		return r.applyToReservation(ctx, event, payment)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	orderPayment, err := r.OrderPayments.GetByExternalID(ctx, event.Data.ExternalID)
	if err == nil {
		return r.applyToOrder(ctx, event, orderPayment)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	return booking.NewError(booking.CodeResourceNotFound, "no booking or order matches the event")
}

func (r *Reconciler) applyToReservation(ctx context.Context, event models.ProviderEvent, payment *models.Payment) error {
	switch event.EventType {
	case "charge.succeeded":
		now := r.now()
		payment.Status = models.PaymentCompleted
		payment.CompletedAt = &now
		if err := r.Payments.Save(ctx, payment); err != nil {
			return err
		}
		return r.Reservations.UpdateStatus(ctx, payment.ReservationID, models.ReservationConfirmed)

	case "charge.failed", "subscription.failed":
		payment.Status = models.PaymentFailed
		if err := r.Payments.Save(ctx, payment); err != nil {
			return err
		}
		return r.Reservations.UpdateStatus(ctx, payment.ReservationID, models.ReservationCancelled)

	case "charge.authorized":
		payment.Status = models.PaymentPending
		payment.Metadata = metadataSnapshot(event, payment.Metadata)
		return r.Payments.Save(ctx, payment)

	case "charge.refunded":
		now := r.now()
		payment.Status = models.PaymentRefunded
		payment.RefundedAt = &now
		if err := r.Payments.Save(ctx, payment); err != nil {
			return err
		}
		return r.Reservations.UpdateStatus(ctx, payment.ReservationID, models.ReservationCancelled)

	case "charge.refund_initiated":
		payment.Metadata = metadataSnapshot(event, payment.Metadata)
		return r.Payments.Save(ctx, payment)

	default:
		r.logInformational(event)
		return nil
	}
}

func (r *Reconciler) applyToOrder(ctx context.Context, event models.ProviderEvent, payment *models.OrderPayment) error {
	switch event.EventType {
	case "charge.succeeded":
		now := r.now()
		payment.Status = models.PaymentCompleted
		payment.CompletedAt = &now
		if err := r.OrderPayments.Save(ctx, payment); err != nil {
			return err
		}
		return r.Orders.UpdateStatus(ctx, payment.OrderID, models.OrderConfirmed)

	case "charge.failed", "subscription.failed":
		payment.Status = models.PaymentFailed
		if err := r.OrderPayments.Save(ctx, payment); err != nil {
			return err
		}
		return r.Orders.UpdateStatus(ctx, payment.OrderID, models.OrderCancelled)

	case "charge.authorized":
		payment.Status = models.PaymentPending
		payment.Metadata = metadataSnapshot(event, payment.Metadata)
		return r.OrderPayments.Save(ctx, payment)

	case "charge.refunded":
		now := r.now()
		payment.Status = models.PaymentRefunded
		payment.RefundedAt = &now
		if err := r.OrderPayments.Save(ctx, payment); err != nil {
			return err
		}
		return r.Orders.UpdateStatus(ctx, payment.OrderID, models.OrderCancelled)

	case "charge.refund_initiated":
		payment.Metadata = metadataSnapshot(event, payment.Metadata)
		return r.OrderPayments.Save(ctx, payment)

	default:
		r.logInformational(event)
		return nil
	}
}

// logInformational covers events with no persisted state change:
// charge.refund_failed, charge.card_verified, payment_link.create,
// payout.processed, payout.failed, subscription.succeeded, and anything
// the provider adds later.
func (r *Reconciler) logInformational(event models.ProviderEvent) {
	r.Logger.Info("informational webhook event",
		zap.String("eventType", event.EventType),
		zap.String("externalID", event.Data.ExternalID),
		zap.String("status", event.Data.Status))
}

// metadataSnapshot refreshes the stored provider metadata with the
// latest event payload; the previous snapshot is kept on marshal
// failure.
func metadataSnapshot(event models.ProviderEvent, previous string) string {
	data, err := json.Marshal(event)
	if err != nil {
		return previous
	}
	return string(data)
}
