package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"studiobook/config"
	"studiobook/database/repository"
	"studiobook/models"
	"studiobook/services/booking"
)

// Gateway issues payment links for committed reservations and orders.
// At most one non-FAILED payment row exists per reservation or order;
// a second ensure call returns the existing link.
type Gateway struct {
	Payments      repository.PaymentRepository
	OrderPayments repository.OrderPaymentRepository
	Provider      *ProviderClient
	Logger        *zap.Logger
	ReturnURL     string
	FailureURL    string
}

// EnsureReservationLink creates a payment link for the reservation
// unless a non-FAILED payment already exists, in which case the stored
// link is returned with the AlreadyExists flag set.
func (g *Gateway) EnsureReservationLink(ctx context.Context, reservation *models.Reservation, contact *models.Contact) (booking.LinkResult, error) {
	existing, err := g.Payments.ActiveByReservation(ctx, reservation.ID)
	if err == nil {
		g.Logger.Info("payment link already exists",
			zap.String("code", booking.CodePaymentAlreadyExists),
			zap.String("reservationID", reservation.ID),
			zap.String("externalID", existing.ExternalID))
		url, err := g.linkURL(ctx, existing.ExternalID)
		if err != nil {
			return booking.LinkResult{}, err
		}
		return booking.LinkResult{URL: url, AlreadyExists: true}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return booking.LinkResult{}, err
	}

	first, last := splitFullName(contact.FullName)
	link, err := g.Provider.CreatePaymentLink(ctx, CreateLinkRequest{
		Title:             "Studio booking",
		Description:       fmt.Sprintf("Studio session %s to %s", reservation.StartTime.Format("Jan 2 15:04"), reservation.EndTime.Format("15:04")),
		Amount:            reservation.FinalAmount.StringFixed(2),
		Currency:          reservation.Currency,
		ReturnURL:         g.ReturnURL,
		FailureReturnURL:  g.FailureURL,
		CustomerFirstName: first,
		CustomerLastName:  last,
		CustomerEmail:     contact.Email,
		ExternalReference: reservation.ID,
	})
	if err != nil {
		return booking.LinkResult{}, booking.NewError(booking.CodePaymentCreationFailed, err.Error())
	}

	payment := &models.Payment{
		ID:            uuid.New().String(),
		ReservationID: reservation.ID,
		Amount:        reservation.FinalAmount,
		Currency:      reservation.Currency,
		Status:        models.PaymentPending,
		ExternalID:    link.ID,
		Metadata:      string(link.Raw),
	}
	if err := g.Payments.Create(ctx, payment); err != nil {
		return booking.LinkResult{}, err
	}
	return booking.LinkResult{URL: link.URL}, nil
}

// EnsureOrderLink mirrors EnsureReservationLink for the order path.
func (g *Gateway) EnsureOrderLink(ctx context.Context, order *models.Order, contact *models.Contact) (booking.LinkResult, error) {
	existing, err := g.OrderPayments.ActiveByOrder(ctx, order.ID)
	if err == nil {
		g.Logger.Info("payment link already exists",
			zap.String("code", booking.CodePaymentAlreadyExists),
			zap.String("orderID", order.ID),
			zap.String("externalID", existing.ExternalID))
		url, err := g.linkURL(ctx, existing.ExternalID)
		if err != nil {
			return booking.LinkResult{}, err
		}
		return booking.LinkResult{URL: url, AlreadyExists: true}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return booking.LinkResult{}, err
	}

	first, last := splitFullName(contact.FullName)
	link, err := g.Provider.CreatePaymentLink(ctx, CreateLinkRequest{
		Title:             "Production service",
		Description:       fmt.Sprintf("Service order %s", order.ID),
		Amount:            order.FinalAmount.StringFixed(2),
		Currency:          order.Currency,
		ReturnURL:         g.ReturnURL,
		FailureReturnURL:  g.FailureURL,
		CustomerFirstName: first,
		CustomerLastName:  last,
		CustomerEmail:     contact.Email,
		ExternalReference: order.ID,
	})
	if err != nil {
		return booking.LinkResult{}, booking.NewError(booking.CodePaymentCreationFailed, err.Error())
	}

	payment := &models.OrderPayment{
		ID:         uuid.New().String(),
		OrderID:    order.ID,
		Amount:     order.FinalAmount,
		Currency:   order.Currency,
		Status:     models.PaymentPending,
		ExternalID: link.ID,
		Metadata:   string(link.Raw),
	}
	if err := g.OrderPayments.Create(ctx, payment); err != nil {
		return booking.LinkResult{}, err
	}
	return booking.LinkResult{URL: link.URL}, nil
}

// GetPaymentLink fetches the link by provider id for checkout retries.
func (g *Gateway) GetPaymentLink(ctx context.Context, linkID string) (string, error) {
	link, err := g.Provider.GetPaymentLink(ctx, linkID)
	if errors.Is(err, ErrLinkNotFound) {
		return "", booking.NewError(booking.CodeOrderNotFound, "payment link not found")
	}
	if err != nil {
		return "", err
	}
	return link.URL, nil
}

// linkURL re-fetches the URL of an already issued link. When the
// provider is unreachable the stored external id alone is not enough to
// rebuild the URL, so the error propagates.
func (g *Gateway) linkURL(ctx context.Context, externalID string) (string, error) {
	link, err := g.Provider.GetPaymentLink(ctx, externalID)
	if err != nil {
		return "", err
	}
	return link.URL, nil
}

// ConfigStatus reports payment provider readiness for the health
// endpoint.
type ConfigStatus struct {
	Configured bool     `json:"configured"`
	Missing    []string `json:"missing"`
}

// CheckPaymentServiceConfig validates provider settings eagerly so a
// misconfiguration shows up as a diagnostic instead of a hard crash.
func CheckPaymentServiceConfig() ConfigStatus {
	cfg := config.AppConfig
	missing := []string{}
	if cfg.PaymentAPIBase == "" {
		missing = append(missing, "PAYMENT_API_BASE")
	}
	if cfg.PaymentAPIKey == "" {
		missing = append(missing, "PAYMENT_API_KEY")
	}
	if cfg.PaymentWebhookSecret == "" {
		missing = append(missing, "PAYMENT_WEBHOOK_SECRET")
	}
	if cfg.PaymentReturnURL == "" {
		missing = append(missing, "PAYMENT_RETURN_URL")
	}
	if cfg.PaymentFailureURL == "" {
		missing = append(missing, "PAYMENT_FAILURE_URL")
	}
	return ConfigStatus{Configured: len(missing) == 0, Missing: missing}
}

// splitFullName splits a full name into the first/last pair the
// provider expects.
func splitFullName(fullName string) (string, string) {
	parts := strings.Fields(fullName)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
