package booking

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"studiobook/database/repository"
	"studiobook/models"
	"studiobook/services/crm"
)

// LinkResult is the ensure-link outcome. AlreadyExists is a soft-fail
// flag, not an error: a non-failed payment row was found and its
// stored link is returned instead of creating a new one.
type LinkResult struct {
	URL           string
	AlreadyExists bool
}

// PaymentLinker is the post-commit payment boundary. Failures here are
// logged and swallowed; the committed reservation or order stands.
type PaymentLinker interface {
	EnsureReservationLink(ctx context.Context, reservation *models.Reservation, contact *models.Contact) (LinkResult, error)
	EnsureOrderLink(ctx context.Context, order *models.Order, contact *models.Contact) (LinkResult, error)
}

// BookingService runs the reservation and order transaction pipelines.
type BookingService interface {
	CreateBooking(ctx context.Context, in models.BookingInput) (*models.BookingResult, error)
	CreateOrder(ctx context.Context, in models.OrderInput) (*models.OrderResult, error)
	GetBooking(ctx context.Context, id string) (*models.Reservation, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	DaySchedule(ctx context.Context, studioID string, day time.Time) (*DaySchedule, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Tx           repository.TxManager
	Store        repository.RepoSet
	PaymentLinks PaymentLinker
	CRM          crm.Notifier
	Cache        *redis.Client
	Logger       *zap.Logger
	VATRate      decimal.Decimal
	TxTimeout    time.Duration
	Now          func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *DefaultBookingService) txTimeout() time.Duration {
	if s.TxTimeout > 0 {
		return s.TxTimeout
	}
	return 15 * time.Second
}
