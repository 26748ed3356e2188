package booking

import (
	"context"
	"errors"

	"studiobook/database/repository"
	"studiobook/models"
)

// GetBooking returns a reservation by id for status polling after
// checkout.
func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Reservation, error) {
	reservation, err := s.Store.Reservations().GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewError(CodeResourceNotFound, "booking not found")
	}
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// GetOrder returns an order by id.
func (s *DefaultBookingService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.Store.Orders().GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewError(CodeOrderNotFound, "order not found")
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}
