package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"studiobook/database/repository"
	"studiobook/models"
)

// CreateBooking runs the full reservation pipeline: validation,
// availability, pricing, discount application, and atomic persistence.
// Post-commit side effects (CRM push, payment link) are best-effort and
// never roll back the committed reservation.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, in models.BookingInput) (*models.BookingResult, error) {
	if err := validateBookingInput(in); err != nil {
		return nil, err
	}

	start := in.SelectedTime.UTC()
	end := start.Add(time.Duration(in.Duration) * time.Hour)

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout())
	defer cancel()

	var (
		reservation *models.Reservation
		contact     *models.Contact
	)

	err := s.Tx.RunInTx(txCtx, func(tx repository.RepoSet) error {
		// Locking the studio row serializes the conflict
		// check-then-create sequence for that studio.
		studio, err := tx.Studios().GetByIDForUpdate(txCtx, in.StudioID)
		if errors.Is(err, repository.ErrNotFound) {
			return NewError(CodeResourceNotFound, "studio not found")
		}
		if err != nil {
			return err
		}

		if err := HasCapacity(in.NumberOfSeats, studio); err != nil {
			return err
		}
		if err := FitsOperatingHours(start, end, studio); err != nil {
			return err
		}

		existing, err := tx.Reservations().OverlappingForStudio(txCtx, studio.ID, start, end)
		if err != nil {
			return err
		}
		if err := CheckConflicts(start, end, existing); err != nil {
			return err
		}

		pkg, err := tx.Packages().GetActiveByID(txCtx, in.PackageID)
		if errors.Is(err, repository.ErrNotFound) {
			return NewError(CodePackageNotFound, "package not found")
		}
		if err != nil {
			return err
		}

		subtotal := LineCost(pkg.PricePerHour, in.Duration)

		// Resolve add-on line items with unit price snapshots.
		items := make([]models.ReservationItem, 0, len(in.AdditionalServices))
		for _, add := range in.AdditionalServices {
			svc, err := tx.Services().GetActiveByID(txCtx, add.ID)
			if errors.Is(err, repository.ErrNotFound) {
				return NewError(CodeServiceNotFound, "additional service not found")
			}
			if err != nil {
				return err
			}
			qty := add.Quantity
			if qty == 0 {
				qty = 1
			}
			lineTotal := LineCost(svc.Price, qty)
			items = append(items, models.ReservationItem{
				ID:        uuid.New().String(),
				ServiceID: svc.ID,
				Quantity:  qty,
				UnitPrice: svc.Price,
				LineTotal: lineTotal,
			})
			subtotal = subtotal.Add(lineTotal)
		}

		var discount *models.DiscountCode
		if in.DiscountCode != "" {
			discount, err = s.validateDiscount(txCtx, tx, in.DiscountCode, in.Lead.Email, subtotal)
			if err != nil {
				return err
			}
		}

		quote := BuildQuote(subtotal, discount, s.VATRate)

		contact, err = tx.Contacts().UpsertByEmail(txCtx, in.Lead)
		if err != nil {
			return err
		}

		reservation = &models.Reservation{
			ID:             uuid.New().String(),
			StudioID:       studio.ID,
			PackageID:      pkg.ID,
			ContactID:      contact.ID,
			StartTime:      start,
			EndTime:        end,
			Seats:          in.NumberOfSeats,
			Status:         models.ReservationPending,
			BaseAmount:     quote.Base,
			DiscountAmount: quote.Discount,
			VATAmount:      quote.VAT,
			FinalAmount:    quote.Final,
			Currency:       pkg.Currency,
			Items:          items,
		}
		if discount != nil {
			reservation.DiscountCodeID = &discount.ID
		}
		if err := tx.Reservations().Create(txCtx, reservation); err != nil {
			return err
		}

		if discount != nil {
			consumed, err := tx.Discounts().ConsumeUsage(txCtx, discount.ID)
			if err != nil {
				return err
			}
			if !consumed {
				return NewError(CodeDiscountInvalid, "discount code has been fully redeemed")
			}
		}
		return nil
	})
	if err != nil {
		if _, ok := AsError(err); ok {
			return nil, err
		}
		s.Logger.Error("booking transaction failed", zap.Error(err))
		return nil, NewError(CodeBookingFailed, "could not complete booking, please try again")
	}

	result := &models.BookingResult{
		ID:             reservation.ID,
		StartTime:      reservation.StartTime,
		EndTime:        reservation.EndTime,
		Status:         string(reservation.Status),
		TotalCost:      reservation.BaseAmount,
		VATAmount:      reservation.VATAmount,
		DiscountAmount: reservation.DiscountAmount,
		FinalAmount:    reservation.FinalAmount,
		Currency:       reservation.Currency,
	}
	result.PaymentURL = s.afterBookingCommit(reservation, contact)
	return result, nil
}

// afterBookingCommit runs the best-effort post-commit side effects and
// returns the payment URL, empty when link creation failed.
func (s *DefaultBookingService) afterBookingCommit(reservation *models.Reservation, contact *models.Contact) string {
	if s.CRM != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := s.CRM.PushReservation(ctx, reservation, contact); err != nil {
				s.Logger.Warn("crm push failed",
					zap.String("reservationID", reservation.ID), zap.Error(err))
			}
		}()
	}

	if s.PaymentLinks == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	link, err := s.PaymentLinks.EnsureReservationLink(ctx, reservation, contact)
	if err != nil {
		s.Logger.Error("payment link creation failed",
			zap.String("reservationID", reservation.ID), zap.Error(err))
		return ""
	}
	if link.AlreadyExists {
		s.Logger.Info("reusing existing payment link",
			zap.String("reservationID", reservation.ID))
	}
	return link.URL
}

func validateBookingInput(in models.BookingInput) error {
	var fields []FieldError
	if in.Lead.Email == "" {
		fields = append(fields, FieldError{Field: "lead.email", Message: "email is required for bookings"})
	}
	if in.SelectedTime.IsZero() {
		fields = append(fields, FieldError{Field: "selectedTime", Message: "selected time is required"})
	}
	if in.Duration <= 0 {
		fields = append(fields, FieldError{Field: "duration", Message: "duration must be at least one hour"})
	}
	if in.NumberOfSeats <= 0 {
		fields = append(fields, FieldError{Field: "numberOfSeats", Message: "at least one seat is required"})
	}
	if len(fields) > 0 {
		return NewValidationError("invalid booking request", fields...)
	}
	return nil
}
