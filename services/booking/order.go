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

// CreateOrder runs the order pipeline: a non-time-boxed purchase of a
// single service, with the same pricing, discount and persistence rules
// as bookings minus the availability checks.
func (s *DefaultBookingService) CreateOrder(ctx context.Context, in models.OrderInput) (*models.OrderResult, error) {
	if err := validateOrderInput(in); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout())
	defer cancel()

	var (
		order   *models.Order
		contact *models.Contact
	)

	err := s.Tx.RunInTx(txCtx, func(tx repository.RepoSet) error {
		svc, err := tx.Services().GetActiveByID(txCtx, in.ServiceID)
		if errors.Is(err, repository.ErrNotFound) {
			return NewError(CodeServiceNotFound, "service not found")
		}
		if err != nil {
			return err
		}

		subtotal := svc.Price

		var discount *models.DiscountCode
		if in.DiscountCode != "" {
			discount, err = s.validateDiscount(txCtx, tx, in.DiscountCode, in.Lead.Email, subtotal)
			if err != nil {
				return err
			}
		}

		quote := BuildQuote(subtotal, discount, s.VATRate)

		contact, err = tx.Contacts().UpsertByEmailOrPhone(txCtx, in.Lead)
		if err != nil {
			return err
		}

		order = &models.Order{
			ID:             uuid.New().String(),
			ServiceID:      svc.ID,
			ContactID:      contact.ID,
			Status:         models.OrderPending,
			BaseAmount:     quote.Base,
			DiscountAmount: quote.Discount,
			VATAmount:      quote.VAT,
			FinalAmount:    quote.Final,
			Currency:       svc.Currency,
			EstimatedDays:  svc.EstimatedDays,
		}
		if svc.EstimatedDays > 0 {
			deadline := s.now().AddDate(0, 0, svc.EstimatedDays)
			order.Deadline = &deadline
		}
		if discount != nil {
			order.DiscountCodeID = &discount.ID
		}
		if err := tx.Orders().Create(txCtx, order); err != nil {
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
		s.Logger.Error("order transaction failed", zap.Error(err))
		return nil, NewError(CodeOrderFailed, "could not complete order, please try again")
	}

	result := &models.OrderResult{
		ID:             order.ID,
		Status:         string(order.Status),
		TotalCost:      order.BaseAmount,
		VATAmount:      order.VATAmount,
		DiscountAmount: order.DiscountAmount,
		FinalAmount:    order.FinalAmount,
		Currency:       order.Currency,
		EstimatedDays:  order.EstimatedDays,
		Deadline:       order.Deadline,
	}
	result.PaymentURL = s.afterOrderCommit(order, contact)
	return result, nil
}

func (s *DefaultBookingService) afterOrderCommit(order *models.Order, contact *models.Contact) string {
	if s.CRM != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := s.CRM.PushOrder(ctx, order, contact); err != nil {
				s.Logger.Warn("crm push failed",
					zap.String("orderID", order.ID), zap.Error(err))
			}
		}()
	}

	if s.PaymentLinks == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	link, err := s.PaymentLinks.EnsureOrderLink(ctx, order, contact)
	if err != nil {
		s.Logger.Error("payment link creation failed",
			zap.String("orderID", order.ID), zap.Error(err))
		return ""
	}
	if link.AlreadyExists {
		s.Logger.Info("reusing existing payment link",
			zap.String("orderID", order.ID))
	}
	return link.URL
}

func validateOrderInput(in models.OrderInput) error {
	var fields []FieldError
	if in.ServiceID == "" {
		fields = append(fields, FieldError{Field: "serviceId", Message: "service is required"})
	}
	if in.Lead.Email == "" && in.Lead.PhoneNumber == "" {
		fields = append(fields, FieldError{Field: "lead", Message: "an email or phone number is required"})
	}
	if len(fields) > 0 {
		return NewValidationError("invalid order request", fields...)
	}
	return nil
}
