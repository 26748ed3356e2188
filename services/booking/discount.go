package booking

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"studiobook/database/repository"
	"studiobook/models"
)

// validateDiscount resolves a code and enforces its business rules:
// active flag, validity window, usage limit, minimum order amount, and
// first-time-customer eligibility against the contact's reservation
// and order history. The usage counter itself is consumed later, inside the
// owning transaction, through a conditional update.
func (s *DefaultBookingService) validateDiscount(
	ctx context.Context,
	tx repository.RepoSet,
	code, email string,
	subtotal decimal.Decimal,
) (*models.DiscountCode, error) {
	discount, err := tx.Discounts().GetByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewError(CodeDiscountInvalid, "discount code is not valid")
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !discount.Active || now.Before(discount.StartDate) || now.After(discount.EndDate) {
		return nil, NewError(CodeDiscountInvalid, "discount code is not valid")
	}
	if discount.UsageLimit != nil && discount.UsedCount >= *discount.UsageLimit {
		return nil, NewError(CodeDiscountInvalid, "discount code has been fully redeemed")
	}
	if discount.MinOrderAmount != nil && subtotal.LessThan(*discount.MinOrderAmount) {
		return nil, NewError(CodeDiscountInvalid, "order does not meet the discount minimum amount")
	}

	if discount.FirstTimeOnly {
		if email == "" {
			return nil, NewError(CodeDiscountInvalid, "discount code requires an email address")
		}
		reservations, err := tx.Reservations().CountByContactEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		orders, err := tx.Orders().CountByContactEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if reservations+orders > 0 {
			return nil, NewError(CodeDiscountFirstTimeOnly, "discount code is for first-time customers only")
		}
	}

	return discount, nil
}
