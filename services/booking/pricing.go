package booking

import (
	"github.com/shopspring/decimal"

	"studiobook/models"
)

var hundred = decimal.NewFromInt(100)

// LineCost returns quantity x unitPrice in exact decimal arithmetic.
func LineCost(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// DiscountAmount computes the discount on a subtotal. A fixed-amount
// discount is clamped to the subtotal so the final amount never goes
// negative.
func DiscountAmount(subtotal decimal.Decimal, discount *models.DiscountCode) decimal.Decimal {
	if discount == nil {
		return decimal.Zero
	}
	switch discount.Type {
	case models.DiscountPercentage:
		return subtotal.Mul(discount.Value).Div(hundred).Round(2)
	case models.DiscountFixedAmount:
		if discount.Value.GreaterThan(subtotal) {
			return subtotal.Round(2)
		}
		return discount.Value.Round(2)
	default:
		return decimal.Zero
	}
}

// VATAmount computes VAT on the amount remaining after discount.
func VATAmount(afterDiscount, ratePercent decimal.Decimal) decimal.Decimal {
	return afterDiscount.Mul(ratePercent).Div(hundred).Round(2)
}

// Quote is the monetary breakdown persisted verbatim on the
// reservation or order row.
type Quote struct {
	Base     decimal.Decimal
	Discount decimal.Decimal
	VAT      decimal.Decimal
	Final    decimal.Decimal
}

// BuildQuote assembles the full breakdown for a subtotal: discount,
// VAT on the discounted amount, and final = discounted + VAT.
func BuildQuote(subtotal decimal.Decimal, discount *models.DiscountCode, vatRatePercent decimal.Decimal) Quote {
	d := DiscountAmount(subtotal, discount)
	after := subtotal.Sub(d)
	vat := VATAmount(after, vatRatePercent)
	return Quote{
		Base:     subtotal.Round(2),
		Discount: d,
		VAT:      vat,
		Final:    after.Add(vat).Round(2),
	}
}
