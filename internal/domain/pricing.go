package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	TaxRate               = decimal.RequireFromString("0.16")
	FreeShippingThreshold = decimal.NewFromInt(500)
	ShippingFee           = decimal.NewFromInt(50)
)

type Totals struct {
	Subtotal Money
	Tax      Money
	Shipping Money
	Total    Money
}

// PriceLines computes order totals. Intermediate values keep full precision;
// every field is rounded to cents only on the way out.
func PriceLines(lines []CheckoutLine, unit currency.Unit) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Amount.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	tax := subtotal.Mul(TaxRate)

	shipping := ShippingFee
	if subtotal.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	total := subtotal.Add(tax).Add(shipping)

	return Totals{
		Subtotal: NewMoney(subtotal, unit).Round(),
		Tax:      NewMoney(tax, unit).Round(),
		Shipping: NewMoney(shipping, unit).Round(),
		Total:    NewMoney(total, unit).Round(),
	}
}
