package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type ShippingPolicy interface {
	ShippingFor(subtotal decimal.Decimal) decimal.Decimal
}

// ThresholdShipping charges Fee unless the subtotal is strictly above Threshold.
type ThresholdShipping struct {
	Threshold decimal.Decimal
	Fee       decimal.Decimal
}

func (p ThresholdShipping) ShippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(p.Threshold) {
		return decimal.Zero
	}
	return p.Fee
}

// FlatShipping always charges Fee.
type FlatShipping struct {
	Fee decimal.Decimal
}

func (p FlatShipping) ShippingFor(decimal.Decimal) decimal.Decimal {
	return p.Fee
}

type Totals struct {
	Subtotal Money
	Shipping Money
	Tax      Money
	Total    Money
}

// ComputeTotals derives the checkout totals of items. Tax is charged on the subtotal only
// and rounded to the currency's minor unit. An empty cart has no shipping charge.
func ComputeTotals(items []CartItem, policy ShippingPolicy, taxRate decimal.Decimal, unit currency.Unit) Totals {
	subtotal := ZeroMoney(unit)
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	shipping := ZeroMoney(unit)
	if len(items) > 0 && policy != nil {
		shipping = NewMoney(policy.ShippingFor(subtotal.Amount), unit)
	}

	tax := subtotal.Mul(taxRate).Round()

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
