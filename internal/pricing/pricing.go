// Package pricing computes checkout prices with cent-exact arithmetic.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// FreeShippingThreshold is the items subtotal above which shipping is free.
	FreeShippingThreshold = 100
	// FlatShippingFee is charged when the subtotal does not exceed the threshold.
	FlatShippingFee = 10
	// TaxRate is applied to the items subtotal.
	TaxRate = 0.15
	// Tolerance is the largest difference treated as equal when comparing prices.
	Tolerance = 0.005
)

var (
	freeShippingThreshold = decimal.NewFromInt(FreeShippingThreshold)
	flatShippingFee       = decimal.NewFromInt(FlatShippingFee)
	taxRate               = decimal.NewFromFloat(TaxRate)
)

// Line is one priced cart line.
type Line struct {
	Quantity  int
	UnitPrice float64
}

// Quote holds the four derived order prices.
type Quote struct {
	ItemsPrice    float64
	ShippingPrice float64
	TaxPrice      float64
	TotalPrice    float64
}

// Round2 rounds x to two decimal places, halves rounding up.
func Round2(x float64) float64 {
	return round2(decimal.NewFromFloat(x)).InexactFloat64()
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ItemsPrice returns the rounded sum of quantity × unit price.
func ItemsPrice(lines []Line) float64 {
	return itemsPrice(lines).InexactFloat64()
}

func itemsPrice(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(decimal.NewFromFloat(l.UnitPrice).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return round2(sum)
}

// ShippingPrice returns 0 when itemsPrice exceeds the free-shipping threshold,
// otherwise the flat fee.
func ShippingPrice(itemsPrice float64) float64 {
	return shippingPrice(decimal.NewFromFloat(itemsPrice)).InexactFloat64()
}

func shippingPrice(items decimal.Decimal) decimal.Decimal {
	if items.GreaterThan(freeShippingThreshold) {
		return decimal.Zero
	}
	return flatShippingFee
}

// TaxPrice returns round2(TaxRate × itemsPrice).
func TaxPrice(itemsPrice float64) float64 {
	return taxPrice(decimal.NewFromFloat(itemsPrice)).InexactFloat64()
}

func taxPrice(items decimal.Decimal) decimal.Decimal {
	return round2(taxRate.Mul(items))
}

// Compute prices a cart.
func Compute(lines []Line) Quote {
	items := itemsPrice(lines)
	shipping := shippingPrice(items)
	tax := taxPrice(items)
	total := items.Add(shipping).Add(tax)

	return Quote{
		ItemsPrice:    items.InexactFloat64(),
		ShippingPrice: shipping.InexactFloat64(),
		TaxPrice:      tax.InexactFloat64(),
		TotalPrice:    total.InexactFloat64(),
	}
}

// Matches reports whether every field of q agrees with other within Tolerance.
func (q Quote) Matches(other Quote) bool {
	return almostEqual(q.ItemsPrice, other.ItemsPrice) &&
		almostEqual(q.ShippingPrice, other.ShippingPrice) &&
		almostEqual(q.TaxPrice, other.TaxPrice) &&
		almostEqual(q.TotalPrice, other.TotalPrice)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= Tolerance
}

// Sum adds amounts and rounds the result to cents.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return round2(total).InexactFloat64()
}
