// Package pricing is the single home of the discount arithmetic. The product
// serializer, the cart subtotal and the order transaction all go through it so
// displayed and charged amounts cannot drift.
package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Effective returns the unit price after applying a percentage discount,
// rounded to 2 decimal places. A zero or negative discount leaves the list
// price untouched.
func Effective(price decimal.Decimal, discountPercent int) decimal.Decimal {
	if discountPercent <= 0 {
		return price
	}
	return price.
		Mul(decimal.NewFromInt(int64(100 - discountPercent))).
		Div(hundred).
		Round(2)
}

// LineTotal is the effective unit price times the quantity, rounded to
// 2 decimal places.
func LineTotal(price decimal.Decimal, discountPercent, quantity int) decimal.Decimal {
	return Effective(price, discountPercent).
		Mul(decimal.NewFromInt(int64(quantity))).
		Round(2)
}

// Line pairs a product's price fields with an ordered quantity.
type Line struct {
	Price           decimal.Decimal
	DiscountPercent int
	Quantity        int
}

// Subtotal sums the line totals, rounded to 2 decimal places.
func Subtotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(LineTotal(l.Price, l.DiscountPercent, l.Quantity))
	}
	return total.Round(2)
}
