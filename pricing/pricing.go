// Package pricing holds the one totals formula used everywhere an order
// amount is computed: the cart view, checkout, and gateway order
// creation all go through Totals so the figures can never disagree.
package pricing

import "math"

const (
	// Orders above this subtotal ship free.
	FreeShippingThreshold = 299.0
	// Flat shipping rate below the threshold.
	ShippingFlat = 49.0
)

// Line is one priced cart line.
type Line struct {
	Price    float64
	Quantity int
}

// Subtotal is the sum of price times quantity over all lines.
func Subtotal(lines []Line) float64 {
	var s float64
	for _, l := range lines {
		s += l.Price * float64(l.Quantity)
	}
	return s
}

// Shipping returns the shipping cost for a given subtotal.
func Shipping(subtotal float64) float64 {
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return ShippingFlat
}

// Totals computes subtotal, shipping and total for a set of lines.
func Totals(lines []Line) (subtotal, shipping, total float64) {
	subtotal = Subtotal(lines)
	shipping = Shipping(subtotal)
	return subtotal, shipping, subtotal + shipping
}

// Paise converts a rupee amount to gateway minor units.
func Paise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
