package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RanjithMathi/freshto-gateway/internal/cart"
	"github.com/RanjithMathi/freshto-gateway/internal/money"
)

func lines(pairs ...[2]float64) []cart.Line {
	out := make([]cart.Line, len(pairs))
	for i, p := range pairs {
		out[i] = cart.Line{
			ProductID: int64(i + 1),
			UnitPrice: money.FromRupees(p[0]),
			Quantity:  int(p[1]),
		}
	}
	return out
}

func TestComputeTotals_FeeAppliesBelowThreshold(t *testing.T) {
	// cart = [{price:225, qty:2}] → subtotal 450, fee 40, tax round(22.5)=23
	totals := ComputeTotals(lines([2]float64{225, 2}), DefaultPricing())

	assert.Equal(t, Totals{Subtotal: 450, DeliveryCharge: 40, Tax: 23, Total: 513}, totals)
}

func TestComputeTotals_FreeDeliveryAboveThreshold(t *testing.T) {
	// cart = [{price:300, qty:2}] → subtotal 600 > 500 → fee 0, tax 30
	totals := ComputeTotals(lines([2]float64{300, 2}), DefaultPricing())

	assert.Equal(t, Totals{Subtotal: 600, DeliveryCharge: 0, Tax: 30, Total: 630}, totals)
}

func TestComputeTotals_ThresholdBoundary(t *testing.T) {
	// Exactly 500 still pays the fee; a single paisa above is free.
	atThreshold := ComputeTotals(lines([2]float64{500, 1}), DefaultPricing())
	assert.Equal(t, int64(40), atThreshold.DeliveryCharge)

	justAbove := ComputeTotals(lines([2]float64{500.01, 1}), DefaultPricing())
	assert.Equal(t, int64(0), justAbove.DeliveryCharge)
}

func TestComputeTotals_EmptyCart(t *testing.T) {
	totals := ComputeTotals(nil, DefaultPricing())
	assert.Equal(t, Totals{Subtotal: 0, DeliveryCharge: 40, Tax: 0, Total: 40}, totals)
}

func TestComputeTotals_TotalInvariant(t *testing.T) {
	carts := [][]cart.Line{
		lines([2]float64{225, 2}),
		lines([2]float64{300, 2}),
		lines([2]float64{45.50, 3}, [2]float64{12.25, 7}),
		lines([2]float64{0.99, 1}),
		lines([2]float64{100.30, 1}, [2]float64{399.49, 1}),
		lines([2]float64{1999, 4}),
	}

	for _, c := range carts {
		totals := ComputeTotals(c, DefaultPricing())
		assert.Equal(t, totals.Subtotal+totals.DeliveryCharge+totals.Tax, totals.Total)
	}
}

func TestComputeTotals_TaxRoundsHalfUp(t *testing.T) {
	// subtotal 450 → tax 22.5 → 23
	totals := ComputeTotals(lines([2]float64{225, 2}), DefaultPricing())
	assert.Equal(t, int64(23), totals.Tax)

	// subtotal 448 → tax 22.4 → 22
	totals = ComputeTotals(lines([2]float64{224, 2}), DefaultPricing())
	assert.Equal(t, int64(22), totals.Tax)
}
