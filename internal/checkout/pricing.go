package checkout

import (
	"github.com/RanjithMathi/freshto-gateway/internal/cart"
	"github.com/RanjithMathi/freshto-gateway/internal/money"
)

// PricingRule fixes the delivery-fee threshold and tax rate for a checkout.
type PricingRule struct {
	DeliveryFee       money.Paise
	FreeDeliveryAbove money.Paise // fee waived strictly above this subtotal
	TaxPercent        int64
}

func DefaultPricing() PricingRule {
	return PricingRule{
		DeliveryFee:       money.FromRupees(40),
		FreeDeliveryAbove: money.FromRupees(500),
		TaxPercent:        5,
	}
}

// Totals are whole-rupee display amounts. Subtotal and tax are rounded
// to the nearest rupee before summing, so the invariant
// Total == Subtotal + DeliveryCharge + Tax holds by construction.
type Totals struct {
	Subtotal       int64 `json:"subtotal"`
	DeliveryCharge int64 `json:"deliveryCharge"`
	Tax            int64 `json:"tax"`
	Total          int64 `json:"total"`
}

// ComputeTotals is a pure function of the cart lines and the pricing rule.
// It is recomputed on demand and never cached.
func ComputeTotals(lines []cart.Line, rule PricingRule) Totals {
	var subtotal money.Paise
	for _, l := range lines {
		subtotal += l.Total()
	}

	fee := rule.DeliveryFee
	if subtotal > rule.FreeDeliveryAbove {
		fee = 0
	}

	tax := subtotal * money.Paise(rule.TaxPercent) / 100

	t := Totals{
		Subtotal:       subtotal.Rupees(),
		DeliveryCharge: fee.Rupees(),
		Tax:            tax.Rupees(),
	}
	t.Total = t.Subtotal + t.DeliveryCharge + t.Tax
	return t
}
