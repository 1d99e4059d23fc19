// Package money holds currency amounts as integer paise so that cart and
// order totals never accumulate floating-point drift. The backend exchanges
// plain decimal rupees, so conversion happens at the JSON boundary.
package money

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Paise is an amount in the currency's minor unit (1 rupee = 100 paise).
type Paise int64

// FromRupees converts a decimal rupee amount to paise.
func FromRupees(v float64) Paise {
	return Paise(math.Round(v * 100))
}

// Rupees rounds to the nearest whole rupee, half away from zero upwards.
// This matches the display rounding of the storefront (Math.round semantics).
func (p Paise) Rupees() int64 {
	n := int64(p) + 50
	if n >= 0 {
		return n / 100
	}
	// floor division for negative amounts
	return -((-n + 99) / 100)
}

// Major returns the exact decimal rupee value.
func (p Paise) Major() float64 {
	return float64(p) / 100
}

func (p Paise) String() string {
	return fmt.Sprintf("₹%s", strconv.FormatFloat(p.Major(), 'f', -1, 64))
}

// MarshalJSON emits the amount as a plain decimal rupee number,
// the wire format the backend uses for all monetary values.
func (p Paise) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(p.Major(), 'f', -1, 64)), nil
}

func (p *Paise) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid money value: %w", err)
	}
	*p = FromRupees(v)
	return nil
}
