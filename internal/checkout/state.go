// Package checkout drives the order placement flow as an explicit state
// machine, independent of any screen or navigation concern:
//
//	CartReview → AddressSelected → SlotSelected → SummaryReviewed
//	           → Placing → Placed | Failed (retry re-enters Placing)
package checkout

import "errors"

type Stage string

const (
	StageCartReview      Stage = "CART_REVIEW"
	StageAddressSelected Stage = "ADDRESS_SELECTED"
	StageSlotSelected    Stage = "SLOT_SELECTED"
	StageSummaryReviewed Stage = "SUMMARY_REVIEWED"
	StagePlacing         Stage = "PLACING"
	StagePlaced          Stage = "PLACED"
	StageFailed          Stage = "FAILED"
)

// Terminal reports whether the flow is finished. Failed is not terminal:
// the user may retry with the same payload.
func (s Stage) Terminal() bool {
	return s == StagePlaced
}

func (s Stage) String() string { return string(s) }

var (
	IllegalTransitionError = errors.New("illegal transition of checkout stage")
	ErrEmptyCart           = errors.New("cart is empty, nothing to checkout")
	ErrNoAddresses         = errors.New("no saved addresses, create one first")
	ErrUnknownAddress      = errors.New("address is not in the customer's address book")
	ErrUnknownSlot         = errors.New("delivery slot is not on the menu")
	ErrSlotUnavailable     = errors.New("delivery slot is not available")
	ErrNoPaymentMethod     = errors.New("no payment method selected")
)

type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "COD"
	PaymentUPI  PaymentMethod = "UPI"
	PaymentCard PaymentMethod = "CARD"
)

func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch PaymentMethod(raw) {
	case PaymentCOD, PaymentUPI, PaymentCard:
		return PaymentMethod(raw), nil
	}
	return "", errors.New("payment method must be COD, UPI or CARD")
}
