package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents how the amount owed on a booking is settled
type PaymentStatus string

const (
	PaymentPaidFull    PaymentStatus = "paid_full"
	PaymentPaidPartial PaymentStatus = "paid_partial"
	PaymentPayLater    PaymentStatus = "pay_later"
	PaymentNoPayment   PaymentStatus = "no_payment"
)

// IsValid returns true if the status is one of the known values
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPaidFull, PaymentPaidPartial, PaymentPayLater, PaymentNoPayment:
		return true
	}
	return false
}

// PaymentMethod represents the payment instrument on a booking
type PaymentMethod string

const (
	MethodCreditCard PaymentMethod = "credit_card"
	MethodCrypto     PaymentMethod = "crypto"
	MethodCash       PaymentMethod = "cash"
)

// IsValid returns true if the method is one of the known values
func (m PaymentMethod) IsValid() bool {
	return m == MethodCreditCard || m == MethodCrypto || m == MethodCash
}

var (
	// ErrUnknownPaymentStatus returned for a status outside the four known ones
	ErrUnknownPaymentStatus = errors.New("domain: unknown payment status")

	// ErrCashNotAllowed returned when cash is selected in pay_later -
	// pay-later has card-on-file semantics
	ErrCashNotAllowed = errors.New("domain: cash is not allowed for pay_later")
)

// depositFraction initial deposit suggestion for paid_partial (20%)
var depositFraction = decimal.New(20, -2)

// PaymentState is the transient, per-draft payment structure. Its fields
// are written onto the booking at submit time; it is never persisted on
// its own.
type PaymentState struct {
	Status PaymentStatus
	Method PaymentMethod
	Amount decimal.Decimal

	OverrideTotal *decimal.Decimal
	PromoCode     *string

	// amountUserOwned is set once the user is in paid_partial: from then
	// on Amount is user-editable and never re-derived until the status
	// changes again
	amountUserOwned bool
}

// NewPaymentState returns the initial state of a new booking draft:
// paid_full on credit card, amount tracking the grand total.
func NewPaymentState(grandTotal decimal.Decimal) PaymentState {
	return PaymentState{
		Status: PaymentPaidFull,
		Method: MethodCreditCard,
		Amount: grandTotal.Round(moneyPlaces),
	}
}

// ApplyStatus transitions the state machine to a new status.
// Each transition re-derives Amount per the rules of the target status.
func (p *PaymentState) ApplyStatus(status PaymentStatus, grandTotal decimal.Decimal) error {
	switch status {
	case PaymentPaidFull:
		// Amount always snaps to the effective total, overriding any
		// prior manual entry
		p.Amount = grandTotal.Round(moneyPlaces)
		p.amountUserOwned = false
		if !p.Method.IsValid() {
			p.Method = MethodCreditCard
		}

	case PaymentPaidPartial:
		// One-time 20% deposit suggestion; the field is user-owned after
		p.Amount = grandTotal.Mul(depositFraction).Round(moneyPlaces)
		p.amountUserOwned = true

	case PaymentPayLater:
		p.Amount = decimal.Zero
		p.Method = MethodCreditCard // card-on-file semantics
		p.amountUserOwned = false

	case PaymentNoPayment:
		p.Amount = decimal.Zero
		p.amountUserOwned = false

	default:
		return ErrUnknownPaymentStatus
	}

	p.Status = status
	return nil
}

// SetMethod selects the payment method, rejecting cash in pay_later
func (p *PaymentState) SetMethod(method PaymentMethod) error {
	if p.Status == PaymentPayLater && method == MethodCash {
		return ErrCashNotAllowed
	}
	p.Method = method
	return nil
}

// SetAmount writes a manual amount. Only meaningful in paid_partial;
// in paid_full the next SyncTotal would snap it back anyway.
func (p *PaymentState) SetAmount(amount decimal.Decimal) {
	p.Amount = amount.Round(moneyPlaces)
}

// SyncTotal re-derives Amount after the grand total changed (passenger
// counts, override). In paid_full this is a continuous re-derivation;
// a user-owned paid_partial amount is left untouched.
func (p *PaymentState) SyncTotal(grandTotal decimal.Decimal) {
	switch p.Status {
	case PaymentPaidFull:
		p.Amount = grandTotal.Round(moneyPlaces)
	case PaymentPayLater, PaymentNoPayment:
		p.Amount = decimal.Zero
	case PaymentPaidPartial:
		// user-owned, not re-derived
	}
}

// Balance returns grandTotal - amount. A negative balance (overpayment)
// is representable and must be shown as such, not hidden.
func (p *PaymentState) Balance(grandTotal decimal.Decimal) decimal.Decimal {
	return grandTotal.Sub(p.Amount).Round(moneyPlaces)
}
