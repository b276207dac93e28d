package quote_booking

import (
	"fmt"

	"github.com/funinthesundocs/epictours/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AvailabilityID <= 0 {
		return fmt.Errorf("%w: availabilityID must be positive", ErrInvalidInput)
	}

	for typeID, count := range req.Passengers {
		if typeID == "" {
			return fmt.Errorf("%w: empty passenger type id", ErrInvalidInput)
		}
		if count < 0 {
			return fmt.Errorf("%w: negative passenger count for type %q", ErrInvalidInput, typeID)
		}
	}

	if req.Passengers.Total() <= 0 {
		return ErrZeroPassengers
	}

	if req.EditingBookingID != nil && *req.EditingBookingID <= 0 {
		return fmt.Errorf("%w: editingBookingID must be positive", ErrInvalidInput)
	}

	if req.OverrideTotal != nil && req.OverrideTotal.IsNegative() {
		return ErrNegativeOverride
	}

	if req.Amount != nil && req.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}

	if req.PaymentStatus != "" && !domain.PaymentStatus(req.PaymentStatus).IsValid() {
		return fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, req.PaymentStatus)
	}

	if req.PaymentMethod != "" && !domain.PaymentMethod(req.PaymentMethod).IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}

	return nil
}

// derivePaymentState строит платежное состояние драфта из запроса
func derivePaymentState(req *Request, totals domain.BookingTotals) (domain.PaymentState, error) {
	payment := domain.NewPaymentState(totals.GrandTotal)
	payment.OverrideTotal = req.OverrideTotal
	payment.PromoCode = req.PromoCode

	status := domain.PaymentStatus(req.PaymentStatus)
	if req.PaymentStatus == "" {
		status = domain.PaymentPaidFull
	}

	if err := payment.ApplyStatus(status, totals.GrandTotal); err != nil {
		return payment, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.PaymentMethod != "" {
		if err := payment.SetMethod(domain.PaymentMethod(req.PaymentMethod)); err != nil {
			return payment, ErrCashNotAllowed
		}
	}

	if status == domain.PaymentPaidPartial && req.Amount != nil {
		payment.SetAmount(*req.Amount)
	}

	return payment, nil
}
