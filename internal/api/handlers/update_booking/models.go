package update_booking

import (
	"fmt"

	"github.com/shopspring/decimal"

	updateBooking "github.com/funinthesundocs/epictours/internal/usecase/update_booking"
)

// UpdateBookingRequest HTTP request model
type UpdateBookingRequest struct {
	Passengers   map[string]int    `json:"passengers"` // typeId -> count
	OptionValues map[string]string `json:"optionValues,omitempty"`
	Notes        *string           `json:"notes,omitempty"`
	Tier         string            `json:"tier,omitempty"`

	PaymentStatus string  `json:"paymentStatus,omitempty"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	Amount        *string `json:"amount,omitempty"`
	OverrideTotal *string `json:"overrideTotal,omitempty"`
	PromoCode     *string `json:"promoCode,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID int64) (*updateBooking.Request, error) {
	amount, err := parseMoney(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %v", err)
	}

	overrideTotal, err := parseMoney(r.OverrideTotal)
	if err != nil {
		return nil, fmt.Errorf("invalid overrideTotal: %v", err)
	}

	return &updateBooking.Request{
		BookingID:     bookingID,
		Passengers:    r.Passengers,
		OptionValues:  r.OptionValues,
		Notes:         r.Notes,
		Tier:          r.Tier,
		PaymentStatus: r.PaymentStatus,
		PaymentMethod: r.PaymentMethod,
		Amount:        amount,
		OverrideTotal: overrideTotal,
		PromoCode:     r.PromoCode,
	}, nil
}

func parseMoney(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
