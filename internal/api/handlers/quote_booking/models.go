package quote_booking

import (
	"fmt"

	"github.com/shopspring/decimal"

	quoteBooking "github.com/funinthesundocs/epictours/internal/usecase/quote_booking"
)

// QuoteBookingRequest HTTP request model
type QuoteBookingRequest struct {
	AvailabilityID   int64          `json:"availabilityId"`
	Passengers       map[string]int `json:"passengers"` // typeId -> count
	Tier             string         `json:"tier,omitempty"`
	EditingBookingID *int64         `json:"editingBookingId,omitempty"`

	PaymentStatus string  `json:"paymentStatus,omitempty"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	Amount        *string `json:"amount,omitempty"`
	OverrideTotal *string `json:"overrideTotal,omitempty"`
	PromoCode     *string `json:"promoCode,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuoteBookingRequest) ToUseCaseRequest() (*quoteBooking.Request, error) {
	amount, err := parseMoney(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %v", err)
	}

	overrideTotal, err := parseMoney(r.OverrideTotal)
	if err != nil {
		return nil, fmt.Errorf("invalid overrideTotal: %v", err)
	}

	return &quoteBooking.Request{
		AvailabilityID:   r.AvailabilityID,
		Passengers:       r.Passengers,
		Tier:             r.Tier,
		EditingBookingID: r.EditingBookingID,
		PaymentStatus:    r.PaymentStatus,
		PaymentMethod:    r.PaymentMethod,
		Amount:           amount,
		OverrideTotal:    overrideTotal,
		PromoCode:        r.PromoCode,
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
