package create_booking

import (
	"fmt"

	"github.com/shopspring/decimal"

	createBooking "github.com/funinthesundocs/epictours/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	AvailabilityID int64             `json:"availabilityId"`
	Passengers     map[string]int    `json:"passengers"` // typeId -> count
	OptionValues   map[string]string `json:"optionValues,omitempty"`
	Notes          *string           `json:"notes,omitempty"`
	Tier           string            `json:"tier,omitempty"`

	PaymentStatus string  `json:"paymentStatus,omitempty"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	Amount        *string `json:"amount,omitempty"`        // "120.00"
	OverrideTotal *string `json:"overrideTotal,omitempty"` // "99.50"
	PromoCode     *string `json:"promoCode,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// (с парсингом денежных строк)
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	amount, err := parseMoney(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %v", err)
	}

	overrideTotal, err := parseMoney(r.OverrideTotal)
	if err != nil {
		return nil, fmt.Errorf("invalid overrideTotal: %v", err)
	}

	return &createBooking.Request{
		AvailabilityID: r.AvailabilityID,
		Passengers:     r.Passengers,
		OptionValues:   r.OptionValues,
		Notes:          r.Notes,
		Tier:           r.Tier,
		PaymentStatus:  r.PaymentStatus,
		PaymentMethod:  r.PaymentMethod,
		Amount:         amount,
		OverrideTotal:  overrideTotal,
		PromoCode:      r.PromoCode,
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
