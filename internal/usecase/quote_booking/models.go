package quote_booking

import (
	"github.com/shopspring/decimal"

	"github.com/funinthesundocs/epictours/internal/domain"
)

// Request модель запроса на расчет драфта бронирования
type Request struct {
	AvailabilityID int64                     // ID слота
	Passengers     domain.PassengerBreakdown // Разбивка по типам пассажиров
	Tier           string                    // Тир прайс-листа; пусто = дефолтный

	// EditingBookingID заполняется, если драфт открыт над существующей
	// бронью: ее места исключаются из базовой занятости
	EditingBookingID *int64

	PaymentStatus string           // paid_full | paid_partial | pay_later | no_payment; пусто = paid_full
	PaymentMethod string           // credit_card | crypto | cash; пусто = credit_card
	Amount        *decimal.Decimal // Ручная сумма (только для paid_partial)
	OverrideTotal *decimal.Decimal // Ручной итог вместо расчетного (опционально)
	PromoCode     *string          // Промокод; только метка, на итог не влияет
}

// LineItemResponse одна тарифная строка драфта
type LineItemResponse struct {
	PassengerTypeID   string `json:"passengerTypeId"`
	PassengerTypeName string `json:"passengerTypeName"`
	Count             int    `json:"count"`
	UnitPrice         string `json:"unitPrice"`
	Subtotal          string `json:"subtotal"`
	Tax               string `json:"tax"`
}

// Response модель ответа с расчетом драфта: ничего не сохранено
type Response struct {
	AvailabilityID int64 `json:"availabilityId"`
	TotalPax       int   `json:"totalPax"`

	LineItems    []LineItemResponse `json:"lineItems"`
	Subtotal     string             `json:"subtotal"`
	TaxTotal     string             `json:"taxTotal"`
	GrandTotal   string             `json:"grandTotal"`
	IsOverridden bool               `json:"isOverridden"`
	Tier         string             `json:"tier"`

	PaymentStatus string `json:"paymentStatus"`
	PaymentMethod string `json:"paymentMethod"`
	AmountPaid    string `json:"amountPaid"`
	Balance       string `json:"balance"`

	// Спекулятивная занятость: как если бы драфт уже сохранили
	Booked    int  `json:"booked"`
	Remaining int  `json:"remaining"`
	Fits      bool `json:"fits"` // false = сохранение упрется в вместимость
}

// buildResponse собирает Response из расчета драфта
func buildResponse(req *Request, totals domain.BookingTotals, payment domain.PaymentState, tier string, capacity domain.SlotCapacity, fits bool) *Response {
	lineItems := make([]LineItemResponse, 0, len(totals.LineItems))
	for _, li := range totals.LineItems {
		lineItems = append(lineItems, LineItemResponse{
			PassengerTypeID:   li.PassengerTypeID,
			PassengerTypeName: li.PassengerTypeName,
			Count:             li.Count,
			UnitPrice:         li.UnitPrice.StringFixed(2),
			Subtotal:          li.Subtotal.StringFixed(2),
			Tax:               li.Tax.StringFixed(2),
		})
	}

	return &Response{
		AvailabilityID: req.AvailabilityID,
		TotalPax:       req.Passengers.Total(),
		LineItems:      lineItems,
		Subtotal:       totals.Subtotal.StringFixed(2),
		TaxTotal:       totals.TaxTotal.StringFixed(2),
		GrandTotal:     totals.GrandTotal.StringFixed(2),
		IsOverridden:   totals.IsOverridden,
		Tier:           tier,
		PaymentStatus:  string(payment.Status),
		PaymentMethod:  string(payment.Method),
		AmountPaid:     payment.Amount.StringFixed(2),
		Balance:        payment.Balance(totals.GrandTotal).StringFixed(2),
		Booked:         capacity.Booked,
		Remaining:      capacity.Remaining,
		Fits:           fits,
	}
}
