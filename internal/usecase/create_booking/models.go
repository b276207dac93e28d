package create_booking

import (
	"github.com/shopspring/decimal"

	"github.com/funinthesundocs/epictours/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	AvailabilityID int64                     // ID слота
	Passengers     domain.PassengerBreakdown // Разбивка по типам пассажиров
	OptionValues   map[string]string         // Ответы на опции (как есть)
	Notes          *string                   // Заметки (опционально)
	Tier           string                    // Тир прайс-листа; пусто = дефолтный

	PaymentStatus string           // paid_full | paid_partial | pay_later | no_payment; пусто = paid_full
	PaymentMethod string           // credit_card | crypto | cash; пусто = credit_card
	Amount        *decimal.Decimal // Ручная сумма (только для paid_partial)
	OverrideTotal *decimal.Decimal // Ручной итог вместо расчетного (опционально)
	PromoCode     *string          // Промокод; только метка, на итог не влияет
}

// LineItemResponse одна тарифная строка брони
type LineItemResponse struct {
	PassengerTypeID   string `json:"passengerTypeId"`
	PassengerTypeName string `json:"passengerTypeName"`
	Count             int    `json:"count"`
	UnitPrice         string `json:"unitPrice"`
	Subtotal          string `json:"subtotal"`
	Tax               string `json:"tax"`
}

// Response модель ответа с созданным бронированием и его расчетом
type Response struct {
	ID             int64  `json:"id"`
	AvailabilityID int64  `json:"availabilityId"`
	Status         string `json:"status"`
	TotalPax       int    `json:"totalPax"`

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

	Remaining int `json:"remaining"` // Остаток мест после сохранения
}

// buildResponse собирает Response из сохраненной брони и расчета
func buildResponse(b *domain.Booking, totals domain.BookingTotals, payment domain.PaymentState, tier string, remaining int) *Response {
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
		ID:             b.ID,
		AvailabilityID: b.AvailabilityID,
		Status:         string(b.Status),
		TotalPax:       b.TotalPassengers(),
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
		Remaining:      remaining,
	}
}
