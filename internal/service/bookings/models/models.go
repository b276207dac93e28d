package models

import (
	"time"

	"github.com/funinthesundocs/epictours/internal/domain"
)

// BookingResponse модель бронирования для отдачи наружу
// Денежные значения отдаются строками с двумя знаками после запятой
type BookingResponse struct {
	ID             int64             `json:"id"`
	AvailabilityID int64             `json:"availabilityId"`
	Status         string            `json:"status"`
	Passengers     map[string]int    `json:"passengers"`
	TotalPax       int               `json:"totalPax"`
	OptionValues   map[string]string `json:"optionValues,omitempty"`
	Notes          *string           `json:"notes,omitempty"`

	PaymentStatus string  `json:"paymentStatus"`
	PaymentMethod string  `json:"paymentMethod"`
	AmountPaid    string  `json:"amountPaid"`
	OverrideTotal *string `json:"overrideTotal,omitempty"`
	PromoCode     *string `json:"promoCode,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// FromDomainBooking конвертирует domain.Booking в response модель
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:             b.ID,
		AvailabilityID: b.AvailabilityID,
		Status:         string(b.Status),
		Passengers:     b.Passengers,
		TotalPax:       b.TotalPassengers(),
		OptionValues:   b.OptionValues,
		Notes:          b.Notes,
		PaymentStatus:  string(b.PaymentStatus),
		PaymentMethod:  string(b.PaymentMethod),
		AmountPaid:     b.AmountPaid.StringFixed(2),
		PromoCode:      b.PromoCode,
		CreatedAt:      b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      b.UpdatedAt.Format(time.RFC3339),
	}

	if b.OverrideTotal != nil {
		override := b.OverrideTotal.StringFixed(2)
		resp.OverrideTotal = &override
	}
	if b.CancellationReason != nil {
		resp.CancellationReason = b.CancellationReason
	}
	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomainBooking(b))
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}
