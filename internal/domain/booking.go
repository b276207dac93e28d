package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid returns true if the status is one of the known values
func (s BookingStatus) IsValid() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// PassengerBreakdown maps a passenger-type id to the number of passengers
// of that type on the booking
type PassengerBreakdown map[string]int

// Total returns the total passenger count across all types
func (b PassengerBreakdown) Total() int {
	total := 0
	for _, count := range b {
		total += count
	}
	return total
}

// Booking represents a reservation against exactly one availability
type Booking struct {
	ID             int64
	AvailabilityID int64
	Status         BookingStatus
	Passengers     PassengerBreakdown
	OptionValues   map[string]string
	Notes          *string

	// Payment fields written from the draft's payment state at submit time
	PaymentStatus PaymentStatus
	PaymentMethod PaymentMethod
	AmountPaid    decimal.Decimal
	OverrideTotal *decimal.Decimal
	PromoCode     *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies capacity
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can be soft-cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// TotalPassengers returns the passenger count of the booking
func (b *Booking) TotalPassengers() int {
	return b.Passengers.Total()
}
