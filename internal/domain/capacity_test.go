package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func activeBooking(id int64, passengers map[string]int) *Booking {
	return &Booking{
		ID:         id,
		Status:     StatusConfirmed,
		Passengers: passengers,
	}
}

func cancelledBooking(id int64, passengers map[string]int) *Booking {
	return &Booking{
		ID:         id,
		Status:     StatusCancelled,
		Passengers: passengers,
	}
}

func TestComputeCapacity_SumsActiveBookings(t *testing.T) {
	bookings := []*Booking{
		activeBooking(1, map[string]int{"adult": 2, "child": 1}),
		activeBooking(2, map[string]int{"adult": 4}),
	}

	capacity := ComputeCapacity(10, bookings, 0, 0)

	assert.Equal(t, 7, capacity.Booked)
	assert.Equal(t, 3, capacity.Remaining)
	assert.False(t, capacity.IsFull())
}

func TestComputeCapacity_InProgressDraftCounts(t *testing.T) {
	bookings := []*Booking{
		activeBooking(1, map[string]int{"adult": 3}),
		activeBooking(2, map[string]int{"adult": 4}),
	}

	// Открытый драфт на 2 места виден в occupancy до сохранения
	capacity := ComputeCapacity(10, bookings, 2, 0)

	assert.Equal(t, 9, capacity.Booked)
	assert.Equal(t, 1, capacity.Remaining)
}

func TestComputeCapacity_CancelledBookingsFreeCapacity(t *testing.T) {
	bookings := []*Booking{
		activeBooking(1, map[string]int{"adult": 5}),
		cancelledBooking(2, map[string]int{"adult": 5}),
	}

	capacity := ComputeCapacity(10, bookings, 0, 0)

	assert.Equal(t, 5, capacity.Booked)
	assert.Equal(t, 5, capacity.Remaining)
}

func TestComputeCapacity_ExcludesEditedBookingOwnSeats(t *testing.T) {
	bookings := []*Booking{
		activeBooking(1, map[string]int{"adult": 6}),
		activeBooking(2, map[string]int{"adult": 3}),
	}

	// Бронь id=1 переоткрыта на редактирование с новой разбивкой в 7 мест:
	// ее прежние 6 мест исключаются, иначе слот посчитал бы ее дважды
	capacity := ComputeCapacity(10, bookings, 7, 1)

	assert.Equal(t, 10, capacity.Booked)
	assert.Equal(t, 0, capacity.Remaining)
	assert.True(t, capacity.IsFull())
}

func TestComputeCapacity_RemainingClampedAtZero(t *testing.T) {
	bookings := []*Booking{
		activeBooking(1, map[string]int{"adult": 8}),
		activeBooking(2, map[string]int{"adult": 5}),
	}

	// Переполненный слот (например, после снижения max_capacity)
	capacity := ComputeCapacity(10, bookings, 0, 0)

	assert.Equal(t, 13, capacity.Booked)
	assert.Equal(t, 0, capacity.Remaining)
	assert.True(t, capacity.IsFull())
}

func TestComputeCapacity_EmptySlot(t *testing.T) {
	capacity := ComputeCapacity(12, nil, 0, 0)

	assert.Equal(t, 0, capacity.Booked)
	assert.Equal(t, 12, capacity.Remaining)
}
