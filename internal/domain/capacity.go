package domain

// SlotCapacity describes the derived occupancy of one availability.
// It is always recomputed from the live booking set - a stored booked
// counter is treated as a cache at best and never read back here, so
// cancellations free capacity immediately.
type SlotCapacity struct {
	Booked    int
	Remaining int
}

// IsFull returns true if the slot has no remaining spots
func (c SlotCapacity) IsFull() bool {
	return c.Remaining <= 0
}

// ComputeCapacity derives booked and remaining counts for a slot.
//
// booked = sum of passenger counts over active (non-cancelled) bookings,
// plus inProgress - the passenger count of an open booking draft, so the
// caller can show a live "would be" remaining value before submit.
//
// excludeBookingID removes that booking's own passengers from the baseline;
// when an existing booking is reopened for edit its prior count would
// otherwise double-count the slot against itself. Zero means no exclusion.
//
// remaining is clamped at zero even if booked exceeds max capacity.
func ComputeCapacity(maxCapacity int, activeBookings []*Booking, inProgress int, excludeBookingID int64) SlotCapacity {
	booked := inProgress

	for _, b := range activeBookings {
		if !b.IsActive() {
			continue
		}
		if excludeBookingID != 0 && b.ID == excludeBookingID {
			continue
		}
		booked += b.TotalPassengers()
	}

	remaining := maxCapacity - booked
	if remaining < 0 {
		remaining = 0
	}

	return SlotCapacity{
		Booked:    booked,
		Remaining: remaining,
	}
}
