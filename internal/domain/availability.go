package domain

import (
	"time"

	"github.com/funinthesundocs/epictours/pkg/types"
)

// OnlineStatus represents whether a slot accepts online bookings
type OnlineStatus string

const (
	OnlineOpen   OnlineStatus = "open"
	OnlineClosed OnlineStatus = "closed"
)

// IsValid returns true if the status is one of the known values
func (s OnlineStatus) IsValid() bool {
	return s == OnlineOpen || s == OnlineClosed
}

// Availability represents a bookable tour slot
type Availability struct {
	ID        int64
	Headline  string
	StartDate time.Time
	StartTime *types.TimeString // nil = all-day slot
	// DurationHours is the slot length in hours; nil means implicit all-day
	DurationHours *float64
	MaxCapacity   int
	OnlineStatus  OnlineStatus
	PrivateNote   *string

	PickupRouteID  *int64
	VehicleID      *int64
	StaffIDs       []int64
	CustomerTypeID *int64

	PricingScheduleID *int64
	OptionScheduleID  *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAllDay returns true if the slot has no start time
func (a *Availability) IsAllDay() bool {
	return a.StartTime == nil || a.StartTime.IsZero()
}

// IsOpenOnline returns true if the slot accepts online bookings
func (a *Availability) IsOpenOnline() bool {
	return a.OnlineStatus == OnlineOpen
}

// HasStaff returns true if the given staff id is assigned to the slot
func (a *Availability) HasStaff(staffID int64) bool {
	for _, id := range a.StaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}
