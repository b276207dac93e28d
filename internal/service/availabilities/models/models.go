package models

import (
	"time"

	"github.com/funinthesundocs/epictours/internal/domain"
)

// AvailabilityResponse модель слота с производной занятостью
// Booked и Remaining всегда пересчитаны по живому набору бронирований
type AvailabilityResponse struct {
	ID            int64    `json:"id"`
	Headline      string   `json:"headline"`
	StartDate     string   `json:"startDate"`
	StartTime     *string  `json:"startTime,omitempty"` // отсутствует = весь день
	DurationHours *float64 `json:"durationHours,omitempty"`
	MaxCapacity   int      `json:"maxCapacity"`
	OnlineStatus  string   `json:"onlineStatus"`
	PrivateNote   *string  `json:"privateNote,omitempty"`

	PickupRouteID  *int64  `json:"pickupRouteId,omitempty"`
	VehicleID      *int64  `json:"vehicleId,omitempty"`
	StaffIDs       []int64 `json:"staffIds,omitempty"`
	CustomerTypeID *int64  `json:"customerTypeId,omitempty"`

	PricingScheduleID *int64 `json:"pricingScheduleId,omitempty"`
	OptionScheduleID  *int64 `json:"optionScheduleId,omitempty"`

	Booked    int `json:"booked"`
	Remaining int `json:"remaining"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// AvailabilityListResponse список слотов
type AvailabilityListResponse struct {
	Availabilities []*AvailabilityResponse `json:"availabilities"`
	Total          int                     `json:"total"`
}

// FromDomainAvailability конвертирует слот и его занятость в response модель
func FromDomainAvailability(a *domain.Availability, capacity domain.SlotCapacity) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		ID:                a.ID,
		Headline:          a.Headline,
		StartDate:         a.StartDate.Format(domain.DateFormat),
		DurationHours:     a.DurationHours,
		MaxCapacity:       a.MaxCapacity,
		OnlineStatus:      string(a.OnlineStatus),
		PrivateNote:       a.PrivateNote,
		PickupRouteID:     a.PickupRouteID,
		VehicleID:         a.VehicleID,
		StaffIDs:          a.StaffIDs,
		CustomerTypeID:    a.CustomerTypeID,
		PricingScheduleID: a.PricingScheduleID,
		OptionScheduleID:  a.OptionScheduleID,
		Booked:            capacity.Booked,
		Remaining:         capacity.Remaining,
		CreatedAt:         a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         a.UpdatedAt.Format(time.RFC3339),
	}

	if a.StartTime != nil && !a.StartTime.IsZero() {
		startTime := a.StartTime.String()
		resp.StartTime = &startTime
	}

	return resp
}
