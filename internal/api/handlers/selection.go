package handlers

import (
	"fmt"
	"time"

	"github.com/funinthesundocs/epictours/internal/domain"
	"github.com/funinthesundocs/epictours/pkg/types"
)

// FilterPayload один фильтр подбора слотов в JSON виде.
// Kind определяет вариант, остальные поля читаются по нему
type FilterPayload struct {
	Kind string `json:"kind"`

	From     *string  `json:"from,omitempty"`     // date_range: YYYY-MM-DD, time_of_day: HH:MM
	To       *string  `json:"to,omitempty"`       // date_range: YYYY-MM-DD, time_of_day: HH:MM
	Statuses []string `json:"statuses,omitempty"` // online_status
	Days     []int    `json:"days,omitempty"`     // day_of_week: 0=воскресенье .. 6=суббота

	MinHours *float64 `json:"minHours,omitempty"` // duration
	MaxHours *float64 `json:"maxHours,omitempty"` // duration
	Min      *int     `json:"min,omitempty"`      // capacity
	Max      *int     `json:"max,omitempty"`      // capacity

	Query          *string `json:"query,omitempty"`          // text
	HasBookings    *bool   `json:"hasBookings,omitempty"`    // has_bookings
	StaffIDs       []int64 `json:"staffIds,omitempty"`       // staff
	CustomerTypeID *int64  `json:"customerTypeId,omitempty"` // customer_type
	PickupRouteID  *int64  `json:"pickupRouteId,omitempty"`  // pickup_route
}

// DirectivePayload одна директива массовой мутации в JSON виде.
// Для очищаемых полей отсутствие значения означает явный сброс поля
type DirectivePayload struct {
	Kind string `json:"kind"`

	Status    *string  `json:"status,omitempty"`    // online_status
	Capacity  *int     `json:"capacity,omitempty"`  // capacity
	StartTime *string  `json:"startTime,omitempty"` // start_time: HH:MM; nil = all-day
	Hours     *float64 `json:"hours,omitempty"`     // duration; nil = сброс

	RouteID    *int64 `json:"routeId,omitempty"`    // route; nil = сброс
	VehicleID  *int64 `json:"vehicleId,omitempty"`  // vehicle; nil = сброс
	ScheduleID *int64 `json:"scheduleId,omitempty"` // pricing_schedule / option_schedule; nil = сброс

	StaffIDs []int64 `json:"staffIds,omitempty"` // staff
	Merge    bool    `json:"merge,omitempty"`    // staff: true = дописать к текущим

	Note *string `json:"note,omitempty"` // private_note; nil = сброс
}

// ParseFilters собирает FilterSet из JSON фильтров
func ParseFilters(payloads []FilterPayload) (*domain.FilterSet, error) {
	set := domain.NewFilterSet()

	for _, p := range payloads {
		f, err := parseFilter(p)
		if err != nil {
			return nil, err
		}
		set.Add(f)
	}

	return set, nil
}

func parseFilter(p FilterPayload) (domain.Filter, error) {
	switch domain.FilterKind(p.Kind) {
	case domain.FilterDateRange:
		if p.From == nil || p.To == nil {
			return nil, fmt.Errorf("date_range filter requires from and to")
		}
		from, err := time.Parse(domain.DateFormat, *p.From)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %v", *p.From, err)
		}
		to, err := time.Parse(domain.DateFormat, *p.To)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %v", *p.To, err)
		}
		return domain.DateRangeFilter{From: from, To: to}, nil

	case domain.FilterOnlineStatus:
		if len(p.Statuses) == 0 {
			return nil, fmt.Errorf("online_status filter requires statuses")
		}
		statuses := make([]domain.OnlineStatus, 0, len(p.Statuses))
		for _, s := range p.Statuses {
			status := domain.OnlineStatus(s)
			if !status.IsValid() {
				return nil, fmt.Errorf("unknown online status %q", s)
			}
			statuses = append(statuses, status)
		}
		return domain.OnlineStatusFilter{Statuses: statuses}, nil

	case domain.FilterDayOfWeek:
		if len(p.Days) == 0 {
			return nil, fmt.Errorf("day_of_week filter requires days")
		}
		days := make([]time.Weekday, 0, len(p.Days))
		for _, d := range p.Days {
			if d < 0 || d > 6 {
				return nil, fmt.Errorf("invalid weekday %d", d)
			}
			days = append(days, time.Weekday(d))
		}
		return domain.DayOfWeekFilter{Days: days}, nil

	case domain.FilterTimeOfDay:
		if p.From == nil || p.To == nil {
			return nil, fmt.Errorf("time_of_day filter requires from and to")
		}
		from, err := types.NewTimeStringFromString(*p.From)
		if err != nil {
			return nil, fmt.Errorf("invalid time %q: %v", *p.From, err)
		}
		to, err := types.NewTimeStringFromString(*p.To)
		if err != nil {
			return nil, fmt.Errorf("invalid time %q: %v", *p.To, err)
		}
		return domain.TimeOfDayFilter{From: from, To: to}, nil

	case domain.FilterDuration:
		return domain.DurationFilter{MinHours: p.MinHours, MaxHours: p.MaxHours}, nil

	case domain.FilterCapacity:
		return domain.CapacityFilter{Min: p.Min, Max: p.Max}, nil

	case domain.FilterText:
		if p.Query == nil || *p.Query == "" {
			return nil, fmt.Errorf("text filter requires query")
		}
		return domain.TextFilter{Query: *p.Query}, nil

	case domain.FilterHasBookings:
		if p.HasBookings == nil {
			return nil, fmt.Errorf("has_bookings filter requires hasBookings")
		}
		return domain.HasBookingsFilter{HasBookings: *p.HasBookings}, nil

	case domain.FilterStaff:
		if len(p.StaffIDs) == 0 {
			return nil, fmt.Errorf("staff filter requires staffIds")
		}
		return domain.StaffFilter{StaffIDs: p.StaffIDs}, nil

	case domain.FilterCustomerType:
		if p.CustomerTypeID == nil {
			return nil, fmt.Errorf("customer_type filter requires customerTypeId")
		}
		return domain.CustomerTypeFilter{CustomerTypeID: *p.CustomerTypeID}, nil

	case domain.FilterPickupRoute:
		if p.PickupRouteID == nil {
			return nil, fmt.Errorf("pickup_route filter requires pickupRouteId")
		}
		return domain.PickupRouteFilter{PickupRouteID: *p.PickupRouteID}, nil

	default:
		return nil, fmt.Errorf("unknown filter kind %q", p.Kind)
	}
}

// ParseDirectives собирает DirectiveSet из JSON директив.
// Дубликат категории - ошибка, как и в domain.DirectiveSet
func ParseDirectives(payloads []DirectivePayload) (*domain.DirectiveSet, error) {
	set := domain.NewDirectiveSet()

	for _, p := range payloads {
		d, err := parseDirective(p)
		if err != nil {
			return nil, err
		}
		if err := set.Add(d); err != nil {
			return nil, fmt.Errorf("duplicate directive kind %q", p.Kind)
		}
	}

	return set, nil
}

func parseDirective(p DirectivePayload) (domain.Directive, error) {
	switch domain.DirectiveKind(p.Kind) {
	case domain.DirectiveOnlineStatus:
		if p.Status == nil {
			return nil, fmt.Errorf("online_status directive requires status")
		}
		status := domain.OnlineStatus(*p.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("unknown online status %q", *p.Status)
		}
		return domain.OnlineStatusDirective{Status: status}, nil

	case domain.DirectiveCapacity:
		if p.Capacity == nil {
			return nil, fmt.Errorf("capacity directive requires capacity")
		}
		if *p.Capacity < 0 {
			return nil, fmt.Errorf("capacity must not be negative")
		}
		return domain.CapacityDirective{Capacity: *p.Capacity}, nil

	case domain.DirectiveStartTime:
		if p.StartTime == nil {
			return domain.StartTimeDirective{}, nil
		}
		startTime, err := types.NewTimeStringFromString(*p.StartTime)
		if err != nil {
			return nil, fmt.Errorf("invalid time %q: %v", *p.StartTime, err)
		}
		return domain.StartTimeDirective{StartTime: &startTime}, nil

	case domain.DirectiveDuration:
		if p.Hours != nil && *p.Hours <= 0 {
			return nil, fmt.Errorf("duration must be positive")
		}
		return domain.DurationDirective{Hours: p.Hours}, nil

	case domain.DirectiveRoute:
		return domain.RouteDirective{RouteID: p.RouteID}, nil

	case domain.DirectiveVehicle:
		return domain.VehicleDirective{VehicleID: p.VehicleID}, nil

	case domain.DirectivePricingSchedule:
		return domain.PricingScheduleDirective{ScheduleID: p.ScheduleID}, nil

	case domain.DirectiveOptionSchedule:
		return domain.OptionScheduleDirective{ScheduleID: p.ScheduleID}, nil

	case domain.DirectiveStaff:
		return domain.StaffDirective{StaffIDs: p.StaffIDs, Merge: p.Merge}, nil

	case domain.DirectivePrivateNote:
		return domain.PrivateNoteDirective{Note: p.Note}, nil

	case domain.DirectiveDelete:
		return domain.DeleteDirective{}, nil

	default:
		return nil, fmt.Errorf("unknown directive kind %q", p.Kind)
	}
}
