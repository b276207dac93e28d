package domain

import (
	"errors"
	"time"

	"github.com/funinthesundocs/epictours/pkg/types"
)

// FilterKind identifies one category of availability filter
type FilterKind string

const (
	FilterDateRange    FilterKind = "date_range"
	FilterOnlineStatus FilterKind = "online_status"
	FilterDayOfWeek    FilterKind = "day_of_week"
	FilterTimeOfDay    FilterKind = "time_of_day"
	FilterDuration     FilterKind = "duration"
	FilterCapacity     FilterKind = "capacity"
	FilterText         FilterKind = "text"
	FilterHasBookings  FilterKind = "has_bookings"
	FilterStaff        FilterKind = "staff"
	FilterCustomerType FilterKind = "customer_type"
	FilterPickupRoute  FilterKind = "pickup_route"
)

// Filter is one predicate over availabilities. Filters are small variants
// held in a set - an absent filter simply is not in the set. Categories
// combine with AND; values inside a single category (statuses, weekdays)
// combine as "any of".
type Filter interface {
	FilterKind() FilterKind
}

// DateRangeFilter matches slots with start_date in [From, To] inclusive.
// Dates are compared literally as calendar dates, no time zone conversion.
type DateRangeFilter struct {
	From time.Time
	To   time.Time
}

func (DateRangeFilter) FilterKind() FilterKind { return FilterDateRange }

// OnlineStatusFilter matches slots whose online status is any of Statuses
type OnlineStatusFilter struct {
	Statuses []OnlineStatus
}

func (OnlineStatusFilter) FilterKind() FilterKind { return FilterOnlineStatus }

// DayOfWeekFilter matches slots whose start date falls on any of Days
type DayOfWeekFilter struct {
	Days []time.Weekday
}

func (DayOfWeekFilter) FilterKind() FilterKind { return FilterDayOfWeek }

// TimeOfDayFilter matches timed slots starting in [From, To]; all-day
// slots never match a time window
type TimeOfDayFilter struct {
	From types.TimeString
	To   types.TimeString
}

func (TimeOfDayFilter) FilterKind() FilterKind { return FilterTimeOfDay }

// DurationFilter matches slots with duration_hours in [MinHours, MaxHours];
// a nil bound is open-ended
type DurationFilter struct {
	MinHours *float64
	MaxHours *float64
}

func (DurationFilter) FilterKind() FilterKind { return FilterDuration }

// CapacityFilter matches slots with max_capacity in [Min, Max];
// a nil bound is open-ended
type CapacityFilter struct {
	Min *int
	Max *int
}

func (CapacityFilter) FilterKind() FilterKind { return FilterCapacity }

// TextFilter matches slots whose headline or private note contains Query
// (case-insensitive)
type TextFilter struct {
	Query string
}

func (TextFilter) FilterKind() FilterKind { return FilterText }

// HasBookingsFilter matches slots with (or, when false, without) at least
// one active booking
type HasBookingsFilter struct {
	HasBookings bool
}

func (HasBookingsFilter) FilterKind() FilterKind { return FilterHasBookings }

// StaffFilter matches slots with any of StaffIDs assigned
type StaffFilter struct {
	StaffIDs []int64
}

func (StaffFilter) FilterKind() FilterKind { return FilterStaff }

// CustomerTypeFilter matches slots scoped to the given customer type
type CustomerTypeFilter struct {
	CustomerTypeID int64
}

func (CustomerTypeFilter) FilterKind() FilterKind { return FilterCustomerType }

// PickupRouteFilter matches slots on the given pickup route
type PickupRouteFilter struct {
	PickupRouteID int64
}

func (PickupRouteFilter) FilterKind() FilterKind { return FilterPickupRoute }

// FilterSet is the current set of active filters, at most one per kind.
// Adding a filter of a kind already present replaces it.
type FilterSet struct {
	filters map[FilterKind]Filter
	order   []FilterKind
}

// NewFilterSet creates an empty filter set
func NewFilterSet() *FilterSet {
	return &FilterSet{filters: make(map[FilterKind]Filter)}
}

// Add puts a filter into the set, replacing any existing one of its kind
func (s *FilterSet) Add(f Filter) {
	kind := f.FilterKind()
	if _, exists := s.filters[kind]; !exists {
		s.order = append(s.order, kind)
	}
	s.filters[kind] = f
}

// Remove drops the filter of the given kind, if present
func (s *FilterSet) Remove(kind FilterKind) {
	if _, exists := s.filters[kind]; !exists {
		return
	}
	delete(s.filters, kind)
	for i, k := range s.order {
		if k == kind {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// All returns the active filters in insertion order
func (s *FilterSet) All() []Filter {
	result := make([]Filter, 0, len(s.order))
	for _, kind := range s.order {
		result = append(result, s.filters[kind])
	}
	return result
}

// Len returns the number of active filters
func (s *FilterSet) Len() int {
	return len(s.filters)
}

// DirectiveKind identifies one category of bulk field-update directive
type DirectiveKind string

const (
	DirectiveOnlineStatus    DirectiveKind = "online_status"
	DirectiveCapacity        DirectiveKind = "capacity"
	DirectiveStartTime       DirectiveKind = "start_time"
	DirectiveDuration        DirectiveKind = "duration"
	DirectiveRoute           DirectiveKind = "route"
	DirectiveVehicle         DirectiveKind = "vehicle"
	DirectivePricingSchedule DirectiveKind = "pricing_schedule"
	DirectiveOptionSchedule  DirectiveKind = "option_schedule"
	DirectiveStaff           DirectiveKind = "staff"
	DirectivePrivateNote     DirectiveKind = "private_note"
	DirectiveDelete          DirectiveKind = "delete"
)

// Directive is one declarative field update (or the delete marker) in a
// bulk mutation. Directives are tagged variants folded into a single
// merge patch keyed by field name; duplicate kinds are rejected at
// insertion time, not at apply time.
type Directive interface {
	DirectiveKind() DirectiveKind
}

// OnlineStatusDirective sets the online-booking status
type OnlineStatusDirective struct {
	Status OnlineStatus
}

func (OnlineStatusDirective) DirectiveKind() DirectiveKind { return DirectiveOnlineStatus }

// CapacityDirective sets the maximum capacity
type CapacityDirective struct {
	Capacity int
}

func (CapacityDirective) DirectiveKind() DirectiveKind { return DirectiveCapacity }

// StartTimeDirective sets the start time; nil actively clears the field,
// turning the slots into all-day slots
type StartTimeDirective struct {
	StartTime *types.TimeString
}

func (StartTimeDirective) DirectiveKind() DirectiveKind { return DirectiveStartTime }

// DurationDirective sets the duration in hours; nil clears it
type DurationDirective struct {
	Hours *float64
}

func (DurationDirective) DirectiveKind() DirectiveKind { return DirectiveDuration }

// RouteDirective sets the pickup route; nil clears it
type RouteDirective struct {
	RouteID *int64
}

func (RouteDirective) DirectiveKind() DirectiveKind { return DirectiveRoute }

// VehicleDirective sets the vehicle; nil clears it
type VehicleDirective struct {
	VehicleID *int64
}

func (VehicleDirective) DirectiveKind() DirectiveKind { return DirectiveVehicle }

// PricingScheduleDirective sets the default pricing schedule; nil clears it
type PricingScheduleDirective struct {
	ScheduleID *int64
}

func (PricingScheduleDirective) DirectiveKind() DirectiveKind { return DirectivePricingSchedule }

// OptionScheduleDirective sets the default option schedule; nil clears it
type OptionScheduleDirective struct {
	ScheduleID *int64
}

func (OptionScheduleDirective) DirectiveKind() DirectiveKind { return DirectiveOptionSchedule }

// StaffDirective assigns staff ids. Merge=true appends to the existing
// assignment, Merge=false replaces it. An empty StaffIDs list blocks plan
// execution regardless of other directives.
type StaffDirective struct {
	StaffIDs []int64
	Merge    bool
}

func (StaffDirective) DirectiveKind() DirectiveKind { return DirectiveStaff }

// PrivateNoteDirective sets the private note; nil clears it
type PrivateNoteDirective struct {
	Note *string
}

func (PrivateNoteDirective) DirectiveKind() DirectiveKind { return DirectivePrivateNote }

// DeleteDirective marks the plan as a pure delete. When present, all
// field directives are ignored.
type DeleteDirective struct{}

func (DeleteDirective) DirectiveKind() DirectiveKind { return DirectiveDelete }

var (
	// ErrDuplicateDirective returned when a directive kind is added twice
	ErrDuplicateDirective = errors.New("domain: directive of this kind is already selected")

	// ErrNoCandidates blocks a plan with an empty candidate set
	ErrNoCandidates = errors.New("domain: bulk plan matches no availabilities")

	// ErrNoDirectives blocks a plan with no selected directives
	ErrNoDirectives = errors.New("domain: bulk plan has no directives")

	// ErrEmptyStaffSelection blocks a plan whose staff directive has an
	// empty staff list
	ErrEmptyStaffSelection = errors.New("domain: staff directive requires at least one staff id")
)

// DirectiveSet is the user's ordered list of selected directives with set
// semantics: a directive kind can only be present once.
type DirectiveSet struct {
	items []Directive
	kinds map[DirectiveKind]struct{}
}

// NewDirectiveSet creates an empty directive set
func NewDirectiveSet() *DirectiveSet {
	return &DirectiveSet{kinds: make(map[DirectiveKind]struct{})}
}

// Add appends a directive, rejecting duplicates of the same kind
func (s *DirectiveSet) Add(d Directive) error {
	kind := d.DirectiveKind()
	if _, exists := s.kinds[kind]; exists {
		return ErrDuplicateDirective
	}
	s.kinds[kind] = struct{}{}
	s.items = append(s.items, d)
	return nil
}

// Remove drops the directive of the given kind, if present
func (s *DirectiveSet) Remove(kind DirectiveKind) {
	if _, exists := s.kinds[kind]; !exists {
		return
	}
	delete(s.kinds, kind)
	for i, d := range s.items {
		if d.DirectiveKind() == kind {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
}

// All returns the directives in selection order
func (s *DirectiveSet) All() []Directive {
	return s.items
}

// Len returns the number of selected directives
func (s *DirectiveSet) Len() int {
	return len(s.items)
}

// HasDelete returns true if the delete directive is selected
func (s *DirectiveSet) HasDelete() bool {
	_, ok := s.kinds[DirectiveDelete]
	return ok
}

// Patch field names, matching the availability columns they update
const (
	PatchOnlineStatus    = "online_status"
	PatchMaxCapacity     = "max_capacity"
	PatchStartTime       = "start_time"
	PatchDurationHours   = "duration_hours"
	PatchPickupRouteID   = "pickup_route_id"
	PatchVehicleID       = "vehicle_id"
	PatchPricingSchedule = "pricing_schedule_id"
	PatchOptionSchedule  = "option_schedule_id"
	PatchStaffIDs        = "staff_ids"
	PatchPrivateNote     = "private_note"
)

// StaffPatch is the staff_ids patch value carrying the merge mode
type StaffPatch struct {
	StaffIDs []int64
	Merge    bool
}

// FieldPatch is a single merge patch keyed by field name. A nil value is
// an explicit null: it actively clears the field rather than omitting it.
type FieldPatch map[string]interface{}

// Plan is a transient bulk mutation plan, purely a function of the current
// filter and directive selections. It is never persisted.
type Plan struct {
	CandidateIDs []int64
	Patch        FieldPatch
	Delete       bool
	Executable   bool
}

// BuildPlan folds the selected directives into a plan over the candidate
// ids. If the delete directive is present, patch composition is skipped
// entirely and the plan is a pure delete.
func BuildPlan(candidateIDs []int64, directives *DirectiveSet) Plan {
	plan := Plan{
		CandidateIDs: candidateIDs,
		Patch:        make(FieldPatch),
	}

	if directives.HasDelete() {
		plan.Delete = true
	} else {
		for _, d := range directives.All() {
			applyDirective(plan.Patch, d)
		}
	}

	plan.Executable = validatePlan(candidateIDs, directives) == nil
	return plan
}

// ValidatePlan reports why a plan is not executable. The three guards are
// independent - any one blocks submission on its own.
func ValidatePlan(candidateIDs []int64, directives *DirectiveSet) error {
	return validatePlan(candidateIDs, directives)
}

func validatePlan(candidateIDs []int64, directives *DirectiveSet) error {
	if directives.Len() == 0 {
		return ErrNoDirectives
	}
	if len(candidateIDs) == 0 {
		return ErrNoCandidates
	}
	for _, d := range directives.All() {
		if staff, ok := d.(StaffDirective); ok && len(staff.StaffIDs) == 0 {
			return ErrEmptyStaffSelection
		}
	}
	return nil
}

// applyDirective writes one directive's target field into the patch.
// Nil-valued directives become explicit nulls.
func applyDirective(patch FieldPatch, d Directive) {
	switch v := d.(type) {
	case OnlineStatusDirective:
		patch[PatchOnlineStatus] = v.Status
	case CapacityDirective:
		patch[PatchMaxCapacity] = v.Capacity
	case StartTimeDirective:
		if v.StartTime == nil {
			patch[PatchStartTime] = nil
		} else {
			patch[PatchStartTime] = *v.StartTime
		}
	case DurationDirective:
		if v.Hours == nil {
			patch[PatchDurationHours] = nil
		} else {
			patch[PatchDurationHours] = *v.Hours
		}
	case RouteDirective:
		if v.RouteID == nil {
			patch[PatchPickupRouteID] = nil
		} else {
			patch[PatchPickupRouteID] = *v.RouteID
		}
	case VehicleDirective:
		if v.VehicleID == nil {
			patch[PatchVehicleID] = nil
		} else {
			patch[PatchVehicleID] = *v.VehicleID
		}
	case PricingScheduleDirective:
		if v.ScheduleID == nil {
			patch[PatchPricingSchedule] = nil
		} else {
			patch[PatchPricingSchedule] = *v.ScheduleID
		}
	case OptionScheduleDirective:
		if v.ScheduleID == nil {
			patch[PatchOptionSchedule] = nil
		} else {
			patch[PatchOptionSchedule] = *v.ScheduleID
		}
	case StaffDirective:
		patch[PatchStaffIDs] = StaffPatch{StaffIDs: v.StaffIDs, Merge: v.Merge}
	case PrivateNoteDirective:
		if v.Note == nil {
			patch[PatchPrivateNote] = nil
		} else {
			patch[PatchPrivateNote] = *v.Note
		}
	}
}
