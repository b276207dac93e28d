package list_availabilities

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/funinthesundocs/epictours/internal/domain"
	"github.com/funinthesundocs/epictours/pkg/types"
)

// parseFilters собирает FilterSet из query-параметров списка.
// Отсутствующий параметр - отсутствующий фильтр
func parseFilters(query url.Values) (*domain.FilterSet, error) {
	set := domain.NewFilterSet()

	if from, to := query.Get("dateFrom"), query.Get("dateTo"); from != "" || to != "" {
		if from == "" || to == "" {
			return nil, fmt.Errorf("dateFrom and dateTo must be given together")
		}
		fromDate, err := time.Parse(domain.DateFormat, from)
		if err != nil {
			return nil, fmt.Errorf("invalid dateFrom %q", from)
		}
		toDate, err := time.Parse(domain.DateFormat, to)
		if err != nil {
			return nil, fmt.Errorf("invalid dateTo %q", to)
		}
		set.Add(domain.DateRangeFilter{From: fromDate, To: toDate})
	}

	if raw := query.Get("status"); raw != "" {
		statuses := make([]domain.OnlineStatus, 0)
		for _, s := range strings.Split(raw, ",") {
			status := domain.OnlineStatus(s)
			if !status.IsValid() {
				return nil, fmt.Errorf("unknown online status %q", s)
			}
			statuses = append(statuses, status)
		}
		set.Add(domain.OnlineStatusFilter{Statuses: statuses})
	}

	if raw := query.Get("days"); raw != "" {
		days := make([]time.Weekday, 0)
		for _, s := range strings.Split(raw, ",") {
			d, err := strconv.Atoi(s)
			if err != nil || d < 0 || d > 6 {
				return nil, fmt.Errorf("invalid weekday %q", s)
			}
			days = append(days, time.Weekday(d))
		}
		set.Add(domain.DayOfWeekFilter{Days: days})
	}

	if from, to := query.Get("timeFrom"), query.Get("timeTo"); from != "" || to != "" {
		if from == "" || to == "" {
			return nil, fmt.Errorf("timeFrom and timeTo must be given together")
		}
		fromTime, err := types.NewTimeStringFromString(from)
		if err != nil {
			return nil, fmt.Errorf("invalid timeFrom %q", from)
		}
		toTime, err := types.NewTimeStringFromString(to)
		if err != nil {
			return nil, fmt.Errorf("invalid timeTo %q", to)
		}
		set.Add(domain.TimeOfDayFilter{From: fromTime, To: toTime})
	}

	minHours, err := parseFloatParam(query, "minHours")
	if err != nil {
		return nil, err
	}
	maxHours, err := parseFloatParam(query, "maxHours")
	if err != nil {
		return nil, err
	}
	if minHours != nil || maxHours != nil {
		set.Add(domain.DurationFilter{MinHours: minHours, MaxHours: maxHours})
	}

	minCapacity, err := parseIntParam(query, "minCapacity")
	if err != nil {
		return nil, err
	}
	maxCapacity, err := parseIntParam(query, "maxCapacity")
	if err != nil {
		return nil, err
	}
	if minCapacity != nil || maxCapacity != nil {
		set.Add(domain.CapacityFilter{Min: minCapacity, Max: maxCapacity})
	}

	if q := query.Get("q"); q != "" {
		set.Add(domain.TextFilter{Query: q})
	}

	if raw := query.Get("hasBookings"); raw != "" {
		hasBookings, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid hasBookings %q", raw)
		}
		set.Add(domain.HasBookingsFilter{HasBookings: hasBookings})
	}

	if raw := query.Get("staffIds"); raw != "" {
		staffIDs := make([]int64, 0)
		for _, s := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(s, 10, 64)
			if err != nil || id <= 0 {
				return nil, fmt.Errorf("invalid staff id %q", s)
			}
			staffIDs = append(staffIDs, id)
		}
		set.Add(domain.StaffFilter{StaffIDs: staffIDs})
	}

	if id, err := parseID(query, "customerTypeId"); err != nil {
		return nil, err
	} else if id != nil {
		set.Add(domain.CustomerTypeFilter{CustomerTypeID: *id})
	}

	if id, err := parseID(query, "pickupRouteId"); err != nil {
		return nil, err
	} else if id != nil {
		set.Add(domain.PickupRouteFilter{PickupRouteID: *id})
	}

	return set, nil
}

func parseFloatParam(query url.Values, name string) (*float64, error) {
	raw := query.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &v, nil
}

func parseIntParam(query url.Values, name string) (*int, error) {
	raw := query.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &v, nil
}

func parseID(query url.Values, name string) (*int64, error) {
	raw := query.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return &v, nil
}
