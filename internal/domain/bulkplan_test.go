package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funinthesundocs/epictours/pkg/ptr"
)

func TestFilterSet_AddReplacesSameKind(t *testing.T) {
	set := NewFilterSet()

	set.Add(TextFilter{Query: "morning"})
	set.Add(TextFilter{Query: "sunset"})

	require.Equal(t, 1, set.Len())
	text, ok := set.All()[0].(TextFilter)
	require.True(t, ok)
	assert.Equal(t, "sunset", text.Query)
}

func TestFilterSet_RemoveDropsKind(t *testing.T) {
	set := NewFilterSet()
	set.Add(TextFilter{Query: "tour"})
	set.Add(CapacityFilter{Min: ptr.Ptr(5)})

	set.Remove(FilterText)

	require.Equal(t, 1, set.Len())
	assert.Equal(t, FilterCapacity, set.All()[0].FilterKind())
}

func TestFilterSet_PreservesInsertionOrder(t *testing.T) {
	set := NewFilterSet()
	set.Add(DateRangeFilter{From: date(2026, 6, 1), To: date(2026, 6, 30)})
	set.Add(OnlineStatusFilter{Statuses: []OnlineStatus{OnlineOpen}})
	set.Add(TextFilter{Query: "kayak"})

	kinds := make([]FilterKind, 0)
	for _, f := range set.All() {
		kinds = append(kinds, f.FilterKind())
	}

	assert.Equal(t, []FilterKind{FilterDateRange, FilterOnlineStatus, FilterText}, kinds)
}

func TestDirectiveSet_DuplicateKindRejected(t *testing.T) {
	set := NewDirectiveSet()

	require.NoError(t, set.Add(CapacityDirective{Capacity: 20}))
	err := set.Add(CapacityDirective{Capacity: 30})

	assert.ErrorIs(t, err, ErrDuplicateDirective)
	assert.Equal(t, 1, set.Len())
}

func TestDirectiveSet_RemoveAllowsReAdd(t *testing.T) {
	set := NewDirectiveSet()
	require.NoError(t, set.Add(CapacityDirective{Capacity: 20}))

	set.Remove(DirectiveCapacity)
	require.NoError(t, set.Add(CapacityDirective{Capacity: 30}))

	require.Equal(t, 1, set.Len())
	capacity, ok := set.All()[0].(CapacityDirective)
	require.True(t, ok)
	assert.Equal(t, 30, capacity.Capacity)
}

func TestBuildPlan_FoldsDirectivesIntoPatch(t *testing.T) {
	set := NewDirectiveSet()
	require.NoError(t, set.Add(OnlineStatusDirective{Status: OnlineClosed}))
	require.NoError(t, set.Add(CapacityDirective{Capacity: 25}))
	require.NoError(t, set.Add(StaffDirective{StaffIDs: []int64{7, 9}, Merge: true}))

	plan := BuildPlan([]int64{1, 2, 3}, set)

	require.True(t, plan.Executable)
	assert.False(t, plan.Delete)
	assert.Equal(t, OnlineClosed, plan.Patch[PatchOnlineStatus])
	assert.Equal(t, 25, plan.Patch[PatchMaxCapacity])

	staff, ok := plan.Patch[PatchStaffIDs].(StaffPatch)
	require.True(t, ok)
	assert.Equal(t, []int64{7, 9}, staff.StaffIDs)
	assert.True(t, staff.Merge)
}

func TestBuildPlan_NilDirectiveValueIsExplicitNull(t *testing.T) {
	set := NewDirectiveSet()
	require.NoError(t, set.Add(StartTimeDirective{StartTime: nil}))
	require.NoError(t, set.Add(DurationDirective{Hours: nil}))

	plan := BuildPlan([]int64{1}, set)

	// Явный null в патче: поле активно сбрасывается, а не пропускается
	startTime, present := plan.Patch[PatchStartTime]
	require.True(t, present)
	assert.Nil(t, startTime)

	hours, present := plan.Patch[PatchDurationHours]
	require.True(t, present)
	assert.Nil(t, hours)
}

func TestBuildPlan_DeleteIgnoresFieldDirectives(t *testing.T) {
	set := NewDirectiveSet()
	require.NoError(t, set.Add(CapacityDirective{Capacity: 50}))
	require.NoError(t, set.Add(DeleteDirective{}))

	plan := BuildPlan([]int64{1, 2}, set)

	assert.True(t, plan.Delete)
	assert.Empty(t, plan.Patch)
	assert.True(t, plan.Executable)
}

func TestValidatePlan_NoDirectives(t *testing.T) {
	err := ValidatePlan([]int64{1, 2}, NewDirectiveSet())
	assert.ErrorIs(t, err, ErrNoDirectives)
}

func TestValidatePlan_NoCandidates(t *testing.T) {
	set := NewDirectiveSet()
	require.NoError(t, set.Add(CapacityDirective{Capacity: 10}))

	err := ValidatePlan(nil, set)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestValidatePlan_EmptyStaffSelection(t *testing.T) {
	set := NewDirectiveSet()
	require.NoError(t, set.Add(StaffDirective{StaffIDs: nil, Merge: false}))

	err := ValidatePlan([]int64{1}, set)
	assert.ErrorIs(t, err, ErrEmptyStaffSelection)
}

func TestValidatePlan_GuardsAreIndependent(t *testing.T) {
	// Пустая staff-директива блокирует план даже при других валидных
	// директивах и непустом наборе кандидатов
	set := NewDirectiveSet()
	require.NoError(t, set.Add(CapacityDirective{Capacity: 10}))
	require.NoError(t, set.Add(StaffDirective{StaffIDs: []int64{}}))

	err := ValidatePlan([]int64{1, 2, 3}, set)
	assert.ErrorIs(t, err, ErrEmptyStaffSelection)

	plan := BuildPlan([]int64{1, 2, 3}, set)
	assert.False(t, plan.Executable)
}


func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
