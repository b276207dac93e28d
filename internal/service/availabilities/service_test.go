package availabilities

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funinthesundocs/epictours/internal/domain"
	availabilityRepo "github.com/funinthesundocs/epictours/internal/infra/storage/availability"
)

type fakeAvailabilityRepo struct {
	byID  map[int64]*domain.Availability
	items []*domain.Availability

	updatedID    int64
	updatedPatch domain.FieldPatch
	deletedID    int64
}

func (f *fakeAvailabilityRepo) GetByID(_ context.Context, id int64) (*domain.Availability, error) {
	av, ok := f.byID[id]
	if !ok {
		return nil, availabilityRepo.ErrAvailabilityNotFound
	}
	return av, nil
}

func (f *fakeAvailabilityRepo) List(_ context.Context, _ *domain.FilterSet) ([]*domain.Availability, error) {
	return f.items, nil
}

func (f *fakeAvailabilityRepo) Update(_ context.Context, id int64, patch domain.FieldPatch) error {
	if _, ok := f.byID[id]; !ok {
		return availabilityRepo.ErrAvailabilityNotFound
	}
	f.updatedID = id
	f.updatedPatch = patch
	return nil
}

func (f *fakeAvailabilityRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return availabilityRepo.ErrAvailabilityNotFound
	}
	f.deletedID = id
	return nil
}

type fakeBookingRepo struct {
	active  []*domain.Booking
	blocked []int64
}

func (f *fakeBookingRepo) ListActiveByAvailability(_ context.Context, _ int64) ([]*domain.Booking, error) {
	return f.active, nil
}

func (f *fakeBookingRepo) ListActiveByAvailabilityIDs(_ context.Context, _ []int64) ([]*domain.Booking, error) {
	return f.active, nil
}

func (f *fakeBookingRepo) ListAvailabilityIDsWithActiveBookings(_ context.Context, _ []int64) ([]int64, error) {
	return f.blocked, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func slot(id int64, maxCapacity int) *domain.Availability {
	return &domain.Availability{
		ID:           id,
		Headline:     "Morning Tour",
		MaxCapacity:  maxCapacity,
		OnlineStatus: domain.OnlineOpen,
	}
}

func directives(t *testing.T, ds ...domain.Directive) *domain.DirectiveSet {
	t.Helper()
	set := domain.NewDirectiveSet()
	for _, d := range ds {
		require.NoError(t, set.Add(d))
	}
	return set
}

func TestGetByID_OccupancyDerivedFromLiveBookings(t *testing.T) {
	av := &fakeAvailabilityRepo{byID: map[int64]*domain.Availability{1: slot(1, 10)}}
	br := &fakeBookingRepo{active: []*domain.Booking{
		{ID: 5, AvailabilityID: 1, Status: domain.StatusConfirmed, Passengers: domain.PassengerBreakdown{"adult": 4}},
	}}
	svc := NewService(av, br, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 4, resp.Booked)
	assert.Equal(t, 6, resp.Remaining)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(&fakeAvailabilityRepo{}, &fakeBookingRepo{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 404)

	assert.ErrorIs(t, err, ErrAvailabilityNotFound)
}

func TestList_OccupancyGroupedPerSlot(t *testing.T) {
	av := &fakeAvailabilityRepo{items: []*domain.Availability{slot(1, 10), slot(2, 8)}}
	br := &fakeBookingRepo{active: []*domain.Booking{
		{ID: 5, AvailabilityID: 1, Status: domain.StatusConfirmed, Passengers: domain.PassengerBreakdown{"adult": 3}},
		{ID: 6, AvailabilityID: 2, Status: domain.StatusConfirmed, Passengers: domain.PassengerBreakdown{"adult": 8}},
	}}
	svc := NewService(av, br, nopLogger{})

	resp, err := svc.List(context.Background(), nil)

	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, 7, resp.Availabilities[0].Remaining)
	assert.Equal(t, 0, resp.Availabilities[1].Remaining)
}

func TestUpdate_DirectivesFoldIntoPatch(t *testing.T) {
	av := &fakeAvailabilityRepo{byID: map[int64]*domain.Availability{1: slot(1, 10)}}
	svc := NewService(av, &fakeBookingRepo{}, nopLogger{})

	err := svc.Update(context.Background(), 1, directives(t,
		domain.CapacityDirective{Capacity: 15},
		domain.PrivateNoteDirective{Note: nil}, // явная очистка
	))

	require.NoError(t, err)
	assert.Equal(t, int64(1), av.updatedID)
	assert.Equal(t, 15, av.updatedPatch[domain.PatchMaxCapacity])

	note, present := av.updatedPatch[domain.PatchPrivateNote]
	assert.True(t, present)
	assert.Nil(t, note)
}

func TestUpdate_DeleteDirectiveRejected(t *testing.T) {
	svc := NewService(&fakeAvailabilityRepo{}, &fakeBookingRepo{}, nopLogger{})

	err := svc.Update(context.Background(), 1, directives(t, domain.DeleteDirective{}))

	assert.ErrorIs(t, err, ErrDeleteNotAllowed)
}

func TestUpdate_EmptyDirectivesRejected(t *testing.T) {
	svc := NewService(&fakeAvailabilityRepo{}, &fakeBookingRepo{}, nopLogger{})

	err := svc.Update(context.Background(), 1, domain.NewDirectiveSet())

	assert.ErrorIs(t, err, ErrNoUpdates)
}

func TestUpdate_InvalidCapacityRejected(t *testing.T) {
	svc := NewService(&fakeAvailabilityRepo{}, &fakeBookingRepo{}, nopLogger{})

	err := svc.Update(context.Background(), 1, directives(t,
		domain.CapacityDirective{Capacity: -1},
	))

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete_BlockedByActiveBookings(t *testing.T) {
	av := &fakeAvailabilityRepo{byID: map[int64]*domain.Availability{1: slot(1, 10)}}
	br := &fakeBookingRepo{blocked: []int64{1}}
	svc := NewService(av, br, nopLogger{})

	err := svc.Delete(context.Background(), 1)

	assert.ErrorIs(t, err, ErrHasActiveBookings)
	assert.Zero(t, av.deletedID)
}

func TestDelete_FreeSlotRemoved(t *testing.T) {
	av := &fakeAvailabilityRepo{byID: map[int64]*domain.Availability{1: slot(1, 10)}}
	svc := NewService(av, &fakeBookingRepo{}, nopLogger{})

	err := svc.Delete(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(1), av.deletedID)
}
