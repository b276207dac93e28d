package quote_booking

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funinthesundocs/epictours/internal/domain"
	availabilityRepo "github.com/funinthesundocs/epictours/internal/infra/storage/availability"
	"github.com/funinthesundocs/epictours/pkg/ptr"
)

type fakeAvailabilityRepo struct {
	availability *domain.Availability
	err          error
}

func (f *fakeAvailabilityRepo) GetByID(_ context.Context, _ int64) (*domain.Availability, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.availability, nil
}

type fakeBookingRepo struct {
	active []*domain.Booking
}

func (f *fakeBookingRepo) ListActiveByAvailability(_ context.Context, _ int64) ([]*domain.Booking, error) {
	return f.active, nil
}

type fakePricingResolver struct {
	rates []domain.PricingRate
	tier  string
	err   error
}

func (f *fakePricingResolver) ResolveRates(_ context.Context, _ int64, _ string) ([]domain.PricingRate, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.rates, f.tier, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testAvailability(maxCapacity int) *domain.Availability {
	return &domain.Availability{
		ID:                1,
		MaxCapacity:       maxCapacity,
		OnlineStatus:      domain.OnlineOpen,
		PricingScheduleID: ptr.Ptr(int64(5)),
	}
}

func activeBooking(id int64, pax int) *domain.Booking {
	return &domain.Booking{
		ID:             id,
		AvailabilityID: 1,
		Status:         domain.StatusConfirmed,
		Passengers:     domain.PassengerBreakdown{"adult": pax},
	}
}

func testRates() []domain.PricingRate {
	return []domain.PricingRate{
		{
			PassengerTypeID:   "adult",
			PassengerTypeName: "Adult",
			Price:             decimal.NewFromInt(100),
			TaxPercentage:     decimal.NewFromInt(10),
		},
	}
}

func newTestUseCase(av *fakeAvailabilityRepo, br *fakeBookingRepo, pr *fakePricingResolver) *UseCase {
	return NewUseCase(av, br, pr, nopLogger{})
}

func TestExecute_DraftQuotedWithSpeculativeOccupancy(t *testing.T) {
	av := &fakeAvailabilityRepo{availability: testAvailability(10)}
	br := &fakeBookingRepo{active: []*domain.Booking{activeBooking(5, 4)}}
	pr := &fakePricingResolver{rates: testRates(), tier: "Retail"}
	uc := newTestUseCase(av, br, pr)

	resp, err := uc.Execute(context.Background(), &Request{
		AvailabilityID: 1,
		Passengers:     domain.PassengerBreakdown{"adult": 3},
	})

	require.NoError(t, err)
	assert.True(t, resp.Fits)
	assert.Equal(t, 7, resp.Booked) // 4 чужих + 3 из драфта
	assert.Equal(t, 3, resp.Remaining)
	assert.Equal(t, "300.00", resp.Subtotal)
	assert.Equal(t, "330.00", resp.GrandTotal)
	assert.Equal(t, "330.00", resp.AmountPaid)
}

func TestExecute_OverflowReturnsQuoteWithFitsFalse(t *testing.T) {
	// Переполнение в драфте - не ошибка: расчет возвращается целиком,
	// флаг fits предупреждает, что сохранение упрется в вместимость
	av := &fakeAvailabilityRepo{availability: testAvailability(10)}
	br := &fakeBookingRepo{active: []*domain.Booking{activeBooking(5, 8)}}
	pr := &fakePricingResolver{rates: testRates(), tier: "Retail"}
	uc := newTestUseCase(av, br, pr)

	resp, err := uc.Execute(context.Background(), &Request{
		AvailabilityID: 1,
		Passengers:     domain.PassengerBreakdown{"adult": 5},
	})

	require.NoError(t, err)
	assert.False(t, resp.Fits)
	assert.Equal(t, 13, resp.Booked)
	assert.Equal(t, 0, resp.Remaining) // не уходит в минус
	assert.Equal(t, "500.00", resp.Subtotal)
}

func TestExecute_EditingBookingSeatsExcludedFromBaseline(t *testing.T) {
	// Слот на 10 занят полностью: редактируемая бронь 6 + чужая 4.
	// Драфт той же брони на 6 мест помещается - прежние места исключены
	av := &fakeAvailabilityRepo{availability: testAvailability(10)}
	br := &fakeBookingRepo{active: []*domain.Booking{activeBooking(42, 6), activeBooking(43, 4)}}
	pr := &fakePricingResolver{rates: testRates(), tier: "Retail"}
	uc := newTestUseCase(av, br, pr)

	resp, err := uc.Execute(context.Background(), &Request{
		AvailabilityID:   1,
		Passengers:       domain.PassengerBreakdown{"adult": 6},
		EditingBookingID: ptr.Ptr(int64(42)),
	})

	require.NoError(t, err)
	assert.True(t, resp.Fits)
	assert.Equal(t, 10, resp.Booked)

	// Без исключения тот же драфт не помещается
	resp, err = uc.Execute(context.Background(), &Request{
		AvailabilityID: 1,
		Passengers:     domain.PassengerBreakdown{"adult": 6},
	})

	require.NoError(t, err)
	assert.False(t, resp.Fits)
	assert.Equal(t, 16, resp.Booked)
}

func TestExecute_NothingPersisted(t *testing.T) {
	av := &fakeAvailabilityRepo{availability: testAvailability(10)}
	br := &fakeBookingRepo{}
	pr := &fakePricingResolver{rates: testRates(), tier: "Retail"}
	uc := newTestUseCase(av, br, pr)

	resp, err := uc.Execute(context.Background(), &Request{
		AvailabilityID: 1,
		Passengers:     domain.PassengerBreakdown{"adult": 2},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.AvailabilityID)
	assert.Equal(t, 2, resp.TotalPax)
}

func TestExecute_AvailabilityNotFound(t *testing.T) {
	av := &fakeAvailabilityRepo{err: availabilityRepo.ErrAvailabilityNotFound}
	uc := newTestUseCase(av, &fakeBookingRepo{}, &fakePricingResolver{})

	_, err := uc.Execute(context.Background(), &Request{
		AvailabilityID: 404,
		Passengers:     domain.PassengerBreakdown{"adult": 1},
	})

	assert.ErrorIs(t, err, ErrAvailabilityNotFound)
}

func TestExecute_NoPricingScheduleMeansNotPriceable(t *testing.T) {
	availability := testAvailability(10)
	availability.PricingScheduleID = nil
	av := &fakeAvailabilityRepo{availability: availability}
	uc := newTestUseCase(av, &fakeBookingRepo{}, &fakePricingResolver{})

	_, err := uc.Execute(context.Background(), &Request{
		AvailabilityID: 1,
		Passengers:     domain.PassengerBreakdown{"adult": 1},
	})

	assert.ErrorIs(t, err, ErrNotPriceable)
}

func TestExecute_ZeroPassengersRejected(t *testing.T) {
	uc := newTestUseCase(&fakeAvailabilityRepo{}, &fakeBookingRepo{}, &fakePricingResolver{})

	_, err := uc.Execute(context.Background(), &Request{
		AvailabilityID: 1,
		Passengers:     domain.PassengerBreakdown{},
	})

	assert.ErrorIs(t, err, ErrZeroPassengers)
}
