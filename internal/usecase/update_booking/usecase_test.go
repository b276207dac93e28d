package update_booking

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funinthesundocs/epictours/internal/domain"
	bookingRepo "github.com/funinthesundocs/epictours/internal/infra/storage/booking"
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
	booking *domain.Booking
	getErr  error
	active  []*domain.Booking
	updated *domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, b *domain.Booking) error {
	saved := *b
	f.updated = &saved
	return nil
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

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func testBooking(id int64, pax int) *domain.Booking {
	return &domain.Booking{
		ID:             id,
		AvailabilityID: 1,
		Status:         domain.StatusConfirmed,
		Passengers:     domain.PassengerBreakdown{"adult": pax},
		PaymentStatus:  domain.PaymentPaidFull,
		PaymentMethod:  domain.MethodCreditCard,
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
	return NewUseCase(av, br, pr, passthroughTxManager{}, nopLogger{})
}

func TestExecute_OwnSeatsExcludedFromCapacity(t *testing.T) {
	// Слот на 10 мест занят полностью: своя бронь на 6 + чужая на 4.
	// Рост своей брони до 6 мест должен пройти, т.к. прежние 6 исключены
	booking := testBooking(42, 6)
	other := testBooking(43, 4)
	br := &fakeBookingRepo{booking: booking, active: []*domain.Booking{booking, other}}
	av := &fakeAvailabilityRepo{availability: testAvailability(10)}
	pr := &fakePricingResolver{rates: testRates(), tier: "Retail"}
	uc := newTestUseCase(av, br, pr)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:  42,
		Passengers: domain.PassengerBreakdown{"adult": 6},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, 0, resp.Remaining)
	require.NotNil(t, br.updated)
	assert.Equal(t, 6, br.updated.Passengers.Total())
}

func TestExecute_GrowthBeyondCapacityRejected(t *testing.T) {
	booking := testBooking(42, 6)
	other := testBooking(43, 4)
	br := &fakeBookingRepo{booking: booking, active: []*domain.Booking{booking, other}}
	av := &fakeAvailabilityRepo{availability: testAvailability(10)}
	pr := &fakePricingResolver{rates: testRates(), tier: "Retail"}
	uc := newTestUseCase(av, br, pr)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:  42,
		Passengers: domain.PassengerBreakdown{"adult": 7},
	})

	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Nil(t, br.updated)
}

func TestExecute_CancelledBookingCannotBeEdited(t *testing.T) {
	booking := testBooking(42, 2)
	booking.Status = domain.StatusCancelled
	br := &fakeBookingRepo{booking: booking}
	av := &fakeAvailabilityRepo{availability: testAvailability(10)}
	uc := newTestUseCase(av, br, &fakePricingResolver{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:  42,
		Passengers: domain.PassengerBreakdown{"adult": 2},
	})

	assert.ErrorIs(t, err, ErrBookingCancelled)
}

func TestExecute_BookingNotFound(t *testing.T) {
	br := &fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}
	uc := newTestUseCase(&fakeAvailabilityRepo{}, br, &fakePricingResolver{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:  404,
		Passengers: domain.PassengerBreakdown{"adult": 1},
	})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_TotalsRecomputedForNewBreakdown(t *testing.T) {
	booking := testBooking(42, 1)
	br := &fakeBookingRepo{booking: booking, active: []*domain.Booking{booking}}
	av := &fakeAvailabilityRepo{availability: testAvailability(10)}
	pr := &fakePricingResolver{rates: testRates(), tier: "Retail"}
	uc := newTestUseCase(av, br, pr)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:  42,
		Passengers: domain.PassengerBreakdown{"adult": 3},
	})

	require.NoError(t, err)
	assert.Equal(t, "300.00", resp.Subtotal)
	assert.Equal(t, "30.00", resp.TaxTotal)
	assert.Equal(t, "330.00", resp.GrandTotal)

	// paid_full пересчитывается за новым итогом
	assert.Equal(t, "330.00", resp.AmountPaid)
	assert.Equal(t, "0.00", resp.Balance)
}

func TestExecute_PartialAmountSurvivesRecalc(t *testing.T) {
	booking := testBooking(42, 1)
	br := &fakeBookingRepo{booking: booking, active: []*domain.Booking{booking}}
	av := &fakeAvailabilityRepo{availability: testAvailability(10)}
	pr := &fakePricingResolver{rates: testRates(), tier: "Retail"}
	uc := newTestUseCase(av, br, pr)

	amount := decimal.NewFromInt(40)
	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:     42,
		Passengers:    domain.PassengerBreakdown{"adult": 2},
		PaymentStatus: "paid_partial",
		Amount:        &amount,
	})

	require.NoError(t, err)
	assert.Equal(t, "40.00", resp.AmountPaid)
	assert.Equal(t, "180.00", resp.Balance) // 220 - 40
}

func TestExecute_ZeroPassengersRejected(t *testing.T) {
	uc := newTestUseCase(&fakeAvailabilityRepo{}, &fakeBookingRepo{}, &fakePricingResolver{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:  42,
		Passengers: domain.PassengerBreakdown{},
	})

	assert.ErrorIs(t, err, ErrZeroPassengers)
}
