package create_booking

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funinthesundocs/epictours/internal/domain"
	availabilityRepo "github.com/funinthesundocs/epictours/internal/infra/storage/availability"
	pricingService "github.com/funinthesundocs/epictours/internal/service/pricing"
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
	active  []*domain.Booking
	created *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	created := *b
	created.ID = 101
	f.created = &created
	return &created, nil
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

// passthroughTxManager выполняет fn без настоящей транзакции
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

func testRates() []domain.PricingRate {
	return []domain.PricingRate{
		{
			PassengerTypeID:   "adult",
			PassengerTypeName: "Adult",
			Price:             decimal.NewFromInt(100),
			TaxPercentage:     decimal.NewFromInt(10),
		},
		{
			PassengerTypeID:   "child",
			PassengerTypeName: "Child",
			Price:             decimal.NewFromInt(60),
			TaxPercentage:     decimal.NewFromInt(10),
		},
	}
}

func newTestUseCase(av *fakeAvailabilityRepo, br *fakeBookingRepo, pr *fakePricingResolver) *UseCase {
	return NewUseCase(av, br, pr, passthroughTxManager{}, nopLogger{})
}

func TestExecute_CreatesBookingWithTotalsAndPayment(t *testing.T) {
	av := &fakeAvailabilityRepo{availability: testAvailability(10)}
	br := &fakeBookingRepo{}
	pr := &fakePricingResolver{rates: testRates(), tier: "Retail"}
	uc := newTestUseCase(av, br, pr)

	resp, err := uc.Execute(context.Background(), &Request{
		AvailabilityID: 1,
		Passengers:     domain.PassengerBreakdown{"adult": 2, "child": 1},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, 3, resp.TotalPax)
	assert.Equal(t, "260.00", resp.Subtotal)
	assert.Equal(t, "26.00", resp.TaxTotal)
	assert.Equal(t, "286.00", resp.GrandTotal)
	assert.Equal(t, "Retail", resp.Tier)

	// Дефолтное платежное состояние: paid_full картой на всю сумму
	assert.Equal(t, "paid_full", resp.PaymentStatus)
	assert.Equal(t, "credit_card", resp.PaymentMethod)
	assert.Equal(t, "286.00", resp.AmountPaid)
	assert.Equal(t, "0.00", resp.Balance)
	assert.Equal(t, 7, resp.Remaining)

	require.NotNil(t, br.created)
	assert.Equal(t, domain.StatusConfirmed, br.created.Status)
}

func TestExecute_CapacityCheckedAgainstLiveBookings(t *testing.T) {
	av := &fakeAvailabilityRepo{availability: testAvailability(10)}
	br := &fakeBookingRepo{active: []*domain.Booking{
		{ID: 1, Status: domain.StatusConfirmed, Passengers: domain.PassengerBreakdown{"adult": 8}},
	}}
	pr := &fakePricingResolver{rates: testRates(), tier: "Retail"}
	uc := newTestUseCase(av, br, pr)

	_, err := uc.Execute(context.Background(), &Request{
		AvailabilityID: 1,
		Passengers:     domain.PassengerBreakdown{"adult": 3},
	})

	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Nil(t, br.created)
}

func TestExecute_CancelledBookingsDoNotBlock(t *testing.T) {
	av := &fakeAvailabilityRepo{availability: testAvailability(10)}
	br := &fakeBookingRepo{active: []*domain.Booking{
		{ID: 1, Status: domain.StatusCancelled, Passengers: domain.PassengerBreakdown{"adult": 8}},
	}}
	pr := &fakePricingResolver{rates: testRates(), tier: "Retail"}
	uc := newTestUseCase(av, br, pr)

	resp, err := uc.Execute(context.Background(), &Request{
		AvailabilityID: 1,
		Passengers:     domain.PassengerBreakdown{"adult": 3},
	})

	require.NoError(t, err)
	assert.Equal(t, 7, resp.Remaining)
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

func TestExecute_EmptyRatesMeansNotPriceable(t *testing.T) {
	av := &fakeAvailabilityRepo{availability: testAvailability(10)}
	pr := &fakePricingResolver{err: pricingService.ErrNoRatesForTier}
	uc := newTestUseCase(av, &fakeBookingRepo{}, pr)

	_, err := uc.Execute(context.Background(), &Request{
		AvailabilityID: 1,
		Passengers:     domain.PassengerBreakdown{"adult": 1},
	})

	assert.ErrorIs(t, err, ErrNotPriceable)
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

func TestExecute_ZeroPassengersRejectedBeforeStore(t *testing.T) {
	av := &fakeAvailabilityRepo{}
	uc := newTestUseCase(av, &fakeBookingRepo{}, &fakePricingResolver{})

	_, err := uc.Execute(context.Background(), &Request{
		AvailabilityID: 1,
		Passengers:     domain.PassengerBreakdown{"adult": 0},
	})

	assert.ErrorIs(t, err, ErrZeroPassengers)
}

func TestExecute_PaidPartialWithManualAmount(t *testing.T) {
	av := &fakeAvailabilityRepo{availability: testAvailability(10)}
	br := &fakeBookingRepo{}
	pr := &fakePricingResolver{rates: testRates(), tier: "Retail"}
	uc := newTestUseCase(av, br, pr)

	amount := decimal.NewFromInt(50)
	resp, err := uc.Execute(context.Background(), &Request{
		AvailabilityID: 1,
		Passengers:     domain.PassengerBreakdown{"adult": 2},
		PaymentStatus:  "paid_partial",
		Amount:         &amount,
	})

	require.NoError(t, err)
	assert.Equal(t, "paid_partial", resp.PaymentStatus)
	assert.Equal(t, "50.00", resp.AmountPaid)
	assert.Equal(t, "170.00", resp.Balance) // 220 - 50
}

func TestExecute_OverrideTotalDrivesPayment(t *testing.T) {
	av := &fakeAvailabilityRepo{availability: testAvailability(10)}
	br := &fakeBookingRepo{}
	pr := &fakePricingResolver{rates: testRates(), tier: "Retail"}
	uc := newTestUseCase(av, br, pr)

	override := decimal.NewFromInt(150)
	resp, err := uc.Execute(context.Background(), &Request{
		AvailabilityID: 1,
		Passengers:     domain.PassengerBreakdown{"adult": 2},
		OverrideTotal:  &override,
	})

	require.NoError(t, err)
	assert.True(t, resp.IsOverridden)
	assert.Equal(t, "150.00", resp.GrandTotal)
	assert.Equal(t, "150.00", resp.AmountPaid)
}

func TestExecute_CashRejectedForPayLater(t *testing.T) {
	av := &fakeAvailabilityRepo{availability: testAvailability(10)}
	pr := &fakePricingResolver{rates: testRates(), tier: "Retail"}
	uc := newTestUseCase(av, &fakeBookingRepo{}, pr)

	_, err := uc.Execute(context.Background(), &Request{
		AvailabilityID: 1,
		Passengers:     domain.PassengerBreakdown{"adult": 1},
		PaymentStatus:  "pay_later",
		PaymentMethod:  "cash",
	})

	assert.ErrorIs(t, err, ErrCashNotAllowed)
}
