package pricing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funinthesundocs/epictours/internal/domain"
	pricingRepo "github.com/funinthesundocs/epictours/internal/infra/storage/pricing"
)

type fakePricingRepo struct {
	tiers    []string
	tiersErr error
	rates    map[string][]domain.PricingRate
	ratesErr error
}

func (f *fakePricingRepo) GetScheduleTiers(_ context.Context, _ int64) ([]string, error) {
	if f.tiersErr != nil {
		return nil, f.tiersErr
	}
	return f.tiers, nil
}

func (f *fakePricingRepo) GetRates(_ context.Context, _ int64, tier string) ([]domain.PricingRate, error) {
	if f.ratesErr != nil {
		return nil, f.ratesErr
	}
	return f.rates[tier], nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func adultRate() domain.PricingRate {
	return domain.PricingRate{
		PassengerTypeID:   "adult",
		PassengerTypeName: "Adult",
		Price:             decimal.NewFromInt(100),
		TaxPercentage:     decimal.NewFromInt(10),
	}
}

func TestResolveRates_ExplicitTier(t *testing.T) {
	repo := &fakePricingRepo{
		tiers: []string{"Retail", "Wholesale"},
		rates: map[string][]domain.PricingRate{
			"Wholesale": {adultRate()},
		},
	}
	svc := NewService(repo, nopLogger{})

	rates, tier, err := svc.ResolveRates(context.Background(), 1, "Wholesale")

	require.NoError(t, err)
	assert.Equal(t, "Wholesale", tier)
	require.Len(t, rates, 1)
}

func TestResolveRates_UnknownExplicitTier(t *testing.T) {
	repo := &fakePricingRepo{tiers: []string{"Retail"}}
	svc := NewService(repo, nopLogger{})

	_, _, err := svc.ResolveRates(context.Background(), 1, "VIP")

	assert.ErrorIs(t, err, ErrUnknownTier)
}

func TestResolveRates_EmptyTierPrefersRetail(t *testing.T) {
	repo := &fakePricingRepo{
		tiers: []string{"Wholesale", "Retail"},
		rates: map[string][]domain.PricingRate{
			"Retail": {adultRate()},
		},
	}
	svc := NewService(repo, nopLogger{})

	_, tier, err := svc.ResolveRates(context.Background(), 1, "")

	require.NoError(t, err)
	assert.Equal(t, "Retail", tier)
}

func TestResolveRates_EmptyTierFallsBackToFirst(t *testing.T) {
	repo := &fakePricingRepo{
		tiers: []string{"Wholesale", "Trade"},
		rates: map[string][]domain.PricingRate{
			"Wholesale": {adultRate()},
		},
	}
	svc := NewService(repo, nopLogger{})

	_, tier, err := svc.ResolveRates(context.Background(), 1, "")

	require.NoError(t, err)
	assert.Equal(t, "Wholesale", tier)
}

func TestResolveRates_NoTiersMeansNotPriceable(t *testing.T) {
	repo := &fakePricingRepo{tiers: nil}
	svc := NewService(repo, nopLogger{})

	_, _, err := svc.ResolveRates(context.Background(), 1, "")

	assert.ErrorIs(t, err, ErrNoRatesForTier)
}

func TestResolveRates_EmptyRatesMeansNotPriceable(t *testing.T) {
	repo := &fakePricingRepo{
		tiers: []string{"Retail"},
		rates: map[string][]domain.PricingRate{},
	}
	svc := NewService(repo, nopLogger{})

	_, _, err := svc.ResolveRates(context.Background(), 1, "")

	assert.ErrorIs(t, err, ErrNoRatesForTier)
}

func TestResolveRates_ScheduleNotFound(t *testing.T) {
	repo := &fakePricingRepo{tiersErr: pricingRepo.ErrScheduleNotFound}
	svc := NewService(repo, nopLogger{})

	_, _, err := svc.ResolveRates(context.Background(), 42, "")

	assert.ErrorIs(t, err, ErrScheduleNotFound)
}
