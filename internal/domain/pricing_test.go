package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRates() []PricingRate {
	return []PricingRate{
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
		{
			PassengerTypeID:   "infant",
			PassengerTypeName: "Infant",
			Price:             decimal.Zero,
			TaxPercentage:     decimal.Zero,
		},
	}
}

func TestComputeTotals_LineItemsAndTotals(t *testing.T) {
	counts := PassengerBreakdown{"adult": 2, "child": 1}

	totals := ComputeTotals(testRates(), counts, nil, nil)

	require.Len(t, totals.LineItems, 2)

	adult := totals.LineItems[0]
	assert.Equal(t, "adult", adult.PassengerTypeID)
	assert.Equal(t, 2, adult.Count)
	assert.True(t, adult.Subtotal.Equal(decimal.NewFromInt(200)), "adult subtotal: %s", adult.Subtotal)
	assert.True(t, adult.Tax.Equal(decimal.NewFromInt(20)), "adult tax: %s", adult.Tax)

	child := totals.LineItems[1]
	assert.Equal(t, "child", child.PassengerTypeID)
	assert.True(t, child.Subtotal.Equal(decimal.NewFromInt(60)))
	assert.True(t, child.Tax.Equal(decimal.NewFromInt(6)))

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(260)), "subtotal: %s", totals.Subtotal)
	assert.True(t, totals.TaxTotal.Equal(decimal.NewFromInt(26)), "tax total: %s", totals.TaxTotal)
	assert.True(t, totals.GrandTotal.Equal(decimal.NewFromInt(286)), "grand total: %s", totals.GrandTotal)
	assert.False(t, totals.IsOverridden)
}

func TestComputeTotals_ZeroCountProducesNoLineItem(t *testing.T) {
	counts := PassengerBreakdown{"adult": 1, "child": 0}

	totals := ComputeTotals(testRates(), counts, nil, nil)

	require.Len(t, totals.LineItems, 1)
	assert.Equal(t, "adult", totals.LineItems[0].PassengerTypeID)
}

func TestComputeTotals_OverrideWinsOverCalculated(t *testing.T) {
	counts := PassengerBreakdown{"adult": 2}
	override := decimal.NewFromFloat(150.50)

	totals := ComputeTotals(testRates(), counts, &override, nil)

	// Построчные суммы остаются расчетными, переопределяется только итог
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, totals.CalculatedTotal.Equal(decimal.NewFromInt(220)))
	assert.True(t, totals.GrandTotal.Equal(override), "grand total: %s", totals.GrandTotal)
	assert.True(t, totals.IsOverridden)
}

func TestComputeTotals_ZeroOverrideIsHonored(t *testing.T) {
	counts := PassengerBreakdown{"adult": 1}
	override := decimal.Zero

	totals := ComputeTotals(testRates(), counts, &override, nil)

	assert.True(t, totals.GrandTotal.IsZero())
	assert.True(t, totals.IsOverridden)
}

func TestComputeTotals_PromoCodeIsLabelOnly(t *testing.T) {
	counts := PassengerBreakdown{"adult": 2, "child": 1}
	promo := "SUMMER20"

	withPromo := ComputeTotals(testRates(), counts, nil, &promo)
	withoutPromo := ComputeTotals(testRates(), counts, nil, nil)

	assert.True(t, withPromo.GrandTotal.Equal(withoutPromo.GrandTotal))
	require.NotNil(t, withPromo.PromoCode)
	assert.Equal(t, promo, *withPromo.PromoCode)
}

func TestComputeTotals_FractionalTaxRounding(t *testing.T) {
	rates := []PricingRate{
		{
			PassengerTypeID:   "adult",
			PassengerTypeName: "Adult",
			Price:             decimal.NewFromFloat(33.33),
			TaxPercentage:     decimal.NewFromFloat(7.5),
		},
	}
	counts := PassengerBreakdown{"adult": 3}

	totals := ComputeTotals(rates, counts, nil, nil)

	// 99.99 + 7.49925 -> налог и итог округляются до копеек
	assert.Equal(t, "99.99", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "7.50", totals.TaxTotal.StringFixed(2))
	assert.Equal(t, "107.49", totals.GrandTotal.StringFixed(2))
}

func TestComputeTotals_Deterministic(t *testing.T) {
	counts := PassengerBreakdown{"adult": 2, "child": 1}

	first := ComputeTotals(testRates(), counts, nil, nil)
	second := ComputeTotals(testRates(), counts, nil, nil)

	assert.True(t, first.GrandTotal.Equal(second.GrandTotal))
	assert.Equal(t, len(first.LineItems), len(second.LineItems))
}
