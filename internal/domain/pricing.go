package domain

import "github.com/shopspring/decimal"

// moneyPlaces currency values are rounded to 2 decimal places at display
// and persistence boundaries; intermediate sums keep full precision
const moneyPlaces = 2

// PricingRate is one (tier, passenger type) price row of a pricing schedule.
// Read-only from the booking flow's point of view. The display name is
// joined in for presentation and never participates in calculation.
type PricingRate struct {
	PassengerTypeID   string
	PassengerTypeName string
	Price             decimal.Decimal
	TaxPercentage     decimal.Decimal
}

// LineItem is one priced row of a booking draft
type LineItem struct {
	PassengerTypeID   string
	PassengerTypeName string
	Count             int
	UnitPrice         decimal.Decimal
	Subtotal          decimal.Decimal
	Tax               decimal.Decimal
}

// BookingTotals is the result of pricing a booking draft
type BookingTotals struct {
	LineItems       []LineItem
	Subtotal        decimal.Decimal
	TaxTotal        decimal.Decimal
	CalculatedTotal decimal.Decimal
	GrandTotal      decimal.Decimal
	IsOverridden    bool
	PromoCode       *string
}

// ComputeTotals prices a booking draft against resolved rates.
//
// Rates with a zero passenger count produce no line item. The grand total
// is the override when one is present (and non-negative), otherwise
// subtotal + tax rounded to 2 decimal places.
//
// The promo code is carried as a label only: the override mechanism is the
// only way totals change, keeping manual pricing authority with the
// operator. Pure function - identical inputs always yield identical output.
func ComputeTotals(rates []PricingRate, counts PassengerBreakdown, overrideTotal *decimal.Decimal, promoCode *string) BookingTotals {
	totals := BookingTotals{
		LineItems: make([]LineItem, 0, len(rates)),
		PromoCode: promoCode,
	}

	for _, rate := range rates {
		count := counts[rate.PassengerTypeID]
		if count <= 0 {
			continue
		}

		subtotal := rate.Price.Mul(decimal.NewFromInt(int64(count)))
		tax := subtotal.Mul(rate.TaxPercentage).Div(decimal.NewFromInt(100))

		totals.LineItems = append(totals.LineItems, LineItem{
			PassengerTypeID:   rate.PassengerTypeID,
			PassengerTypeName: rate.PassengerTypeName,
			Count:             count,
			UnitPrice:         rate.Price,
			Subtotal:          subtotal.Round(moneyPlaces),
			Tax:               tax.Round(moneyPlaces),
		})

		totals.Subtotal = totals.Subtotal.Add(subtotal)
		totals.TaxTotal = totals.TaxTotal.Add(tax)
	}

	totals.CalculatedTotal = totals.Subtotal.Add(totals.TaxTotal).Round(moneyPlaces)
	totals.Subtotal = totals.Subtotal.Round(moneyPlaces)
	totals.TaxTotal = totals.TaxTotal.Round(moneyPlaces)

	totals.IsOverridden = overrideTotal != nil
	if overrideTotal != nil && !overrideTotal.IsNegative() {
		totals.GrandTotal = overrideTotal.Round(moneyPlaces)
	} else {
		totals.GrandTotal = totals.CalculatedTotal
	}

	return totals
}
