package get_pricing_rates

import (
	"context"

	"github.com/funinthesundocs/epictours/internal/domain"
)

type PricingService interface {
	ResolveRates(ctx context.Context, scheduleID int64, tier string) ([]domain.PricingRate, string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
