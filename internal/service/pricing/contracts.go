package pricing

import (
	"context"

	"github.com/funinthesundocs/epictours/internal/domain"
)

// PricingRepository интерфейс репозитория прайс-листов
type PricingRepository interface {
	GetScheduleTiers(ctx context.Context, scheduleID int64) ([]string, error)
	GetRates(ctx context.Context, scheduleID int64, tier string) ([]domain.PricingRate, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
