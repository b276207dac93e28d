package update_booking

import (
	"context"

	"github.com/funinthesundocs/epictours/internal/domain"
)

// AvailabilityRepository интерфейс репозитория слотов
type AvailabilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Availability, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	ListActiveByAvailability(ctx context.Context, availabilityID int64) ([]*domain.Booking, error)
}

// PricingResolver интерфейс резолва тарифов
type PricingResolver interface {
	ResolveRates(ctx context.Context, scheduleID int64, tier string) ([]domain.PricingRate, string, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
