package availabilities

import (
	"context"

	"github.com/funinthesundocs/epictours/internal/domain"
)

// AvailabilityRepository интерфейс репозитория слотов
type AvailabilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Availability, error)
	List(ctx context.Context, filters *domain.FilterSet) ([]*domain.Availability, error)
	Update(ctx context.Context, id int64, patch domain.FieldPatch) error
	Delete(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
// Нужен для пересчета занятости по живому набору бронирований
type BookingRepository interface {
	ListActiveByAvailability(ctx context.Context, availabilityID int64) ([]*domain.Booking, error)
	ListActiveByAvailabilityIDs(ctx context.Context, availabilityIDs []int64) ([]*domain.Booking, error)
	ListAvailabilityIDsWithActiveBookings(ctx context.Context, availabilityIDs []int64) ([]int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
