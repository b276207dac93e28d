package bulk_apply

import (
	"context"

	"github.com/funinthesundocs/epictours/internal/domain"
)

// AvailabilityRepository интерфейс репозитория слотов
type AvailabilityRepository interface {
	ListIDs(ctx context.Context, filters *domain.FilterSet) ([]int64, error)
	BulkUpdate(ctx context.Context, ids []int64, patch domain.FieldPatch) error
	BulkDelete(ctx context.Context, ids []int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListAvailabilityIDsWithActiveBookings(ctx context.Context, availabilityIDs []int64) ([]int64, error)
}

// FleetClient интерфейс справочника транспорта и персонала
type FleetClient interface {
	CheckStaffExist(ctx context.Context, staffIDs []int64) (int64, error)
	CheckVehicleExists(ctx context.Context, vehicleID int64) error
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
