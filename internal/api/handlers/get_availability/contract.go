package get_availability

import (
	"context"

	"github.com/funinthesundocs/epictours/internal/service/availabilities/models"
)

type AvailabilityService interface {
	GetByID(ctx context.Context, id int64) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
