package list_availabilities

import (
	"context"

	"github.com/funinthesundocs/epictours/internal/domain"
	"github.com/funinthesundocs/epictours/internal/service/availabilities/models"
)

type AvailabilityService interface {
	List(ctx context.Context, filters *domain.FilterSet) (*models.AvailabilityListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
