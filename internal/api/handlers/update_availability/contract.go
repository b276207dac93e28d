package update_availability

import (
	"context"

	"github.com/funinthesundocs/epictours/internal/domain"
)

type AvailabilityService interface {
	Update(ctx context.Context, id int64, directives *domain.DirectiveSet) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
