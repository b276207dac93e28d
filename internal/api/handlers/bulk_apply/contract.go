package bulk_apply

import (
	"context"

	bulkApply "github.com/funinthesundocs/epictours/internal/usecase/bulk_apply"
)

type BulkApplyUseCase interface {
	Execute(ctx context.Context, req *bulkApply.Request) (*bulkApply.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
