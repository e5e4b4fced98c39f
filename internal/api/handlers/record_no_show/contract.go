package record_no_show

import (
	"context"

	recordNoShow "github.com/lepotilnica/SalonBookingService/internal/usecase/record_no_show"
)

type RecordNoShowUseCase interface {
	Execute(ctx context.Context, req *recordNoShow.Request) (*recordNoShow.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
