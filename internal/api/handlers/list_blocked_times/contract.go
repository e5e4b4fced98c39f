package list_blocked_times

import (
	"context"

	"github.com/lepotilnica/SalonBookingService/internal/service/blockedtimes/models"
)

type BlockedTimesService interface {
	List(ctx context.Context, req *models.ListBlocksRequest) (*models.BlockListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
