package create_blocked_time

import (
	"context"

	"github.com/lepotilnica/SalonBookingService/internal/service/blockedtimes/models"
)

type BlockedTimesService interface {
	Create(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
