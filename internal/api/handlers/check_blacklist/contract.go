package check_blacklist

import (
	"context"

	"github.com/lepotilnica/SalonBookingService/internal/service/noshows/models"
)

type NoShowsService interface {
	Check(ctx context.Context, email string) (*models.BlacklistStatusResponse, error)
	List(ctx context.Context) (*models.BlacklistResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
