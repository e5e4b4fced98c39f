package get_analytics

import (
	"context"

	"github.com/lepotilnica/SalonBookingService/internal/service/analytics/models"
)

type AnalyticsService interface {
	GetDashboard(ctx context.Context) (*models.DashboardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
