package list_customers

import (
	"context"

	"github.com/lepotilnica/SalonBookingService/internal/service/customers/models"
)

type CustomersService interface {
	List(ctx context.Context) (*models.CustomerListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
