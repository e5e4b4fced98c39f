package catalog

import (
	"context"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
)

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	List(ctx context.Context) ([]*domain.Service, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
