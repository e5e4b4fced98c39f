package noshows

import (
	"context"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
)

// NoShowRepository интерфейс репозитория неявок
type NoShowRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.NoShowRecord, error)
	List(ctx context.Context) ([]*domain.NoShowRecord, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
