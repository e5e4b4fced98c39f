package customers

import (
	"context"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// NoteRepository интерфейс репозитория админских заметок
type NoteRepository interface {
	Create(ctx context.Context, note *domain.CustomerNote) (*domain.CustomerNote, error)
	ListAll(ctx context.Context) ([]*domain.CustomerNote, error)
	Delete(ctx context.Context, id int64) error
}

// NoShowRepository интерфейс репозитория неявок
type NoShowRepository interface {
	List(ctx context.Context) ([]*domain.NoShowRecord, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
