package record_no_show

import (
	"context"
	"time"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// NoShowRepository интерфейс репозитория неявок
type NoShowRepository interface {
	Increment(ctx context.Context, email string, date time.Time) (*domain.NoShowRecord, error)
}

// TransactionManager выполняет функцию внутри serializable-транзакции
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventBroadcaster интерфейс отправки событий в realtime-хаб
type EventBroadcaster interface {
	Broadcast(ctx context.Context, event string, data map[string]interface{})
}

// TimeProvider интерфейс провайдера времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
