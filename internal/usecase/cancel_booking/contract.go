package cancel_booking

import (
	"context"
	"time"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByToken(ctx context.Context, token string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// EventBroadcaster интерфейс отправки событий в realtime-хаб
type EventBroadcaster interface {
	Broadcast(ctx context.Context, event string, data map[string]interface{})
}

// TimeProvider интерфейс провайдера времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider на системных часах
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
