package blockedtimes

import (
	"context"
	"time"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
)

// BlockedTimeRepository интерфейс репозитория блокировок
type BlockedTimeRepository interface {
	Create(ctx context.Context, block *domain.BlockedInterval) (*domain.BlockedInterval, error)
	ListRange(ctx context.Context, startDate, endDate *time.Time) ([]*domain.BlockedInterval, error)
	Delete(ctx context.Context, id int64) error
}

// EventBroadcaster интерфейс отправки событий в realtime-хаб
type EventBroadcaster interface {
	Broadcast(ctx context.Context, event string, data map[string]interface{})
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
