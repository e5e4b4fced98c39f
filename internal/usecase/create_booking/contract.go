package create_booking

import (
	"context"
	"time"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
	"github.com/lepotilnica/SalonBookingService/internal/integrations/mailer"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListByDate(ctx context.Context, date time.Time, includeInactive bool) ([]*domain.Booking, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// BlockedTimeRepository интерфейс репозитория блокировок
type BlockedTimeRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.BlockedInterval, error)
}

// NoShowRepository интерфейс репозитория неявок
type NoShowRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.NoShowRecord, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventBroadcaster интерфейс отправки событий в realtime-хаб
type EventBroadcaster interface {
	Broadcast(ctx context.Context, event string, data map[string]interface{})
}

// ConfirmationSender интерфейс отправки письма-подтверждения
type ConfirmationSender interface {
	SendBookingConfirmation(c mailer.Confirmation)
}

// TokenGenerator генерирует токены отмены для созданных бронирований
type TokenGenerator func() string

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
