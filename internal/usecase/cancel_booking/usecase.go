package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
	"github.com/lepotilnica/SalonBookingService/internal/infra/storage/booking"
)

// Формат UUID v4 проверяется до обращения к хранилищу
var tokenRegexp = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-4[0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

// UseCase use case для самостоятельной отмены записи клиентом
type UseCase struct {
	bookingRepo  BookingRepository
	broadcaster  EventBroadcaster
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// location это часовой пояс салона, в нем интерпретируются дата и
// время начала записи.
func NewUseCase(
	bookingRepo BookingRepository,
	broadcaster EventBroadcaster,
	timeProvider TimeProvider,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		broadcaster:  broadcaster,
		timeProvider: timeProvider,
		location:     location,
		logger:       logger,
	}
}

// Execute выполняет use case отмены записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Синтаксис токена
	if !tokenRegexp.MatchString(req.Token) {
		uc.logger.Warn("CancelBooking: malformed token")
		return nil, fmt.Errorf("%w: token is not a valid UUID", ErrInvalidToken)
	}

	// 2. Поиск бронирования по токену
	b, err := uc.bookingRepo.GetByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: unknown token")
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to get booking: %v", err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Повторная отмена
	if b.IsCancelled() {
		return nil, fmt.Errorf("%w: booking %d", ErrAlreadyCancelled, b.ID)
	}

	// 4. Не позднее чем за 24 часа до начала
	notice := b.StartsAt(uc.location).Sub(uc.timeProvider.Now())
	if notice < time.Duration(domain.MinCancellationNoticeHours)*time.Hour {
		uc.logger.Warn("CancelBooking: booking %d starts in %s, too late", b.ID, notice)
		return nil, fmt.Errorf("%w: booking %d starts at %s %s",
			ErrTooLateToCancel, b.ID, b.Date.Format(domain.DateFormat), b.StartTime)
	}

	// 5. Отмена
	if err := uc.bookingRepo.UpdateStatus(ctx, b.ID, domain.StatusCancelled); err != nil {
		uc.logger.Error("CancelBooking: failed to update status: %v", err)
		return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}

	uc.logger.Info("CancelBooking: booking %d cancelled by customer", b.ID)

	go uc.broadcaster.Broadcast(context.Background(), domain.EventBookingUpdated, map[string]interface{}{
		"id":     b.ID,
		"status": string(domain.StatusCancelled),
	})

	return &Response{
		BookingID:    b.ID,
		CustomerName: b.CustomerName,
		ServiceName:  b.ServiceName,
		Date:         b.Date,
		StartTime:    b.StartTime,
	}, nil
}
