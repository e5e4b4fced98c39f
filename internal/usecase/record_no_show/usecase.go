package record_no_show

import (
	"context"
	"errors"
	"fmt"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
	"github.com/lepotilnica/SalonBookingService/internal/infra/storage/booking"
)

// UseCase use case для фиксации неявки клиента администратором
type UseCase struct {
	bookingRepo  BookingRepository
	noShowRepo   NoShowRepository
	txManager    TransactionManager
	broadcaster  EventBroadcaster
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	noShowRepo NoShowRepository,
	txManager TransactionManager,
	broadcaster EventBroadcaster,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		noShowRepo:   noShowRepo,
		txManager:    txManager,
		broadcaster:  broadcaster,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case фиксации неявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: booking ID must be positive", ErrInvalidInput)
	}

	b, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: booking %d", ErrBookingNotFound, req.BookingID)
		}
		uc.logger.Error("RecordNoShow: failed to get booking %d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// Повторная фиксация по той же записи не накручивает счетчик
	if b.IsCancelled() {
		return nil, fmt.Errorf("%w: booking %d", ErrAlreadyCancelled, b.ID)
	}

	// Инкремент счетчика и отмена записи либо фиксируются вместе,
	// либо не фиксируются вовсе
	var record *domain.NoShowRecord
	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		record, err = uc.noShowRepo.Increment(ctx, b.CustomerEmail, uc.timeProvider.Now())
		if err != nil {
			return fmt.Errorf("increment count for %s: %w", b.CustomerEmail, err)
		}
		if err := uc.bookingRepo.UpdateStatus(ctx, b.ID, domain.StatusCancelled); err != nil {
			return fmt.Errorf("cancel booking %d: %w", b.ID, err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("RecordNoShow: %v", err)
		return nil, fmt.Errorf("%w: failed to record no-show: %v", ErrInternal, err)
	}

	uc.logger.Info("RecordNoShow: booking %d, customer %s, count=%d, blacklisted=%v",
		b.ID, record.CustomerEmail, record.Count, record.IsBlacklisted())

	go uc.broadcaster.Broadcast(context.Background(), domain.EventBookingUpdated, map[string]interface{}{
		"id":     b.ID,
		"status": string(domain.StatusCancelled),
		"noShow": true,
	})

	message := fmt.Sprintf("No-show recorded for %s (%d/%d)",
		b.CustomerName, record.Count, domain.BlacklistThreshold)
	if record.IsBlacklisted() {
		message = fmt.Sprintf("%s is now blacklisted (%d no-shows)", b.CustomerName, record.Count)
	}

	return &Response{
		CustomerEmail: record.CustomerEmail,
		NoShowCount:   record.Count,
		Blacklisted:   record.IsBlacklisted(),
		Message:       message,
	}, nil
}
