package get_availability

import (
	"context"
	"fmt"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
	"github.com/lepotilnica/SalonBookingService/pkg/types"
)

// UseCase use case для получения доступных времен начала записи
type UseCase struct {
	bookingRepo BookingRepository
	blockedRepo BlockedTimeRepository
	schedule    domain.WeekSchedule
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	blockedRepo BlockedTimeRepository,
	schedule domain.WeekSchedule,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		blockedRepo: blockedRepo,
		schedule:    schedule,
		logger:      logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: date=%s, duration=%d",
		req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Выходной день дает пустой список слотов, не ошибку
	window, ok := uc.schedule.WindowForDate(req.Date)
	if !ok {
		uc.logger.Info("GetAvailability: salon is closed on %s", req.Date.Format(domain.DateFormat))
		return &Response{
			Date:         req.Date,
			Slots:        []types.TimeString{},
			BookedTimes:  []types.TimeString{},
			BlockedSlots: []BlockedRange{},
		}, nil
	}

	// 3. Активные бронирования и блокировки на дату
	bookings, err := uc.bookingRepo.ListByDate(ctx, req.Date, false)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	blocks, err := uc.blockedRepo.ListByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get blocked times: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked times: %v", ErrInternal, err)
	}

	// 4. Множество занятых минут
	occupied := buildOccupancy(bookings, blocks)

	// 5. Фильтруем сетку кандидатов по занятости и длительности
	slots := make([]types.TimeString, 0)
	for _, candidate := range uc.schedule.SlotsFor(req.Date.Weekday()) {
		if slotFits(candidate.Minutes(), req.DurationMinutes, window, occupied) {
			slots = append(slots, candidate)
		}
	}

	// 6. Сырые данные для отображения
	bookedTimes := make([]types.TimeString, 0, len(bookings))
	for _, b := range bookings {
		if b.IsActive() {
			bookedTimes = append(bookedTimes, b.StartTime)
		}
	}

	blockedSlots := make([]BlockedRange, 0, len(blocks))
	for _, blk := range blocks {
		blockedSlots = append(blockedSlots, BlockedRange{
			StartTime: blk.StartTime,
			EndTime:   blk.EndTime,
		})
	}

	uc.logger.Info("GetAvailability: %d of %d slots available on %s",
		len(slots), len(uc.schedule.SlotsFor(req.Date.Weekday())), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:         req.Date,
		Slots:        slots,
		BookedTimes:  bookedTimes,
		BlockedSlots: blockedSlots,
	}, nil
}
