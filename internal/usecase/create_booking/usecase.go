package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
	"github.com/lepotilnica/SalonBookingService/internal/infra/storage/noshow"
	"github.com/lepotilnica/SalonBookingService/internal/integrations/mailer"
	"github.com/lepotilnica/SalonBookingService/pkg/ptr"
	"github.com/lepotilnica/SalonBookingService/pkg/types"
)

// plannedItem услуга с вычисленным интервалом размещения
type plannedItem struct {
	service      *domain.Service
	startMinutes int
	endMinutes   int
}

// UseCase use case для создания записи из одной или нескольких услуг
type UseCase struct {
	bookingRepo BookingRepository
	serviceRepo ServiceRepository
	blockedRepo BlockedTimeRepository
	noShowRepo  NoShowRepository
	txManager   TransactionManager
	broadcaster EventBroadcaster
	mailSender  ConfirmationSender
	schedule    domain.WeekSchedule
	tokenGen    TokenGenerator
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	blockedRepo BlockedTimeRepository,
	noShowRepo NoShowRepository,
	txManager TransactionManager,
	broadcaster EventBroadcaster,
	mailSender ConfirmationSender,
	schedule domain.WeekSchedule,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		serviceRepo: serviceRepo,
		blockedRepo: blockedRepo,
		noShowRepo:  noShowRepo,
		txManager:   txManager,
		broadcaster: broadcaster,
		mailSender:  mailSender,
		schedule:    schedule,
		tokenGen:    uuid.NewString,
		logger:      logger,
	}
}

// WithTokenGenerator заменяет генератор токенов отмены (для тестов)
func (uc *UseCase) WithTokenGenerator(gen TokenGenerator) *UseCase {
	uc.tokenGen = gen
	return uc
}

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: date=%s, start=%s, services=%v",
		req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	email := domain.NormalizeEmail(req.CustomerEmail)

	// 2. Черный список проверяется до любых проверок доступности
	if err := uc.checkBlacklist(ctx, email); err != nil {
		return nil, err
	}

	// 3. Загружаем услуги в порядке перечисления
	services, err := uc.loadServices(ctx, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	// 4. Последовательное размещение в пределах рабочего окна
	items, err := uc.planItems(req, services)
	if err != nil {
		return nil, err
	}

	// 5. Проверка конфликтов и вставка атомарны: строки даты блокируются
	// FOR UPDATE внутри сериализуемой транзакции
	var created []*domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created = created[:0]

		if err := uc.checkConflicts(txCtx, req, items); err != nil {
			return err
		}

		for _, item := range items {
			booking, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
				CustomerName:      req.CustomerName,
				CustomerEmail:     email,
				CustomerPhone:     req.CustomerPhone,
				ServiceID:         item.service.ID,
				Date:              req.Date,
				StartTime:         mustTimeString(item.startMinutes),
				DurationMinutes:   item.service.DurationMinutes,
				Status:            domain.StatusConfirmed,
				ServiceName:       item.service.Name,
				ServicePrice:      item.service.Price,
				CancellationToken: ptr.Ptr(uc.tokenGen()),
				Notes:             req.Notes,
			})
			if err != nil {
				return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
			}
			created = append(created, booking)
		}
		return nil
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: transaction failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: created %d bookings for %s on %s",
		len(created), email, req.Date.Format(domain.DateFormat))

	// 6. События и письмо не должны задерживать ответ клиенту
	go uc.notify(created)

	return buildResponse(created), nil
}

// checkBlacklist отклоняет клиентов с двумя и более неявками
func (uc *UseCase) checkBlacklist(ctx context.Context, email string) error {
	record, err := uc.noShowRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, noshow.ErrRecordNotFound) {
			return nil
		}
		uc.logger.Error("CreateBooking: failed to check blacklist: %v", err)
		return fmt.Errorf("%w: failed to check blacklist: %v", ErrInternal, err)
	}

	if record.IsBlacklisted() {
		uc.logger.Warn("CreateBooking: blacklisted customer %s (%d no-shows)", email, record.Count)
		return fmt.Errorf("%w: %s has %d recorded no-shows", ErrCustomerBlacklisted, email, record.Count)
	}
	return nil
}

func (uc *UseCase) loadServices(ctx context.Context, ids []int64) ([]*domain.Service, error) {
	services := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		svc, err := uc.serviceRepo.GetByID(ctx, id)
		if err != nil {
			uc.logger.Warn("CreateBooking: service %d lookup failed: %v", id, err)
			return nil, fmt.Errorf("%w: service %d", ErrServiceNotFound, id)
		}
		services = append(services, svc)
	}
	return services, nil
}

// planItems размещает услуги встык начиная со StartTime и проверяет
// границы рабочего окна
func (uc *UseCase) planItems(req *Request, services []*domain.Service) ([]plannedItem, error) {
	window, ok := uc.schedule.WindowForDate(req.Date)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSalonClosed, req.Date.Format(domain.DateFormat))
	}

	cursor := req.StartTime.Minutes()
	if cursor < window.OpenMinutes {
		return nil, fmt.Errorf("%w: %s opens at %s",
			ErrBeforeOpening, req.Date.Format(domain.DateFormat), window.OpenTime())
	}

	items := make([]plannedItem, 0, len(services))
	for _, svc := range services {
		end := cursor + svc.DurationMinutes
		if end > window.CloseMinutes {
			return nil, fmt.Errorf("%w: %q would end at %s, salon closes at %s",
				ErrAfterClosing, svc.Name, mustTimeString(end), window.CloseTime())
		}
		items = append(items, plannedItem{service: svc, startMinutes: cursor, endMinutes: end})
		cursor = end
	}
	return items, nil
}

// checkConflicts сверяет план с активными бронированиями и блокировками даты
func (uc *UseCase) checkConflicts(ctx context.Context, req *Request, items []plannedItem) error {
	existing, err := uc.bookingRepo.ListByDate(ctx, req.Date, false)
	if err != nil {
		return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}
	blocks, err := uc.blockedRepo.ListByDate(ctx, req.Date)
	if err != nil {
		return fmt.Errorf("%w: failed to get blocked times: %v", ErrInternal, err)
	}

	for _, item := range items {
		for _, b := range existing {
			if b.Overlaps(item.startMinutes, item.endMinutes) {
				return fmt.Errorf("%w: %q at %s overlaps an existing booking",
					ErrSlotConflict, item.service.Name, mustTimeString(item.startMinutes))
			}
		}
		for _, blk := range blocks {
			if blk.Overlaps(item.startMinutes, item.endMinutes) {
				return fmt.Errorf("%w: %q at %s overlaps a blocked interval",
					ErrBlockedTimeConflict, item.service.Name, mustTimeString(item.startMinutes))
			}
		}
	}
	return nil
}

// notify отправляет событие на каждое бронирование и одно письмо на заявку.
// Выполняется вне запроса, ошибки глушатся интеграциями.
func (uc *UseCase) notify(created []*domain.Booking) {
	ctx := context.Background()

	lines := make([]mailer.BookingLine, 0, len(created))
	for _, b := range created {
		uc.broadcaster.Broadcast(ctx, domain.EventBookingCreated, map[string]interface{}{
			"id":        b.ID,
			"date":      b.Date.Format(domain.DateFormat),
			"startTime": string(b.StartTime),
			"service":   b.ServiceName,
		})

		token := ""
		if b.CancellationToken != nil {
			token = *b.CancellationToken
		}
		lines = append(lines, mailer.BookingLine{
			ServiceName:       b.ServiceName,
			StartTime:         string(b.StartTime),
			DurationMinutes:   b.DurationMinutes,
			PriceCents:        b.ServicePrice,
			CancellationToken: token,
		})
	}

	if len(created) > 0 {
		uc.mailSender.SendBookingConfirmation(mailer.Confirmation{
			CustomerName:  created[0].CustomerName,
			CustomerEmail: created[0].CustomerEmail,
			Date:          created[0].Date,
			Lines:         lines,
		})
	}
}

func buildResponse(created []*domain.Booking) *Response {
	resp := &Response{Bookings: make([]BookedService, 0, len(created))}
	for _, b := range created {
		token := ""
		if b.CancellationToken != nil {
			token = *b.CancellationToken
		}
		resp.Bookings = append(resp.Bookings, BookedService{
			ID:                b.ID,
			ServiceID:         b.ServiceID,
			ServiceName:       b.ServiceName,
			Date:              b.Date,
			StartTime:         b.StartTime,
			DurationMinutes:   b.DurationMinutes,
			PriceCents:        b.ServicePrice,
			Status:            string(b.Status),
			CancellationToken: token,
		})
		resp.TotalPriceCents += b.ServicePrice
		resp.TotalDurationMinutes += b.DurationMinutes
	}
	return resp
}

// mustTimeString переводит минуты дня в "HH:MM".
// Границы уже проверены планировщиком.
func mustTimeString(minutes int) types.TimeString {
	ts, err := types.NewTimeStringFromMinutes(minutes)
	if err != nil {
		return types.TimeString("00:00")
	}
	return ts
}
