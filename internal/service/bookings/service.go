package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
	bookingRepo "github.com/lepotilnica/SalonBookingService/internal/infra/storage/booking"
	"github.com/lepotilnica/SalonBookingService/internal/service/bookings/models"
)

// Service сервис административных операций над бронированиями
type Service struct {
	bookingRepo BookingRepository
	broadcaster EventBroadcaster
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	broadcaster EventBroadcaster,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// List получает список бронирований с фильтрацией по периоду и статусу
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings, status=%v, includeInactive=%v", req.Status, req.IncludeInactive)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookings(bookings), nil
}

// UpdateStatus обновляет статус бронирования
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d, status=%s", id, req.Status)

	status, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	updated, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to reload booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	go s.broadcaster.Broadcast(context.Background(), domain.EventBookingUpdated, map[string]interface{}{
		"id":     id,
		"status": string(status),
	})

	s.logger.Info("UpdateStatus: booking id=%d updated to %s", id, status)
	return models.FromDomainBooking(updated), nil
}

// Delete удаляет бронирование
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: booking id=%d", id)

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	go s.broadcaster.Broadcast(context.Background(), domain.EventBookingDeleted, map[string]interface{}{
		"id": id,
	})

	s.logger.Info("Delete: booking id=%d deleted", id)
	return nil
}
