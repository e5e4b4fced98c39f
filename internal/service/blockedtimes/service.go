package blockedtimes

import (
	"context"
	"errors"
	"fmt"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
	blockRepo "github.com/lepotilnica/SalonBookingService/internal/infra/storage/blockedtime"
	"github.com/lepotilnica/SalonBookingService/internal/service/blockedtimes/models"
)

// Service сервис для управления блокировками времени администратором
type Service struct {
	blockedRepo BlockedTimeRepository
	broadcaster EventBroadcaster
	logger      Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(
	blockedRepo BlockedTimeRepository,
	broadcaster EventBroadcaster,
	logger Logger,
) *Service {
	return &Service{
		blockedRepo: blockedRepo,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// List получает блокировки за период
func (s *Service) List(ctx context.Context, req *models.ListBlocksRequest) (*models.BlockListResponse, error) {
	s.logger.Info("List: fetching blocked times")

	blocks, err := s.blockedRepo.ListRange(ctx, req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d blocked times", len(blocks))
	return models.FromDomainBlocks(blocks), nil
}

// Create создает блокировку интервала времени
func (s *Service) Create(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	s.logger.Info("Create: date=%s, %s-%s", req.Date, req.StartTime, req.EndTime)

	block, err := req.ToDomainBlock()
	if err != nil {
		s.logger.Warn("Create: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if block.StartMinutes() >= block.EndMinutes() {
		s.logger.Warn("Create: start %s is not before end %s", block.StartTime, block.EndTime)
		return nil, fmt.Errorf("%w: start time must be before end time", ErrInvalidTimeRange)
	}

	if block.Reason != nil && len(*block.Reason) > domain.MaxBlockReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxBlockReasonLength)
	}

	created, err := s.blockedRepo.Create(ctx, block)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	go s.broadcaster.Broadcast(context.Background(), domain.EventBlockedTimeCreated, map[string]interface{}{
		"id":        created.ID,
		"date":      created.Date.Format(domain.DateFormat),
		"startTime": string(created.StartTime),
		"endTime":   string(created.EndTime),
	})

	s.logger.Info("Create: blocked time id=%d created", created.ID)
	return models.FromDomainBlock(created), nil
}

// Delete удаляет блокировку
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: blocked time id=%d", id)

	if err := s.blockedRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("Delete: blocked time id=%d not found", id)
			return ErrBlockNotFound
		}
		s.logger.Error("Delete: repository error for blocked time id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	go s.broadcaster.Broadcast(context.Background(), domain.EventBlockedTimeDeleted, map[string]interface{}{
		"id": id,
	})

	s.logger.Info("Delete: blocked time id=%d deleted", id)
	return nil
}
