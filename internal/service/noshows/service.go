package noshows

import (
	"context"
	"errors"
	"fmt"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
	noshowRepo "github.com/lepotilnica/SalonBookingService/internal/infra/storage/noshow"
	"github.com/lepotilnica/SalonBookingService/internal/service/noshows/models"
)

// Service сервис для просмотра черного списка администратором
type Service struct {
	noShowRepo NoShowRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса черного списка
func NewService(noShowRepo NoShowRepository, logger Logger) *Service {
	return &Service{
		noShowRepo: noShowRepo,
		logger:     logger,
	}
}

// Check возвращает статус клиента в черном списке.
// Клиент без неявок получает нулевой счетчик, это не ошибка.
func (s *Service) Check(ctx context.Context, email string) (*models.BlacklistStatusResponse, error) {
	normalized := domain.NormalizeEmail(email)
	if normalized == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	record, err := s.noShowRepo.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, noshowRepo.ErrRecordNotFound) {
			return &models.BlacklistStatusResponse{CustomerEmail: normalized}, nil
		}
		s.logger.Error("Check: repository error for %s: %v", normalized, err)
		return nil, fmt.Errorf("%w: Check - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRecord(record), nil
}

// List возвращает всех клиентов с зафиксированными неявками
func (s *Service) List(ctx context.Context) (*models.BlacklistResponse, error) {
	records, err := s.noShowRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d no-show records", len(records))
	return models.FromDomainRecords(records), nil
}
