package catalog

import (
	"context"
	"fmt"

	"github.com/lepotilnica/SalonBookingService/internal/service/catalog/models"
)

// Service сервис каталога услуг
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// GetCatalog получает каталог услуг, сгруппированный по категориям
func (s *Service) GetCatalog(ctx context.Context) (*models.CatalogResponse, error) {
	categories, err := s.serviceRepo.ListCategories(ctx)
	if err != nil {
		s.logger.Error("GetCatalog: failed to get categories: %v", err)
		return nil, fmt.Errorf("%w: GetCatalog - repository error: %v", ErrInternal, err)
	}

	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		s.logger.Error("GetCatalog: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: GetCatalog - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCatalog: %d categories, %d services", len(categories), len(services))
	return models.BuildCatalog(categories, services), nil
}
