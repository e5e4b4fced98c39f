package models

import (
	"github.com/lepotilnica/SalonBookingService/internal/domain"
)

// ServiceResponse услуга каталога в ответе API
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	PriceCents      int64   `json:"priceCents"`
	DurationMinutes int     `json:"durationMinutes"`
	IsPopular       bool    `json:"isPopular"`
}

// CategoryResponse категория с её услугами
type CategoryResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Description *string            `json:"description,omitempty"`
	Services    []*ServiceResponse `json:"services"`
}

// CatalogResponse каталог услуг, сгруппированный по категориям
type CatalogResponse struct {
	Categories []*CategoryResponse `json:"categories"`
}

// FromDomainService конвертирует domain модель в response
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		PriceCents:      s.Price,
		DurationMinutes: s.DurationMinutes,
		IsPopular:       s.IsPopular,
	}
}

// BuildCatalog группирует услуги по категориям.
// Категории без услуг сохраняются с пустым списком.
func BuildCatalog(categories []*domain.Category, services []*domain.Service) *CatalogResponse {
	byCategory := make(map[int64][]*ServiceResponse)
	for _, s := range services {
		byCategory[s.CategoryID] = append(byCategory[s.CategoryID], FromDomainService(s))
	}

	result := make([]*CategoryResponse, 0, len(categories))
	for _, c := range categories {
		svcs := byCategory[c.ID]
		if svcs == nil {
			svcs = make([]*ServiceResponse, 0)
		}
		result = append(result, &CategoryResponse{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Services:    svcs,
		})
	}

	return &CatalogResponse{Categories: result}
}
