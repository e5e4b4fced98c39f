package models

import (
	"github.com/lepotilnica/SalonBookingService/internal/domain"
)

// BlacklistStatusResponse статус клиента в черном списке
type BlacklistStatusResponse struct {
	CustomerEmail string `json:"customerEmail"`
	NoShowCount   int    `json:"noShowCount"`
	Blacklisted   bool   `json:"blacklisted"`
}

// BlacklistResponse все клиенты с зафиксированными неявками
type BlacklistResponse struct {
	Records []*BlacklistStatusResponse `json:"records"`
	Total   int                        `json:"total"`
}

// FromDomainRecord конвертирует domain модель в response
func FromDomainRecord(r *domain.NoShowRecord) *BlacklistStatusResponse {
	return &BlacklistStatusResponse{
		CustomerEmail: r.CustomerEmail,
		NoShowCount:   r.Count,
		Blacklisted:   r.IsBlacklisted(),
	}
}

// FromDomainRecords конвертирует список domain моделей
func FromDomainRecords(records []*domain.NoShowRecord) *BlacklistResponse {
	result := make([]*BlacklistStatusResponse, 0, len(records))
	for _, r := range records {
		result = append(result, FromDomainRecord(r))
	}
	return &BlacklistResponse{Records: result, Total: len(result)}
}
