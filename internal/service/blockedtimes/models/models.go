package models

import (
	"time"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
	"github.com/lepotilnica/SalonBookingService/pkg/types"
)

// Request модели

// CreateBlockRequest запрос на создание блокировки
type CreateBlockRequest struct {
	Date      string  `json:"date"`      // Формат YYYY-MM-DD
	StartTime string  `json:"startTime"` // Формат HH:MM
	EndTime   string  `json:"endTime"`   // Формат HH:MM
	Reason    *string `json:"reason,omitempty"`
}

// ListBlocksRequest запрос на получение блокировок за период
type ListBlocksRequest struct {
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// Response модели

// BlockResponse блокировка в ответе API
type BlockResponse struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Reason    *string `json:"reason,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// BlockListResponse список блокировок
type BlockListResponse struct {
	BlockedTimes []*BlockResponse `json:"blockedTimes"`
	Total        int              `json:"total"`
}

// FromDomainBlock конвертирует domain модель в response
func FromDomainBlock(b *domain.BlockedInterval) *BlockResponse {
	return &BlockResponse{
		ID:        b.ID,
		Date:      b.Date.Format(domain.DateFormat),
		StartTime: string(b.StartTime),
		EndTime:   string(b.EndTime),
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainBlocks конвертирует список domain моделей
func FromDomainBlocks(blocks []*domain.BlockedInterval) *BlockListResponse {
	result := make([]*BlockResponse, 0, len(blocks))
	for _, b := range blocks {
		result = append(result, FromDomainBlock(b))
	}
	return &BlockListResponse{BlockedTimes: result, Total: len(result)}
}

// ToDomainBlock конвертирует request в domain модель
func (r *CreateBlockRequest) ToDomainBlock() (*domain.BlockedInterval, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &domain.BlockedInterval{
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Reason:    r.Reason,
	}, nil
}
