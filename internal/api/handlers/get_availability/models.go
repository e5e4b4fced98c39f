package get_availability

import (
	"github.com/lepotilnica/SalonBookingService/internal/domain"
	getAvailability "github.com/lepotilnica/SalonBookingService/internal/usecase/get_availability"
)

// BlockedSlot заблокированный интервал в ответе API
type BlockedSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date         string        `json:"date"`
	Slots        []string      `json:"slots"`
	BookedTimes  []string      `json:"bookedTimes"`
	BlockedSlots []BlockedSlot `json:"blockedSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, s.String())
	}

	booked := make([]string, 0, len(resp.BookedTimes))
	for _, b := range resp.BookedTimes {
		booked = append(booked, b.String())
	}

	blocked := make([]BlockedSlot, 0, len(resp.BlockedSlots))
	for _, b := range resp.BlockedSlots {
		blocked = append(blocked, BlockedSlot{
			StartTime: b.StartTime.String(),
			EndTime:   b.EndTime.String(),
		})
	}

	return &AvailabilityResponse{
		Date:         resp.Date.Format(domain.DateFormat),
		Slots:        slots,
		BookedTimes:  booked,
		BlockedSlots: blocked,
	}
}
