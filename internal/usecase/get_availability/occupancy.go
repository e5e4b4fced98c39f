package get_availability

import (
	"github.com/lepotilnica/SalonBookingService/internal/domain"
)

// buildOccupancy строит множество занятых минут дня из активных
// бронирований и заблокированных интервалов
func buildOccupancy(bookings []*domain.Booking, blocks []*domain.BlockedInterval) map[int]struct{} {
	occupied := make(map[int]struct{})

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		for m := b.StartMinutes(); m < b.EndMinutes(); m++ {
			occupied[m] = struct{}{}
		}
	}

	for _, blk := range blocks {
		for m := blk.StartMinutes(); m < blk.EndMinutes(); m++ {
			occupied[m] = struct{}{}
		}
	}

	return occupied
}

// slotFits проверяет, что каждая минута интервала [start, start+duration)
// лежит внутри рабочего окна и не занята.
// Слот, выходящий за время закрытия, недоступен независимо от занятости.
func slotFits(startMinutes, durationMinutes int, window domain.DayWindow, occupied map[int]struct{}) bool {
	endMinutes := startMinutes + durationMinutes

	if startMinutes < window.OpenMinutes || endMinutes > window.CloseMinutes {
		return false
	}

	for m := startMinutes; m < endMinutes; m++ {
		if _, taken := occupied[m]; taken {
			return false
		}
	}
	return true
}
