package domain

import (
	"time"

	"github.com/lepotilnica/SalonBookingService/pkg/types"
)

// BlockedInterval represents admin-blocked time with no associated
// customer. Blocks count against bookings but may freely overlap each
// other.
type BlockedInterval struct {
	ID        int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Reason    *string
	CreatedAt time.Time
}

// StartMinutes returns the block start as minutes since midnight
func (b *BlockedInterval) StartMinutes() int {
	return b.StartTime.Minutes()
}

// EndMinutes returns the block end, exclusive
func (b *BlockedInterval) EndMinutes() int {
	return b.EndTime.Minutes()
}

// Overlaps reports whether the block overlaps the given half-open interval
func (b *BlockedInterval) Overlaps(startMinutes, endMinutes int) bool {
	return b.StartMinutes() < endMinutes && startMinutes < b.EndMinutes()
}
