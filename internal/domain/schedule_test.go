package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepotilnica/SalonBookingService/pkg/types"
)

func TestDefaultWeekSchedule(t *testing.T) {
	schedule := DefaultWeekSchedule()

	tests := []struct {
		day       time.Weekday
		open      bool
		openTime  string
		closeTime string
	}{
		{time.Monday, true, "09:00", "20:00"},
		{time.Tuesday, true, "09:00", "20:00"},
		{time.Wednesday, true, "09:00", "20:00"},
		{time.Thursday, true, "09:00", "20:00"},
		{time.Friday, true, "09:00", "18:00"},
		{time.Saturday, true, "10:00", "18:00"},
		{time.Sunday, false, "", ""},
	}

	for _, tt := range tests {
		window, ok := schedule.WindowFor(tt.day)
		assert.Equal(t, tt.open, ok, "day %s", tt.day)
		if tt.open {
			assert.Equal(t, tt.openTime, window.OpenTime().String(), "day %s", tt.day)
			assert.Equal(t, tt.closeTime, window.CloseTime().String(), "day %s", tt.day)
		}
	}
}

func TestWeekSchedule_SlotsFor(t *testing.T) {
	schedule := DefaultWeekSchedule()

	// Суббота 10:00-18:00 = 16 слотов по 30 минут
	slots := schedule.SlotsFor(time.Saturday)
	require.Len(t, slots, 16)
	assert.Equal(t, types.TimeString("10:00"), slots[0])
	assert.Equal(t, types.TimeString("17:30"), slots[len(slots)-1])

	// Воскресенье закрыто
	assert.Empty(t, schedule.SlotsFor(time.Sunday))
}

func TestWeekSchedule_WindowForDate(t *testing.T) {
	schedule := DefaultWeekSchedule()

	// 2026-03-06 пятница
	friday := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
	window, ok := schedule.WindowForDate(friday)
	require.True(t, ok)
	assert.Equal(t, 18*60, window.CloseMinutes)

	// 2026-03-08 воскресенье
	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	_, ok = schedule.WindowForDate(sunday)
	assert.False(t, ok)
}

func TestBooking_Overlaps(t *testing.T) {
	b := &Booking{StartTime: "14:00", DurationMinutes: 60} // 14:00-15:00

	tests := []struct {
		name     string
		start    int
		end      int
		expected bool
	}{
		{"identical interval", 14 * 60, 15 * 60, true},
		{"partial overlap at start", 13*60 + 30, 14*60 + 30, true},
		{"partial overlap at end", 14*60 + 30, 15*60 + 30, true},
		{"contained", 14*60 + 15, 14*60 + 45, true},
		{"touching before", 13 * 60, 14 * 60, false},
		{"touching after", 15 * 60, 16 * 60, false},
		{"disjoint", 9 * 60, 10 * 60, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, b.Overlaps(tt.start, tt.end))
		})
	}
}

func TestNoShowRecord_IsBlacklisted(t *testing.T) {
	assert.False(t, (&NoShowRecord{Count: 0}).IsBlacklisted())
	assert.False(t, (&NoShowRecord{Count: 1}).IsBlacklisted())
	assert.True(t, (&NoShowRecord{Count: 2}).IsBlacklisted())
	assert.True(t, (&NoShowRecord{Count: 5}).IsBlacklisted())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "anna@example.com", NormalizeEmail("  Anna@Example.COM "))
}
