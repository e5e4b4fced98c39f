package domain

import (
	"time"

	"github.com/lepotilnica/SalonBookingService/pkg/types"
)

// SlotStepMinutes is the fixed granularity of the candidate slot grid
const SlotStepMinutes = 30

// DayWindow is the open/close window of a single weekday, in minutes of day
type DayWindow struct {
	OpenMinutes  int
	CloseMinutes int
}

// OpenTime returns the opening time as "HH:MM"
func (w DayWindow) OpenTime() types.TimeString {
	t, _ := types.NewTimeStringFromMinutes(w.OpenMinutes)
	return t
}

// CloseTime returns the closing time as "HH:MM"
func (w DayWindow) CloseTime() types.TimeString {
	t, _ := types.NewTimeStringFromMinutes(w.CloseMinutes)
	return t
}

// WeekSchedule maps weekdays to their open/close windows. A weekday
// absent from the map is closed. This is the single authority for
// business hours: availability and booking validation both consult it.
type WeekSchedule map[time.Weekday]DayWindow

// DefaultWeekSchedule returns the salon's standard hours:
// Mon-Thu 09:00-20:00, Fri 09:00-18:00, Sat 10:00-18:00, Sun closed.
func DefaultWeekSchedule() WeekSchedule {
	return WeekSchedule{
		time.Monday:    {OpenMinutes: 9 * 60, CloseMinutes: 20 * 60},
		time.Tuesday:   {OpenMinutes: 9 * 60, CloseMinutes: 20 * 60},
		time.Wednesday: {OpenMinutes: 9 * 60, CloseMinutes: 20 * 60},
		time.Thursday:  {OpenMinutes: 9 * 60, CloseMinutes: 20 * 60},
		time.Friday:    {OpenMinutes: 9 * 60, CloseMinutes: 18 * 60},
		time.Saturday:  {OpenMinutes: 10 * 60, CloseMinutes: 18 * 60},
	}
}

// WindowFor returns the window for a weekday; ok is false on closed days
func (s WeekSchedule) WindowFor(day time.Weekday) (DayWindow, bool) {
	w, ok := s[day]
	return w, ok
}

// WindowForDate returns the window for the date's weekday
func (s WeekSchedule) WindowForDate(date time.Time) (DayWindow, bool) {
	return s.WindowFor(date.Weekday())
}

// IsOpen reports whether the salon is open on the given weekday
func (s WeekSchedule) IsOpen(day time.Weekday) bool {
	_, ok := s[day]
	return ok
}

// SlotsFor generates the canonical grid of candidate start times for a
// weekday, stepping by SlotStepMinutes from open to close (exclusive of
// close). A closed day yields an empty slice.
func (s WeekSchedule) SlotsFor(day time.Weekday) []types.TimeString {
	window, ok := s[day]
	if !ok {
		return []types.TimeString{}
	}

	slots := make([]types.TimeString, 0, (window.CloseMinutes-window.OpenMinutes)/SlotStepMinutes)
	for m := window.OpenMinutes; m < window.CloseMinutes; m += SlotStepMinutes {
		slot, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			break
		}
		slots = append(slots, slot)
	}
	return slots
}
