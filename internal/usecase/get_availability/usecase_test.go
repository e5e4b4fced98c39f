package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
	"github.com/lepotilnica/SalonBookingService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) ListByDate(ctx context.Context, date time.Time, includeInactive bool) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeBlockedRepo struct {
	blocks []*domain.BlockedInterval
}

func (f *fakeBlockedRepo) ListByDate(ctx context.Context, date time.Time) ([]*domain.BlockedInterval, error) {
	return f.blocks, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var (
	monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	sunday = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
)

func newUseCase(bookings []*domain.Booking, blocks []*domain.BlockedInterval) *UseCase {
	return NewUseCase(
		&fakeBookingRepo{bookings: bookings},
		&fakeBlockedRepo{blocks: blocks},
		domain.DefaultWeekSchedule(),
		nopLogger{},
	)
}

func TestExecute_ClosedDayReturnsEmptySlots(t *testing.T) {
	uc := newUseCase(nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: sunday, DurationMinutes: 30})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Empty(t, resp.BookedTimes)
	assert.Empty(t, resp.BlockedSlots)
}

func TestExecute_FullGridWhenDayIsFree(t *testing.T) {
	uc := newUseCase(nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: 30})

	require.NoError(t, err)
	// Понедельник 09:00-20:00, 22 слота по 30 минут
	require.Len(t, resp.Slots, 22)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0])
	assert.Equal(t, types.TimeString("19:30"), resp.Slots[len(resp.Slots)-1])
}

func TestExecute_BookingOccupiesItsInterval(t *testing.T) {
	uc := newUseCase([]*domain.Booking{
		{StartTime: "14:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}, nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: 30})

	require.NoError(t, err)
	assert.NotContains(t, resp.Slots, types.TimeString("14:00"))
	assert.NotContains(t, resp.Slots, types.TimeString("14:30"))
	// Получасовой слот, заканчивающийся ровно в начале записи, доступен
	assert.Contains(t, resp.Slots, types.TimeString("13:30"))
	assert.Contains(t, resp.Slots, types.TimeString("15:00"))
	assert.Equal(t, []types.TimeString{"14:00"}, resp.BookedTimes)
}

func TestExecute_CancelledBookingsDoNotOccupy(t *testing.T) {
	uc := newUseCase([]*domain.Booking{
		{StartTime: "14:00", DurationMinutes: 60, Status: domain.StatusCancelled},
	}, nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: 30})

	require.NoError(t, err)
	assert.Contains(t, resp.Slots, types.TimeString("14:00"))
	assert.Empty(t, resp.BookedTimes)
}

func TestExecute_LongDurationExcludesLateSlots(t *testing.T) {
	uc := newUseCase(nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: 90})

	require.NoError(t, err)
	// Запись на 90 минут должна закончиться к 20:00
	assert.Contains(t, resp.Slots, types.TimeString("18:30"))
	assert.NotContains(t, resp.Slots, types.TimeString("19:00"))
	assert.NotContains(t, resp.Slots, types.TimeString("19:30"))
}

func TestExecute_LongDurationSkipsSlotsThatWouldOverlap(t *testing.T) {
	uc := newUseCase([]*domain.Booking{
		{StartTime: "15:00", DurationMinutes: 30, Status: domain.StatusConfirmed},
	}, nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: 60})

	require.NoError(t, err)
	// Часовая запись с 14:30 пересекла бы бронь 15:00-15:30
	assert.Contains(t, resp.Slots, types.TimeString("14:00"))
	assert.NotContains(t, resp.Slots, types.TimeString("14:30"))
	assert.NotContains(t, resp.Slots, types.TimeString("15:00"))
	assert.Contains(t, resp.Slots, types.TimeString("15:30"))
}

func TestExecute_BlockedIntervalOccupies(t *testing.T) {
	uc := newUseCase(nil, []*domain.BlockedInterval{
		{StartTime: "10:00", EndTime: "11:00"},
	})

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: 30})

	require.NoError(t, err)
	assert.NotContains(t, resp.Slots, types.TimeString("10:00"))
	assert.NotContains(t, resp.Slots, types.TimeString("10:30"))
	assert.Contains(t, resp.Slots, types.TimeString("11:00"))
	require.Len(t, resp.BlockedSlots, 1)
	assert.Equal(t, types.TimeString("10:00"), resp.BlockedSlots[0].StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.BlockedSlots[0].EndTime)
}

func TestExecute_InvalidDuration(t *testing.T) {
	uc := newUseCase(nil, nil)

	_, err := uc.Execute(context.Background(), &Request{Date: monday, DurationMinutes: 0})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
