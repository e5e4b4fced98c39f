package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
	"github.com/lepotilnica/SalonBookingService/pkg/types"
)

// 15 марта 2026, середина месяца
var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

var thisMonthStart = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

type fakeBookingRepo struct {
	thisMonth []*domain.Booking
	lastMonth []*domain.Booking
	all       []*domain.Booking
}

func (f *fakeBookingRepo) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	switch {
	case filter.StartDate == nil:
		return f.all, nil
	case filter.StartDate.Equal(thisMonthStart):
		return f.thisMonth, nil
	default:
		return f.lastMonth, nil
	}
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newService(repo *fakeBookingRepo) *Service {
	return NewService(repo, fixedTime{now: now}, time.UTC, nopLogger{})
}

func booking(id int64, email, name, service string, price int64, date string, start types.TimeString) *domain.Booking {
	d, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		panic(err)
	}
	return &domain.Booking{
		ID:              id,
		CustomerName:    name,
		CustomerEmail:   email,
		CustomerPhone:   "+371 2000 0000",
		Date:            d,
		StartTime:       start,
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
		ServiceName:     service,
		ServicePrice:    price,
	}
}

func cancelled(b *domain.Booking) *domain.Booking {
	b.Status = domain.StatusCancelled
	return b
}

func TestGetDashboard_Overview(t *testing.T) {
	lastMonth := []*domain.Booking{
		booking(1, "anna@example.com", "Anna", "Haircut", 2000, "2026-02-10", "10:00"),
		booking(2, "anna@example.com", "Anna", "Haircut", 2000, "2026-02-20", "11:00"),
	}
	thisMonth := []*domain.Booking{
		booking(3, "anna@example.com", "Anna", "Haircut", 2000, "2026-03-05", "10:00"),
		booking(4, "ben@example.com", "Ben", "Coloring", 3500, "2026-03-10", "12:00"),
		booking(5, "ben@example.com", "Ben", "Haircut", 2000, "2026-03-12", "14:00"),
		cancelled(booking(6, "carl@example.com", "Carl", "Haircut", 2000, "2026-03-12", "15:00")),
	}
	repo := &fakeBookingRepo{
		thisMonth: thisMonth,
		lastMonth: lastMonth,
		all:       append(lastMonth, thisMonth[:3]...),
	}

	resp, err := newService(repo).GetDashboard(context.Background())

	require.NoError(t, err)
	o := resp.Overview
	assert.Equal(t, int64(7500), o.RevenueThisMonthCents)
	assert.Equal(t, 88, o.RevenueChangePercent, "7500 vs 4000 last month")
	assert.Equal(t, 3, o.TotalBookingsThisMonth)
	assert.Equal(t, 50, o.BookingsChangePercent)
	assert.Equal(t, 25, o.CancellationRatePercent, "1 of 4 bookings cancelled")
	assert.Equal(t, int64(2500), o.AvgBookingValueCents)
	assert.Equal(t, 1, o.NewCustomers, "ben first booked this month")
	assert.Equal(t, 1, o.ReturningCustomers, "anna first booked in february")
	assert.Equal(t, 2, o.TotalUniqueCustomers)
}

func TestGetDashboard_EmptyHistory(t *testing.T) {
	resp, err := newService(&fakeBookingRepo{}).GetDashboard(context.Background())

	require.NoError(t, err)
	assert.Zero(t, resp.Overview.RevenueThisMonthCents)
	assert.Zero(t, resp.Overview.RevenueChangePercent)
	assert.Zero(t, resp.Overview.CancellationRatePercent)
	assert.Nil(t, resp.MostBookedService)
	assert.Nil(t, resp.BusiestDay)
	assert.Empty(t, resp.ServiceRanking)
	assert.Empty(t, resp.PopularTimeSlots)
	assert.Empty(t, resp.DailyRevenue)
	assert.Empty(t, resp.TodaysBookings)
	assert.Empty(t, resp.LoyalCustomers)
}

func TestGetDashboard_GrowthFromZeroIsHundredPercent(t *testing.T) {
	repo := &fakeBookingRepo{
		thisMonth: []*domain.Booking{
			booking(1, "anna@example.com", "Anna", "Haircut", 2000, "2026-03-05", "10:00"),
		},
	}
	repo.all = repo.thisMonth

	resp, err := newService(repo).GetDashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 100, resp.Overview.RevenueChangePercent)
	assert.Equal(t, 100, resp.Overview.BookingsChangePercent)
}

func TestGetDashboard_ServiceRankingByBookingCount(t *testing.T) {
	repo := &fakeBookingRepo{
		thisMonth: []*domain.Booking{
			booking(1, "a@example.com", "A", "Haircut", 2000, "2026-03-02", "10:00"),
			booking(2, "b@example.com", "B", "Haircut", 2000, "2026-03-03", "10:00"),
			booking(3, "c@example.com", "C", "Coloring", 3500, "2026-03-04", "10:00"),
			cancelled(booking(4, "d@example.com", "D", "Manicure", 1500, "2026-03-05", "10:00")),
		},
	}
	repo.all = repo.thisMonth[:3]

	resp, err := newService(repo).GetDashboard(context.Background())

	require.NoError(t, err)
	require.Len(t, resp.ServiceRanking, 2, "cancelled bookings are not ranked")
	assert.Equal(t, "Haircut", resp.ServiceRanking[0].Name)
	assert.Equal(t, 2, resp.ServiceRanking[0].Bookings)
	assert.Equal(t, int64(4000), resp.ServiceRanking[0].RevenueCents)
	assert.Equal(t, resp.ServiceRanking[0], resp.MostBookedService)
}

func TestGetDashboard_PopularTimeSlotsGroupedByHour(t *testing.T) {
	repo := &fakeBookingRepo{
		thisMonth: []*domain.Booking{
			booking(1, "a@example.com", "A", "Haircut", 2000, "2026-03-02", "10:00"),
			booking(2, "b@example.com", "B", "Haircut", 2000, "2026-03-03", "10:30"),
			booking(3, "c@example.com", "C", "Haircut", 2000, "2026-03-04", "14:00"),
		},
	}
	repo.all = repo.thisMonth

	resp, err := newService(repo).GetDashboard(context.Background())

	require.NoError(t, err)
	require.Len(t, resp.PopularTimeSlots, 2)
	assert.Equal(t, "10:00", resp.PopularTimeSlots[0].Time)
	assert.Equal(t, 2, resp.PopularTimeSlots[0].Bookings)
	assert.Equal(t, "14:00", resp.PopularTimeSlots[1].Time)
}

func TestGetDashboard_DailyRevenueSortedByDate(t *testing.T) {
	repo := &fakeBookingRepo{
		thisMonth: []*domain.Booking{
			booking(1, "a@example.com", "A", "Haircut", 2000, "2026-03-10", "10:00"),
			booking(2, "b@example.com", "B", "Haircut", 2000, "2026-03-02", "10:00"),
			booking(3, "c@example.com", "C", "Coloring", 3500, "2026-03-02", "12:00"),
		},
	}
	repo.all = repo.thisMonth

	resp, err := newService(repo).GetDashboard(context.Background())

	require.NoError(t, err)
	require.Len(t, resp.DailyRevenue, 2)
	assert.Equal(t, "2026-03-02", resp.DailyRevenue[0].Date)
	assert.Equal(t, int64(5500), resp.DailyRevenue[0].RevenueCents)
	assert.Equal(t, "2026-03-10", resp.DailyRevenue[1].Date)
}

func TestGetDashboard_TodaysBookingsSortedByTime(t *testing.T) {
	repo := &fakeBookingRepo{
		thisMonth: []*domain.Booking{
			booking(1, "a@example.com", "A", "Haircut", 2000, "2026-03-15", "16:00"),
			booking(2, "b@example.com", "B", "Coloring", 3500, "2026-03-15", "09:00"),
			booking(3, "c@example.com", "C", "Haircut", 2000, "2026-03-16", "10:00"),
		},
	}
	repo.all = repo.thisMonth

	resp, err := newService(repo).GetDashboard(context.Background())

	require.NoError(t, err)
	require.Len(t, resp.TodaysBookings, 2)
	assert.Equal(t, "09:00", resp.TodaysBookings[0].StartTime)
	assert.Equal(t, "B", resp.TodaysBookings[0].CustomerName)
	assert.Equal(t, "16:00", resp.TodaysBookings[1].StartTime)
}

func TestGetDashboard_LoyalCustomersNeedThreeBookingsInTwoMonths(t *testing.T) {
	repo := &fakeBookingRepo{
		all: []*domain.Booking{
			// Анна: 3 записи в двух месяцах, имя меняется
			booking(1, "anna@example.com", "Anna Petrova", "Haircut", 2000, "2026-01-10", "10:00"),
			booking(2, "anna@example.com", "Anna Petrova", "Haircut", 2000, "2026-02-10", "10:00"),
			booking(3, "anna@example.com", "Anna Berzina", "Coloring", 3500, "2026-03-05", "10:00"),
			// Бен: 3 записи, но все в одном месяце
			booking(4, "ben@example.com", "Ben", "Haircut", 2000, "2026-03-02", "10:00"),
			booking(5, "ben@example.com", "Ben", "Haircut", 2000, "2026-03-03", "10:00"),
			booking(6, "ben@example.com", "Ben", "Haircut", 2000, "2026-03-04", "10:00"),
		},
	}

	resp, err := newService(repo).GetDashboard(context.Background())

	require.NoError(t, err)
	require.Len(t, resp.LoyalCustomers, 1)
	loyal := resp.LoyalCustomers[0]
	assert.Equal(t, "anna@example.com", loyal.Email)
	assert.Equal(t, "Anna Berzina", loyal.Name, "latest booking carries the current name")
	assert.Equal(t, 3, loyal.TotalBookings)
	assert.Equal(t, int64(7500), loyal.TotalSpentCents)
	assert.Equal(t, 3, loyal.DistinctMonths)
	assert.Equal(t, "2026-03-05", loyal.LastVisit)
	assert.Equal(t, "Haircut", loyal.FavoriteService, "booked twice versus coloring once")
}
