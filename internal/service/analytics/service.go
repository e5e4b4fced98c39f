package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
	"github.com/lepotilnica/SalonBookingService/internal/service/analytics/models"
)

const rankingLimit = 5

// Service сервис аналитики для админ-панели.
// Агрегация выполняется в памяти: объем данных салона позволяет.
type Service struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса аналитики.
// location определяет границы "текущего месяца" и "сегодня".
func NewService(bookingRepo BookingRepository, timeProvider TimeProvider, location *time.Location, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		timeProvider: timeProvider,
		location:     location,
		logger:       logger,
	}
}

// GetDashboard собирает сводку: выручка и динамика к прошлому месяцу,
// рейтинг услуг, загрузка по часам и дням, записи на сегодня,
// постоянные клиенты.
func (s *Service) GetDashboard(ctx context.Context) (*models.DashboardResponse, error) {
	now := s.timeProvider.Now().In(s.location)

	// Даты записей хранятся как DATE и сканируются полуночью UTC,
	// поэтому границы месяцев строятся в UTC от салонного "сейчас"
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	lastMonthStart := monthStart.AddDate(0, -1, 0)
	lastMonthEnd := monthStart.AddDate(0, 0, -1)

	thisMonth, err := s.bookingRepo.ListWithFilter(ctx, domain.BookingsFilter{
		StartDate:       &monthStart,
		EndDate:         &monthEnd,
		IncludeInactive: true,
	})
	if err != nil {
		s.logger.Error("GetDashboard: failed to list this month's bookings: %v", err)
		return nil, fmt.Errorf("%w: GetDashboard - repository error: %v", ErrInternal, err)
	}

	lastMonth, err := s.bookingRepo.ListWithFilter(ctx, domain.BookingsFilter{
		StartDate:       &lastMonthStart,
		EndDate:         &lastMonthEnd,
		IncludeInactive: true,
	})
	if err != nil {
		s.logger.Error("GetDashboard: failed to list last month's bookings: %v", err)
		return nil, fmt.Errorf("%w: GetDashboard - repository error: %v", ErrInternal, err)
	}

	// Все активные записи за всю историю, для анализа клиентской базы
	allActive, err := s.bookingRepo.ListWithFilter(ctx, domain.BookingsFilter{})
	if err != nil {
		s.logger.Error("GetDashboard: failed to list all bookings: %v", err)
		return nil, fmt.Errorf("%w: GetDashboard - repository error: %v", ErrInternal, err)
	}

	confirmedThisMonth := activeOnly(thisMonth)
	confirmedLastMonth := activeOnly(lastMonth)

	var revenueThisMonth, revenueLastMonth int64
	for _, b := range confirmedThisMonth {
		revenueThisMonth += b.ServicePrice
	}
	for _, b := range confirmedLastMonth {
		revenueLastMonth += b.ServicePrice
	}

	cancelledThisMonth := len(thisMonth) - len(confirmedThisMonth)
	cancellationRate := 0
	if len(thisMonth) > 0 {
		cancellationRate = int(math.Round(float64(cancelledThisMonth) / float64(len(thisMonth)) * 100))
	}

	var avgBookingValue int64
	if len(confirmedThisMonth) > 0 {
		avgBookingValue = revenueThisMonth / int64(len(confirmedThisMonth))
	}

	firstBooking := firstBookingDates(allActive)
	newCustomers, returningCustomers := splitNewReturning(confirmedThisMonth, firstBooking, monthStart)

	serviceRanking := rankServices(confirmedThisMonth)
	var mostBooked *models.ServiceStat
	if len(serviceRanking) > 0 {
		mostBooked = serviceRanking[0]
	}
	if len(serviceRanking) > rankingLimit {
		serviceRanking = serviceRanking[:rankingLimit]
	}

	response := &models.DashboardResponse{
		Overview: models.Overview{
			RevenueThisMonthCents:   revenueThisMonth,
			RevenueChangePercent:    percentChange(revenueThisMonth, revenueLastMonth),
			TotalBookingsThisMonth:  len(confirmedThisMonth),
			BookingsChangePercent:   percentChange(int64(len(confirmedThisMonth)), int64(len(confirmedLastMonth))),
			CancellationRatePercent: cancellationRate,
			AvgBookingValueCents:    avgBookingValue,
			NewCustomers:            newCustomers,
			ReturningCustomers:      returningCustomers,
			TotalUniqueCustomers:    len(firstBooking),
		},
		MostBookedService: mostBooked,
		ServiceRanking:    serviceRanking,
		PopularTimeSlots:  popularTimeSlots(confirmedThisMonth),
		BusiestDay:        busiestDay(confirmedThisMonth),
		DailyRevenue:      dailyRevenue(confirmedThisMonth),
		TodaysBookings:    todaysBookings(confirmedThisMonth, now),
		LoyalCustomers:    loyalCustomers(allActive),
	}

	s.logger.Info("GetDashboard: %d bookings this month, %d loyal customers",
		len(confirmedThisMonth), len(response.LoyalCustomers))
	return response, nil
}

func activeOnly(bookings []*domain.Booking) []*domain.Booking {
	active := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.IsActive() {
			active = append(active, b)
		}
	}
	return active
}

// percentChange округленный процент изменения к предыдущему периоду.
// Рост с нуля считается как +100%.
func percentChange(current, previous int64) int {
	if previous > 0 {
		return int(math.Round(float64(current-previous) / float64(previous) * 100))
	}
	if current > 0 {
		return 100
	}
	return 0
}

func firstBookingDates(bookings []*domain.Booking) map[string]time.Time {
	first := make(map[string]time.Time, len(bookings))
	for _, b := range bookings {
		if existing, ok := first[b.CustomerEmail]; !ok || b.Date.Before(existing) {
			first[b.CustomerEmail] = b.Date
		}
	}
	return first
}

func splitNewReturning(confirmed []*domain.Booking, firstBooking map[string]time.Time, monthStart time.Time) (int, int) {
	newCustomers, returning := 0, 0
	seen := make(map[string]bool)
	for _, b := range confirmed {
		if seen[b.CustomerEmail] {
			continue
		}
		seen[b.CustomerEmail] = true

		if first, ok := firstBooking[b.CustomerEmail]; ok && !first.Before(monthStart) {
			newCustomers++
		} else {
			returning++
		}
	}
	return newCustomers, returning
}

func rankServices(confirmed []*domain.Booking) []*models.ServiceStat {
	byName := make(map[string]*models.ServiceStat)
	for _, b := range confirmed {
		stat, ok := byName[b.ServiceName]
		if !ok {
			stat = &models.ServiceStat{Name: b.ServiceName}
			byName[b.ServiceName] = stat
		}
		stat.Bookings++
		stat.RevenueCents += b.ServicePrice
	}

	ranking := make([]*models.ServiceStat, 0, len(byName))
	for _, stat := range byName {
		ranking = append(ranking, stat)
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Bookings != ranking[j].Bookings {
			return ranking[i].Bookings > ranking[j].Bookings
		}
		return ranking[i].Name < ranking[j].Name
	})
	return ranking
}

func popularTimeSlots(confirmed []*domain.Booking) []*models.TimeSlotStat {
	byHour := make(map[string]int)
	for _, b := range confirmed {
		hour := fmt.Sprintf("%02d:00", b.StartMinutes()/60)
		byHour[hour]++
	}

	slots := make([]*models.TimeSlotStat, 0, len(byHour))
	for hour, count := range byHour {
		slots = append(slots, &models.TimeSlotStat{Time: hour, Bookings: count})
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Bookings != slots[j].Bookings {
			return slots[i].Bookings > slots[j].Bookings
		}
		return slots[i].Time < slots[j].Time
	})
	if len(slots) > rankingLimit {
		slots = slots[:rankingLimit]
	}
	return slots
}

func busiestDay(confirmed []*domain.Booking) *models.DayStat {
	byDay := make(map[string]int)
	for _, b := range confirmed {
		byDay[b.Date.Weekday().String()]++
	}

	var busiest *models.DayStat
	for day, count := range byDay {
		if busiest == nil || count > busiest.Bookings ||
			(count == busiest.Bookings && day < busiest.Day) {
			busiest = &models.DayStat{Day: day, Bookings: count}
		}
	}
	return busiest
}

func dailyRevenue(confirmed []*domain.Booking) []*models.DailyRevenuePoint {
	byDate := make(map[string]int64)
	for _, b := range confirmed {
		byDate[b.Date.Format(domain.DateFormat)] += b.ServicePrice
	}

	points := make([]*models.DailyRevenuePoint, 0, len(byDate))
	for date, revenue := range byDate {
		points = append(points, &models.DailyRevenuePoint{Date: date, RevenueCents: revenue})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}

func todaysBookings(confirmed []*domain.Booking, now time.Time) []*models.TodayBooking {
	today := now.Format(domain.DateFormat)

	result := make([]*models.TodayBooking, 0)
	for _, b := range confirmed {
		if b.Date.Format(domain.DateFormat) != today {
			continue
		}
		result = append(result, &models.TodayBooking{
			BookingID:     b.ID,
			StartTime:     b.StartTime.String(),
			CustomerName:  b.CustomerName,
			CustomerEmail: b.CustomerEmail,
			ServiceName:   b.ServiceName,
			Status:        string(b.Status),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime < result[j].StartTime
	})
	return result
}

type customerStat struct {
	name          string
	email         string
	phone         string
	totalBookings int
	totalSpent    int64
	months        map[string]bool
	lastVisit     time.Time
	serviceCounts map[string]int
}

// loyalCustomers выбирает клиентов с 3+ записями в 2+ разных месяцах.
// Имя и телефон берутся из самой свежей записи клиента.
func loyalCustomers(allActive []*domain.Booking) []*models.LoyalCustomer {
	sorted := make([]*domain.Booking, len(allActive))
	copy(sorted, allActive)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].StartMinutes() < sorted[j].StartMinutes()
	})

	stats := make(map[string]*customerStat)
	for _, b := range sorted {
		stat, ok := stats[b.CustomerEmail]
		if !ok {
			stat = &customerStat{
				email:         b.CustomerEmail,
				months:        make(map[string]bool),
				serviceCounts: make(map[string]int),
				lastVisit:     b.Date,
			}
			stats[b.CustomerEmail] = stat
		}
		stat.totalBookings++
		stat.totalSpent += b.ServicePrice
		stat.months[b.Date.Format("2006-01")] = true
		stat.serviceCounts[b.ServiceName]++
		if !b.Date.Before(stat.lastVisit) {
			stat.lastVisit = b.Date
		}
		stat.name = b.CustomerName
		if b.CustomerPhone != "" {
			stat.phone = b.CustomerPhone
		}
	}

	loyal := make([]*models.LoyalCustomer, 0)
	for _, stat := range stats {
		if stat.totalBookings < 3 || len(stat.months) < 2 {
			continue
		}
		loyal = append(loyal, &models.LoyalCustomer{
			Name:            stat.name,
			Email:           stat.email,
			Phone:           stat.phone,
			TotalBookings:   stat.totalBookings,
			TotalSpentCents: stat.totalSpent,
			DistinctMonths:  len(stat.months),
			LastVisit:       stat.lastVisit.Format(domain.DateFormat),
			FavoriteService: favoriteService(stat.serviceCounts),
		})
	}
	sort.Slice(loyal, func(i, j int) bool {
		if loyal[i].TotalBookings != loyal[j].TotalBookings {
			return loyal[i].TotalBookings > loyal[j].TotalBookings
		}
		return loyal[i].Email < loyal[j].Email
	})
	return loyal
}

func favoriteService(counts map[string]int) string {
	favorite, best := "", 0
	for name, count := range counts {
		if count > best || (count == best && name < favorite) {
			favorite, best = name, count
		}
	}
	return favorite
}
