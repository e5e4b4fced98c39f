package models

// Overview сводные показатели текущего месяца со сравнением с прошлым
type Overview struct {
	RevenueThisMonthCents   int64 `json:"revenueThisMonthCents"`
	RevenueChangePercent    int   `json:"revenueChangePercent"`
	TotalBookingsThisMonth  int   `json:"totalBookingsThisMonth"`
	BookingsChangePercent   int   `json:"bookingsChangePercent"`
	CancellationRatePercent int   `json:"cancellationRatePercent"`
	AvgBookingValueCents    int64 `json:"avgBookingValueCents"`
	NewCustomers            int   `json:"newCustomers"`
	ReturningCustomers      int   `json:"returningCustomers"`
	TotalUniqueCustomers    int   `json:"totalUniqueCustomers"`
}

// ServiceStat позиция услуги в рейтинге по числу записей за месяц
type ServiceStat struct {
	Name         string `json:"name"`
	Bookings     int    `json:"bookings"`
	RevenueCents int64  `json:"revenueCents"`
}

// TimeSlotStat популярность часового слота за месяц
type TimeSlotStat struct {
	Time     string `json:"time"`
	Bookings int    `json:"bookings"`
}

// DayStat день недели с наибольшим числом записей за месяц
type DayStat struct {
	Day      string `json:"day"`
	Bookings int    `json:"bookings"`
}

// DailyRevenuePoint выручка за один день для графика
type DailyRevenuePoint struct {
	Date         string `json:"date"`
	RevenueCents int64  `json:"revenueCents"`
}

// TodayBooking сегодняшняя запись в сводке
type TodayBooking struct {
	BookingID     int64  `json:"bookingId"`
	StartTime     string `json:"startTime"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	ServiceName   string `json:"serviceName"`
	Status        string `json:"status"`
}

// LoyalCustomer постоянный клиент: 3+ записей в 2+ разных месяцах
type LoyalCustomer struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	TotalBookings   int    `json:"totalBookings"`
	TotalSpentCents int64  `json:"totalSpentCents"`
	DistinctMonths  int    `json:"distinctMonths"`
	LastVisit       string `json:"lastVisit"`
	FavoriteService string `json:"favoriteService"`
}

// DashboardResponse ответ аналитики для админки
type DashboardResponse struct {
	Overview          Overview             `json:"overview"`
	MostBookedService *ServiceStat         `json:"mostBookedService"`
	ServiceRanking    []*ServiceStat       `json:"serviceRanking"`
	PopularTimeSlots  []*TimeSlotStat      `json:"popularTimeSlots"`
	BusiestDay        *DayStat             `json:"busiestDay"`
	DailyRevenue      []*DailyRevenuePoint `json:"dailyRevenue"`
	TodaysBookings    []*TodayBooking      `json:"todaysBookings"`
	LoyalCustomers    []*LoyalCustomer     `json:"loyalCustomers"`
}
