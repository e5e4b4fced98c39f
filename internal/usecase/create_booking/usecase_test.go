package create_booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
	"github.com/lepotilnica/SalonBookingService/internal/infra/storage/noshow"
	"github.com/lepotilnica/SalonBookingService/internal/integrations/mailer"
	"github.com/lepotilnica/SalonBookingService/pkg/types"
)

var (
	monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	sunday = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
)

type fakeBookingRepo struct {
	mu        sync.Mutex
	existing  []*domain.Booking
	created   []*domain.Booking
	nextID    int64
	listCalls int
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	b.ID = f.nextID
	f.created = append(f.created, b)
	return b, nil
}

func (f *fakeBookingRepo) ListByDate(ctx context.Context, date time.Time, includeInactive bool) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return f.existing, nil
}

type fakeServiceRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, fmt.Errorf("service %d not found", id)
	}
	return svc, nil
}

type fakeBlockedRepo struct {
	blocks []*domain.BlockedInterval
}

func (f *fakeBlockedRepo) ListByDate(ctx context.Context, date time.Time) ([]*domain.BlockedInterval, error) {
	return f.blocks, nil
}

type fakeNoShowRepo struct {
	record *domain.NoShowRecord
}

func (f *fakeNoShowRepo) GetByEmail(ctx context.Context, email string) (*domain.NoShowRecord, error) {
	if f.record == nil {
		return nil, noshow.ErrRecordNotFound
	}
	return f.record, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBroadcaster struct {
	events chan string
}

func (f *fakeBroadcaster) Broadcast(ctx context.Context, event string, data map[string]interface{}) {
	f.events <- event
}

type fakeMailer struct {
	sent chan mailer.Confirmation
}

func (f *fakeMailer) SendBookingConfirmation(c mailer.Confirmation) {
	f.sent <- c
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixture struct {
	uc          *UseCase
	bookingRepo *fakeBookingRepo
	broadcaster *fakeBroadcaster
	mailSender  *fakeMailer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	bookingRepo := &fakeBookingRepo{}
	broadcaster := &fakeBroadcaster{events: make(chan string, 16)}
	mailSender := &fakeMailer{sent: make(chan mailer.Confirmation, 4)}

	serviceRepo := &fakeServiceRepo{services: map[int64]*domain.Service{
		1: {ID: 1, Name: "Haircut", Price: 2000, DurationMinutes: 30},
		2: {ID: 2, Name: "Coloring", Price: 3500, DurationMinutes: 45},
	}}

	tokens := 0
	uc := NewUseCase(
		bookingRepo,
		serviceRepo,
		&fakeBlockedRepo{},
		&fakeNoShowRepo{},
		fakeTxManager{},
		broadcaster,
		mailSender,
		domain.DefaultWeekSchedule(),
		nopLogger{},
	).WithTokenGenerator(func() string {
		tokens++
		return fmt.Sprintf("token-%d", tokens)
	})

	return &fixture{
		uc:          uc,
		bookingRepo: bookingRepo,
		broadcaster: broadcaster,
		mailSender:  mailSender,
	}
}

func validRequest() *Request {
	return &Request{
		CustomerName:  "Anna Petrova",
		CustomerEmail: "Anna@Example.com",
		CustomerPhone: "+371 2000 0000",
		ServiceIDs:    []int64{1, 2},
		Date:          monday,
		StartTime:     types.TimeString("14:00"),
	}
}

func TestExecute_PlacesServicesBackToBack(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)

	first, second := resp.Bookings[0], resp.Bookings[1]
	assert.Equal(t, "Haircut", first.ServiceName)
	assert.Equal(t, types.TimeString("14:00"), first.StartTime)
	assert.Equal(t, 30, first.DurationMinutes)

	assert.Equal(t, "Coloring", second.ServiceName)
	assert.Equal(t, types.TimeString("14:30"), second.StartTime)
	assert.Equal(t, 45, second.DurationMinutes)

	assert.Equal(t, int64(5500), resp.TotalPriceCents)
	assert.Equal(t, 75, resp.TotalDurationMinutes)
}

func TestExecute_EachBookingGetsOwnToken(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)
	assert.NotEmpty(t, resp.Bookings[0].CancellationToken)
	assert.NotEmpty(t, resp.Bookings[1].CancellationToken)
	assert.NotEqual(t, resp.Bookings[0].CancellationToken, resp.Bookings[1].CancellationToken)
}

func TestExecute_BookingsCreatedConfirmedWithNormalizedEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	for _, b := range f.bookingRepo.created {
		assert.Equal(t, domain.StatusConfirmed, b.Status)
		assert.Equal(t, "anna@example.com", b.CustomerEmail)
	}
}

func TestExecute_EmitsEventPerBookingAndSingleConfirmation(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		select {
		case event := <-f.broadcaster.events:
			assert.Equal(t, domain.EventBookingCreated, event)
		case <-time.After(time.Second):
			t.Fatal("expected a broadcast per created booking")
		}
	}

	select {
	case c := <-f.mailSender.sent:
		assert.Equal(t, "anna@example.com", c.CustomerEmail)
		assert.Len(t, c.Lines, 2)
		assert.Equal(t, int64(5500), c.TotalPriceCents())
	case <-time.After(time.Second):
		t.Fatal("expected a confirmation email")
	}

	select {
	case <-f.mailSender.sent:
		t.Fatal("expected exactly one confirmation email")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestExecute_ClosedDay(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.Date = sunday

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSalonClosed)
	assert.Empty(t, f.bookingRepo.created)
}

func TestExecute_StartsBeforeOpening(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.StartTime = types.TimeString("08:30")

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrBeforeOpening)
}

func TestExecute_ChainExtendsPastClosing(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	// 19:45 + 30 + 45 минут выходит за 20:00
	req.StartTime = types.TimeString("19:45")

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrAfterClosing)
	assert.Empty(t, f.bookingRepo.created)
}

func TestExecute_ConflictWithExistingBooking(t *testing.T) {
	f := newFixture(t)
	// Вторая услуга (14:30-15:15) пересекает существующую бронь
	f.bookingRepo.existing = []*domain.Booking{
		{StartTime: "15:00", DurationMinutes: 30, Status: domain.StatusConfirmed},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Contains(t, err.Error(), "Coloring")
	assert.Empty(t, f.bookingRepo.created)
}

func TestExecute_ConflictWithBlockedInterval(t *testing.T) {
	f := newFixture(t)
	blocked := &fakeBlockedRepo{blocks: []*domain.BlockedInterval{
		{StartTime: "14:00", EndTime: "14:30"},
	}}
	f.uc.blockedRepo = blocked

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrBlockedTimeConflict)
	assert.Empty(t, f.bookingRepo.created)
}

func TestExecute_BlacklistedCustomerRejectedBeforeAvailabilityChecks(t *testing.T) {
	f := newFixture(t)
	f.uc.noShowRepo = &fakeNoShowRepo{record: &domain.NoShowRecord{
		CustomerEmail: "anna@example.com",
		Count:         2,
	}}

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrCustomerBlacklisted)
	assert.Zero(t, f.bookingRepo.listCalls, "availability must not be consulted for blacklisted customers")
}

func TestExecute_OneRecordedNoShowStillAllowed(t *testing.T) {
	f := newFixture(t)
	f.uc.noShowRepo = &fakeNoShowRepo{record: &domain.NoShowRecord{
		CustomerEmail: "anna@example.com",
		Count:         1,
	}}

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}

func TestExecute_UnknownService(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.ServiceIDs = []int64{99}

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_NameLengthCountsRunesNotBytes(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	// Две руны, но три байта: длина в байтах тут не годится
	req.CustomerName = "Æo"

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"empty name", func(r *Request) { r.CustomerName = "" }},
		{"one-letter name", func(r *Request) { r.CustomerName = "A" }},
		{"digits in name", func(r *Request) { r.CustomerName = "Anna123" }},
		{"bad email", func(r *Request) { r.CustomerEmail = "not-an-email" }},
		{"short phone", func(r *Request) { r.CustomerPhone = "123" }},
		{"letters in phone", func(r *Request) { r.CustomerPhone = "phone-number" }},
		{"no services", func(r *Request) { r.ServiceIDs = nil }},
		{"negative service id", func(r *Request) { r.ServiceIDs = []int64{-1} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, f.bookingRepo.created)
		})
	}
}
