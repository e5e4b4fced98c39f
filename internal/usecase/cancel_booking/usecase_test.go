package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
	"github.com/lepotilnica/SalonBookingService/internal/infra/storage/booking"
	"github.com/lepotilnica/SalonBookingService/pkg/types"
)

const validToken = "9f8b6c2e-1d3a-4f5b-8c7d-2e4a6b8c0d1e"

type fakeBookingRepo struct {
	booking       *domain.Booking
	getCalls      int
	updatedStatus *domain.BookingStatus
}

func (f *fakeBookingRepo) GetByToken(ctx context.Context, token string) (*domain.Booking, error) {
	f.getCalls++
	if f.booking == nil {
		return nil, booking.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	f.updatedStatus = &status
	return nil
}

type fakeBroadcaster struct {
	events chan string
}

func (f *fakeBroadcaster) Broadcast(ctx context.Context, event string, data map[string]interface{}) {
	f.events <- event
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

var now = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func futureBooking(hoursAhead int) *domain.Booking {
	start := now.Add(time.Duration(hoursAhead) * time.Hour)
	return &domain.Booking{
		ID:              7,
		CustomerName:    "Anna Petrova",
		ServiceName:     "Haircut",
		Date:            time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:       types.NewTimeString(start),
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	}
}

func newFixture(repo *fakeBookingRepo) (*UseCase, *fakeBroadcaster) {
	broadcaster := &fakeBroadcaster{events: make(chan string, 4)}
	uc := NewUseCase(repo, broadcaster, fixedTime{now: now}, time.UTC, nopLogger{})
	return uc, broadcaster
}

func TestExecute_MalformedTokenRejectedWithoutLookup(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc, _ := newFixture(repo)

	tests := []string{
		"",
		"not-a-uuid",
		"9f8b6c2e1d3a4f5b8c7d2e4a6b8c0d1e",              // без дефисов
		"9f8b6c2e-1d3a-1f5b-8c7d-2e4a6b8c0d1e",          // не v4
		"9f8b6c2e-1d3a-4f5b-0c7d-2e4a6b8c0d1e",          // неверный variant
		"zf8b6c2e-1d3a-4f5b-8c7d-2e4a6b8c0d1e",          // не hex
		"9f8b6c2e-1d3a-4f5b-8c7d-2e4a6b8c0d1e-deadbeef", // лишний хвост
	}

	for _, token := range tests {
		_, err := uc.Execute(context.Background(), &Request{Token: token})
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}

	assert.Zero(t, repo.getCalls, "storage must not be queried for malformed tokens")
}

func TestExecute_UnknownToken(t *testing.T) {
	uc, _ := newFixture(&fakeBookingRepo{})

	_, err := uc.Execute(context.Background(), &Request{Token: validToken})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_AlreadyCancelled(t *testing.T) {
	b := futureBooking(48)
	b.Status = domain.StatusCancelled
	repo := &fakeBookingRepo{booking: b}
	uc, _ := newFixture(repo)

	_, err := uc.Execute(context.Background(), &Request{Token: validToken})

	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.Nil(t, repo.updatedStatus)
}

func TestExecute_TooLateToCancel(t *testing.T) {
	repo := &fakeBookingRepo{booking: futureBooking(23)}
	uc, _ := newFixture(repo)

	_, err := uc.Execute(context.Background(), &Request{Token: validToken})

	assert.ErrorIs(t, err, ErrTooLateToCancel)
	assert.Nil(t, repo.updatedStatus)
}

func TestExecute_CancelsWithEnoughNotice(t *testing.T) {
	repo := &fakeBookingRepo{booking: futureBooking(48)}
	uc, broadcaster := newFixture(repo)

	resp, err := uc.Execute(context.Background(), &Request{Token: validToken})

	require.NoError(t, err)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusCancelled, *repo.updatedStatus)
	assert.Equal(t, int64(7), resp.BookingID)
	assert.Equal(t, "Haircut", resp.ServiceName)

	select {
	case event := <-broadcaster.events:
		assert.Equal(t, domain.EventBookingUpdated, event)
	case <-time.After(time.Second):
		t.Fatal("expected a booking update broadcast")
	}
}

func TestExecute_NoticeAnchoredToSalonTimezone(t *testing.T) {
	// Дата из БД сканируется как полночь UTC, но салон живет в UTC+2:
	// запись на завтра 13:00 по салонному времени начинается через 23
	// часа, хотя отсчет от полуночи UTC дал бы 25
	salonTZ := time.FixedZone("EET", 2*3600)
	repo := &fakeBookingRepo{booking: &domain.Booking{
		ID:              7,
		CustomerName:    "Anna Petrova",
		ServiceName:     "Haircut",
		Date:            time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("13:00"),
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	}}
	broadcaster := &fakeBroadcaster{events: make(chan string, 4)}
	uc := NewUseCase(repo, broadcaster, fixedTime{now: now}, salonTZ, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Token: validToken})

	assert.ErrorIs(t, err, ErrTooLateToCancel)
	assert.Nil(t, repo.updatedStatus)
}

func TestExecute_ExactlyAtNoticeBoundary(t *testing.T) {
	repo := &fakeBookingRepo{booking: futureBooking(24)}
	uc, _ := newFixture(repo)

	_, err := uc.Execute(context.Background(), &Request{Token: validToken})

	assert.NoError(t, err, "exactly 24 hours of notice is still allowed")
}
