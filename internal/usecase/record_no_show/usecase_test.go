package record_no_show

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
	"github.com/lepotilnica/SalonBookingService/internal/infra/storage/booking"
)

type fakeBookingRepo struct {
	booking       *domain.Booking
	updatedStatus *domain.BookingStatus
	updatedInTx   bool
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, booking.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	f.updatedStatus = &status
	f.updatedInTx = inTx(ctx)
	return nil
}

type fakeNoShowRepo struct {
	count           int
	incrementErr    error
	incrementedInTx bool
}

func (f *fakeNoShowRepo) Increment(ctx context.Context, email string, date time.Time) (*domain.NoShowRecord, error) {
	if f.incrementErr != nil {
		return nil, f.incrementErr
	}
	f.count++
	f.incrementedInTx = inTx(ctx)
	return &domain.NoShowRecord{
		CustomerEmail:  email,
		Count:          f.count,
		LastNoShowDate: date,
	}, nil
}

// fakeTxManager помечает контекст на время транзакции, чтобы тесты
// могли проверить, что обе записи происходят внутри нее
type txKey struct{}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(context.WithValue(ctx, txKey{}, true))
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
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

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:            5,
		CustomerName:  "Anna Petrova",
		CustomerEmail: "anna@example.com",
		Status:        domain.StatusConfirmed,
	}
}

func newFixture(repo *fakeBookingRepo, noShows *fakeNoShowRepo) (*UseCase, *fakeBroadcaster) {
	broadcaster := &fakeBroadcaster{events: make(chan string, 4)}
	uc := NewUseCase(repo, noShows, &fakeTxManager{}, broadcaster,
		fixedTime{now: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)}, nopLogger{})
	return uc, broadcaster
}

func TestExecute_FirstNoShow(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	uc, broadcaster := newFixture(repo, &fakeNoShowRepo{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 5})

	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", resp.CustomerEmail)
	assert.Equal(t, 1, resp.NoShowCount)
	assert.False(t, resp.Blacklisted)
	assert.Equal(t, "No-show recorded for Anna Petrova (1/2)", resp.Message)

	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusCancelled, *repo.updatedStatus)

	select {
	case event := <-broadcaster.events:
		assert.Equal(t, domain.EventBookingUpdated, event)
	case <-time.After(time.Second):
		t.Fatal("expected a booking update broadcast")
	}
}

func TestExecute_SecondNoShowBlacklists(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	uc, _ := newFixture(repo, &fakeNoShowRepo{count: 1})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 5})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.NoShowCount)
	assert.True(t, resp.Blacklisted)
	assert.Equal(t, "Anna Petrova is now blacklisted (2 no-shows)", resp.Message)
}

func TestExecute_IncrementAndCancelShareTransaction(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	noShows := &fakeNoShowRepo{}
	broadcaster := &fakeBroadcaster{events: make(chan string, 4)}
	txMgr := &fakeTxManager{}
	uc := NewUseCase(repo, noShows, txMgr, broadcaster,
		fixedTime{now: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5})

	require.NoError(t, err)
	assert.Equal(t, 1, txMgr.calls)
	assert.True(t, noShows.incrementedInTx, "counter increment must run inside the transaction")
	assert.True(t, repo.updatedInTx, "status update must run inside the transaction")
}

func TestExecute_IncrementFailureLeavesBookingUntouched(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	noShows := &fakeNoShowRepo{incrementErr: errors.New("serialization failure")}
	broadcaster := &fakeBroadcaster{events: make(chan string, 4)}
	uc := NewUseCase(repo, noShows, &fakeTxManager{}, broadcaster,
		fixedTime{now: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Nil(t, repo.updatedStatus)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc, _ := newFixture(&fakeBookingRepo{}, &fakeNoShowRepo{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_AlreadyCancelledDoesNotIncrement(t *testing.T) {
	b := confirmedBooking()
	b.Status = domain.StatusCancelled
	noShows := &fakeNoShowRepo{}
	uc, _ := newFixture(&fakeBookingRepo{booking: b}, noShows)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5})

	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.Zero(t, noShows.count, "cancelled bookings must not inflate the counter")
}

func TestExecute_InvalidBookingID(t *testing.T) {
	uc, _ := newFixture(&fakeBookingRepo{}, &fakeNoShowRepo{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 0})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
