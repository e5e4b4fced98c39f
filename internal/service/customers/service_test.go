package customers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
	noteRepo "github.com/lepotilnica/SalonBookingService/internal/infra/storage/customernote"
	"github.com/lepotilnica/SalonBookingService/internal/service/customers/models"
	"github.com/lepotilnica/SalonBookingService/pkg/ptr"
	"github.com/lepotilnica/SalonBookingService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeNoteRepo struct {
	notes     []*domain.CustomerNote
	created   *domain.CustomerNote
	deleted   []int64
	deleteErr error
}

func (f *fakeNoteRepo) Create(ctx context.Context, note *domain.CustomerNote) (*domain.CustomerNote, error) {
	created := *note
	created.ID = 42
	created.CreatedAt = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	f.created = &created
	return &created, nil
}

func (f *fakeNoteRepo) ListAll(ctx context.Context) ([]*domain.CustomerNote, error) {
	return f.notes, nil
}

func (f *fakeNoteRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeNoShowRepo struct {
	records []*domain.NoShowRecord
}

func (f *fakeNoShowRepo) List(ctx context.Context) ([]*domain.NoShowRecord, error) {
	return f.records, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// Записи перечислены от свежих к старым, как их отдает репозиторий
func annaAndBenBookings() []*domain.Booking {
	return []*domain.Booking{
		{
			ID: 3, CustomerName: "Anna Berzina", CustomerEmail: "anna@example.com",
			CustomerPhone: "+371 2111 1111", ServiceName: "Coloring",
			Date:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			StartTime: types.TimeString("12:00"), Status: domain.StatusConfirmed,
			Notes: ptr.Ptr("allergic to ammonia"),
		},
		{
			ID: 2, CustomerName: "Ben", CustomerEmail: "ben@example.com",
			CustomerPhone: "+371 2222 2222", ServiceName: "Haircut",
			Date:      time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
			StartTime: types.TimeString("10:00"), Status: domain.StatusCancelled,
		},
		{
			ID: 1, CustomerName: "Anna Petrova", CustomerEmail: "Anna@Example.com",
			CustomerPhone: "+371 2000 0000", ServiceName: "Haircut",
			Date:      time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			StartTime: types.TimeString("10:00"), Status: domain.StatusConfirmed,
			Notes: ptr.Ptr("   "),
		},
	}
}

func newService(bookings *fakeBookingRepo, notes *fakeNoteRepo, noShows *fakeNoShowRepo) *Service {
	return NewService(bookings, notes, noShows, nopLogger{})
}

func TestList_GroupsByEmailKeepingLatestIdentity(t *testing.T) {
	svc := newService(&fakeBookingRepo{bookings: annaAndBenBookings()}, &fakeNoteRepo{}, &fakeNoShowRepo{})

	resp, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)

	anna := resp.Customers[0]
	assert.Equal(t, "anna@example.com", anna.Email, "mixed-case emails collapse into one customer")
	assert.Equal(t, "Anna Berzina", anna.Name, "latest booking carries the current name")
	assert.Equal(t, "+371 2111 1111", anna.Phone)
	assert.Equal(t, 2, anna.TotalBookings)
	assert.Equal(t, "2026-03-10", anna.LastVisit)

	require.Len(t, anna.BookingNotes, 1, "blank notes are dropped")
	assert.Equal(t, "allergic to ammonia", anna.BookingNotes[0].Note)
	assert.Equal(t, "Coloring", anna.BookingNotes[0].ServiceName)
	assert.Equal(t, int64(3), anna.BookingNotes[0].BookingID)

	ben := resp.Customers[1]
	assert.Equal(t, "ben@example.com", ben.Email)
	assert.Equal(t, 1, ben.TotalBookings, "cancelled bookings still count in the history")
}

func TestList_AttachesNoShowCounts(t *testing.T) {
	noShows := &fakeNoShowRepo{records: []*domain.NoShowRecord{
		{CustomerEmail: "ben@example.com", Count: 2},
	}}
	svc := newService(&fakeBookingRepo{bookings: annaAndBenBookings()}, &fakeNoteRepo{}, noShows)

	resp, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Zero(t, resp.Customers[0].NoShowCount)
	assert.Equal(t, 2, resp.Customers[1].NoShowCount)
}

func TestList_NoteOnlyCustomerListedLast(t *testing.T) {
	notes := &fakeNoteRepo{notes: []*domain.CustomerNote{
		{ID: 7, CustomerEmail: "ghost@example.com", Note: "asked about gift cards",
			Author: "admin", CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
		{ID: 8, CustomerEmail: "anna@example.com", Note: "prefers morning slots",
			Author: "admin", CreatedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
	}}
	svc := newService(&fakeBookingRepo{bookings: annaAndBenBookings()}, notes, &fakeNoShowRepo{})

	resp, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Equal(t, 3, resp.Total)

	require.Len(t, resp.Customers[0].AdminNotes, 1)
	assert.Equal(t, "prefers morning slots", resp.Customers[0].AdminNotes[0].Note)

	ghost := resp.Customers[2]
	assert.Equal(t, "ghost@example.com", ghost.Email)
	assert.Equal(t, "ghost@example.com", ghost.Name, "no bookings to take a name from")
	assert.Empty(t, ghost.LastVisit)
	assert.Zero(t, ghost.TotalBookings)
	require.Len(t, ghost.AdminNotes, 1)
}

func TestAddNote_NormalizesEmailAndTrimsNote(t *testing.T) {
	notes := &fakeNoteRepo{}
	svc := newService(&fakeBookingRepo{}, notes, &fakeNoShowRepo{})

	resp, err := svc.AddNote(context.Background(), &models.AddNoteRequest{
		CustomerEmail: "Anna@Example.com",
		Note:          "  prefers morning slots  ",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "anna@example.com", notes.created.CustomerEmail)
	assert.Equal(t, "prefers morning slots", notes.created.Note)
	assert.Equal(t, "admin", notes.created.Author)
}

func TestAddNote_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.AddNoteRequest
	}{
		{"empty email", models.AddNoteRequest{Note: "text"}},
		{"empty note", models.AddNoteRequest{CustomerEmail: "anna@example.com"}},
		{"whitespace note", models.AddNoteRequest{CustomerEmail: "anna@example.com", Note: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := &fakeNoteRepo{}
			svc := newService(&fakeBookingRepo{}, notes, &fakeNoShowRepo{})

			_, err := svc.AddNote(context.Background(), &tt.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, notes.created)
		})
	}
}

func TestDeleteNote(t *testing.T) {
	notes := &fakeNoteRepo{}
	svc := newService(&fakeBookingRepo{}, notes, &fakeNoShowRepo{})

	err := svc.DeleteNote(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, []int64{7}, notes.deleted)
}

func TestDeleteNote_NotFound(t *testing.T) {
	notes := &fakeNoteRepo{deleteErr: noteRepo.ErrNoteNotFound}
	svc := newService(&fakeBookingRepo{}, notes, &fakeNoShowRepo{})

	err := svc.DeleteNote(context.Background(), 99)

	assert.ErrorIs(t, err, ErrNoteNotFound)
}
