package customers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
	noteRepo "github.com/lepotilnica/SalonBookingService/internal/infra/storage/customernote"
	"github.com/lepotilnica/SalonBookingService/internal/service/customers/models"
)

// noteAuthor подпись автора админских заметок
const noteAuthor = "admin"

// Service сервис клиентской базы для админ-панели: история записей,
// сгруппированная по email, неявки и заметки администратора
type Service struct {
	bookingRepo BookingRepository
	noteRepo    NoteRepository
	noShowRepo  NoShowRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса клиентской базы
func NewService(bookingRepo BookingRepository, noteRepo NoteRepository, noShowRepo NoShowRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		noteRepo:    noteRepo,
		noShowRepo:  noShowRepo,
		logger:      logger,
	}
}

// List возвращает всех клиентов, сгруппированных по email: сводку по
// записям (включая отмененные), счетчик неявок и заметки. Клиент,
// у которого остались только админские заметки, тоже попадает в список.
func (s *Service) List(ctx context.Context) (*models.CustomerListResponse, error) {
	bookings, err := s.bookingRepo.ListWithFilter(ctx, domain.BookingsFilter{IncludeInactive: true})
	if err != nil {
		s.logger.Error("List: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	notes, err := s.noteRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("List: failed to list notes: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	noShows, err := s.noShowRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: failed to list no-shows: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	noShowCounts := make(map[string]int, len(noShows))
	for _, record := range noShows {
		noShowCounts[domain.NormalizeEmail(record.CustomerEmail)] = record.Count
	}

	// Записи приходят от свежих к старым, поэтому первая встреченная
	// запись клиента несет его актуальные имя и телефон
	byEmail := make(map[string]*models.CustomerResponse)
	for _, b := range bookings {
		email := domain.NormalizeEmail(b.CustomerEmail)
		customer, ok := byEmail[email]
		if !ok {
			customer = &models.CustomerResponse{
				Email:        email,
				Name:         b.CustomerName,
				Phone:        b.CustomerPhone,
				LastVisit:    b.Date.Format(domain.DateFormat),
				NoShowCount:  noShowCounts[email],
				BookingNotes: make([]*models.BookingNote, 0),
				AdminNotes:   make([]*models.AdminNote, 0),
			}
			byEmail[email] = customer
		}
		customer.TotalBookings++

		if b.Notes != nil && strings.TrimSpace(*b.Notes) != "" {
			customer.BookingNotes = append(customer.BookingNotes, &models.BookingNote{
				Note:        *b.Notes,
				Date:        b.Date.Format(domain.DateFormat),
				ServiceName: b.ServiceName,
				BookingID:   b.ID,
			})
		}
	}

	for _, note := range notes {
		email := domain.NormalizeEmail(note.CustomerEmail)
		adminNote := &models.AdminNote{
			ID:        note.ID,
			Note:      note.Note,
			CreatedAt: note.CreatedAt.Format(time.RFC3339),
		}
		if customer, ok := byEmail[email]; ok {
			customer.AdminNotes = append(customer.AdminNotes, adminNote)
			continue
		}
		byEmail[email] = &models.CustomerResponse{
			Email:        email,
			Name:         email,
			NoShowCount:  noShowCounts[email],
			BookingNotes: make([]*models.BookingNote, 0),
			AdminNotes:   []*models.AdminNote{adminNote},
		}
	}

	customers := make([]*models.CustomerResponse, 0, len(byEmail))
	for _, customer := range byEmail {
		customers = append(customers, customer)
	}
	// Свежие визиты первыми, клиенты без визитов в конце
	sort.Slice(customers, func(i, j int) bool {
		a, b := customers[i], customers[j]
		if (a.LastVisit == "") != (b.LastVisit == "") {
			return a.LastVisit != ""
		}
		if a.LastVisit != b.LastVisit {
			return a.LastVisit > b.LastVisit
		}
		return a.Email < b.Email
	})

	s.logger.Info("List: %d customers from %d bookings", len(customers), len(bookings))
	return &models.CustomerListResponse{Customers: customers, Total: len(customers)}, nil
}

// AddNote сохраняет админскую заметку о клиенте
func (s *Service) AddNote(ctx context.Context, req *models.AddNoteRequest) (*models.NoteResponse, error) {
	email := domain.NormalizeEmail(req.CustomerEmail)
	text := strings.TrimSpace(req.Note)
	if email == "" || text == "" {
		return nil, fmt.Errorf("%w: customerEmail and note are required", ErrInvalidInput)
	}

	created, err := s.noteRepo.Create(ctx, &domain.CustomerNote{
		CustomerEmail: email,
		Note:          text,
		Author:        noteAuthor,
	})
	if err != nil {
		s.logger.Error("AddNote: failed to create note for %s: %v", email, err)
		return nil, fmt.Errorf("%w: AddNote - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddNote: note %d created for %s", created.ID, email)
	return models.FromDomainNote(created), nil
}

// DeleteNote удаляет админскую заметку по id
func (s *Service) DeleteNote(ctx context.Context, id int64) error {
	if err := s.noteRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, noteRepo.ErrNoteNotFound) {
			return fmt.Errorf("%w: note %d", ErrNoteNotFound, id)
		}
		s.logger.Error("DeleteNote: failed to delete note %d: %v", id, err)
		return fmt.Errorf("%w: DeleteNote - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteNote: note %d deleted", id)
	return nil
}
