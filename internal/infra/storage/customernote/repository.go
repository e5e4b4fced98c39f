package customernote

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
	"github.com/lepotilnica/SalonBookingService/pkg/psqlbuilder"
	"github.com/lepotilnica/SalonBookingService/pkg/txmanager"
)

// Repository репозиторий админских заметок о клиентах
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заметок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет заметку и возвращает ее с присвоенным id.
// Email должен быть нормализован вызывающей стороной.
func (r *Repository) Create(ctx context.Context, note *domain.CustomerNote) (*domain.CustomerNote, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customer_notes").
		Columns("customer_email", "note", "author").
		Values(note.CustomerEmail, note.Note, note.Author).
		Suffix("RETURNING id, customer_email, note, author, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var created domain.CustomerNote
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&created.ID,
		&created.CustomerEmail,
		&created.Note,
		&created.Author,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return &created, nil
}

// ListAll получает все заметки, новые первыми
func (r *Repository) ListAll(ctx context.Context) ([]*domain.CustomerNote, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "customer_email", "note", "author", "created_at").
		From("customer_notes").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	notes := make([]*domain.CustomerNote, 0)
	for rows.Next() {
		var note domain.CustomerNote
		if err := rows.Scan(&note.ID, &note.CustomerEmail, &note.Note, &note.Author, &note.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListAll - scan row: %v", ErrScanRow, err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAll - rows error: %v", ErrScanRow, err)
	}

	return notes, nil
}

// Delete удаляет заметку по id
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("customer_notes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute query: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}
