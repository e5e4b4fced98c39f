package noshow

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/lepotilnica/SalonBookingService/internal/domain"
	"github.com/lepotilnica/SalonBookingService/pkg/psqlbuilder"
	"github.com/lepotilnica/SalonBookingService/pkg/txmanager"
)

// Repository репозиторий счетчиков неявок с ключом по нормализованному email
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория неявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByEmail получает запись о неявках клиента.
// Email должен быть нормализован вызывающей стороной.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.NoShowRecord, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("customer_email", "count", "last_no_show_date").
		From("no_shows").
		Where(squirrel.Eq{"customer_email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - build select query: %v", ErrBuildQuery, err)
	}

	var record domain.NoShowRecord
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.CustomerEmail,
		&record.Count,
		&record.LastNoShowDate,
	)
	if err == sql.ErrNoRows {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - scan record: %v", ErrScanRow, err)
	}

	return &record, nil
}

// Increment увеличивает счетчик неявок клиента, создавая запись при
// первой неявке (upsert). Возвращает актуальную запись.
func (r *Repository) Increment(ctx context.Context, email string, date time.Time) (*domain.NoShowRecord, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("no_shows").
		Columns("customer_email", "count", "last_no_show_date").
		Values(email, 1, date).
		Suffix("ON CONFLICT (customer_email) DO UPDATE SET count = no_shows.count + 1, last_no_show_date = EXCLUDED.last_no_show_date RETURNING customer_email, count, last_no_show_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Increment - build upsert query: %v", ErrBuildQuery, err)
	}

	var record domain.NoShowRecord
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.CustomerEmail,
		&record.Count,
		&record.LastNoShowDate,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Increment - execute upsert: %v", ErrExecQuery, err)
	}

	return &record, nil
}

// List получает все записи о неявках (для предзагрузки в админке)
func (r *Repository) List(ctx context.Context) ([]*domain.NoShowRecord, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("customer_email", "count", "last_no_show_date").
		From("no_shows").
		OrderBy("last_no_show_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.NoShowRecord, 0)
	for rows.Next() {
		var record domain.NoShowRecord
		if err := rows.Scan(&record.CustomerEmail, &record.Count, &record.LastNoShowDate); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}
