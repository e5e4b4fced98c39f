package blockedtime

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

var blockColumns = []string{
	"id",
	"blocked_date",
	"start_time",
	"end_time",
	"reason",
	"created_at",
}

// Repository репозиторий заблокированных интервалов времени
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает блокировку интервала
func (r *Repository) Create(ctx context.Context, block *domain.BlockedInterval) (*domain.BlockedInterval, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_times").
		Columns("blocked_date", "start_time", "end_time", "reason").
		Values(block.Date, block.StartTime, block.EndTime, block.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	block.CreatedAt = createdAt.Time
	return block, nil
}

// ListByDate получает блокировки на дату, отсортированные по времени начала
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.BlockedInterval, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From("blocked_times").
		Where(squirrel.Eq{"blocked_date": date}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlocks(rows)
}

// ListRange получает блокировки за период (для админ-календаря)
func (r *Repository) ListRange(ctx context.Context, startDate, endDate *time.Time) ([]*domain.BlockedInterval, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(blockColumns...).
		From("blocked_times").
		OrderBy("blocked_date ASC, start_time ASC")

	if startDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"blocked_date": *startDate})
	}
	if endDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"blocked_date": *endDate})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlocks(rows)
}

// Delete удаляет блокировку
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_times").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlockNotFound
	}
	return nil
}

func (r *Repository) scanBlocks(rows *sql.Rows) ([]*domain.BlockedInterval, error) {
	blocks := make([]*domain.BlockedInterval, 0)

	for rows.Next() {
		var block domain.BlockedInterval
		var createdAt sql.NullTime

		err := rows.Scan(
			&block.ID,
			&block.Date,
			&block.StartTime,
			&block.EndTime,
			&block.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBlocks - scan row: %v", ErrScanRow, err)
		}

		block.CreatedAt = createdAt.Time
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
