package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/marceloc10uy/TimeTracker/internal/persistence"
)

// RecurringHolidayRepository implements persistence.RecurringHolidayRepository
// using SQLite.
type RecurringHolidayRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewRecurringHolidayRepository creates a new SQLite recurring holiday repository.
func NewRecurringHolidayRepository(pool *ConnectionPool) *RecurringHolidayRepository {
	return &RecurringHolidayRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// ListRecurring returns all recurring holidays ordered by month and day.
func (r *RecurringHolidayRepository) ListRecurring(ctx context.Context) ([]persistence.RecurringHoliday, error) {
	rows, err := r.helper.Query(ctx,
		`SELECT id, month, day, label FROM recurring_holiday ORDER BY month ASC, day ASC`)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var holidays []persistence.RecurringHoliday
	for rows.Next() {
		var h persistence.RecurringHoliday
		var label sql.NullString
		if err := rows.Scan(&h.ID, &h.Month, &h.Day, &label); err != nil {
			return nil, r.mapper.MapError(err)
		}
		h.Label = stringPtr(label)
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return holidays, nil
}

// UpsertRecurring inserts a recurring holiday. When the (month, day) pair
// already exists only the label is replaced, keeping the stored id stable.
func (r *RecurringHolidayRepository) UpsertRecurring(ctx context.Context, holiday persistence.RecurringHoliday) error {
	_, err := r.helper.Exec(ctx,
		`INSERT INTO recurring_holiday (id, month, day, label) VALUES (?, ?, ?, ?)
		 ON CONFLICT (month, day) DO UPDATE SET label = excluded.label`,
		holiday.ID, holiday.Month, holiday.Day, nullString(holiday.Label),
	)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}

// DeleteRecurring removes the recurring holiday with the given id.
func (r *RecurringHolidayRepository) DeleteRecurring(ctx context.Context, id string) error {
	result, err := r.helper.Exec(ctx, `DELETE FROM recurring_holiday WHERE id = ?`, id)
	if err != nil {
		return r.mapper.MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}
