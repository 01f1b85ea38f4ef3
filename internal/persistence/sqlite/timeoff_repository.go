package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/marceloc10uy/TimeTracker/internal/persistence"
)

// TimeOffRepository implements persistence.TimeOffRepository using SQLite.
type TimeOffRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewTimeOffRepository creates a new SQLite time off repository.
func NewTimeOffRepository(pool *ConnectionPool) *TimeOffRepository {
	return &TimeOffRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// ListTimeOff returns time off ranges ordered by start date. When both from
// and to are set only ranges overlapping the window are returned, where
// overlap means the range is neither entirely before nor entirely after it.
func (r *TimeOffRepository) ListTimeOff(ctx context.Context, from, to *string) ([]persistence.TimeOff, error) {
	query := `SELECT id, start_date, end_date, kind, label FROM time_off`
	var args []any
	if from != nil && to != nil {
		query += ` WHERE NOT (end_date < ? OR start_date > ?)`
		args = append(args, *from, *to)
	}
	query += ` ORDER BY start_date ASC, id ASC`

	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var ranges []persistence.TimeOff
	for rows.Next() {
		var t persistence.TimeOff
		var label sql.NullString
		if err := rows.Scan(&t.ID, &t.StartDate, &t.EndDate, &t.Kind, &label); err != nil {
			return nil, r.mapper.MapError(err)
		}
		t.Label = stringPtr(label)
		ranges = append(ranges, t)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return ranges, nil
}

// CreateTimeOff inserts a new time off range.
func (r *TimeOffRepository) CreateTimeOff(ctx context.Context, timeOff persistence.TimeOff) error {
	_, err := r.helper.Exec(ctx,
		`INSERT INTO time_off (id, start_date, end_date, kind, label) VALUES (?, ?, ?, ?, ?)`,
		timeOff.ID, timeOff.StartDate, timeOff.EndDate, timeOff.Kind, nullString(timeOff.Label),
	)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}

// DeleteTimeOff removes the time off range with the given id.
func (r *TimeOffRepository) DeleteTimeOff(ctx context.Context, id string) error {
	result, err := r.helper.Exec(ctx, `DELETE FROM time_off WHERE id = ?`, id)
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
