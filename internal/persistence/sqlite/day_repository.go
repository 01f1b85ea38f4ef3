package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/marceloc10uy/TimeTracker/internal/persistence"
)

// DayRepository implements persistence.DayRepository using SQLite.
type DayRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewDayRepository creates a new SQLite day repository.
func NewDayRepository(pool *ConnectionPool) *DayRepository {
	return &DayRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

const dayColumns = `date, start_time, end_time, break_minutes, break_start, net_minutes, notes`

// GetDay retrieves the record for one calendar date.
func (r *DayRepository) GetDay(ctx context.Context, date string) (persistence.WorkDay, error) {
	if date == "" {
		return persistence.WorkDay{}, persistence.ErrNotFound
	}

	row := r.helper.QueryRow(ctx, `SELECT `+dayColumns+` FROM work_day WHERE date = ?`, date)
	day, err := scanDay(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.WorkDay{}, persistence.ErrNotFound
		}
		return persistence.WorkDay{}, r.mapper.MapError(err)
	}
	return day, nil
}

// CreateDay inserts a new day record.
func (r *DayRepository) CreateDay(ctx context.Context, day persistence.WorkDay) error {
	if day.Date == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.helper.Exec(ctx,
		`INSERT INTO work_day (`+dayColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		day.Date,
		nullString(day.StartTime),
		nullString(day.EndTime),
		day.BreakMinutes,
		nullString(day.BreakStart),
		nullInt(day.NetMinutes),
		nullString(day.Notes),
	)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}

// UpdateDay overwrites the stored fields for an existing date.
func (r *DayRepository) UpdateDay(ctx context.Context, day persistence.WorkDay) error {
	result, err := r.helper.Exec(ctx,
		`UPDATE work_day
		 SET start_time = ?, end_time = ?, break_minutes = ?, break_start = ?, net_minutes = ?, notes = ?
		 WHERE date = ?`,
		nullString(day.StartTime),
		nullString(day.EndTime),
		day.BreakMinutes,
		nullString(day.BreakStart),
		nullInt(day.NetMinutes),
		nullString(day.Notes),
		day.Date,
	)
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

// ListDays returns stored records with from <= date <= to, ordered by date.
func (r *DayRepository) ListDays(ctx context.Context, from, to string) ([]persistence.WorkDay, error) {
	rows, err := r.helper.Query(ctx,
		`SELECT `+dayColumns+` FROM work_day WHERE date >= ? AND date <= ? ORDER BY date ASC`,
		from, to,
	)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var days []persistence.WorkDay
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return days, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDay(row rowScanner) (persistence.WorkDay, error) {
	var day persistence.WorkDay
	var startTime, endTime, breakStart, notes sql.NullString
	var netMinutes sql.NullInt64

	err := row.Scan(
		&day.Date,
		&startTime,
		&endTime,
		&day.BreakMinutes,
		&breakStart,
		&netMinutes,
		&notes,
	)
	if err != nil {
		return persistence.WorkDay{}, err
	}

	day.StartTime = stringPtr(startTime)
	day.EndTime = stringPtr(endTime)
	day.BreakStart = stringPtr(breakStart)
	day.Notes = stringPtr(notes)
	if netMinutes.Valid {
		v := int(netMinutes.Int64)
		day.NetMinutes = &v
	}
	return day, nil
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullInt(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}

func stringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}
