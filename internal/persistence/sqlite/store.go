// Package sqlite implements the persistence repositories on top of the
// cgo-free modernc.org/sqlite driver.
package sqlite

// Store bundles the SQLite-backed repositories sharing one connection pool.
type Store struct {
	pool *ConnectionPool

	Days     *DayRepository
	Settings *SettingsRepository
	Holidays *RecurringHolidayRepository
	TimeOff  *TimeOffRepository
}

// Open creates a Store for the database at dsn. Call Migrate before using
// the repositories.
func Open(dsn string) (*Store, error) {
	pool, err := NewConnectionPool(dsn)
	if err != nil {
		return nil, err
	}

	return &Store{
		pool:     pool,
		Days:     NewDayRepository(pool),
		Settings: NewSettingsRepository(pool),
		Holidays: NewRecurringHolidayRepository(pool),
		TimeOff:  NewTimeOffRepository(pool),
	}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.pool.Close()
}
