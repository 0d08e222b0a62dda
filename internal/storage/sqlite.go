// Package storage persists finished flights in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for flight records.
type Store struct {
	db *sql.DB
}

// Flight is one finished run.
type Flight struct {
	ID        uuid.UUID
	Seed      int64
	Distance  int // meters flown
	Coins     int
	Ticks     int
	Cause     string // what dealt the final heart: "ground", "bat", ...
	CreatedAt time.Time
}

// Stats aggregates every recorded flight.
type Stats struct {
	Flights      int
	BestDistance int
	BestCoins    int
	AvgDistance  float64
	TotalCoins   int64
	LastFlown    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS flights (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			distance INTEGER NOT NULL,
			coins INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			cause TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_flights_distance ON flights(distance DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveFlight records a finished flight. A zero ID is replaced with a fresh
// UUID, which is returned.
func (s *Store) SaveFlight(f Flight) (uuid.UUID, error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	_, err := s.db.Exec(
		"INSERT INTO flights (id, seed, distance, coins, ticks, cause) VALUES (?, ?, ?, ?, ?, ?)",
		f.ID.String(), f.Seed, f.Distance, f.Coins, f.Ticks, f.Cause,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("storage: cannot save flight: %w", err)
	}
	return f.ID, nil
}

// TopFlights returns the longest flights, best first.
func (s *Store) TopFlights(limit int) ([]Flight, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, seed, distance, coins, ticks, cause, created_at
		 FROM flights
		 ORDER BY distance DESC, coins DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query flights: %w", err)
	}
	defer rows.Close()

	var out []Flight
	for rows.Next() {
		var (
			f         Flight
			id        string
			createdAt any
		)
		if err := rows.Scan(&id, &f.Seed, &f.Distance, &f.Coins, &f.Ticks, &f.Cause, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if f.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("storage: bad flight id %q: %w", id, err)
		}
		f.CreatedAt = parseTime(createdAt)
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// FlightByID looks up one flight. It returns (nil, nil) when no flight matches.
func (s *Store) FlightByID(id uuid.UUID) (*Flight, error) {
	var (
		f         Flight
		createdAt any
	)
	err := s.db.QueryRow(
		`SELECT seed, distance, coins, ticks, cause, created_at FROM flights WHERE id = ?`,
		id.String(),
	).Scan(&f.Seed, &f.Distance, &f.Coins, &f.Ticks, &f.Cause, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query flight: %w", err)
	}
	f.ID = id
	f.CreatedAt = parseTime(createdAt)
	return &f, nil
}

// BestDistance returns the longest recorded flight, or 0 when none exist.
func (s *Store) BestDistance() (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(distance) FROM flights").Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: cannot query best distance: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

// Stats aggregates all flights.
func (s *Store) Stats() (*Stats, error) {
	st := &Stats{}
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(distance), 0), COALESCE(MAX(coins), 0),
		        COALESCE(AVG(distance), 0), COALESCE(SUM(coins), 0)
		 FROM flights`,
	).Scan(&st.Flights, &st.BestDistance, &st.BestCoins, &st.AvgDistance, &st.TotalCoins)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var last any
	err = s.db.QueryRow(`SELECT created_at FROM flights ORDER BY created_at DESC LIMIT 1`).Scan(&last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last flight: %w", err)
	}
	if err == nil {
		st.LastFlown = parseTime(last)
	}
	return st, nil
}

// Clear deletes every flight.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM flights"); err != nil {
		return fmt.Errorf("storage: cannot clear flights: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
