// Package storage keeps the harvest ledger in SQLite: one row per farm
// session and one row per harvest. It records what was collected, it does not
// save the world. Uses the pure-Go modernc.org/sqlite driver to avoid CGO.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for the ledger.
type Store struct {
	db *sql.DB
}

// Harvest is a single pickup record.
type Harvest struct {
	ID        int64
	SessionID string
	Item      string
	Amount    int
	X, Y      int
	Day       int
	CreatedAt time.Time
}

// SessionSummary describes one farm session and what it produced.
type SessionSummary struct {
	ID        string
	Player    string
	StartedAt time.Time
	EndedAt   time.Time // zero while running or after a crash
	Days      int
	Ticks     int64
	Harvests  int
	Items     int // total amount collected
}

// ItemStats aggregates every harvest of one item.
type ItemStats struct {
	Item          string
	Harvests      int
	Total         int
	Best          int
	LastHarvested time.Time
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
		CREATE TABLE IF NOT EXISTS farm_sessions (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL DEFAULT '',
			started_at DATETIME NOT NULL,
			ended_at DATETIME,
			days INTEGER NOT NULL DEFAULT 1,
			ticks INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_farm_sessions_started ON farm_sessions(started_at DESC);

		CREATE TABLE IF NOT EXISTS harvests (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			item TEXT NOT NULL,
			amount INTEGER NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			day INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_harvests_session ON harvests(session_id);
		CREATE INDEX IF NOT EXISTS idx_harvests_item ON harvests(item);
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

// BeginSession records the start of a farm session.
func (s *Store) BeginSession(id, player string, startedAt time.Time) error {
	_, err := s.db.Exec(
		"INSERT INTO farm_sessions (id, player, started_at) VALUES (?, ?, ?)",
		id, player, formatTime(startedAt),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot begin session: %w", err)
	}
	return nil
}

// EndSession stamps the end time and final counters of a session.
func (s *Store) EndSession(id string, endedAt time.Time, days int, ticks uint64) error {
	res, err := s.db.Exec(
		"UPDATE farm_sessions SET ended_at = ?, days = ?, ticks = ? WHERE id = ?",
		formatTime(endedAt), days, int64(ticks), id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot end session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: unknown session %q", id)
	}
	return nil
}

// RecordHarvest stores one pickup. Returns the ID of the inserted record.
func (s *Store) RecordHarvest(h Harvest) (int64, error) {
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	result, err := s.db.Exec(
		`INSERT INTO harvests (session_id, item, amount, x, y, day, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		h.SessionID, h.Item, h.Amount, h.X, h.Y, h.Day, formatTime(h.CreatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record harvest: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentHarvests returns the newest harvests across all sessions.
func (s *Store) RecentHarvests(limit int) ([]Harvest, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, session_id, item, amount, x, y, day, created_at
		 FROM harvests
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query harvests: %w", err)
	}
	return scanHarvests(rows)
}

// SessionHarvests returns every harvest of one session, oldest first.
func (s *Store) SessionHarvests(sessionID string) ([]Harvest, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, item, amount, x, y, day, created_at
		 FROM harvests
		 WHERE session_id = ?
		 ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query harvests: %w", err)
	}
	return scanHarvests(rows)
}

func scanHarvests(rows *sql.Rows) ([]Harvest, error) {
	defer rows.Close()

	var out []Harvest
	for rows.Next() {
		var h Harvest
		var createdAt any
		if err := rows.Scan(&h.ID, &h.SessionID, &h.Item, &h.Amount, &h.X, &h.Y, &h.Day, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		h.CreatedAt = parseTime(createdAt)
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// Session returns the summary of one session, or nil if it does not exist.
func (s *Store) Session(id string) (*SessionSummary, error) {
	row := s.db.QueryRow(sessionQuery+" WHERE s.id = ? GROUP BY s.id", id)
	sum, err := scanSession(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return sum, nil
}

// RecentSessions returns the newest sessions with their harvest totals.
func (s *Store) RecentSessions(limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		sessionQuery+" GROUP BY s.id ORDER BY s.started_at DESC, s.rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		sum, err := scanSession(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, *sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

const sessionQuery = `
	SELECT s.id, s.player, s.started_at, s.ended_at, s.days, s.ticks,
	       COUNT(h.id), COALESCE(SUM(h.amount), 0)
	FROM farm_sessions s
	LEFT JOIN harvests h ON h.session_id = s.id`

func scanSession(scan func(dest ...any) error) (*SessionSummary, error) {
	var sum SessionSummary
	var startedAt, endedAt any
	if err := scan(&sum.ID, &sum.Player, &startedAt, &endedAt, &sum.Days, &sum.Ticks, &sum.Harvests, &sum.Items); err != nil {
		return nil, err
	}
	sum.StartedAt = parseTime(startedAt)
	sum.EndedAt = parseTime(endedAt)
	return &sum, nil
}

// ItemTotals aggregates the ledger per item, most collected first.
func (s *Store) ItemTotals() ([]ItemStats, error) {
	rows, err := s.db.Query(
		`SELECT item, COUNT(*), SUM(amount), MAX(amount), MAX(created_at)
		 FROM harvests
		 GROUP BY item
		 ORDER BY SUM(amount) DESC, item`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get item totals: %w", err)
	}
	defer rows.Close()

	var out []ItemStats
	for rows.Next() {
		var st ItemStats
		var last any
		if err := rows.Scan(&st.Item, &st.Harvests, &st.Total, &st.Best, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastHarvested = parseTime(last)
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// Clear deletes the whole ledger.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM harvests; DELETE FROM farm_sessions;"); err != nil {
		return fmt.Errorf("storage: cannot clear ledger: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime handles both time.Time and string values, depending on how the
// driver surfaces DATETIME columns.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v.UTC()
	case string:
		if parsed, err := time.Parse(timeLayout, v); err == nil {
			return parsed
		}
	case []byte:
		if parsed, err := time.Parse(timeLayout, string(v)); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
