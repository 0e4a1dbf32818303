// Package history keeps finished sessions in a SQLite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/pthm-cable/flock/game"
)

// Entry is a stored session.
type Entry struct {
	ID         uuid.UUID `db:"id"`
	Seed       int64     `db:"seed"`
	Fed        int       `db:"fed"`
	Survived   float64   `db:"survived"`
	SheepEaten int       `db:"sheep_eaten"`
	PeakWolves int       `db:"peak_wolves"`
	Ticks      int64     `db:"ticks"`
	EndedAtNs  int64     `db:"ended_at"`
}

// EndedAt returns when the session ended.
func (e Entry) EndedAt() time.Time {
	return time.Unix(0, e.EndedAtNs)
}

// Summary renders the entry for the HUD, e.g.
// "ate 3 cabbages, survived 1m30s, 2 minutes ago".
func (e Entry) Summary() string {
	survived := time.Duration(e.Survived * float64(time.Second)).Round(time.Second)
	return fmt.Sprintf("ate %s, survived %s, %s",
		english.Plural(e.Fed, "cabbage", ""),
		survived,
		humanize.Time(e.EndedAt()),
	)
}

// Store is a session history backed by SQLite.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate history: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		fed INTEGER NOT NULL,
		survived REAL NOT NULL,
		sheep_eaten INTEGER NOT NULL,
		peak_wolves INTEGER NOT NULL,
		ticks INTEGER NOT NULL,
		ended_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_ended ON sessions(ended_at);
	CREATE INDEX IF NOT EXISTS idx_sessions_score ON sessions(fed, survived);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Record stores a finished session.
func (s *Store) Record(ctx context.Context, r game.Result) error {
	e := Entry{
		ID:         r.Session,
		Seed:       r.Seed,
		Fed:        r.Fed,
		Survived:   float64(r.Survived),
		SheepEaten: r.SheepEaten,
		PeakWolves: r.PeakWolves,
		Ticks:      int64(r.Ticks),
		EndedAtNs:  r.EndedAt.UnixNano(),
	}
	_, err := s.conn.NamedExecContext(ctx, `INSERT INTO sessions
		(id, seed, fed, survived, sheep_eaten, peak_wolves, ticks, ended_at)
		VALUES (:id, :seed, :fed, :survived, :sheep_eaten, :peak_wolves, :ticks, :ended_at)`, e)
	if err != nil {
		return fmt.Errorf("record session %s: %w", r.Session, err)
	}
	return nil
}

// Best returns the session that fed the most cabbages, breaking ties by
// survival time. ok is false when no session is stored.
func (s *Store) Best(ctx context.Context) (e Entry, ok bool, err error) {
	err = s.conn.GetContext(ctx, &e,
		`SELECT * FROM sessions ORDER BY fed DESC, survived DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("best session: %w", err)
	}
	return e, true, nil
}

// Recent returns up to n sessions, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	var entries []Entry
	err := s.conn.SelectContext(ctx, &entries,
		`SELECT * FROM sessions ORDER BY ended_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("recent sessions: %w", err)
	}
	return entries, nil
}
