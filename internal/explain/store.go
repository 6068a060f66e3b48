package explain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ziadkadry99/termlens/internal/db"
)

// Entry is a stored explanation.
type Entry struct {
	Term        string    `json:"term"`
	Display     string    `json:"display"`
	Explanation string    `json:"explanation"`
	CreatedAt   time.Time `json:"created_at"`
	Hits        int       `json:"hits"`
}

// Store persists explanations keyed by canonical term. Entries are
// write-once until Clear.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Get returns the entry for key and records a hit.
func (s *Store) Get(ctx context.Context, key string) (*Entry, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE explanations SET hits = hits + 1 WHERE term = ?
		RETURNING term, display, explanation, created_at, hits`, key)

	var (
		e  Entry
		ts string
	)
	if err := row.Scan(&e.Term, &e.Display, &e.Explanation, &ts, &e.Hits); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading explanation %q: %w", key, err)
	}
	e.CreatedAt = parseTime(ts)
	return &e, true, nil
}

// Put stores an explanation unless one already exists for key. It reports
// whether a row was inserted.
func (s *Store) Put(ctx context.Context, key, display, explanation string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO explanations (term, display, explanation)
		VALUES (?, ?, ?)
		ON CONFLICT(term) DO NOTHING`, key, display, explanation)
	if err != nil {
		return false, fmt.Errorf("storing explanation %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storing explanation %q: %w", key, err)
	}
	return n > 0, nil
}

// Count returns the number of stored explanations.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM explanations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting explanations: %w", err)
	}
	return n, nil
}

// Keys returns the stored canonical terms in insertion order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT term FROM explanations ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing explanations: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning explanation key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Clear removes every stored explanation and returns how many there were.
func (s *Store) Clear(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM explanations`)
	if err != nil {
		return 0, fmt.Errorf("clearing explanations: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clearing explanations: %w", err)
	}
	return int(n), nil
}

func parseTime(ts string) time.Time {
	if t, err := time.Parse(time.DateTime, ts); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
		return t
	}
	return time.Time{}
}
