package sessioncache

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pathly/internal/adapters/storage"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore and ensures the table exists.
// PRE: db is a valid, open database connection
// POST: session_cache table exists; store is ready for use
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	db.ExecContext(context.Background(), `CREATE TABLE IF NOT EXISTS session_cache (
		cookie TEXT PRIMARY KEY,
		identity TEXT NOT NULL,
		token TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`)
	return &SQLiteStore{db: db}
}

// Get retrieves a cache entry by cookie value.
// PRE: cookie is non-empty
// POST: returns the entry or ErrNotFound
func (s *SQLiteStore) Get(ctx context.Context, cookie string) (Entry, error) {
	var e Entry
	var identity, createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT cookie, identity, token, created_at FROM session_cache WHERE cookie = ?`, cookie,
	).Scan(&e.Cookie, &identity, &e.Token, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, err
	}
	e.Identity = []byte(identity)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return e, nil
}

// Save inserts or updates a cache entry.
// PRE: e has a non-empty Cookie
// POST: entry is persisted
func (s *SQLiteStore) Save(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session_cache (cookie, identity, token, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(cookie) DO UPDATE SET identity=excluded.identity, token=excluded.token`,
		e.Cookie, string(e.Identity), e.Token, e.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// Delete removes a cache entry by cookie value.
// PRE: cookie is non-empty
// POST: entry is removed from storage
func (s *SQLiteStore) Delete(ctx context.Context, cookie string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_cache WHERE cookie = ?`, cookie)
	return err
}

// PurgeOlderThan removes entries created before the cutoff.
// PRE: none
// POST: returns the number of removed entries
func (s *SQLiteStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM session_cache WHERE created_at < ?`, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
