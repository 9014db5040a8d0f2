package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ResponseCache stores raw API bodies with a time-to-live. It satisfies the
// cache interfaces of the O*NET and BLS clients.
type ResponseCache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewResponseCache returns a cache whose entries expire after ttl. A zero
// ttl disables reads, so every request goes to the network.
func NewResponseCache(db *sql.DB, ttl time.Duration) *ResponseCache {
	return &ResponseCache{db: db, ttl: ttl, now: time.Now}
}

func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.ttl <= 0 {
		return nil, false, nil
	}
	var body []byte
	var fetchedAt time.Time
	err := c.db.QueryRowContext(ctx,
		`SELECT body, fetched_at FROM response_cache WHERE key = ?`, key,
	).Scan(&body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if c.now().Sub(fetchedAt) >= c.ttl {
		return nil, false, nil
	}
	return body, true, nil
}

func (c *ResponseCache) Put(ctx context.Context, key string, body []byte) error {
	if c.ttl <= 0 {
		return nil
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO response_cache (key, body, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		key, body, c.now().UTC(),
	)
	return err
}

// PurgeExpired deletes entries older than the TTL.
func (c *ResponseCache) PurgeExpired(ctx context.Context) (int64, error) {
	return PurgeCacheBefore(ctx, c.db, c.now().Add(-c.ttl))
}

// PurgeCacheBefore deletes entries fetched at or before cutoff.
func PurgeCacheBefore(ctx context.Context, db *sql.DB, cutoff time.Time) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM response_cache WHERE fetched_at <= ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func PurgeCache(ctx context.Context, db *sql.DB) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM response_cache`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func CountCacheEntries(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM response_cache`).Scan(&n)
	return n, err
}
