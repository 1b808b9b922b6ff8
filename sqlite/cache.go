package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/chapterly"
)

// Compile-time interface verification.
var _ chapterly.DocumentCache = (*Cache)(nil)

// Cache implements chapterly.DocumentCache using SQLite.
type Cache struct {
	db       *DB
	ttl      time.Duration
	capacity int

	// Now returns the current time. Replaceable for tests.
	Now func() time.Time
}

// NewCache creates a new Cache. Non-positive values use
// chapterly.DefaultCacheTTL and chapterly.DefaultCacheCapacity.
func NewCache(db *DB, ttl time.Duration, capacity int) *Cache {
	if ttl <= 0 {
		ttl = chapterly.DefaultCacheTTL
	}
	if capacity <= 0 {
		capacity = chapterly.DefaultCacheCapacity
	}
	return &Cache{db: db, ttl: ttl, capacity: capacity, Now: time.Now}
}

// Lookup returns the cached document for url. Expired rows are deleted.
func (c *Cache) Lookup(ctx context.Context, url string) (*chapterly.Document, error) {
	var doc chapterly.Document
	var insertedAt string

	err := c.db.QueryRowContext(ctx, `
		SELECT url, title, content, next_url, is_translated, inserted_at
		FROM documents
		WHERE url = ?
	`, url).Scan(&doc.CurrentURL, &doc.Title, &doc.Content, &doc.NextURL, &doc.IsTranslated, &insertedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, chapterly.Errorf(chapterly.ENOTFOUND, "no cached document for %s", url)
	}
	if err != nil {
		return nil, err
	}

	at, err := parseTime(insertedAt, "inserted_at")
	if err != nil {
		return nil, err
	}

	if c.Now().Sub(at) >= c.ttl {
		if _, err := c.db.ExecContext(ctx, `DELETE FROM documents WHERE url = ?`, url); err != nil {
			return nil, err
		}
		return nil, chapterly.Errorf(chapterly.ENOTFOUND, "cached document for %s expired", url)
	}

	return &doc, nil
}

// Store inserts doc as the newest entry, replacing any row for the same
// URL, and trims the oldest rows beyond capacity.
func (c *Cache) Store(ctx context.Context, doc *chapterly.Document) error {
	if doc == nil || doc.CurrentURL == "" {
		return chapterly.Errorf(chapterly.EINVALID, "document current URL required")
	}

	tx, err := c.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE url = ?`, doc.CurrentURL); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO documents (url, title, content, next_url, is_translated, inserted_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, doc.CurrentURL, doc.Title, doc.Content, doc.NextURL, doc.IsTranslated, formatTime(c.Now())); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM documents
		WHERE seq NOT IN (SELECT seq FROM documents ORDER BY seq DESC LIMIT ?)
	`, c.capacity); err != nil {
		return err
	}

	return tx.Commit()
}

// Len returns the number of stored rows, including expired ones not yet
// removed.
func (c *Cache) Len(ctx context.Context) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n)
	return n, err
}
