package archive

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS pages (
	url        TEXT PRIMARY KEY,
	fetched_at INTEGER NOT NULL,
	status     INTEGER NOT NULL,
	body       TEXT NOT NULL
);`

// Cache stores fetched page bodies in a local SQLite database so repeated
// runs against the same works do not hammer the archive. Entries expire
// after a fixed TTL; a zero TTL keeps them forever.
type Cache struct {
	pool *sqlitex.Pool
	ttl  time.Duration
	log  *zap.Logger
}

// OpenCache opens (creating if necessary) the cache database at path.
// A nil logger is allowed.
func OpenCache(path string, ttl time.Duration, log *zap.Logger) (*Cache, error) {
	if log == nil {
		log = zap.NewNop()
	}

	pool, err := sqlitex.NewPool(path, sqlitex.PoolOptions{PoolSize: 4})
	if err != nil {
		return nil, fmt.Errorf("unable to open page cache %q: %w", path, err)
	}

	c := &Cache{pool: pool, ttl: ttl, log: log.Named("cache")}
	if err := c.init(context.Background()); err != nil {
		pool.Close() //nolint:errcheck
		return nil, err
	}
	return c, nil
}

func (c *Cache) init(ctx context.Context) error {
	conn, err := c.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer c.pool.Put(conn)

	if err := sqlitex.ExecuteTransient(conn, cacheSchema, nil); err != nil {
		return fmt.Errorf("unable to initialize page cache: %w", err)
	}
	return nil
}

// Get returns a cached body and status for the URL, if a fresh entry exists.
// Cache failures are logged and treated as misses.
func (c *Cache) Get(ctx context.Context, url string) (string, int, bool) {
	conn, err := c.pool.Take(ctx)
	if err != nil {
		c.log.Debug("Unable to take cache connection", zap.Error(err))
		return "", 0, false
	}
	defer c.pool.Put(conn)

	var (
		body      string
		status    int
		fetchedAt int64
		found     bool
	)
	err = sqlitex.Execute(conn,
		"SELECT body, status, fetched_at FROM pages WHERE url = ?",
		&sqlitex.ExecOptions{
			Args: []any{url},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				body = stmt.ColumnText(0)
				status = stmt.ColumnInt(1)
				fetchedAt = stmt.ColumnInt64(2)
				found = true
				return nil
			},
		})
	if err != nil {
		c.log.Debug("Cache lookup failed", zap.String("url", url), zap.Error(err))
		return "", 0, false
	}
	if !found {
		return "", 0, false
	}
	if c.ttl > 0 && time.Since(time.Unix(fetchedAt, 0)) > c.ttl {
		return "", 0, false
	}
	return body, status, true
}

// Put stores a page body. Failures are logged, never fatal.
func (c *Cache) Put(ctx context.Context, url, body string, status int) {
	conn, err := c.pool.Take(ctx)
	if err != nil {
		c.log.Debug("Unable to take cache connection", zap.Error(err))
		return
	}
	defer c.pool.Put(conn)

	err = sqlitex.Execute(conn,
		"INSERT OR REPLACE INTO pages (url, fetched_at, status, body) VALUES (?, ?, ?, ?)",
		&sqlitex.ExecOptions{
			Args: []any{url, time.Now().Unix(), status, body},
		})
	if err != nil {
		c.log.Debug("Cache store failed", zap.String("url", url), zap.Error(err))
	}
}

// Prune deletes expired entries. It is safe to call with a zero TTL, in
// which case nothing expires and nothing is removed.
func (c *Cache) Prune(ctx context.Context) (int, error) {
	if c.ttl <= 0 {
		return 0, nil
	}
	conn, err := c.pool.Take(ctx)
	if err != nil {
		return 0, err
	}
	defer c.pool.Put(conn)

	cutoff := time.Now().Add(-c.ttl).Unix()
	err = sqlitex.Execute(conn,
		"DELETE FROM pages WHERE fetched_at < ?",
		&sqlitex.ExecOptions{Args: []any{cutoff}})
	if err != nil {
		return 0, err
	}
	return conn.Changes(), nil
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	return c.pool.Close()
}
