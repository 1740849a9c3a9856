package dictcache

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"subalign/internal/lexical"
	"subalign/internal/logging"
)

// Cache provides compiled dictionary lookups backed by SQLite.
type Cache struct {
	db     *sql.DB
	dir    string
	lock   *flock.Flock
	logger *slog.Logger
}

// Open initializes or connects to the cache database under dir. An empty
// dir disables caching and returns a nil cache: Load on a nil cache parses
// the dictionary file directly and Close is a no-op.
func Open(dir string, logger *slog.Logger) (*Cache, error) {
	if dir == "" {
		return nil, nil
	}
	logger = logging.NewComponentLogger(logger, "dictcache")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache dir: %w", err)
	}

	dbPath := filepath.Join(dir, "dictionaries.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	cache := &Cache{
		db:     db,
		dir:    dir,
		lock:   flock.New(filepath.Join(dir, "compile.lock")),
		logger: logger,
	}
	if err := cache.applySchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return cache, nil
}

func (c *Cache) applySchema(ctx context.Context) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS sources (
            path TEXT PRIMARY KEY,
            mtime INTEGER NOT NULL,
            entries INTEGER NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS entries (
            path TEXT NOT NULL,
            src TEXT NOT NULL,
            trg TEXT NOT NULL,
            n INTEGER NOT NULL,
            PRIMARY KEY (path, src, trg)
        )`,
	}
	for _, stmt := range schema {
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Load fills dict with the entries of the dictionary file at path, using
// the compiled cache when it is fresh and compiling otherwise. reversed
// swaps source and target on the way into dict.
func (c *Cache) Load(ctx context.Context, dict *lexical.Dictionary, path string, reversed bool) error {
	if c == nil {
		return dict.Load(path, reversed)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat dictionary %s: %w", path, err)
	}
	mtime := info.ModTime().UnixNano()

	fresh, err := c.isFresh(ctx, path, mtime)
	if err != nil {
		return err
	}
	if !fresh {
		if err := c.compile(ctx, path, mtime); err != nil {
			return err
		}
	}
	return c.read(ctx, dict, path, reversed)
}

func (c *Cache) isFresh(ctx context.Context, path string, mtime int64) (bool, error) {
	var cached int64
	err := c.db.QueryRowContext(ctx, `SELECT mtime FROM sources WHERE path = ?`, path).Scan(&cached)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query cache source: %w", err)
	}
	return cached == mtime, nil
}

// compile parses the dictionary file and replaces its cached entries. The
// file lock serializes concurrent compiles of the same cache directory; the
// freshness re-check under the lock skips work another process finished.
func (c *Cache) compile(ctx context.Context, path string, mtime int64) error {
	if err := c.lock.Lock(); err != nil {
		return fmt.Errorf("acquire compile lock: %w", err)
	}
	defer func() {
		if err := c.lock.Unlock(); err != nil {
			c.logger.Warn("release compile lock",
				logging.Error(err),
				logging.String(logging.FieldEventType, "dictcache_unlock_failed"))
		}
	}()

	fresh, err := c.isFresh(ctx, path, mtime)
	if err != nil {
		return err
	}
	if fresh {
		return nil
	}

	parsed := lexical.NewDictionary()
	if err := parsed.Load(path, false); err != nil {
		return err
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin compile tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE path = ?`, path); err != nil {
		return fmt.Errorf("clear stale entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO entries (path, src, trg, n) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	var insertErr error
	parsed.ForEach(func(src, trg string, n int) {
		if insertErr != nil {
			return
		}
		_, insertErr = stmt.ExecContext(ctx, path, src, trg, n)
	})
	if insertErr != nil {
		return fmt.Errorf("insert entries: %w", insertErr)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sources (path, mtime, entries) VALUES (?, ?, ?)
         ON CONFLICT(path) DO UPDATE SET mtime = excluded.mtime, entries = excluded.entries`,
		path, mtime, parsed.Len()); err != nil {
		return fmt.Errorf("record source: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit compile tx: %w", err)
	}

	c.logger.Debug("dictionary compiled",
		logging.String("path", path),
		logging.Int("entries", parsed.Len()))
	return nil
}

func (c *Cache) read(ctx context.Context, dict *lexical.Dictionary, path string, reversed bool) error {
	rows, err := c.db.QueryContext(ctx, `SELECT src, trg, n FROM entries WHERE path = ?`, path)
	if err != nil {
		return fmt.Errorf("read cached entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var src, trg string
		var n int
		if err := rows.Scan(&src, &trg, &n); err != nil {
			return fmt.Errorf("scan cached entry: %w", err)
		}
		if reversed {
			src, trg = trg, src
		}
		dict.Add(src, trg, n)
	}
	return rows.Err()
}
