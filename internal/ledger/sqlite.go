package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const (
	maxRetries  = 5
	initialWait = 100 * time.Millisecond
	busyTimeout = 5000 // milliseconds
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS delivered (
	key          TEXT PRIMARY KEY,
	delivered_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_delivered_at ON delivered (delivered_at);`

// SQLite is a ledger in a SQLite database file, safe for several dispatcher
// processes sharing one file.
type SQLite struct {
	conn *sql.DB
}

var _ Ledger = (*SQLite)(nil)

// OpenSQLite opens (and creates) the ledger database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)", path, busyTimeout)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	l := &SQLite{conn: conn}
	if err := l.pingWithRetry(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to ledger database: %w", err)
	}
	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize ledger schema: %w", err)
	}
	return l, nil
}

func (l *SQLite) Seen(ctx context.Context, key string) (bool, error) {
	var n int
	err := l.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM delivered WHERE key = ?`, key).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("ledger seen %q: %w", key, err)
	}
	return n > 0, nil
}

// Claim relies on the primary key: of several processes inserting the same
// key only one affects a row.
func (l *SQLite) Claim(ctx context.Context, key string, at time.Time) (bool, error) {
	res, err := l.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO delivered (key, delivered_at) VALUES (?, ?)`,
		key, at.UnixNano())
	if err != nil {
		return false, fmt.Errorf("ledger claim %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ledger claim %q rows: %w", key, err)
	}
	return n == 1, nil
}

func (l *SQLite) Release(ctx context.Context, key string) error {
	if _, err := l.conn.ExecContext(ctx, `DELETE FROM delivered WHERE key = ?`, key); err != nil {
		return fmt.Errorf("ledger release %q: %w", key, err)
	}
	return nil
}

func (l *SQLite) Prune(ctx context.Context, before time.Time) (int, error) {
	res, err := l.conn.ExecContext(ctx, `DELETE FROM delivered WHERE delivered_at < ?`, before.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("ledger prune: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("ledger prune rows: %w", err)
	}
	return int(n), nil
}

// Close closes the database connection.
func (l *SQLite) Close() error {
	return l.conn.Close()
}

// pingWithRetry attempts to ping the database with exponential backoff.
func (l *SQLite) pingWithRetry(ctx context.Context) error {
	wait := initialWait
	for i := 0; i < maxRetries; i++ {
		if err := l.conn.PingContext(ctx); err == nil {
			return nil
		}
		if i < maxRetries-1 {
			time.Sleep(wait)
			wait *= 2
		}
	}
	return fmt.Errorf("failed to ping database after %d retries", maxRetries)
}
