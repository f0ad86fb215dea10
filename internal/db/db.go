package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

const (
	memoryPath = ":memory:"

	busyTimeoutMs    = 5000
	migrateLockRetry = 50 * time.Millisecond
	migrateLockWait  = 10 * time.Second
)

// OpenDB opens a SQLite database at the given path.
// If path is ":memory:", uses an in-memory database pinned to a single
// connection so every caller sees the same data.
// Foreign keys are enforced on every pooled connection. File databases run in
// WAL mode with a busy timeout and take the write lock at BEGIN.
// Runs migrations automatically, holding <path>.lock for file databases.
func OpenDB(path string) (*sql.DB, error) {
	if path != memoryPath {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if path == memoryPath {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := migrateLocked(path, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

func dsn(path string) string {
	if path == memoryPath {
		return memoryPath + "?_pragma=foreign_keys(1)"
	}
	return fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_txlock=immediate",
		path, busyTimeoutMs)
}

// migrateLocked serialises migrations across processes sharing a file DB.
func migrateLocked(path string, db *sql.DB) error {
	if path == memoryPath {
		return Migrate(db)
	}

	lock := flock.New(path + ".lock")
	ctx, cancel := context.WithTimeout(context.Background(), migrateLockWait)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, migrateLockRetry)
	if err != nil {
		return fmt.Errorf("acquiring migration lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("acquiring migration lock: timed out after %s", migrateLockWait)
	}
	defer lock.Unlock()

	return Migrate(db)
}
