package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// ErrAlreadyInTransaction is returned by Begin when the session already owns
// an open transaction.
var ErrAlreadyInTransaction = errors.New("transaction already in progress")

// DBTX is what repositories read and write through: the pool outside a
// transaction, the open *sql.Tx inside one.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// Change is a pending write staged on a Session. It runs against whichever
// connection the session flushes through.
type Change func(ctx context.Context, conn DBTX) error

// Session is the transactional core of a unit of work. It owns at most one
// *sql.Tx and an ordered list of pending changes.
//
// Writes are staged with Stage and reach the database only on SaveChanges or
// Commit, in the order they were staged. Reads use Conn, which is the open
// transaction when there is one and the pool otherwise, so staged writes are
// invisible to reads until flushed.
//
// A Session is not safe for concurrent use. Create one per operation.
type Session struct {
	id      string
	db      *sql.DB
	tx      *sql.Tx
	pending []Change
	wrap    func(DBTX) DBTX
	logger  *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger used for transaction lifecycle events.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithConnWrapper decorates every connection handed out by the session.
// Tests use it to inject failures at precise points.
func WithConnWrapper(fn func(DBTX) DBTX) SessionOption {
	return func(s *Session) {
		s.wrap = fn
	}
}

// NewSession creates a Session over db.
func NewSession(db *sql.DB, opts ...SessionOption) *Session {
	s := &Session{
		id:     uuid.NewString(),
		db:     db,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session_id", s.id)
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// InTransaction reports whether a transaction is open.
func (s *Session) InTransaction() bool { return s.tx != nil }

// Pending returns the number of staged, unflushed changes.
func (s *Session) Pending() int { return len(s.pending) }

// Conn returns the connection reads should go through.
func (s *Session) Conn() DBTX {
	if s.tx != nil {
		return s.wrapConn(s.tx)
	}
	return s.wrapConn(s.db)
}

// Stage appends a change to the pending list.
func (s *Session) Stage(c Change) {
	s.pending = append(s.pending, c)
}

// Begin opens a transaction.
func (s *Session) Begin(ctx context.Context) error {
	if s.tx != nil {
		return ErrAlreadyInTransaction
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	s.tx = tx
	s.logger.DebugContext(ctx, "transaction_begin")
	return nil
}

// SaveChanges flushes pending changes and returns how many were applied.
// Inside an open transaction the flush joins it and the transaction stays
// open. Without one the flush runs in its own transaction, so a multi-change
// flush is still all-or-nothing. A failed flush discards the change set.
func (s *Session) SaveChanges(ctx context.Context) (int, error) {
	if len(s.pending) == 0 {
		return 0, nil
	}
	if s.tx != nil {
		return s.flush(ctx, s.tx)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.pending = nil
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	n, err := s.flush(ctx, tx)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return n, nil
}

// Commit flushes pending changes and commits the open transaction. If either
// step fails the transaction is rolled back before the error is returned.
// With no open transaction Commit behaves like SaveChanges.
func (s *Session) Commit(ctx context.Context) error {
	if s.tx == nil {
		_, err := s.SaveChanges(ctx)
		return err
	}

	if _, err := s.flush(ctx, s.tx); err != nil {
		if rbErr := s.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	tx := s.tx
	s.tx = nil
	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		s.logger.ErrorContext(ctx, "transaction_commit_failed", "error", err.Error())
		return fmt.Errorf("committing transaction: %w", err)
	}
	s.logger.DebugContext(ctx, "transaction_commit")
	return nil
}

// Rollback discards pending changes and aborts the open transaction, undoing
// everything flushed since Begin. It is a no-op when no transaction is open.
func (s *Session) Rollback(ctx context.Context) error {
	s.pending = nil
	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rolling back transaction: %w", err)
	}
	s.logger.DebugContext(ctx, "transaction_rollback")
	return nil
}

func (s *Session) flush(ctx context.Context, tx *sql.Tx) (int, error) {
	pending := s.pending
	s.pending = nil
	conn := s.wrapConn(tx)
	for i, change := range pending {
		if err := change(ctx, conn); err != nil {
			return i, fmt.Errorf("saving changes: %w", err)
		}
	}
	return len(pending), nil
}

func (s *Session) wrapConn(conn DBTX) DBTX {
	if s.wrap == nil {
		return conn
	}
	return s.wrap(conn)
}
