package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/itemtracker/internal/db"
)

// FailOnNthExec returns a session option that injects err on the Nth
// ExecContext call made through any session built with it. This enables
// rollback integration tests by simulating failures at precise points in
// multi-write operations.
//
// ExecContext calls are counted starting at 1. QueryContext and QueryRowContext
// are not counted (reads pass through normally).
func FailOnNthExec(n int32, err error) db.SessionOption {
	var count atomic.Int32
	return db.WithConnWrapper(func(inner db.DBTX) db.DBTX {
		return &failOnNthExec{DBTX: inner, count: &count, failOn: n, err: err}
	})
}

type failOnNthExec struct {
	db.DBTX
	count  *atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if n == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
