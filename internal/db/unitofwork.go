package db

import (
	"context"
	"fmt"
)

// TxRunner runs a callback inside one transaction.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

var _ TxRunner = (*Session)(nil)

// WithinTx begins a transaction, runs fn, and commits. If fn returns an error
// or panics the transaction is rolled back; the error is returned and the
// panic re-raised.
func (s *Session) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := s.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = s.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(ctx); err != nil {
		if rbErr := s.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	return s.Commit(ctx)
}
