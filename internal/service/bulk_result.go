package service

import (
	"errors"
	"fmt"
	"strings"
)

// BulkOperationResult reports the outcome of one bulk operation.
//
// Success is true only when the whole transaction committed. On failure the
// transaction has been rolled back, AffectedCount is 0, and Errors holds the
// cause. Ids that did not match an item are skipped and excluded from
// AffectedCount without making the operation fail.
type BulkOperationResult struct {
	Success       bool
	AffectedCount int
	Message       string
	Errors        []string

	cause error
}

func bulkSucceeded(count int, format string, args ...any) BulkOperationResult {
	return BulkOperationResult{
		Success:       true,
		AffectedCount: count,
		Message:       fmt.Sprintf(format, args...),
		Errors:        []string{},
	}
}

func bulkFailed(prefix string, err error) BulkOperationResult {
	return BulkOperationResult{
		Success: false,
		Message: fmt.Sprintf("%s: %s", prefix, err.Error()),
		Errors:  []string{err.Error()},
		cause:   err,
	}
}

// Err returns nil for a successful result. A failure built by the service
// returns its original cause, so errors.Is matches the domain sentinels.
func (r BulkOperationResult) Err() error {
	if r.Success {
		return nil
	}
	if r.cause != nil {
		return r.cause
	}
	if len(r.Errors) == 0 {
		return errors.New(r.Message)
	}
	return errors.New(strings.Join(r.Errors, "; "))
}
