// Package uow ties the Item and Category repositories to one transactional
// session so that a logical operation reads and writes through a single scope.
package uow

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/itemtracker/internal/db"
	"github.com/alexanderramin/itemtracker/internal/repository"
)

// UnitOfWork is one transaction scope shared by both repositories.
//
// Between Begin and Commit/Rollback every repository call goes through the
// same *sql.Tx. Writes are staged and reach the database on SaveChanges or
// Commit. Rollback undoes everything since Begin, including flushed changes,
// and is a no-op when nothing is open.
type UnitOfWork interface {
	Items() repository.ItemRepo
	Categories() repository.CategoryRepo

	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	SaveChanges(ctx context.Context) (int, error)
	InTransaction() bool

	db.TxRunner
}

// Factory creates a fresh UnitOfWork. Services call it once per operation so
// concurrent requests never share transaction state.
type Factory func() UnitOfWork

// SQLiteUnitOfWork implements UnitOfWork over a db.Session. Both repositories
// are built once, up front, against the same session.
type SQLiteUnitOfWork struct {
	*db.Session
	items      *repository.SQLiteItemRepo
	categories *repository.SQLiteCategoryRepo
}

var _ UnitOfWork = (*SQLiteUnitOfWork)(nil)

// New creates a SQLiteUnitOfWork backed by database.
func New(database *sql.DB, opts ...db.SessionOption) *SQLiteUnitOfWork {
	s := db.NewSession(database, opts...)
	return &SQLiteUnitOfWork{
		Session:    s,
		items:      repository.NewSQLiteItemRepo(s),
		categories: repository.NewSQLiteCategoryRepo(s),
	}
}

// NewFactory returns a Factory producing SQLiteUnitOfWork values that share
// database and opts.
func NewFactory(database *sql.DB, opts ...db.SessionOption) Factory {
	return func() UnitOfWork {
		return New(database, opts...)
	}
}

func (u *SQLiteUnitOfWork) Items() repository.ItemRepo { return u.items }

func (u *SQLiteUnitOfWork) Categories() repository.CategoryRepo { return u.categories }
