package repository

import (
	"context"

	"github.com/alexanderramin/itemtracker/internal/db"
	"github.com/alexanderramin/itemtracker/internal/domain"
)

// Tracker is the slice of a unit of work a repository needs: a connection for
// reads and somewhere to stage writes. Repositories never begin, commit or
// roll back.
type Tracker interface {
	Conn() db.DBTX
	Stage(c db.Change)
}

// ItemFilter selects items by any combination of its set fields.
// A zero ItemFilter matches every item.
type ItemFilter struct {
	OwnerID    *string
	CategoryID *int64
	Priority   *int
	Looped     *bool
}

// CategoryFilter selects categories by any combination of its set fields.
type CategoryFilter struct {
	OwnerID *string
	Name    *string
}

// ItemRepo reads items immediately and stages writes on its Tracker.
// Add assigns the item's ID when the staged insert is flushed.
type ItemRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	GetAll(ctx context.Context) ([]*domain.Item, error)
	Add(ctx context.Context, it *domain.Item) error
	AddMany(ctx context.Context, items []*domain.Item) error
	Update(ctx context.Context, it *domain.Item) error
	UpdateMany(ctx context.Context, items []*domain.Item) error
	Remove(ctx context.Context, it *domain.Item) error
	RemoveMany(ctx context.Context, items []*domain.Item) error
	Exists(ctx context.Context, f ItemFilter) (bool, error)
	Count(ctx context.Context, f ItemFilter) (int, error)

	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Item, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Item, error)
	ListLooped(ctx context.Context, ownerID string) ([]*domain.Item, error)
	ListByPriority(ctx context.Context, ownerID string, priority int) ([]*domain.Item, error)
}

type CategoryRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetAll(ctx context.Context) ([]*domain.Category, error)
	Add(ctx context.Context, c *domain.Category) error
	AddMany(ctx context.Context, cats []*domain.Category) error
	Update(ctx context.Context, c *domain.Category) error
	UpdateMany(ctx context.Context, cats []*domain.Category) error
	Remove(ctx context.Context, c *domain.Category) error
	RemoveMany(ctx context.Context, cats []*domain.Category) error
	Exists(ctx context.Context, f CategoryFilter) (bool, error)
	Count(ctx context.Context, f CategoryFilter) (int, error)

	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Category, error)
	GetByName(ctx context.Context, ownerID, name string) (*domain.Category, error)
}
