package service

import (
	"context"

	"github.com/alexanderramin/itemtracker/internal/domain"
)

// BulkService runs multi-item mutations. Every operation owns exactly one
// transaction and reports its outcome in a BulkOperationResult; none of them
// return an error.
type BulkService interface {
	BulkCreateItems(ctx context.Context, items []*domain.Item) BulkOperationResult
	BulkUpdateItems(ctx context.Context, items []*domain.Item) BulkOperationResult
	BulkDeleteItems(ctx context.Context, ids []int64) BulkOperationResult
	MoveCategoryItems(ctx context.Context, fromCategoryID, toCategoryID int64) BulkOperationResult
	CompleteItems(ctx context.Context, ids []int64) BulkOperationResult
	UpdatePriorities(ctx context.Context, priorities map[int64]int) BulkOperationResult
	DuplicateItems(ctx context.Context, ids []int64, ownerID string) BulkOperationResult
}

// CategoryService manages the category lifecycle. Unlike BulkService it
// returns typed errors (see domain.Err*) to the caller.
type CategoryService interface {
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, id int64, patch domain.CategoryPatch) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
	DeleteWithItems(ctx context.Context, id int64) error
	IsUsed(ctx context.Context, id int64) (bool, error)
	ItemsCount(ctx context.Context, id int64) (int, error)

	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetAll(ctx context.Context) ([]*domain.Category, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Category, error)
	GetByName(ctx context.Context, ownerID, name string) (*domain.Category, error)
	NameExists(ctx context.Context, ownerID, name string) (bool, error)
}

// ItemService handles single-item edits and owner-scoped queries. Pending and
// completed are judged against the injected clock.
type ItemService interface {
	Create(ctx context.Context, it *domain.Item) (*domain.Item, error)
	Update(ctx context.Context, id int64, patch domain.ItemPatch) (*domain.Item, error)
	Delete(ctx context.Context, id int64) error
	Complete(ctx context.Context, id int64) error
	ToggleLoop(ctx context.Context, id int64) (*domain.Item, error)
	UpdatePriority(ctx context.Context, id int64, priority int) error

	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	GetAll(ctx context.Context) ([]*domain.Item, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Item, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Item, error)
	ListLooped(ctx context.Context, ownerID string) ([]*domain.Item, error)
	ListByPriority(ctx context.Context, ownerID string, priority int) ([]*domain.Item, error)
	ListPending(ctx context.Context, ownerID string) ([]*domain.Item, error)
	ListCompleted(ctx context.Context, ownerID string) ([]*domain.Item, error)
	Stats(ctx context.Context, ownerID string) (domain.ItemStats, error)
}
