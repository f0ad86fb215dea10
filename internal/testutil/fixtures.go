package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/alexanderramin/itemtracker/internal/domain"
	"github.com/alexanderramin/itemtracker/internal/uow"
	"github.com/google/uuid"
)

var testNameCounter atomic.Int64

// NewOwnerID returns a fresh owner identity.
func NewOwnerID() string {
	return uuid.New().String()
}

// Category options
type CategoryOption func(*domain.Category)

func WithColor(color string) CategoryOption {
	return func(c *domain.Category) {
		c.Color = color
	}
}

func WithCategoryName(name string) CategoryOption {
	return func(c *domain.Category) {
		c.Name = name
	}
}

func NewTestCategory(ownerID string, opts ...CategoryOption) *domain.Category {
	c := &domain.Category{
		Name:    fmt.Sprintf("Category-%d", testNameCounter.Add(1)),
		Color:   "#336699",
		OwnerID: ownerID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Item options
type ItemOption func(*domain.Item)

func WithCategory(id int64) ItemOption {
	return func(it *domain.Item) {
		it.CategoryID = &id
	}
}

func WithPriority(p int) ItemOption {
	return func(it *domain.Item) {
		it.Priority = &p
	}
}

func WithDescription(d string) ItemOption {
	return func(it *domain.Item) {
		it.Description = &d
	}
}

func WithEstimatedHours(h int) ItemOption {
	return func(it *domain.Item) {
		it.EstimatedHours = &h
	}
}

func WithLooped(v bool) ItemOption {
	return func(it *domain.Item) {
		it.IsLooped = &v
	}
}

func NewTestItem(ownerID, name string, opts ...ItemOption) *domain.Item {
	it := &domain.Item{
		Name:    name,
		OwnerID: ownerID,
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// SeedCategory persists c through a fresh unit of work and returns it with
// its assigned ID.
func SeedCategory(t *testing.T, newUoW uow.Factory, c *domain.Category) *domain.Category {
	t.Helper()
	ctx := context.Background()
	u := newUoW()
	if err := u.Categories().Add(ctx, c); err != nil {
		t.Fatalf("seeding category: %v", err)
	}
	if _, err := u.SaveChanges(ctx); err != nil {
		t.Fatalf("seeding category: %v", err)
	}
	return c
}

// SeedItems persists items through a fresh unit of work; IDs are assigned in place.
func SeedItems(t *testing.T, newUoW uow.Factory, items ...*domain.Item) []*domain.Item {
	t.Helper()
	ctx := context.Background()
	u := newUoW()
	if err := u.Items().AddMany(ctx, items); err != nil {
		t.Fatalf("seeding items: %v", err)
	}
	if _, err := u.SaveChanges(ctx); err != nil {
		t.Fatalf("seeding items: %v", err)
	}
	return items
}

// LoadItem reads an item through a fresh unit of work.
func LoadItem(t *testing.T, newUoW uow.Factory, id int64) *domain.Item {
	t.Helper()
	it, err := newUoW().Items().GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("loading item %d: %v", id, err)
	}
	return it
}
