package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/itemtracker/internal/domain"
	"github.com/alexanderramin/itemtracker/internal/uow"
)

type itemService struct {
	newUoW   uow.Factory
	clock    domain.Clock
	observer UseCaseObserver
}

func NewItemService(newUoW uow.Factory, clock domain.Clock, observers ...UseCaseObserver) ItemService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &itemService{
		newUoW:   newUoW,
		clock:    clock,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *itemService) Create(ctx context.Context, it *domain.Item) (_ *domain.Item, err error) {
	startedAt := time.Now()
	fields := map[string]any{"owner_id": it.OwnerID}
	defer func() { observe(ctx, s.observer, "item.create", startedAt, fields, err) }()

	if strings.TrimSpace(it.Name) == "" {
		return nil, domain.Validationf("item name cannot be empty")
	}

	u := s.newUoW()
	if err := requireCategory(ctx, u, it.CategoryID); err != nil {
		return nil, err
	}
	if err := u.Items().Add(ctx, it); err != nil {
		return nil, err
	}
	if _, err := u.SaveChanges(ctx); err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}
	fields["item_id"] = it.ID
	return it, nil
}

func (s *itemService) Update(ctx context.Context, id int64, patch domain.ItemPatch) (_ *domain.Item, err error) {
	startedAt := time.Now()
	fields := map[string]any{"item_id": id}
	defer func() { observe(ctx, s.observer, "item.update", startedAt, fields, err) }()

	u := s.newUoW()
	it, err := u.Items().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireCategory(ctx, u, patch.CategoryID); err != nil {
		return nil, err
	}

	patch.Apply(it)
	if err := s.save(ctx, u, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *itemService) Delete(ctx context.Context, id int64) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"item_id": id}
	defer func() { observe(ctx, s.observer, "item.delete", startedAt, fields, err) }()

	u := s.newUoW()
	it, err := u.Items().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := u.Items().Remove(ctx, it); err != nil {
		return err
	}
	if _, err := u.SaveChanges(ctx); err != nil {
		return fmt.Errorf("deleting item %d: %w", id, err)
	}
	return nil
}

func (s *itemService) Complete(ctx context.Context, id int64) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"item_id": id}
	defer func() { observe(ctx, s.observer, "item.complete", startedAt, fields, err) }()

	_, err = s.mutate(ctx, id, func(it *domain.Item) { it.Complete(s.clock.Now()) })
	return err
}

func (s *itemService) ToggleLoop(ctx context.Context, id int64) (_ *domain.Item, err error) {
	startedAt := time.Now()
	fields := map[string]any{"item_id": id}
	defer func() { observe(ctx, s.observer, "item.toggle_loop", startedAt, fields, err) }()

	return s.mutate(ctx, id, (*domain.Item).ToggleLoop)
}

func (s *itemService) UpdatePriority(ctx context.Context, id int64, priority int) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"item_id": id, "priority": priority}
	defer func() { observe(ctx, s.observer, "item.update_priority", startedAt, fields, err) }()

	_, err = s.mutate(ctx, id, func(it *domain.Item) { it.SetPriority(priority) })
	return err
}

func (s *itemService) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	return s.newUoW().Items().GetByID(ctx, id)
}

func (s *itemService) GetAll(ctx context.Context) ([]*domain.Item, error) {
	return s.newUoW().Items().GetAll(ctx)
}

func (s *itemService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Item, error) {
	return s.newUoW().Items().ListByOwner(ctx, ownerID)
}

func (s *itemService) ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Item, error) {
	return s.newUoW().Items().ListByCategory(ctx, categoryID)
}

func (s *itemService) ListLooped(ctx context.Context, ownerID string) ([]*domain.Item, error) {
	return s.newUoW().Items().ListLooped(ctx, ownerID)
}

func (s *itemService) ListByPriority(ctx context.Context, ownerID string, priority int) ([]*domain.Item, error) {
	return s.newUoW().Items().ListByPriority(ctx, ownerID, priority)
}

// ListPending returns the owner's items not completed as of the service clock.
func (s *itemService) ListPending(ctx context.Context, ownerID string) ([]*domain.Item, error) {
	now := s.clock.Now()
	return s.filterOwned(ctx, ownerID, func(it *domain.Item) bool { return it.IsPending(now) })
}

func (s *itemService) ListCompleted(ctx context.Context, ownerID string) ([]*domain.Item, error) {
	now := s.clock.Now()
	return s.filterOwned(ctx, ownerID, func(it *domain.Item) bool { return it.IsCompleted(now) })
}

func (s *itemService) Stats(ctx context.Context, ownerID string) (domain.ItemStats, error) {
	items, err := s.newUoW().Items().ListByOwner(ctx, ownerID)
	if err != nil {
		return domain.ItemStats{}, err
	}
	return domain.ComputeItemStats(items, s.clock.Now()), nil
}

// mutate loads an item, applies fn, and persists the result.
func (s *itemService) mutate(ctx context.Context, id int64, fn func(*domain.Item)) (*domain.Item, error) {
	u := s.newUoW()
	it, err := u.Items().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	fn(it)
	if err := s.save(ctx, u, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *itemService) save(ctx context.Context, u uow.UnitOfWork, it *domain.Item) error {
	if err := u.Items().Update(ctx, it); err != nil {
		return err
	}
	if _, err := u.SaveChanges(ctx); err != nil {
		return fmt.Errorf("updating item %d: %w", it.ID, err)
	}
	return nil
}

func (s *itemService) filterOwned(ctx context.Context, ownerID string, keep func(*domain.Item) bool) ([]*domain.Item, error) {
	items, err := s.newUoW().Items().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Item, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

// requireCategory checks that categoryID, when set, names an existing category.
func requireCategory(ctx context.Context, u uow.UnitOfWork, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	_, err := u.Categories().GetByID(ctx, *categoryID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Validationf("category with ID %d does not exist", *categoryID)
	}
	return err
}
