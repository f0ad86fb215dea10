package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/alexanderramin/itemtracker/internal/domain"
	"github.com/alexanderramin/itemtracker/internal/uow"
)

type bulkService struct {
	newUoW   uow.Factory
	clock    domain.Clock
	observer UseCaseObserver
}

// NewBulkService builds a BulkService. Each operation asks newUoW for a fresh
// unit of work. Completion timestamps come from clock.
func NewBulkService(newUoW uow.Factory, clock domain.Clock, observers ...UseCaseObserver) BulkService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &bulkService{
		newUoW:   newUoW,
		clock:    clock,
		observer: useCaseObserverOrNoop(observers),
	}
}

// bulkBody performs the work of one bulk operation inside an open transaction
// and returns the affected count together with the success message.
type bulkBody func(ctx context.Context, u uow.UnitOfWork) (int, string, error)

// run executes body in a single transaction. Any error rolls the transaction
// back and becomes a failed result prefixed with failPrefix.
func (s *bulkService) run(ctx context.Context, name, failPrefix string, fields map[string]any, body bulkBody) (result BulkOperationResult) {
	startedAt := time.Now()
	defer func() {
		fields["affected_count"] = result.AffectedCount
		observe(ctx, s.observer, name, startedAt, fields, result.Err())
	}()

	u := s.newUoW()
	defer func() {
		if u.InTransaction() {
			_ = u.Rollback(ctx)
		}
	}()

	if err := u.Begin(ctx); err != nil {
		return bulkFailed(failPrefix, err)
	}

	count, msg, err := body(ctx, u)
	if err != nil {
		if rbErr := u.Rollback(ctx); rbErr != nil {
			err = fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return bulkFailed(failPrefix, err)
	}

	// Commit rolls back on its own when the final flush or commit fails.
	if err := u.Commit(ctx); err != nil {
		return bulkFailed(failPrefix, err)
	}
	return bulkSucceeded(count, "%s", msg)
}

func (s *bulkService) BulkCreateItems(ctx context.Context, items []*domain.Item) BulkOperationResult {
	fields := map[string]any{"requested": len(items)}
	return s.run(ctx, "bulk.create_items", "Failed to create items", fields,
		func(ctx context.Context, u uow.UnitOfWork) (int, string, error) {
			if err := u.Items().AddMany(ctx, items); err != nil {
				return 0, "", err
			}
			if _, err := u.SaveChanges(ctx); err != nil {
				return 0, "", err
			}
			return len(items), fmt.Sprintf("Successfully created %d items", len(items)), nil
		})
}

// BulkUpdateItems fails the whole batch when any item is missing, unlike
// BulkDeleteItems and CompleteItems which skip unknown ids.
func (s *bulkService) BulkUpdateItems(ctx context.Context, items []*domain.Item) BulkOperationResult {
	fields := map[string]any{"requested": len(items)}
	return s.run(ctx, "bulk.update_items", "Failed to update items", fields,
		func(ctx context.Context, u uow.UnitOfWork) (int, string, error) {
			if err := u.Items().UpdateMany(ctx, items); err != nil {
				return 0, "", err
			}
			if _, err := u.SaveChanges(ctx); err != nil {
				return 0, "", err
			}
			return len(items), fmt.Sprintf("Successfully updated %d items", len(items)), nil
		})
}

func (s *bulkService) BulkDeleteItems(ctx context.Context, ids []int64) BulkOperationResult {
	fields := map[string]any{"requested": len(ids)}
	return s.run(ctx, "bulk.delete_items", "Failed to delete items", fields,
		func(ctx context.Context, u uow.UnitOfWork) (int, string, error) {
			found, err := loadExisting(ctx, u, ids)
			if err != nil {
				return 0, "", err
			}
			if err := u.Items().RemoveMany(ctx, found); err != nil {
				return 0, "", err
			}
			if _, err := u.SaveChanges(ctx); err != nil {
				return 0, "", err
			}
			return len(found), fmt.Sprintf("Successfully deleted %d items", len(found)), nil
		})
}

func (s *bulkService) MoveCategoryItems(ctx context.Context, fromCategoryID, toCategoryID int64) BulkOperationResult {
	fields := map[string]any{"from_category_id": fromCategoryID, "to_category_id": toCategoryID}
	return s.run(ctx, "bulk.move_category_items", "Failed to move items", fields,
		func(ctx context.Context, u uow.UnitOfWork) (int, string, error) {
			if _, err := u.Categories().GetByID(ctx, toCategoryID); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return 0, "", fmt.Errorf("%w: target category with ID %d does not exist", domain.ErrTargetNotFound, toCategoryID)
				}
				return 0, "", err
			}

			items, err := u.Items().ListByCategory(ctx, fromCategoryID)
			if err != nil {
				return 0, "", err
			}
			for _, it := range items {
				it.MoveTo(toCategoryID)
			}
			if err := u.Items().UpdateMany(ctx, items); err != nil {
				return 0, "", err
			}
			return len(items), fmt.Sprintf("Successfully moved %d items from category %d to %d",
				len(items), fromCategoryID, toCategoryID), nil
		})
}

func (s *bulkService) CompleteItems(ctx context.Context, ids []int64) BulkOperationResult {
	fields := map[string]any{"requested": len(ids)}
	return s.run(ctx, "bulk.complete_items", "Failed to complete items", fields,
		func(ctx context.Context, u uow.UnitOfWork) (int, string, error) {
			found, err := loadExisting(ctx, u, ids)
			if err != nil {
				return 0, "", err
			}
			now := s.clock.Now()
			for _, it := range found {
				it.Complete(now)
			}
			if err := u.Items().UpdateMany(ctx, found); err != nil {
				return 0, "", err
			}
			return len(found), fmt.Sprintf("Successfully completed %d items", len(found)), nil
		})
}

func (s *bulkService) UpdatePriorities(ctx context.Context, priorities map[int64]int) BulkOperationResult {
	fields := map[string]any{"requested": len(priorities)}
	return s.run(ctx, "bulk.update_priorities", "Failed to update priorities", fields,
		func(ctx context.Context, u uow.UnitOfWork) (int, string, error) {
			ids := make([]int64, 0, len(priorities))
			for id := range priorities {
				ids = append(ids, id)
			}
			slices.Sort(ids)

			found, err := loadExisting(ctx, u, ids)
			if err != nil {
				return 0, "", err
			}
			for _, it := range found {
				it.SetPriority(priorities[it.ID])
			}
			if err := u.Items().UpdateMany(ctx, found); err != nil {
				return 0, "", err
			}
			return len(found), fmt.Sprintf("Successfully updated priorities for %d items", len(found)), nil
		})
}

func (s *bulkService) DuplicateItems(ctx context.Context, ids []int64, ownerID string) BulkOperationResult {
	fields := map[string]any{"requested": len(ids), "owner_id": ownerID}
	return s.run(ctx, "bulk.duplicate_items", "Failed to duplicate items", fields,
		func(ctx context.Context, u uow.UnitOfWork) (int, string, error) {
			var copies []*domain.Item
			for _, id := range ids {
				it, err := u.Items().GetByID(ctx, id)
				if errors.Is(err, domain.ErrNotFound) {
					continue
				}
				if err != nil {
					return 0, "", err
				}
				if it.OwnerID != ownerID {
					continue
				}
				copies = append(copies, it.Duplicate(ownerID))
			}
			if err := u.Items().AddMany(ctx, copies); err != nil {
				return 0, "", err
			}
			return len(copies), fmt.Sprintf("Successfully duplicated %d items", len(copies)), nil
		})
}

// loadExisting fetches the items named by ids in order. Ids with no matching
// item, and repeats of an id already seen, are skipped.
func loadExisting(ctx context.Context, u uow.UnitOfWork, ids []int64) ([]*domain.Item, error) {
	seen := make(map[int64]struct{}, len(ids))
	found := make([]*domain.Item, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		it, err := u.Items().GetByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		found = append(found, it)
	}
	return found, nil
}
