package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/itemtracker/internal/domain"
	"github.com/alexanderramin/itemtracker/internal/repository"
	"github.com/alexanderramin/itemtracker/internal/uow"
)

type categoryService struct {
	newUoW   uow.Factory
	observer UseCaseObserver
}

func NewCategoryService(newUoW uow.Factory, observers ...UseCaseObserver) CategoryService {
	return &categoryService{
		newUoW:   newUoW,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *categoryService) Create(ctx context.Context, c *domain.Category) (_ *domain.Category, err error) {
	startedAt := time.Now()
	fields := map[string]any{"owner_id": c.OwnerID}
	defer func() { observe(ctx, s.observer, "category.create", startedAt, fields, err) }()

	if strings.TrimSpace(c.Name) == "" {
		return nil, domain.Validationf("category name cannot be empty")
	}
	if strings.TrimSpace(c.Color) == "" {
		return nil, domain.Validationf("category color cannot be empty")
	}

	u := s.newUoW()
	taken, err := s.nameTaken(ctx, u, c.OwnerID, c.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, duplicateNameErr(c.Name)
	}

	if err := u.Categories().Add(ctx, c); err != nil {
		return nil, err
	}
	if _, err := u.SaveChanges(ctx); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}
	fields["category_id"] = c.ID
	return c, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, patch domain.CategoryPatch) (_ *domain.Category, err error) {
	startedAt := time.Now()
	fields := map[string]any{"category_id": id}
	defer func() { observe(ctx, s.observer, "category.update", startedAt, fields, err) }()

	u := s.newUoW()
	c, err := u.Categories().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.HasName() {
		taken, err := s.nameTaken(ctx, u, c.OwnerID, patch.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, duplicateNameErr(patch.Name)
		}
	}

	patch.Apply(c)
	if err := u.Categories().Update(ctx, c); err != nil {
		return nil, err
	}
	if _, err := u.SaveChanges(ctx); err != nil {
		return nil, fmt.Errorf("updating category %d: %w", id, err)
	}
	return c, nil
}

// Delete removes a category that no item references. The usage check and the
// delete share one transaction so an item cannot be attached in between.
func (s *categoryService) Delete(ctx context.Context, id int64) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"category_id": id}
	defer func() { observe(ctx, s.observer, "category.delete", startedAt, fields, err) }()

	u := s.newUoW()
	return u.WithinTx(ctx, func(ctx context.Context) error {
		c, err := u.Categories().GetByID(ctx, id)
		if err != nil {
			return err
		}
		used, err := u.Items().Exists(ctx, repository.ItemFilter{CategoryID: &id})
		if err != nil {
			return err
		}
		if used {
			return fmt.Errorf("%w: cannot delete category %d because it is used by items", domain.ErrCategoryInUse, id)
		}
		return u.Categories().Remove(ctx, c)
	})
}

// DeleteWithItems detaches every item from the category and deletes it, all
// in one transaction. The items themselves survive with no category.
func (s *categoryService) DeleteWithItems(ctx context.Context, id int64) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"category_id": id}
	defer func() { observe(ctx, s.observer, "category.delete_with_items", startedAt, fields, err) }()

	u := s.newUoW()
	c, err := u.Categories().GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = u.WithinTx(ctx, func(ctx context.Context) error {
		items, err := u.Items().ListByCategory(ctx, id)
		if err != nil {
			return err
		}
		for _, it := range items {
			it.Detach()
		}
		if err := u.Items().UpdateMany(ctx, items); err != nil {
			return err
		}
		fields["detached"] = len(items)
		return u.Categories().Remove(ctx, c)
	})
	if err != nil {
		return fmt.Errorf("%w: deleting category %d with items: %w", domain.ErrTransactionFailure, id, err)
	}
	return nil
}

func (s *categoryService) IsUsed(ctx context.Context, id int64) (bool, error) {
	return s.newUoW().Items().Exists(ctx, repository.ItemFilter{CategoryID: &id})
}

func (s *categoryService) ItemsCount(ctx context.Context, id int64) (int, error) {
	return s.newUoW().Items().Count(ctx, repository.ItemFilter{CategoryID: &id})
}

func (s *categoryService) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	return s.newUoW().Categories().GetByID(ctx, id)
}

func (s *categoryService) GetAll(ctx context.Context) ([]*domain.Category, error) {
	return s.newUoW().Categories().GetAll(ctx)
}

func (s *categoryService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Category, error) {
	return s.newUoW().Categories().ListByOwner(ctx, ownerID)
}

func (s *categoryService) GetByName(ctx context.Context, ownerID, name string) (*domain.Category, error) {
	return s.newUoW().Categories().GetByName(ctx, ownerID, name)
}

func (s *categoryService) NameExists(ctx context.Context, ownerID, name string) (bool, error) {
	return s.nameTaken(ctx, s.newUoW(), ownerID, name, 0)
}

// nameTaken reports whether ownerID already has a category called name other
// than the one with id exceptID. Pass 0 to check against every category.
func (s *categoryService) nameTaken(ctx context.Context, u uow.UnitOfWork, ownerID, name string, exceptID int64) (bool, error) {
	existing, err := u.Categories().GetByName(ctx, ownerID, name)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return existing.ID != exceptID, nil
}

func duplicateNameErr(name string) error {
	return fmt.Errorf("%w: category with name %q already exists for this owner", domain.ErrDuplicateName, name)
}
