package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/itemtracker/internal/domain"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(s), "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		for _, part := range strings.Split(a, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			id, err := parseID(part)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// parsePriorities reads ID=PRIORITY pairs.
func parsePriorities(args []string) (map[int64]int, error) {
	out := make(map[int64]int, len(args))
	for _, a := range args {
		idStr, pStr, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("invalid priority pair %q (want ID=PRIORITY)", a)
		}
		id, err := parseID(idStr)
		if err != nil {
			return nil, err
		}
		p, err := strconv.Atoi(strings.TrimSpace(pStr))
		if err != nil {
			return nil, fmt.Errorf("invalid priority %q for item %d", pStr, id)
		}
		out[id] = p
	}
	return out, nil
}

// ownedCategory loads a category and rejects it when it belongs to someone
// else.
func ownedCategory(ctx context.Context, app *App, id int64) (*domain.Category, error) {
	c, err := app.Categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.OwnerID != app.Owner {
		return nil, fmt.Errorf("category %d: %w", id, domain.ErrCategoryNotFound)
	}
	return c, nil
}

func ownedItem(ctx context.Context, app *App, id int64) (*domain.Item, error) {
	it, err := app.Items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != app.Owner {
		return nil, fmt.Errorf("item %d: %w", id, domain.ErrItemNotFound)
	}
	return it, nil
}

// checkItemOwnership rejects any id owned by someone else. Unknown ids pass
// through; bulk operations skip them.
func checkItemOwnership(ctx context.Context, app *App, ids []int64) error {
	for _, id := range ids {
		it, err := app.Items.GetByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if it.OwnerID != app.Owner {
			return fmt.Errorf("item %d: %w", id, domain.ErrItemNotFound)
		}
	}
	return nil
}

func categoryNames(ctx context.Context, app *App) (map[int64]string, error) {
	cats, err := app.Categories.ListByOwner(ctx, app.Owner)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	return names, nil
}
