package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/itemtracker/internal/db"
	"github.com/alexanderramin/itemtracker/internal/domain"
)

const categoryColumns = `id, name, color, owner_id`

// SQLiteCategoryRepo implements CategoryRepo using a SQLite database.
type SQLiteCategoryRepo struct {
	t Tracker
}

// NewSQLiteCategoryRepo creates a new SQLiteCategoryRepo bound to t.
func NewSQLiteCategoryRepo(t Tracker) *SQLiteCategoryRepo {
	return &SQLiteCategoryRepo{t: t}
}

var _ CategoryRepo = (*SQLiteCategoryRepo)(nil)

func (r *SQLiteCategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = ?`
	c, err := scanCategory(r.t.Conn().QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %d: %w", id, domain.ErrCategoryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning category: %w", err)
	}
	return c, nil
}

func (r *SQLiteCategoryRepo) GetByName(ctx context.Context, ownerID, name string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE owner_id = ? AND name = ?`
	c, err := scanCategory(r.t.Conn().QueryRowContext(ctx, query, ownerID, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %q: %w", name, domain.ErrCategoryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning category: %w", err)
	}
	return c, nil
}

func (r *SQLiteCategoryRepo) GetAll(ctx context.Context) ([]*domain.Category, error) {
	return r.list(ctx, "listing categories", `SELECT `+categoryColumns+` FROM categories ORDER BY id`)
}

func (r *SQLiteCategoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE owner_id = ? ORDER BY name, id`
	return r.list(ctx, "listing categories by owner", query, ownerID)
}

func (r *SQLiteCategoryRepo) Add(ctx context.Context, c *domain.Category) error {
	if c == nil {
		return fmt.Errorf("adding category: nil category")
	}
	r.t.Stage(func(ctx context.Context, conn db.DBTX) error {
		res, err := conn.ExecContext(ctx,
			`INSERT INTO categories (name, color, owner_id) VALUES (?, ?, ?)`,
			c.Name, c.Color, c.OwnerID)
		if err != nil {
			return fmt.Errorf("inserting category: %w", mapConstraintErr(err, domain.ErrNotFound))
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading category id: %w", err)
		}
		c.ID = id
		return nil
	})
	return nil
}

func (r *SQLiteCategoryRepo) AddMany(ctx context.Context, cats []*domain.Category) error {
	for _, c := range cats {
		if err := r.Add(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteCategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	if c == nil || c.ID == 0 {
		return fmt.Errorf("updating category: missing id")
	}
	r.t.Stage(func(ctx context.Context, conn db.DBTX) error {
		res, err := conn.ExecContext(ctx,
			`UPDATE categories SET name = ?, color = ?, owner_id = ? WHERE id = ?`,
			c.Name, c.Color, c.OwnerID, c.ID)
		if err != nil {
			return fmt.Errorf("updating category %d: %w", c.ID, mapConstraintErr(err, domain.ErrNotFound))
		}
		return requireOneRow(res, "updating category", c.ID, domain.ErrCategoryNotFound)
	})
	return nil
}

func (r *SQLiteCategoryRepo) UpdateMany(ctx context.Context, cats []*domain.Category) error {
	for _, c := range cats {
		if err := r.Update(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteCategoryRepo) Remove(ctx context.Context, c *domain.Category) error {
	if c == nil || c.ID == 0 {
		return fmt.Errorf("removing category: missing id")
	}
	id := c.ID
	r.t.Stage(func(ctx context.Context, conn db.DBTX) error {
		return deleteRow(ctx, conn, `DELETE FROM categories WHERE id = ?`, id, "category", domain.ErrCategoryNotFound)
	})
	return nil
}

func (r *SQLiteCategoryRepo) RemoveMany(ctx context.Context, cats []*domain.Category) error {
	for _, c := range cats {
		if err := r.Remove(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteCategoryRepo) Exists(ctx context.Context, f CategoryFilter) (bool, error) {
	w := categoryWhere(f)
	var exists int
	query := `SELECT EXISTS(SELECT 1 FROM categories` + w.String() + `)`
	if err := r.t.Conn().QueryRowContext(ctx, query, w.args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking categories: %w", err)
	}
	return exists == 1, nil
}

func (r *SQLiteCategoryRepo) Count(ctx context.Context, f CategoryFilter) (int, error) {
	w := categoryWhere(f)
	var n int
	if err := r.t.Conn().QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`+w.String(), w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting categories: %w", err)
	}
	return n, nil
}

func (r *SQLiteCategoryRepo) list(ctx context.Context, what, query string, args ...any) ([]*domain.Category, error) {
	rows, err := r.t.Conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	defer rows.Close()

	var cats []*domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return cats, nil
}

func categoryWhere(f CategoryFilter) *where {
	w := &where{}
	if f.OwnerID != nil {
		w.add("owner_id = ?", *f.OwnerID)
	}
	if f.Name != nil {
		w.add("name = ?", *f.Name)
	}
	return w
}

func scanCategory(s rowScanner) (*domain.Category, error) {
	var c domain.Category
	if err := s.Scan(&c.ID, &c.Name, &c.Color, &c.OwnerID); err != nil {
		return nil, err
	}
	return &c, nil
}
