package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/itemtracker/internal/db"
	"github.com/alexanderramin/itemtracker/internal/domain"
)

// itemColumns is the canonical SELECT column list for items.
const itemColumns = `id, name, description, estimated_hours, priority, category_id, is_looped, completed_at, owner_id`

// SQLiteItemRepo implements ItemRepo using a SQLite database.
type SQLiteItemRepo struct {
	t Tracker
}

// NewSQLiteItemRepo creates a new SQLiteItemRepo bound to t.
func NewSQLiteItemRepo(t Tracker) *SQLiteItemRepo {
	return &SQLiteItemRepo{t: t}
}

var _ ItemRepo = (*SQLiteItemRepo)(nil)

func (r *SQLiteItemRepo) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ?`
	row := r.t.Conn().QueryRowContext(ctx, query, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %d: %w", id, domain.ErrItemNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning item: %w", err)
	}
	return it, nil
}

func (r *SQLiteItemRepo) GetAll(ctx context.Context) ([]*domain.Item, error) {
	return r.list(ctx, "listing items", `SELECT `+itemColumns+` FROM items ORDER BY id`)
}

func (r *SQLiteItemRepo) Add(ctx context.Context, it *domain.Item) error {
	if it == nil {
		return fmt.Errorf("adding item: nil item")
	}
	r.t.Stage(func(ctx context.Context, conn db.DBTX) error {
		return insertItem(ctx, conn, it)
	})
	return nil
}

func (r *SQLiteItemRepo) AddMany(ctx context.Context, items []*domain.Item) error {
	for _, it := range items {
		if err := r.Add(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteItemRepo) Update(ctx context.Context, it *domain.Item) error {
	if it == nil || it.ID == 0 {
		return fmt.Errorf("updating item: missing id")
	}
	r.t.Stage(func(ctx context.Context, conn db.DBTX) error {
		return updateItem(ctx, conn, it)
	})
	return nil
}

func (r *SQLiteItemRepo) UpdateMany(ctx context.Context, items []*domain.Item) error {
	for _, it := range items {
		if err := r.Update(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteItemRepo) Remove(ctx context.Context, it *domain.Item) error {
	if it == nil || it.ID == 0 {
		return fmt.Errorf("removing item: missing id")
	}
	id := it.ID
	r.t.Stage(func(ctx context.Context, conn db.DBTX) error {
		return deleteRow(ctx, conn, `DELETE FROM items WHERE id = ?`, id, "item", domain.ErrItemNotFound)
	})
	return nil
}

func (r *SQLiteItemRepo) RemoveMany(ctx context.Context, items []*domain.Item) error {
	for _, it := range items {
		if err := r.Remove(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteItemRepo) Exists(ctx context.Context, f ItemFilter) (bool, error) {
	w := itemWhere(f)
	var exists int
	query := `SELECT EXISTS(SELECT 1 FROM items` + w.String() + `)`
	if err := r.t.Conn().QueryRowContext(ctx, query, w.args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking items: %w", err)
	}
	return exists == 1, nil
}

func (r *SQLiteItemRepo) Count(ctx context.Context, f ItemFilter) (int, error) {
	w := itemWhere(f)
	var n int
	query := `SELECT COUNT(*) FROM items` + w.String()
	if err := r.t.Conn().QueryRowContext(ctx, query, w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return n, nil
}

func (r *SQLiteItemRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = ? ORDER BY priority, id`
	return r.list(ctx, "listing items by owner", query, ownerID)
}

func (r *SQLiteItemRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE category_id = ? ORDER BY id`
	return r.list(ctx, "listing items by category", query, categoryID)
}

func (r *SQLiteItemRepo) ListLooped(ctx context.Context, ownerID string) ([]*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = ? AND is_looped = 1 ORDER BY id`
	return r.list(ctx, "listing looped items", query, ownerID)
}

func (r *SQLiteItemRepo) ListByPriority(ctx context.Context, ownerID string, priority int) ([]*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = ? AND priority = ? ORDER BY id`
	return r.list(ctx, "listing items by priority", query, ownerID, priority)
}

func (r *SQLiteItemRepo) list(ctx context.Context, what, query string, args ...any) ([]*domain.Item, error) {
	rows, err := r.t.Conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	defer rows.Close()

	var items []*domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

func itemWhere(f ItemFilter) *where {
	w := &where{}
	if f.OwnerID != nil {
		w.add("owner_id = ?", *f.OwnerID)
	}
	if f.CategoryID != nil {
		w.add("category_id = ?", *f.CategoryID)
	}
	if f.Priority != nil {
		w.add("priority = ?", *f.Priority)
	}
	if f.Looped != nil {
		if *f.Looped {
			w.add("is_looped = ?", 1)
		} else {
			w.add("COALESCE(is_looped, 0) = ?", 0)
		}
	}
	return w
}

func insertItem(ctx context.Context, conn db.DBTX, it *domain.Item) error {
	query := `INSERT INTO items (name, description, estimated_hours, priority, category_id, is_looped, completed_at, owner_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := conn.ExecContext(ctx, query,
		it.Name,
		nullable(it.Description),
		nullable(it.EstimatedHours),
		nullable(it.Priority),
		nullable(it.CategoryID),
		nullableBoolToInt(it.IsLooped),
		nullableTimeToString(it.CompletedAt, timeLayout),
		it.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("inserting item: %w", mapConstraintErr(err, domain.ErrCategoryNotFound))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading item id: %w", err)
	}
	it.ID = id
	return nil
}

func updateItem(ctx context.Context, conn db.DBTX, it *domain.Item) error {
	query := `UPDATE items SET name = ?, description = ?, estimated_hours = ?, priority = ?,
		category_id = ?, is_looped = ?, completed_at = ?, owner_id = ?
		WHERE id = ?`
	res, err := conn.ExecContext(ctx, query,
		it.Name,
		nullable(it.Description),
		nullable(it.EstimatedHours),
		nullable(it.Priority),
		nullable(it.CategoryID),
		nullableBoolToInt(it.IsLooped),
		nullableTimeToString(it.CompletedAt, timeLayout),
		it.OwnerID,
		it.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item %d: %w", it.ID, mapConstraintErr(err, domain.ErrCategoryNotFound))
	}
	return requireOneRow(res, "updating item", it.ID, domain.ErrItemNotFound)
}

func deleteRow(ctx context.Context, conn db.DBTX, query string, id int64, what string, notFound error) error {
	res, err := conn.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting %s %d: %w", what, id, err)
	}
	return requireOneRow(res, "deleting "+what, id, notFound)
}

// requireOneRow fails when a write keyed by id touched nothing, which means
// the row vanished between read and flush.
func requireOneRow(res sql.Result, what string, id int64, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %d: %w", what, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, notFound)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(s rowScanner) (*domain.Item, error) {
	var it domain.Item
	var description, completedAt sql.NullString
	var hours, priority, categoryID, looped sql.NullInt64

	if err := s.Scan(
		&it.ID, &it.Name, &description, &hours, &priority,
		&categoryID, &looped, &completedAt, &it.OwnerID,
	); err != nil {
		return nil, err
	}

	it.Description = stringPtr(description)
	it.EstimatedHours = intPtr(hours)
	it.Priority = intPtr(priority)
	it.CategoryID = int64Ptr(categoryID)
	it.IsLooped = boolPtr(looped)
	it.CompletedAt = parseNullableTime(completedAt, timeLayout)
	return &it, nil
}
