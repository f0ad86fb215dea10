package domain

import "strings"

const (
	MaxCategoryNameLen  = 100
	MaxCategoryColorLen = 20
)

// Category groups items for a single owner. (OwnerID, Name) is unique.
type Category struct {
	ID      int64
	Name    string
	Color   string
	OwnerID string
}

// CategoryPatch carries the fields of a partial category update.
// Empty (or whitespace-only) fields are left untouched.
type CategoryPatch struct {
	Name  string
	Color string
}

// HasName reports whether the patch renames the category.
func (p CategoryPatch) HasName() bool {
	return strings.TrimSpace(p.Name) != ""
}

// HasColor reports whether the patch recolours the category.
func (p CategoryPatch) HasColor() bool {
	return strings.TrimSpace(p.Color) != ""
}

// Apply copies the provided fields onto c.
func (p CategoryPatch) Apply(c *Category) {
	if p.HasName() {
		c.Name = p.Name
	}
	if p.HasColor() {
		c.Color = p.Color
	}
}
