package validation

import (
	"strings"
	"time"

	"github.com/alexanderramin/itemtracker/internal/domain"
)

type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,max=100,categoryname"`
	Color string `json:"color" validate:"required,hexrgb"`
}

func (r CreateCategoryRequest) ToCategory(ownerID string) *domain.Category {
	return &domain.Category{
		Name:    strings.TrimSpace(r.Name),
		Color:   r.Color,
		OwnerID: ownerID,
	}
}

// UpdateCategoryRequest renames and/or recolours a category. Empty fields are
// left unchanged.
type UpdateCategoryRequest struct {
	Name  string `json:"name" validate:"omitempty,max=100,categoryname"`
	Color string `json:"color" validate:"omitempty,hexrgb"`
}

func (r UpdateCategoryRequest) ToPatch() domain.CategoryPatch {
	return domain.CategoryPatch{Name: strings.TrimSpace(r.Name), Color: r.Color}
}

type CreateItemRequest struct {
	Name           string     `json:"name" validate:"required,max=200"`
	Description    *string    `json:"description,omitempty" validate:"omitempty,max=1000"`
	EstimatedHours *int       `json:"estimated_hours,omitempty" validate:"omitempty,min=0,max=1000"`
	Priority       *int       `json:"priority,omitempty" validate:"omitempty,min=1,max=10"`
	CategoryID     *int64     `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	IsLooped       *bool      `json:"is_looped,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty" validate:"omitempty,notstale"`
}

func (r CreateItemRequest) ToItem(ownerID string) *domain.Item {
	return &domain.Item{
		Name:           r.Name,
		Description:    r.Description,
		EstimatedHours: r.EstimatedHours,
		Priority:       r.Priority,
		CategoryID:     r.CategoryID,
		IsLooped:       r.IsLooped,
		CompletedAt:    r.CompletedAt,
		OwnerID:        ownerID,
	}
}

type UpdateItemRequest struct {
	Name           string     `json:"name,omitempty" validate:"omitempty,max=200"`
	Description    *string    `json:"description,omitempty" validate:"omitempty,max=1000"`
	EstimatedHours *int       `json:"estimated_hours,omitempty" validate:"omitempty,min=0,max=1000"`
	Priority       *int       `json:"priority,omitempty" validate:"omitempty,min=1,max=10"`
	CategoryID     *int64     `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	IsLooped       *bool      `json:"is_looped,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

func (r UpdateItemRequest) ToPatch() domain.ItemPatch {
	return domain.ItemPatch{
		Name:           r.Name,
		Description:    r.Description,
		EstimatedHours: r.EstimatedHours,
		Priority:       r.Priority,
		CategoryID:     r.CategoryID,
		IsLooped:       r.IsLooped,
		CompletedAt:    r.CompletedAt,
	}
}

type UpdatePriorityRequest struct {
	Priority int `json:"priority" validate:"min=1,max=10"`
}

type MoveCategoryRequest struct {
	FromCategoryID int64 `json:"from_category_id" validate:"gt=0"`
	ToCategoryID   int64 `json:"to_category_id" validate:"gt=0,nefield=FromCategoryID"`
}

// IDListRequest names the items of a bulk delete, complete or duplicate.
type IDListRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1,max=100,unique,dive,gt=0"`
}

type BulkCreateRequest struct {
	Items []CreateItemRequest `json:"items" validate:"required,min=1,max=50,dive"`
}

func (r BulkCreateRequest) ToItems(ownerID string) []*domain.Item {
	items := make([]*domain.Item, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, it.ToItem(ownerID))
	}
	return items
}

// PrioritiesRequest maps item id to its new priority.
type PrioritiesRequest struct {
	Priorities map[int64]int `json:"priorities" validate:"required,min=1,max=100,dive,keys,gt=0,endkeys,min=1,max=10"`
}

// BulkUpdateItem names one item of a bulk update. Fields left nil keep their
// stored value.
type BulkUpdateItem struct {
	ID int64 `json:"id" validate:"gt=0"`
	UpdateItemRequest
}

// ApplyTo overlays the set fields onto it.
func (u BulkUpdateItem) ApplyTo(it *domain.Item) {
	if strings.TrimSpace(u.Name) != "" {
		it.Name = u.Name
	}
	if u.Description != nil {
		it.Description = u.Description
	}
	if u.EstimatedHours != nil {
		it.EstimatedHours = u.EstimatedHours
	}
	if u.Priority != nil {
		it.Priority = u.Priority
	}
	if u.CategoryID != nil {
		it.CategoryID = u.CategoryID
	}
	if u.IsLooped != nil {
		it.IsLooped = u.IsLooped
	}
	if u.CompletedAt != nil {
		it.CompletedAt = u.CompletedAt
	}
}

type BulkUpdateRequest struct {
	Items []BulkUpdateItem `json:"items" validate:"required,min=1,max=50,unique=ID,dive"`
}
