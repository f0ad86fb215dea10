package domain

import (
	"strings"
	"time"
)

const (
	MaxItemNameLen        = 200
	MaxItemDescriptionLen = 1000
	MinPriority           = 1
	MaxPriority           = 10

	// CopySuffix is appended to the name of a duplicated item.
	CopySuffix = " (Copy)"
)

// Item is a single task. Every optional column is a pointer; nil means unset.
//
// CompletedAt doubles as the completion marker: nil is pending, a value at or
// before now is completed, and a value after now is still pending.
type Item struct {
	ID             int64
	Name           string
	Description    *string
	EstimatedHours *int
	Priority       *int
	CategoryID     *int64
	IsLooped       *bool
	CompletedAt    *time.Time
	OwnerID        string
}

// IsCompleted reports whether the item counts as completed at now.
func (i *Item) IsCompleted(now time.Time) bool {
	return i.CompletedAt != nil && !i.CompletedAt.After(now)
}

// IsPending is the complement of IsCompleted.
func (i *Item) IsPending(now time.Time) bool {
	return !i.IsCompleted(now)
}

// Looped reports the loop flag, treating unset as false.
func (i *Item) Looped() bool {
	return BoolFromPtrWithDefault(false, i.IsLooped)
}

// Complete stamps the item as completed at now.
func (i *Item) Complete(now time.Time) {
	t := now.UTC()
	i.CompletedAt = &t
}

// ToggleLoop flips the loop flag. Unset is treated as false.
func (i *Item) ToggleLoop() {
	v := !i.Looped()
	i.IsLooped = &v
}

// Detach clears the category link.
func (i *Item) Detach() {
	i.CategoryID = nil
}

// MoveTo links the item to categoryID.
func (i *Item) MoveTo(categoryID int64) {
	id := categoryID
	i.CategoryID = &id
}

// SetPriority replaces the priority. Range checks belong to the caller.
func (i *Item) SetPriority(p int) {
	v := p
	i.Priority = &v
}

// Duplicate returns an unsaved copy of the item owned by owner. The copy keeps
// the descriptive fields and category, gets a marked name, and starts pending.
func (i *Item) Duplicate(owner string) *Item {
	return &Item{
		Name:           i.Name + CopySuffix,
		Description:    clonePtr(i.Description),
		EstimatedHours: clonePtr(i.EstimatedHours),
		Priority:       clonePtr(i.Priority),
		CategoryID:     clonePtr(i.CategoryID),
		IsLooped:       clonePtr(i.IsLooped),
		CompletedAt:    nil,
		OwnerID:        owner,
	}
}

// ItemPatch is a full replacement of an item's mutable fields, except that an
// empty Name keeps the current name.
type ItemPatch struct {
	Name           string
	Description    *string
	EstimatedHours *int
	Priority       *int
	CategoryID     *int64
	IsLooped       *bool
	CompletedAt    *time.Time
}

// Apply writes the patch onto it.
func (p ItemPatch) Apply(it *Item) {
	if strings.TrimSpace(p.Name) != "" {
		it.Name = p.Name
	}
	it.Description = clonePtr(p.Description)
	it.EstimatedHours = clonePtr(p.EstimatedHours)
	it.Priority = clonePtr(p.Priority)
	it.CategoryID = clonePtr(p.CategoryID)
	it.IsLooped = clonePtr(p.IsLooped)
	it.CompletedAt = clonePtr(p.CompletedAt)
}

// ItemStats summarises one owner's items at a point in time.
type ItemStats struct {
	Total               int
	Completed           int
	Pending             int
	Looped              int
	CompletionRate      float64
	TotalEstimatedHours int
}

// ComputeItemStats folds items into ItemStats using now as the completion
// cutoff. CompletionRate is a percentage rounded to two decimals.
func ComputeItemStats(items []*Item, now time.Time) ItemStats {
	var s ItemStats
	for _, it := range items {
		s.Total++
		if it.IsCompleted(now) {
			s.Completed++
		} else {
			s.Pending++
		}
		if it.Looped() {
			s.Looped++
		}
		s.TotalEstimatedHours += IntFromPtrWithDefault(0, it.EstimatedHours)
	}
	if s.Total > 0 {
		rate := float64(s.Completed) / float64(s.Total) * 100
		s.CompletionRate = float64(int64(rate*100+0.5)) / 100
	}
	return s
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
