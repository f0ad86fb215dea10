package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/itemtracker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestValidator() *Validator {
	return New(domain.NewFixedClock(now))
}

func TestCreateCategoryRequest(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name    string
		req     CreateCategoryRequest
		wantErr string
	}{
		{"valid long hex", CreateCategoryRequest{Name: "Work Stuff", Color: "#FF5733"}, ""},
		{"valid short hex", CreateCategoryRequest{Name: "home_chores-2", Color: "#f57"}, ""},
		{"unicode letters", CreateCategoryRequest{Name: "Робота", Color: "#000"}, ""},
		{"missing name", CreateCategoryRequest{Color: "#000"}, "name is required"},
		{"blank name", CreateCategoryRequest{Name: "   ", Color: "#000"}, "name contains invalid characters"},
		{"bad characters", CreateCategoryRequest{Name: "Work!", Color: "#000"}, "name contains invalid characters"},
		{"too long", CreateCategoryRequest{Name: strings.Repeat("a", 101), Color: "#000"}, "name cannot exceed 100 characters"},
		{"missing color", CreateCategoryRequest{Name: "Work"}, "color is required"},
		{"four digit hex", CreateCategoryRequest{Name: "Work", Color: "#abcd"}, "color must be a valid hex color"},
		{"no hash", CreateCategoryRequest{Name: "Work", Color: "FF5733"}, "color must be a valid hex color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestUpdateCategoryRequest_EmptyFieldsAreSkipped(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.Struct(UpdateCategoryRequest{}))
	assert.NoError(t, v.Struct(UpdateCategoryRequest{Color: "#123456"}))
	assert.Error(t, v.Struct(UpdateCategoryRequest{Color: "red"}))
	assert.Error(t, v.Struct(UpdateCategoryRequest{Name: "bad/name"}))

	patch := UpdateCategoryRequest{Name: "  Trimmed  "}.ToPatch()
	assert.Equal(t, "Trimmed", patch.Name)
}

func TestCreateItemRequest(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name    string
		req     CreateItemRequest
		wantErr string
	}{
		{"minimal", CreateItemRequest{Name: "Task"}, ""},
		{"full", CreateItemRequest{
			Name:           "Task",
			Description:    domain.Ptr("details"),
			EstimatedHours: domain.Ptr(0),
			Priority:       domain.Ptr(10),
			CategoryID:     domain.Ptr(int64(3)),
			CompletedAt:    domain.Ptr(now.Add(-time.Minute)),
		}, ""},
		{"missing name", CreateItemRequest{}, "name is required"},
		{"long name", CreateItemRequest{Name: strings.Repeat("x", 201)}, "name cannot exceed 200 characters"},
		{"long description", CreateItemRequest{Name: "t", Description: domain.Ptr(strings.Repeat("d", 1001))}, "description cannot exceed 1000 characters"},
		{"negative hours", CreateItemRequest{Name: "t", EstimatedHours: domain.Ptr(-1)}, "estimated_hours must be at least 0"},
		{"too many hours", CreateItemRequest{Name: "t", EstimatedHours: domain.Ptr(1001)}, "estimated_hours cannot exceed 1000"},
		{"priority zero", CreateItemRequest{Name: "t", Priority: domain.Ptr(0)}, "priority must be at least 1"},
		{"priority eleven", CreateItemRequest{Name: "t", Priority: domain.Ptr(11)}, "priority cannot exceed 10"},
		{"category zero", CreateItemRequest{Name: "t", CategoryID: domain.Ptr(int64(0))}, "category_id must be greater than 0"},
		{"stale completion", CreateItemRequest{Name: "t", CompletedAt: domain.Ptr(now.Add(-6 * time.Minute))}, "completed_at cannot be in the past"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreateItemRequest_ReportsEveryFailure(t *testing.T) {
	err := newTestValidator().Struct(CreateItemRequest{Priority: domain.Ptr(42)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "priority cannot exceed 10")
}

func TestUpdateItemRequest_OptionalName(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.Struct(UpdateItemRequest{}))
	assert.Error(t, v.Struct(UpdateItemRequest{Priority: domain.Ptr(11)}))

	patch := UpdateItemRequest{Priority: domain.Ptr(3)}.ToPatch()
	assert.Empty(t, patch.Name)
	assert.Equal(t, 3, *patch.Priority)
}

func TestUpdatePriorityRequest(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.Struct(UpdatePriorityRequest{Priority: 1}))
	assert.NoError(t, v.Struct(UpdatePriorityRequest{Priority: 10}))
	assert.ErrorIs(t, v.Struct(UpdatePriorityRequest{Priority: 11}), domain.ErrValidation)
	assert.ErrorIs(t, v.Struct(UpdatePriorityRequest{Priority: 0}), domain.ErrValidation)
}

func TestMoveCategoryRequest(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.Struct(MoveCategoryRequest{FromCategoryID: 1, ToCategoryID: 2}))

	err := v.Struct(MoveCategoryRequest{FromCategoryID: 3, ToCategoryID: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be different")

	err = v.Struct(MoveCategoryRequest{FromCategoryID: 0, ToCategoryID: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "from_category_id must be greater than 0")
}

func TestIDListRequest(t *testing.T) {
	v := newTestValidator()

	many := make([]int64, 101)
	for i := range many {
		many[i] = int64(i + 1)
	}

	assert.NoError(t, v.Struct(IDListRequest{IDs: []int64{1, 2, 999}}))
	assert.Error(t, v.Struct(IDListRequest{}))
	assert.Error(t, v.Struct(IDListRequest{IDs: []int64{}}))
	assert.Error(t, v.Struct(IDListRequest{IDs: many}))

	err := v.Struct(IDListRequest{IDs: []int64{1, 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ids must not contain duplicates")

	err = v.Struct(IDListRequest{IDs: []int64{4, -2}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be greater than 0")
}

func TestBulkCreateRequest(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.Struct(BulkCreateRequest{Items: []CreateItemRequest{{Name: "a"}, {Name: "b"}}}))
	assert.Error(t, v.Struct(BulkCreateRequest{}))

	tooMany := make([]CreateItemRequest, 51)
	for i := range tooMany {
		tooMany[i] = CreateItemRequest{Name: "x"}
	}
	assert.Error(t, v.Struct(BulkCreateRequest{Items: tooMany}))

	err := v.Struct(BulkCreateRequest{Items: []CreateItemRequest{{Name: "ok"}, {Name: "bad", Priority: domain.Ptr(11)}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "priority cannot exceed 10")

	items := BulkCreateRequest{Items: []CreateItemRequest{{Name: "a"}}}.ToItems("owner-7")
	require.Len(t, items, 1)
	assert.Equal(t, "owner-7", items[0].OwnerID)
}

func TestPrioritiesRequest_RejectsOutOfRange(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.Struct(PrioritiesRequest{Priorities: map[int64]int{1: 5, 2: 10}}))

	err := v.Struct(PrioritiesRequest{Priorities: map[int64]int{1: 5, 2: 11}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "cannot exceed 10")

	err = v.Struct(PrioritiesRequest{Priorities: map[int64]int{-1: 5}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be greater than 0")

	assert.Error(t, v.Struct(PrioritiesRequest{}))
}
