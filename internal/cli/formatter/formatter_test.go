package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/itemtracker/internal/domain"
	"github.com/alexanderramin/itemtracker/internal/service"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

func TestRelativeDateFrom(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months future", now.Add(90 * 24 * time.Hour), "In 3mo"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
		{"3 months past", now.Add(-90 * 24 * time.Hour), "3mo ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"ID", "NAME"}, [][]string{
		{"1", "short"},
		{"22", "a much longer name"},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "──")
	assert.Equal(t, lipgloss.Width(lines[2])+len("a much longer name")-len("short"), lipgloss.Width(lines[3]))
	assert.Equal(t, strings.Index(lines[2], "short"), strings.Index(lines[3], "a much"))
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	got := Truncate("abcdefghij", 5)
	assert.Equal(t, "abcd…", got)
	assert.Equal(t, 5, lipgloss.Width(got))
}

func TestPriorityBadge(t *testing.T) {
	assert.Contains(t, PriorityBadge(nil), "--")
	assert.Contains(t, PriorityBadge(domain.Ptr(2)), "P2")
	assert.Contains(t, PriorityBadge(domain.Ptr(9)), "P9")
}

func TestFormatCategoryList(t *testing.T) {
	cats := []*domain.Category{
		{ID: 1, Name: "Work", Color: "#FF0000"},
		{ID: 2, Name: "Home", Color: "#0F0"},
	}
	out := FormatCategoryList(cats, map[int64]int{1: 3})

	assert.Contains(t, out, "CATEGORIES")
	assert.Contains(t, out, "Work")
	assert.Contains(t, out, "#FF0000")
	assert.Contains(t, out, "3")
}

func TestFormatCategoryUsage(t *testing.T) {
	c := &domain.Category{ID: 4, Name: "Work"}
	assert.Equal(t, "Category Work (#4) is not used by any item.", FormatCategoryUsage(c, 0))
	assert.Equal(t, "Category Work (#4) is used by 1 item.", FormatCategoryUsage(c, 1))
	assert.Equal(t, "Category Work (#4) is used by 5 items.", FormatCategoryUsage(c, 5))
}

func TestItemStatusPill(t *testing.T) {
	pending := &domain.Item{}
	assert.Contains(t, ItemStatusPill(pending, now), "Pending")

	done := &domain.Item{CompletedAt: domain.Ptr(now.Add(-time.Hour))}
	assert.Contains(t, ItemStatusPill(done, now), "Done")

	scheduled := &domain.Item{CompletedAt: domain.Ptr(now.Add(72 * time.Hour))}
	assert.Contains(t, ItemStatusPill(scheduled, now), "In 3d")

	looped := &domain.Item{IsLooped: domain.Ptr(true)}
	assert.Contains(t, ItemStatusPill(looped, now), "Looped")
}

func TestFormatItemList(t *testing.T) {
	items := []*domain.Item{
		{ID: 7, Name: "Write tests", Priority: domain.Ptr(1), CategoryID: domain.Ptr(int64(3)), EstimatedHours: domain.Ptr(2)},
		{ID: 8, Name: "Unfiled", CategoryID: domain.Ptr(int64(99))},
	}
	out := FormatItemList(items, map[int64]string{3: "Work"}, now)

	assert.Contains(t, out, "Write tests")
	assert.Contains(t, out, "Work")
	assert.Contains(t, out, "#99")
	assert.Contains(t, out, "2h")
	assert.Contains(t, out, "P1")
}

func TestFormatItemStats(t *testing.T) {
	out := FormatItemStats(domain.ItemStats{Total: 3, Completed: 1, Pending: 2, CompletionRate: 33.33, TotalEstimatedHours: 7})
	assert.Contains(t, out, "ITEM STATS")
	assert.Contains(t, out, "33.33%")
	assert.Contains(t, out, "7h")
}

func TestFormatBulkResult(t *testing.T) {
	ok := service.BulkOperationResult{Success: true, AffectedCount: 2, Message: "Successfully deleted 2 items"}
	assert.Contains(t, FormatBulkResult(ok), "Successfully deleted 2 items")

	failed := service.BulkOperationResult{Message: "Failed to move items: boom", Errors: []string{"boom"}}
	out := FormatBulkResult(failed)
	assert.Contains(t, out, "Failed to move items")
	assert.Contains(t, out, "- boom")
}
