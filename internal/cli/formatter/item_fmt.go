package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/itemtracker/internal/domain"
)

// ItemStatusPill shows whether the item is completed as of now.
func ItemStatusPill(it *domain.Item, now time.Time) string {
	switch {
	case it.IsCompleted(now):
		return StyleDim.Render("✔ Done")
	case it.CompletedAt != nil:
		return StyleBlue.Render("◷ Due " + RelativeDateFrom(*it.CompletedAt, now))
	case it.Looped():
		return StyleGreen.Render("↻ Looped")
	default:
		return StyleYellow.Render("○ Pending")
	}
}

// FormatItemList renders items as a table. categories maps category id to
// name for display and may be nil.
func FormatItemList(items []*domain.Item, categories map[int64]string, now time.Time) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		cat := Dim("--")
		if it.CategoryID != nil {
			if name, ok := categories[*it.CategoryID]; ok {
				cat = name
			} else {
				cat = fmt.Sprintf("#%d", *it.CategoryID)
			}
		}
		rows = append(rows, []string{
			Dim(fmt.Sprintf("#%d", it.ID)),
			Truncate(it.Name, 48),
			PriorityBadge(it.Priority),
			FormatHours(it.EstimatedHours),
			cat,
			ItemStatusPill(it, now),
		})
	}

	var b strings.Builder
	b.WriteString(Header("Items"))
	b.WriteString("\n\n")
	b.WriteString(RenderTable([]string{"ID", "NAME", "PRI", "EST", "CATEGORY", "STATUS"}, rows))
	return b.String()
}

func FormatItemStats(s domain.ItemStats) string {
	lines := []string{
		fmt.Sprintf("%-16s %d", "Total", s.Total),
		fmt.Sprintf("%-16s %s", "Completed", StyleGreen.Render(fmt.Sprintf("%d", s.Completed))),
		fmt.Sprintf("%-16s %s", "Pending", StyleYellow.Render(fmt.Sprintf("%d", s.Pending))),
		fmt.Sprintf("%-16s %d", "Looped", s.Looped),
		fmt.Sprintf("%-16s %.2f%%", "Completion rate", s.CompletionRate),
		fmt.Sprintf("%-16s %dh", "Estimated", s.TotalEstimatedHours),
	}
	return RenderBox("Item stats", strings.Join(lines, "\n"))
}
