package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/itemtracker/internal/domain"
)

// FormatCategoryList renders categories with their colour and item count.
// counts may be nil.
func FormatCategoryList(cats []*domain.Category, counts map[int64]int) string {
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		count := Dim("--")
		if n, ok := counts[c.ID]; ok {
			count = fmt.Sprintf("%d", n)
		}
		rows = append(rows, []string{
			Dim(fmt.Sprintf("#%d", c.ID)),
			Bold(c.Name),
			Swatch(c.Color),
			count,
		})
	}

	var b strings.Builder
	b.WriteString(Header("Categories"))
	b.WriteString("\n\n")
	b.WriteString(RenderTable([]string{"ID", "NAME", "COLOR", "ITEMS"}, rows))
	return b.String()
}

// FormatCategoryUsage summarises whether a category can be deleted.
func FormatCategoryUsage(c *domain.Category, count int) string {
	if count == 0 {
		return fmt.Sprintf("Category %s (#%d) is not used by any item.", c.Name, c.ID)
	}
	noun := "items"
	if count == 1 {
		noun = "item"
	}
	return fmt.Sprintf("Category %s (#%d) is used by %d %s.", c.Name, c.ID, count, noun)
}
