package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable lays rows out under headers, padding each column to its widest
// cell. Widths are measured with lipgloss so styled cells line up.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	measure := func(cells []string) {
		for i := 0; i < len(widths) && i < len(cells); i++ {
			widths[i] = max(widths[i], lipgloss.Width(cells[i]))
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := w - lipgloss.Width(cell)
			b.WriteString(style(cell))
			if i < len(widths)-1 {
				b.WriteString(strings.Repeat(" ", pad+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })

	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("─", w)
	}
	writeRow(rule, Dim)

	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}
	return b.String()
}
