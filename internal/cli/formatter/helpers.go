package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		content = StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content
	}
	return box.Render(content)
}

// RelativeDateFrom describes t relative to now ("Today", "In 3d", "2w ago").
func RelativeDateFrom(t, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// FormatHours renders an optional hour estimate.
func FormatHours(h *int) string {
	if h == nil {
		return Dim("--")
	}
	return fmt.Sprintf("%dh", *h)
}

// Truncate shortens s to at most n cells, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	if n <= 0 || lipgloss.Width(s) <= n {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > n {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
