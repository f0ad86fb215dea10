package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Header renders an upper-cased section title over a dim rule.
func Header(text string) string {
	upper := strings.ToUpper(text)
	rule := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(rule))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// Swatch renders a block in the category's own colour followed by the hex
// code. Colours lipgloss cannot parse fall back to the dim style.
func Swatch(hex string) string {
	if hex == "" {
		return StyleDim.Render("--")
	}
	block := lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■")
	return block + " " + hex
}

// PriorityBadge colours a priority: 1-3 red, 4-6 yellow, 7 and up dim.
// Lower numbers are more urgent.
func PriorityBadge(p *int) string {
	if p == nil {
		return StyleDim.Render("--")
	}
	label := fmt.Sprintf("P%d", *p)
	switch {
	case *p <= 3:
		return StyleRed.Render(label)
	case *p <= 6:
		return StyleYellow.Render(label)
	default:
		return StyleDim.Render(label)
	}
}
