package formatter

import (
	"strings"

	"github.com/alexanderramin/itemtracker/internal/service"
)

// FormatBulkResult renders a bulk operation outcome with its error list.
func FormatBulkResult(res service.BulkOperationResult) string {
	if res.Success {
		return StyleGreen.Render("✔ ") + res.Message
	}

	var b strings.Builder
	b.WriteString(StyleRed.Render("✖ "))
	b.WriteString(res.Message)
	for _, e := range res.Errors {
		b.WriteString("\n  ")
		b.WriteString(Dim("- " + e))
	}
	return b.String()
}
