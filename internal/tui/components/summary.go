package components

import (
	"fmt"
	"strings"
)

// FieldStatus is one submit check result.
type FieldStatus struct {
	Field   string
	Message string
}

// SummaryData aggregates what the footer reports.
type SummaryData struct {
	Validated bool
	Failures  []FieldStatus
	Saved     bool
	Cancelled bool
}

// Summary renders the outcome of the last save attempt.
type Summary struct {
	data SummaryData
}

// NewSummary creates a new Summary component.
func NewSummary(data SummaryData) Summary {
	return Summary{data: data}
}

// View renders the summary.
func (s Summary) View() string {
	var lines []string

	switch {
	case s.data.Cancelled:
		lines = append(lines, "Editing cancelled")
	case s.data.Saved:
		lines = append(lines, "✓ Popup saved")
	case s.data.Validated && len(s.data.Failures) == 0:
		lines = append(lines, "✓ Ready to save")
	}

	if len(s.data.Failures) > 0 {
		lines = append(lines, "Fix before saving:")
		for _, f := range s.data.Failures {
			lines = append(lines, fmt.Sprintf("  ✗ %s %s", f.Field, f.Message))
		}
	}

	return strings.Join(lines, "\n")
}
