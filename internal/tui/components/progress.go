package components

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Progress renders how many form fields of the enabled slots are filled.
type Progress struct {
	bar   progress.Model
	total int
}

// NewProgress creates a progress component for the given number of fields.
func NewProgress(total int) Progress {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 30
	return Progress{bar: bar, total: total}
}

// View renders the bar for the number of filled fields.
func (p Progress) View(filled int) string {
	ratio := 0.0
	if p.total > 0 {
		ratio = math.Min(1.0, float64(filled)/float64(p.total))
	}
	label := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d/%d", filled, p.total))
	return lipgloss.JoinHorizontal(lipgloss.Left, label, " ", p.bar.ViewAs(ratio))
}
