package preview

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/qdxstudio/internal/payload"
)

var (
	frameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	imageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	buttonStyle = lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230"))
	todayStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Sketch draws pl as a text mock-up of the popup, width columns wide.
func Sketch(pl payload.Payload, width int) string {
	if width < 20 {
		width = 20
	}

	lines := []string{
		headerStyle.Render(fmt.Sprintf("%s · %s/%s · %s", pl.Display, pl.Theme, pl.Template, pl.Location)),
	}

	for _, img := range pl.Images {
		line := fmt.Sprintf("▣ %d %s", img.Seq, img.URL)
		if img.Action != "" {
			line += fmt.Sprintf(" → %s (%s)", img.LinkURL, img.LinkOpt)
		}
		lines = append(lines, imageStyle.Render(truncate(line, width-4)))
	}

	if !pl.Msg.Empty() {
		if pl.Msg.Title != "" {
			lines = append(lines, titleStyle.Render(truncate(pl.Msg.Title, width-4)))
		}
		if pl.Msg.Text != "" {
			lines = append(lines, lipgloss.NewStyle().Width(width-4).Render(pl.Msg.Text))
		}
	}

	if len(pl.Buttons) > 0 {
		rendered := make([]string, 0, 2*len(pl.Buttons))
		for i, b := range pl.Buttons {
			if i > 0 {
				rendered = append(rendered, " ")
			}
			rendered = append(rendered, buttonStyle.Render(b.Text))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}

	if len(pl.Show) == 0 {
		lines = append(lines, emptyStyle.Render("(empty popup)"))
	}
	if pl.Today == "Y" {
		lines = append(lines, todayStyle.Render("☐ 오늘 하루 보지 않기"))
	}

	return frameStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func truncate(s string, max int) string {
	r := []rune(s)
	if max <= 1 || len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// TerminalRenderer is a Renderer drawing sketches to a writer.
type TerminalRenderer struct {
	w     io.Writer
	width int
}

// NewTerminalRenderer returns a renderer writing to w.
func NewTerminalRenderer(w io.Writer, width int) *TerminalRenderer {
	return &TerminalRenderer{w: w, width: width}
}

// ShowMsg draws p.
func (r *TerminalRenderer) ShowMsg(id string, p payload.Payload) error {
	if r == nil || r.w == nil {
		return ErrRendererUnavailable
	}
	_, err := fmt.Fprintln(r.w, Sketch(p, r.width))
	return err
}
