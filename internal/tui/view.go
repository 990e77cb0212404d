package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/qdxstudio/internal/catalog"
	"github.com/alexisbeaulieu97/qdxstudio/internal/editor"
	"github.com/alexisbeaulieu97/qdxstudio/internal/payload"
	"github.com/alexisbeaulieu97/qdxstudio/internal/preview"
	"github.com/alexisbeaulieu97/qdxstudio/internal/tui/components"
)

// View renders the current state of the model.
func (m Model) View() string {
	var sections []string

	sections = append(sections, titleStyle.Render(fmt.Sprintf("qdx popup editor • %s", m.title())))

	if m.session.Step() == editor.StepSelect {
		sections = append(sections, sectionStyle.Render("Display type"), m.renderPicker())
		sections = append(sections, helpStyle.Render("↑/↓ choose • enter select • q quit"))
	} else {
		filled, total := m.filledFields()
		sections = append(sections,
			sectionStyle.Render("Content"),
			components.NewProgress(total).View(filled),
			m.renderForm(),
			sectionStyle.Render("Preview"),
			m.renderPreview(),
		)
		sections = append(sections, helpStyle.Render("tab move • space toggle • ctrl+b button • ctrl+n slide • ctrl+d remove • ctrl+l location • ctrl+y today • ctrl+j json • esc back • ctrl+s save"))
	}

	summary := components.NewSummary(components.SummaryData{
		Validated: m.validated,
		Failures:  m.failures,
		Saved:     m.saved,
		Cancelled: m.cancelled,
	}).View()
	if strings.TrimSpace(summary) != "" {
		sections = append(sections, summaryStyle.Render(summary))
	}
	if m.status != "" {
		sections = append(sections, statusStyle.Render(m.status))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) title() string {
	if m.session.Step() == editor.StepEdit {
		return string(m.session.Display())
	}
	return "choose a display type"
}

func (m Model) renderPicker() string {
	lines := make([]string, 0, len(m.displays))
	for i, dt := range m.displays {
		marker := "  "
		name := string(dt)
		if i == m.cursor {
			marker = cursorStyle.Render("▸ ")
			name = cursorStyle.Render(name)
		}
		slots := components.NewSlotList(string(dt)).String()
		lines = append(lines, fmt.Sprintf("%s%-6s %s", marker, name, helpStyle.Render(slots)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderForm() string {
	display := string(m.session.Display())
	lines := make([]string, 0, len(m.rows)+2)
	for i, r := range m.rows {
		marker := "  "
		if i == m.focus {
			marker = cursorStyle.Render("▸ ")
		}
		switch r.kind {
		case rowToggle:
			state := offStyle.Render("off")
			if m.session.Enabled(r.slot) {
				state = onStyle.Render("on")
			}
			if !catalog.CanToggle(display, r.slot) {
				state = lockedStyle.Render(state + " (locked)")
			}
			lines = append(lines, marker+labelStyle.Render(r.label)+state)
		case rowInput:
			in := m.inputs[r.key]
			lines = append(lines, marker+labelStyle.Render("  "+r.label)+in.View())
		}
	}

	today := "off"
	if m.session.Today() {
		today = "on"
	}
	lines = append(lines, fmt.Sprintf("  %s%s", labelStyle.Render("Location"), m.session.Settings().Location))
	lines = append(lines, fmt.Sprintf("  %s%s", labelStyle.Render("Hide today"), today))
	return strings.Join(lines, "\n")
}

func (m Model) renderPreview() string {
	pl := m.session.Payload()
	if m.showJSON {
		body, err := payload.Encode(pl, false)
		if err != nil {
			return statusStyle.Render(err.Error())
		}
		return jsonStyle.Render(string(body))
	}
	return preview.Sketch(pl, m.width)
}
