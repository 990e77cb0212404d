package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/qdxstudio/internal/catalog"
	"github.com/alexisbeaulieu97/qdxstudio/internal/editor"
	"github.com/alexisbeaulieu97/qdxstudio/internal/tui/components"
	qdxerrors "github.com/alexisbeaulieu97/qdxstudio/pkg/errors"
)

var locationCycle = []catalog.Location{catalog.Top, catalog.Middle, catalog.Bottom}

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 40 {
			m.width = msg.Width / 2
		}
		return m, nil
	case PreviewSentMsg:
		if msg.Err != nil {
			m.status = "preview: " + msg.Err.Error()
		}
		return m, nil
	case TodayOptionMsg:
		m.session.SetToday(msg.Checked)
		return m, m.previewCmd()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancelled = true
			m.finished = true
			return m, tea.Quit
		}
		if m.session.Step() == editor.StepSelect {
			return m.updateSelect(msg)
		}
		return m.updateEdit(msg)
	case tea.QuitMsg:
		m.finished = true
		return m, nil
	}

	return m, nil
}

func (m Model) updateSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.displays)-1 {
			m.cursor++
		}
	case "enter", " ", "space":
		if err := m.session.Select(string(m.displays[m.cursor])); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = ""
		m.focus = 0
		m.inputs = nil
		m.rebuild()
		return m, m.previewCmd()
	case "q", "esc":
		m.cancelled = true
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if err := m.session.Back(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.cursor = m.displayIndex(m.session.Display())
		m.status = ""
		m.failures = nil
		m.validated = false
		return m, nil
	case "tab", "down":
		if len(m.rows) > 0 {
			m.focus = (m.focus + 1) % len(m.rows)
			m.syncFocus()
		}
		return m, nil
	case "shift+tab", "up":
		if len(m.rows) > 0 {
			m.focus = (m.focus - 1 + len(m.rows)) % len(m.rows)
			m.syncFocus()
		}
		return m, nil
	case "ctrl+s":
		return m.save()
	case "ctrl+j":
		m.showJSON = !m.showJSON
		return m, nil
	case "ctrl+y":
		m.session.SetToday(!m.session.Today())
		return m, m.previewCmd()
	case "ctrl+l":
		return m.cycleLocation()
	case "ctrl+b":
		return m.structural(func() error {
			_, err := m.session.AddButton()
			return err
		})
	case "ctrl+n":
		return m.structural(func() error {
			_, err := m.session.AddImage()
			return err
		})
	case "ctrl+d":
		return m.removeFocused()
	}

	r, ok := m.focusedRow()
	if !ok {
		return m, nil
	}
	if r.kind == rowToggle {
		if msg.Type == tea.KeySpace || msg.Type == tea.KeyEnter {
			if err := m.session.Toggle(r.slot); err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.status = ""
			return m, m.previewCmd()
		}
		return m, nil
	}

	in := m.inputs[r.key]
	before := in.Value()
	var cmd tea.Cmd
	in, cmd = in.Update(msg)
	m.inputs[r.key] = in
	if in.Value() == before {
		return m, cmd
	}
	if err := m.apply(r.key, in.Value()); err != nil {
		m.status = err.Error()
		return m, cmd
	}
	m.status = ""
	return m, tea.Batch(cmd, m.previewCmd())
}

func (m Model) save() (tea.Model, tea.Cmd) {
	m.validated = true
	m.failures = nil
	err := m.session.Validate()
	if err == nil {
		m.saved = true
		m.finished = true
		return m, tea.Quit
	}

	var ves qdxerrors.ValidationErrors
	if errors.As(err, &ves) {
		for _, ve := range ves {
			m.failures = append(m.failures, components.FieldStatus{Field: ve.Field, Message: ve.Message})
		}
		return m, nil
	}
	m.status = err.Error()
	return m, nil
}

func (m Model) cycleLocation() (tea.Model, tea.Cmd) {
	current := m.session.Settings().Location
	next := locationCycle[0]
	for i, loc := range locationCycle {
		if loc == current {
			next = locationCycle[(i+1)%len(locationCycle)]
			break
		}
	}
	if err := m.session.SetLocation(string(next)); err != nil {
		m.status = err.Error()
		return m, nil
	}
	return m, m.previewCmd()
}

func (m Model) structural(change func() error) (tea.Model, tea.Cmd) {
	if err := change(); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.status = ""
	m.rebuild()
	return m, m.previewCmd()
}

// removeFocused deletes the button or slide image under the cursor.
func (m Model) removeFocused() (tea.Model, tea.Cmd) {
	key := m.focusedKey()
	if id, ok := parseSlideKey(key); ok {
		return m.structural(func() error { return m.session.RemoveImage(id) })
	}
	if id, _, ok := parseButtonKey(key); ok {
		return m.structural(func() error { return m.session.RemoveButton(id) })
	}
	m.status = "nothing to remove here"
	return m, nil
}

func (m Model) displayIndex(dt catalog.DisplayType) int {
	for i, d := range m.displays {
		if d == dt {
			return i
		}
	}
	return 0
}
