// Package tui is the interactive popup editor: pick a display type, fill in
// its slots and watch the payload change with every keystroke.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/qdxstudio/internal/catalog"
	"github.com/alexisbeaulieu97/qdxstudio/internal/editor"
	"github.com/alexisbeaulieu97/qdxstudio/internal/payload"
	"github.com/alexisbeaulieu97/qdxstudio/internal/preview"
	"github.com/alexisbeaulieu97/qdxstudio/internal/tui/components"
)

// PreviewSentMsg reports the outcome of pushing a payload to a surface.
type PreviewSentMsg struct {
	Err error
}

// TodayOptionMsg carries the "don't show again today" checkbox state reported
// by a preview surface.
type TodayOptionMsg struct {
	Checked bool
}

type rowKind int

const (
	rowToggle rowKind = iota
	rowInput
)

type row struct {
	kind  rowKind
	slot  catalog.Slot
	key   string
	label string
}

// Options configures a Model.
type Options struct {
	// Presenter, when set, receives every payload change.
	Presenter *preview.Presenter
	// Width of the preview sketch.
	Width int
}

// Model contains the Bubbletea state of the editor.
type Model struct {
	session   *editor.Session
	presenter *preview.Presenter
	width     int

	displays []catalog.DisplayType
	cursor   int

	rows   []row
	focus  int
	inputs map[string]textinput.Model

	showJSON  bool
	status    string
	failures  []components.FieldStatus
	validated bool
	saved     bool
	cancelled bool
	finished  bool
}

// NewModel constructs the editor around session. A session already past
// the picker opens on the form.
func NewModel(session *editor.Session, opts Options) Model {
	width := opts.Width
	if width <= 0 {
		width = 56
	}
	m := Model{
		session:   session,
		presenter: opts.Presenter,
		width:     width,
		displays:  catalog.DisplayTypes(),
		inputs:    make(map[string]textinput.Model),
	}
	if session.Step() == editor.StepEdit {
		m.rebuild()
	}
	return m
}

// Init starts the Bubbletea program.
func (m Model) Init() tea.Cmd {
	if m.session.Step() == editor.StepEdit {
		return tea.Batch(textinput.Blink, m.previewCmd())
	}
	return nil
}

// Session exposes the edited session.
func (m Model) Session() *editor.Session { return m.session }

// Saved reports whether the user saved a valid popup.
func (m Model) Saved() bool { return m.saved }

// Cancelled reports whether the user quit without saving.
func (m Model) Cancelled() bool { return m.cancelled }

// IsFinished reports whether the program should exit.
func (m Model) IsFinished() bool { return m.finished }

// Payload is the current renderer payload.
func (m Model) Payload() payload.Payload { return m.session.Payload() }

// rebuild derives the form rows from the session and keeps existing inputs.
func (m *Model) rebuild() {
	cfg := catalog.Config(string(m.session.Display()))
	settings := m.session.Settings()

	var rows []row
	if cfg.Slots.Image {
		rows = append(rows, row{kind: rowToggle, slot: catalog.SlotImage, label: "Image"})
		if cfg.Type == catalog.Slide {
			for i, img := range settings.Images() {
				rows = append(rows, row{kind: rowInput, slot: catalog.SlotImage, key: slideKey(img.ID), label: fmt.Sprintf("Slide %d URL", i+1)})
			}
		} else {
			rows = append(rows,
				row{kind: rowInput, slot: catalog.SlotImage, key: "imageUrl", label: "Image URL"},
				row{kind: rowInput, slot: catalog.SlotImage, key: "linkUrl", label: "Click link"},
			)
		}
	}
	if cfg.Slots.Text {
		rows = append(rows,
			row{kind: rowToggle, slot: catalog.SlotText, label: "Text"},
			row{kind: rowInput, slot: catalog.SlotText, key: "title", label: "Title"},
			row{kind: rowInput, slot: catalog.SlotText, key: "body", label: "Body"},
		)
	}
	if cfg.Slots.Button {
		rows = append(rows, row{kind: rowToggle, slot: catalog.SlotButton, label: "Buttons"})
		for i, b := range m.session.Buttons() {
			rows = append(rows,
				row{kind: rowInput, slot: catalog.SlotButton, key: buttonKey(b.ID, "text"), label: fmt.Sprintf("Button %d text", i+1)},
				row{kind: rowInput, slot: catalog.SlotButton, key: buttonKey(b.ID, "url"), label: fmt.Sprintf("Button %d URL", i+1)},
			)
		}
	}

	live := make(map[string]textinput.Model, len(rows))
	for _, r := range rows {
		if r.kind != rowInput {
			continue
		}
		if in, ok := m.inputs[r.key]; ok {
			live[r.key] = in
			continue
		}
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 2048
		in.Width = m.width - 20
		in.SetValue(m.currentValue(r.key))
		live[r.key] = in
	}
	m.inputs = live
	m.rows = rows
	if m.focus >= len(m.rows) {
		m.focus = len(m.rows) - 1
	}
	if m.focus < 0 {
		m.focus = 0
	}
	m.syncFocus()
}

// syncFocus focuses the input under the cursor and blurs the rest.
func (m *Model) syncFocus() {
	for key, in := range m.inputs {
		if m.focusedKey() == key {
			in.Focus()
		} else {
			in.Blur()
		}
		m.inputs[key] = in
	}
}

func (m Model) focusedRow() (row, bool) {
	if m.focus < 0 || m.focus >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.focus], true
}

func (m Model) focusedKey() string {
	r, ok := m.focusedRow()
	if !ok || r.kind != rowInput {
		return ""
	}
	return r.key
}

func (m Model) currentValue(key string) string {
	settings := m.session.Settings()
	switch key {
	case "imageUrl":
		return settings.Primary().URL
	case "linkUrl":
		return settings.Primary().LinkURL
	case "title":
		return settings.TitleContent
	case "body":
		return settings.BodyContent
	}
	if id, ok := parseSlideKey(key); ok {
		for _, img := range settings.Images() {
			if img.ID == id {
				return img.URL
			}
		}
	}
	if id, field, ok := parseButtonKey(key); ok {
		for _, b := range m.session.Buttons() {
			if b.ID == id {
				if field == "text" {
					return b.Text
				}
				return b.URL
			}
		}
	}
	return ""
}

// apply writes an input value back into the session.
func (m *Model) apply(key, value string) error {
	switch key {
	case "imageUrl":
		return m.session.SetImageURL(value)
	case "linkUrl":
		if err := m.session.SetLinkURL(value); err != nil {
			return err
		}
		action := payload.ActionNone
		if strings.TrimSpace(value) != "" {
			action = payload.ActionLink
		}
		return m.session.SetClickAction(action)
	case "title":
		return m.session.SetTitle(value)
	case "body":
		return m.session.SetBody(value)
	}
	if id, ok := parseSlideKey(key); ok {
		for _, img := range m.session.Settings().Images() {
			if img.ID == id {
				img.URL = value
				return m.session.UpdateImage(id, img)
			}
		}
		return editor.ErrUnknownEntry
	}
	if id, field, ok := parseButtonKey(key); ok {
		for _, b := range m.session.Buttons() {
			if b.ID != id {
				continue
			}
			if field == "text" {
				b.Text = value
			} else {
				b.URL = value
			}
			return m.session.UpdateButton(id, b.Text, b.URL, b.Target)
		}
		return editor.ErrUnknownEntry
	}
	return fmt.Errorf("unknown field %q", key)
}

// filledFields counts non-blank inputs of the enabled slots.
func (m Model) filledFields() (filled, total int) {
	for _, r := range m.rows {
		if r.kind != rowInput || !m.session.Enabled(r.slot) {
			continue
		}
		total++
		if in, ok := m.inputs[r.key]; ok && strings.TrimSpace(in.Value()) != "" {
			filled++
		}
	}
	return filled, total
}

func (m Model) previewCmd() tea.Cmd {
	if m.presenter == nil {
		return nil
	}
	presenter := m.presenter
	pl := m.session.Payload()
	return func() tea.Msg {
		return PreviewSentMsg{Err: presenter.Preview(context.Background(), pl)}
	}
}

func slideKey(id int) string { return fmt.Sprintf("slide:%d:url", id) }

func buttonKey(id int, field string) string { return fmt.Sprintf("button:%d:%s", id, field) }

func parseSlideKey(key string) (int, bool) {
	var id int
	if _, err := fmt.Sscanf(key, "slide:%d:url", &id); err != nil {
		return 0, false
	}
	return id, true
}

func parseButtonKey(key string) (int, string, bool) {
	parts := strings.Split(key, ":")
	if len(parts) != 3 || parts[0] != "button" {
		return 0, "", false
	}
	var id int
	if _, err := fmt.Sscanf(parts[1], "%d", &id); err != nil {
		return 0, "", false
	}
	return id, parts[2], true
}
