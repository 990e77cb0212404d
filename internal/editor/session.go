package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/qdxstudio/internal/catalog"
	"github.com/alexisbeaulieu97/qdxstudio/internal/logger"
	"github.com/alexisbeaulieu97/qdxstudio/internal/payload"
)

// Step is the wizard page the session is on.
type Step int

const (
	StepSelect Step = iota + 1
	StepEdit
)

func (s Step) String() string {
	switch s {
	case StepSelect:
		return "select"
	case StepEdit:
		return "edit"
	}
	return "unknown"
}

// Button list bounds.
const (
	MinButtons = 1
	MaxButtons = 2
)

var (
	ErrNotEditing      = errors.New("no display type selected")
	ErrNotSelecting    = errors.New("display type already selected, go back first")
	ErrSlotUnavailable = errors.New("slot is not available for this display type")
	ErrButtonLimit     = fmt.Errorf("a popup needs between %d and %d buttons", MinButtons, MaxButtons)
	ErrNotSlide        = errors.New("image lists are only available for SLIDE")
	ErrUnknownEntry    = errors.New("no entry with that id")
	ErrInvalidLocation = errors.New("location must be TOP, MID or BOT")
)

// Session is one editing session: pick a display type, edit its content,
// optionally go back and pick another type without losing content.
type Session struct {
	step      Step
	settings  Settings
	buttons   []payload.ButtonEntry
	preserved *Preserved
	// slide images kept aside while a non-SLIDE type is being edited
	carried []payload.ImageEntry

	buttonIDs IDs
	imageIDs  IDs

	hasUserInput bool
	today        bool

	assembler *payload.Assembler
	log       *logger.Logger
}

// NewSession starts a session on the display type picker.
func NewSession(log *logger.Logger) *Session {
	return &Session{
		step:      StepSelect,
		assembler: payload.NewAssembler(log),
		log:       log.Component("editor"),
	}
}

// Step returns the current wizard page.
func (s *Session) Step() Step { return s.step }

// Display returns the selected display type, empty before the first Select.
func (s *Session) Display() catalog.DisplayType { return s.settings.Display }

// Settings returns a copy of the current settings.
func (s *Session) Settings() Settings {
	out := s.settings
	if g, ok := out.Image.(Gallery); ok {
		g.Images = cloneImages(g.Images)
		out.Image = g
	}
	return out
}

// Buttons returns a copy of the button list.
func (s *Session) Buttons() []payload.ButtonEntry { return cloneButtons(s.buttons) }

// HasUserInput reports whether anything has been typed since the last
// display type switch.
func (s *Session) HasUserInput() bool { return s.hasUserInput }

// Today reports the "don't show again today" option.
func (s *Session) Today() bool { return s.today }

// Select picks the display type and moves to the edit step. Content kept by
// Back is merged into the new type's defaults.
func (s *Session) Select(displayType string) error {
	if s.step != StepSelect {
		return ErrNotSelecting
	}
	dt := catalog.Normalize(displayType)
	if s.settings.Display != "" && s.settings.Display != dt {
		s.hasUserInput = false
	}

	if s.preserved != nil {
		s.settings, s.buttons = Merge(string(dt), *s.preserved)
		if dt == catalog.Slide {
			s.carried = nil
		} else {
			s.carried = cloneImages(s.preserved.Images)
		}
		s.preserved = nil
	} else {
		s.settings = NewSettings(string(dt))
		s.buttons = nil
		s.carried = nil
	}

	s.buttonIDs.ResetTo(NextButtonID(s.buttons))
	s.imageIDs.ResetTo(NextImageID(append(s.settings.Images(), s.carried...)))
	if len(s.buttons) == 0 {
		s.buttons = append(s.buttons, payload.ButtonEntry{ID: s.buttonIDs.Next(), Target: payload.TargetCurrent})
	}

	s.step = StepEdit
	s.log.Debug("display type selected", "display", string(dt))
	return nil
}

// Back returns to the picker, keeping content for the next Select.
func (s *Session) Back() error {
	if s.step != StepEdit {
		return ErrNotEditing
	}
	var images []payload.ImageEntry
	if s.settings.Display != catalog.Slide {
		images = s.carried
	}
	p := Preserve(s.settings, s.buttons, images)
	s.preserved = &p
	s.step = StepSelect
	return nil
}

// SetTitle sets the title text.
func (s *Session) SetTitle(v string) error {
	return s.editText(func() { s.settings.TitleContent = v }, v)
}

// SetBody sets the body text.
func (s *Session) SetBody(v string) error {
	return s.editText(func() { s.settings.BodyContent = v }, v)
}

func (s *Session) editText(apply func(), v string) error {
	if err := s.requireEdit(); err != nil {
		return err
	}
	apply()
	s.noteInput(v)
	s.autoEnable(catalog.SlotText, v)
	return nil
}

// SetImageURL sets the single image URL.
func (s *Session) SetImageURL(v string) error {
	return s.editPrimary(func(img *SingleImage) { img.URL = v }, v, true)
}

// SetLinkURL sets where a click on the single image leads.
func (s *Session) SetLinkURL(v string) error {
	return s.editPrimary(func(img *SingleImage) { img.LinkURL = v }, v, false)
}

// SetClickAction sets the single image click behaviour.
func (s *Session) SetClickAction(a payload.ClickAction) error {
	return s.editPrimary(func(img *SingleImage) { img.ClickAction = a }, "", false)
}

// SetLinkTarget sets the window the single image link opens in.
func (s *Session) SetLinkTarget(t payload.LinkTarget) error {
	return s.editPrimary(func(img *SingleImage) { img.LinkTarget = t }, "", false)
}

func (s *Session) editPrimary(apply func(*SingleImage), v string, content bool) error {
	if err := s.requireEdit(); err != nil {
		return err
	}
	img := s.settings.Primary()
	apply(&img)
	s.settings = s.settings.WithPrimary(img)
	s.noteInput(v)
	if content {
		s.autoEnable(catalog.SlotImage, v)
	}
	return nil
}

// SetLocation changes the anchor.
func (s *Session) SetLocation(v string) error {
	if err := s.requireEdit(); err != nil {
		return err
	}
	loc, ok := catalog.ParseLocation(v)
	if !ok {
		return ErrInvalidLocation
	}
	s.settings.Location = loc
	return nil
}

// SetEnabled switches a slot on or off.
func (s *Session) SetEnabled(slot catalog.Slot, on bool) error {
	if err := s.requireEdit(); err != nil {
		return err
	}
	if !catalog.CanToggle(string(s.settings.Display), slot) {
		return ErrSlotUnavailable
	}
	switch slot {
	case catalog.SlotImage:
		s.settings.ImageEnabled = on
	case catalog.SlotText:
		s.settings.TextEnabled = on
	case catalog.SlotButton:
		s.settings.ButtonEnabled = on
	}
	return nil
}

// Toggle flips a slot.
func (s *Session) Toggle(slot catalog.Slot) error {
	return s.SetEnabled(slot, !s.Enabled(slot))
}

// Enabled reports a slot's toggle.
func (s *Session) Enabled(slot catalog.Slot) bool {
	switch slot {
	case catalog.SlotImage:
		return s.settings.ImageEnabled
	case catalog.SlotText:
		return s.settings.TextEnabled
	case catalog.SlotButton:
		return s.settings.ButtonEnabled
	}
	return false
}

// SetToday sets the "don't show again today" option.
func (s *Session) SetToday(on bool) { s.today = on }

// AddButton appends an empty button and returns its id.
func (s *Session) AddButton() (int, error) {
	if err := s.requireEdit(); err != nil {
		return 0, err
	}
	if !catalog.Config(string(s.settings.Display)).Slots.Button {
		return 0, ErrSlotUnavailable
	}
	if len(s.buttons) >= MaxButtons {
		return 0, ErrButtonLimit
	}
	id := s.buttonIDs.Next()
	s.buttons = append(s.buttons, payload.ButtonEntry{ID: id, Target: payload.TargetCurrent})
	return id, nil
}

// RemoveButton deletes a button. The last button cannot be removed.
func (s *Session) RemoveButton(id int) error {
	if err := s.requireEdit(); err != nil {
		return err
	}
	idx := s.buttonIndex(id)
	if idx < 0 {
		return ErrUnknownEntry
	}
	if len(s.buttons) <= MinButtons {
		return ErrButtonLimit
	}
	s.buttons = append(s.buttons[:idx:idx], s.buttons[idx+1:]...)
	return nil
}

// UpdateButton replaces the text, URL and target of a button.
func (s *Session) UpdateButton(id int, text, url string, target payload.LinkTarget) error {
	if err := s.requireEdit(); err != nil {
		return err
	}
	idx := s.buttonIndex(id)
	if idx < 0 {
		return ErrUnknownEntry
	}
	s.buttons[idx].Text = text
	s.buttons[idx].URL = url
	s.buttons[idx].Target = target
	s.noteInput(text)
	s.noteInput(url)
	if strings.TrimSpace(text) != "" && catalog.CanToggle(string(s.settings.Display), catalog.SlotButton) {
		s.settings.ButtonEnabled = true
	}
	return nil
}

// AddImage appends an empty slide image and returns its id.
func (s *Session) AddImage() (int, error) {
	if err := s.requireSlide(); err != nil {
		return 0, err
	}
	id := s.imageIDs.Next()
	images := append(s.settings.Images(), payload.ImageEntry{ID: id, LinkTarget: payload.TargetCurrent})
	s.settings = s.settings.WithImages(images)
	return id, nil
}

// RemoveImage deletes a slide image.
func (s *Session) RemoveImage(id int) error {
	if err := s.requireSlide(); err != nil {
		return err
	}
	images := s.settings.Images()
	for i, img := range images {
		if img.ID == id {
			s.settings = s.settings.WithImages(append(images[:i:i], images[i+1:]...))
			return nil
		}
	}
	return ErrUnknownEntry
}

// UpdateImage replaces the fields of a slide image, keeping its id.
func (s *Session) UpdateImage(id int, entry payload.ImageEntry) error {
	if err := s.requireSlide(); err != nil {
		return err
	}
	images := s.settings.Images()
	for i := range images {
		if images[i].ID == id {
			entry.ID = id
			images[i] = entry
			s.settings = s.settings.WithImages(images)
			s.noteInput(entry.URL)
			s.noteInput(entry.LinkURL)
			s.autoEnable(catalog.SlotImage, entry.URL)
			return nil
		}
	}
	return ErrUnknownEntry
}

// Input is the assembler input for the current state. Content of slots
// switched off is withheld so the toggle always wins in the preview.
func (s *Session) Input() payload.Input {
	content := s.settings.Content()
	buttons := s.Buttons()
	if !content.ImageEnabled {
		content.ImageURL, content.LinkURL, content.ClickAction, content.Images = "", "", payload.ActionNone, nil
	}
	if !content.TextEnabled {
		content.Title, content.Body = "", ""
	}
	if !content.ButtonEnabled {
		buttons = nil
	}
	return payload.Input{
		Display:      string(s.settings.Display),
		Content:      content,
		Buttons:      buttons,
		HasUserInput: s.hasUserInput,
		Today:        s.today,
	}
}

// Payload assembles the renderer payload for the current state.
func (s *Session) Payload() payload.Payload {
	return s.assembler.Assemble(s.Input())
}

func (s *Session) requireEdit() error {
	if s.step != StepEdit {
		return ErrNotEditing
	}
	return nil
}

func (s *Session) requireSlide() error {
	if err := s.requireEdit(); err != nil {
		return err
	}
	if s.settings.Display != catalog.Slide {
		return ErrNotSlide
	}
	return nil
}

func (s *Session) noteInput(v string) {
	if strings.TrimSpace(v) != "" {
		s.hasUserInput = true
	}
}

// autoEnable turns a slot on the first time content is typed into it.
func (s *Session) autoEnable(slot catalog.Slot, v string) {
	if strings.TrimSpace(v) == "" || s.Enabled(slot) {
		return
	}
	if catalog.CanToggle(string(s.settings.Display), slot) {
		_ = s.SetEnabled(slot, true)
	}
}

func (s *Session) buttonIndex(id int) int {
	for i, b := range s.buttons {
		if b.ID == id {
			return i
		}
	}
	return -1
}
