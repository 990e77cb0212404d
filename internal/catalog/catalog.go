// Package catalog holds the static description of every popup display type:
// which content slots it accepts and where it is anchored by default.
package catalog

import "strings"

// DisplayType is the outer visual shape of a popup.
type DisplayType string

const (
	Bar   DisplayType = "BAR"
	Box   DisplayType = "BOX"
	Slide DisplayType = "SLIDE"
	Star  DisplayType = "STAR"
)

// Slot is a content category a display type may accept.
type Slot string

const (
	SlotImage  Slot = "image"
	SlotText   Slot = "text"
	SlotButton Slot = "button"
)

// Location is the anchor of the popup on screen.
type Location string

const (
	Top    Location = "TOP"
	Middle Location = "MID"
	Bottom Location = "BOT"
)

// Slots records which content slots are allowed.
type Slots struct {
	Image  bool
	Text   bool
	Button bool
}

// Allows reports whether slot is accepted.
func (s Slots) Allows(slot Slot) bool {
	switch slot {
	case SlotImage:
		return s.Image
	case SlotText:
		return s.Text
	case SlotButton:
		return s.Button
	}
	return false
}

// List returns the allowed slots in image, text, button order.
func (s Slots) List() []Slot {
	out := []Slot{}
	for _, slot := range []Slot{SlotImage, SlotText, SlotButton} {
		if s.Allows(slot) {
			out = append(out, slot)
		}
	}
	return out
}

// DisplayConfig is one catalog entry.
type DisplayConfig struct {
	Type            DisplayType
	Slots           Slots
	DefaultLocation Location
	// ForceEnabled lists slots that are always on and cannot be toggled.
	ForceEnabled []Slot
}

// IsForced reports whether slot is locked on for this display type.
func (c DisplayConfig) IsForced(slot Slot) bool {
	for _, s := range c.ForceEnabled {
		if s == slot {
			return true
		}
	}
	return false
}

var displayConfigs = map[DisplayType]DisplayConfig{
	Bar: {
		Type:            Bar,
		Slots:           Slots{Image: true, Text: true, Button: false},
		DefaultLocation: Top,
	},
	Box: {
		Type:            Box,
		Slots:           Slots{Image: true, Text: true, Button: true},
		DefaultLocation: Top,
	},
	Slide: {
		Type:            Slide,
		Slots:           Slots{Image: true, Text: true, Button: true},
		DefaultLocation: Top,
	},
	Star: {
		Type:            Star,
		Slots:           Slots{Image: false, Text: true, Button: false},
		DefaultLocation: Top,
	},
}

// DisplayTypes returns every known display type in catalog order.
func DisplayTypes() []DisplayType {
	return []DisplayType{Bar, Box, Slide, Star}
}

// ParseDisplayType matches s case-insensitively against the known types.
func ParseDisplayType(s string) (DisplayType, bool) {
	dt := DisplayType(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := displayConfigs[dt]
	return dt, ok
}

// Config returns the entry for displayType. Unknown or empty types get BOX's entry.
func Config(displayType string) DisplayConfig {
	dt, ok := ParseDisplayType(displayType)
	if !ok {
		dt = Box
	}
	return clone(displayConfigs[dt])
}

// Normalize maps any input to a known display type, defaulting to BOX.
func Normalize(displayType string) DisplayType {
	return Config(displayType).Type
}

// CanToggle reports whether the user may switch slot on or off for displayType.
func CanToggle(displayType string, slot Slot) bool {
	cfg := Config(displayType)
	if !cfg.Slots.Allows(slot) {
		return false
	}
	return !cfg.IsForced(slot)
}

// DefaultLocation returns the anchor a freshly selected display type starts with.
func DefaultLocation(displayType string) Location {
	return Config(displayType).DefaultLocation
}

// ParseLocation accepts TOP, MID and BOT in any case.
func ParseLocation(s string) (Location, bool) {
	loc := Location(strings.ToUpper(strings.TrimSpace(s)))
	switch loc {
	case Top, Middle, Bottom:
		return loc, true
	}
	return "", false
}

func clone(cfg DisplayConfig) DisplayConfig {
	cfg.ForceEnabled = append([]Slot(nil), cfg.ForceEnabled...)
	return cfg
}
