package components

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/qdxstudio/internal/catalog"
)

// SlotEntry is one content slot as shown on the display type picker.
type SlotEntry struct {
	Slot    catalog.Slot
	Allowed bool
	Forced  bool
}

// SlotList describes the slots of a display type.
type SlotList struct {
	entries []SlotEntry
}

// NewSlotList builds the slot list for displayType.
func NewSlotList(displayType string) SlotList {
	cfg := catalog.Config(displayType)
	slots := []catalog.Slot{catalog.SlotImage, catalog.SlotText, catalog.SlotButton}
	entries := make([]SlotEntry, 0, len(slots))
	for _, slot := range slots {
		entries = append(entries, SlotEntry{
			Slot:    slot,
			Allowed: cfg.Slots.Allows(slot),
			Forced:  cfg.IsForced(slot),
		})
	}
	return SlotList{entries: entries}
}

// Entries returns the slot entries in image, text, button order.
func (s SlotList) Entries() []SlotEntry {
	clone := make([]SlotEntry, len(s.entries))
	copy(clone, s.entries)
	return clone
}

// String renders the allowed slots, e.g. "image + text".
func (s SlotList) String() string {
	var names []string
	for _, e := range s.entries {
		if !e.Allowed {
			continue
		}
		name := string(e.Slot)
		if e.Forced {
			name = fmt.Sprintf("%s (always on)", name)
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "no slots"
	}
	return strings.Join(names, " + ")
}
