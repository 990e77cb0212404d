package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigTable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input    string
		expected DisplayType
		slots    Slots
	}{
		{"BAR", Bar, Slots{Image: true, Text: true, Button: false}},
		{"box", Box, Slots{Image: true, Text: true, Button: true}},
		{" Slide ", Slide, Slots{Image: true, Text: true, Button: true}},
		{"star", Star, Slots{Image: false, Text: true, Button: false}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			cfg := Config(tc.input)
			require.Equal(t, tc.expected, cfg.Type)
			require.Equal(t, tc.slots, cfg.Slots)
			require.Equal(t, Top, cfg.DefaultLocation)
		})
	}
}

func TestConfigUnknownFallsBackToBox(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"FOO", "", "  "} {
		cfg := Config(input)
		require.Equal(t, Box, cfg.Type)
		require.Equal(t, Slots{Image: true, Text: true, Button: true}, cfg.Slots)
		require.Equal(t, Top, cfg.DefaultLocation)
	}
	require.Equal(t, Box, Normalize("FOO"))
}

func TestCanToggle(t *testing.T) {
	t.Parallel()

	require.True(t, CanToggle("BAR", SlotImage))
	require.False(t, CanToggle("BAR", SlotButton))
	require.False(t, CanToggle("STAR", SlotImage))
	require.True(t, CanToggle("STAR", SlotText))
	require.True(t, CanToggle("unknown", SlotButton))
	require.False(t, CanToggle("BOX", Slot("video")))
}

func TestForcedSlotCannotBeToggled(t *testing.T) {
	original := displayConfigs[Box]
	t.Cleanup(func() { displayConfigs[Box] = original })

	forced := original
	forced.ForceEnabled = []Slot{SlotText}
	displayConfigs[Box] = forced

	require.False(t, CanToggle("BOX", SlotText))
	require.True(t, CanToggle("BOX", SlotImage))
	require.True(t, Config("BOX").IsForced(SlotText))
}

func TestConfigReturnsCopy(t *testing.T) {
	t.Parallel()

	cfg := Config("SLIDE")
	cfg.ForceEnabled = append(cfg.ForceEnabled, SlotImage)
	require.Empty(t, Config("SLIDE").ForceEnabled)
}

func TestParseLocation(t *testing.T) {
	t.Parallel()

	loc, ok := ParseLocation("mid")
	require.True(t, ok)
	require.Equal(t, Middle, loc)

	_, ok = ParseLocation("LEFT")
	require.False(t, ok)
}

func TestBuiltinCodeTable(t *testing.T) {
	t.Parallel()

	table := Builtin()
	require.Len(t, table.DisplayTypes, 4)
	require.Len(t, table.Themes, 16)
	require.Len(t, table.Locations, 3)
	require.Len(t, table.Templates, 8)
	require.Equal(t, "T16", table.Themes[15].Code)
}

func TestSlotsList(t *testing.T) {
	t.Parallel()

	require.Equal(t, []Slot{SlotImage, SlotText}, Config("BAR").Slots.List())
	require.Equal(t, []Slot{SlotText}, Config("STAR").Slots.List())
	require.Equal(t, []Slot{SlotImage, SlotText, SlotButton}, Config("SLIDE").Slots.List())
	require.Empty(t, Slots{}.List())
}
