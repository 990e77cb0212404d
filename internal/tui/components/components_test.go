package components

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/qdxstudio/internal/catalog"
)

func TestSummaryView(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     SummaryData
		contains []string
		empty    bool
	}{
		{name: "nothing to report", data: SummaryData{}, empty: true},
		{name: "validated clean", data: SummaryData{Validated: true}, contains: []string{"Ready to save"}},
		{name: "saved", data: SummaryData{Validated: true, Saved: true}, contains: []string{"Popup saved"}},
		{name: "cancelled", data: SummaryData{Cancelled: true}, contains: []string{"Editing cancelled"}},
		{
			name: "failures listed",
			data: SummaryData{Validated: true, Failures: []FieldStatus{
				{Field: "text.title", Message: "is required"},
				{Field: "image.url", Message: "must be an http(s) URL"},
			}},
			contains: []string{"Fix before saving:", "✗ text.title is required", "✗ image.url must be an http(s) URL"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			view := NewSummary(tt.data).View()
			if tt.empty {
				require.Empty(t, view)
				return
			}
			for _, want := range tt.contains {
				require.Contains(t, view, want)
			}
		})
	}
}

func TestSlotList(t *testing.T) {
	t.Parallel()

	bar := NewSlotList("BAR")
	require.Equal(t, "image + text", bar.String())
	require.Equal(t, []SlotEntry{
		{Slot: catalog.SlotImage, Allowed: true},
		{Slot: catalog.SlotText, Allowed: true},
		{Slot: catalog.SlotButton},
	}, bar.Entries())

	require.Equal(t, "text", NewSlotList("STAR").String())
	require.Equal(t, "image + text + button", NewSlotList("unknown").String())
}

func TestProgressView(t *testing.T) {
	t.Parallel()

	require.Contains(t, NewProgress(4).View(1), "1/4")
	require.Contains(t, NewProgress(0).View(0), "0/0")
	require.Contains(t, NewProgress(2).View(5), "5/2")
}
