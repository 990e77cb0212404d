package theme

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveTable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		display string
		set     ComponentSet
		theme   string
		code    string
	}{
		{"BAR", ComponentSet{Images: true}, "T1", "M1"},
		{"BAR", ComponentSet{Msg: true}, "T2", "M2"},
		{"BAR", ComponentSet{Images: true, Msg: true}, "T3", "M3"},
		{"BOX", ComponentSet{Images: true}, "T4", "M1"},
		{"BOX", ComponentSet{Images: true, Buttons: 1}, "T5", "M4"},
		{"BOX", ComponentSet{Images: true, Buttons: 2}, "T6", "M5"},
		{"BOX", ComponentSet{Images: true, Msg: true}, "T7", "M3"},
		{"BOX", ComponentSet{Images: true, Msg: true, Buttons: 1}, "T8", "M6"},
		{"BOX", ComponentSet{Images: true, Msg: true, Buttons: 2}, "T9", "M7"},
		{"SLIDE", ComponentSet{Images: true}, "T10", "M1"},
		{"SLIDE", ComponentSet{Images: true, Buttons: 1}, "T11", "M4"},
		{"SLIDE", ComponentSet{Images: true, Buttons: 3}, "T12", "M5"},
		{"SLIDE", ComponentSet{Images: true, Msg: true}, "T13", "M3"},
		{"SLIDE", ComponentSet{Images: true, Msg: true, Buttons: 1}, "T14", "M6"},
		{"SLIDE", ComponentSet{Images: true, Msg: true, Buttons: 2}, "T15", "M7"},
		{"star", ComponentSet{Msg: true}, "T16", "M8"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.display+"/"+tc.set.Key(), func(t *testing.T) {
			t.Parallel()
			res := Resolve(tc.display, tc.set)
			require.Equal(t, tc.theme, res.Theme)
			require.Equal(t, tc.code, res.Code)
			require.NotEmpty(t, res.CSSClass)
		})
	}
}

func TestResolveMissUsesFallback(t *testing.T) {
	t.Parallel()

	require.Equal(t, Resolution{Theme: "T4", Code: "M1", CSSClass: "qdx_theme2-1"}, Resolve("BOX", ComponentSet{}))
	require.Equal(t, Resolution{Theme: "T4", Code: "M1", CSSClass: "qdx_theme2-1"}, Resolve("box", ComponentSet{Msg: true}))
	require.Equal(t, Resolution{Theme: "T1", Code: "M1", CSSClass: "qdx_theme1-1"}, Resolve("BAR", ComponentSet{Buttons: 1}))
	require.Equal(t, Resolution{Theme: "T1", Code: "M1", CSSClass: "qdx_theme1-1"}, Resolve("STAR", ComponentSet{Images: true}))
	require.Equal(t, Resolution{Theme: "T4", Code: "M1", CSSClass: "qdx_theme2-1"}, Resolve("FOO", ComponentSet{Msg: true}))
}

func TestUnknownDisplayResolvesAsBox(t *testing.T) {
	t.Parallel()

	require.Equal(t, Resolve("BOX", ComponentSet{Images: true}), Resolve("FOO", ComponentSet{Images: true}))
	require.Equal(t, "T9", ResolveKey("", "images,msg,buttons2").Theme)
	require.Equal(t, Fallback("BOX"), Fallback("poster"))
}

func TestResolveKeyIsOrderSensitive(t *testing.T) {
	t.Parallel()

	require.Equal(t, "T7", ResolveKey("BOX", "images,msg").Theme)
	require.Equal(t, Fallback("BOX"), ResolveKey("BOX", "msg,images"))
}

func TestTagsNaming(t *testing.T) {
	t.Parallel()

	require.Empty(t, ComponentSet{}.Tags())
	require.Equal(t, []Tag{TagButtons}, ComponentSet{Buttons: 1}.Tags())
	require.Equal(t, []Tag{TagButtons2}, ComponentSet{Buttons: 2}.Tags())
	require.Equal(t, "images,msg,buttons2", ComponentSet{Images: true, Msg: true, Buttons: 5}.Key())
}

func TestDetectEffectiveContent(t *testing.T) {
	t.Parallel()

	require.Equal(t, ComponentSet{Images: true}, Detect(Inputs{ImageURL: "https://x/y.jpg"}))
	require.Equal(t, ComponentSet{Images: true}, Detect(Inputs{ImageCount: 2}))
	require.Equal(t, ComponentSet{Msg: true}, Detect(Inputs{Body: "hello"}))
	require.Equal(t, ComponentSet{}, Detect(Inputs{Title: "   "}))
	require.Equal(t, ComponentSet{Buttons: 1}, Detect(Inputs{ButtonEnabled: true}))
	require.Equal(t, ComponentSet{Buttons: 2}, Detect(Inputs{ButtonCount: 2}))
	require.Equal(t, ComponentSet{Images: true, Msg: true, Buttons: 1},
		Detect(Inputs{ImageEnabled: true, TextEnabled: true, ButtonEnabled: true, ButtonCount: 1}))
}

func TestTableListsEveryTheme(t *testing.T) {
	t.Parallel()

	rows := Table()
	require.Len(t, rows, 16)
	for i, row := range rows {
		require.Equal(t, row.Resolution, ResolveKey(string(row.Display), row.Key))
		require.Equal(t, "T"+strconv.Itoa(i+1), row.Theme)
	}
}
