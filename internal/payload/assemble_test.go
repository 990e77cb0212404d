package payload

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/qdxstudio/internal/logger"
	"github.com/alexisbeaulieu97/qdxstudio/internal/theme"
)

func tags(ts ...theme.Tag) []theme.Tag { return ts }

func TestAssembleBarImageOnly(t *testing.T) {
	t.Parallel()

	p := Assemble(Input{
		Display:      "BAR",
		Content:      Content{ImageEnabled: true, ImageURL: "https://x/y.jpg"},
		HasUserInput: true,
	})

	require.Equal(t, tags(theme.TagImages), p.Show)
	require.Equal(t, "T1", p.Theme)
	require.Equal(t, "M1", p.Template)
	require.Equal(t, []Image{{Seq: 1, URL: "https://x/y.jpg", LinkOpt: "S"}}, p.Images)
	require.True(t, p.Msg.Empty())
	require.Empty(t, p.Buttons)
	require.NoError(t, CheckShow(p))
}

func TestAssembleBoxFullWithTwoButtons(t *testing.T) {
	t.Parallel()

	p := Assemble(Input{
		Display: "BOX",
		Content: Content{
			ImageEnabled: true, ImageURL: "https://x/y.jpg",
			TextEnabled: true, Title: "Hi", Body: "There",
			ButtonEnabled: true,
		},
		Buttons: []ButtonEntry{
			{ID: 1, Text: "Yes", URL: "https://a", Target: TargetNew},
			{ID: 2, Text: "No", URL: "https://b", Target: TargetCurrent},
		},
		HasUserInput: true,
	})

	require.Equal(t, tags(theme.TagImages, theme.TagMsg, theme.TagButtons2), p.Show)
	require.Equal(t, "T9", p.Theme)
	require.Equal(t, "M7", p.Template)
	require.Equal(t, Message{Title: "Hi", Text: "There"}, p.Msg)
	require.Equal(t, []Button{
		{Seq: 1, Text: "Yes", LinkURL: "https://a", LinkOpt: "B"},
		{Seq: 2, Text: "No", LinkURL: "https://b", LinkOpt: "S"},
	}, p.Buttons)
	require.NoError(t, CheckShow(p))
}

func TestAssembleStarIgnoresDisallowedSlots(t *testing.T) {
	t.Parallel()

	p := Assemble(Input{
		Display: "STAR",
		Content: Content{
			TextEnabled: true, Title: "Rate us",
			ImageEnabled: true, ImageURL: "https://x/y.jpg",
			ButtonEnabled: true,
		},
		Buttons:      []ButtonEntry{{Text: "Go", URL: "https://a"}},
		HasUserInput: true,
	})

	require.Equal(t, tags(theme.TagMsg), p.Show)
	require.Equal(t, "T16", p.Theme)
	require.Equal(t, "M8", p.Template)
	require.Empty(t, p.Images)
	require.Empty(t, p.Buttons)
	require.Equal(t, "Rate us", p.Msg.Title)
	require.Equal(t, "", p.Msg.Text)
}

func TestAssembleSlideGalleryWithOneButton(t *testing.T) {
	t.Parallel()

	p := Assemble(Input{
		Display: "SLIDE",
		Content: Content{
			ImageEnabled: true,
			Images: []ImageEntry{
				{ID: 4, URL: "https://x/1.jpg"},
				{ID: 7, URL: "https://x/2.jpg", Action: ActionLink, LinkURL: "https://shop", LinkTarget: TargetNew},
				{ID: 9, URL: "https://x/3.jpg"},
			},
			ButtonEnabled: true,
		},
		Buttons:      []ButtonEntry{{ID: 1, Text: "Buy", URL: "https://shop"}},
		HasUserInput: true,
	})

	require.Contains(t, p.Show, theme.TagImages)
	require.Contains(t, p.Show, theme.TagButtons)
	require.NotContains(t, p.Show, theme.TagButtons2)
	require.Len(t, p.Images, 3)
	for i, img := range p.Images {
		require.Equal(t, i+1, img.Seq)
	}
	require.Equal(t, Image{Seq: 2, URL: "https://x/2.jpg", Action: "L", LinkURL: "https://shop", LinkOpt: "B"}, p.Images[1])
	require.Equal(t, "T11", p.Theme)
	require.NoError(t, CheckShow(p))
}

func TestAssembleSlideSkipsBlankImagesAndFallsBackToSingle(t *testing.T) {
	t.Parallel()

	p := Assemble(Input{
		Display: "SLIDE",
		Content: Content{
			ImageEnabled: true,
			ImageURL:     "https://x/cover.jpg",
			Images:       []ImageEntry{{ID: 1, URL: "  "}},
		},
		HasUserInput: true,
	})

	require.Equal(t, []Image{{Seq: 1, URL: "https://x/cover.jpg", LinkOpt: "S"}}, p.Images)
	require.NoError(t, CheckShow(p))

	p = Assemble(Input{
		Display:      "SLIDE",
		Content:      Content{ImageEnabled: true, Images: []ImageEntry{{ID: 1}}},
		HasUserInput: true,
	})
	require.Empty(t, p.Images)
	require.Empty(t, p.Show)
	require.NoError(t, CheckShow(p))
}

func TestAssembleUnknownDisplayUsesBox(t *testing.T) {
	t.Parallel()

	p := Assemble(Input{
		Display:      "FOO",
		Content:      Content{ImageEnabled: true, ImageURL: "https://x/y.jpg"},
		HasUserInput: true,
	})

	require.Equal(t, "BOX", p.Display)
	require.Equal(t, "TOP", p.Location)
	require.Equal(t, "T4", p.Theme)
}

func TestAssembleDropsIncompleteButtons(t *testing.T) {
	t.Parallel()

	p := Assemble(Input{
		Display: "BOX",
		Content: Content{ImageEnabled: true, ImageURL: "https://x/y.jpg", ButtonEnabled: true},
		Buttons: []ButtonEntry{
			{ID: 1, Text: "", URL: "http://x"},
			{ID: 2, Text: "Open", URL: "http://y"},
			{ID: 3, Text: "Later", URL: "  "},
		},
		HasUserInput: true,
	})

	require.Equal(t, []Button{{Seq: 1, Text: "Open", LinkURL: "http://y", LinkOpt: "S"}}, p.Buttons)
	require.Equal(t, tags(theme.TagImages, theme.TagButtons), p.Show)
	require.Equal(t, "T5", p.Theme)
}

func TestAssembleAllButtonsInvalidLeavesNoButtons(t *testing.T) {
	t.Parallel()

	p := Assemble(Input{
		Display:      "BOX",
		Content:      Content{ButtonEnabled: true},
		Buttons:      []ButtonEntry{{ID: 1, Text: "", URL: "http://x"}},
		HasUserInput: true,
	})

	require.Empty(t, p.Buttons)
	require.Empty(t, p.Show)
	require.Equal(t, "T4", p.Theme)
	require.NoError(t, CheckShow(p))
}

func TestAssembleStripsMarkup(t *testing.T) {
	t.Parallel()

	p := Assemble(Input{
		Display: "BAR",
		Content: Content{
			TextEnabled: true,
			Title:       "<p><strong>Big</strong> sale &amp; more</p>",
			Body:        "<p>line one</p><p>line&nbsp;two</p><script>alert(1)</script>",
		},
		HasUserInput: true,
	})

	require.Equal(t, Message{Title: "Big sale & more", Text: "line one line two"}, p.Msg)
	require.Equal(t, "T2", p.Theme)
}

func TestPlainTextKeepsLineBreaks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain newlines", in: "first  line\n\n  second\tline \n", want: "first line\nsecond line"},
		{name: "crlf", in: "a\r\nb", want: "a\nb"},
		{name: "br tags", in: "one<br>two<br/>three", want: "one\ntwo\nthree"},
		{name: "paragraphs", in: "<p>Hello   <em>there</em></p><p>second&nbsp; para</p>", want: "Hello there\nsecond para"},
		{name: "list items", in: "<ul><li>a</li><li>b</li></ul>", want: "a\nb"},
		{name: "table cells", in: "<table><tr><td>x</td><td>y</td></tr></table>", want: "x y"},
		{name: "inline only", in: "<b>bold</b> and <i>italic</i>", want: "bold and italic"},
		{name: "empty markup", in: "<p><br></p>", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, PlainText(tt.in))
		})
	}
}

func TestAssembleMarkupOnlyTextIsEmpty(t *testing.T) {
	t.Parallel()

	p := Assemble(Input{
		Display:      "BAR",
		Content:      Content{TextEnabled: true, Title: "<p><br></p>"},
		HasUserInput: true,
	})

	require.True(t, p.Msg.Empty())
	require.NotContains(t, p.Show, theme.TagMsg)
	require.NoError(t, CheckShow(p))
}

func TestAssembleDemoContentWithoutUserInput(t *testing.T) {
	t.Parallel()

	in := Input{
		Display: "BOX",
		Content: Content{ImageEnabled: true, TextEnabled: true, ButtonEnabled: true},
	}
	p := Assemble(in)

	require.Equal(t, tags(theme.TagImages, theme.TagMsg, theme.TagButtons), p.Show)
	require.Equal(t, DemoImageURL, p.Images[0].URL)
	require.Equal(t, Message{Title: DemoTitle, Text: DemoText}, p.Msg)
	require.Equal(t, DemoButtonText, p.Buttons[0].Text)
	require.Equal(t, "T8", p.Theme)
	require.NoError(t, CheckShow(p))

	in.HasUserInput = true
	p = Assemble(in)
	require.Empty(t, p.Images)
	require.True(t, p.Msg.Empty())
	require.Empty(t, p.Show)
}

func TestAssembleDemoRespectsDisabledSlots(t *testing.T) {
	t.Parallel()

	p := Assemble(Input{Display: "BAR", Content: Content{TextEnabled: true, ButtonEnabled: true}})
	require.Equal(t, tags(theme.TagMsg), p.Show)
	require.Empty(t, p.Buttons)
	require.Empty(t, p.Images)

	p = Assemble(Input{Display: "BOX"})
	require.Empty(t, p.Show)
	require.Empty(t, p.Images)
	require.True(t, p.Msg.Empty())
}

func TestAssembleIsIdempotent(t *testing.T) {
	t.Parallel()

	in := Input{
		Display: "SLIDE",
		Content: Content{ImageEnabled: true, TextEnabled: true, Title: "Hello"},
		Buttons: []ButtonEntry{{ID: 1, Text: "A", URL: "https://a"}, {ID: 2, Text: "B", URL: "https://b"}},
	}

	first, err := Encode(Assemble(in), true)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		next, err := Encode(Assemble(in), true)
		require.NoError(t, err)
		require.True(t, bytes.Equal(first, next))
	}
}

func TestAssembleLocationAndToday(t *testing.T) {
	t.Parallel()

	p := Assemble(Input{Display: "BAR", Content: Content{Location: "bot"}, Today: true})
	require.Equal(t, "BOT", p.Location)
	require.Equal(t, "Y", p.Today)

	p = Assemble(Input{Display: "BAR", Content: Content{Location: "LEFT"}})
	require.Equal(t, "TOP", p.Location)
	require.Equal(t, "N", p.Today)
}

func TestShowInvariantHoldsAcrossCombinations(t *testing.T) {
	t.Parallel()

	urls := []string{"", "https://x/y.jpg"}
	titles := []string{"", "<p></p>", "Title"}
	buttonSets := [][]ButtonEntry{
		nil,
		{{ID: 1, Text: "A", URL: "https://a"}},
		{{ID: 1, Text: "A", URL: "https://a"}, {ID: 2, Text: "", URL: "https://b"}},
		{{ID: 1, Text: "A", URL: "https://a"}, {ID: 2, Text: "B", URL: "https://b"}},
	}

	for _, display := range []string{"BAR", "BOX", "SLIDE", "STAR", "FOO"} {
		for _, url := range urls {
			for _, title := range titles {
				for _, buttons := range buttonSets {
					for mask := 0; mask < 16; mask++ {
						in := Input{
							Display: display,
							Content: Content{
								ImageEnabled:  mask&1 != 0,
								TextEnabled:   mask&2 != 0,
								ButtonEnabled: mask&4 != 0,
								ImageURL:      url,
								Title:         title,
							},
							Buttons:      buttons,
							HasUserInput: mask&8 != 0,
						}
						p := Assemble(in)
						require.NoError(t, CheckShow(p), "input %+v", in)
						require.Equal(t, theme.Resolve(p.Display, theme.ComponentSet{
							Images: len(p.Images) > 0, Msg: !p.Msg.Empty(), Buttons: len(p.Buttons),
						}).Theme, p.Theme)
					}
				}
			}
		}
	}
}

func TestCheckShowDetectsDrift(t *testing.T) {
	t.Parallel()

	p := Payload{Show: tags(theme.TagImages), Images: []Image{}}
	require.Error(t, CheckShow(p))

	p = Payload{Show: tags(theme.TagButtons, theme.TagButtons2), Buttons: []Button{{Seq: 1}, {Seq: 2}}}
	require.Error(t, CheckShow(p))

	p = Payload{Show: tags(theme.TagButtons), Buttons: []Button{{Seq: 1}, {Seq: 2}}}
	require.Error(t, CheckShow(p))

	p = Payload{Msg: Message{Title: "x"}}
	require.Error(t, CheckShow(p))

	require.NoError(t, CheckShow(Default("BAR")))
}

func TestDefaultPayload(t *testing.T) {
	t.Parallel()

	p := Default("BOX")
	require.Equal(t, "T4", p.Theme)
	require.Equal(t, "M1", p.Template)
	require.Equal(t, tags(theme.TagMsg), p.Show)
	require.Equal(t, Message{Title: DefaultTitle, Text: DefaultText}, p.Msg)
	require.Equal(t, "N", p.Today)

	require.Equal(t, "T1", Default("STAR").Theme)
}

func TestDefaultPayloadUnknownDisplayMatchesAssemble(t *testing.T) {
	t.Parallel()

	fallback := Default("foo")
	assembled := Assemble(Input{Display: "foo", Content: Content{ImageURL: "https://x/y.jpg"}, HasUserInput: true})
	require.Equal(t, "BOX", fallback.Display)
	require.Equal(t, "T4", fallback.Theme)
	require.Equal(t, assembled.Display, fallback.Display)
	require.Equal(t, assembled.Theme, fallback.Theme)
	require.NoError(t, CheckShow(fallback))
}

func TestPayloadJSONShape(t *testing.T) {
	t.Parallel()

	raw, err := Encode(Assemble(Input{Display: "BAR", HasUserInput: true}), true)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, []any{}, decoded["images"])
	require.Equal(t, []any{}, decoded["buttons"])
	require.Equal(t, []any{}, decoded["show"])
	require.Equal(t, map[string]any{}, decoded["msg"])
	for _, key := range []string{"display", "theme", "template", "location", "today"} {
		require.Contains(t, decoded, key)
	}
}

func TestAssemblerRecoversFromPanic(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := logger.New(logger.Options{Writer: buf})
	require.NoError(t, err)

	a := NewAssembler(log)
	a.build = func(Input) Payload {
		var images []Image
		_ = images[3]
		return Payload{}
	}

	p := a.Assemble(Input{Display: "SLIDE", HasUserInput: true})
	require.Equal(t, Default("SLIDE"), p)
	require.Equal(t, "BOX", a.Assemble(Input{Display: "foo"}).Display)
	require.NoError(t, CheckShow(p))
	require.Contains(t, buf.String(), "payload assembly failed")
}

func TestAssemblerDelegatesToAssemble(t *testing.T) {
	t.Parallel()

	in := Input{Display: "BAR", Content: Content{ImageURL: "https://x/y.jpg"}, HasUserInput: true}
	require.Equal(t, Assemble(in), NewAssembler(logger.Nop()).Assemble(in))
}
