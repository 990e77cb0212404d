// Package payload builds the JSON document consumed by the qdx renderer from
// the editor's settings, keeping the show array and the data in agreement.
package payload

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/qdxstudio/internal/catalog"
	"github.com/alexisbeaulieu97/qdxstudio/internal/logger"
	"github.com/alexisbeaulieu97/qdxstudio/internal/theme"
)

// Content shown while the form is still untouched.
const (
	DemoImageURL   = "https://via.placeholder.com/600x400?text=QDX+Popup"
	DemoTitle      = "팝업 제목"
	DemoText       = "팝업 내용을 입력해 주세요."
	DemoButtonText = "자세히 보기"
	DemoButtonURL  = "https://www.example.com"
)

// Content of the payload returned when assembly fails.
const (
	DefaultTitle = "기본 제목"
	DefaultText  = "기본 내용"
)

const (
	linkOptSelf  = "S"
	linkOptBlank = "B"
	actionLink   = "L"
	todayYes     = "Y"
	todayNo      = "N"
)

// Assemble builds the payload for in. Theme, template and show are derived
// from the data actually placed in the payload.
func Assemble(in Input) Payload {
	cfg := catalog.Config(in.Display)
	display := cfg.Type
	c := in.Content

	active := theme.Detect(theme.Inputs{
		ImageEnabled:  c.ImageEnabled,
		ImageURL:      c.ImageURL,
		ImageCount:    len(c.Images),
		TextEnabled:   c.TextEnabled,
		Title:         c.Title,
		Body:          c.Body,
		ButtonEnabled: c.ButtonEnabled,
		ButtonCount:   len(in.Buttons),
	})

	imageOn := cfg.Slots.Image && active.Images
	textOn := cfg.Slots.Text && active.Msg
	buttonOn := cfg.Slots.Button && active.Buttons > 0

	images := []Image{}
	if imageOn {
		images = buildImages(display, c)
	}
	msg := Message{}
	if textOn {
		msg = Message{Title: PlainText(c.Title), Text: PlainText(c.Body)}
	}
	buttons := []Button{}
	if buttonOn {
		buttons = buildButtons(in.Buttons)
	}

	if !in.HasUserInput {
		if imageOn && c.ImageEnabled && len(images) == 0 {
			images = []Image{{Seq: 1, URL: DemoImageURL, LinkOpt: linkOptSelf}}
		}
		if textOn && c.TextEnabled && msg.Empty() {
			msg = Message{Title: DemoTitle, Text: DemoText}
		}
		if buttonOn && c.ButtonEnabled && len(buttons) == 0 {
			buttons = []Button{{Seq: 1, Text: DemoButtonText, LinkURL: DemoButtonURL, LinkOpt: linkOptSelf}}
		}
	}

	set := theme.ComponentSet{
		Images:  len(images) > 0,
		Msg:     !msg.Empty(),
		Buttons: len(buttons),
	}
	res := theme.Resolve(string(display), set)

	return Payload{
		Display:  string(display),
		Theme:    res.Theme,
		Template: res.Code,
		Show:     set.Tags(),
		Location: string(location(c.Location, cfg)),
		Images:   images,
		Msg:      msg,
		Today:    today(in.Today),
		Buttons:  buttons,
	}
}

// Default is the payload used when assembly cannot complete. Unknown display
// types are reported as BOX, as Assemble does.
func Default(display string) Payload {
	dt := catalog.Normalize(display)
	res := theme.Fallback(string(dt))
	return Payload{
		Display:  string(dt),
		Theme:    res.Theme,
		Template: res.Code,
		Show:     []theme.Tag{theme.TagMsg},
		Location: string(catalog.Top),
		Images:   []Image{},
		Msg:      Message{Title: DefaultTitle, Text: DefaultText},
		Today:    todayNo,
		Buttons:  []Button{},
	}
}

// Assembler wraps Assemble so a failure degrades to Default instead of
// ending the editing session.
type Assembler struct {
	log   *logger.Logger
	build func(Input) Payload
}

// NewAssembler returns an Assembler logging through log.
func NewAssembler(log *logger.Logger) *Assembler {
	return &Assembler{log: log.Component("assembler"), build: Assemble}
}

// Assemble builds the payload for in, or Default when building panics.
func (a *Assembler) Assemble(in Input) (p Payload) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error(fmt.Errorf("%v", r), "payload assembly failed, using default payload", "display", in.Display)
			p = Default(in.Display)
		}
	}()
	p = a.build(in)
	a.log.Debug("assembled payload", "display", p.Display, "theme", p.Theme, "show", theme.JoinTags(p.Show))
	return p
}

// CheckShow verifies that every tag in show has data and every populated
// field has a tag.
func CheckShow(p Payload) error {
	var errs []error
	has := make(map[theme.Tag]bool, len(p.Show))
	for _, tag := range p.Show {
		if has[tag] {
			errs = append(errs, fmt.Errorf("show lists %q twice", tag))
		}
		has[tag] = true
	}

	if has[theme.TagImages] != (len(p.Images) > 0) {
		errs = append(errs, fmt.Errorf("show images=%t but %d images", has[theme.TagImages], len(p.Images)))
	}
	if has[theme.TagMsg] != !p.Msg.Empty() {
		errs = append(errs, fmt.Errorf("show msg=%t but msg empty=%t", has[theme.TagMsg], p.Msg.Empty()))
	}
	if has[theme.TagButtons] && has[theme.TagButtons2] {
		errs = append(errs, errors.New("show lists both buttons and buttons2"))
	}
	anyButtons := has[theme.TagButtons] || has[theme.TagButtons2]
	if anyButtons != (len(p.Buttons) > 0) {
		errs = append(errs, fmt.Errorf("show buttons=%t but %d buttons", anyButtons, len(p.Buttons)))
	}
	if has[theme.TagButtons] && len(p.Buttons) > 1 {
		errs = append(errs, fmt.Errorf("show buttons with %d buttons, want buttons2", len(p.Buttons)))
	}
	if has[theme.TagButtons2] && len(p.Buttons) < 2 {
		errs = append(errs, fmt.Errorf("show buttons2 with %d buttons", len(p.Buttons)))
	}
	return errors.Join(errs...)
}

func buildImages(display catalog.DisplayType, c Content) []Image {
	if display == catalog.Slide {
		out := make([]Image, 0, len(c.Images))
		for _, entry := range c.Images {
			if strings.TrimSpace(entry.URL) == "" {
				continue
			}
			out = append(out, wireImage(len(out)+1, entry.URL, entry.Action, entry.LinkURL, entry.LinkTarget))
		}
		if len(out) > 0 {
			return out
		}
	}
	if strings.TrimSpace(c.ImageURL) != "" {
		return []Image{wireImage(1, c.ImageURL, c.ClickAction, c.LinkURL, c.LinkTarget)}
	}
	return []Image{}
}

func wireImage(seq int, url string, action ClickAction, linkURL string, target LinkTarget) Image {
	img := Image{Seq: seq, URL: strings.TrimSpace(url), LinkOpt: linkOpt(target)}
	if action == ActionLink {
		img.Action = actionLink
		img.LinkURL = strings.TrimSpace(linkURL)
	}
	return img
}

func buildButtons(entries []ButtonEntry) []Button {
	out := make([]Button, 0, len(entries))
	for _, b := range entries {
		text := strings.TrimSpace(b.Text)
		url := strings.TrimSpace(b.URL)
		if text == "" || url == "" {
			continue
		}
		out = append(out, Button{Seq: len(out) + 1, Text: text, LinkURL: url, LinkOpt: linkOpt(b.Target)})
	}
	return out
}

func linkOpt(target LinkTarget) string {
	if target == TargetNew {
		return linkOptBlank
	}
	return linkOptSelf
}

func location(raw string, cfg catalog.DisplayConfig) catalog.Location {
	if loc, ok := catalog.ParseLocation(raw); ok {
		return loc
	}
	return cfg.DefaultLocation
}

func today(on bool) string {
	if on {
		return todayYes
	}
	return todayNo
}
