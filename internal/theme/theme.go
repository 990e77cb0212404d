// Package theme maps a display type and its populated content slots to the
// theme, template code and CSS class understood by the qdx renderer.
package theme

import (
	"strings"

	"github.com/alexisbeaulieu97/qdxstudio/internal/catalog"
)

// Tag names a populated component in the payload's show array.
type Tag string

const (
	TagImages   Tag = "images"
	TagMsg      Tag = "msg"
	TagButtons  Tag = "buttons"
	TagButtons2 Tag = "buttons2"
)

// ComponentSet describes which components are active.
type ComponentSet struct {
	Images  bool
	Msg     bool
	Buttons int
}

// Tags lists the active components in renderer order: images, msg, then
// buttons or buttons2.
func (c ComponentSet) Tags() []Tag {
	tags := make([]Tag, 0, 3)
	if c.Images {
		tags = append(tags, TagImages)
	}
	if c.Msg {
		tags = append(tags, TagMsg)
	}
	switch {
	case c.Buttons >= 2:
		tags = append(tags, TagButtons2)
	case c.Buttons == 1:
		tags = append(tags, TagButtons)
	}
	return tags
}

// Key is the comma-joined tag list used for table lookups.
func (c ComponentSet) Key() string {
	return JoinTags(c.Tags())
}

// JoinTags joins tags with commas, keeping their order.
func JoinTags(tags []Tag) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

// Inputs carries the raw editor state needed for effective detection.
type Inputs struct {
	ImageEnabled  bool
	ImageURL      string
	ImageCount    int
	TextEnabled   bool
	Title         string
	Body          string
	ButtonEnabled bool
	ButtonCount   int
}

// Detect derives the active component set. A slot counts as active when its
// toggle is on or when it already holds content, so restored content shows up
// before the user touches a switch.
func Detect(in Inputs) ComponentSet {
	set := ComponentSet{
		Images: in.ImageEnabled || in.ImageCount > 0 || strings.TrimSpace(in.ImageURL) != "",
		Msg:    in.TextEnabled || strings.TrimSpace(in.Title) != "" || strings.TrimSpace(in.Body) != "",
	}
	if in.ButtonEnabled || in.ButtonCount > 0 {
		set.Buttons = in.ButtonCount
		if set.Buttons == 0 {
			set.Buttons = 1
		}
	}
	return set
}

// Resolution is the renderer styling picked for a popup.
type Resolution struct {
	Theme    string `json:"theme"`
	Code     string `json:"code"`
	CSSClass string `json:"cssClass"`
}

var table = map[catalog.DisplayType]map[string]Resolution{
	catalog.Bar: {
		"images":     {Theme: "T1", Code: "M1", CSSClass: "qdx_theme1-1"},
		"msg":        {Theme: "T2", Code: "M2", CSSClass: "qdx_theme1-2"},
		"images,msg": {Theme: "T3", Code: "M3", CSSClass: "qdx_theme1-3"},
	},
	catalog.Box: {
		"images":              {Theme: "T4", Code: "M1", CSSClass: "qdx_theme2-1"},
		"images,buttons":      {Theme: "T5", Code: "M4", CSSClass: "qdx_theme2-2"},
		"images,buttons2":     {Theme: "T6", Code: "M5", CSSClass: "qdx_theme2-3"},
		"images,msg":          {Theme: "T7", Code: "M3", CSSClass: "qdx_theme2-4"},
		"images,msg,buttons":  {Theme: "T8", Code: "M6", CSSClass: "qdx_theme2-5"},
		"images,msg,buttons2": {Theme: "T9", Code: "M7", CSSClass: "qdx_theme2-6"},
	},
	catalog.Slide: {
		"images":              {Theme: "T10", Code: "M1", CSSClass: "qdx_theme3-1"},
		"images,buttons":      {Theme: "T11", Code: "M4", CSSClass: "qdx_theme3-2"},
		"images,buttons2":     {Theme: "T12", Code: "M5", CSSClass: "qdx_theme3-3"},
		"images,msg":          {Theme: "T13", Code: "M3", CSSClass: "qdx_theme3-4"},
		"images,msg,buttons":  {Theme: "T14", Code: "M6", CSSClass: "qdx_theme3-5"},
		"images,msg,buttons2": {Theme: "T15", Code: "M7", CSSClass: "qdx_theme3-6"},
	},
	catalog.Star: {
		"msg": {Theme: "T16", Code: "M8", CSSClass: "qdx_theme4-1"},
	},
}

var (
	boxFallback     = Resolution{Theme: "T4", Code: "M1", CSSClass: "qdx_theme2-1"}
	defaultFallback = Resolution{Theme: "T1", Code: "M1", CSSClass: "qdx_theme1-1"}
)

// Resolve looks up the styling for displayType and set.
func Resolve(displayType string, set ComponentSet) Resolution {
	return ResolveKey(displayType, set.Key())
}

// ResolveKey looks up an exact comma-joined key. Unknown display types are
// looked up as BOX. Misses return Fallback.
func ResolveKey(displayType string, key string) Resolution {
	dt := catalog.Normalize(displayType)
	if res, ok := table[dt][key]; ok {
		return res
	}
	return Fallback(displayType)
}

// Fallback is the styling used when no table row matches.
func Fallback(displayType string) Resolution {
	if catalog.Normalize(displayType) == catalog.Box {
		return boxFallback
	}
	return defaultFallback
}

// Row is one entry of the theme table.
type Row struct {
	Display catalog.DisplayType `json:"display"`
	Key     string              `json:"show"`
	Resolution
}

// Table lists every row ordered by theme number.
func Table() []Row {
	rows := make([]Row, 0, 16)
	for _, dt := range catalog.DisplayTypes() {
		for _, key := range keyOrder {
			if res, ok := table[dt][key]; ok {
				rows = append(rows, Row{Display: dt, Key: key, Resolution: res})
			}
		}
	}
	return rows
}

var keyOrder = []string{
	"images",
	"msg",
	"images,buttons",
	"images,buttons2",
	"images,msg",
	"images,msg,buttons",
	"images,msg,buttons2",
}
