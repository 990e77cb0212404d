package payload

import (
	"encoding/json"

	"github.com/alexisbeaulieu97/qdxstudio/internal/theme"
)

// ClickAction is what happens when an image is clicked.
type ClickAction string

const (
	ActionNone ClickAction = ""
	ActionLink ClickAction = "link"
)

// LinkTarget selects the window a link opens in.
type LinkTarget string

const (
	TargetCurrent LinkTarget = "current"
	TargetNew     LinkTarget = "new"
)

// ImageEntry is one slide image as edited in the form.
type ImageEntry struct {
	ID         int         `json:"id" yaml:"id"`
	URL        string      `json:"url" yaml:"url"`
	Action     ClickAction `json:"action" yaml:"action"`
	LinkURL    string      `json:"linkUrl" yaml:"linkUrl"`
	LinkTarget LinkTarget  `json:"linkTarget" yaml:"linkTarget"`
}

// ButtonEntry is one button as edited in the form.
type ButtonEntry struct {
	ID     int        `json:"id" yaml:"id"`
	Text   string     `json:"text" yaml:"text"`
	URL    string     `json:"url" yaml:"url"`
	Target LinkTarget `json:"target" yaml:"target"`
}

// Content is the flat view of the editor settings the assembler reads.
type Content struct {
	ImageEnabled  bool
	TextEnabled   bool
	ButtonEnabled bool

	ImageURL    string
	LinkURL     string
	ClickAction ClickAction
	LinkTarget  LinkTarget
	Images      []ImageEntry

	Title string
	Body  string

	Location string
}

// Input is everything needed to build one payload.
type Input struct {
	Display      string
	Content      Content
	Buttons      []ButtonEntry
	HasUserInput bool
	Today        bool
}

// Image is the renderer's view of an image.
type Image struct {
	Seq     int    `json:"seq"`
	URL     string `json:"url"`
	Action  string `json:"action"`
	LinkURL string `json:"linkUrl"`
	LinkOpt string `json:"linkOpt"`
}

// Button is the renderer's view of a button.
type Button struct {
	Seq     int    `json:"seq"`
	Text    string `json:"text"`
	LinkURL string `json:"linkUrl"`
	LinkOpt string `json:"linkOpt"`
}

// Message holds plain-text title and body. An empty Message encodes as {}.
type Message struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Empty reports whether neither title nor text is set.
func (m Message) Empty() bool {
	return m.Title == "" && m.Text == ""
}

// MarshalJSON writes {} for an empty message and both keys otherwise.
func (m Message) MarshalJSON() ([]byte, error) {
	if m.Empty() {
		return []byte("{}"), nil
	}
	type plain Message
	return json.Marshal(plain(m))
}

// Payload is the document handed to the renderer's showMsg call.
type Payload struct {
	Display  string      `json:"display"`
	Theme    string      `json:"theme"`
	Template string      `json:"template"`
	Show     []theme.Tag `json:"show"`
	Location string      `json:"location"`
	Images   []Image     `json:"images"`
	Msg      Message     `json:"msg"`
	Today    string      `json:"today"`
	Buttons  []Button    `json:"buttons"`
}

// Encode renders p as JSON, indented unless compact is set.
func Encode(p Payload, compact bool) ([]byte, error) {
	if compact {
		return json.Marshal(p)
	}
	return json.MarshalIndent(p, "", "  ")
}
