package config

import (
	"strings"

	"github.com/alexisbeaulieu97/qdxstudio/internal/catalog"
	"github.com/alexisbeaulieu97/qdxstudio/internal/payload"
)

// Document is a popup settings file as written by hand or saved by the editor.
type Document struct {
	Display  string        `json:"display,omitempty" yaml:"display"`
	Location string        `json:"location,omitempty" yaml:"location,omitempty" validate:"omitempty,location"`
	Today    bool          `json:"today,omitempty" yaml:"today,omitempty"`
	Demo     bool          `json:"demo,omitempty" yaml:"demo,omitempty"`
	Image    ImageSection  `json:"image,omitempty" yaml:"image,omitempty"`
	Text     TextSection   `json:"text,omitempty" yaml:"text,omitempty"`
	Buttons  ButtonSection `json:"buttons,omitempty" yaml:"buttons,omitempty"`
}

// ImageSection holds the single image and, for SLIDE, the gallery.
type ImageSection struct {
	Enabled     *bool        `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	URL         string       `json:"url,omitempty" yaml:"url,omitempty"`
	LinkURL     string       `json:"linkUrl,omitempty" yaml:"linkUrl,omitempty"`
	ClickAction string       `json:"clickAction,omitempty" yaml:"clickAction,omitempty" validate:"omitempty,oneof=link"`
	LinkTarget  string       `json:"linkTarget,omitempty" yaml:"linkTarget,omitempty" validate:"omitempty,link_target"`
	Slides      []SlideEntry `json:"slides,omitempty" yaml:"slides,omitempty" validate:"dive"`
}

// SlideEntry is one gallery image.
type SlideEntry struct {
	URL        string `json:"url,omitempty" yaml:"url"`
	Action     string `json:"action,omitempty" yaml:"action,omitempty" validate:"omitempty,oneof=link"`
	LinkURL    string `json:"linkUrl,omitempty" yaml:"linkUrl,omitempty"`
	LinkTarget string `json:"linkTarget,omitempty" yaml:"linkTarget,omitempty" validate:"omitempty,link_target"`
}

// TextSection holds the title and body.
type TextSection struct {
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	Body    string `json:"body,omitempty" yaml:"body,omitempty"`
}

// ButtonSection holds up to two buttons.
type ButtonSection struct {
	Enabled *bool         `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Items   []ButtonEntry `json:"items,omitempty" yaml:"items,omitempty" validate:"max=2,dive"`
}

// ButtonEntry is one button.
type ButtonEntry struct {
	Text   string `json:"text,omitempty" yaml:"text"`
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
	Target string `json:"target,omitempty" yaml:"target,omitempty" validate:"omitempty,link_target"`
}

// IsKnownDisplay reports whether the document names a catalog display type.
// Unknown names are rendered as BOX.
func (d Document) IsKnownDisplay() bool {
	_, ok := catalog.ParseDisplayType(d.Display)
	return ok
}

// ToInput converts the document into assembler input. A section without an
// explicit enabled flag is on when it carries content.
func (d Document) ToInput() payload.Input {
	content := payload.Content{
		ImageURL:    d.Image.URL,
		LinkURL:     d.Image.LinkURL,
		ClickAction: payload.ClickAction(d.Image.ClickAction),
		LinkTarget:  targetOrCurrent(d.Image.LinkTarget),
		Title:       d.Text.Title,
		Body:        d.Text.Body,
		Location:    strings.ToUpper(strings.TrimSpace(d.Location)),
	}

	for i, s := range d.Image.Slides {
		content.Images = append(content.Images, payload.ImageEntry{
			ID:         i + 1,
			URL:        s.URL,
			Action:     payload.ClickAction(s.Action),
			LinkURL:    s.LinkURL,
			LinkTarget: targetOrCurrent(s.LinkTarget),
		})
	}

	var buttons []payload.ButtonEntry
	for i, b := range d.Buttons.Items {
		buttons = append(buttons, payload.ButtonEntry{
			ID:     i + 1,
			Text:   b.Text,
			URL:    b.URL,
			Target: targetOrCurrent(b.Target),
		})
	}

	content.ImageEnabled = enabled(d.Image.Enabled, hasText(d.Image.URL) || hasSlide(content.Images))
	content.TextEnabled = enabled(d.Text.Enabled, hasText(d.Text.Title) || hasText(d.Text.Body))
	content.ButtonEnabled = enabled(d.Buttons.Enabled, hasButton(buttons))

	return payload.Input{
		Display:      strings.ToUpper(strings.TrimSpace(d.Display)),
		Content:      content,
		Buttons:      buttons,
		HasUserInput: !d.Demo,
		Today:        d.Today,
	}
}

func enabled(flag *bool, inferred bool) bool {
	if flag != nil {
		return *flag
	}
	return inferred
}

func targetOrCurrent(s string) payload.LinkTarget {
	if payload.LinkTarget(s) == payload.TargetNew {
		return payload.TargetNew
	}
	return payload.TargetCurrent
}

func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}

func hasSlide(images []payload.ImageEntry) bool {
	for _, img := range images {
		if hasText(img.URL) {
			return true
		}
	}
	return false
}

func hasButton(buttons []payload.ButtonEntry) bool {
	for _, b := range buttons {
		if hasText(b.Text) {
			return true
		}
	}
	return false
}
