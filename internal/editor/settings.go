// Package editor owns the mutable form state of one popup editing session and
// carries user content across display type switches.
package editor

import (
	"github.com/alexisbeaulieu97/qdxstudio/internal/catalog"
	"github.com/alexisbeaulieu97/qdxstudio/internal/payload"
)

// ImageContent is the image part of Settings. BAR, BOX and STAR carry a
// SingleImage; SLIDE carries a Gallery.
type ImageContent interface {
	primary() SingleImage
	gallery() []payload.ImageEntry
}

// SingleImage is one optional image with its click behaviour.
type SingleImage struct {
	URL         string
	LinkURL     string
	ClickAction payload.ClickAction
	LinkTarget  payload.LinkTarget
}

func (s SingleImage) primary() SingleImage          { return s }
func (s SingleImage) gallery() []payload.ImageEntry { return nil }

// Gallery is the SLIDE image list. The embedded SingleImage is used when the
// list holds no usable image.
type Gallery struct {
	SingleImage
	Images []payload.ImageEntry
}

func (g Gallery) primary() SingleImage          { return g.SingleImage }
func (g Gallery) gallery() []payload.ImageEntry { return g.Images }

// Settings is the user-entered state for one display type.
type Settings struct {
	Display       catalog.DisplayType
	ImageEnabled  bool
	TextEnabled   bool
	ButtonEnabled bool
	Image         ImageContent
	TitleContent  string
	BodyContent   string
	Location      catalog.Location
}

// NewSettings returns the initial settings for displayType: every toggle
// off, empty content and the type's default location.
func NewSettings(displayType string) Settings {
	cfg := catalog.Config(displayType)
	s := Settings{
		Display:  cfg.Type,
		Location: cfg.DefaultLocation,
	}
	if cfg.Type == catalog.Slide {
		s.Image = Gallery{}
	} else {
		s.Image = SingleImage{}
	}
	return s
}

// Primary returns the single image, whatever the variant.
func (s Settings) Primary() SingleImage {
	if s.Image == nil {
		return SingleImage{}
	}
	return s.Image.primary()
}

// Images returns a copy of the slide images; nil for non-SLIDE settings.
func (s Settings) Images() []payload.ImageEntry {
	if s.Image == nil {
		return nil
	}
	return cloneImages(s.Image.gallery())
}

// WithPrimary returns s with the single image replaced, keeping the variant.
func (s Settings) WithPrimary(img SingleImage) Settings {
	switch cur := s.Image.(type) {
	case Gallery:
		cur.SingleImage = img
		s.Image = cur
	default:
		s.Image = img
	}
	return s
}

// WithImages returns s with the slide images replaced. Non-SLIDE settings
// are returned unchanged.
func (s Settings) WithImages(images []payload.ImageEntry) Settings {
	if g, ok := s.Image.(Gallery); ok {
		g.Images = cloneImages(images)
		s.Image = g
	}
	return s
}

// Content flattens s into the assembler's input form.
func (s Settings) Content() payload.Content {
	img := s.Primary()
	return payload.Content{
		ImageEnabled:  s.ImageEnabled,
		TextEnabled:   s.TextEnabled,
		ButtonEnabled: s.ButtonEnabled,
		ImageURL:      img.URL,
		LinkURL:       img.LinkURL,
		ClickAction:   img.ClickAction,
		LinkTarget:    img.LinkTarget,
		Images:        s.Images(),
		Title:         s.TitleContent,
		Body:          s.BodyContent,
		Location:      string(s.Location),
	}
}

func cloneImages(in []payload.ImageEntry) []payload.ImageEntry {
	if in == nil {
		return nil
	}
	return append([]payload.ImageEntry(nil), in...)
}

func cloneButtons(in []payload.ButtonEntry) []payload.ButtonEntry {
	if in == nil {
		return nil
	}
	return append([]payload.ButtonEntry(nil), in...)
}
