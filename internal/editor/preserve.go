package editor

import (
	"github.com/alexisbeaulieu97/qdxstudio/internal/payload"
)

// Preserved is the content snapshot kept while the user is back on the
// display type picker. Location is deliberately absent.
type Preserved struct {
	TitleContent  string
	BodyContent   string
	ImageURL      string
	LinkURL       string
	ClickAction   payload.ClickAction
	LinkTarget    payload.LinkTarget
	TextEnabled   bool
	ImageEnabled  bool
	ButtonEnabled bool
	Buttons       []payload.ButtonEntry
	Images        []payload.ImageEntry
}

// Preserve snapshots the content fields of settings together with the
// button list. images overrides the settings' slide images when non-nil.
func Preserve(settings Settings, buttons []payload.ButtonEntry, images []payload.ImageEntry) Preserved {
	img := settings.Primary()
	if images == nil {
		images = settings.Images()
	}
	return Preserved{
		TitleContent:  settings.TitleContent,
		BodyContent:   settings.BodyContent,
		ImageURL:      img.URL,
		LinkURL:       img.LinkURL,
		ClickAction:   img.ClickAction,
		LinkTarget:    img.LinkTarget,
		TextEnabled:   settings.TextEnabled,
		ImageEnabled:  settings.ImageEnabled,
		ButtonEnabled: settings.ButtonEnabled,
		Buttons:       cloneButtons(buttons),
		Images:        cloneImages(images),
	}
}

// Merge starts from NewSettings(displayType), overlays the preserved content
// and forces the location back to the type's default.
func Merge(displayType string, p Preserved) (Settings, []payload.ButtonEntry) {
	s := NewSettings(displayType)
	defaultLocation := s.Location

	s.TitleContent = p.TitleContent
	s.BodyContent = p.BodyContent
	s.TextEnabled = p.TextEnabled
	s.ImageEnabled = p.ImageEnabled
	s.ButtonEnabled = p.ButtonEnabled
	s = s.WithPrimary(SingleImage{
		URL:         p.ImageURL,
		LinkURL:     p.LinkURL,
		ClickAction: p.ClickAction,
		LinkTarget:  p.LinkTarget,
	})
	s = s.WithImages(p.Images)

	s.Location = defaultLocation
	return s, cloneButtons(p.Buttons)
}

// NextButtonID is one past the largest button id, or 1 for an empty list.
func NextButtonID(buttons []payload.ButtonEntry) int {
	maxID := 0
	for _, b := range buttons {
		if b.ID > maxID {
			maxID = b.ID
		}
	}
	return maxID + 1
}

// NextImageID is one past the largest image id, or 1 for an empty list.
func NextImageID(images []payload.ImageEntry) int {
	maxID := 0
	for _, img := range images {
		if img.ID > maxID {
			maxID = img.ID
		}
	}
	return maxID + 1
}
