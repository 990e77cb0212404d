package editor

import (
	"github.com/alexisbeaulieu97/qdxstudio/internal/catalog"
	"github.com/alexisbeaulieu97/qdxstudio/internal/config"
	"github.com/alexisbeaulieu97/qdxstudio/internal/logger"
)

// FromDocument opens a session on the edit step with the document's content.
// Slots the display type cannot show are kept but stay off.
func FromDocument(doc config.Document, log *logger.Logger) *Session {
	in := doc.ToInput()

	s := NewSession(log)
	_ = s.Select(in.Display)

	cfg := catalog.Config(string(s.settings.Display))
	s.settings.ImageEnabled = in.Content.ImageEnabled && cfg.Slots.Image
	s.settings.TextEnabled = in.Content.TextEnabled && cfg.Slots.Text
	s.settings.ButtonEnabled = in.Content.ButtonEnabled && cfg.Slots.Button
	s.settings.TitleContent = in.Content.Title
	s.settings.BodyContent = in.Content.Body
	s.settings = s.settings.WithPrimary(SingleImage{
		URL:         in.Content.ImageURL,
		LinkURL:     in.Content.LinkURL,
		ClickAction: in.Content.ClickAction,
		LinkTarget:  in.Content.LinkTarget,
	})
	if cfg.Type == catalog.Slide {
		s.settings = s.settings.WithImages(in.Content.Images)
	} else {
		s.carried = cloneImages(in.Content.Images)
	}
	if loc, ok := catalog.ParseLocation(in.Content.Location); ok {
		s.settings.Location = loc
	}

	if len(in.Buttons) > 0 {
		s.buttons = cloneButtons(in.Buttons)
		if len(s.buttons) > MaxButtons {
			s.buttons = s.buttons[:MaxButtons]
		}
	}
	s.buttonIDs.ResetTo(NextButtonID(s.buttons))
	s.imageIDs.ResetTo(NextImageID(append(s.settings.Images(), s.carried...)))

	s.hasUserInput = in.HasUserInput
	s.today = in.Today
	return s
}

// Document renders the session as a settings document.
func (s *Session) Document() config.Document {
	img := s.settings.Primary()
	imageOn, textOn, buttonOn := s.settings.ImageEnabled, s.settings.TextEnabled, s.settings.ButtonEnabled

	doc := config.Document{
		Display:  string(s.settings.Display),
		Location: string(s.settings.Location),
		Today:    s.today,
		Demo:     !s.hasUserInput,
		Image: config.ImageSection{
			Enabled:     &imageOn,
			URL:         img.URL,
			LinkURL:     img.LinkURL,
			ClickAction: string(img.ClickAction),
			LinkTarget:  string(img.LinkTarget),
		},
		Text: config.TextSection{
			Enabled: &textOn,
			Title:   s.settings.TitleContent,
			Body:    s.settings.BodyContent,
		},
		Buttons: config.ButtonSection{Enabled: &buttonOn},
	}

	images := s.settings.Images()
	if s.settings.Display != catalog.Slide {
		images = s.carried
	}
	for _, e := range images {
		doc.Image.Slides = append(doc.Image.Slides, config.SlideEntry{
			URL:        e.URL,
			Action:     string(e.Action),
			LinkURL:    e.LinkURL,
			LinkTarget: string(e.LinkTarget),
		})
	}
	for _, b := range s.buttons {
		doc.Buttons.Items = append(doc.Buttons.Items, config.ButtonEntry{
			Text:   b.Text,
			URL:    b.URL,
			Target: string(b.Target),
		})
	}
	return doc
}
