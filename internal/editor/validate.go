package editor

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/qdxstudio/internal/catalog"
	"github.com/alexisbeaulieu97/qdxstudio/internal/config"
	"github.com/alexisbeaulieu97/qdxstudio/internal/payload"
	qdxerrors "github.com/alexisbeaulieu97/qdxstudio/pkg/errors"
)

// Validate checks the fields a popup needs before it can be saved. Field
// names follow the settings document layout. Only slots that are switched on
// and allowed for the display type are checked.
func (s *Session) Validate() error {
	if err := s.requireEdit(); err != nil {
		return err
	}

	cfg := catalog.Config(string(s.settings.Display))
	var errs qdxerrors.ValidationErrors
	check := func(field string, value any, tag string) {
		if ve := config.CheckVar(field, value, tag); ve != nil {
			errs = append(errs, ve)
		}
	}

	if cfg.Slots.Text && s.settings.TextEnabled {
		check("text.title", strings.TrimSpace(s.settings.TitleContent), "required")
	}

	if cfg.Slots.Image && s.settings.ImageEnabled {
		if cfg.Type == catalog.Slide {
			errs = append(errs, validateSlides(s.settings.Images())...)
		} else {
			img := s.settings.Primary()
			check("image.url", img.URL, "web_url")
			if img.ClickAction == payload.ActionLink {
				check("image.linkUrl", img.LinkURL, "web_url")
			}
		}
	}

	if cfg.Slots.Button && s.settings.ButtonEnabled {
		for i, b := range s.buttons {
			check(fmt.Sprintf("buttons.items[%d].text", i), strings.TrimSpace(b.Text), "required")
			check(fmt.Sprintf("buttons.items[%d].url", i), b.URL, "web_url")
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateSlides(images []payload.ImageEntry) qdxerrors.ValidationErrors {
	if len(images) == 0 {
		return qdxerrors.ValidationErrors{{Field: "image.slides", Message: "needs at least one image"}}
	}
	var errs qdxerrors.ValidationErrors
	for i, img := range images {
		if ve := config.CheckVar(fmt.Sprintf("image.slides[%d].url", i), img.URL, "web_url"); ve != nil {
			errs = append(errs, ve)
		}
		if img.Action == payload.ActionLink {
			if ve := config.CheckVar(fmt.Sprintf("image.slides[%d].linkUrl", i), img.LinkURL, "web_url"); ve != nil {
				errs = append(errs, ve)
			}
		}
	}
	return errs
}
