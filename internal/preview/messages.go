// Package preview is the typed message boundary between the editor and the
// surface that renders popups, plus the HTML page that hosts the renderer SDK.
package preview

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/alexisbeaulieu97/qdxstudio/internal/payload"
)

// Kind names a message on the wire.
type Kind string

const (
	KindShowPreview        Kind = "show_preview"
	KindGeneratePopupHTML  Kind = "generate_popup_html"
	KindPopupHTMLGenerated Kind = "popup_html_generated"
	KindTodayOptionChanged Kind = "today_option_changed"
	KindSurfaceReady       Kind = "iframe_ready"
)

// ErrUnknownMessage is returned by Decode for an unrecognised type.
var ErrUnknownMessage = errors.New("unknown message type")

// Message is anything exchanged with a preview surface.
type Message interface {
	Kind() Kind
}

// ShowPreview asks the surface to render a payload.
type ShowPreview struct {
	Data payload.Payload `json:"data"`
}

// GeneratePopupHTML asks for a standalone popup document.
type GeneratePopupHTML struct {
	MessageID string          `json:"messageId"`
	Data      payload.Payload `json:"data"`
}

// PopupHTMLGenerated answers GeneratePopupHTML.
type PopupHTMLGenerated struct {
	HTML string `json:"html"`
}

// TodayOptionChanged reports the "don't show again today" checkbox.
type TodayOptionChanged struct {
	Checked bool `json:"checked"`
}

// SurfaceReady is sent once the surface can accept previews.
type SurfaceReady struct{}

func (ShowPreview) Kind() Kind        { return KindShowPreview }
func (GeneratePopupHTML) Kind() Kind  { return KindGeneratePopupHTML }
func (PopupHTMLGenerated) Kind() Kind { return KindPopupHTMLGenerated }
func (TodayOptionChanged) Kind() Kind { return KindTodayOptionChanged }
func (SurfaceReady) Kind() Kind       { return KindSurfaceReady }

// NewMessageID returns a fresh, sortable message id.
func NewMessageID() string {
	return ulid.Make().String()
}

// Encode writes m as a flat JSON object with its kind under "type".
func Encode(m Message) ([]byte, error) {
	if m == nil {
		return nil, errors.New("encode: nil message")
	}
	body, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", m.Kind(), err)
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("encode %s: %w", m.Kind(), err)
	}
	kind, _ := json.Marshal(m.Kind())
	fields["type"] = kind
	return json.Marshal(fields)
}

// Decode reads an encoded message.
func Decode(data []byte) (Message, error) {
	var head struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}

	var m Message
	switch head.Type {
	case KindShowPreview:
		var v ShowPreview
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", head.Type, err)
		}
		m = v
	case KindGeneratePopupHTML:
		var v GeneratePopupHTML
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", head.Type, err)
		}
		m = v
	case KindPopupHTMLGenerated:
		var v PopupHTMLGenerated
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", head.Type, err)
		}
		m = v
	case KindTodayOptionChanged:
		var v TodayOptionChanged
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", head.Type, err)
		}
		m = v
	case KindSurfaceReady:
		m = SurfaceReady{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, head.Type)
	}
	return m, nil
}
