package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/alexisbeaulieu97/qdxstudio/internal/logger"
	"github.com/alexisbeaulieu97/qdxstudio/internal/payload"
	qdxerrors "github.com/alexisbeaulieu97/qdxstudio/pkg/errors"
)

// ErrRendererUnavailable means no renderer SDK is loaded.
var ErrRendererUnavailable = errors.New("renderer SDK is not available")

// Surface is where preview messages go: a browser frame, a websocket hub or
// a terminal.
type Surface interface {
	Send(ctx context.Context, m Message) error
}

// Renderer is the SDK entry point that draws a payload.
type Renderer interface {
	ShowMsg(id string, p payload.Payload) error
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(ctx context.Context, m Message) error

// Send calls f.
func (f SurfaceFunc) Send(ctx context.Context, m Message) error { return f(ctx, m) }

// Presenter drives a Surface on behalf of one editing session.
type Presenter struct {
	surface  Surface
	renderer Renderer
	page     *Page
	raw      io.Writer
	log      *logger.Logger

	mu      sync.Mutex
	last    *payload.Payload
	onToday func(bool)
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithRenderer sets the SDK used by Render.
func WithRenderer(r Renderer) Option {
	return func(p *Presenter) { p.renderer = r }
}

// WithRawOutput sets where Render writes the payload JSON when the SDK is
// unavailable.
func WithRawOutput(w io.Writer) Option {
	return func(p *Presenter) { p.raw = w }
}

// WithTodayHandler registers the callback for TodayOptionChanged.
func WithTodayHandler(fn func(bool)) Option {
	return func(p *Presenter) { p.onToday = fn }
}

// NewPresenter returns a Presenter sending to surface and building popup
// documents with page.
func NewPresenter(surface Surface, page *Page, log *logger.Logger, opts ...Option) *Presenter {
	p := &Presenter{
		surface: surface,
		page:    page,
		raw:     io.Discard,
		log:     log.Component("preview"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Preview sends pl to the surface and remembers it for SurfaceReady.
func (p *Presenter) Preview(ctx context.Context, pl payload.Payload) error {
	p.mu.Lock()
	p.last = &pl
	p.mu.Unlock()

	if p.surface == nil {
		return nil
	}
	return p.surface.Send(ctx, ShowPreview{Data: pl})
}

// Handle reacts to a message coming back from the surface.
func (p *Presenter) Handle(ctx context.Context, m Message) error {
	switch msg := m.(type) {
	case GeneratePopupHTML:
		html, err := p.page.Popup(msg.MessageID, msg.Data)
		if err != nil {
			return qdxerrors.NewRenderError(msg.MessageID, err)
		}
		return p.send(ctx, PopupHTMLGenerated{HTML: html})
	case TodayOptionChanged:
		p.mu.Lock()
		fn := p.onToday
		p.mu.Unlock()
		if fn != nil {
			fn(msg.Checked)
		}
		return nil
	case SurfaceReady:
		p.mu.Lock()
		last := p.last
		p.mu.Unlock()
		if last == nil {
			return nil
		}
		return p.send(ctx, ShowPreview{Data: *last})
	case nil:
		return fmt.Errorf("%w: nil", ErrUnknownMessage)
	}
	p.log.Debug("ignoring message", "type", string(m.Kind()))
	return nil
}

// Render hands pl to the SDK. Without a working SDK the payload JSON is
// written to the raw output and a RenderError is returned.
func (p *Presenter) Render(id string, pl payload.Payload) error {
	if id == "" {
		id = NewMessageID()
	}

	var cause error = ErrRendererUnavailable
	if p.renderer != nil {
		cause = p.renderer.ShowMsg(id, pl)
		if cause == nil {
			return nil
		}
	}

	p.log.Warn("renderer unavailable, showing raw payload", "id", id, "error", cause.Error())
	body, err := payload.Encode(pl, false)
	if err == nil {
		_, err = fmt.Fprintf(p.raw, "%s\n", body)
	}
	if err != nil {
		return qdxerrors.NewRenderError(id, errors.Join(cause, err))
	}
	return qdxerrors.NewRenderError(id, cause)
}

func (p *Presenter) send(ctx context.Context, m Message) error {
	if p.surface == nil {
		return nil
	}
	return p.surface.Send(ctx, m)
}
