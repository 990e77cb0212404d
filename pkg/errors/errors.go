package errors

import (
	"fmt"
)

// ParseError represents a settings document that could not be read or decoded.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError reports a single form field that blocks saving.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationErrors groups every failing field of one submit attempt.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	switch len(e) {
	case 0:
		return ""
	case 1:
		return e[0].Error()
	}
	return fmt.Sprintf("%s (and %d more)", e[0].Error(), len(e)-1)
}

// Fields lists the failing field names in report order.
func (e ValidationErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for _, v := range e {
		out = append(out, v.Field)
	}
	return out
}

// RemoteLoadError describes a code table endpoint that could not be used.
type RemoteLoadError struct {
	Endpoint string
	URL      string
	Err      error
}

// NewRemoteLoadError constructs a RemoteLoadError.
func NewRemoteLoadError(endpoint, url string, err error) error {
	return &RemoteLoadError{Endpoint: endpoint, URL: url, Err: err}
}

func (e *RemoteLoadError) Error() string {
	if e == nil {
		return ""
	}
	if e.URL != "" {
		return fmt.Sprintf("remote load error [%s] %s: %v", e.Endpoint, e.URL, e.Err)
	}
	return fmt.Sprintf("remote load error [%s]: %v", e.Endpoint, e.Err)
}

// Unwrap exposes the underlying error.
func (e *RemoteLoadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RenderError indicates the renderer SDK could not display a payload.
type RenderError struct {
	MessageID string
	Err       error
}

// NewRenderError constructs a RenderError.
func NewRenderError(messageID string, err error) error {
	return &RenderError{MessageID: messageID, Err: err}
}

func (e *RenderError) Error() string {
	if e == nil {
		return ""
	}
	if e.MessageID != "" {
		return fmt.Sprintf("render error on message %s: %v", e.MessageID, e.Err)
	}
	return fmt.Sprintf("render error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *RenderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
