package printing

import (
	"context"
	"time"
)

// PageOptions sets the paper of a printed document, in millimetres
type PageOptions struct {
	WidthMM    float64
	HeightMM   float64
	MarginMM   float64
	Landscape  bool
	FooterHTML string
	Timeout    time.Duration
}

// A4Portrait is the paper used for receipts and statements
func A4Portrait() PageOptions {
	return PageOptions{WidthMM: 210, HeightMM: 297, MarginMM: 12}
}

// A4Landscape is the paper used for wide report tables
func A4Landscape() PageOptions {
	o := A4Portrait()
	o.Landscape = true
	return o
}

// HTMLRenderer prints an HTML document to PDF
type HTMLRenderer interface {
	RenderHTML(ctx context.Context, html string, opts PageOptions) ([]byte, error)
}

// RenderError reports a failed print
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

const (
	ErrCodeRenderTimeout = "RENDER_TIMEOUT"
	ErrCodeRenderFailed  = "RENDER_FAILED"
	ErrCodeInvalidHTML   = "INVALID_HTML"
	ErrCodeTemplate      = "TEMPLATE_FAILED"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}
