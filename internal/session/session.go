// Package session holds the display state of one form interaction: whether a
// payload is shown, which one, and its rendering.
package session

import (
	"context"
	"fmt"

	"github.com/nepalqubit/contact-qr-generator/internal/contact"
	"github.com/nepalqubit/contact-qr-generator/internal/export"
	"github.com/nepalqubit/contact-qr-generator/internal/qr"
)

// State is the display state.
type State int

const (
	// Empty means no payload and no rendering are shown.
	Empty State = iota
	// HasPayload means a payload and its rendering are shown.
	HasPayload
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case HasPayload:
		return "has-payload"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session is not safe for concurrent use.
type Session struct {
	exporter  *export.Exporter
	renderOpt []qr.Option

	payload   contact.Payload
	rendering *qr.Rendering
}

// New creates an empty session that downloads through exporter.
func New(exporter *export.Exporter, opts ...qr.Option) *Session {
	return &Session{exporter: exporter, renderOpt: opts}
}

// State reports the current display state.
func (s *Session) State() State {
	if s.rendering == nil {
		return Empty
	}
	return HasPayload
}

// Payload returns the displayed payload, or "" when Empty.
func (s *Session) Payload() contact.Payload { return s.payload }

// Rendering returns the displayed rendering, or nil when Empty.
func (s *Session) Rendering() *qr.Rendering { return s.rendering }

// Submit validates r and, when valid, replaces the displayed payload with a
// freshly encoded and rendered one. Validation failures leave the state
// unchanged and are returned as field errors. A render failure also leaves
// the state unchanged.
func (s *Session) Submit(r contact.Record) (contact.ValidationErrors, error) {
	if errs := contact.Validate(r); errs != nil {
		return errs, nil
	}
	payload := contact.Encode(r)
	rendering, err := qr.Render(payload, s.renderOpt...)
	if err != nil {
		return nil, fmt.Errorf("session: rendering: %w", err)
	}
	s.payload, s.rendering = payload, rendering
	return nil, nil
}

// Clear returns to Empty. Calling it again has no further effect.
func (s *Session) Clear() {
	s.payload, s.rendering = "", nil
}

// Download exports the displayed rendering and reports whether an artifact
// was saved. In Empty it does nothing. Export failures never change the
// session.
func (s *Session) Download(ctx context.Context) bool {
	return s.exporter.Export(ctx, s.rendering)
}

// Pending binds a download to the rendering displayed now. The returned
// function may run on another goroutine; later Submit or Clear calls do not
// affect it. Pending returns nil in Empty.
func (s *Session) Pending() func(context.Context) bool {
	r := s.rendering
	if r == nil {
		return nil
	}
	exp := s.exporter
	return func(ctx context.Context) bool {
		return exp.Export(ctx, r)
	}
}

// FileName returns the name downloads are saved under.
func (s *Session) FileName() string { return s.exporter.FileName() }
