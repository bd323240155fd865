// Package qr renders a contact payload as a QR code: a module matrix, an SVG
// vector rendering for display, and a half-block text form for terminals.
package qr

import (
	"errors"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/nepalqubit/contact-qr-generator/internal/contact"
)

// Display sizes of the on-screen rendering, in SVG user units.
const (
	DefaultDisplaySize = 200
	LargeDisplaySize   = 320
)

// QuietZone is the margin, in modules, surrounding the symbol.
const QuietZone = 4

// Level is the error-correction level used for every rendering.
const Level = qrcode.Medium

// ErrEmptyPayload is returned when asked to render an empty payload.
// Callers are expected to skip rendering instead.
var ErrEmptyPayload = errors.New("qr: empty payload")

// Rendering is an immutable QR rendering of one payload.
type Rendering struct {
	Payload     contact.Payload
	Modules     [][]bool // Modules[y][x] is true for a dark module; includes the quiet zone.
	Size        int      // modules per side, including the quiet zone
	DisplaySize int      // SVG width and height
	SVG         []byte
}

// Option configures Render.
type Option func(*options)

type options struct {
	displaySize int
}

// WithDisplaySize sets the SVG width and height. Non-positive values are
// ignored.
func WithDisplaySize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.displaySize = n
		}
	}
}

// Render encodes payload at medium error correction. The result depends only
// on the payload and options: identical inputs give identical modules and SVG
// bytes.
func Render(payload contact.Payload, opts ...Option) (*Rendering, error) {
	if payload == "" {
		return nil, ErrEmptyPayload
	}
	o := options{displaySize: DefaultDisplaySize}
	for _, opt := range opts {
		opt(&o)
	}

	code, err := qrcode.New(string(payload), Level)
	if err != nil {
		return nil, fmt.Errorf("qr: encoding %d bytes: %w", len(payload), err)
	}
	modules := code.Bitmap()

	return &Rendering{
		Payload:     payload,
		Modules:     modules,
		Size:        len(modules),
		DisplaySize: o.displaySize,
		SVG:         svg(modules, o.displaySize),
	}, nil
}

// Dark reports whether the module at column x, row y is dark. Coordinates
// outside the matrix are light.
func (r *Rendering) Dark(x, y int) bool {
	if y < 0 || y >= len(r.Modules) || x < 0 || x >= len(r.Modules[y]) {
		return false
	}
	return r.Modules[y][x]
}

// Terminal draws the matrix with Unicode half blocks, two module rows per
// text line. Light modules are drawn filled so the code scans on dark
// terminal backgrounds.
func (r *Rendering) Terminal() string {
	var b strings.Builder
	for y := 0; y < r.Size; y += 2 {
		for x := 0; x < r.Size; x++ {
			top, bottom := !r.Dark(x, y), !r.Dark(x, y+1)
			if y+1 >= r.Size {
				bottom = false
			}
			switch {
			case top && bottom:
				b.WriteString("█")
			case top:
				b.WriteString("▀")
			case bottom:
				b.WriteString("▄")
			default:
				b.WriteString(" ")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
