package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nepalqubit/contact-qr-generator/internal/qr"
)

// Defaults for the downloaded artifact.
const (
	DefaultFileName = "contact-qr-code.png"
	DefaultSize     = 512
)

// Saver receives the finished artifact.
type Saver interface {
	Save(ctx context.Context, name string, data []byte) error
}

// Exporter rasterizes the currently displayed rendering and saves it under a
// fixed name.
type Exporter struct {
	saver  Saver
	name   string
	size   int
	logger *slog.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithFileName overrides the artifact name. Empty names are ignored.
func WithFileName(name string) Option {
	return func(e *Exporter) {
		if name != "" {
			e.name = name
		}
	}
}

// WithSize overrides the raster side length. Non-positive values are ignored.
func WithSize(n int) Option {
	return func(e *Exporter) {
		if n > 0 {
			e.size = n
		}
	}
}

// WithLogger sets the logger that receives swallowed export failures.
func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Exporter that hands artifacts to saver.
func New(saver Saver, opts ...Option) *Exporter {
	e := &Exporter{
		saver:  saver,
		name:   DefaultFileName,
		size:   DefaultSize,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FileName returns the name artifacts are saved under.
func (e *Exporter) FileName() string { return e.name }

// Export saves r as a PNG and reports whether an artifact was saved. A nil
// rendering means nothing is displayed and Export does nothing. Failures are
// logged and dropped; the caller's state is never affected.
func (e *Exporter) Export(ctx context.Context, r *qr.Rendering) bool {
	if r == nil {
		return false
	}
	if err := e.TryExport(ctx, r); err != nil {
		e.logger.Error("export failed", "file", e.name, "error", err)
		return false
	}
	return true
}

// TryExport is Export with the failure returned instead of logged.
// A nil rendering returns nil without saving.
func (e *Exporter) TryExport(ctx context.Context, r *qr.Rendering) error {
	if r == nil {
		return nil
	}
	data, err := e.Encode(r)
	if err != nil {
		return err
	}
	if err := e.saver.Save(ctx, e.name, data); err != nil {
		return fmt.Errorf("export: saving %s: %w", e.name, err)
	}
	e.logger.Debug("exported", "file", e.name, "bytes", len(data), "size", e.size)
	return nil
}

// Encode rasterizes r's vector rendering and returns the PNG bytes.
func (e *Exporter) Encode(r *qr.Rendering) ([]byte, error) {
	img, err := Rasterize(r.SVG, e.size)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
