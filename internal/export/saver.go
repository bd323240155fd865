package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrInvalidName is returned when an artifact name is empty, a dot-segment,
// or contains path separators.
var ErrInvalidName = errors.New("export: invalid file name")

// Compile-time checks.
var (
	_ Saver = (*FileSaver)(nil)
	_ Saver = (*WriterSaver)(nil)
)

// FileSaver writes artifacts into a directory, creating it on first save.
type FileSaver struct {
	dir string
}

// NewFileSaver creates a FileSaver rooted at dir.
func NewFileSaver(dir string) *FileSaver {
	return &FileSaver{dir: dir}
}

// Save writes data to dir/name, replacing any earlier artifact.
func (s *FileSaver) Save(ctx context.Context, name string, data []byte) error {
	p, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("export: creating directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("export: writing %s: %w", p, err)
	}
	return nil
}

// Path returns where name would be written.
func (s *FileSaver) Path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name), nil
}

// WriterSaver streams artifacts to an io.Writer, such as an HTTP response.
// The name is ignored.
type WriterSaver struct {
	w io.Writer
}

// NewWriterSaver creates a WriterSaver writing to w.
func NewWriterSaver(w io.Writer) *WriterSaver {
	return &WriterSaver{w: w}
}

// Save writes data to the underlying writer.
func (s *WriterSaver) Save(ctx context.Context, _ string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.w.Write(data); err != nil {
		return fmt.Errorf("export: writing: %w", err)
	}
	return nil
}
