// Package qrcard carries the browser form's page template and stylesheet,
// compiled into the binary, plus a way to override them from disk.
package qrcard

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed templates/*.html.tmpl
var templateFiles embed.FS

//go:embed static/*.css
var staticFiles embed.FS

// Templates holds index.html.tmpl at its root.
var Templates = subdir(templateFiles, "templates")

// Static holds style.css at its root.
var Static = subdir(staticFiles, "static")

// subdir re-roots fsys at dir. The directories are fixed by the embed
// patterns above, so an error here is a build defect.
func subdir(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// OverlayFS serves name from dir when a file of that name exists there and
// from base otherwise. Names must satisfy fs.ValidPath.
func OverlayFS(dir string, base fs.FS) fs.FS {
	return &assetOverlay{dir: dir, base: base}
}

type assetOverlay struct {
	dir  string
	base fs.FS
}

func (a *assetOverlay) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	if f, err := os.Open(filepath.Join(a.dir, filepath.FromSlash(name))); err == nil {
		return f, nil
	}
	return a.base.Open(name)
}
