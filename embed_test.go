package qrcard

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func TestEmbeddedTemplates(t *testing.T) {
	data, err := fs.ReadFile(Templates, "index.html.tmpl")
	if err != nil {
		t.Fatalf("reading embedded index.html.tmpl: %v", err)
	}
	if !strings.Contains(string(data), `id="contact-form"`) {
		t.Error("embedded index.html.tmpl has no contact form")
	}
}

func TestEmbeddedStatic(t *testing.T) {
	data, err := fs.ReadFile(Static, "style.css")
	if err != nil {
		t.Fatalf("reading embedded style.css: %v", err)
	}
	if len(data) == 0 {
		t.Error("embedded style.css is empty")
	}
}

func TestOverlayFS(t *testing.T) {
	embedded := fstest.MapFS{
		"index.html.tmpl": &fstest.MapFile{Data: []byte("embedded page")},
		"style.css":       &fstest.MapFile{Data: []byte("embedded css")},
	}
	tests := []struct {
		name    string
		local   map[string]string
		open    string
		want    string
		wantErr bool
	}{
		{name: "falls back to embedded", open: "style.css", want: "embedded css"},
		{
			name:  "local file wins",
			local: map[string]string{"style.css": "local css"},
			open:  "style.css",
			want:  "local css",
		},
		{
			name:  "local override leaves other files embedded",
			local: map[string]string{"style.css": "local css"},
			open:  "index.html.tmpl",
			want:  "embedded page",
		},
		{name: "missing everywhere", open: "logo.svg", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a local dir holding tt.local over the embedded assets
			dir := t.TempDir()
			for name, body := range tt.local {
				if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			// When: reading through the overlay
			data, err := fs.ReadFile(OverlayFS(dir, embedded), tt.open)

			// Then: the nearer layer answers
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ReadFile(%q) = %q, want error", tt.open, data)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadFile(%q) error = %v", tt.open, err)
			}
			if string(data) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.open, data, tt.want)
			}
		})
	}
}

func TestOverlayFS_RejectsInvalidPath(t *testing.T) {
	ofs := OverlayFS(t.TempDir(), fstest.MapFS{})

	for _, name := range []string{"../escape", "/absolute", "bad\\slash"} {
		_, err := ofs.Open(name)
		if err == nil {
			t.Errorf("Open(%q) should return error", name)
		}
	}
}
