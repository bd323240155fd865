package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Addr != ":8080" {
		t.Errorf("default addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.Display.Size != 200 {
		t.Errorf("default display size = %d, want 200", cfg.Display.Size)
	}
	if cfg.Export.FileName != "contact-qr-code.png" {
		t.Errorf("default file name = %q, want %q", cfg.Export.FileName, "contact-qr-code.png")
	}
	if cfg.Export.Size != 512 {
		t.Errorf("default export size = %d, want 512", cfg.Export.Size)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	paths := DefaultPaths()

	if len(paths) != 2 {
		t.Fatalf("DefaultPaths() = %q, want 2 layers", paths)
	}
	if paths[0] != "/home/tester/.config/qrcard/config.yaml" {
		t.Errorf("user layer = %q", paths[0])
	}
	if paths[1] != filepath.Join(".qrcard", "config.yaml") {
		t.Errorf("project layer = %q", paths[1])
	}
}

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(`
server:
  addr: 127.0.0.1:9000
  shutdown_timeout: 2s
export:
  out_dir: /tmp/cards
  size: 1024
`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("addr = %q, want %q", cfg.Server.Addr, "127.0.0.1:9000")
	}
	if cfg.Server.ShutdownTimeout != 2*time.Second {
		t.Errorf("shutdown timeout = %v, want %v", cfg.Server.ShutdownTimeout, 2*time.Second)
	}
	if cfg.Export.OutDir != "/tmp/cards" {
		t.Errorf("out dir = %q, want %q", cfg.Export.OutDir, "/tmp/cards")
	}
	if cfg.Export.Size != 1024 {
		t.Errorf("export size = %d, want 1024", cfg.Export.Size)
	}
	// Unset fields should retain defaults.
	if cfg.Export.FileName != "contact-qr-code.png" {
		t.Errorf("file name = %q, want default", cfg.Export.FileName)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/config.yaml")
	if err != nil {
		t.Fatalf("Load() should return defaults for missing file, got error: %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("Load(missing) = %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("{{invalid yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(cfgPath)
	if err == nil {
		t.Fatal("Load(invalid YAML) should return error")
	}
	if !strings.HasPrefix(err.Error(), "config: parsing") {
		t.Errorf("error = %q, want config: parsing prefix", err)
	}
}

func TestLoad_UnknownField(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(`
export:
  outdir: /tmp
`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(cfgPath); err == nil {
		t.Fatal("Load() should return error for unknown field 'outdir'")
	}
}

func TestLoad_EmptyAndCommentOnly(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"comment only", "# just a comment\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(cfgPath, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			cfg, err := Load(cfgPath)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if want := DefaultConfig(); *cfg != want {
				t.Errorf("Load() = %+v, want defaults %+v", *cfg, want)
			}
		})
	}
}

func TestLoadLayered_Priority(t *testing.T) {
	// Given: the user layer sets addr and size, the project layer overrides size
	userCfg := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(userCfg, []byte(`
server:
  addr: :7000
display:
  size: 240
`), 0o644); err != nil {
		t.Fatal(err)
	}
	projectCfg := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(projectCfg, []byte(`
display:
  size: 320
`), 0o644); err != nil {
		t.Fatal(err)
	}

	// When: loading both layers
	cfg, err := LoadLayered(userCfg, projectCfg)
	if err != nil {
		t.Fatalf("LoadLayered() error = %v", err)
	}

	// Then: later layers win per field and unset fields keep defaults
	if cfg.Server.Addr != ":7000" {
		t.Errorf("addr = %q, want %q", cfg.Server.Addr, ":7000")
	}
	if cfg.Display.Size != 320 {
		t.Errorf("display size = %d, want 320", cfg.Display.Size)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level = %q, want default", cfg.Log.Level)
	}
}

func TestLoadLayered_AllMissing(t *testing.T) {
	cfg, err := LoadLayered("/no/user.yaml", "/no/project.yaml")
	if err != nil {
		t.Fatalf("LoadLayered(all missing) error = %v", err)
	}
	want := DefaultConfig()
	if *cfg != want {
		t.Errorf("got %+v, want defaults %+v", *cfg, want)
	}
}

func TestLoadLayered_BadLayer(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(bad, []byte("log:\n  lvl: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadLayered("/no/user.yaml", bad); err == nil {
		t.Fatal("LoadLayered() should fail on an unknown field in any layer")
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		envs    map[string]string
		wantErr bool
		check   func(*testing.T, Config)
	}{
		{
			name: "QRCARD_ADDR overrides addr",
			envs: map[string]string{"QRCARD_ADDR": ":9999"},
			check: func(t *testing.T, c Config) {
				if c.Server.Addr != ":9999" {
					t.Errorf("addr = %q, want %q", c.Server.Addr, ":9999")
				}
			},
		},
		{
			name: "QRCARD_OUT_DIR overrides out dir",
			envs: map[string]string{"QRCARD_OUT_DIR": "/custom/dir"},
			check: func(t *testing.T, c Config) {
				if c.Export.OutDir != "/custom/dir" {
					t.Errorf("out dir = %q, want %q", c.Export.OutDir, "/custom/dir")
				}
			},
		},
		{
			name: "QRCARD_DISPLAY_SIZE overrides display size",
			envs: map[string]string{"QRCARD_DISPLAY_SIZE": "320"},
			check: func(t *testing.T, c Config) {
				if c.Display.Size != 320 {
					t.Errorf("display size = %d, want 320", c.Display.Size)
				}
			},
		},
		{
			name: "QRCARD_LOG_LEVEL overrides level",
			envs: map[string]string{"QRCARD_LOG_LEVEL": "debug"},
			check: func(t *testing.T, c Config) {
				if c.Log.Level != "debug" {
					t.Errorf("level = %q, want %q", c.Log.Level, "debug")
				}
			},
		},
		{
			name:    "invalid QRCARD_DISPLAY_SIZE returns error",
			envs:    map[string]string{"QRCARD_DISPLAY_SIZE": "big"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envs {
				t.Setenv(k, v)
			}
			cfg := DefaultConfig()
			err := cfg.ApplyEnv()

			if tt.wantErr {
				if err == nil {
					t.Fatal("ApplyEnv() should return error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnv() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:    "empty addr",
			modify:  func(c *Config) { c.Server.Addr = "" },
			wantErr: true,
		},
		{
			name:    "zero shutdown timeout",
			modify:  func(c *Config) { c.Server.ShutdownTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "negative display size",
			modify:  func(c *Config) { c.Display.Size = -1 },
			wantErr: true,
		},
		{
			name:    "empty out dir",
			modify:  func(c *Config) { c.Export.OutDir = "" },
			wantErr: true,
		},
		{
			name:    "file name with directory",
			modify:  func(c *Config) { c.Export.FileName = "../card.png" },
			wantErr: true,
		},
		{
			name:    "zero export size",
			modify:  func(c *Config) { c.Export.Size = 0 },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLog_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := Log{Level: tt.level}.SlogLevel()
		if err != nil {
			t.Fatalf("SlogLevel(%q) error = %v", tt.level, err)
		}
		if got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
