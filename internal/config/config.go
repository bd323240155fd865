// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all qrcard configuration.
type Config struct {
	Server  Server  `yaml:"server"`
	Display Display `yaml:"display"`
	Export  Export  `yaml:"export"`
	Log     Log     `yaml:"log"`
}

// Server holds browser form settings.
type Server struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Display holds on-screen rendering settings.
type Display struct {
	Size int `yaml:"size"` // SVG width and height
}

// Export holds download artifact settings.
type Export struct {
	OutDir   string `yaml:"out_dir"`   // Where the terminal form saves downloads
	FileName string `yaml:"file_name"` // Artifact name
	Size     int    `yaml:"size"`      // Raster side length in pixels
}

// Log holds diagnostic logging settings.
type Log struct {
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Display: Display{
			Size: 200,
		},
		Export: Export{
			OutDir:   ".",
			FileName: "contact-qr-code.png",
			Size:     512,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// DefaultPaths returns the config layers in increasing priority: the user
// config, then the project config in the working directory.
func DefaultPaths() []string {
	return []string{
		os.ExpandEnv("$HOME/.config/qrcard/config.yaml"),
		filepath.Join(".qrcard", "config.yaml"),
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("config: server.addr cannot be empty")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: server.shutdown_timeout must be positive, got %v", c.Server.ShutdownTimeout)
	}
	if c.Display.Size <= 0 {
		return fmt.Errorf("config: display.size must be positive, got %d", c.Display.Size)
	}
	if c.Export.OutDir == "" {
		return errors.New("config: export.out_dir cannot be empty")
	}
	if c.Export.FileName == "" || c.Export.FileName != filepath.Base(c.Export.FileName) {
		return fmt.Errorf("config: export.file_name must be a bare file name, got %q", c.Export.FileName)
	}
	if c.Export.Size <= 0 {
		return fmt.Errorf("config: export.size must be positive, got %d", c.Export.Size)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses Log.Level. An empty level means info.
func (l Log) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("config: log.level must be one of debug, info, warn, error, got %q", l.Level)
	}
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: QRCARD_ADDR, QRCARD_OUT_DIR, QRCARD_DISPLAY_SIZE, QRCARD_LOG_LEVEL.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("QRCARD_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("QRCARD_OUT_DIR"); v != "" {
		c.Export.OutDir = v
	}
	if v := os.Getenv("QRCARD_DISPLAY_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid QRCARD_DISPLAY_SIZE %q: %w", v, err)
		}
		c.Display.Size = n
	}
	if v := os.Getenv("QRCARD_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Server  *rawServer  `yaml:"server"`
	Display *rawDisplay `yaml:"display"`
	Export  *rawExport  `yaml:"export"`
	Log     *rawLog     `yaml:"log"`
}

type rawServer struct {
	Addr            *string        `yaml:"addr"`
	ShutdownTimeout *time.Duration `yaml:"shutdown_timeout"`
}

type rawDisplay struct {
	Size *int `yaml:"size"`
}

type rawExport struct {
	OutDir   *string `yaml:"out_dir"`
	FileName *string `yaml:"file_name"`
	Size     *int    `yaml:"size"`
}

type rawLog struct {
	Level *string `yaml:"level"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Server != nil {
		if layer.Server.Addr != nil {
			c.Server.Addr = *layer.Server.Addr
		}
		if layer.Server.ShutdownTimeout != nil {
			c.Server.ShutdownTimeout = *layer.Server.ShutdownTimeout
		}
	}
	if layer.Display != nil {
		if layer.Display.Size != nil {
			c.Display.Size = *layer.Display.Size
		}
	}
	if layer.Export != nil {
		if layer.Export.OutDir != nil {
			c.Export.OutDir = *layer.Export.OutDir
		}
		if layer.Export.FileName != nil {
			c.Export.FileName = *layer.Export.FileName
		}
		if layer.Export.Size != nil {
			c.Export.Size = *layer.Export.Size
		}
	}
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
	}
}
