package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	qrcard "github.com/nepalqubit/contact-qr-generator"
	"github.com/nepalqubit/contact-qr-generator/internal/config"
	"github.com/nepalqubit/contact-qr-generator/internal/contact"
	"github.com/nepalqubit/contact-qr-generator/internal/export"
	"github.com/nepalqubit/contact-qr-generator/internal/qr"
	"github.com/nepalqubit/contact-qr-generator/internal/session"
	"github.com/nepalqubit/contact-qr-generator/internal/tui"
	"github.com/nepalqubit/contact-qr-generator/internal/web"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals holds flags shared by every command.
type Globals struct {
	Config string `help:"Read settings from this file only, skipping the user and project layers." type:"existingfile" short:"c"`
}

// CLI is the top-level command structure for qrcard.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Form    FormCmd          `cmd:"" help:"Fill in a contact card in the terminal."`
	Encode  EncodeCmd        `cmd:"" help:"Print the vCard payload for the given contact fields."`
	Serve   ServeCmd         `cmd:"" help:"Serve the contact form in a browser."`
}

// setupError marks failures that happen before any work starts: bad config,
// missing terminal, invalid flags.
type setupError struct{ err error }

func (e *setupError) Error() string { return e.err.Error() }
func (e *setupError) Unwrap() error { return e.err }

func setup(err error) error {
	if err == nil {
		return nil
	}
	return &setupError{err: err}
}

// loadConfig loads the file given with --config, or else the layered user
// and project files, then applies env overrides.
func loadConfig(g *Globals) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if g != nil && g.Config != "" {
		cfg, err = config.Load(g.Config)
	} else {
		cfg, err = config.LoadLayered(config.DefaultPaths()...)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the diagnostic logger at the configured level.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// --- Form command ---

// FormCmd opens the interactive terminal form.
type FormCmd struct {
	OutDir  string `help:"Directory downloads are saved to (default from config)." type:"path"`
	Large   bool   `help:"Show the larger QR preview."`
	LogFile string `help:"Write diagnostic logs to this file instead of discarding them." type:"path"`
}

// Run builds the session and launches the terminal form.
func (f *FormCmd) Run(g *Globals) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return setup(fmt.Errorf("form: requires a terminal (TTY)"))
	}

	cfg, err := loadConfig(g)
	if err != nil {
		return setup(fmt.Errorf("form: %w", err))
	}

	// Logs would draw over the form, so they go to a file or nowhere.
	logOut := io.Discard
	if f.LogFile != "" {
		lf, err := os.OpenFile(f.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return setup(fmt.Errorf("form: opening log file: %w", err))
		}
		defer func() { _ = lf.Close() }()
		logOut = lf
	}
	logger, err := newLogger(cfg, logOut)
	if err != nil {
		return setup(fmt.Errorf("form: %w", err))
	}

	s := f.newSession(cfg, logger)
	ctx, stop := signalContext()
	defer stop()
	if err := tui.Run(ctx, s, tui.RunOptions{AltScreen: true}); err != nil {
		if errors.Is(err, tui.ErrNotTerminal) {
			return setup(fmt.Errorf("form: %w", err))
		}
		return fmt.Errorf("form: %w", err)
	}
	return nil
}

// newSession wires the exporter and display size from cfg and flags.
func (f *FormCmd) newSession(cfg *config.Config, logger *slog.Logger) *session.Session {
	dir := cfg.Export.OutDir
	if f.OutDir != "" {
		dir = f.OutDir
	}
	exp := export.New(export.NewFileSaver(dir),
		export.WithFileName(cfg.Export.FileName),
		export.WithSize(cfg.Export.Size),
		export.WithLogger(logger),
	)
	size := cfg.Display.Size
	if f.Large {
		size = qr.LargeDisplaySize
	}
	return session.New(exp, qr.WithDisplaySize(size))
}

// --- Encode command ---

// EncodeCmd prints the payload for a contact given as flags.
type EncodeCmd struct {
	Title         string `help:"Honorific (Mr., Ms., Mrs., Dr., Prof.)."`
	FirstName     string `help:"First name." required:""`
	LastName      string `help:"Last name." required:""`
	PersonalEmail string `help:"Personal email address."`
	PersonalPhone string `help:"Personal phone number."`
	Position      string `help:"Job title."`
	Company       string `help:"Company name."`
	WorkEmail     string `help:"Work email address."`
	WorkPhone     string `help:"Work phone number."`
	Website       string `help:"Website URL."`
	LinkedIn      string `name:"linkedin" help:"LinkedIn username."`
	Instagram     string `help:"Instagram username."`
	Facebook      string `help:"Facebook username."`
	PNG           string `name:"png" help:"Also save the QR code as a PNG to this path." type:"path"`
	Size          int    `help:"PNG side length in pixels (default from config)."`
}

// Run executes the encode command.
func (e *EncodeCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return setup(fmt.Errorf("encode: %w", err))
	}
	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return setup(fmt.Errorf("encode: %w", err))
	}
	if e.Size <= 0 {
		e.Size = cfg.Export.Size
	}
	ctx, stop := signalContext()
	defer stop()
	return e.run(ctx, os.Stdout, os.Stderr, logger)
}

// record collects the flag values into a contact record.
func (e *EncodeCmd) record() contact.Record {
	return contact.Record{
		Title:         e.Title,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		PersonalEmail: e.PersonalEmail,
		PersonalPhone: e.PersonalPhone,
		Position:      e.Position,
		Company:       e.Company,
		WorkEmail:     e.WorkEmail,
		WorkPhone:     e.WorkPhone,
		Website:       e.Website,
		LinkedIn:      e.LinkedIn,
		Instagram:     e.Instagram,
		Facebook:      e.Facebook,
	}
}

// run writes the payload to out and, with --png, saves the artifact,
// reporting the saved path on status.
func (e *EncodeCmd) run(ctx context.Context, out, status io.Writer, logger *slog.Logger) error {
	rec := e.record()
	if errs := contact.Validate(rec); errs != nil {
		return setup(fmt.Errorf("encode: %w", errs))
	}

	payload := contact.Encode(rec)
	_, _ = fmt.Fprintln(out, payload)

	if e.PNG == "" {
		return nil
	}
	rendering, err := qr.Render(payload)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	exp := export.New(export.NewFileSaver(filepath.Dir(e.PNG)),
		export.WithFileName(filepath.Base(e.PNG)),
		export.WithSize(e.Size),
		export.WithLogger(logger),
	)
	if err := exp.TryExport(ctx, rendering); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	_, _ = fmt.Fprintf(status, "Saved %s\n", e.PNG)
	return nil
}

// --- Serve command ---

// ServeCmd serves the browser form.
type ServeCmd struct {
	Addr      string `help:"Listen address (default from config)."`
	AssetsDir string `help:"Directory whose templates/ and static/ override the embedded assets." type:"path"`
	Large     bool   `help:"Show the larger QR preview."`
}

// Run executes the serve command until interrupted.
func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return setup(fmt.Errorf("serve: %w", err))
	}
	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return setup(fmt.Errorf("serve: %w", err))
	}

	srv, err := c.newServer(cfg, logger)
	if err != nil {
		return setup(fmt.Errorf("serve: %w", err))
	}

	addr := cfg.Server.Addr
	if c.Addr != "" {
		addr = c.Addr
	}
	ctx, stop := signalContext()
	defer stop()
	if err := srv.ListenAndServe(ctx, addr, cfg.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// newServer builds the web server from cfg, overlaying AssetsDir on the
// embedded assets when given.
func (c *ServeCmd) newServer(cfg *config.Config, logger *slog.Logger) (*web.Server, error) {
	templates, static := qrcard.Templates, qrcard.Static
	if c.AssetsDir != "" {
		templates = qrcard.OverlayFS(filepath.Join(c.AssetsDir, "templates"), qrcard.Templates)
		static = qrcard.OverlayFS(filepath.Join(c.AssetsDir, "static"), qrcard.Static)
	}

	size := cfg.Display.Size
	if c.Large {
		size = qr.LargeDisplaySize
	}
	return web.NewServer(templates, static, web.DefaultAssets(),
		web.WithLogger(logger),
		web.WithRenderOptions(qr.WithDisplaySize(size)),
		web.WithExportOptions(
			export.WithFileName(cfg.Export.FileName),
			export.WithSize(cfg.Export.Size),
		),
	)
}

// Exit codes.
const (
	exitSuccess = 0
	exitRuntime = 1
	exitSetup   = 2
)

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *setupError
	if errors.As(err, &se) {
		return exitSetup
	}
	return exitRuntime
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, kong.Vars{"version": version + " " + commit + " " + date})
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
