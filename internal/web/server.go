// Package web serves the browser contact form. Each request is stateless:
// the displayed payload is recomputed from the posted fields.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/nepalqubit/contact-qr-generator/internal/export"
	"github.com/nepalqubit/contact-qr-generator/internal/qr"
)

// Assets holds the presentation values injected into every page.
type Assets struct {
	FontURL     string // Web font stylesheet; empty omits the link
	Title       string
	Description string
	Keywords    string
}

// DefaultAssets returns the stock page metadata and the Poppins font.
func DefaultAssets() Assets {
	return Assets{
		FontURL:     "https://fonts.googleapis.com/css2?family=Poppins:wght@300;400;500;600;700&display=swap",
		Title:       "Contact QR Generator - Create Scannable Contact Cards",
		Description: "Generate QR codes for your contact information. Create professional vCard QR codes that work seamlessly across all devices and QR code readers.",
		Keywords:    "QR code, contact card, vCard, business card, contact information, QR generator",
	}
}

// Server is the browser form HTTP server.
type Server struct {
	router     *mux.Router
	page       *template.Template
	assets     Assets
	logger     *slog.Logger
	renderOpts []qr.Option
	exportOpts []export.Option
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRenderOptions sets the options used for the on-page QR preview.
func WithRenderOptions(opts ...qr.Option) Option {
	return func(s *Server) { s.renderOpts = opts }
}

// WithExportOptions sets the options used for downloads.
func WithExportOptions(opts ...export.Option) Option {
	return func(s *Server) { s.exportOpts = opts }
}

// NewServer parses index.html.tmpl from templates and serves static under
// /static/.
func NewServer(templates, static fs.FS, assets Assets, opts ...Option) (*Server, error) {
	page, err := template.ParseFS(templates, "index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("web: parsing templates: %w", err)
	}

	s := &Server{
		router: mux.NewRouter(),
		page:   page,
		assets: assets,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.Use(s.requestID)
	s.router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if _, err := fmt.Fprintln(w, "OK"); err != nil {
			s.logger.Debug("writing health response", "error", err)
		}
	}).Methods(http.MethodGet)
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/generate", s.handleGenerate).Methods(http.MethodPost)
	s.router.HandleFunc("/download", s.handleDownload).Methods(http.MethodPost)
	s.router.HandleFunc("/clear", s.handleClear).Methods(http.MethodPost)
	s.router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static)))).Methods(http.MethodGet)

	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down,
// waiting up to shutdownTimeout for in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("web: listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln, shutdownTimeout)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("web: serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutting down: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web: serving: %w", err)
	}
	s.logger.Info("stopped")
	return nil
}
