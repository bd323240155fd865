package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/nepalqubit/contact-qr-generator/internal/contact"
	"github.com/nepalqubit/contact-qr-generator/internal/export"
	"github.com/nepalqubit/contact-qr-generator/internal/qr"
)

// noticeTooLong is shown when the details exceed QR capacity.
const noticeTooLong = "These contact details are too long to fit in a QR code."

// page is the data the index template renders.
type page struct {
	Assets      Assets
	Heading     string
	Notice      string
	Sections    []contact.FormSection
	Honorifics  []string
	Values      map[string]string
	Errors      contact.ValidationErrors
	SVG         template.HTML
	Placeholder string
}

func (s *Server) newPage(r contact.Record) page {
	values := make(map[string]string, len(contact.Fields))
	for _, f := range contact.Fields {
		values[f] = r.Get(f)
	}
	return page{
		Assets:      s.assets,
		Heading:     "Contact QR Generator",
		Sections:    contact.Form,
		Honorifics:  contact.Honorifics,
		Values:      values,
		Placeholder: contact.PreviewPlaceholder,
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, s.newPage(contact.Record{}))
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	rec, err := parseRecord(w, r)
	if err != nil {
		badForm(w, err)
		return
	}

	p := s.newPage(rec)
	if errs := contact.Validate(rec); errs != nil {
		p.Errors = errs
		s.renderPage(w, http.StatusUnprocessableEntity, p)
		return
	}

	rendering, err := qr.Render(contact.Encode(rec), s.renderOpts...)
	if err != nil {
		s.logger.Warn("rendering qr", "request_id", requestIDFrom(r.Context()), "error", err)
		p.Notice = noticeTooLong
		s.renderPage(w, http.StatusUnprocessableEntity, p)
		return
	}

	// The SVG is generated from the module matrix, never from user input.
	p.SVG = template.HTML(rendering.SVG)
	s.renderPage(w, http.StatusOK, p)
}

// handleDownload responds with the PNG. With no valid payload, or when the
// export fails, it answers 204 and the page stays as it is.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	log := s.logger.With("request_id", requestIDFrom(r.Context()))

	rec, err := parseRecord(w, r)
	if err != nil {
		badForm(w, err)
		return
	}
	if errs := contact.Validate(rec); errs != nil {
		log.Debug("download without a payload", "errors", errs.Error())
		w.WriteHeader(http.StatusNoContent)
		return
	}
	rendering, err := qr.Render(contact.Encode(rec), s.renderOpts...)
	if err != nil {
		log.Warn("rendering qr for download", "error", err)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var buf bytes.Buffer
	opts := append([]export.Option{export.WithLogger(log)}, s.exportOpts...)
	exp := export.New(export.NewWriterSaver(&buf), opts...)
	if !exp.Export(r.Context(), rendering) {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exp.FileName()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Debug("writing png", "error", err)
	}
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) renderPage(w http.ResponseWriter, status int, p page) {
	var buf bytes.Buffer
	if err := s.page.ExecuteTemplate(&buf, "index.html.tmpl", p); err != nil {
		s.logger.Error("rendering page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// errFormTooLarge is returned when the posted body exceeds maxFormBytes.
var errFormTooLarge = errors.New("web: form too large")

// maxFormBytes bounds the posted form body.
const maxFormBytes = 64 << 10

// parseRecord reads the contact fields from a posted form.
func parseRecord(w http.ResponseWriter, r *http.Request) (contact.Record, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return contact.Record{}, errFormTooLarge
		}
		return contact.Record{}, fmt.Errorf("web: parsing form: %w", err)
	}
	var rec contact.Record
	for _, f := range contact.Fields {
		rec.Set(f, r.PostForm.Get(f))
	}
	return rec, nil
}

func badForm(w http.ResponseWriter, err error) {
	if errors.Is(err, errFormTooLarge) {
		http.Error(w, "form too large", http.StatusRequestEntityTooLarge)
		return
	}
	http.Error(w, "invalid form", http.StatusBadRequest)
}
