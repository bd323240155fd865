// Package tui implements the terminal contact form: text inputs for every
// contact field, an honorific selector, and a live QR preview.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nepalqubit/contact-qr-generator/internal/contact"
	"github.com/nepalqubit/contact-qr-generator/internal/session"
)

// inputWidth is the visible width of each text input.
const inputWidth = 36

// DownloadDoneMsg reports the end of a background download.
type DownloadDoneMsg struct {
	Saved bool
}

// Model is the Bubble Tea model for the contact form.
type Model struct {
	session *session.Session
	ctx     context.Context

	inputs    []textinput.Model
	keys      []string // field key of each input
	honorific int      // index into contact.Honorifics
	focus     int      // 0 is the title selector, i > 0 is inputs[i-1]

	errs   contact.ValidationErrors
	err    error
	status string

	km       formKeys
	help     help.Model
	quitting bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithContext sets the context background downloads run under.
func WithContext(ctx context.Context) ModelOption {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// NewModel creates a blank form over s with the first name focused.
func NewModel(s *session.Session, opts ...ModelOption) Model {
	m := Model{
		session: s,
		ctx:     context.Background(),
		km:      FormKeyMap(),
		help:    help.New(),
	}
	for _, sec := range contact.Form {
		for _, f := range sec.Fields {
			if f.Key == contact.FieldTitle {
				continue
			}
			ti := textinput.New()
			ti.Prompt = ""
			ti.Placeholder = f.Placeholder
			ti.CharLimit = 256
			ti.Width = inputWidth
			m.inputs = append(m.inputs, ti)
			m.keys = append(m.keys, f.Key)
		}
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.focus = m.indexOf(contact.FieldFirstName)
	m.inputs[m.focus-1].Focus()
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Record returns the form contents as entered.
func (m Model) Record() contact.Record {
	r := contact.Record{Title: contact.Honorifics[m.honorific]}
	for i, k := range m.keys {
		r.Set(k, m.inputs[i].Value())
	}
	return r
}

// Status returns the status line text.
func (m Model) Status() string { return m.status }

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case DownloadDoneMsg:
		if msg.Saved {
			m.status = "Saved " + m.session.FileName()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.km.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.km.Next):
			return m.setFocus(m.focus + 1)
		case key.Matches(msg, m.km.Prev):
			return m.setFocus(m.focus - 1)
		case key.Matches(msg, m.km.Submit):
			return m.submit(), nil
		case key.Matches(msg, m.km.Clear):
			return m.clear()
		case key.Matches(msg, m.km.Download):
			return m.download()
		case m.focus == 0 && key.Matches(msg, m.km.Left):
			m.honorific = (m.honorific + len(contact.Honorifics) - 1) % len(contact.Honorifics)
			return m, nil
		case m.focus == 0 && key.Matches(msg, m.km.Right):
			m.honorific = (m.honorific + 1) % len(contact.Honorifics)
			return m, nil
		}
	}

	if m.focus == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus-1], cmd = m.inputs[m.focus-1].Update(msg)
	return m, cmd
}

// setFocus moves focus to position i, wrapping around the form.
func (m Model) setFocus(i int) (tea.Model, tea.Cmd) {
	n := len(m.inputs) + 1
	m.focus = ((i % n) + n) % n
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == m.focus-1 {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return m, cmd
}

func (m Model) submit() Model {
	errs, err := m.session.Submit(m.Record())
	m.errs, m.err = errs, err
	m.status = ""
	if errs == nil && err == nil {
		m.status = "QR code generated. Press ctrl+s to download."
	}
	return m
}

func (m Model) clear() (tea.Model, tea.Cmd) {
	m.session.Clear()
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.honorific = 0
	m.errs, m.err = nil, nil
	m.status = ""
	return m.setFocus(m.indexOf(contact.FieldFirstName))
}

// download runs the export off the event loop. With nothing displayed it
// does nothing.
func (m Model) download() (tea.Model, tea.Cmd) {
	pending := m.session.Pending()
	if pending == nil {
		return m, nil
	}
	ctx := m.ctx
	return m, func() tea.Msg {
		return DownloadDoneMsg{Saved: pending(ctx)}
	}
}

// indexOf returns the focus position of a field key.
func (m Model) indexOf(field string) int {
	for i, k := range m.keys {
		if k == field {
			return i + 1
		}
	}
	return 0
}

// View renders the form beside the preview, with the status and help bars below.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Contact QR Generator") + "\n")
	b.WriteString(hintStyle.Render("Create a scannable QR code for your contact information") + "\n")
	for _, sec := range contact.Form {
		b.WriteString(headingStyle.Render(sec.Heading) + "\n")
		for _, f := range sec.Fields {
			b.WriteString(m.viewField(f))
		}
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, b.String(), "  ", PreviewBorder().Render(m.viewPreview()))

	var footer strings.Builder
	if m.err != nil {
		footer.WriteString(errorStyle.UnsetPaddingLeft().Render(fmt.Sprintf("Error: %s", m.err)) + "\n")
	}
	if m.status != "" {
		footer.WriteString(statusStyle.Render(m.status) + "\n")
	}
	footer.WriteString(m.help.View(m.km))

	return body + "\n" + footer.String()
}

func (m Model) viewField(f contact.FormField) string {
	idx := 0
	if f.Key != contact.FieldTitle {
		idx = m.indexOf(f.Key)
	}

	marker, style := "  ", labelStyle
	if idx == m.focus {
		marker, style = "> ", focusStyle
	}

	var value string
	if idx == 0 {
		h := contact.Honorifics[m.honorific]
		if h == "" {
			h = "Select"
		}
		value = "‹ " + h + " ›"
	} else {
		value = m.inputs[idx-1].View()
	}

	line := marker + style.Render(f.Label) + value + "\n"
	if msg, ok := m.errs[f.Key]; ok {
		line += errorStyle.Render(msg) + "\n"
	}
	return line
}

func (m Model) viewPreview() string {
	if r := m.session.Rendering(); r != nil {
		return strings.TrimSuffix(r.Terminal(), "\n")
	}
	return hintStyle.Width(28).Render(contact.PreviewPlaceholder)
}
