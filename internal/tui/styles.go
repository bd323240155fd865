package tui

import "github.com/charmbracelet/lipgloss"

// labelWidth is the column width reserved for field labels.
const labelWidth = 16

var (
	accent = lipgloss.AdaptiveColor{Light: "92", Dark: "135"}
	dim    = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}
	danger = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}
	okay   = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1)
	labelStyle   = lipgloss.NewStyle().Width(labelWidth)
	focusStyle   = lipgloss.NewStyle().Width(labelWidth).Bold(true).Foreground(accent)
	errorStyle   = lipgloss.NewStyle().Foreground(danger).PaddingLeft(labelWidth + 2)
	statusStyle  = lipgloss.NewStyle().Foreground(okay)
	hintStyle    = lipgloss.NewStyle().Foreground(dim)
)

// PreviewBorder returns the accent-colored rounded border around the QR preview.
func PreviewBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
}
