// Package style holds the color palette and the Lip Gloss styles shared by
// every table renderer. Styles are package variables rebuilt by SetTheme, so
// renderers read them at render time rather than caching them.
package style

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors, initialized to dark theme defaults. Updated via SetTheme().
var (
	Primary   color.Color = lipgloss.Color("#7C3AED")
	Secondary color.Color = lipgloss.Color("#06B6D4")
	Success   color.Color = lipgloss.Color("#22C55E")
	Warning   color.Color = lipgloss.Color("#F59E0B")
	Error     color.Color = lipgloss.Color("#EF4444")
	Muted     color.Color = lipgloss.Color("#6B7280")
	Dim       color.Color = lipgloss.Color("#374151")
	Border    color.Color = lipgloss.Color("#4B5563")

	HeaderBgColor color.Color = lipgloss.Color("#1F2937")
	RowAltBgColor color.Color = lipgloss.Color("#111827")
	StatusBgColor color.Color = lipgloss.Color("#1F2937")
)

// Base styles, rebuilt when the theme changes via rebuildStyles().
var (
	Bold      lipgloss.Style
	Faint     lipgloss.Style
	ErrorText lipgloss.Style
	Hint      lipgloss.Style

	// -------------------------------------------------------------------------
	// Table
	// -------------------------------------------------------------------------

	Table           lipgloss.Style
	TableHeader     lipgloss.Style
	TableHeaderRow  lipgloss.Style
	TableHeaderCell lipgloss.Style
	TableBody       lipgloss.Style
	TableRow        lipgloss.Style
	TableRowAlt     lipgloss.Style
	TableCell       lipgloss.Style
	TableBorder     lipgloss.Style // static (non-windowed) table borders

	ScrollbarTrack lipgloss.Style
	ScrollbarThumb lipgloss.Style

	// -------------------------------------------------------------------------
	// Status bar
	// -------------------------------------------------------------------------

	StatusBar     lipgloss.Style
	StatusStable  lipgloss.Style
	StatusSettled lipgloss.Style
	StatusPending lipgloss.Style
)

func init() {
	rebuildStyles()
}

// SetTheme applies a named theme, updating all color vars and rebuilding styles.
func SetTheme(name string) bool {
	t, ok := Themes[name]
	if !ok {
		return false
	}
	CurrentThemeName = name
	Primary = t.Primary
	Secondary = t.Secondary
	Success = t.Success
	Warning = t.Warning
	Error = t.Error
	Muted = t.Muted
	Dim = t.Dim
	Border = t.Border
	HeaderBgColor = t.HeaderBg
	RowAltBgColor = t.RowAltBg
	StatusBgColor = t.StatusBg
	rebuildStyles()
	return true
}

// IsDark returns whether the current theme is dark.
func IsDark() bool {
	return CurrentThemeName != "light"
}

func rebuildStyles() {
	Bold = lipgloss.NewStyle().Bold(true)
	Faint = lipgloss.NewStyle().Foreground(Muted)
	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)
	Hint = lipgloss.NewStyle().Foreground(Muted).Italic(true)

	Table = lipgloss.NewStyle()
	TableHeader = lipgloss.NewStyle().Background(HeaderBgColor)
	TableHeaderRow = lipgloss.NewStyle()
	TableHeaderCell = lipgloss.NewStyle().Foreground(Primary).Bold(true).PaddingRight(1)
	TableBody = lipgloss.NewStyle()
	TableRow = lipgloss.NewStyle()
	TableRowAlt = lipgloss.NewStyle().Background(RowAltBgColor)
	TableCell = lipgloss.NewStyle().PaddingRight(1)
	TableBorder = lipgloss.NewStyle().Foreground(Border)

	ScrollbarTrack = lipgloss.NewStyle().Foreground(Dim)
	ScrollbarThumb = lipgloss.NewStyle().Foreground(Muted)

	StatusBar = lipgloss.NewStyle().Foreground(Muted).Background(StatusBgColor)
	StatusStable = lipgloss.NewStyle().Foreground(Success)
	StatusSettled = lipgloss.NewStyle().Foreground(Secondary)
	StatusPending = lipgloss.NewStyle().Foreground(Warning)
}
