// Package status provides the bottom status bar of the table viewer.
// It renders the data source, the visible row range, and the sizing state.
package status

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/miosa/window-table/style"
)

// Model is the status bar state. Drive it via setter methods; it has no Update loop.
type Model struct {
	source string
	width  int

	first, last, total int

	measured int
	state    string
	variable bool

	hint string
}

// New returns a zero-value Model.
func New() Model {
	return Model{}
}

// SetSource stores the name of the data source.
func (m *Model) SetSource(name string) {
	m.source = name
}

// SetWidth sets the width the bar pads or truncates to.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// SetRange updates the visible rows. last < first means nothing is visible.
func (m *Model) SetRange(first, last, total int) {
	m.first = first
	m.last = last
	m.total = total
}

// SetSizing updates the measured row count and the sizing state name.
func (m *Model) SetSizing(measured int, state string, variable bool) {
	m.measured = measured
	m.state = state
	m.variable = variable
}

// SetHint sets the right-aligned key hint.
func (m *Model) SetHint(h string) {
	m.hint = h
}

// View renders the status line: "source · rows 1–20 of 500 · 12 measured · stable".
func (m Model) View() string {
	var parts []string
	if m.source != "" {
		parts = append(parts, m.source)
	}
	parts = append(parts, m.rangeText())

	mode := "uniform"
	if m.variable {
		mode = "variable"
	}
	parts = append(parts, fmt.Sprintf("%s · %d measured", mode, m.measured))

	left := style.StatusBar.Render(strings.Join(parts, " · "))
	if m.state != "" {
		left += style.StatusBar.Render(" · ") + stateStyle(m.state).Render(m.state)
	}

	if m.hint == "" || m.width <= 0 {
		return left
	}
	right := style.Hint.Render(m.hint)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) rangeText() string {
	if m.total == 0 {
		return "no rows"
	}
	if m.last < m.first {
		return fmt.Sprintf("%d rows", m.total)
	}
	return fmt.Sprintf("rows %d–%d of %d", m.first+1, m.last+1, m.total)
}

func stateStyle(state string) lipgloss.Style {
	switch state {
	case "stable":
		return style.StatusStable
	case "settling":
		return style.StatusPending
	default:
		return style.StatusSettled
	}
}
