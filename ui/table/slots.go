package table

import (
	"charm.land/lipgloss/v2"

	"github.com/miosa/window-table/ui/window"
)

// ---------------------------------------------------------------------------
// Slot props
// ---------------------------------------------------------------------------

// TableProps is passed to the Table slot.
type TableProps struct {
	Style    lipgloss.Style
	Class    string
	Width    int
	Children string
}

// HeaderProps is passed to the Header slot.
type HeaderProps struct {
	Style    lipgloss.Style
	Class    string
	Children string
}

// HeaderRowProps is passed to the HeaderRow slot.
type HeaderRowProps struct {
	Style lipgloss.Style
	Class string
	Width int
	Cells []string
}

// HeaderCellProps is passed to the HeaderCell slot and to a column's own
// header renderer.
type HeaderCellProps struct {
	Style    lipgloss.Style
	Class    string
	Column   Column
	Width    int
	Children string
}

// BodyProps is passed to the Body slot.
type BodyProps struct {
	Style    lipgloss.Style
	Class    string
	Children string
}

// RowProps is passed to the Row slot. Box is the space the windowing engine
// allotted; rows may render taller and are clipped to it.
type RowProps struct {
	Style lipgloss.Style
	Class string
	Index int
	Row   Row
	Box   window.Style
	Cells []string
}

// CellProps is passed to the Cell slot.
type CellProps struct {
	Style    lipgloss.Style
	Class    string
	Row      Row
	Column   Column
	Index    int
	Width    int
	Children string
}

// ---------------------------------------------------------------------------
// Slots
// ---------------------------------------------------------------------------

// Slots are the render functions the table is assembled from. Any nil slot
// falls back to its default.
type Slots struct {
	Table      func(TableProps) string
	Header     func(HeaderProps) string
	HeaderRow  func(HeaderRowProps) string
	HeaderCell func(HeaderCellProps) string
	Body       func(BodyProps) string
	Row        func(RowProps) string
	Cell       func(CellProps) string
}

// DefaultSlots returns the built-in renderers.
func DefaultSlots() Slots {
	return Slots{
		Table: func(p TableProps) string {
			return p.Style.Render(p.Children)
		},
		Header: func(p HeaderProps) string {
			return p.Style.Render(p.Children)
		},
		HeaderRow: func(p HeaderRowProps) string {
			return p.Style.Render(lipgloss.JoinHorizontal(lipgloss.Top, p.Cells...))
		},
		HeaderCell: func(p HeaderCellProps) string {
			return p.Style.Width(p.Width).Render(p.Children)
		},
		Body: func(p BodyProps) string {
			return p.Style.Render(p.Children)
		},
		Row: func(p RowProps) string {
			return p.Style.Render(lipgloss.JoinHorizontal(lipgloss.Top, p.Cells...))
		},
		Cell: func(p CellProps) string {
			return p.Style.Width(p.Width).Render(p.Children)
		},
	}
}

func (s Slots) withDefaults() Slots {
	d := DefaultSlots()
	if s.Table == nil {
		s.Table = d.Table
	}
	if s.Header == nil {
		s.Header = d.Header
	}
	if s.HeaderRow == nil {
		s.HeaderRow = d.HeaderRow
	}
	if s.HeaderCell == nil {
		s.HeaderCell = d.HeaderCell
	}
	if s.Body == nil {
		s.Body = d.Body
	}
	if s.Row == nil {
		s.Row = d.Row
	}
	if s.Cell == nil {
		s.Cell = d.Cell
	}
	return s
}
