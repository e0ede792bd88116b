package table

import (
	"strconv"

	"github.com/miosa/window-table/style"
	"github.com/miosa/window-table/ui/window"
)

// RowClassFunc returns the class of the row at index.
type RowClassFunc func(index int) string

// renderContext is everything a row, cell or header renderer reads. It is
// rebuilt by the table before each commit and handed to the windowing
// engine's render callback; renderers never reach for shared state.
type renderContext struct {
	columns []Column
	data    []Row
	widths  []int // laid out on rowWidth

	width    int // effective table width
	rowWidth int // width minus the scrollbar column

	slots     Slots
	prefix    string
	className string
	rowClass  RowClassFunc

	// requestSize marks a row for re-measurement after the next layout.
	requestSize func(index int)
}

func (rc *renderContext) tableClass() string {
	return rc.prefix + "table " + rc.className
}

func (rc *renderContext) rowClassName(index int) string {
	cls := rc.rowClass(index)
	return rc.prefix + cls + " " + rc.prefix + cls + "-" + strconv.Itoa(index)
}

// row renders the data row at index inside the box the engine allotted.
func (rc *renderContext) row(index int, box window.Style) string {
	if index < 0 || index >= len(rc.data) {
		return ""
	}
	datum := rc.data[index]
	cells := make([]string, len(rc.columns))
	for i, col := range rc.columns {
		w := rc.widths[i]
		var content string
		if col.Component != nil {
			content = col.Component(CellComponentProps{
				Row:     datum,
				Column:  col,
				Index:   index,
				Width:   w,
				SetSize: func() { rc.requestSize(index) },
			})
		} else {
			content = CellValue(datum, col.Key)
		}
		cells[i] = rc.slots.Cell(CellProps{
			Style:    style.TableCell,
			Class:    rc.prefix + "table-cell",
			Row:      datum,
			Column:   col,
			Index:    index,
			Width:    w,
			Children: content,
		})
	}

	rowStyle := style.TableRow
	if index%2 == 1 {
		rowStyle = style.TableRowAlt
	}
	return rc.slots.Row(RowProps{
		Style: rowStyle,
		Class: rc.rowClassName(index),
		Index: index,
		Row:   datum,
		Box:   box,
		Cells: cells,
	})
}

// header renders the header row wrapped in the Table slot.
func (rc *renderContext) header() string {
	cells := make([]string, len(rc.columns))
	for i, col := range rc.columns {
		cell := rc.slots.HeaderCell
		if col.HeaderCell != nil {
			cell = col.HeaderCell
		}
		cells[i] = cell(HeaderCellProps{
			Style:    style.TableHeaderCell,
			Class:    rc.prefix + "table-header-cell",
			Column:   col,
			Width:    rc.widths[i],
			Children: col.Title,
		})
	}
	hrow := rc.slots.HeaderRow(HeaderRowProps{
		Style: style.TableHeaderRow,
		Class: rc.prefix + "table-header-row",
		Width: rc.rowWidth,
		Cells: cells,
	})
	head := rc.slots.Header(HeaderProps{
		Style:    style.TableHeader,
		Class:    rc.prefix + "table-header",
		Children: hrow,
	})
	return rc.slots.Table(TableProps{
		Style:    style.Table,
		Class:    rc.tableClass(),
		Width:    rc.width,
		Children: head,
	})
}

// body wraps the engine's visible rows in the Table and Body slots.
func (rc *renderContext) body(p window.InnerProps) string {
	b := rc.slots.Body(BodyProps{
		Style:    style.TableBody,
		Class:    rc.prefix + "table-body",
		Children: p.Children,
	})
	return rc.slots.Table(TableProps{
		Style:    style.Table,
		Class:    rc.tableClass(),
		Width:    p.Width,
		Children: b,
	})
}

// scrollbarGlyph colors the scrollbar with the active theme.
func scrollbarGlyph(glyph string, thumb bool) string {
	if thumb {
		return style.ScrollbarThumb.Render(glyph)
	}
	return style.ScrollbarTrack.Render(glyph)
}
