package table

import (
	"charm.land/lipgloss/v2"
	ltable "charm.land/lipgloss/v2/table"

	"github.com/miosa/window-table/style"
)

// RenderStatic renders every row at once, without windowing or measuring.
// It suits output that is printed rather than scrolled. A width of zero or
// less lets the table size itself to its content.
func RenderStatic(columns []Column, data []Row, width int) string {
	titles := make([]string, len(columns))
	for i, c := range columns {
		titles[i] = c.Title
	}

	header := style.TableHeaderCell.PaddingLeft(1)
	cell := style.TableCell.PaddingLeft(1)
	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(style.TableBorder).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return header
			}
			return cell
		}).
		Headers(titles...)
	if width > 0 {
		t = t.Width(width)
	}

	for i, row := range data {
		cells := make([]string, len(columns))
		for j, col := range columns {
			if col.Component != nil {
				cells[j] = col.Component(CellComponentProps{
					Row:     row,
					Column:  col,
					Index:   i,
					Width:   col.Width,
					SetSize: func() {},
				})
				continue
			}
			cells[j] = CellValue(row, col.Key)
		}
		t.Row(cells...)
	}
	return t.String()
}
