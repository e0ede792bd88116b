package app

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/miosa/window-table/config"
	"github.com/miosa/window-table/source"
	"github.com/miosa/window-table/ui/table"
)

const (
	minColumnWidth = 4
	maxColumnWidth = 48

	// sampleRows bounds how many rows are scanned to size a column.
	sampleRows = 200
)

// BuildColumns derives table columns from a dataset. Widths follow the
// widest title or cell line in the first rows, clamped, and act as flex
// weights once the table knows its own width.
func BuildColumns(ds source.Dataset, cfg config.Config) []table.Column {
	caser := cases.Title(language.English)
	cols := make([]table.Column, 0, len(ds.Columns))
	for _, k := range ds.Columns {
		col := table.Column{
			Key:   k,
			Title: columnTitle(caser, k),
		}
		if w, ok := cfg.ColumnWidths[k]; ok && w > 0 {
			col.Width = w
		} else {
			col.Width = contentWidth(col.Title, k, ds.Rows)
		}
		if cfg.IsMarkdown(k) {
			col.Component = table.MarkdownCell(cfg.MarkdownStyle)
		}
		cols = append(cols, col)
	}
	return cols
}

var titleReplacer = strings.NewReplacer("_", " ", "-", " ", ".", " ")

func columnTitle(caser cases.Caser, k string) string {
	return caser.String(titleReplacer.Replace(k))
}

func contentWidth(title, k string, rows []map[string]any) int {
	w := runewidth.StringWidth(title)
	for i, row := range rows {
		if i == sampleRows {
			break
		}
		for _, line := range strings.Split(table.CellValue(row, k), "\n") {
			if lw := runewidth.StringWidth(line); lw > w {
				w = lw
			}
		}
	}
	// Cell padding.
	w++
	return min(max(w, minColumnWidth), maxColumnWidth)
}

func sameKeys(a, b []table.Column) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Key != b[i].Key {
			return false
		}
	}
	return true
}
