package table

import (
	"fmt"
	"strings"
)

// Row is one record of table data, keyed by column key. The table never
// inspects it beyond looking up column keys.
type Row = map[string]any

// CellComponentProps is passed to a column's custom cell component.
type CellComponentProps struct {
	Row    Row
	Column Column
	Index  int
	Width  int

	// SetSize asks for the row to be rendered and measured again. Called
	// outside a render, the table picks the request up on its next Update;
	// Model.RequestMeasure does the same and returns the command directly.
	SetSize func()
}

// CellComponent renders the content of one cell.
type CellComponent func(CellComponentProps) string

// Column describes one table column.
type Column struct {
	Key   string
	Title string

	// Width is the column's basis and grow factor: columns share the row
	// width in proportion to their widths.
	Width int

	Component  CellComponent
	HeaderCell func(HeaderCellProps) string
}

// CellValue formats the value of key in row for display. Missing and nil
// values render empty.
func CellValue(row Row, key string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return ""
	}
	switch v := v.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case fmt.Stringer:
		return v.String()
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprint(v)
	}
}

func sumWidths(cols []Column) int {
	n := 0
	for _, c := range cols {
		if c.Width > 0 {
			n += c.Width
		}
	}
	return n
}

// columnWidths lays the columns out on total cells. Every column grows or
// shrinks in proportion to its width; leftover cells from rounding go to
// the leftmost columns. A total of zero or less keeps the declared widths.
func columnWidths(cols []Column, total int) []int {
	out := make([]int, len(cols))
	if len(cols) == 0 {
		return out
	}
	sum := sumWidths(cols)
	if total <= 0 {
		for i, c := range cols {
			out[i] = max(c.Width, 1)
		}
		return out
	}

	used := 0
	for i, c := range cols {
		switch {
		case sum == 0:
			out[i] = total / len(cols)
		case c.Width > 0:
			out[i] = total * c.Width / sum
		}
		used += out[i]
	}
	for i := 0; used < total; i = (i + 1) % len(cols) {
		if sum > 0 && cols[i].Width <= 0 {
			continue
		}
		out[i]++
		used++
	}
	for i := range out {
		if out[i] < 1 {
			out[i] = 1
		}
	}
	return out
}
