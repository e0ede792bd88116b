package table

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownCell returns a cell component that renders the cell value as
// markdown wrapped to the cell width. Wrapped markdown is what makes rows
// variable height, so tables using it usually want WithVariableSizeRows.
//
// styleName is a glamour standard style ("dark", "light", "notty", ...);
// empty picks one from the terminal background. Renderers are cached per
// width; the component must only be used from the Bubble Tea event loop.
func MarkdownCell(styleName string) CellComponent {
	renderers := make(map[int]*glamour.TermRenderer)
	return func(p CellComponentProps) string {
		src := CellValue(p.Row, p.Column.Key)
		if strings.TrimSpace(src) == "" {
			return src
		}
		r, ok := renderers[p.Width]
		if !ok {
			var err error
			r, err = newMarkdownRenderer(styleName, p.Width)
			if err != nil {
				return src
			}
			renderers[p.Width] = r
		}
		out, err := r.Render(src)
		if err != nil {
			return src
		}
		return strings.Trim(out, "\n")
	}
}

func newMarkdownRenderer(styleName string, width int) (*glamour.TermRenderer, error) {
	styleOpt := glamour.WithAutoStyle()
	if styleName != "" {
		styleOpt = glamour.WithStandardStyle(styleName)
	}
	return glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(width),
	)
}
