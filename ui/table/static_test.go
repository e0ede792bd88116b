package table

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestRenderStatic_AllRowsAndTitles(t *testing.T) {
	cols := []Column{
		{Key: "name", Title: "Name", Width: 10},
		{Key: "n", Title: "Count", Width: 5,
			Component: func(p CellComponentProps) string { return "#" + CellValue(p.Row, "n") }},
	}
	data := []Row{{"name": "alpha", "n": 1}, {"name": "beta", "n": 2}, {"name": "gamma", "n": 3}}

	out := ansi.Strip(RenderStatic(cols, data, 0))

	for _, want := range []string{"Name", "Count", "alpha", "beta", "gamma", "#1", "#3"} {
		assert.Contains(t, out, want)
	}
	assert.True(t, strings.HasPrefix(out, "┌"), "bordered table")
}

func TestRenderStatic_Width(t *testing.T) {
	cols := []Column{{Key: "a", Title: "A", Width: 1}}
	out := RenderStatic(cols, []Row{{"a": "x"}}, 30)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 30)
	}
}

func TestMarkdownCell_RendersAndWraps(t *testing.T) {
	cell := MarkdownCell("notty")
	col := Column{Key: "md"}

	narrow := cell(CellComponentProps{
		Row:    Row{"md": "some **bold** words that will need to wrap across several lines"},
		Column: col,
		Width:  20,
	})
	assert.Contains(t, ansi.Strip(narrow), "bold")
	assert.Greater(t, strings.Count(narrow, "\n"), 0, "narrow markdown wraps")

	empty := cell(CellComponentProps{Row: Row{"md": "  "}, Column: col, Width: 20})
	assert.Equal(t, "  ", empty)
}
