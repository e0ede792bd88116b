package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miosa/window-table/config"
	"github.com/miosa/window-table/source"
	"github.com/miosa/window-table/ui/table"
)

func TestBuildColumns(t *testing.T) {
	ds := source.Dataset{
		Columns: []string{"user_name", "bio", "city", "wide", "id"},
		Rows: []map[string]any{
			{"user_name": "ada", "bio": "line\nlonger line here", "city": "東京", "wide": strings.Repeat("x", 100), "id": 1},
		},
	}
	cfg := config.Config{
		MarkdownColumns: []string{"bio"},
		ColumnWidths:    map[string]int{"id": 3},
	}

	cols := BuildColumns(ds, cfg)
	require.Len(t, cols, 5)

	assert.Equal(t, "User Name", cols[0].Title)
	assert.Equal(t, 10, cols[0].Width, "title is wider than the values")
	assert.Nil(t, cols[0].Component)

	assert.Equal(t, 17, cols[1].Width, "widest line of a multi-line value")
	assert.NotNil(t, cols[1].Component)

	assert.Equal(t, 5, cols[2].Width, "wide runes count twice")
	assert.Equal(t, maxColumnWidth, cols[3].Width)
	assert.Equal(t, 3, cols[4].Width, "configured width wins")
}

func TestBuildColumns_MinimumWidth(t *testing.T) {
	cols := BuildColumns(source.Dataset{Columns: []string{"x"}}, config.Config{})
	require.Len(t, cols, 1)
	assert.Equal(t, "X", cols[0].Title)
	assert.Equal(t, minColumnWidth, cols[0].Width)
}

func TestSameKeys(t *testing.T) {
	a := []table.Column{{Key: "a"}, {Key: "b"}}
	assert.True(t, sameKeys(a, []table.Column{{Key: "a", Title: "A"}, {Key: "b"}}))
	assert.False(t, sameKeys(a, []table.Column{{Key: "b"}, {Key: "a"}}))
	assert.False(t, sameKeys(a, a[:1]))
}
