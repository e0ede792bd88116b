package table

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miosa/window-table/ui/window"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var bodyColumns = []Column{{Key: "body", Title: "Body", Width: 10}}

// lines returns n lines of content.
func lines(n int) string {
	return strings.TrimSuffix(strings.Repeat("x\n", n), "\n")
}

// tallRows returns one row per height, each with that many content lines.
func tallRows(heights ...int) []Row {
	rows := make([]Row, len(heights))
	for i, h := range heights {
		rows[i] = Row{"body": lines(h)}
	}
	return rows
}

// namedRows returns n single-line rows "r0", "r1", ...
func namedRows(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{"body": fmt.Sprintf("r%d", i)}
	}
	return rows
}

// settle runs cmd and every command it leads to until the table is idle.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		require.Less(t, i, 100, "layout did not settle")
		m, cmd = m.Update(cmd())
	}
	return m
}

func mount(t *testing.T, m Model) Model {
	t.Helper()
	return settle(t, m, m.Init())
}

func viewLines(m Model) []string {
	return strings.Split(ansi.Strip(m.View()), "\n")
}

// ---------------------------------------------------------------------------
// Sizing through the commit and measure loop
// ---------------------------------------------------------------------------

func TestTable_FixedHeightRowsNeverMerge(t *testing.T) {
	m := New(bodyColumns, tallRows(40, 40, 40, 40, 40, 40),
		WithRowHeight(40), WithVariableSizeRows(true),
		WithWidth(20), WithHeight(100), WithDisableHeader(true))
	spy := &invalidations{}
	m.Controller().OnInvalidate(spy.record)

	m = mount(t, m)

	assert.Empty(t, spy.indices)
	assert.Equal(t, 0, m.Controller().Measured())
	for i := 0; i < 6; i++ {
		assert.Equal(t, 40, m.ItemSize(i))
	}
	assert.Equal(t, StateUninitialized, m.Stats().State)
}

func TestTable_WrappedRowGrows(t *testing.T) {
	m := New(bodyColumns, tallRows(40, 40, 40, 85, 40, 40),
		WithRowHeight(40), WithVariableSizeRows(true),
		WithWidth(20), WithHeight(100), WithDisableHeader(true))
	spy := &invalidations{}
	m.Controller().OnInvalidate(spy.record)

	m = mount(t, m)

	assert.Equal(t, 86, m.ItemSize(3))
	for i := 0; i < 3; i++ {
		assert.Equal(t, 40, m.ItemSize(i))
	}
	assert.Equal(t, []int{3}, spy.indices)
	assert.Equal(t, 3*40+86, m.Adapter().List().ItemOffset(4),
		"offsets after the grown row move")
	assert.Equal(t, []int{0, 1, 2, 3}, m.Adapter().Mounted(),
		"only the visible rows and the overscan row are committed")
	assert.Equal(t, StateStable, m.Stats().State)
}

func TestTable_UniformModeLearnsRowZero(t *testing.T) {
	m := New(bodyColumns, tallRows(59, 85, 85, 85),
		WithRowHeight(40), WithVariableSizeRows(false),
		WithWidth(20), WithHeight(100), WithDisableHeader(true))

	m = mount(t, m)

	assert.Equal(t, 1, m.Controller().Measured())
	for _, i := range []int{0, 1, 2, 3, 500} {
		assert.Equal(t, 60, m.ItemSize(i))
	}
}

func TestTable_MeasureMargin(t *testing.T) {
	m := New(bodyColumns, tallRows(3, 1),
		WithVariableSizeRows(true), WithMeasureMargin(0),
		WithWidth(20), WithHeight(10), WithDisableHeader(true))
	m = mount(t, m)

	assert.Equal(t, 3, m.ItemSize(0))
	assert.Equal(t, 1, m.ItemSize(1))
	got := viewLines(m)
	require.Len(t, got, 10)
	assert.True(t, strings.HasPrefix(got[3], "x"), "row 1 starts right after row 0")
}

func TestTable_ClippedRowShowsFullyAfterSettling(t *testing.T) {
	m := New(bodyColumns, tallRows(1, 3, 1),
		WithVariableSizeRows(true),
		WithWidth(20), WithHeight(8), WithDisableHeader(true))
	m = mount(t, m)

	// Row 1 needs 3 lines and got 3 plus the margin.
	assert.Equal(t, 4, m.ItemSize(1))
	got := viewLines(m)
	for i := 1; i <= 3; i++ {
		assert.True(t, strings.HasPrefix(got[i], "x"), "line %d", i)
	}
	assert.Equal(t, "", strings.TrimSpace(got[4]), "the margin line is blank")
}

// ---------------------------------------------------------------------------
// Header
// ---------------------------------------------------------------------------

func TestTable_HeaderRecomputedOnlyWhenRowZeroChanges(t *testing.T) {
	headerLines := 1
	slots := Slots{HeaderCell: func(p HeaderCellProps) string { return lines(headerLines) }}
	m := New(bodyColumns, tallRows(1, 1, 1, 1),
		WithVariableSizeRows(true), WithSlots(slots),
		WithWidth(20), WithHeight(10))

	m = mount(t, m)
	require.True(t, m.header.Primed())
	assert.Equal(t, 1, m.header.Recomputes(), "measured once at mount")
	assert.Equal(t, 9, m.Stats().BodyHeight)

	// A later row grows; the header is left alone.
	headerLines = 2
	m = settle(t, m, m.SetData(tallRows(1, 1, 5, 1)))
	assert.Equal(t, 6, m.ItemSize(2))
	assert.Equal(t, 1, m.header.Recomputes())
	assert.Equal(t, 1, m.Stats().HeaderHeight)

	// Row 0 grows; the header follows.
	m = settle(t, m, m.SetData(tallRows(3, 1, 5, 1)))
	assert.Equal(t, 4, m.ItemSize(0))
	assert.Equal(t, 2, m.header.Recomputes())
	assert.Equal(t, 2, m.Stats().HeaderHeight)
	assert.Equal(t, 8, m.Stats().BodyHeight)
	assert.Equal(t, 10, lipgloss.Height(m.View()))
}

func TestTable_DisabledHeader(t *testing.T) {
	m := mount(t, New(bodyColumns, namedRows(3),
		WithDisableHeader(true), WithWidth(20), WithHeight(3)))

	assert.False(t, m.header.Primed())
	assert.Equal(t, 0, m.Stats().HeaderHeight)
	got := viewLines(m)
	require.Len(t, got, 3)
	assert.True(t, strings.HasPrefix(got[0], "r0"))
}

func TestTable_HeaderAndBodyFillHeight(t *testing.T) {
	m := mount(t, New(bodyColumns, namedRows(20), WithWidth(20), WithHeight(6)))

	got := viewLines(m)
	require.Len(t, got, 6)
	assert.True(t, strings.HasPrefix(got[0], "Body"))
	assert.True(t, strings.HasPrefix(got[1], "r0"))
	assert.True(t, strings.HasPrefix(got[5], "r4"))
}

// ---------------------------------------------------------------------------
// Degenerate input
// ---------------------------------------------------------------------------

func TestTable_EmptyDataHasNoBody(t *testing.T) {
	m := mount(t, New(bodyColumns, nil, WithWidth(20), WithHeight(5)))

	assert.Empty(t, m.Adapter().Mounted())
	assert.Equal(t, -1, m.Stats().Last)
	got := viewLines(m)
	require.Len(t, got, 1, "only the header is rendered")
	assert.True(t, strings.HasPrefix(got[0], "Body"))
}

func TestTable_ZeroDimensionsUntilObserved(t *testing.T) {
	m := mount(t, New(bodyColumns, namedRows(10)))

	assert.Equal(t, "", m.View())
	s := m.Stats()
	assert.Equal(t, 0, s.Width)
	assert.Equal(t, 0, s.Height)
	assert.Equal(t, StateUninitialized, s.State)

	m, cmd := m.Update(tea.WindowSizeMsg{Width: 30, Height: 4})
	m = settle(t, m, cmd)

	got := viewLines(m)
	require.Len(t, got, 4)
	assert.True(t, strings.HasPrefix(got[0], "Body"))
	assert.True(t, strings.HasPrefix(got[1], "r0"))
}

func TestTable_ExplicitSizeIgnoresWindowSize(t *testing.T) {
	m := mount(t, New(bodyColumns, namedRows(10), WithWidth(20), WithHeight(4)))
	m, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	assert.Nil(t, cmd)
	assert.Equal(t, 4, m.Stats().Height)
}

func TestTable_NothingBeforeMount(t *testing.T) {
	m := New(bodyColumns, namedRows(3), WithWidth(20), WithHeight(3))
	assert.Nil(t, m.SetData(namedRows(4)))
	assert.Equal(t, "", m.View())
}

// ---------------------------------------------------------------------------
// Post-layout hook
// ---------------------------------------------------------------------------

func TestTable_StaleLayoutMsgDropped(t *testing.T) {
	m := mount(t, New(bodyColumns, tallRows(1, 3), WithVariableSizeRows(true),
		WithWidth(20), WithHeight(10), WithDisableHeader(true)))
	before := m.Stats().Commits

	// A hook from an earlier commit, and one for another table.
	m, cmd := m.Update(LayoutMsg{Table: m.id, Commit: before - 1, Indices: []int{0, 1}})
	assert.Nil(t, cmd)
	m, cmd = m.Update(LayoutMsg{Table: m.id + 1000, Commit: before, Indices: []int{0}})
	assert.Nil(t, cmd)
	assert.Equal(t, before, m.Stats().Commits)
}

func TestTable_UnmountedRowSkipped(t *testing.T) {
	m := mount(t, New(bodyColumns, namedRows(50), WithVariableSizeRows(true),
		WithWidth(20), WithHeight(3), WithDisableHeader(true)))

	m, cmd := m.Update(LayoutMsg{Table: m.id, Commit: m.Stats().Commits, Indices: []int{40}})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.Controller().Measured())
}

func TestTable_RefreshMeasuresChangedCells(t *testing.T) {
	height := map[int]int{}
	cols := []Column{{
		Key: "body", Title: "Body", Width: 10,
		Component: func(p CellComponentProps) string {
			return lines(max(height[p.Index], 1))
		},
	}}
	m := mount(t, New(cols, namedRows(5), WithVariableSizeRows(true),
		WithWidth(20), WithHeight(10), WithDisableHeader(true)))
	require.Equal(t, 1, m.ItemSize(2))

	height[2] = 4
	m = settle(t, m, m.Refresh())
	assert.Equal(t, 5, m.ItemSize(2))
}

// unrelatedMsg is a message the table does not handle.
type unrelatedMsg struct{}

// growingCell returns columns whose body height is read from height, and
// captures the SetSize callback of row 1.
func growingCell(height map[int]int, setSize *func()) []Column {
	return []Column{{
		Key: "body", Title: "Body", Width: 10,
		Component: func(p CellComponentProps) string {
			if p.Index == 1 {
				*setSize = p.SetSize
			}
			return lines(max(height[p.Index], 1))
		},
	}}
}

func TestTable_SetSizeOutsideRenderMeasuresOnNextUpdate(t *testing.T) {
	height := map[int]int{}
	var setSize func()
	m := mount(t, New(growingCell(height, &setSize), namedRows(5),
		WithVariableSizeRows(true), WithMeasureMargin(0),
		WithWidth(20), WithHeight(10), WithDisableHeader(true)))
	require.NotNil(t, setSize)
	require.Equal(t, 1, m.ItemSize(1))

	height[1] = 4
	setSize()
	assert.Equal(t, 1, m.ItemSize(1), "nothing is measured before the table updates")

	m, cmd := m.Update(unrelatedMsg{})
	require.NotNil(t, cmd)
	m = settle(t, m, cmd)
	assert.Equal(t, 4, m.ItemSize(1))
	assert.Equal(t, 5, m.Adapter().List().ItemOffset(2), "row 2 moves below the grown row")
}

func TestTable_SetSizeDuringRenderDoesNotLoop(t *testing.T) {
	renders := 0
	cols := []Column{{
		Key: "body", Title: "Body", Width: 10,
		Component: func(p CellComponentProps) string {
			if p.Index == 1 {
				renders++
				p.SetSize()
			}
			return "c"
		},
	}}
	m := mount(t, New(cols, namedRows(3), WithVariableSizeRows(true),
		WithWidth(20), WithHeight(5), WithDisableHeader(true)))
	require.Equal(t, 1, renders)

	_, cmd := m.Update(unrelatedMsg{})
	assert.Nil(t, cmd, "the row was measured with the frame that asked")
	assert.Equal(t, 1, renders)
}

func TestTable_RequestMeasure(t *testing.T) {
	height := map[int]int{}
	var setSize func()
	build := func() Model {
		return New(growingCell(height, &setSize), namedRows(5),
			WithVariableSizeRows(true), WithMeasureMargin(0),
			WithWidth(20), WithHeight(10), WithDisableHeader(true))
	}

	unmounted := build()
	assert.Nil(t, unmounted.RequestMeasure(0), "nothing to measure before mount")

	m := mount(t, build())
	assert.Nil(t, m.RequestMeasure(-1))
	assert.Nil(t, m.RequestMeasure(5))

	height[2] = 3
	cmd := m.RequestMeasure(2)
	require.NotNil(t, cmd)
	m = settle(t, m, cmd)
	assert.Equal(t, 3, m.ItemSize(2))
}

// ---------------------------------------------------------------------------
// Data and configuration changes
// ---------------------------------------------------------------------------

func TestTable_SizeRetention(t *testing.T) {
	build := func(r SizeRetention) Model {
		return New(bodyColumns, tallRows(1, 1, 4, 1),
			WithVariableSizeRows(true), WithSizeRetention(r),
			WithWidth(20), WithHeight(20), WithDisableHeader(true))
	}

	t.Run("retain", func(t *testing.T) {
		m := mount(t, build(RetainSizes))
		require.Equal(t, 5, m.ItemSize(2))
		m = settle(t, m, m.SetData(tallRows(1, 1, 1, 1)))
		assert.Equal(t, 5, m.ItemSize(2), "heights survive by index")
	})

	t.Run("reset", func(t *testing.T) {
		m := mount(t, build(ResetSizes))
		require.Equal(t, 5, m.ItemSize(2))
		m = settle(t, m, m.SetData(tallRows(1, 1, 1, 1)))
		assert.Equal(t, 1, m.ItemSize(2))
		assert.Equal(t, 0, m.Controller().Measured())
	})
}

func TestTable_ToggleVariableRows(t *testing.T) {
	m := mount(t, New(bodyColumns, tallRows(1, 3, 1),
		WithVariableSizeRows(false),
		WithWidth(20), WithHeight(10), WithDisableHeader(true)))
	require.Equal(t, 1, m.ItemSize(1))

	m = settle(t, m, m.SetVariableSizeRows(true))
	assert.True(t, m.Stats().Variable)
	assert.Equal(t, 4, m.ItemSize(1))
}

func TestTable_ConfigChangeKeepsTopRow(t *testing.T) {
	tall := make([]int, 100)
	for i := range tall {
		tall[i] = 3
	}
	tests := []struct {
		name     string
		variable bool
		change   func(m *Model) tea.Cmd
	}{
		{"row height", true, func(m *Model) tea.Cmd { return m.SetRowHeight(2) }},
		{"uniform to variable", false, func(m *Model) tea.Cmd { return m.SetVariableSizeRows(true) }},
		{"variable to uniform", true, func(m *Model) tea.Cmd { return m.SetVariableSizeRows(false) }},
		{"data with reset sizes", true, func(m *Model) tea.Cmd { return m.SetData(tallRows(tall...)) }},
		{"refresh", true, func(m *Model) tea.Cmd { return m.Refresh() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mount(t, New(bodyColumns, tallRows(tall...),
				WithVariableSizeRows(tt.variable), WithSizeRetention(ResetSizes),
				WithMeasureMargin(0), WithWidth(20), WithHeight(10), WithDisableHeader(true)))
			m = settle(t, m, m.ScrollToItem(50, window.AlignStart))
			require.Equal(t, 50, m.Stats().First)

			m = settle(t, m, tt.change(&m))
			assert.Equal(t, 50, m.Stats().First)
			assert.Equal(t, m.Adapter().List().ItemOffset(50), m.Stats().Offset)
		})
	}
}

func TestTable_PageDownThenRowHeightKeepsTopRow(t *testing.T) {
	tall := make([]int, 100)
	for i := range tall {
		tall[i] = 3
	}
	m := mount(t, New(bodyColumns, tallRows(tall...), WithVariableSizeRows(true),
		WithMeasureMargin(0), WithWidth(20), WithHeight(10), WithDisableHeader(true)))
	for range 15 {
		var cmd tea.Cmd
		m, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyPgDown})
		m = settle(t, m, cmd)
	}
	first := m.Stats().First
	require.Positive(t, first)

	m = settle(t, m, m.SetRowHeight(2))
	assert.Equal(t, first, m.Stats().First)
}

func TestTable_SetColumnsRemountsHeader(t *testing.T) {
	m := mount(t, New(bodyColumns, namedRows(3), WithWidth(20), WithHeight(5)))
	require.Equal(t, 1, m.header.Recomputes())

	m = settle(t, m, m.SetColumns([]Column{{Key: "body", Title: "Line", Width: 5}}))
	assert.Equal(t, 2, m.header.Recomputes())
	assert.True(t, strings.HasPrefix(viewLines(m)[0], "Line"))
}

// ---------------------------------------------------------------------------
// Scrolling
// ---------------------------------------------------------------------------

func TestTable_KeyboardScroll(t *testing.T) {
	m := mount(t, New(bodyColumns, namedRows(20),
		WithWidth(20), WithHeight(5), WithDisableHeader(true)))

	m, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m = settle(t, m, cmd)
	assert.Equal(t, 1, m.Stats().Offset)
	assert.True(t, strings.HasPrefix(viewLines(m)[0], "r1"))

	m, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEnd})
	m = settle(t, m, cmd)
	assert.Equal(t, 19, m.Stats().Last)

	m, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyHome})
	m = settle(t, m, cmd)
	assert.Equal(t, 0, m.Stats().Offset)

	_, cmd = m.Update(tea.KeyPressMsg{Code: 'z', Text: "z"})
	assert.Nil(t, cmd, "unbound keys are ignored")
}

func TestTable_MouseWheel(t *testing.T) {
	m := mount(t, New(bodyColumns, namedRows(20),
		WithWidth(20), WithHeight(5), WithDisableHeader(true)))
	m, cmd := m.Update(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	m = settle(t, m, cmd)
	assert.Equal(t, 3, m.Stats().Offset)
}

func TestTable_ScrollToItem(t *testing.T) {
	m := mount(t, New(bodyColumns, namedRows(20),
		WithWidth(20), WithHeight(5), WithDisableHeader(true)))
	m = settle(t, m, m.ScrollToItem(10, window.AlignStart))
	assert.Equal(t, 10, m.Stats().First)

	m = settle(t, m, m.ScrollToBottom())
	assert.Equal(t, 15, m.Stats().Offset)
	m = settle(t, m, m.ScrollToTop())
	assert.Equal(t, 0, m.Stats().Offset)
}

func TestTable_OuterAndScrollListener(t *testing.T) {
	var events []window.ScrollEvent
	m := mount(t, New(bodyColumns, namedRows(20),
		WithWidth(20), WithHeight(3), WithDisableHeader(true),
		WithOuter(func(p window.OuterProps) string { return "<" + p.Children + ">" }),
		WithOnScroll(func(e window.ScrollEvent) { events = append(events, e) }),
	))
	got := ansi.Strip(m.View())
	assert.True(t, strings.HasPrefix(got, "<r0"))
	assert.True(t, strings.HasSuffix(got, ">"))

	m = settle(t, m, m.ScrollToItem(5, window.AlignStart))
	require.Len(t, events, 1)
	assert.Equal(t, window.Forward, events[0].Direction)
	assert.False(t, events[0].UserInput)
}

// ---------------------------------------------------------------------------
// Slots
// ---------------------------------------------------------------------------

func TestTable_RowClasses(t *testing.T) {
	var classes []string
	slots := Slots{Row: func(p RowProps) string {
		classes = append(classes, p.Class)
		return strings.Join(p.Cells, "")
	}}

	mount(t, New(bodyColumns, namedRows(2), WithSlots(slots),
		WithWidth(20), WithHeight(2), WithDisableHeader(true)))
	assert.Contains(t, classes, "table-row table-row-1")

	classes = nil
	mount(t, New(bodyColumns, namedRows(2), WithSlots(slots),
		WithClassNamePrefix("wt-"),
		WithRowClassFunc(func(i int) string {
			if i%2 == 0 {
				return "even"
			}
			return "odd"
		}),
		WithWidth(20), WithHeight(2), WithDisableHeader(true)))
	assert.Contains(t, classes, "wt-even wt-even-0")
	assert.Contains(t, classes, "wt-odd wt-odd-1")
}

func TestTable_SlotClassesAndWidths(t *testing.T) {
	var tables, cells []string
	var cellWidths []int
	slots := Slots{
		Table: func(p TableProps) string {
			tables = append(tables, p.Class)
			return p.Children
		},
		Cell: func(p CellProps) string {
			cells = append(cells, p.Class)
			cellWidths = append(cellWidths, p.Width)
			return p.Children
		},
	}
	cols := []Column{{Key: "a", Title: "A", Width: 1}, {Key: "b", Title: "B", Width: 3}}
	mount(t, New(cols, []Row{{"a": "1", "b": "2"}}, WithSlots(slots),
		WithClassName("people"), WithScrollbar(true),
		WithWidth(41), WithHeight(3)))

	assert.Contains(t, tables, "table people")
	assert.Contains(t, cells, "table-cell")
	// 41 cells minus the scrollbar column, shared 1:3.
	assert.Equal(t, []int{10, 30}, cellWidths[:2])
}

func TestTable_WidthDefaultsToColumnSum(t *testing.T) {
	cols := []Column{{Key: "a", Title: "A", Width: 30}, {Key: "b", Title: "B", Width: 30}}
	m, _ := New(cols, namedRows(2)).Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	m = mount(t, m)

	assert.Equal(t, 60, m.rc.width, "the table never gets narrower than its columns")
}
