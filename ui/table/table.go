// Package table is a windowed table for Bubble Tea whose rows may be taller
// than the height they were first given.
//
// Rows are rendered by the window engine at the height the sizing
// Controller allots them. After every commit the table schedules a
// post-layout pass (a LayoutMsg) that measures each committed row: a row whose
// content needs more lines than it got reports the larger height, the
// controller caches it and resets the engine's offsets from that row on,
// and the table commits again. A pass that changes nothing ends the loop.
//
// The header height follows the same pattern. It is measured when the header
// mounts and again whenever the cached height of row 0 changes.
package table

import (
	"strings"
	"sync/atomic"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/window-table/logger"
	"github.com/miosa/window-table/ui/measurer"
	"github.com/miosa/window-table/ui/window"
)

var lastID atomic.Int64

// SizeRetention decides what happens to measured row heights when the data
// is replaced.
type SizeRetention int

const (
	// RetainSizes keeps heights by index: a new row i starts at the height
	// the old row i settled at.
	RetainSizes SizeRetention = iota
	// ResetSizes drops every measured height.
	ResetSizes
)

func (r SizeRetention) String() string {
	if r == ResetSizes {
		return "reset"
	}
	return "retain"
}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

// LayoutMsg runs the post-layout measurement pass for one commit. It is
// dropped when the table has committed again since.
type LayoutMsg struct {
	Table   int64
	Commit  int
	Indices []int
}

type mountMsg struct{ table int64 }

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

type options struct {
	rowHeight     int
	width         int
	height        int
	overscan      int
	disableHeader bool
	variable      bool
	debounce      time.Duration
	slots         Slots
	className     string
	prefix        string
	rowClass      RowClassFunc
	outer         window.OuterFunc
	onScroll      func(window.ScrollEvent)
	retention     SizeRetention
	margin        int
	scrollbar     bool
	log           logger.Logger
	keys          KeyMap
}

// Option configures a table Model.
type Option func(*options)

// WithRowHeight sets the height of rows that have not been measured.
func WithRowHeight(h int) Option {
	return func(o *options) { o.rowHeight = h }
}

// WithHeight fixes the table height instead of observing it.
func WithHeight(h int) Option {
	return func(o *options) { o.height = h }
}

// WithWidth fixes the table width instead of observing it.
func WithWidth(w int) Option {
	return func(o *options) { o.width = w }
}

// WithOverscan sets how many rows are rendered beyond each viewport edge.
func WithOverscan(n int) Option {
	return func(o *options) { o.overscan = n }
}

// WithDisableHeader hides the header row.
func WithDisableHeader(disable bool) Option {
	return func(o *options) { o.disableHeader = disable }
}

// WithVariableSizeRows sizes every row individually. Without it all rows
// share the height learned for row 0.
func WithVariableSizeRows(variable bool) Option {
	return func(o *options) { o.variable = variable }
}

// WithDebounceWait coalesces observed resizes within d.
func WithDebounceWait(d time.Duration) Option {
	return func(o *options) { o.debounce = d }
}

// WithSlots overrides render slots. Nil slots keep their defaults.
func WithSlots(s Slots) Option {
	return func(o *options) { o.slots = s }
}

// WithClassName adds a class to the table.
func WithClassName(name string) Option {
	return func(o *options) { o.className = name }
}

// WithClassNamePrefix prefixes every class the table assigns.
func WithClassNamePrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithRowClass sets the row class. Rows also get cls-<index>.
func WithRowClass(cls string) Option {
	return func(o *options) { o.rowClass = func(int) string { return cls } }
}

// WithRowClassFunc derives the row class from the row index.
func WithRowClassFunc(fn RowClassFunc) Option {
	return func(o *options) { o.rowClass = fn }
}

// WithOuter wraps the scroll container.
func WithOuter(fn window.OuterFunc) Option {
	return func(o *options) { o.outer = fn }
}

// WithOnScroll observes scrolling of the body.
func WithOnScroll(fn func(window.ScrollEvent)) Option {
	return func(o *options) { o.onScroll = fn }
}

// WithSizeRetention decides whether measured heights survive SetData.
func WithSizeRetention(r SizeRetention) Option {
	return func(o *options) { o.retention = r }
}

// WithMeasureMargin sets the lines added to a measured height.
func WithMeasureMargin(n int) Option {
	return func(o *options) { o.margin = n }
}

// WithScrollbar reserves the rightmost column for a scrollbar.
func WithScrollbar(on bool) Option {
	return func(o *options) { o.scrollbar = on }
}

// WithLogger sets the logger for sizing events.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithKeyMap replaces the scrolling keybindings.
func WithKeyMap(k KeyMap) Option {
	return func(o *options) { o.keys = k }
}

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// Model is a windowed table.
// The zero value is not usable; construct with New.
type Model struct {
	id      int64
	opts    options
	columns []Column
	data    []Row

	ctrl    *Controller
	adapter *Adapter
	header  *HeaderSync
	rc      *renderContext
	dims    measurer.Model

	// requests holds rows whose cell components asked to be measured again.
	requests map[int]struct{}

	mounted    bool
	commit     int
	frame      string
	bodyHeight int
}

// New returns a table over data laid out in columns.
func New(columns []Column, data []Row, opts ...Option) Model {
	o := options{
		rowHeight: 1,
		overscan:  1,
		margin:    1,
		rowClass:  func(int) string { return "table-row" },
		log:       logger.DefaultLogger,
		keys:      DefaultKeyMap(),
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.log == nil {
		o.log = logger.DefaultLogger
	}
	o.slots = o.slots.withDefaults()

	m := Model{
		id:       lastID.Add(1),
		opts:     o,
		columns:  columns,
		data:     data,
		dims:     measurer.New(o.debounce),
		requests: make(map[int]struct{}),
	}

	requests := m.requests
	m.rc = &renderContext{
		slots:       o.slots,
		prefix:      o.prefix,
		className:   o.className,
		rowClass:    o.rowClass,
		requestSize: func(index int) { requests[index] = struct{}{} },
	}
	m.ctrl = NewController(o.rowHeight, o.variable, o.log)
	m.adapter = NewAdapter(m.ctrl, m.rc.row,
		window.WithOverscan(o.overscan),
		window.WithEstimatedItemSize(o.rowHeight),
		window.WithScrollbar(o.scrollbar),
		window.WithScrollbarStyle(scrollbarGlyph),
		window.WithInner(m.rc.body),
		window.WithOuter(o.outer),
		window.WithOnScroll(o.onScroll),
	)

	rc := m.rc
	m.header = NewHeaderSync(func() int { return lipgloss.Height(rc.header()) })
	ctrl, header := m.ctrl, m.header
	ctrl.OnFirstRowChange(func() {
		if header.Primed() {
			header.Sync(ctrl.FirstRowHeight())
		}
	})
	return m
}

// Init mounts the table.
func (m Model) Init() tea.Cmd {
	id := m.id
	return func() tea.Msg { return mountMsg{table: id} }
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.pending() {
		return m.update(msg)
	}
	// A cell changed outside a render and asked for SetSize: render it again
	// so the post-layout pass measures the new content.
	m.opts.log.Debug("cell requested measurement", "rows", len(m.requests))
	cmd := m.layout()
	m, next := m.update(msg)
	return m, tea.Batch(cmd, next)
}

func (m Model) pending() bool {
	return m.mounted && len(m.requests) > 0
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mountMsg:
		if msg.table != m.id {
			return m, nil
		}
		m.mounted = true
		return m, m.layout()

	case LayoutMsg:
		return m, m.measure(msg)

	case tea.WindowSizeMsg:
		if !m.observing() {
			return m, nil
		}
		var cmd tea.Cmd
		m.dims, cmd = m.dims.Update(msg)
		return m, cmd

	case measurer.DimensionsMsg:
		if msg.Observer != m.dims.ID() {
			return m, nil
		}
		m.opts.log.Debug("table resized", "width", msg.Width, "height", msg.Height)
		return m, m.layout()

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case tea.MouseWheelMsg:
		if len(m.data) == 0 {
			return m, nil
		}
		l := m.adapter.List()
		*l, _ = l.Update(msg)
		return m, m.layout()
	}

	var cmd tea.Cmd
	m.dims, cmd = m.dims.Update(msg)
	return m, cmd
}

// View returns the frame of the last commit.
func (m Model) View() string {
	return m.frame
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if len(m.data) == 0 {
		return nil
	}
	l := m.adapter.List()
	switch {
	case key.Matches(msg, m.opts.keys.ScrollUp):
		l.ScrollUp(1)
	case key.Matches(msg, m.opts.keys.ScrollDown):
		l.ScrollDown(1)
	case key.Matches(msg, m.opts.keys.PageUp):
		l.PageUp()
	case key.Matches(msg, m.opts.keys.PageDown):
		l.PageDown()
	case key.Matches(msg, m.opts.keys.HalfPageUp):
		l.HalfPageUp()
	case key.Matches(msg, m.opts.keys.HalfPageDown):
		l.HalfPageDown()
	case key.Matches(msg, m.opts.keys.ScrollTop):
		l.ScrollToTop()
	case key.Matches(msg, m.opts.keys.ScrollBottom):
		l.ScrollToBottom()
	default:
		return nil
	}
	return m.layout()
}

// ---------------------------------------------------------------------------
// Layout
// ---------------------------------------------------------------------------

// observing reports whether the table takes its size from the observer.
func (m Model) observing() bool {
	return m.opts.width <= 0 || m.opts.height <= 0
}

// dimensions returns the table size: explicit values first, then the last
// observation. Both are zero until the first observation arrives.
func (m Model) dimensions() (w, h int) {
	d, _ := m.dims.Dimensions()
	w, h = m.opts.width, m.opts.height
	if w <= 0 {
		w = d.Width
	}
	if h <= 0 {
		h = d.Height
	}
	return w, h
}

// layout commits a new frame and schedules its post-layout pass.
func (m *Model) layout() tea.Cmd {
	if !m.mounted {
		return nil
	}
	tw, th := m.dimensions()

	width := m.opts.width
	if width <= 0 {
		width = max(sumWidths(m.columns), tw)
	}
	rowWidth := width
	if m.opts.scrollbar {
		rowWidth--
	}
	rc := m.rc
	rc.columns = m.columns
	rc.data = m.data
	rc.width = width
	rc.rowWidth = max(rowWidth, 0)
	rc.widths = columnWidths(m.columns, rc.rowWidth)

	var parts []string
	if !m.opts.disableHeader && tw > 0 {
		if !m.header.Primed() {
			m.header.Sync(m.ctrl.FirstRowHeight())
		}
		parts = append(parts, rc.header())
	} else if m.header.Primed() {
		m.header.Unmount()
	}

	m.bodyHeight = m.header.BodyHeight(th)
	if len(m.data) > 0 {
		if body := m.adapter.Commit(len(m.data), width, m.bodyHeight); body != "" {
			parts = append(parts, body)
		}
	} else {
		m.adapter.Unmount()
	}

	m.frame = strings.Join(parts, "\n")
	m.commit++
	return m.afterLayout()
}

func (m *Model) afterLayout() tea.Cmd {
	// Every committed row is measured, so requests are satisfied by this frame.
	// A row that is not committed has nothing to measure.
	clear(m.requests)
	indices := m.adapter.Mounted()
	if len(indices) == 0 {
		return nil
	}
	msg := LayoutMsg{Table: m.id, Commit: m.commit, Indices: indices}
	return func() tea.Msg { return msg }
}

// measure checks every row of one commit and commits again if any row
// changed size.
func (m *Model) measure(msg LayoutMsg) tea.Cmd {
	if msg.Table != m.id || msg.Commit != m.commit {
		return nil
	}
	m.ctrl.BeginPass()
	changed := false
	for _, i := range msg.Indices {
		if NewRowMeasure(i, m.ctrl.Variable(), m.opts.margin).Run(m.adapter, m.ctrl) {
			changed = true
		}
	}
	m.ctrl.EndPass()
	if !changed {
		return nil
	}
	return m.layout()
}

// ---------------------------------------------------------------------------
// Data and configuration
// ---------------------------------------------------------------------------

// SetData replaces the rows.
func (m *Model) SetData(data []Row) tea.Cmd {
	m.data = data
	m.ctrl.DataChanged(m.opts.retention == ResetSizes)
	return m.layout()
}

// SetColumns replaces the columns. The new header is measured again.
func (m *Model) SetColumns(cols []Column) tea.Cmd {
	m.columns = cols
	m.header.Unmount()
	return m.layout()
}

// SetVariableSizeRows switches between per-row and uniform sizing.
func (m *Model) SetVariableSizeRows(variable bool) tea.Cmd {
	m.opts.variable = variable
	m.ctrl.SetVariable(variable)
	return m.layout()
}

// SetRowHeight changes the height of unmeasured rows.
func (m *Model) SetRowHeight(h int) tea.Cmd {
	m.opts.rowHeight = h
	m.ctrl.SetRowHeight(h)
	return m.layout()
}

// RequestMeasure renders the table again and measures the row at index
// once the frame is committed. It is the command form of a cell's SetSize.
func (m *Model) RequestMeasure(index int) tea.Cmd {
	if !m.mounted || index < 0 || index >= len(m.data) {
		return nil
	}
	return m.layout()
}

// Refresh renders the visible rows again. Call it after cell content
// changed outside the table; the rows are measured again after the commit.
func (m *Model) Refresh() tea.Cmd {
	return m.layout()
}

// ScrollToItem scrolls row index into view.
func (m *Model) ScrollToItem(index int, align window.Align) tea.Cmd {
	m.adapter.List().ScrollToItem(index, align)
	return m.layout()
}

// ScrollToTop scrolls to the first row.
func (m *Model) ScrollToTop() tea.Cmd {
	m.adapter.List().ScrollToTop()
	return m.layout()
}

// ScrollToBottom scrolls to the last row.
func (m *Model) ScrollToBottom() tea.Cmd {
	m.adapter.List().ScrollToBottom()
	return m.layout()
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Columns returns the columns.
func (m Model) Columns() []Column { return m.columns }

// Data returns the rows.
func (m Model) Data() []Row { return m.data }

// ItemSize returns the lines allotted to row index.
func (m Model) ItemSize(index int) int { return m.ctrl.ItemSize(index) }

// Controller returns the sizing controller.
func (m Model) Controller() *Controller { return m.ctrl }

// Adapter returns the windowing engine adapter.
func (m Model) Adapter() *Adapter { return m.adapter }

// KeyMap returns the scrolling keybindings.
func (m Model) KeyMap() KeyMap { return m.opts.keys }

// Stats summarizes the table's layout.
type Stats struct {
	Rows         int
	Measured     int
	State        State
	Variable     bool
	First, Last  int // visible rows; Last < First when nothing is visible
	Offset       int
	Width        int
	Height       int
	HeaderHeight int
	BodyHeight   int
	Commits      int
}

// Stats returns the current layout summary.
func (m Model) Stats() Stats {
	w, h := m.dimensions()
	s := Stats{
		Rows:         len(m.data),
		Measured:     m.ctrl.Measured(),
		State:        m.ctrl.State(),
		Variable:     m.ctrl.Variable(),
		First:        0,
		Last:         -1,
		Width:        w,
		Height:       h,
		HeaderHeight: m.header.Height(),
		BodyHeight:   m.bodyHeight,
		Commits:      m.commit,
	}
	if len(m.data) > 0 {
		l := m.adapter.List()
		s.First, s.Last = l.VisibleRange()
		s.Offset = l.Offset()
	}
	return s
}
