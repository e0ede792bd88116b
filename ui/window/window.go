// Package window provides a virtualized, variable-size list engine for the
// table body. Callers supply an item count, a size function and a render
// function; View() renders only the items that intersect the viewport plus
// an overscan margin on either side.
//
// Key properties:
//   - Cumulative item offsets are computed lazily from SizeFunc and cached.
//     The cache assumes a size never changes once read; call ResetAfterIndex
//     when it does so that the item and every later offset is recomputed.
//   - Every rendered item is clipped to exactly the lines it was allotted and
//     to the content width.
//   - Offset-based scrolling in lines. The total height is exact up to the
//     last measured item and estimated beyond it.
//   - Optional inner/outer wrappers and a scroll listener let callers
//     decorate the viewport or observe scrolling without touching sizing.
package window

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// ---------------------------------------------------------------------------
// Public types
// ---------------------------------------------------------------------------

// SizeFunc returns the number of lines allotted to the item at index. It may
// be called any number of times and must not have side effects.
type SizeFunc func(index int) int

// Style is the box the engine allots to an item.
type Style struct {
	Top    int // content line of the item's first line
	Height int // allotted lines
	Width  int // content width (viewport width minus the scrollbar column)
}

// RenderFunc renders the item at index. The result may be taller than
// style.Height; the engine clips it.
type RenderFunc func(index int, style Style) string

// InnerProps is passed to an InnerFunc.
type InnerProps struct {
	Children string // the visible rows, already clipped
	Width    int
	Height   int
}

// InnerFunc wraps the visible rows, inside the scroll container.
type InnerFunc func(InnerProps) string

// OuterProps is passed to an OuterFunc.
type OuterProps struct {
	Children    string // inner output, scrollbar included
	Width       int
	Height      int
	Offset      int
	TotalHeight int
}

// OuterFunc replaces the scroll container around the viewport.
type OuterFunc func(OuterProps) string

// Direction of a scroll movement.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// ScrollEvent is delivered to the scroll listener after every offset change.
type ScrollEvent struct {
	Offset    int
	Direction Direction
	UserInput bool // caused by a message forwarded through Update
}

// Align controls where ScrollToItem places the target item.
type Align int

const (
	AlignAuto Align = iota // scroll as little as possible
	AlignStart
	AlignCenter
	AlignEnd
)

const (
	wheelDelta  = 3
	scrollTrack = "│"
	scrollThumb = "┃"
)

// ---------------------------------------------------------------------------
// Options
// ---------------------------------------------------------------------------

// Option is a functional option for New.
type Option func(*Model)

// WithWidth sets the viewport width in cells.
func WithWidth(w int) Option {
	return func(m *Model) { m.width = w }
}

// WithHeight sets the viewport height in lines.
func WithHeight(h int) Option {
	return func(m *Model) { m.height = h }
}

// WithItemCount sets the number of items.
func WithItemCount(n int) Option {
	return func(m *Model) {
		if n >= 0 {
			m.count = n
		}
	}
}

// WithItemSize sets the size function.
func WithItemSize(fn SizeFunc) Option {
	return func(m *Model) { m.size = fn }
}

// WithRender sets the render function.
func WithRender(fn RenderFunc) Option {
	return func(m *Model) { m.render = fn }
}

// WithOverscan sets how many items beyond each edge of the viewport are
// rendered.
func WithOverscan(n int) Option {
	return func(m *Model) {
		if n >= 0 {
			m.overscan = n
		}
	}
}

// WithEstimatedItemSize sets the height assumed for items whose size has not
// been read yet. It only affects the total height estimate.
func WithEstimatedItemSize(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.estimate = n
		}
	}
}

// WithInner sets the wrapper around the visible rows.
func WithInner(fn InnerFunc) Option {
	return func(m *Model) { m.inner = fn }
}

// WithOuter overrides the scroll container.
func WithOuter(fn OuterFunc) Option {
	return func(m *Model) { m.outer = fn }
}

// WithOnScroll registers a listener for offset changes.
func WithOnScroll(fn func(ScrollEvent)) Option {
	return func(m *Model) { m.onScroll = fn }
}

// WithScrollbar reserves the rightmost column for a scrollbar.
func WithScrollbar(on bool) Option {
	return func(m *Model) { m.scrollbar = on }
}

// WithScrollbarStyle decorates each scrollbar cell. thumb reports whether
// the glyph belongs to the thumb.
func WithScrollbarStyle(fn func(glyph string, thumb bool) string) Option {
	return func(m *Model) { m.scrollStyle = fn }
}

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// Model is a virtualized list viewport.
// The zero value is not usable; construct with New.
type Model struct {
	count    int
	width    int
	height   int
	overscan int
	estimate int

	size     SizeFunc
	render   RenderFunc
	inner    InnerFunc
	outer    OuterFunc
	onScroll func(ScrollEvent)

	scrollbar   bool
	scrollStyle func(glyph string, thumb bool) string

	// offset is the content line shown on the first viewport line.
	offset int

	// anchor is the top item and the line within it, saved when a reset
	// reaches it so the next layout keeps the same content on top.
	anchored    bool
	anchorIndex int
	anchorDelta int

	meta *offsets
}

// New constructs a Model with the supplied options.
func New(opts ...Option) Model {
	m := Model{
		overscan: 1,
		estimate: 1,
		meta:     newOffsets(),
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// ---------------------------------------------------------------------------
// Mutations
// ---------------------------------------------------------------------------

// SetSize updates the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.clampScroll()
}

// SetItemCount changes the number of items. Offsets of surviving items are
// kept.
func (m *Model) SetItemCount(n int) {
	if n < 0 {
		n = 0
	}
	if n < m.count {
		m.meta.truncate(n)
	}
	m.count = n
	m.clampScroll()
}

// SetItemSize replaces the size function and drops every cached offset.
func (m *Model) SetItemSize(fn SizeFunc) {
	m.size = fn
	m.meta.reset(0)
}

// SetRender replaces the render function.
func (m *Model) SetRender(fn RenderFunc) {
	m.render = fn
}

// SetOverscan changes the overscan count.
func (m *Model) SetOverscan(n int) {
	if n >= 0 {
		m.overscan = n
	}
}

// SetEstimatedItemSize changes the size assumed for items whose size has
// not been read yet.
func (m *Model) SetEstimatedItemSize(n int) {
	if n > 0 {
		m.estimate = n
	}
}

// ResetAfterIndex discards cached offsets for index and every item after it.
// The next layout reads their sizes again. When the reset reaches the item
// on top of the viewport, that item stays on top: the offset follows it
// instead of the content sliding under a fixed offset.
func (m *Model) ResetAfterIndex(index int) {
	if !m.anchored && m.offset > 0 && m.count > 0 {
		if top := m.findItem(m.offset); index <= top {
			m.anchored = true
			m.anchorIndex = top
			m.anchorDelta = m.offset - m.itemMeta(top).offset
		}
	}
	m.meta.reset(index)
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// ItemCount returns the number of items.
func (m Model) ItemCount() int { return m.count }

// Width returns the viewport width.
func (m Model) Width() int { return m.width }

// Height returns the viewport height.
func (m Model) Height() int { return m.height }

// Offset returns the current scroll offset in lines.
func (m Model) Offset() int { return m.offset }

// ContentWidth is the width given to items: the viewport minus the scrollbar
// column.
func (m Model) ContentWidth() int {
	if m.scrollbar && m.width > 0 {
		return m.width - 1
	}
	return m.width
}

// ItemOffset returns the first content line of the item at index.
func (m Model) ItemOffset(index int) int {
	if index < 0 || index >= m.count {
		return 0
	}
	return m.itemMeta(index).offset
}

// TotalHeight returns the content height: exact for measured items,
// estimated for the rest.
func (m Model) TotalHeight() int {
	if m.count == 0 {
		return 0
	}
	last := m.meta.lastMeasured
	if last > m.count-1 {
		last = m.count - 1
	}
	measured := 0
	if last >= 0 {
		measured = m.meta.end(last)
	}
	return measured + (m.count-last-1)*m.estimate
}

// VisibleRange returns the first and last item intersecting the viewport.
// stop is -1 when nothing is visible.
func (m Model) VisibleRange() (start, stop int) {
	if m.count == 0 || m.height <= 0 {
		return 0, -1
	}
	start = m.findItem(m.offset)
	stop = start
	end := m.offset + m.height
	for stop < m.count-1 {
		if m.itemEnd(stop) >= end {
			break
		}
		stop++
	}
	return start, stop
}

// RenderRange is VisibleRange widened by the overscan count.
func (m Model) RenderRange() (start, stop int) {
	start, stop = m.VisibleRange()
	if stop < 0 {
		return start, stop
	}
	start -= m.overscan
	if start < 0 {
		start = 0
	}
	stop += m.overscan
	if stop > m.count-1 {
		stop = m.count - 1
	}
	return start, stop
}

// ---------------------------------------------------------------------------
// Scroll
// ---------------------------------------------------------------------------

// ScrollTo moves the viewport so that content line offset is at the top.
func (m *Model) ScrollTo(offset int) { m.scrollTo(offset, false) }

// ScrollBy moves the viewport by delta lines.
func (m *Model) ScrollBy(delta int) { m.scrollTo(m.offset+delta, false) }

// ScrollDown scrolls toward later items.
func (m *Model) ScrollDown(lines int) {
	if lines > 0 {
		m.ScrollBy(lines)
	}
}

// ScrollUp scrolls toward earlier items.
func (m *Model) ScrollUp(lines int) {
	if lines > 0 {
		m.ScrollBy(-lines)
	}
}

// PageDown scrolls down by one full viewport height.
func (m *Model) PageDown() { m.ScrollDown(m.height) }

// PageUp scrolls up by one full viewport height.
func (m *Model) PageUp() { m.ScrollUp(m.height) }

// HalfPageDown scrolls down by half the viewport height.
func (m *Model) HalfPageDown() { m.ScrollDown(m.height / 2) }

// HalfPageUp scrolls up by half the viewport height.
func (m *Model) HalfPageUp() { m.ScrollUp(m.height / 2) }

// ScrollToTop positions the viewport at the first item.
func (m *Model) ScrollToTop() { m.scrollTo(0, false) }

// ScrollToBottom positions the viewport so the last item is fully visible.
// It reads every size so the bottom is exact rather than estimated.
func (m *Model) ScrollToBottom() {
	if m.count == 0 {
		return
	}
	m.itemMeta(m.count - 1)
	m.scrollTo(m.maxOffset(), false)
}

// AtBottom reports whether the last line of content is on screen.
func (m Model) AtBottom() bool {
	if m.count == 0 {
		return true
	}
	m.itemMeta(m.count - 1)
	return m.offset >= m.maxOffset()
}

// ScrollToItem scrolls the item at index into view.
func (m *Model) ScrollToItem(index int, align Align) {
	if m.count == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > m.count-1 {
		index = m.count - 1
	}
	it := m.itemMeta(index)
	top := it.offset
	if mo := m.maxOffset(); top > mo {
		top = mo
	}
	bottom := it.offset + it.size - m.height
	if bottom < 0 {
		bottom = 0
	}

	var target int
	switch align {
	case AlignStart:
		target = top
	case AlignEnd:
		target = bottom
	case AlignCenter:
		target = it.offset - (m.height-it.size)/2
	default:
		switch {
		case m.offset >= bottom && m.offset <= top:
			target = m.offset
		case m.offset < bottom:
			target = bottom
		default:
			target = top
		}
	}
	m.scrollTo(target, false)
}

func (m *Model) scrollTo(offset int, user bool) {
	m.anchored = false
	// Read sizes through the target window first so the clamp below works
	// on real heights instead of the estimate.
	m.findItem(offset + m.height)
	if mo := m.maxOffset(); offset > mo {
		offset = mo
	}
	if offset < 0 {
		offset = 0
	}
	if offset == m.offset {
		return
	}
	dir := Forward
	if offset < m.offset {
		dir = Backward
	}
	m.offset = offset
	if m.onScroll != nil {
		m.onScroll(ScrollEvent{Offset: offset, Direction: dir, UserInput: user})
	}
}

func (m Model) maxOffset() int {
	mo := m.TotalHeight() - m.height
	if mo < 0 {
		return 0
	}
	return mo
}

// clampScroll restores the anchor, if any, and keeps the offset in range.
// Restoring the anchor is not a scroll and is not reported.
func (m *Model) clampScroll() {
	if m.anchored {
		m.anchored = false
		if m.anchorIndex < m.count {
			it := m.itemMeta(m.anchorIndex)
			m.offset = it.offset + min(m.anchorDelta, it.size-1)
		}
	}
	// Same as scrollTo: real heights through the viewport, not the estimate.
	m.findItem(m.offset + m.height)
	if mo := m.maxOffset(); m.offset > mo {
		m.offset = mo
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// ---------------------------------------------------------------------------
// Update (bubbletea)
// ---------------------------------------------------------------------------

// Update handles mouse wheel events. Callers forward whichever tea.Msg
// events they want the viewport to respond to.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.MouseWheelMsg); ok {
		switch msg.Button {
		case tea.MouseWheelUp:
			m.scrollTo(m.offset-wheelDelta, true)
		case tea.MouseWheelDown:
			m.scrollTo(m.offset+wheelDelta, true)
		}
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

// View renders the items in RenderRange and returns the viewport lines.
// Overscan items are rendered (so their render callbacks run) but only lines
// inside the viewport are emitted.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 || m.count == 0 || m.render == nil {
		return ""
	}
	cw := m.ContentWidth()
	start, stop := m.RenderRange()

	lines := make([]string, 0, m.height)
	for i := start; i <= stop; i++ {
		it := m.itemMeta(i)
		rendered := m.render(i, Style{Top: it.offset, Height: it.size, Width: cw})
		for k, line := range clipLines(rendered, it.size) {
			y := it.offset + k - m.offset
			if y < 0 || y >= m.height {
				continue
			}
			lines = append(lines, truncate(line, cw))
		}
	}
	for len(lines) < m.height {
		lines = append(lines, "")
	}

	out := strings.Join(lines, "\n")
	if m.inner != nil {
		out = m.inner(InnerProps{Children: out, Width: cw, Height: m.height})
	}
	if m.scrollbar {
		out = m.withScrollbar(out, cw)
	}
	if m.outer != nil {
		out = m.outer(OuterProps{
			Children:    out,
			Width:       m.width,
			Height:      m.height,
			Offset:      m.offset,
			TotalHeight: m.TotalHeight(),
		})
	}
	return out
}

// withScrollbar pads every line to the content width and appends the
// scrollbar column.
func (m Model) withScrollbar(body string, cw int) string {
	lines := strings.Split(body, "\n")
	total := m.TotalHeight()
	thumbStart, thumbLen := 0, 0
	if total > m.height && m.height > 0 {
		thumbLen = m.height * m.height / total
		if thumbLen < 1 {
			thumbLen = 1
		}
		if mo := m.maxOffset(); mo > 0 {
			thumbStart = m.offset * (m.height - thumbLen) / mo
		}
	}
	for y, line := range lines {
		if w := ansi.StringWidth(line); w < cw {
			line += strings.Repeat(" ", cw-w)
		}
		switch {
		case thumbLen == 0:
			line += " "
		case y >= thumbStart && y < thumbStart+thumbLen:
			line += m.scrollGlyph(scrollThumb, true)
		default:
			line += m.scrollGlyph(scrollTrack, false)
		}
		lines[y] = line
	}
	return strings.Join(lines, "\n")
}

func (m Model) scrollGlyph(glyph string, thumb bool) string {
	if m.scrollStyle == nil {
		return glyph
	}
	return m.scrollStyle(glyph, thumb)
}

// ---------------------------------------------------------------------------
// Layout helpers
// ---------------------------------------------------------------------------

// itemMeta returns the cached layout of index, reading sizes up to it first
// when needed.
func (m Model) itemMeta(index int) itemMeta {
	o := m.meta
	if index > o.lastMeasured {
		next := 0
		if o.lastMeasured >= 0 {
			next = o.end(o.lastMeasured)
		}
		for i := o.lastMeasured + 1; i <= index; i++ {
			sz := m.sizeOf(i)
			if i < len(o.items) {
				o.items[i] = itemMeta{offset: next, size: sz}
			} else {
				o.items = append(o.items, itemMeta{offset: next, size: sz})
			}
			next += sz
		}
		o.lastMeasured = index
	}
	return o.items[index]
}

func (m Model) itemEnd(index int) int {
	it := m.itemMeta(index)
	return it.offset + it.size
}

// sizeOf never returns less than one line; a zero-height item could never
// be scrolled to.
func (m Model) sizeOf(index int) int {
	if m.size == nil {
		return m.estimate
	}
	if s := m.size(index); s > 0 {
		return s
	}
	return 1
}

// findItem returns the index of the item covering content line offset.
func (m Model) findItem(offset int) int {
	if m.count == 0 || offset <= 0 {
		return 0
	}
	lm := m.meta.lastMeasured
	if lm >= m.count {
		lm = m.count - 1
	}
	if lm < 0 || m.meta.end(lm) <= offset {
		for i := lm + 1; i < m.count; i++ {
			if m.itemEnd(i) > offset {
				return i
			}
		}
		return m.count - 1
	}
	lo, hi := 0, lm
	for lo < hi {
		mid := (lo + hi) / 2
		if m.meta.end(mid) <= offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// ---------------------------------------------------------------------------
// String helpers
// ---------------------------------------------------------------------------

// clipLines returns exactly n lines of s, cutting or padding as needed.
func clipLines(s string, n int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		return lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}

func truncate(line string, width int) string {
	if ansi.StringWidth(line) <= width {
		return line
	}
	return ansi.Truncate(line, width, "")
}
