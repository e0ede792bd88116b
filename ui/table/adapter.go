package table

import (
	"slices"

	"charm.land/lipgloss/v2"

	"github.com/miosa/window-table/ui/window"
)

// Adapter connects the sizing controller to the windowing engine. The
// engine asks the controller for item sizes; the controller's invalidations
// reset the engine's offset cache. Every row the engine renders is recorded
// so the post-layout pass can measure it.
type Adapter struct {
	list window.Model
	ctrl *Controller
	row  window.RenderFunc

	mounted map[int]Element
}

// NewAdapter returns an adapter rendering rows with row. opts are passed to
// the engine after the sizing options, so callers may add inner and outer
// wrappers or a scroll listener but cannot replace the sizing.
func NewAdapter(ctrl *Controller, row window.RenderFunc, opts ...window.Option) *Adapter {
	a := &Adapter{ctrl: ctrl, row: row, mounted: make(map[int]Element)}
	opts = append(opts, window.WithItemSize(ctrl.ItemSize), window.WithRender(a.render))
	a.list = window.New(opts...)
	ctrl.OnInvalidate(a.ResetAfterIndex)
	return a
}

func (a *Adapter) render(index int, box window.Style) string {
	out := a.row(index, box)
	a.mounted[index] = Element{
		Index:    index,
		Allotted: box.Height,
		Content:  lipgloss.Height(out),
	}
	return out
}

// Commit lays out count rows in a width x height viewport and renders the
// visible window. The registry is replaced by the rows of this frame.
func (a *Adapter) Commit(count, width, height int) string {
	a.mounted = make(map[int]Element)
	a.list.SetEstimatedItemSize(a.ctrl.EstimatedSize())
	a.list.SetItemCount(count)
	a.list.SetSize(width, height)
	return a.list.View()
}

// Unmount forgets every committed row.
func (a *Adapter) Unmount() {
	a.mounted = make(map[int]Element)
}

// Lookup returns the row at index as committed in the last frame.
func (a *Adapter) Lookup(index int) (Element, bool) {
	el, ok := a.mounted[index]
	return el, ok
}

// Mounted returns the committed row indices in ascending order.
func (a *Adapter) Mounted() []int {
	out := make([]int, 0, len(a.mounted))
	for i := range a.mounted {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// ItemCount returns the number of rows the engine knows about.
func (a *Adapter) ItemCount() int { return a.list.ItemCount() }

// ItemSize returns the lines allotted to index.
func (a *Adapter) ItemSize(index int) int { return a.ctrl.ItemSize(index) }

// ResetAfterIndex drops the engine's cached offsets from index onward.
func (a *Adapter) ResetAfterIndex(index int) { a.list.ResetAfterIndex(index) }

// List exposes the engine for scrolling.
func (a *Adapter) List() *window.Model { return &a.list }
