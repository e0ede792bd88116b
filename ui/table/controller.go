package table

import (
	"github.com/miosa/window-table/logger"
)

// State is the settling state of a Controller.
type State int

const (
	StateUninitialized State = iota // no row measured yet
	StateSettling                   // measurements are still changing sizes
	StateStable                     // the last full pass changed nothing
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateSettling:
		return "settling"
	case StateStable:
		return "stable"
	default:
		return "unknown"
	}
}

// Controller decides the height allotted to every row and reconciles it
// with what rows report after layout.
//
// Invariant: a measurement that leaves the cache unchanged never notifies
// anyone. Invalidating on a no-op would re-render the row, re-measure the
// same height and loop forever.
type Controller struct {
	cache     *SizeCache
	rowHeight int
	variable  bool

	state       State
	passChanged bool

	invalidate []func(index int)
	firstRow   []func()

	log logger.Logger
}

// NewController returns a controller with an empty cache. rowHeight is the
// height of a row that has not been measured; variable selects per-row
// sizing instead of every row sharing the height learned for row 0.
func NewController(rowHeight int, variable bool, log logger.Logger) *Controller {
	if log == nil {
		log = logger.DefaultLogger
	}
	return &Controller{
		cache:     NewSizeCache(),
		rowHeight: rowHeight,
		variable:  variable,
		log:       log,
	}
}

// OnInvalidate subscribes fn to size changes. fn receives the first index
// whose layout is stale; every later index is stale too.
func (c *Controller) OnInvalidate(fn func(index int)) {
	c.invalidate = append(c.invalidate, fn)
}

// OnFirstRowChange subscribes fn to changes of the cached height of row 0.
// It runs after the merge, never before.
func (c *Controller) OnFirstRowChange(fn func()) {
	c.firstRow = append(c.firstRow, fn)
}

// ItemSize returns the height allotted to index. It is pure: the windowing
// engine may call it any number of times per frame.
func (c *Controller) ItemSize(index int) int {
	if c.variable {
		if h, ok := c.cache.Get(index); ok {
			return h
		}
	} else if h, ok := c.cache.Get(0); ok {
		return h
	}
	return c.fallback()
}

func (c *Controller) fallback() int {
	if c.rowHeight > 0 {
		return c.rowHeight
	}
	return 1
}

// EstimatedSize is the height expected of a row whose size was never read:
// the learned row 0 height in uniform mode, the default row height otherwise.
func (c *Controller) EstimatedSize() int {
	if !c.variable {
		if h, ok := c.cache.Get(0); ok {
			return h
		}
	}
	return c.fallback()
}

// FirstRowHeight returns the cached height of row 0.
func (c *Controller) FirstRowHeight() (int, bool) {
	return c.cache.Get(0)
}

// ReportMeasurement merges a measured height and reports whether it changed
// the cache. In uniform mode only row 0 is taken into account.
func (c *Controller) ReportMeasurement(index, measured int) bool {
	if !c.variable && index != 0 {
		return false
	}
	if !c.cache.Merge(index, measured) {
		return false
	}
	c.state = StateSettling
	c.passChanged = true
	c.log.Debug("row size changed", "index", index, "height", measured)
	c.notify(index)
	if index == 0 {
		for _, fn := range c.firstRow {
			fn()
		}
	}
	return true
}

func (c *Controller) notify(index int) {
	for _, fn := range c.invalidate {
		fn(index)
	}
}

// BeginPass marks the start of a measurement pass over the rendered window.
func (c *Controller) BeginPass() {
	c.passChanged = false
}

// EndPass closes a pass. A pass that changed nothing settles the controller.
func (c *Controller) EndPass() State {
	if c.state == StateSettling && !c.passChanged {
		c.state = StateStable
		c.log.Debug("row sizes stable", "measured", c.cache.Len())
	}
	return c.state
}

// State returns the current settling state.
func (c *Controller) State() State { return c.state }

// Measured returns the number of rows with a cached height.
func (c *Controller) Measured() int { return c.cache.Len() }

// Variable reports whether rows are sized individually.
func (c *Controller) Variable() bool { return c.variable }

// DataChanged is called when the row sequence is replaced. With reset the
// cache is dropped and every layout invalidated; otherwise heights survive by
// index and only the state goes back to settling.
func (c *Controller) DataChanged(reset bool) {
	if reset {
		hadFirst := c.hasFirst()
		c.cache.Clear()
		c.state = StateUninitialized
		c.log.Debug("row sizes reset")
		c.notify(0)
		if hadFirst {
			for _, fn := range c.firstRow {
				fn()
			}
		}
		return
	}
	if c.state == StateStable {
		c.state = StateSettling
	}
}

func (c *Controller) hasFirst() bool {
	_, ok := c.cache.Get(0)
	return ok
}

// SetVariable switches between per-row and uniform sizing.
func (c *Controller) SetVariable(variable bool) {
	if variable == c.variable {
		return
	}
	c.variable = variable
	if c.state == StateStable {
		c.state = StateSettling
	}
	c.notify(0)
}

// SetRowHeight changes the height of unmeasured rows.
func (c *Controller) SetRowHeight(h int) {
	if h == c.rowHeight {
		return
	}
	c.rowHeight = h
	c.notify(0)
}
