package table

// Element is a row as it was committed in the last frame.
type Element struct {
	Index    int
	Allotted int // lines the windowing engine gave the row
	Content  int // lines the row's content actually needs
}

// ClientExtent is the visible, possibly clipped, height of the row box.
func (e Element) ClientExtent() int { return e.Allotted }

// ScrollExtent is the full height of the row content, never less than the
// box itself.
func (e Element) ScrollExtent() int {
	if e.Content > e.Allotted {
		return e.Content
	}
	return e.Allotted
}

// Locator resolves a row index to its committed element.
type Locator interface {
	Lookup(index int) (Element, bool)
}

// Reporter receives corrected heights.
type Reporter interface {
	ReportMeasurement(index, measured int) bool
}

// RowMeasure measures one committed row after layout and reports when the row
// needs more lines than it was allotted.
type RowMeasure struct {
	index    int
	variable bool
	margin   int
}

// NewRowMeasure returns the measurement of the row at index. margin is added to the
// measured height before it is reported.
func NewRowMeasure(index int, variable bool, margin int) RowMeasure {
	if margin < 0 {
		margin = 0
	}
	return RowMeasure{index: index, variable: variable, margin: margin}
}

// Run measures the row and reports whether the reporter's cache changed.
// A row that is no longer mounted is skipped: it was scrolled away or
// replaced between the commit and this call.
func (p RowMeasure) Run(loc Locator, r Reporter) bool {
	if !p.variable && p.index != 0 {
		return false
	}
	el, ok := loc.Lookup(p.index)
	if !ok {
		return false
	}
	if el.ScrollExtent() <= el.ClientExtent() {
		return false
	}
	return r.ReportMeasurement(p.index, el.ScrollExtent()+p.margin)
}
