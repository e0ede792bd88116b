package table

// HeaderSync keeps the header height, and with it the body height, in step
// with the header content. Header cells wrap, so the header is as content
// dependent as any row. It is re-measured only when row 0's cached height
// changes: header and first row are styled in the same pass and settle
// together.
type HeaderSync struct {
	measure func() int

	height int

	primed   bool
	first    int
	hasFirst bool

	recomputes int
}

// NewHeaderSync returns a synchronizer that calls measure to read the
// header's content height.
func NewHeaderSync(measure func() int) *HeaderSync {
	return &HeaderSync{measure: measure}
}

// Sync recomputes the header height when the row 0 height differs from the
// one seen last time, or on the first call. It reports whether it
// recomputed.
func (h *HeaderSync) Sync(first int, ok bool) bool {
	if h.primed && first == h.first && ok == h.hasFirst {
		return false
	}
	h.primed = true
	h.first = first
	h.hasFirst = ok
	h.height = h.measure()
	if h.height < 0 {
		h.height = 0
	}
	h.recomputes++
	return true
}

// Primed reports whether the header has been measured at least once.
func (h *HeaderSync) Primed() bool { return h.primed }

// Height returns the last measured header height.
func (h *HeaderSync) Height() int { return h.height }

// Recomputes returns how many times the header was measured.
func (h *HeaderSync) Recomputes() int { return h.recomputes }

// BodyHeight is the space left for the body in a table of total lines.
func (h *HeaderSync) BodyHeight(total int) int {
	if b := total - h.height; b > 0 {
		return b
	}
	return 0
}

// Unmount forgets the measurement so the next Sync measures again.
func (h *HeaderSync) Unmount() {
	h.primed = false
	h.height = 0
}
