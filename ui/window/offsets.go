package window

// itemMeta is the cached layout of one item: its first content line and the
// number of lines it was allotted.
type itemMeta struct {
	offset int
	size   int
}

// offsets is the lazily filled cumulative-offset table. Entries
// [0, lastMeasured] are valid; everything after is computed on demand from
// the SizeFunc. It lives behind a pointer so value-receiver methods on Model
// can extend it, the same way the list render cache is a shared map.
type offsets struct {
	items        []itemMeta
	lastMeasured int
}

func newOffsets() *offsets {
	return &offsets{lastMeasured: -1}
}

// reset drops every entry at or after index.
func (o *offsets) reset(index int) {
	if index < 0 {
		index = 0
	}
	if index-1 < o.lastMeasured {
		o.lastMeasured = index - 1
	}
}

// truncate shrinks the table to n items.
func (o *offsets) truncate(n int) {
	if o.lastMeasured >= n {
		o.lastMeasured = n - 1
	}
	if len(o.items) > n {
		o.items = o.items[:n]
	}
}

func (o *offsets) end(index int) int {
	it := o.items[index]
	return it.offset + it.size
}
