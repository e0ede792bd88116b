package table

// SizeCache maps a row index to the tallest height measured for it.
// Entries only grow: Merge keeps the maximum of the stored and the newly
// measured value, so a transient short read during relayout can never
// shrink a row and start a size oscillation.
//
// A SizeCache is owned by a single Controller and is not safe for
// concurrent use.
type SizeCache struct {
	sizes map[int]int
}

// NewSizeCache returns an empty cache.
func NewSizeCache() *SizeCache {
	return &SizeCache{sizes: make(map[int]int)}
}

// Get returns the cached height for index.
func (c *SizeCache) Get(index int) (int, bool) {
	h, ok := c.sizes[index]
	return h, ok
}

// Merge records measured for index and reports whether the stored value
// changed. Non-positive measurements are unsettled reads and are skipped.
func (c *SizeCache) Merge(index, measured int) bool {
	if index < 0 || measured <= 0 {
		return false
	}
	prev, ok := c.sizes[index]
	if ok && prev >= measured {
		return false
	}
	c.sizes[index] = measured
	return true
}

// Len returns the number of measured rows.
func (c *SizeCache) Len() int { return len(c.sizes) }

// Clear drops every entry.
func (c *SizeCache) Clear() {
	c.sizes = make(map[int]int)
}
