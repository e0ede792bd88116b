package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaderSync_RecomputesOnlyWhenRowZeroChanges(t *testing.T) {
	height := 2
	h := NewHeaderSync(func() int { return height })

	assert.True(t, h.Sync(0, false), "first sync primes")
	assert.Equal(t, 2, h.Height())

	height = 3
	assert.False(t, h.Sync(0, false), "row 0 unchanged")
	assert.Equal(t, 2, h.Height())

	assert.True(t, h.Sync(5, true))
	assert.Equal(t, 3, h.Height())
	assert.False(t, h.Sync(5, true))
	assert.True(t, h.Sync(6, true))
	assert.Equal(t, 3, h.Recomputes())
}

func TestHeaderSync_BodyHeight(t *testing.T) {
	h := NewHeaderSync(func() int { return 4 })
	assert.Equal(t, 10, h.BodyHeight(10), "unmeasured header takes no space")

	h.Sync(0, false)
	assert.Equal(t, 6, h.BodyHeight(10))
	assert.Equal(t, 0, h.BodyHeight(3))
	assert.Equal(t, 0, h.BodyHeight(0))
}

func TestHeaderSync_Unmount(t *testing.T) {
	calls := 0
	h := NewHeaderSync(func() int { calls++; return 1 })
	h.Sync(3, true)
	h.Unmount()
	assert.False(t, h.Primed())
	assert.Equal(t, 0, h.Height())

	h.Sync(3, true)
	assert.Equal(t, 2, calls, "a remounted header is measured again")
}

func TestHeaderSync_NegativeHeightClamped(t *testing.T) {
	h := NewHeaderSync(func() int { return -1 })
	h.Sync(0, false)
	assert.Equal(t, 0, h.Height())
}
