package bitmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tinyfs/tfs/bitmap"
)

func TestNewIsAllClear(t *testing.T) {
	bm := bitmap.New(100)
	for i := 0; i < 100; i++ {
		assert.Falsef(t, bm.Get(i), "bit %d should start clear", i)
	}
}

func TestSetAndGet(t *testing.T) {
	bm := bitmap.New(16)
	bm.Set(3, true)
	assert.True(t, bm.Get(3))
	assert.False(t, bm.Get(4))

	bm.Set(3, false)
	assert.False(t, bm.Get(3))
}

func TestFirstFreeSkipsSetBits(t *testing.T) {
	bm := bitmap.New(8)
	bm.Set(0, true)
	bm.Set(1, true)
	assert.Equal(t, 2, bm.FirstFree())
}

func TestFirstFreeExhausted(t *testing.T) {
	bm := bitmap.New(4)
	for i := 0; i < 4; i++ {
		bm.Set(i, true)
	}
	assert.Equal(t, -1, bm.FirstFree())
}

func TestFromBytesWritesThrough(t *testing.T) {
	buf := make([]byte, 4096)
	bm := bitmap.FromBytes(buf, 32)
	bm.Set(5, true)
	assert.NotZero(t, buf[0])
}
