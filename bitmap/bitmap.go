// Package bitmap wraps github.com/boljen/go-bitmap so the allocator
// and superblock code can treat a raw on-disk block as a bit-indexed
// free/used map without hand-rolling bit arithmetic.
package bitmap

import (
	"github.com/boljen/go-bitmap"

	"github.com/tinyfs/tfs/block"
)

// Bitmap tracks allocation state for up to Bits entries. The backing
// byte slice is always exactly one block long — per spec.md §3, a
// bitmap "must fit in one block" regardless of how many of its bits
// are actually addressable — so it can be read/written with a single
// block.Device.ReadBlock/WriteBlock call.
type Bitmap struct {
	bm   bitmap.Bitmap
	Bits int
}

// New creates a zeroed, block-sized Bitmap able to address bits
// entries.
func New(bits int) *Bitmap {
	return &Bitmap{bm: bitmap.New(block.Size * 8), Bits: bits}
}

// FromBytes wraps an existing on-disk block (or prefix of one) as a
// Bitmap without copying; mutations write through to buf.
func FromBytes(buf []byte, bits int) *Bitmap {
	return &Bitmap{bm: bitmap.Bitmap(buf), Bits: bits}
}

// Bytes returns the backing storage, suitable for writing straight to
// a block device.
func (b *Bitmap) Bytes() []byte {
	return []byte(b.bm)
}

// Get reports whether bit i is set (allocated).
func (b *Bitmap) Get(i int) bool {
	return b.bm.Get(i)
}

// Set marks bit i allocated or free.
func (b *Bitmap) Set(i int, v bool) {
	b.bm.Set(i, v)
}

// FirstFree scans from 0 and returns the index of the first clear bit,
// or -1 if every bit in [0, Bits) is set.
func (b *Bitmap) FirstFree() int {
	for i := 0; i < b.Bits; i++ {
		if !b.bm.Get(i) {
			return i
		}
	}
	return -1
}
