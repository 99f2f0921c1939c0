// Package blocktest provides test fixtures for building in-memory
// block devices and freshly mkfs'd mounts without touching the
// filesystem, the same "give the test a valid fixture or abort" shape
// the teacher's own testing package uses for its block cache.
package blocktest

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinyfs/tfs/bitmap"
	"github.com/tinyfs/tfs/block"
	"github.com/tinyfs/tfs/fsys"
)

// RandomImage returns totalBlocks*block.Size bytes of random data,
// failing the test immediately if the source of randomness errors.
func RandomImage(t *testing.T, totalBlocks uint32) []byte {
	buf := make([]byte, uint64(totalBlocks)*block.Size)
	_, err := rand.Read(buf)
	require.NoErrorf(t, err, "failed to fill %d random blocks", totalBlocks)
	return buf
}

// NewDevice returns an in-memory block.Device of totalBlocks blocks,
// backed by random data.
func NewDevice(t *testing.T, totalBlocks uint32) *block.Device {
	return block.NewMemDevice(RandomImage(t, totalBlocks), totalBlocks)
}

// NewZeroDevice returns an in-memory block.Device of totalBlocks
// zeroed blocks — the shape Mkfs expects to format from scratch.
func NewZeroDevice(totalBlocks uint32) *block.Device {
	buf := make([]byte, uint64(totalBlocks)*block.Size)
	return block.NewMemDevice(buf, totalBlocks)
}

// NewBitmap returns an empty bitmap.Bitmap over a fresh block-sized
// buffer, for package tests that exercise the allocator in isolation.
func NewBitmap(bits int) *bitmap.Bitmap {
	return bitmap.New(bits)
}

// NewMount formats and mounts a fresh in-memory diskfile of
// totalBlocks blocks, failing the test on any mkfs or mount error.
// This exercises the same Mkfs/Mount_ path a real diskfile would, just
// over an in-memory buffer instead of an os.File.
func NewMount(t *testing.T, totalBlocks uint32) *fsys.Mount {
	dev := NewZeroDevice(totalBlocks)
	require.NoError(t, fsys.MkfsDevice(dev, totalBlocks))
	mount, err := fsys.Mount_(dev)
	require.NoError(t, err)
	return mount
}
