// Package block implements the block device adapter: it makes a
// regular host file (or, in tests, an in-memory buffer) look like a
// fixed-size-block stream, the only abstraction the rest of the
// filesystem is allowed to depend on for I/O.
package block

import (
	"fmt"
	"io"
	"os"

	"github.com/xaionaro-go/bytesextra"
)

// Size is the fixed block size for the on-disk layout. The superblock,
// bitmaps, inode table, and every data block are all exactly this many
// bytes.
const Size = 4096

// ID identifies a block by its index from the start of the device.
type ID uint32

// Device is the block-addressable view over a diskfile. The exposed
// fields are informational; never mutate them directly.
type Device struct {
	TotalBlocks uint32
	stream      io.ReadWriteSeeker
	closer      io.Closer
}

// Open wraps an already-open stream as a Device of the given total
// block count. Used both for a real diskfile and for an in-memory
// backing in tests.
func Open(stream io.ReadWriteSeeker, totalBlocks uint32) *Device {
	return &Device{TotalBlocks: totalBlocks, stream: stream}
}

// OpenFile opens path as a block device backed by a regular host file.
// The file must already exist and be mkfs'd; use InitFile to create a
// fresh diskfile of a given size.
func OpenFile(path string, totalBlocks uint32) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	return &Device{TotalBlocks: totalBlocks, stream: f, closer: f}, nil
}

// InitFile creates a new diskfile at path, zero-filled to exactly
// totalBlocks * Size bytes, and returns it opened as a Device.
func InitFile(path string, totalBlocks uint32) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(int64(totalBlocks) * Size); err != nil {
		f.Close()
		return nil, err
	}
	return &Device{TotalBlocks: totalBlocks, stream: f, closer: f}, nil
}

// NewMemDevice creates an in-memory Device over buf, sized in blocks
// by len(buf)/Size. Used by package tests that want a disk image
// without touching the filesystem.
func NewMemDevice(buf []byte, totalBlocks uint32) *Device {
	return &Device{
		TotalBlocks: totalBlocks,
		stream:      bytesextra.NewReadWriteSeeker(buf),
	}
}

// Close releases any underlying OS resources. A no-op for in-memory
// devices.
func (d *Device) Close() error {
	if d.closer != nil {
		return d.closer.Close()
	}
	return nil
}

func (d *Device) checkBounds(id ID) error {
	if uint32(id) >= d.TotalBlocks {
		return fmt.Errorf("block %d out of range [0, %d)", id, d.TotalBlocks)
	}
	return nil
}

func (d *Device) seekToBlock(id ID) error {
	if err := d.checkBounds(id); err != nil {
		return err
	}
	_, err := d.stream.Seek(int64(id)*Size, io.SeekStart)
	return err
}

// ReadBlock reads exactly one Size-byte block.
func (d *Device) ReadBlock(id ID) ([]byte, error) {
	if err := d.seekToBlock(id); err != nil {
		return nil, err
	}
	buf := make([]byte, Size)
	if _, err := io.ReadFull(d.stream, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteBlock writes exactly one Size-byte block. data must be Size
// bytes long.
func (d *Device) WriteBlock(id ID, data []byte) error {
	if len(data) != Size {
		return fmt.Errorf("block write must be exactly %d bytes, got %d", Size, len(data))
	}
	if err := d.seekToBlock(id); err != nil {
		return err
	}
	_, err := d.stream.Write(data)
	return err
}
