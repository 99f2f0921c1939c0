package fsys

import (
	"os"

	"github.com/tinyfs/tfs/bitmap"
	"github.com/tinyfs/tfs/block"
)

// Mount is the process-wide mount context: the superblock and both
// bitmaps loaded into memory once, plus the device they were loaded
// from. Every CORE operation takes a *Mount rather than touching
// package-level state, per spec.md §9's "model as an explicit mount
// context" design note.
type Mount struct {
	Device *block.Device
	SB     RawSuperblock

	InodeBitmap *bitmap.Bitmap
	DataBitmap  *bitmap.Bitmap
}

// MountPath opens path as a diskfile and mounts it, running Mkfs first
// if the file does not yet exist. This is the dispatch glue's `init`
// contract (§4.9).
func MountPath(path string, totalBlocksIfNew uint32) (*Mount, error) {
	totalBlocks := totalBlocksIfNew
	if fi, err := os.Stat(path); os.IsNotExist(err) {
		if err := Mkfs(path, totalBlocksIfNew); err != nil {
			return nil, err
		}
	} else if err == nil {
		totalBlocks = uint32(fi.Size() / block.Size)
	}

	dev, err := block.OpenFile(path, totalBlocks)
	if err != nil {
		return nil, err
	}
	return Mount_(dev)
}

// Mount_ mounts an already-open device: reads the superblock, then
// preloads both bitmap blocks into memory. Named with a trailing
// underscore because the Mount type already takes the name Mount in
// this package.
func Mount_(dev *block.Device) (*Mount, error) {
	sb, err := readSuperblock(dev)
	if err != nil {
		return nil, err
	}

	// The superblock determines the block count: dev.TotalBlocks is
	// replaced by d_start_blk + sb.MaxDnum, whatever block count the
	// device was opened with.
	dev.TotalBlocks = uint32(sb.DStartBlk) + sb.MaxDnum

	ibmRaw, err := dev.ReadBlock(InodeBitmapNum)
	if err != nil {
		return nil, err
	}
	dbmRaw, err := dev.ReadBlock(DataBitmapNum)
	if err != nil {
		return nil, err
	}

	m := &Mount{
		Device:      dev,
		SB:          *sb,
		InodeBitmap: bitmap.FromBytes(ibmRaw, int(sb.MaxInum)),
		DataBitmap:  bitmap.FromBytes(dbmRaw, int(sb.MaxDnum)),
	}
	return m, nil
}

// Destroy releases in-memory buffers and closes the device. The
// bitmaps are already flushed by every mutating operation (write-
// through per §5), so Destroy has nothing left to persist.
func (m *Mount) Destroy() error {
	return m.Device.Close()
}

func (m *Mount) flushInodeBitmap() error {
	return m.Device.WriteBlock(InodeBitmapNum, m.InodeBitmap.Bytes())
}

func (m *Mount) flushDataBitmap() error {
	return m.Device.WriteBlock(DataBitmapNum, m.DataBitmap.Bytes())
}
