package fsys

import (
	"fmt"

	"github.com/tinyfs/tfs/bitmap"
	"github.com/tinyfs/tfs/block"
)

// Mkfs formats a fresh diskfile at path with the given total block
// count. Mirrors rufs.c's rufs_mkfs almost field-for-field.
func Mkfs(path string, totalBlocks uint32) error {
	dev, err := block.InitFile(path, totalBlocks)
	if err != nil {
		return err
	}
	defer dev.Close()
	return MkfsDevice(dev, totalBlocks)
}

// MkfsDevice formats an already-open device: superblock, zeroed
// bitmaps, inode table, and a root directory (inode 0) whose first
// data block holds a single valid "." entry, matching spec.md §4.3.
// Exported so tests can format an in-memory device directly.
func MkfsDevice(dev *block.Device, totalBlocks uint32) error {
	// InodeSize need not divide block.Size evenly; inodeAddress does
	// integer division per block and simply wastes the tail of each
	// inode block, same tradeoff rufs.c's sizeof(inode) packing makes.
	if InodeSize <= 0 || InodeSize > block.Size {
		return fmt.Errorf("inode record size %d does not fit in a %d-byte block", InodeSize, block.Size)
	}

	inodeTableBlocks := uint32((MaxInum + InodesPerBlock() - 1) / InodesPerBlock())
	iStartBlk := uint32(DataBitmapNum) + 1
	dStartBlk := iStartBlk + inodeTableBlocks

	if totalBlocks <= dStartBlk {
		return fmt.Errorf("disk too small: need at least %d blocks for layout, got %d", dStartBlk+1, totalBlocks)
	}

	sb := RawSuperblock{
		Magic:      Magic,
		MaxInum:    MaxInum,
		MaxDnum:    totalBlocks - dStartBlk,
		IBitmapBlk: uint32(InodeBitmapNum),
		DBitmapBlk: uint32(DataBitmapNum),
		IStartBlk:  iStartBlk,
		DStartBlk:  dStartBlk,
	}
	if err := writeSuperblock(dev, &sb); err != nil {
		return err
	}

	inodeBM := bitmap.New(int(sb.MaxInum))
	dataBM := bitmap.New(int(sb.MaxDnum))

	// Root inode is inode 0, occupying data block 0 (relative to
	// d_start_blk) for its "." entry.
	inodeBM.Set(0, true)
	dataBM.Set(0, true)

	if err := dev.WriteBlock(InodeBitmapNum, inodeBM.Bytes()); err != nil {
		return err
	}
	if err := dev.WriteBlock(DataBitmapNum, dataBM.Bytes()); err != nil {
		return err
	}

	root := RawInode{
		Valid: 1,
		Type:  uint8(TypeDir),
		Ino:   0,
		Mode:  0, // mode bits are synthesized from Type at getattr time
		Nlink: 2,
		Size:  uint64(block.Size),
	}
	for i := range root.Direct {
		root.Direct[i] = InvalidDBlock
	}
	root.Direct[0] = 0

	if err := writeRawInode(dev, &sb, 0, &root); err != nil {
		return err
	}

	block0 := make([]byte, block.Size)
	dot := RawDirent{Valid: 1, NameLen: 1, Ino: 0}
	copy(dot.Name[:], ".")
	if err := putDirentAt(block0, 0, &dot); err != nil {
		return err
	}
	return dev.WriteBlock(block.ID(dStartBlk+0), block0)
}
