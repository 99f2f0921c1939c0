package fsys

import "github.com/tinyfs/tfs/tfs"

// AllocInode scans the inode bitmap from index 0 for the first free
// bit, marks it used, flushes the bitmap block, and returns the
// index. Mirrors rufs.c's get_avail_ino.
func (m *Mount) AllocInode() (uint32, error) {
	i := m.InodeBitmap.FirstFree()
	if i < 0 {
		return 0, tfs.ErrNoSpace
	}
	m.InodeBitmap.Set(i, true)
	if err := m.flushInodeBitmap(); err != nil {
		return 0, err
	}
	return uint32(i), nil
}

// FreeInode clears bit ino in the inode bitmap and flushes it.
func (m *Mount) FreeInode(ino uint32) error {
	m.InodeBitmap.Set(int(ino), false)
	return m.flushInodeBitmap()
}

// AllocBlock scans the data-block bitmap from index 0, marks the
// first free bit used, flushes it, and returns the index **relative
// to d_start_blk** — callers must add DStartBlk before issuing block
// I/O. Mirrors rufs.c's get_avail_blkno.
func (m *Mount) AllocBlock() (uint32, error) {
	i := m.DataBitmap.FirstFree()
	if i < 0 {
		return 0, tfs.ErrNoSpace
	}
	m.DataBitmap.Set(i, true)
	if err := m.flushDataBitmap(); err != nil {
		return 0, err
	}
	return uint32(i), nil
}

// FreeBlock clears bit blk (relative to d_start_blk) and flushes it.
func (m *Mount) FreeBlock(blk uint32) error {
	m.DataBitmap.Set(int(blk), false)
	return m.flushDataBitmap()
}
