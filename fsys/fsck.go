package fsys

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/tinyfs/tfs/block"
)

// Check walks the inode bitmap and cross-validates every structural
// invariant spec.md §8 names: a set inode bit implies a valid record,
// every direct pointer it claims implies a set data-bitmap bit, and no
// two inodes claim the same data block. Every violation found is
// collected rather than stopping at the first, since a single corrupt
// mount can have many independent defects worth reporting together.
func (m *Mount) Check() error {
	var result *multierror.Error

	claimedBy := make(map[uint32]uint32)

	for ino := 0; ino < int(m.SB.MaxInum); ino++ {
		bitSet := m.InodeBitmap.Get(ino)
		rec, err := readRawInode(m.Device, &m.SB, uint32(ino))
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("inode %d: read failed: %w", ino, err))
			continue
		}

		if bitSet && rec.Valid == 0 {
			result = multierror.Append(result, fmt.Errorf("inode %d: bitmap set but record invalid", ino))
		}
		if !bitSet && rec.Valid != 0 {
			result = multierror.Append(result, fmt.Errorf("inode %d: bitmap clear but record valid", ino))
		}
		if !bitSet || rec.Valid == 0 {
			continue
		}

		if Type(rec.Type) == TypeDir {
			used := 0
			for _, p := range rec.Direct {
				if p != InvalidDBlock {
					used++
				}
			}
			if rec.Size != uint64(used)*uint64(block.Size) {
				result = multierror.Append(result, fmt.Errorf(
					"inode %d: directory size %d does not match %d used direct blocks", ino, rec.Size, used))
			}
		} else {
			if rec.Size > uint64(NDirect)*uint64(block.Size) {
				result = multierror.Append(result, fmt.Errorf(
					"inode %d: regular file size %d exceeds %d direct blocks worth of capacity", ino, rec.Size, NDirect))
			}
		}

		seenInvalid := false
		for k, p := range rec.Direct {
			if p == InvalidDBlock {
				seenInvalid = true
				continue
			}
			if seenInvalid {
				result = multierror.Append(result, fmt.Errorf(
					"inode %d: direct pointer at slot %d used after an earlier invalid slot", ino, k))
			}
			if !m.DataBitmap.Get(int(p)) {
				result = multierror.Append(result, fmt.Errorf(
					"inode %d: direct pointer %d not marked used in data bitmap", ino, p))
			}
			if owner, ok := claimedBy[p]; ok {
				result = multierror.Append(result, fmt.Errorf(
					"data block %d claimed by both inode %d and inode %d", p, owner, ino))
			} else {
				claimedBy[p] = uint32(ino)
			}
		}
	}

	return result.ErrorOrNil()
}
