package fsys

import (
	"time"

	"github.com/tinyfs/tfs/block"
	"github.com/tinyfs/tfs/tfs"
)

// putDirentAt encodes d into slot-th slot of a raw block buffer.
func putDirentAt(raw []byte, slot int, d *RawDirent) error {
	encoded, err := encodeBlock(d)
	if err != nil {
		return err
	}
	off := slot * DirentSize
	copy(raw[off:off+DirentSize], encoded[:DirentSize])
	return nil
}

func getDirentAt(raw []byte, slot int) (*RawDirent, error) {
	off := slot * DirentSize
	var d RawDirent
	if err := decodeBlock(raw[off:off+DirentSize], &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Dirent is the resolved, name-decoded view of a RawDirent.
type Dirent struct {
	Ino  uint32
	Name string
}

func rawName(d *RawDirent) string {
	n := int(d.NameLen)
	if n > MaxNameLen {
		n = MaxNameLen
	}
	return string(d.Name[:n])
}

// DirFind looks up name in the directory at parentIno. Fails with
// tfs.ErrNotDirectory if parentIno isn't a directory, tfs.ErrNotFound
// if name isn't present. Mirrors rufs.c's dir_find.
func (m *Mount) DirFind(parentIno uint32, name string) (*Dirent, error) {
	parent, err := m.ReadInode(parentIno)
	if err != nil {
		return nil, err
	}
	if Type(parent.Type) != TypeDir {
		return nil, tfs.ErrNotDirectory
	}

	perBlock := MaxDirentsPerBlock()
	for _, p := range parent.Direct {
		if p == InvalidDBlock {
			continue
		}
		raw, err := m.Device.ReadBlock(block.ID(m.SB.DStartBlk + p))
		if err != nil {
			return nil, err
		}
		for slot := 0; slot < perBlock; slot++ {
			d, err := getDirentAt(raw, slot)
			if err != nil {
				return nil, err
			}
			if d.Valid == 1 && rawName(d) == name {
				return &Dirent{Ino: d.Ino, Name: name}, nil
			}
		}
	}
	return nil, tfs.ErrNotFound
}

// DirAdd inserts name -> childIno into the directory parentIno,
// following rufs.c's dir_add: fill an existing invalid slot first,
// else allocate a fresh data block, else fail "no space". Per
// spec.md's resolved Open Question, the parent's link count is bumped
// on every insertion (files included), matching the source behavior.
func (m *Mount) DirAdd(parentIno uint32, childIno uint32, name string) error {
	if len(name) > MaxNameLen {
		return tfs.NewErrorf(tfs.ErrBadOffset.Errno, "name %q exceeds max length %d", name, MaxNameLen)
	}
	if _, err := m.DirFind(parentIno, name); err == nil {
		return tfs.ErrExists
	}

	parent, err := m.ReadInode(parentIno)
	if err != nil {
		return err
	}
	if Type(parent.Type) != TypeDir {
		return tfs.ErrNotDirectory
	}

	perBlock := MaxDirentsPerBlock()
	entry := RawDirent{Valid: 1, NameLen: uint8(len(name)), Ino: childIno}
	copy(entry.Name[:], name)

	for _, p := range parent.Direct {
		if p == InvalidDBlock {
			continue
		}
		raw, err := m.Device.ReadBlock(block.ID(m.SB.DStartBlk + p))
		if err != nil {
			return err
		}
		for slot := 0; slot < perBlock; slot++ {
			d, err := getDirentAt(raw, slot)
			if err != nil {
				return err
			}
			if d.Valid == 0 {
				if err := putDirentAt(raw, slot, &entry); err != nil {
					return err
				}
				if err := m.Device.WriteBlock(block.ID(m.SB.DStartBlk+p), raw); err != nil {
					return err
				}
				return m.bumpParentAfterAdd(parentIno, parent)
			}
		}
	}

	for k, p := range parent.Direct {
		if p != InvalidDBlock {
			continue
		}
		newBlock, err := m.AllocBlock()
		if err != nil {
			return err
		}
		raw := make([]byte, block.Size)
		if err := putDirentAt(raw, 0, &entry); err != nil {
			return err
		}
		if err := m.Device.WriteBlock(block.ID(m.SB.DStartBlk+newBlock), raw); err != nil {
			return err
		}
		parent.Direct[k] = newBlock
		parent.Size += uint64(block.Size)
		return m.bumpParentAfterAdd(parentIno, parent)
	}

	return tfs.ErrNoSpace
}

func (m *Mount) bumpParentAfterAdd(parentIno uint32, parent *RawInode) error {
	parent.Nlink++
	parent.Mtime = time.Now().Unix()
	return m.WriteInode(parentIno, parent)
}

// DirRemove is an external-collaborator stub: removal operations
// (rmdir/unlink) are out of scope for this core (see spec.md §1).
func (m *Mount) DirRemove(parentIno uint32, name string) error {
	return nil
}
