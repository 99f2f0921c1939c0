package fsys

import (
	"time"

	"github.com/tinyfs/tfs/block"
	"github.com/tinyfs/tfs/tfs"
)

// Mkdir creates a new directory at path. Rejects an empty or already-
// existing path; allocates a child inode and a first data block
// containing "." (self) and ".." (parent) entries, then links the
// child into the parent. Mirrors spec.md §4.9's mkdir contract.
func (m *Mount) Mkdir(path string) (uint32, error) {
	dir, base := SplitPath(path)
	if base == "" {
		return 0, tfs.ErrBadOffset
	}

	parentIno, err := m.Resolve(dir, 0)
	if err != nil {
		return 0, err
	}
	if _, err := m.DirFind(parentIno, base); err == nil {
		return 0, tfs.ErrExists
	}

	childIno, err := m.AllocInode()
	if err != nil {
		return 0, err
	}
	childBlk, err := m.AllocBlock()
	if err != nil {
		return 0, err
	}

	child := RawInode{
		Valid: 1,
		Type:  uint8(TypeDir),
		Ino:   childIno,
		Nlink: 2,
		Size:  uint64(block.Size),
		Mtime: time.Now().Unix(),
	}
	for i := range child.Direct {
		child.Direct[i] = InvalidDBlock
	}
	child.Direct[0] = childBlk

	raw := make([]byte, block.Size)
	dot := RawDirent{Valid: 1, NameLen: 1, Ino: childIno}
	copy(dot.Name[:], ".")
	dotdot := RawDirent{Valid: 1, NameLen: 2, Ino: parentIno}
	copy(dotdot.Name[:], "..")
	if err := putDirentAt(raw, 0, &dot); err != nil {
		return 0, err
	}
	if err := putDirentAt(raw, 1, &dotdot); err != nil {
		return 0, err
	}
	if err := m.Device.WriteBlock(block.ID(uint32(m.SB.DStartBlk)+childBlk), raw); err != nil {
		return 0, err
	}

	if err := m.WriteInode(childIno, &child); err != nil {
		return 0, err
	}
	if err := m.DirAdd(parentIno, childIno, base); err != nil {
		return 0, err
	}
	return childIno, nil
}

// Create creates a new regular file at path: zero size, one link, no
// allocated data blocks yet (lazily allocated on first write).
func (m *Mount) Create(path string) (uint32, error) {
	dir, base := SplitPath(path)
	if base == "" {
		return 0, tfs.ErrBadOffset
	}

	parentIno, err := m.Resolve(dir, 0)
	if err != nil {
		return 0, err
	}
	if _, err := m.DirFind(parentIno, base); err == nil {
		return 0, tfs.ErrExists
	}

	childIno, err := m.AllocInode()
	if err != nil {
		return 0, err
	}

	child := RawInode{
		Valid: 1,
		Type:  uint8(TypeFile),
		Ino:   childIno,
		Nlink: 1,
		Size:  0,
		Mtime: time.Now().Unix(),
	}
	for i := range child.Direct {
		child.Direct[i] = InvalidDBlock
	}
	if err := m.WriteInode(childIno, &child); err != nil {
		return 0, err
	}
	if err := m.DirAdd(parentIno, childIno, base); err != nil {
		return 0, err
	}
	return childIno, nil
}

// Readdir invokes fill for every valid entry across all used direct
// blocks of the directory at ino, in on-disk traversal order.
func (m *Mount) Readdir(ino uint32, fill func(name string, childIno uint32)) error {
	dir, err := m.ReadInode(ino)
	if err != nil {
		return err
	}
	if Type(dir.Type) != TypeDir {
		return tfs.ErrNotDirectory
	}

	perBlock := MaxDirentsPerBlock()
	for _, p := range dir.Direct {
		if p == InvalidDBlock {
			continue
		}
		raw, err := m.Device.ReadBlock(block.ID(uint32(m.SB.DStartBlk) + p))
		if err != nil {
			return err
		}
		for slot := 0; slot < perBlock; slot++ {
			d, err := getDirentAt(raw, slot)
			if err != nil {
				return err
			}
			if d.Valid == 1 {
				fill(rawName(d), d.Ino)
			}
		}
	}
	return nil
}

// Getattr resolves path and returns its stat record.
func (m *Mount) Getattr(path string) (tfs.Stat, error) {
	ino, err := m.Resolve(path, 0)
	if err != nil {
		return tfs.Stat{}, err
	}
	rec, err := m.ReadInode(ino)
	if err != nil {
		return tfs.Stat{}, err
	}
	return rec.ToStat(), nil
}

// Opendir resolves path and succeeds only if it names a directory.
func (m *Mount) Opendir(path string) (uint32, error) {
	ino, err := m.Resolve(path, 0)
	if err != nil {
		return 0, err
	}
	rec, err := m.ReadInode(ino)
	if err != nil {
		return 0, err
	}
	if Type(rec.Type) != TypeDir {
		return 0, tfs.ErrNotDirectory
	}
	return ino, nil
}

// Open resolves path and succeeds only if it names a regular file.
func (m *Mount) Open(path string) (uint32, error) {
	ino, err := m.Resolve(path, 0)
	if err != nil {
		return 0, err
	}
	rec, err := m.ReadInode(ino)
	if err != nil {
		return 0, err
	}
	if Type(rec.Type) != TypeFile {
		return 0, tfs.ErrNotRegular
	}
	return ino, nil
}
