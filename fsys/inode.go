package fsys

import (
	"time"

	"github.com/tinyfs/tfs/block"
	"github.com/tinyfs/tfs/tfs"
)

// inodeAddress computes the (block, offset) address of inode ino,
// following rufs.c's readi/writei arithmetic exactly: block =
// i_start_blk + ino / (B / sizeof(inode)); offset = (ino mod (B /
// sizeof(inode))) * sizeof(inode).
func inodeAddress(sb *RawSuperblock, ino uint32) (block.ID, int) {
	perBlock := block.Size / InodeSize
	blk := sb.IStartBlk + ino/uint32(perBlock)
	off := int(ino%uint32(perBlock)) * InodeSize
	return block.ID(blk), off
}

func readRawInode(dev *block.Device, sb *RawSuperblock, ino uint32) (*RawInode, error) {
	blk, off := inodeAddress(sb, ino)
	raw, err := dev.ReadBlock(blk)
	if err != nil {
		return nil, err
	}
	var rec RawInode
	if err := decodeBlock(raw[off:off+InodeSize], &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// writeRawInode is a read-modify-write: the inode table packs many
// records per block, so a blind overwrite would clobber neighbors.
func writeRawInode(dev *block.Device, sb *RawSuperblock, ino uint32, rec *RawInode) error {
	blk, off := inodeAddress(sb, ino)
	raw, err := dev.ReadBlock(blk)
	if err != nil {
		return err
	}
	encoded, err := encodeBlock(rec)
	if err != nil {
		return err
	}
	copy(raw[off:off+InodeSize], encoded[:InodeSize])
	return dev.WriteBlock(blk, raw)
}

// ReadInode loads inode ino and fails with tfs.ErrNotFound if the
// bitmap marks it free.
func (m *Mount) ReadInode(ino uint32) (*RawInode, error) {
	if ino >= m.SB.MaxInum || !m.InodeBitmap.Get(int(ino)) {
		return nil, tfs.ErrNotFound
	}
	rec, err := readRawInode(m.Device, &m.SB, ino)
	if err != nil {
		return nil, err
	}
	if rec.Valid == 0 {
		return nil, tfs.ErrNotFound
	}
	return rec, nil
}

// WriteInode persists rec at ino.
func (m *Mount) WriteInode(ino uint32, rec *RawInode) error {
	return writeRawInode(m.Device, &m.SB, ino, rec)
}

// ToStat converts a raw on-disk inode into the shared tfs.Stat shape
// reported by getattr. Directories report mode 0755, regular files
// 0644, per spec.md §4.9.
func (rec *RawInode) ToStat() tfs.Stat {
	var mode uint32
	isDir := Type(rec.Type) == TypeDir
	if isDir {
		mode = tfs.S_IFDIR | 0755
	} else {
		mode = tfs.S_IFREG | 0644
	}
	return tfs.Stat{
		Ino:   rec.Ino,
		Mode:  mode,
		Nlink: rec.Nlink,
		UID:   rec.UID,
		GID:   rec.GID,
		Size:  rec.Size,
		Mtime: time.Unix(rec.Mtime, 0),
		IsDir: isDir,
	}
}
