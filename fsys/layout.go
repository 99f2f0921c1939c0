// Package fsys is the CORE: the on-disk layout and the algorithms that
// maintain it — superblock, bitmaps, inode table, directory entries,
// path resolution, allocation, and the byte-range file I/O engine.
// Everything here talks to the diskfile only through block.Device.
package fsys

import (
	"encoding/binary"

	"github.com/tinyfs/tfs/block"
)

// Fixed layout parameters. B is block.Size; the rest size the inode
// table, the bitmaps, and the directory-entry name buffer.
const (
	MaxInum       = 1024
	NDirect       = 16
	MaxNameLen    = 28
	InvalidDBlock = ^uint32(0)

	SuperblockNum  block.ID = 0
	InodeBitmapNum block.ID = 1
	DataBitmapNum  block.ID = 2

	Magic uint32 = 0x54465331 // "TFS1"
)

// RawInode is the fixed-size on-disk inode record. Byte order is
// explicit little-endian (see DESIGN.md's resolved Open Question on
// host-native persistence).
type RawInode struct {
	Valid   uint8
	Type    uint8
	_       uint16
	Ino     uint32
	Mode    uint32
	Nlink   uint32
	UID     uint32
	GID     uint32
	Size    uint64
	Mtime   int64
	Direct  [NDirect]uint32
}

// InodeSize is sizeof(RawInode) as encoded on disk.
var InodeSize = binary.Size(RawInode{})

// InodesPerBlock is how many RawInode records fit in one block. The
// remainder, if any, is wasted tail space within each inode block;
// inodeAddress's integer division never lets a record straddle a
// block boundary.
func InodesPerBlock() int {
	return block.Size / InodeSize
}

// RawDirent is the fixed-size on-disk directory entry record.
type RawDirent struct {
	Valid   uint8
	NameLen uint8
	_       uint16
	Ino     uint32
	Name    [MaxNameLen]byte
}

var DirentSize = binary.Size(RawDirent{})

// MaxDirentsPerBlock is floor(B / sizeof(dirent)).
func MaxDirentsPerBlock() int {
	return block.Size / DirentSize
}

// RawSuperblock is the fixed-size on-disk superblock record (block 0).
type RawSuperblock struct {
	Magic      uint32
	MaxInum    uint32
	MaxDnum    uint32
	IBitmapBlk uint32
	DBitmapBlk uint32
	IStartBlk  uint32
	DStartBlk  uint32
}

type Type uint8

const (
	TypeFile Type = 0
	TypeDir  Type = 1
)
