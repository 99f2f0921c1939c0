// Package fuseglue is the operation dispatch glue: it adapts the CORE
// (package fsys) to the kernel-facing FUSE protocol via
// github.com/hanwen/go-fuse/v2/fs, translating path-based fsys calls
// into the tree-of-Inode model the kernel expects and mapping tfs
// errors to syscall.Errno.
package fuseglue

import (
	"context"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/tinyfs/tfs/fsys"
	"github.com/tinyfs/tfs/tfs"
)

// Node is the dispatch glue's InodeEmbedder: every node in the FUSE
// tree, file or directory, carries the CORE inode number it
// represents and a shared handle to the mount.
type Node struct {
	fs.Inode

	mount *fsys.Mount
	ino   uint32
}

var (
	_ = (fs.NodeGetattrer)((*Node)(nil))
	_ = (fs.NodeLookuper)((*Node)(nil))
	_ = (fs.NodeOpendirer)((*Node)(nil))
	_ = (fs.NodeReaddirer)((*Node)(nil))
	_ = (fs.NodeMkdirer)((*Node)(nil))
	_ = (fs.NodeCreater)((*Node)(nil))
	_ = (fs.NodeOpener)((*Node)(nil))
	_ = (fs.NodeReader)((*Node)(nil))
	_ = (fs.NodeWriter)((*Node)(nil))
)

// errnoOf maps the CORE's tfs.Error sentinels onto the syscall.Errno
// the kernel dispatcher boundary expects (§7's "negative return codes
// mapping to an errno").
func errnoOf(err error) syscall.Errno {
	if err == nil {
		return fs.OK
	}
	if e, ok := err.(*tfs.Error); ok {
		return e.Errno
	}
	return syscall.EIO
}

func attrFromStat(out *fuse.Attr, st tfs.Stat) {
	out.Ino = uint64(st.Ino)
	out.Mode = st.Mode
	out.Nlink = st.Nlink
	out.Uid = st.UID
	out.Gid = st.GID
	out.Size = st.Size
	if !st.Mtime.IsZero() {
		out.Mtime = uint64(st.Mtime.Unix())
	}
}

// NewRoot builds the root Node (CORE inode 0) for mounting.
func NewRoot(mount *fsys.Mount) *Node {
	return &Node{mount: mount, ino: 0}
}

func (n *Node) child(ino uint32, isDir bool) *fs.Inode {
	mode := uint32(syscall.S_IFREG)
	if isDir {
		mode = syscall.S_IFDIR
	}
	child := &Node{mount: n.mount, ino: ino}
	return n.NewInode(context.Background(), child, fs.StableAttr{
		Mode: mode,
		Ino:  uint64(ino),
	})
}

// Getattr resolves this node's CORE inode and reports its stat record.
func (n *Node) Getattr(ctx context.Context, f fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	rec, err := n.mount.ReadInode(n.ino)
	if err != nil {
		return errnoOf(err)
	}
	attrFromStat(&out.Attr, rec.ToStat())
	return fs.OK
}

// Lookup finds a direct child of this directory by name.
func (n *Node) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	d, err := n.mount.DirFind(n.ino, name)
	if err != nil {
		return nil, errnoOf(err)
	}
	rec, err := n.mount.ReadInode(d.Ino)
	if err != nil {
		return nil, errnoOf(err)
	}
	st := rec.ToStat()
	attrFromStat(&out.Attr, st)
	return n.child(d.Ino, st.IsDir), fs.OK
}

// Opendir succeeds only if this node names a directory.
func (n *Node) Opendir(ctx context.Context) syscall.Errno {
	rec, err := n.mount.ReadInode(n.ino)
	if err != nil {
		return errnoOf(err)
	}
	if fsys.Type(rec.Type) != fsys.TypeDir {
		return syscall.ENOTDIR
	}
	return fs.OK
}

// Readdir lists this directory's entries in on-disk traversal order.
func (n *Node) Readdir(ctx context.Context) (fs.DirStream, syscall.Errno) {
	var entries []fuse.DirEntry
	err := n.mount.Readdir(n.ino, func(name string, childIno uint32) {
		entries = append(entries, fuse.DirEntry{Name: name, Ino: uint64(childIno)})
	})
	if err != nil {
		return nil, errnoOf(err)
	}
	return fs.NewListDirStream(entries), fs.OK
}

// Mkdir creates a subdirectory and returns its Node.
func (n *Node) Mkdir(ctx context.Context, name string, mode uint32, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	path := n.childPath(name)
	childIno, err := n.mount.Mkdir(path)
	if err != nil {
		return nil, errnoOf(err)
	}
	rec, err := n.mount.ReadInode(childIno)
	if err != nil {
		return nil, errnoOf(err)
	}
	attrFromStat(&out.Attr, rec.ToStat())
	return n.child(childIno, true), fs.OK
}

// Create creates a regular file and returns its Node. This CORE has
// no FileHandle abstraction distinct from the inode number, so the
// returned handle is always nil; Read/Write operate on n.ino.
func (n *Node) Create(ctx context.Context, name string, flags uint32, mode uint32, out *fuse.EntryOut) (*fs.Inode, fs.FileHandle, uint32, syscall.Errno) {
	path := n.childPath(name)
	childIno, err := n.mount.Create(path)
	if err != nil {
		return nil, nil, 0, errnoOf(err)
	}
	rec, err := n.mount.ReadInode(childIno)
	if err != nil {
		return nil, nil, 0, errnoOf(err)
	}
	attrFromStat(&out.Attr, rec.ToStat())
	return n.child(childIno, false), nil, 0, fs.OK
}

// Open succeeds only if this node names a regular file.
func (n *Node) Open(ctx context.Context, flags uint32) (fs.FileHandle, uint32, syscall.Errno) {
	rec, err := n.mount.ReadInode(n.ino)
	if err != nil {
		return nil, 0, errnoOf(err)
	}
	if fsys.Type(rec.Type) != fsys.TypeFile {
		return nil, 0, syscall.EISDIR
	}
	return nil, 0, fs.OK
}

// Read copies up to len(dest) bytes starting at off from this file.
func (n *Node) Read(ctx context.Context, f fs.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	nRead, err := n.mount.ReadFile(n.ino, dest, uint64(off))
	if err != nil {
		return nil, errnoOf(err)
	}
	return fuse.ReadResultData(dest[:nRead]), fs.OK
}

// Write stores data at off into this file.
func (n *Node) Write(ctx context.Context, f fs.FileHandle, data []byte, off int64) (uint32, syscall.Errno) {
	written, err := n.mount.WriteFile(n.ino, data, uint64(off))
	if err != nil {
		return uint32(written), errnoOf(err)
	}
	return uint32(written), fs.OK
}

// childPath reconstructs the absolute path of a would-be child, since
// the CORE's Mkdir/Create operate on paths rather than parent inode
// handles.
func (n *Node) childPath(name string) string {
	parentPath := n.Path(n.Root())
	if parentPath == "" {
		return "/" + name
	}
	return "/" + parentPath + "/" + name
}
