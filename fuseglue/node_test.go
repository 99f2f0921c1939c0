package fuseglue

import (
	"syscall"
	"testing"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/stretchr/testify/assert"

	"github.com/tinyfs/tfs/tfs"
)

func TestErrnoOfNil(t *testing.T) {
	assert.Equal(t, fs.OK, errnoOf(nil))
}

func TestErrnoOfTfsError(t *testing.T) {
	assert.Equal(t, syscall.ENOENT, errnoOf(tfs.ErrNotFound))
}

func TestErrnoOfUnknownError(t *testing.T) {
	assert.Equal(t, syscall.EIO, errnoOf(assert.AnError))
}

func TestAttrFromStat(t *testing.T) {
	st := tfs.Stat{
		Ino:   7,
		Mode:  tfs.S_IFREG | 0644,
		Nlink: 1,
		UID:   1000,
		GID:   1000,
		Size:  42,
	}
	var attr fuse.Attr
	attrFromStat(&attr, st)

	assert.EqualValues(t, 7, attr.Ino)
	assert.EqualValues(t, st.Mode, attr.Mode)
	assert.EqualValues(t, 1, attr.Nlink)
	assert.EqualValues(t, 42, attr.Size)
}
