package fsys_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyfs/tfs/blocktest"
	"github.com/tinyfs/tfs/fsys"
	"github.com/tinyfs/tfs/tfs"
)

func TestDirFindNotADirectory(t *testing.T) {
	mount := blocktest.NewMount(t, 128)
	defer mount.Destroy()

	ino, err := mount.Create("/f")
	require.NoError(t, err)

	_, err = mount.DirFind(ino, "anything")
	assert.ErrorIs(t, err, tfs.ErrNotDirectory)
}

func TestDirAddRejectsDuplicateName(t *testing.T) {
	mount := blocktest.NewMount(t, 128)
	defer mount.Destroy()

	ino, err := mount.Create("/dup")
	require.NoError(t, err)

	err = mount.DirAdd(0, ino, "dup")
	assert.ErrorIs(t, err, tfs.ErrExists)
}

func TestDirAddFillsInvalidSlotBeforeGrowing(t *testing.T) {
	mount := blocktest.NewMount(t, 128)
	defer mount.Destroy()

	for i := 0; i < fsys.MaxDirentsPerBlock()-1; i++ {
		_, err := mount.Create(fmt.Sprintf("/file%02d", i))
		require.NoError(t, err)
	}

	root, err := mount.ReadInode(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), root.Direct[0])
	assert.Equal(t, fsys.InvalidDBlock, root.Direct[1])
}

func TestReaddirNameResolvesBackToSameInode(t *testing.T) {
	mount := blocktest.NewMount(t, 128)
	defer mount.Destroy()

	childIno, err := mount.Mkdir("/dir1")
	require.NoError(t, err)

	var found uint32
	err = mount.Readdir(0, func(name string, ino uint32) {
		if name == "dir1" {
			found = ino
		}
	})
	require.NoError(t, err)

	resolved, err := mount.Resolve("/dir1", 0)
	require.NoError(t, err)
	assert.Equal(t, childIno, found)
	assert.Equal(t, childIno, resolved)
}
