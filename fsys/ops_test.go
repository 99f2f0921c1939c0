package fsys_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyfs/tfs/blocktest"
	"github.com/tinyfs/tfs/tfs"
)

func TestMakeNestedDirectories(t *testing.T) {
	mount := blocktest.NewMount(t, 128)
	defer mount.Destroy()

	_, err := mount.Mkdir("/a")
	require.NoError(t, err)
	_, err = mount.Mkdir("/a/b")
	require.NoError(t, err)

	st, err := mount.Getattr("/a/b")
	require.NoError(t, err)
	assert.True(t, st.IsDir)
	assert.GreaterOrEqual(t, st.Nlink, uint32(2))

	aIno, err := mount.Resolve("/a", 0)
	require.NoError(t, err)

	var names []string
	require.NoError(t, mount.Readdir(aIno, func(name string, ino uint32) {
		names = append(names, name)
	}))
	assert.Contains(t, names, ".")
	assert.Contains(t, names, "..")
	assert.Contains(t, names, "b")
}

func TestCreateAndStatFile(t *testing.T) {
	mount := blocktest.NewMount(t, 128)
	defer mount.Destroy()

	_, err := mount.Create("/f")
	require.NoError(t, err)

	st, err := mount.Getattr("/f")
	require.NoError(t, err)
	assert.False(t, st.IsDir)
	assert.EqualValues(t, 0, st.Size)
	assert.Equal(t, tfs.S_IFREG, int(st.Mode&tfs.S_IFMT))
}

func TestDuplicateMkdirAndCreateRejected(t *testing.T) {
	mount := blocktest.NewMount(t, 128)
	defer mount.Destroy()

	_, err := mount.Mkdir("/x")
	require.NoError(t, err)
	_, err = mount.Mkdir("/x")
	assert.ErrorIs(t, err, tfs.ErrExists)

	_, err = mount.Create("/x")
	assert.ErrorIs(t, err, tfs.ErrExists)
}

func TestGetattrNotFound(t *testing.T) {
	mount := blocktest.NewMount(t, 128)
	defer mount.Destroy()

	_, err := mount.Getattr("/nope")
	assert.ErrorIs(t, err, tfs.ErrNotFound)
}
