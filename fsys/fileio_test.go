package fsys_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyfs/tfs/blocktest"
	"github.com/tinyfs/tfs/fsys"
)

func TestWriteReadWithinOneBlock(t *testing.T) {
	mount := blocktest.NewMount(t, 128)
	defer mount.Destroy()

	ino, err := mount.Create("/g")
	require.NoError(t, err)

	n, err := mount.WriteFile(ino, []byte("hello"), 0)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	buf := make([]byte, 5)
	n, err = mount.ReadFile(ino, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(buf))

	st, err := mount.Getattr("/g")
	require.NoError(t, err)
	assert.EqualValues(t, 5, st.Size)
}

func TestWriteSpanningTwoBlocks(t *testing.T) {
	mount := blocktest.NewMount(t, 128)
	defer mount.Destroy()

	ino, err := mount.Create("/h")
	require.NoError(t, err)

	buf1 := make([]byte, 5000)
	for i := range buf1 {
		buf1[i] = byte(i % 251)
	}

	n, err := mount.WriteFile(ino, buf1, 0)
	require.NoError(t, err)
	assert.Equal(t, 5000, n)

	out := make([]byte, 20)
	n, err = mount.ReadFile(ino, out, 4090)
	require.NoError(t, err)
	assert.Equal(t, 20, n)
	assert.Equal(t, buf1[4090:4110], out)

	rec, err := mount.ReadInode(ino)
	require.NoError(t, err)
	assert.NotEqual(t, fsys.InvalidDBlock, rec.Direct[0])
	assert.NotEqual(t, fsys.InvalidDBlock, rec.Direct[1])
	assert.Equal(t, fsys.InvalidDBlock, rec.Direct[2])
}

func TestWriteLawRoundTrips(t *testing.T) {
	mount := blocktest.NewMount(t, 128)
	defer mount.Destroy()

	ino, err := mount.Create("/roundtrip")
	require.NoError(t, err)

	data := []byte("the quick brown fox jumps over the lazy dog")
	_, err = mount.WriteFile(ino, data, 0)
	require.NoError(t, err)

	buf := make([]byte, len(data))
	_, err = mount.ReadFile(ino, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, data, buf)
}

func TestReadPastOffsetFails(t *testing.T) {
	mount := blocktest.NewMount(t, 128)
	defer mount.Destroy()

	ino, err := mount.Create("/empty")
	require.NoError(t, err)

	buf := make([]byte, 10)
	_, err = mount.ReadFile(ino, buf, 100)
	assert.Error(t, err)
}
