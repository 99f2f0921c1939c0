package fsys_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyfs/tfs/blocktest"
)

func TestCheckPassesOnFreshMkfs(t *testing.T) {
	mount := blocktest.NewMount(t, 128)
	defer mount.Destroy()

	assert.NoError(t, mount.Check())
}

func TestCheckPassesAfterMkdirAndWrite(t *testing.T) {
	mount := blocktest.NewMount(t, 128)
	defer mount.Destroy()

	_, err := mount.Mkdir("/a")
	require.NoError(t, err)
	ino, err := mount.Create("/a/f")
	require.NoError(t, err)
	_, err = mount.WriteFile(ino, []byte("data spanning a single block"), 0)
	require.NoError(t, err)

	assert.NoError(t, mount.Check())
}

func TestCheckCatchesDoubleClaimedBlock(t *testing.T) {
	mount := blocktest.NewMount(t, 128)
	defer mount.Destroy()

	aIno, err := mount.Create("/a")
	require.NoError(t, err)
	bIno, err := mount.Create("/b")
	require.NoError(t, err)

	recA, err := mount.ReadInode(aIno)
	require.NoError(t, err)
	recA.Direct[0] = 0
	require.NoError(t, mount.WriteInode(aIno, recA))

	recB, err := mount.ReadInode(bIno)
	require.NoError(t, err)
	recB.Direct[0] = 0
	require.NoError(t, mount.WriteInode(bIno, recB))

	err = mount.Check()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "claimed by both")
}
