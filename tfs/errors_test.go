package tfs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tinyfs/tfs/tfs"
)

func TestNewErrorfMessage(t *testing.T) {
	err := tfs.NewErrorf(tfs.ErrNotFound.Errno, "no such entry: %s", "/a/b")
	assert.Equal(t, "no such entry: /a/b", err.Error())
	assert.True(t, errors.Is(err, tfs.ErrNotFound))
}

func TestIsComparesByErrno(t *testing.T) {
	a := tfs.NewErrorf(tfs.ErrExists.Errno, "first")
	b := tfs.NewErrorf(tfs.ErrExists.Errno, "second")
	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, tfs.ErrNotFound))
}

func TestNewErrorDefaultMessage(t *testing.T) {
	err := tfs.NewError(tfs.ErrNoSpace.Errno)
	assert.NotEmpty(t, err.Error())
}
