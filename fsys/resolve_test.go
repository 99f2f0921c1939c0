package fsys_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tinyfs/tfs/fsys"
)

func TestSplitPathTopLevel(t *testing.T) {
	dir, base := fsys.SplitPath("/a")
	assert.Equal(t, "/", dir)
	assert.Equal(t, "a", base)
}

func TestSplitPathNested(t *testing.T) {
	dir, base := fsys.SplitPath("/a/b/c")
	assert.Equal(t, "/a/b", dir)
	assert.Equal(t, "c", base)
}

func TestSplitPathTrailingSlash(t *testing.T) {
	dir, base := fsys.SplitPath("/a/b/")
	assert.Equal(t, "/a", dir)
	assert.Equal(t, "b", base)
}
