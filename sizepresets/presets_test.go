package sizepresets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyfs/tfs/sizepresets"
)

func TestGetKnownPreset(t *testing.T) {
	p, err := sizepresets.Get("default")
	require.NoError(t, err)
	assert.Equal(t, "default", p.Slug)
	assert.NotZero(t, p.TotalBlocks)
}

func TestGetUnknownPreset(t *testing.T) {
	_, err := sizepresets.Get("does-not-exist")
	assert.Error(t, err)
}

func TestSlugsIncludesDefault(t *testing.T) {
	slugs := sizepresets.Slugs()
	assert.Contains(t, slugs, "default")
}
