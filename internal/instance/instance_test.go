package instance

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "desktoptoast.lock")

	first, ok, err := Acquire(path)
	require.NoError(t, err)
	require.True(t, ok)

	second, ok, err := Acquire(path)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, second)

	require.NoError(t, first.Release())

	third, ok, err := Acquire(path)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, third.Release())
}

func TestReleaseNil(t *testing.T) {
	var g *Guard
	assert.NoError(t, g.Release())
}
