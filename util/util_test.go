package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(127, Clamp(200, 0, 127))
	assert.Equal(0, Clamp(-5, 0, 127))
	assert.Equal(64, Clamp(64, 0, 127))
	assert.Equal(0.5, Clamp(0.5, 0.0, 1.0))
}

func TestGatherAllMidiPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.mid", "b.MIDI", "c.json", "sub/d.mid"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0777))
		require.NoError(t, os.WriteFile(p, nil, 0666))
	}

	t.Run("directory", func(t *testing.T) {
		paths, err := GatherAllMidiPaths(dir, 0)
		require.NoError(t, err)
		assert.Len(t, paths, 3)
	})

	t.Run("limit", func(t *testing.T) {
		paths, err := GatherAllMidiPaths(dir, 2)
		require.NoError(t, err)
		assert.Len(t, paths, 2)
	})

	t.Run("single file", func(t *testing.T) {
		p := filepath.Join(dir, "c.json")
		paths, err := GatherAllMidiPaths(p, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{p}, paths)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := GatherAllMidiPaths(filepath.Join(dir, "nope"), 0)
		assert.Error(t, err)
	})
}
