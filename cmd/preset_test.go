package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/jsphweid/musictools/db"
	"github.com/jsphweid/musictools/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestPresetCommands(t *testing.T) {
	store := db.NewMemory()
	old := presetStore
	presetStore = func() (db.Store, error) { return store, nil }
	t.Cleanup(func() { presetStore = old })

	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	require.NoError(t, settings.SaveFile(in, readyMelody()))

	assert.Contains(t, run(t, "preset", "save", "steps", in), "Saved preset steps")
	assert.Equal(t, "steps\n", run(t, "preset", "list"))

	text := run(t, "preset", "load", "steps")
	s, err := settings.Decode(text)
	require.NoError(t, err)
	assert.Equal(t, readyMelody(), s)

	out := filepath.Join(dir, "out.json")
	run(t, "preset", "load", "steps", "-o", out)
	presetOut = ""
	s, err = settings.LoadFile(out)
	require.NoError(t, err)
	assert.Equal(t, readyMelody(), s)
}

func TestChordEdits(t *testing.T) {
	chordDegrees = []int{0, 4}
	chordRoot = "E"
	chordIntervals = []string{"5th=Perfect"}
	chordRotations = []string{"left"}
	t.Cleanup(func() {
		chordDegrees, chordRoot, chordIntervals, chordRotations = nil, "", nil, nil
	})

	edits, err := chordEdits()
	require.NoError(t, err)
	assert.Len(t, edits, 5)

	chordIntervals = []string{"5th"}
	_, err = chordEdits()
	assert.Error(t, err)
}
