package view

import (
	"strings"
	"testing"

	"github.com/jsphweid/musictools/explorer"
	"github.com/jsphweid/musictools/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderViews(t *testing.T) {
	st, err := explorer.Apply(explorer.Default(), explorer.ChordInterval{Interval: "3rd", Quality: "Major"})
	require.NoError(t, err)

	out := RenderViews(explorer.DeriveViews(st))
	assert := assert.New(t)
	for _, want := range []string{"Scale", "Chord", "C-2741", "C-17", "2741", "101010110101", "C#", "Major", "13th"} {
		assert.Contains(out, want)
	}
	assert.Contains(out, checked)
	assert.Contains(out, unchecked)
}

func TestRenderEmptyChord(t *testing.T) {
	out := RenderViews(explorer.DeriveViews(explorer.Default()))
	assert.Contains(t, out, "none")
}

func TestRenderEvents(t *testing.T) {
	out := RenderEvents([]model.NoteEvent{
		{Start: 0, Duration: 1, Pitch: 60, Velocity: 100},
		{Start: 1, Duration: 0.5, IsRest: true},
	})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "60")
	assert.Contains(t, lines[1], "100")
	assert.Contains(t, lines[2], "rest")
}

func TestRenderProblems(t *testing.T) {
	out := RenderProblems([]model.FieldProblem{{Field: "Pitch", Message: "is unspecified"}})
	assert.Contains(t, out, "Pitch")
	assert.Contains(t, out, "is unspecified")
}
