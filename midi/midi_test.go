package midi

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jsphweid/musictools/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSong() Song {
	return Song{
		Tempo:       72,
		Numerator:   3,
		Denominator: 4,
		Text:        `{"tempo": 72}`,
		Events: []model.NoteEvent{
			{Start: 0, Duration: 1, Pitch: 60, Velocity: 100},
			{Start: 1, Duration: 0.5, Pitch: 62, Velocity: 90},
			{Start: 1.5, Duration: 1, IsRest: true},
			{Start: 2.5, Duration: 2, Pitch: 64, Velocity: 80},
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testSong()))

	sm, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Len(sm.Tracks, 2)

	text, err := Text(sm)
	require.NoError(t, err)
	assert.Equal(`{"tempo": 72}`, text)

	assert.InDelta(72.0, Tempo(sm), 0.01)

	notes := Notes(sm)
	assert.Equal([]model.NoteEvent{
		{Start: 0, Duration: 1, Pitch: 60, Velocity: 100},
		{Start: 1, Duration: 0.5, Pitch: 62, Velocity: 90},
		{Start: 2.5, Duration: 2, Pitch: 64, Velocity: 80},
	}, notes)
}

func TestRepeatedKeyKeepsLength(t *testing.T) {
	var buf bytes.Buffer
	song := Song{Tempo: 120, Numerator: 4, Denominator: 4, Events: []model.NoteEvent{
		{Start: 0, Duration: 1, Pitch: 60, Velocity: 100},
		{Start: 1, Duration: 1, Pitch: 60, Velocity: 100},
	}}
	require.NoError(t, Write(&buf, song))

	sm, err := Read(&buf)
	require.NoError(t, err)
	notes := Notes(sm)
	require.Len(t, notes, 2)
	assert.Equal(t, 1.0, notes[0].Duration)
	assert.Equal(t, 1.0, notes[1].Duration)
}

func TestSilentNotesAreLeftOut(t *testing.T) {
	var buf bytes.Buffer
	song := Song{Tempo: 120, Numerator: 4, Denominator: 4, Events: []model.NoteEvent{
		{Start: 0, Duration: 1, Pitch: 60, Velocity: 0},
		{Start: 1, Duration: 1, Pitch: 62, Velocity: 90},
	}}
	require.NoError(t, Write(&buf, song))

	sm, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, []model.NoteEvent{
		{Start: 1, Duration: 1, Pitch: 62, Velocity: 90},
	}, Notes(sm))
}

func TestChordEventsShareStart(t *testing.T) {
	var buf bytes.Buffer
	song := Song{Tempo: 72, Numerator: 4, Denominator: 4, Events: []model.NoteEvent{
		{Start: 0, Duration: 2, Pitch: 57, Velocity: 100},
		{Start: 0, Duration: 2, Pitch: 61, Velocity: 100},
		{Start: 0, Duration: 2, Pitch: 64, Velocity: 100},
	}}
	require.NoError(t, Write(&buf, song))

	sm, err := Read(&buf)
	require.NoError(t, err)
	notes := Notes(sm)
	require.Len(t, notes, 3)
	for _, n := range notes {
		assert.Equal(t, 0.0, n.Start)
		assert.Equal(t, 2.0, n.Duration)
	}
}

func TestBadMeter(t *testing.T) {
	var buf bytes.Buffer
	song := testSong()
	song.Denominator = 0
	assert.ErrorIs(t, Write(&buf, song), ErrBadMeter)
}

func TestReadTextErrors(t *testing.T) {
	t.Run("garbage", func(t *testing.T) {
		_, err := ReadText(strings.NewReader("not a midi file"))
		assert.ErrorIs(t, err, ErrInvalidFile)
	})
}
