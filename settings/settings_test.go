package settings

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/musictools/midi"
	"github.com/jsphweid/musictools/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readySettings() model.Settings {
	s := Default()
	s.Expressions = []string{"sin(x) * 3", "A(x) + 1"}
	s.InitialX = "0"
	s.NewX = "x + 1"
	s.Pitch = "B(x)"
	s.Duration = "1"
	s.Rest = "False"
	s.Velocity = "100"
	return s
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	assert := assert.New(t)

	s := readySettings()
	text, err := Encode(s)
	require.NoError(t, err)
	assert.Contains(text, `"time_signature":{"numerator":4,"denominator":4}`)

	got, err := Decode(text)
	require.NoError(t, err)
	assert.Equal(s, got)
}

func TestEncodeEmptyExpressions(t *testing.T) {
	s := Default()
	s.Expressions = nil
	text, err := Encode(s)
	require.NoError(t, err)
	assert.Contains(t, text, `"expressions":[]`)

	got, err := Decode(text)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.Expressions)
}

func TestDecodeWrittenElsewhere(t *testing.T) {
	text := `{"time_signature": {"numerator": 3, "denominator": 8}, "tempo": 90, "length": 8, "scale": "A-2741",
		"expressions": ["x * 2"], "initial_x": "0", "new_x": "x+1", "pitch": "A(x)", "duration": "0.5",
		"rest": "x % 4 == 3", "velocity": "90"}`
	s, err := Decode(text)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(model.TimeSignature{Numerator: 3, Denominator: 8}, s.TimeSignature)
	assert.Equal(90, s.Tempo)
	assert.Equal(8.0, s.Length)
	assert.Equal([]string{"x * 2"}, s.Expressions)
	assert.Empty(Validate(s))
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode("{not json")
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	want := readySettings()

	t.Run("json", func(t *testing.T) {
		p := filepath.Join(dir, "s.json")
		require.NoError(t, SaveFile(p, want))
		got, err := LoadFile(p)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("yaml", func(t *testing.T) {
		p := filepath.Join(dir, "s.yaml")
		data := []byte(`time_signature:
  numerator: 4
  denominator: 4
tempo: 72
length: 16
scale: C-2741
expressions:
  - sin(x) * 3
  - A(x) + 1
initial_x: "0"
new_x: x + 1
pitch: B(x)
duration: "1"
rest: "False"
velocity: "100"
`)
		require.NoError(t, os.WriteFile(p, data, 0666))
		got, err := LoadFile(p)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("midi", func(t *testing.T) {
		text, err := Encode(want)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, midi.Write(&buf, midi.Song{Tempo: 72, Numerator: 4, Denominator: 4, Text: text}))
		p := filepath.Join(dir, "s.mid")
		require.NoError(t, os.WriteFile(p, buf.Bytes(), 0666))

		got, err := LoadFile(p)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("unknown extension", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "s.txt"))
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})
}

func fields(problems []model.FieldProblem) []string {
	var res []string
	for _, p := range problems {
		res = append(res, p.Field)
	}
	return res
}

func TestValidate(t *testing.T) {
	assert := assert.New(t)

	assert.Empty(Validate(readySettings()))

	assert.Equal([]string{"Initial X", "New X", "Pitch", "Duration", "Rest", "Velocity"}, fields(Validate(Default())))

	s := readySettings()
	s.TimeSignature = model.TimeSignature{Numerator: 0, Denominator: 6}
	s.Tempo = 11
	s.Length = -1
	s.Scale = "H-2741"
	s.Pitch = "x +"
	s.Expressions = []string{"", "((x"}
	assert.Equal([]string{"Time Signature", "Time Signature", "Tempo", "Length", "Scale", "B", "Pitch"}, fields(Validate(s)))
}

func TestNames(t *testing.T) {
	s := Default()
	s.Expressions = make([]string, 30)
	names := Names(s)
	assert.Len(t, names, MaxExpressions)
	assert.Equal(t, "A", names[0])
	assert.Equal(t, "Z", names[25])
}
