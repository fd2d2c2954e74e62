package scale

import (
	"fmt"
	"testing"

	"github.com/jsphweid/musictools/pcset"
	"github.com/stretchr/testify/assert"
)

func TestParseFormatRoundTrip(t *testing.T) {
	cases := []string{"A-2741", "C-2741", "G#-1", "F#-4095", "D-0", "A#-1453"}

	for _, text := range cases {
		t.Run(text, func(t *testing.T) {
			s, err := Parse(text)
			assert.NoError(t, err)
			assert.Equal(t, text, s.String())
		})
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := []string{"", "C", "H-2741", "C-", "C--1", "C-4096", "C-12.5", "c-2741", "C-27x"}

	for _, text := range cases {
		t.Run(fmt.Sprintf("%q", text), func(t *testing.T) {
			_, err := Parse(text)
			assert.ErrorIs(t, err, ErrInvalidScale)
		})
	}
}

func TestPitchClasses(t *testing.T) {
	assert := assert.New(t)

	c := MustParse("C-2741")
	assert.Equal([]int{0, 2, 4, 5, 7, 9, 11}, c.PitchClasses())

	a := MustParse("A-2741")
	assert.Equal([]int{-3, -1, 1, 2, 4, 6, 8}, a.PitchClasses())

	pitch, err := DegreeToPitch(0, a.PitchClasses())
	assert.NoError(err)
	assert.Equal(a.PitchClasses()[0]+48, pitch)
	assert.Equal(45, pitch)
}

func TestDegreeToPitch(t *testing.T) {
	seq := MustParse("C-2741").PitchClasses()
	cases := []struct {
		degree, want int
	}{
		{0, 48},
		{1, 50},
		{6, 59},
		{7, 60},
		{-1, 47},
		{-7, 36},
		{-8, 35},
		{15, 74},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("degree %v", c.degree), func(t *testing.T) {
			got, err := DegreeToPitch(c.degree, seq)
			assert.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestDegreeToPitchEmpty(t *testing.T) {
	_, err := DegreeToPitch(3, nil)
	assert.ErrorIs(t, err, ErrEmptyScale)
}

func TestRotationIsPermutation(t *testing.T) {
	assert := assert.New(t)

	for decimal := 1; decimal <= 4095; decimal += 2 {
		s := Scale{Root: 3, Mask: pcset.Mask(decimal)}
		assert.Equal(s, s.RotateRight().RotateLeft())
		assert.Equal(s, s.RotateLeft().RotateRight())
		assert.True(s.RotateLeft().Mask.Has(0))
	}
}

func TestRotateModes(t *testing.T) {
	assert := assert.New(t)

	dorian := MustParse("C-2741").RotateLeft()
	assert.Equal([]int{0, 2, 3, 5, 7, 9, 10}, dorian.Mask.Indexes())
	assert.Equal("C", dorian.RootName())

	locrian := MustParse("C-2741").RotateRight()
	assert.Equal([]int{0, 1, 3, 5, 6, 8, 10}, locrian.Mask.Indexes())
}

func TestRotateSingleBitIsNoop(t *testing.T) {
	s := MustParse("E-1")
	assert.Equal(t, s, s.RotateLeft())
	assert.Equal(t, s, s.RotateRight())
}

func TestWithDecimalForcesRoot(t *testing.T) {
	assert := assert.New(t)

	s, err := MustParse("C-2741").WithDecimal(2740)
	assert.NoError(err)
	assert.Equal(2741, s.Mask.Decimal())

	_, err = s.WithDecimal(5000)
	assert.ErrorIs(err, ErrInvalidScale)
}

func TestWithDegree(t *testing.T) {
	assert := assert.New(t)

	s := MustParse("C-1").WithDegree(4, true).WithDegree(7, true)
	assert.Equal([]int{0, 4, 7}, s.Mask.Indexes())
	assert.Equal(s, s.WithDegree(0, false))
}

func TestWithRootAndTranspose(t *testing.T) {
	assert := assert.New(t)

	s, err := MustParse("C-2741").WithRoot("F#")
	assert.NoError(err)
	assert.Equal("F#-2741", s.String())

	_, err = s.WithRoot("Db")
	assert.ErrorIs(err, ErrUnknownPitch)

	assert.Equal("A-2741", MustParse("G#-2741").Transpose(1).String())
	assert.Equal("G#-2741", MustParse("A-2741").Transpose(-1).String())
}
