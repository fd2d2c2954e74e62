package pcset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinary(t *testing.T) {
	assert := assert.New(t)

	m := Mask(2741)
	assert.Equal("101010110101", m.Binary())
}

func TestFromDecimal(t *testing.T) {
	assert := assert.New(t)

	m, err := FromDecimal(4095)
	assert.NoError(err)
	assert.Equal(Full, m)

	_, err = FromDecimal(4096)
	assert.ErrorIs(err, ErrOutOfRange)
	_, err = FromDecimal(-1)
	assert.ErrorIs(err, ErrOutOfRange)
}

func TestIndexes(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]int{0, 2, 4, 5, 7, 9, 11}, Mask(2741).Indexes())
	assert.Equal(FromIndexes(0, 2, 4, 5, 7, 9, 11), Mask(2741))
	assert.Equal(FromIndexes(12, -1), FromIndexes(0, 11))
	assert.Empty(Mask(0).Indexes())
}

func TestNextPrevSkipCurrent(t *testing.T) {
	assert := assert.New(t)
	m := FromIndexes(0, 4, 7)

	next, ok := m.Next(0)
	assert.True(ok)
	assert.Equal(4, next)

	next, _ = m.Next(7)
	assert.Equal(0, next)

	prev, _ := m.Prev(0)
	assert.Equal(7, prev)

	prev, _ = m.Prev(5)
	assert.Equal(4, prev)

	_, ok = FromIndexes(3).Next(3)
	assert.False(ok)
	_, ok = FromIndexes(3).Prev(3)
	assert.False(ok)

	// bit 11 is reachable from both directions
	next, ok = FromIndexes(0, 11).Next(0)
	assert.True(ok)
	assert.Equal(11, next)
}

func TestRotate(t *testing.T) {
	assert := assert.New(t)
	m := Mask(2741)

	dorian := m.Rotate(2)
	assert.Equal([]int{0, 2, 3, 5, 7, 9, 10}, dorian.Indexes())
	assert.Equal(m, dorian.Rotate(10))
	assert.Equal(m, m.Rotate(12))
	assert.Equal(m, m.Rotate(-3).Rotate(3))
}

func TestLowestAndCount(t *testing.T) {
	assert := assert.New(t)

	low, ok := FromIndexes(5, 9).Lowest()
	assert.True(ok)
	assert.Equal(5, low)

	_, ok = Mask(0).Lowest()
	assert.False(ok)

	assert.Equal(7, Mask(2741).Count())
	assert.True(Mask(0).Empty())
}

func TestBits(t *testing.T) {
	m := Mask(1234)
	assert.Equal(t, [Size]bool{1: true, 4: true, 6: true, 7: true, 10: true}, m.Bits())
	assert.Equal(t, Mask(0), FromIndexes(1).Set(1, false))
}
