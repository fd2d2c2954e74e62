// Package pcset implements 12-bit pitch-class masks.
//
// Bit i of a Mask stands for the pitch i semitones above a reference pitch.
// For scales the reference is the scale root; for chord decimals it is the
// chord root. The decimal form of a mask is its integer value and its binary
// form is the 12 character string with the most significant bit first, so
// the major scale is 2741 or "101010110101".
package pcset

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/jsphweid/musictools/circ"
)

const Size = 12

// Full has every pitch class set.
const Full Mask = 1<<Size - 1

var ErrOutOfRange = errors.New("mask out of range")

type Mask uint16

// FromDecimal validates a decimal in [0, 4095].
func FromDecimal(n int) (Mask, error) {
	if n < 0 || n > int(Full) {
		return 0, fmt.Errorf("%w: %v", ErrOutOfRange, n)
	}
	return Mask(n), nil
}

// FromIndexes builds a mask from semitone offsets. Offsets are taken mod 12.
func FromIndexes(indexes ...int) Mask {
	var m Mask
	for _, i := range indexes {
		m = m.With(i)
	}
	return m
}

func (m Mask) Decimal() int {
	return int(m & Full)
}

func (m Mask) Binary() string {
	var sb strings.Builder
	for i := Size - 1; i >= 0; i-- {
		if m.Has(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func (m Mask) String() string {
	return m.Binary()
}

// Has reports whether semitone i (mod 12) is set.
func (m Mask) Has(i int) bool {
	return m&(1<<circ.Mod12(i)) != 0
}

func (m Mask) With(i int) Mask {
	return m | 1<<circ.Mod12(i)
}

func (m Mask) Without(i int) Mask {
	return m &^ (1 << circ.Mod12(i))
}

// Set sets or clears semitone i.
func (m Mask) Set(i int, on bool) Mask {
	if on {
		return m.With(i)
	}
	return m.Without(i)
}

func (m Mask) And(other Mask) Mask {
	return m & other
}

func (m Mask) Count() int {
	return bits.OnesCount16(uint16(m & Full))
}

func (m Mask) Empty() bool {
	return m&Full == 0
}

// Indexes lists the set semitones in ascending order.
func (m Mask) Indexes() []int {
	res := make([]int, 0, m.Count())
	for i := 0; i < Size; i++ {
		if m.Has(i) {
			res = append(res, i)
		}
	}
	return res
}

// Lowest returns the lowest set semitone.
func (m Mask) Lowest() (int, bool) {
	if m.Empty() {
		return 0, false
	}
	return bits.TrailingZeros16(uint16(m & Full)), true
}

// Next returns the first set semitone above from, searching circularly.
// from itself is never returned, so a mask holding only from has no next.
func (m Mask) Next(from int) (int, bool) {
	for step := 1; step < Size; step++ {
		i := circ.Mod12(from + step)
		if m.Has(i) {
			return i, true
		}
	}
	return 0, false
}

// Prev is Next searching downwards.
func (m Mask) Prev(from int) (int, bool) {
	for step := 1; step < Size; step++ {
		i := circ.Mod12(from - step)
		if m.Has(i) {
			return i, true
		}
	}
	return 0, false
}

// Rotate moves semitone n to bit 0, keeping the circular order.
func (m Mask) Rotate(n int) Mask {
	n = circ.Mod12(n)
	v := m & Full
	return (v>>n | v<<(Size-n)) & Full
}

// Bits returns the mask as checkbox states, index i being semitone i.
func (m Mask) Bits() [Size]bool {
	var res [Size]bool
	for i := range res {
		res[i] = m.Has(i)
	}
	return res
}
