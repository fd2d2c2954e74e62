package chord

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jsphweid/musictools/circ"
	"github.com/jsphweid/musictools/pcset"
	"github.com/jsphweid/musictools/scale"
)

// Unset is the root of an empty chord.
const Unset = -1

var (
	ErrNotInScale = errors.New("pitch is not in the scale")
	ErrNotInChord = errors.New("pitch is not in the chord")
)

// Chord lives inside a scale. Both Root and Mask are relative to the scale
// root, so a chord follows its scale when the scale root changes.
type Chord struct {
	Root int
	Mask pcset.Mask
}

func Empty() Chord {
	return Chord{Root: Unset}
}

func (c Chord) IsEmpty() bool {
	return c.Mask.Empty()
}

// ensureValidRoot reduces the root to [0, 12) and snaps it to the lowest
// set bit when it no longer points at one.
func (c Chord) ensureValidRoot() Chord {
	if c.Root != Unset {
		c.Root = circ.Mod12(c.Root)
		if c.Mask.Has(c.Root) {
			return c
		}
	}
	low, ok := c.Mask.Lowest()
	if !ok {
		c.Root = Unset
		return c
	}
	c.Root = low
	return c
}

// MaskTo drops every pitch not in scaleMask.
func (c Chord) MaskTo(scaleMask pcset.Mask) Chord {
	c.Mask = c.Mask.And(scaleMask)
	return c.ensureValidRoot()
}

// WithDegree sets or clears the pitch i semitones above the scale root.
// The root cannot be cleared while other pitches remain.
func (c Chord) WithDegree(i int, on bool) Chord {
	i = circ.Mod12(i)
	if !on && i == c.Root && c.Mask.Count() > 1 {
		return c
	}
	c.Mask = c.Mask.Set(i, on)
	return c.ensureValidRoot()
}

// WithRoot moves the root to offset, which must already be in the chord.
func (c Chord) WithRoot(offset int) (Chord, error) {
	offset = circ.Mod12(offset)
	if !c.Mask.Has(offset) {
		return c, fmt.Errorf("%w: offset %v", ErrNotInChord, offset)
	}
	c.Root = offset
	return c, nil
}

// RotateRight moves the root to the next pitch up, i.e. the next inversion.
func (c Chord) RotateRight() Chord {
	if c.Root == Unset || c.Mask.Count() <= 1 {
		return c
	}
	if next, ok := c.Mask.Next(c.Root); ok {
		c.Root = next
	}
	return c
}

// RotateLeft moves the root to the previous pitch.
func (c Chord) RotateLeft() Chord {
	if c.Root == Unset || c.Mask.Count() <= 1 {
		return c
	}
	if prev, ok := c.Mask.Prev(c.Root); ok {
		c.Root = prev
	}
	return c
}

// Decimal is the mask seen from the chord root, so the root is bit 0.
func (c Chord) Decimal() int {
	if c.Root == Unset {
		return 0
	}
	return c.Mask.Rotate(c.Root).Decimal()
}

// Intervals lists the semitones above the chord root, root first.
func (c Chord) Intervals() []int {
	if c.Root == Unset {
		return nil
	}
	return c.Mask.Rotate(c.Root).Indexes()
}

// AsScale views the chord as a scale rooted at the chord root.
func (c Chord) AsScale(scaleRoot int) scale.Scale {
	if c.Root == Unset {
		return scale.New(scaleRoot, 0)
	}
	return scale.New(scaleRoot+c.Root, c.Mask.Rotate(c.Root))
}

// Format renders the chord like a scale, e.g. "E-145" for E minor, so it
// can be pasted anywhere a scale is expected.
func (c Chord) Format(scaleRoot int) string {
	return c.AsScale(scaleRoot).String()
}

// Key joins sorted notes like "60-64-67".
func Key(notes []uint8) string {
	sorted := append([]uint8(nil), notes...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	parts := make([]string, len(sorted))
	for i, note := range sorted {
		parts[i] = fmt.Sprintf("%v", note)
	}
	return strings.Join(parts, "-")
}
