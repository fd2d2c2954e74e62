package scale

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jsphweid/musictools/circ"
	"github.com/jsphweid/musictools/pcset"
)

// PitchNames are indexed by pitch class, with A as class 0.
var PitchNames = [pcset.Size]string{"A", "A#", "B", "C", "C#", "D", "D#", "E", "F", "F#", "G", "G#"}

var (
	ErrInvalidScale = errors.New("invalid scale")
	ErrUnknownPitch = errors.New("unknown pitch name")
	ErrEmptyScale   = errors.New("empty scale")
)

// Major is the scale the explorer starts from.
var Major = pcset.Mask(2741)

type Scale struct {
	// Root is the pitch class of the root, 0 being A
	Root int
	// Mask is relative to Root, bit 0 being the root itself
	Mask pcset.Mask
}

func New(root int, mask pcset.Mask) Scale {
	return Scale{Root: circ.Mod12(root), Mask: mask & pcset.Full}
}

// PitchIndex returns the pitch class for a name like "C#".
func PitchIndex(name string) (int, error) {
	for i, n := range PitchNames {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPitch, name)
}

// PitchName returns the name of pitch class i, taken mod 12.
func PitchName(i int) string {
	return PitchNames[circ.Mod12(i)]
}

// Parse reads the canonical "<RootName>-<decimal>" form, e.g. "C-2741".
func Parse(text string) (Scale, error) {
	rootStr, decimalStr, found := strings.Cut(text, "-")
	if !found {
		return Scale{}, fmt.Errorf("%w: %q has no separator", ErrInvalidScale, text)
	}

	root, err := PitchIndex(rootStr)
	if err != nil {
		return Scale{}, fmt.Errorf("%w: %q: %v", ErrInvalidScale, text, err)
	}

	decimal, err := strconv.ParseUint(decimalStr, 10, 16)
	if err != nil {
		return Scale{}, fmt.Errorf("%w: %q: decimal is not a non-negative integer", ErrInvalidScale, text)
	}

	mask, err := pcset.FromDecimal(int(decimal))
	if err != nil {
		return Scale{}, fmt.Errorf("%w: %q: %v", ErrInvalidScale, text, err)
	}

	return Scale{Root: root, Mask: mask}, nil
}

// MustParse is Parse for literals.
func MustParse(text string) Scale {
	s, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Scale) String() string {
	return fmt.Sprintf("%v-%v", PitchName(s.Root), s.Mask.Decimal())
}

func (s Scale) RootName() string {
	return PitchName(s.Root)
}

// PitchClasses lists the scale in ascending order as semitones relative to
// C, so that C is 0 and the A root of "A-2741" is -3. Values are not reduced
// mod 12: this ordering is what saved melodies were generated with.
func (s Scale) PitchClasses() []int {
	res := make([]int, 0, s.Mask.Count())
	for _, i := range s.Mask.Indexes() {
		res = append(res, i+s.Root-3)
	}
	return res
}

// DegreeToPitch maps a scale degree to a MIDI pitch, degree 0 being the
// first element of seq in octave 4. Negative degrees walk down octaves.
func DegreeToPitch(degree int, seq []int) (int, error) {
	n := len(seq)
	if n == 0 {
		return 0, ErrEmptyScale
	}
	octave := floorDiv(degree, n) + 4
	return seq[degree-floorDiv(degree, n)*n] + 12*octave, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// RotateLeft moves to the next mode up: the next set degree above the root
// becomes the new bit 0. The root name is kept.
func (s Scale) RotateLeft() Scale {
	if s.Mask.Count() <= 1 {
		return s
	}
	next, ok := s.Mask.Next(0)
	if !ok {
		return s
	}
	s.Mask = s.Mask.Rotate(next)
	return s
}

// RotateRight undoes RotateLeft.
func (s Scale) RotateRight() Scale {
	if s.Mask.Count() <= 1 {
		return s
	}
	prev, ok := s.Mask.Prev(0)
	if !ok {
		return s
	}
	s.Mask = s.Mask.Rotate(prev)
	return s
}

func (s Scale) WithRoot(name string) (Scale, error) {
	root, err := PitchIndex(name)
	if err != nil {
		return s, err
	}
	s.Root = root
	return s, nil
}

// WithDecimal replaces the mask. A scale always contains its root, so even
// decimals are bumped to the next odd one.
func (s Scale) WithDecimal(n int) (Scale, error) {
	mask, err := pcset.FromDecimal(n)
	if err != nil {
		return s, fmt.Errorf("%w: %v", ErrInvalidScale, err)
	}
	s.Mask = mask.With(0)
	return s, nil
}

// WithDegree sets or clears the degree i semitones above the root. The root
// itself cannot be cleared.
func (s Scale) WithDegree(i int, on bool) Scale {
	if circ.Mod12(i) == 0 {
		return s
	}
	s.Mask = s.Mask.Set(i, on)
	return s
}

// Transpose moves the root by n semitones, keeping the intervals.
func (s Scale) Transpose(n int) Scale {
	s.Root = circ.Mod12(s.Root + n)
	return s
}
