package chord

import (
	"errors"
	"fmt"

	"github.com/jsphweid/musictools/circ"
	"github.com/jsphweid/musictools/pcset"
)

const (
	Omit = "Omit"
	Both = "Both"
)

var ErrUnknownInterval = errors.New("unknown interval")

type Option struct {
	Name      string
	Semitones int
}

// Extension is a generic interval and its two specific qualities.
type Extension struct {
	Name    string
	Options [2]Option
}

var Extensions = []Extension{
	{"3rd", [2]Option{{"Minor", 3}, {"Major", 4}}},
	{"5th", [2]Option{{"Diminished", 6}, {"Perfect", 7}}},
	{"7th", [2]Option{{"Minor", 10}, {"Major", 11}}},
	{"9th", [2]Option{{"Minor", 1}, {"Major", 2}}},
	{"11th", [2]Option{{"Perfect", 5}, {"Augmented", 6}}},
	{"13th", [2]Option{{"Minor", 8}, {"Major", 9}}},
}

// Selections maps a generic interval name to Omit, an option name or Both.
type Selections map[string]string

func extension(generic string) (Extension, error) {
	for _, e := range Extensions {
		if e.Name == generic {
			return e, nil
		}
	}
	return Extension{}, fmt.Errorf("%w: %q", ErrUnknownInterval, generic)
}

func label(first, second bool, e Extension) string {
	switch {
	case first && second:
		return Both
	case first:
		return e.Options[0].Name
	case second:
		return e.Options[1].Name
	default:
		return Omit
	}
}

// Classify reads the quality of every generic interval of mask above root.
// The root bit itself never counts as an interval.
func Classify(mask pcset.Mask, root int) Selections {
	res := make(Selections, len(Extensions))
	if root != Unset {
		mask = mask.Without(root)
	}
	for _, e := range Extensions {
		first := root != Unset && mask.Has(root+e.Options[0].Semitones)
		second := root != Unset && mask.Has(root+e.Options[1].Semitones)
		res[e.Name] = label(first, second, e)
	}
	return res
}

// Offsets returns the semitones a single selection adds above the root.
func Offsets(generic, selection string) ([]int, error) {
	e, err := extension(generic)
	if err != nil {
		return nil, err
	}
	switch selection {
	case Omit:
		return nil, nil
	case Both:
		return []int{e.Options[0].Semitones, e.Options[1].Semitones}, nil
	}
	for _, o := range e.Options {
		if o.Name == selection {
			return []int{o.Semitones}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q is not a quality of %v", ErrUnknownInterval, selection, generic)
}

// ToMask builds the chord mask from selections. The root is always set and
// generic intervals missing from selections count as Omit.
func ToMask(root int, selections Selections) (pcset.Mask, error) {
	offsets := map[int]bool{0: true}
	for generic, selection := range selections {
		offs, err := Offsets(generic, selection)
		if err != nil {
			return 0, err
		}
		for _, o := range offs {
			offsets[o] = true
		}
	}

	var mask pcset.Mask
	for i := 0; i < pcset.Size; i++ {
		if offsets[circ.Mod12(i-root)] {
			mask = mask.With(i)
		}
	}
	return mask, nil
}

// Choices lists the labels a chooser for generic offers: Omit, each quality
// whose pitch lies in scaleMask, and Both when both do.
func Choices(scaleMask pcset.Mask, root int, generic string) ([]string, error) {
	e, err := extension(generic)
	if err != nil {
		return nil, err
	}
	return e.Choices(scaleMask, root), nil
}

// Choices is the chooser labels for e within scaleMask.
func (e Extension) Choices(scaleMask pcset.Mask, root int) []string {
	if root == Unset {
		root = 0
	}
	res := []string{Omit}
	for _, o := range e.Options {
		if scaleMask.Has(root + o.Semitones) {
			res = append(res, o.Name)
		}
	}
	if len(res) == 3 {
		res = append(res, Both)
	}
	return res
}
