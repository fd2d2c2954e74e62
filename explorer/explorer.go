// Package explorer is the scale and chord explorer: a canonical scale and
// chord pair, the edits a user can make to it, and the views derived from it.
package explorer

import (
	"errors"
	"fmt"

	"github.com/jsphweid/musictools/chord"
	"github.com/jsphweid/musictools/circ"
	"github.com/jsphweid/musictools/model"
	"github.com/jsphweid/musictools/pcset"
	"github.com/jsphweid/musictools/scale"
)

var (
	ErrUnknownEdit  = errors.New("unknown edit")
	ErrBadDirection = errors.New("direction must be left or right")
	ErrBadQuality   = errors.New("quality is not available")
)

// State is the only thing the explorer stores. The chord is always masked
// to the scale.
type State struct {
	Scale scale.Scale
	Chord chord.Chord
}

func Default() State {
	return State{Scale: scale.MustParse("C-2741"), Chord: chord.Empty()}
}

// New builds a state from a scale and an arbitrary chord, masking the chord
// into the scale.
func New(s scale.Scale, c chord.Chord) State {
	return State{Scale: s, Chord: c.MaskTo(s.Mask)}
}

type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Left, Right:
		return Direction(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrBadDirection, s)
}

// Kind names the control an edit comes from.
type Kind string

const (
	KindScaleDegree   Kind = "scale_degree"
	KindScaleRoot     Kind = "scale_root"
	KindScaleDecimal  Kind = "scale_decimal"
	KindScaleRotate   Kind = "scale_rotate"
	KindChordDegree   Kind = "chord_degree"
	KindChordRoot     Kind = "chord_root"
	KindChordInterval Kind = "chord_interval"
	KindChordRotate   Kind = "chord_rotate"
)

// Edit is one user action.
type Edit interface {
	Kind() Kind
	apply(State) (State, error)
}

// ScaleDegree toggles the scale checkbox Degree semitones above the root.
type ScaleDegree struct {
	Degree int
	On     bool
}

type ScaleRoot struct {
	Name string
}

type ScaleDecimal struct {
	Decimal int
}

type ScaleRotate struct {
	Direction Direction
}

// ChordDegree toggles the chord checkbox Degree semitones above the scale
// root.
type ChordDegree struct {
	Degree int
	On     bool
}

// ChordRoot picks the chord root by pitch name.
type ChordRoot struct {
	Name string
}

// ChordInterval sets the quality of one generic interval, e.g. "7th" to
// "Minor".
type ChordInterval struct {
	Interval string
	Quality  string
}

type ChordRotate struct {
	Direction Direction
}

func (ScaleDegree) Kind() Kind   { return KindScaleDegree }
func (ScaleRoot) Kind() Kind     { return KindScaleRoot }
func (ScaleDecimal) Kind() Kind  { return KindScaleDecimal }
func (ScaleRotate) Kind() Kind   { return KindScaleRotate }
func (ChordDegree) Kind() Kind   { return KindChordDegree }
func (ChordRoot) Kind() Kind     { return KindChordRoot }
func (ChordInterval) Kind() Kind { return KindChordInterval }
func (ChordRotate) Kind() Kind   { return KindChordRotate }

// Apply returns the state after e. st is left untouched, also on error.
func Apply(st State, e Edit) (State, error) {
	next, err := e.apply(st)
	if err != nil {
		return st, fmt.Errorf("%v: %w", e.Kind(), err)
	}
	return next, nil
}

func (st State) withScale(s scale.Scale) State {
	return New(s, st.Chord)
}

func (e ScaleDegree) apply(st State) (State, error) {
	return st.withScale(st.Scale.WithDegree(e.Degree, e.On)), nil
}

func (e ScaleRoot) apply(st State) (State, error) {
	s, err := st.Scale.WithRoot(e.Name)
	if err != nil {
		return st, err
	}
	return st.withScale(s), nil
}

func (e ScaleDecimal) apply(st State) (State, error) {
	s, err := st.Scale.WithDecimal(e.Decimal)
	if err != nil {
		return st, err
	}
	return st.withScale(s), nil
}

func (e ScaleRotate) apply(st State) (State, error) {
	switch e.Direction {
	case Left:
		return st.withScale(st.Scale.RotateLeft()), nil
	case Right:
		return st.withScale(st.Scale.RotateRight()), nil
	}
	return st, fmt.Errorf("%w: %q", ErrBadDirection, e.Direction)
}

func (e ChordDegree) apply(st State) (State, error) {
	if !st.Scale.Mask.Has(e.Degree) {
		return st, fmt.Errorf("%w: degree %v", chord.ErrNotInScale, e.Degree)
	}
	st.Chord = st.Chord.WithDegree(e.Degree, e.On)
	return st, nil
}

func (e ChordRoot) apply(st State) (State, error) {
	pitch, err := scale.PitchIndex(e.Name)
	if err != nil {
		return st, err
	}
	offset := circ.MustSub(pitch, st.Scale.Root, 0, pcset.Size)
	c, err := st.Chord.WithRoot(offset)
	if err != nil {
		return st, err
	}
	st.Chord = c
	return st, nil
}

func (e ChordInterval) apply(st State) (State, error) {
	root := st.Chord.Root
	if root == chord.Unset {
		root = 0
	}
	choices, err := chord.Choices(st.Scale.Mask, root, e.Interval)
	if err != nil {
		return st, err
	}
	if !contains(choices, e.Quality) {
		return st, fmt.Errorf("%w: %v %v in %v", ErrBadQuality, e.Quality, e.Interval, st.Scale)
	}

	selections := chord.Classify(st.Chord.Mask, st.Chord.Root)
	selections[e.Interval] = e.Quality
	mask, err := chord.ToMask(root, selections)
	if err != nil {
		return st, err
	}
	return New(st.Scale, chord.Chord{Root: root, Mask: mask}), nil
}

func (e ChordRotate) apply(st State) (State, error) {
	switch e.Direction {
	case Left:
		st.Chord = st.Chord.RotateLeft()
	case Right:
		st.Chord = st.Chord.RotateRight()
	default:
		return st, fmt.Errorf("%w: %q", ErrBadDirection, e.Direction)
	}
	return st, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// FromRequest converts the wire form of an edit.
func FromRequest(e model.ExplorerEdit) (Edit, error) {
	switch Kind(e.Kind) {
	case KindScaleDegree:
		return ScaleDegree{Degree: e.Degree, On: e.On}, nil
	case KindScaleRoot:
		return ScaleRoot{Name: e.Root}, nil
	case KindScaleDecimal:
		return ScaleDecimal{Decimal: e.Decimal}, nil
	case KindScaleRotate:
		d, err := ParseDirection(e.Direction)
		if err != nil {
			return nil, err
		}
		return ScaleRotate{Direction: d}, nil
	case KindChordDegree:
		return ChordDegree{Degree: e.Degree, On: e.On}, nil
	case KindChordRoot:
		return ChordRoot{Name: e.Root}, nil
	case KindChordInterval:
		return ChordInterval{Interval: e.Interval, Quality: e.Quality}, nil
	case KindChordRotate:
		d, err := ParseDirection(e.Direction)
		if err != nil {
			return nil, err
		}
		return ChordRotate{Direction: d}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEdit, e.Kind)
}
