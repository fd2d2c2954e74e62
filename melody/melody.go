// Package melody turns five formulas into a sequence of notes.
//
// Starting from an initial x, every step evaluates the pitch, duration, rest
// and velocity formulas at x, emits a note, then moves x to the value of the
// new-x formula. Steps continue until the accumulated duration reaches the
// requested length.
package melody

import (
	"fmt"
	"math"

	"github.com/jsphweid/musictools/expression"
	"github.com/jsphweid/musictools/model"
	"github.com/jsphweid/musictools/scale"
	"github.com/jsphweid/musictools/util"
)

// DefaultMaxSteps bounds a generation whose duration formula never lets
// time advance.
const DefaultMaxSteps = 100000

const (
	maxPitch    = 127
	maxVelocity = 127
)

type Formulas struct {
	InitialX string
	NewX     string
	Pitch    string
	Duration string
	Rest     string
	Velocity string
}

type options struct {
	maxSteps  int
	keepRests bool
}

type Option func(*options)

// WithMaxSteps changes the step limit. Values below 1 mean DefaultMaxSteps.
func WithMaxSteps(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = DefaultMaxSteps
		}
		o.maxSteps = n
	}
}

// WithRests emits rests as events with IsRest set instead of dropping them.
func WithRests() Option {
	return func(o *options) {
		o.keepRests = true
	}
}

// Quantize rounds a positive duration to the nearest power of two in log
// space, halves rounding to even: 3 becomes 4, 0.7 becomes 0.5.
func Quantize(duration float64) float64 {
	return math.Pow(2, math.RoundToEven(math.Log2(duration)))
}

// Generate runs the formulas until lengthBeats is reached. pitchClasses is
// the ordered scale the pitch formula indexes into, see
// scale.Scale.PitchClasses. Any failing step aborts the whole generation.
func Generate(bank *expression.Bank, pitchClasses []int, f Formulas, lengthBeats float64, opts ...Option) ([]model.NoteEvent, error) {
	o := options{maxSteps: DefaultMaxSteps}
	for _, opt := range opts {
		opt(&o)
	}

	if len(pitchClasses) == 0 {
		return nil, scale.ErrEmptyScale
	}

	x, err := bank.Evaluate(f.InitialX)
	if err != nil {
		return nil, &FieldError{Field: FieldInitialX, Err: err}
	}

	events := []model.NoteEvent{}
	var time float64
	for n := 0; time < lengthBeats; n++ {
		if n >= o.maxSteps {
			return nil, fmt.Errorf("%w: %v steps reached %v of %v beats", ErrGenerationTimeout, o.maxSteps, time, lengthBeats)
		}

		s, err := evaluateStep(bank, f, x)
		if err != nil {
			return nil, err
		}

		duration := math.Max(0, s.duration)
		if duration > 0 {
			duration = Quantize(duration)
			if math.IsInf(duration, 0) {
				return nil, &FieldError{Field: FieldDuration, X: x, HasX: true, Err: expression.ErrRange}
			}
			switch {
			case !s.isRest:
				pitch, err := scale.DegreeToPitch(s.pitch, pitchClasses)
				if err != nil {
					return nil, &FieldError{Field: FieldPitch, X: x, HasX: true, Err: err}
				}
				events = append(events, model.NoteEvent{
					Start:    time,
					Duration: duration,
					Pitch:    uint8(util.Clamp(pitch, 0, maxPitch)),
					Velocity: uint8(util.Clamp(s.velocity, 0, maxVelocity)),
				})
			case o.keepRests:
				events = append(events, model.NoteEvent{Start: time, Duration: duration, IsRest: true})
			}
		}

		x = s.newX
		time += duration
	}
	return events, nil
}

type step struct {
	newX     float64
	pitch    int
	duration float64
	isRest   bool
	velocity int
}

func evaluateStep(bank *expression.Bank, f Formulas, x float64) (step, error) {
	var s step
	var err error

	if s.newX, err = bank.EvaluateAt(f.NewX, x); err != nil {
		return s, &FieldError{Field: FieldNewX, X: x, HasX: true, Err: err}
	}

	pitch, err := bank.EvaluateAt(f.Pitch, x)
	if err == nil {
		s.pitch, err = toInt(pitch)
	}
	if err != nil {
		return s, &FieldError{Field: FieldPitch, X: x, HasX: true, Err: err}
	}

	if s.duration, err = bank.EvaluateAt(f.Duration, x); err != nil {
		return s, &FieldError{Field: FieldDuration, X: x, HasX: true, Err: err}
	}
	if math.IsNaN(s.duration) {
		return s, &FieldError{Field: FieldDuration, X: x, HasX: true, Err: expression.ErrDomain}
	}
	if math.IsInf(s.duration, 1) {
		return s, &FieldError{Field: FieldDuration, X: x, HasX: true, Err: expression.ErrRange}
	}

	rest, err := bank.EvaluateAt(f.Rest, x)
	if err != nil {
		return s, &FieldError{Field: FieldRest, X: x, HasX: true, Err: err}
	}
	s.isRest = rest != 0

	velocity, err := bank.EvaluateAt(f.Velocity, x)
	if err == nil {
		s.velocity, err = toInt(velocity)
	}
	if err != nil {
		return s, &FieldError{Field: FieldVelocity, X: x, HasX: true, Err: err}
	}

	return s, nil
}

// saturation bounds truncated values. Anything past it lands outside the
// MIDI range anyway and is clamped with the rest.
const saturation = 1 << 24

// toInt truncates toward zero and refuses values that have no integer.
func toInt(v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: cannot convert %v to an integer", expression.ErrDomain, v)
	}
	return int(math.Max(-saturation, math.Min(saturation, math.Trunc(v)))), nil
}
