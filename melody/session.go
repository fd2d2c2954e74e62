package melody

import (
	"errors"
	"fmt"
	"io"

	"github.com/jsphweid/musictools/expression"
	"github.com/jsphweid/musictools/midi"
	"github.com/jsphweid/musictools/model"
	"github.com/jsphweid/musictools/scale"
	"github.com/jsphweid/musictools/settings"
)

var ErrNotReady = errors.New("settings are not ready")

// NotReadyError carries the problems Validate found.
type NotReadyError struct {
	Problems []model.FieldProblem
}

func (e *NotReadyError) Error() string {
	if len(e.Problems) == 0 {
		return ErrNotReady.Error()
	}
	p := e.Problems[0]
	if len(e.Problems) == 1 {
		return fmt.Sprintf("%v: %v %v", ErrNotReady, p.Field, p.Message)
	}
	return fmt.Sprintf("%v: %v %v (and %v more)", ErrNotReady, p.Field, p.Message, len(e.Problems)-1)
}

func (e *NotReadyError) Is(target error) bool {
	return target == ErrNotReady
}

// Session is one melody: its settings and the bank its expressions live in.
type Session struct {
	Settings model.Settings
	bank     *expression.Bank
	opts     []Option
}

func NewSession(s model.Settings, opts ...Option) *Session {
	bank := expression.NewBank()
	names := settings.Names(s)
	for i, name := range names {
		// names are always valid bank letters
		_ = bank.Store(name, s.Expressions[i])
	}
	return &Session{Settings: s, bank: bank, opts: opts}
}

func (s *Session) Bank() *expression.Bank {
	return s.bank
}

func (s *Session) Validate() []model.FieldProblem {
	return settings.Validate(s.Settings)
}

func (s *Session) Formulas() Formulas {
	return Formulas{
		InitialX: s.Settings.InitialX,
		NewX:     s.Settings.NewX,
		Pitch:    s.Settings.Pitch,
		Duration: s.Settings.Duration,
		Rest:     s.Settings.Rest,
		Velocity: s.Settings.Velocity,
	}
}

// Generate refuses settings that fail Validate with a *NotReadyError.
func (s *Session) Generate() ([]model.NoteEvent, error) {
	if problems := s.Validate(); len(problems) > 0 {
		return nil, &NotReadyError{Problems: problems}
	}
	sc, err := scale.Parse(s.Settings.Scale)
	if err != nil {
		return nil, err
	}
	return Generate(s.bank, sc.PitchClasses(), s.Formulas(), s.Settings.Length, s.opts...)
}

// Render generates the melody and writes it as a MIDI file carrying the
// encoded settings, so the file can be loaded back later.
func (s *Session) Render(w io.Writer) ([]model.NoteEvent, error) {
	events, err := s.Generate()
	if err != nil {
		return nil, err
	}
	text, err := settings.Encode(s.Settings)
	if err != nil {
		return nil, err
	}
	song := midi.Song{
		Tempo:       float64(s.Settings.Tempo),
		Numerator:   s.Settings.TimeSignature.Numerator,
		Denominator: s.Settings.TimeSignature.Denominator,
		Text:        text,
		Events:      events,
	}
	if err := midi.Write(w, song); err != nil {
		return nil, err
	}
	return events, nil
}

// Beats is where the last event ends.
func Beats(events []model.NoteEvent) float64 {
	var end float64
	for _, e := range events {
		end = max(end, e.End())
	}
	return end
}
