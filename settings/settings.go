// Package settings loads, saves and checks melody settings.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/bits"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/musictools/expression"
	"github.com/jsphweid/musictools/midi"
	"github.com/jsphweid/musictools/model"
	"github.com/jsphweid/musictools/scale"
	"gopkg.in/yaml.v3"
)

// MaxExpressions is one per bank letter.
const MaxExpressions = 26

const (
	MinTempo       = 12
	MaxNumerator   = 128
	MaxDenominator = 128
)

var (
	ErrInvalidSettings = errors.New("invalid settings")
	ErrUnknownFormat   = errors.New("unknown settings file format")
)

// Default is what a new melody starts from.
func Default() model.Settings {
	return model.Settings{
		TimeSignature: model.TimeSignature{Numerator: 4, Denominator: 4},
		Tempo:         72,
		Length:        16,
		Scale:         "C-2741",
		Expressions:   []string{},
	}
}

func Encode(s model.Settings) (string, error) {
	if s.Expressions == nil {
		s.Expressions = []string{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func Decode(text string) (model.Settings, error) {
	var s model.Settings
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return s, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if s.Expressions == nil {
		s.Expressions = []string{}
	}
	return s, nil
}

func DecodeYAML(data []byte) (model.Settings, error) {
	var s model.Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if s.Expressions == nil {
		s.Expressions = []string{}
	}
	return s, nil
}

// LoadFile reads settings from a .json or .yaml file, or from the text
// embedded in a generated .mid file.
func LoadFile(path string) (model.Settings, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mid", ".midi":
		sm, err := midi.ReadFile(path)
		if err != nil {
			return model.Settings{}, err
		}
		text, err := midi.Text(sm)
		if err != nil {
			return model.Settings{}, err
		}
		return Decode(text)
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return model.Settings{}, err
		}
		return Decode(string(data))
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return model.Settings{}, err
		}
		return DecodeYAML(data)
	}
	return model.Settings{}, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// SaveFile writes settings as JSON.
func SaveFile(path string, s model.Settings) error {
	text, err := Encode(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0666)
}

// Validate lists every problem that keeps s from generating. An empty
// result means the settings are ready.
func Validate(s model.Settings) []model.FieldProblem {
	var problems []model.FieldProblem
	add := func(field, format string, args ...any) {
		problems = append(problems, model.FieldProblem{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	ts := s.TimeSignature
	if ts.Numerator < 1 || ts.Numerator > MaxNumerator {
		add("Time Signature", "numerator must be between 1 and %v", MaxNumerator)
	}
	if ts.Denominator < 1 || ts.Denominator > MaxDenominator || bits.OnesCount(uint(ts.Denominator)) != 1 {
		add("Time Signature", "denominator must be a power of two up to %v", MaxDenominator)
	}
	if s.Tempo < MinTempo {
		add("Tempo", "must be at least %v", MinTempo)
	}
	if s.Length < 0 {
		add("Length", "must not be negative")
	}

	if s.Scale == "" {
		add("Scale", "is unspecified")
	} else if _, err := scale.Parse(s.Scale); err != nil {
		add("Scale", "is invalid")
	}

	if len(s.Expressions) > MaxExpressions {
		add("Expressions", "at most %v expressions are allowed", MaxExpressions)
	}
	for i, e := range s.Expressions {
		if i >= MaxExpressions {
			break
		}
		if e == "" {
			continue
		}
		if err := expression.Check(e); err != nil {
			add(string(rune('A'+i)), "%v", err)
		}
	}

	formulas := []struct {
		field   string
		formula string
	}{
		{"Initial X", s.InitialX},
		{"New X", s.NewX},
		{"Pitch", s.Pitch},
		{"Duration", s.Duration},
		{"Rest", s.Rest},
		{"Velocity", s.Velocity},
	}
	for _, f := range formulas {
		if f.formula == "" {
			add(f.field, "is unspecified")
			continue
		}
		if err := expression.Check(f.formula); err != nil {
			add(f.field, "%v", err)
		}
	}

	return problems
}

// Names returns the bank letter of every expression, in order.
func Names(s model.Settings) []string {
	names := make([]string, 0, len(s.Expressions))
	for i := range s.Expressions {
		if i >= MaxExpressions {
			break
		}
		names = append(names, string(rune('A'+i)))
	}
	return names
}
