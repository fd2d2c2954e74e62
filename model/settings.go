package model

type TimeSignature struct {
	Numerator   int `json:"numerator" yaml:"numerator"`
	Denominator int `json:"denominator" yaml:"denominator"`
}

// Settings are everything needed to regenerate a melody. They are embedded
// as JSON text in every generated MIDI file, in this field order.
type Settings struct {
	TimeSignature TimeSignature `json:"time_signature" yaml:"time_signature"`
	Tempo         int           `json:"tempo" yaml:"tempo"`
	Length        float64       `json:"length" yaml:"length"`
	Scale         string        `json:"scale" yaml:"scale"`
	Expressions   []string      `json:"expressions" yaml:"expressions"`
	InitialX      string        `json:"initial_x" yaml:"initial_x"`
	NewX          string        `json:"new_x" yaml:"new_x"`
	Pitch         string        `json:"pitch" yaml:"pitch"`
	Duration      string        `json:"duration" yaml:"duration"`
	Rest          string        `json:"rest" yaml:"rest"`
	Velocity      string        `json:"velocity" yaml:"velocity"`
}
