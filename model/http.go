package model

type ErrorResponse struct {
	Error string `json:"detail"`
}

// FieldProblem is a validation message for one settings field.
type FieldProblem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResponse struct {
	Error    string         `json:"detail"`
	Problems []FieldProblem `json:"problems"`
}

// ExplorerEdit is one user action on the scale/chord explorer. Only the
// fields relevant to Kind are read.
type ExplorerEdit struct {
	Kind      string `json:"kind"`
	Degree    int    `json:"degree,omitempty"`
	On        bool   `json:"on,omitempty"`
	Root      string `json:"root,omitempty"`
	Decimal   int    `json:"decimal,omitempty"`
	Direction string `json:"direction,omitempty"`
	Interval  string `json:"interval,omitempty"`
	Quality   string `json:"quality,omitempty"`
}

type ExplorerRequest struct {
	Scale     string         `json:"scale"`
	ChordRoot *int           `json:"chord_root,omitempty"`
	ChordMask int            `json:"chord_mask,omitempty"`
	Edits     []ExplorerEdit `json:"edits"`
}

type MelodyResponse struct {
	ID     string      `json:"id"`
	Events []NoteEvent `json:"events"`
	Beats  float64     `json:"beats"`
}

type SampleRequest struct {
	Expressions []string `json:"expressions"`
	From        float64  `json:"from"`
	To          float64  `json:"to"`
	Points      int      `json:"points"`
}

type SampleSeries struct {
	Name   string       `json:"name"`
	Points [][2]float64 `json:"points"`
	Error  string       `json:"error,omitempty"`
}

type SampleResponse struct {
	Series []SampleSeries `json:"series"`
}
