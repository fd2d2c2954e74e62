package model

// NoteEvent is one generated note. Times are in beats, a beat being a
// quarter note.
type NoteEvent struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Pitch    uint8   `json:"pitch"`
	Velocity uint8   `json:"velocity"`
	IsRest   bool    `json:"is_rest,omitempty"`
}

// End is the beat at which the note stops sounding.
func (n NoteEvent) End() float64 {
	return n.Start + n.Duration
}
