// Package sample builds short audition songs for scales, chords and
// existing melodies.
package sample

import (
	"github.com/jsphweid/musictools/chord"
	"github.com/jsphweid/musictools/midi"
	"github.com/jsphweid/musictools/model"
	"github.com/jsphweid/musictools/scale"
)

const (
	// BasePitch is A3, where previews of an A rooted scale start.
	BasePitch = 57
	Tempo     = 72
	Velocity  = 100

	ChordBeats = 2
)

func song(events []model.NoteEvent) midi.Song {
	return midi.Song{Tempo: Tempo, Numerator: 4, Denominator: 4, Events: events}
}

// Scale plays the scale upwards, one beat per pitch.
func Scale(s scale.Scale) midi.Song {
	events := []model.NoteEvent{}
	for i, offset := range s.Mask.Indexes() {
		events = append(events, model.NoteEvent{
			Start:    float64(i),
			Duration: 1,
			Pitch:    uint8(BasePitch + s.Root + offset),
			Velocity: Velocity,
		})
	}
	return song(events)
}

// Chord plays every chord pitch at once, voiced upwards from the chord
// root.
func Chord(s scale.Scale, c chord.Chord) midi.Song {
	events := []model.NoteEvent{}
	for _, offset := range c.Intervals() {
		events = append(events, model.NoteEvent{
			Duration: ChordBeats,
			Pitch:    uint8(BasePitch + s.Root + c.Root + offset),
			Velocity: Velocity,
		})
	}
	return song(events)
}

// Excerpt takes up to maxNotes sounding notes starting at or after
// fromBeat, shifted so the first one starts at 0.
func Excerpt(events []model.NoteEvent, fromBeat float64, maxNotes int) []model.NoteEvent {
	res := []model.NoteEvent{}
	var offset float64
	for _, e := range events {
		if e.IsRest || e.Start < fromBeat {
			continue
		}
		if len(res) == 0 {
			offset = e.Start
		}
		e.Start -= offset
		res = append(res, e)
		if len(res) >= maxNotes {
			break
		}
	}
	return res
}
