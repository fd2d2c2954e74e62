// Package midi writes note events to Standard MIDI Files and reads back the
// text carried inside them.
package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/jsphweid/musictools/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// TicksPerQuarter is the resolution every written file uses.
const TicksPerQuarter = 960

var (
	ErrNoText      = errors.New("midi file carries no text event")
	ErrBadMeter    = errors.New("invalid time signature")
	ErrInvalidFile = errors.New("invalid midi file")
)

// Song is everything Write needs. Events with IsRest set are skipped.
type Song struct {
	Tempo       float64
	Numerator   int
	Denominator int
	Text        string
	Events      []model.NoteEvent
}

type tickEvent struct {
	tick uint32
	on   bool
	key  uint8
	vel  uint8
}

func toTicks(beats float64) uint32 {
	return uint32(math.Round(beats * TicksPerQuarter))
}

// Write lays the song out as a two track file: track 0 holds the meter and
// tempo, track 1 starts with the text event followed by the notes. Rests and
// notes with velocity 0 are not written.
func Write(w io.Writer, song Song) error {
	if song.Numerator < 1 || song.Numerator > 255 || song.Denominator < 1 || song.Denominator > 255 {
		return fmt.Errorf("%w: %v/%v", ErrBadMeter, song.Numerator, song.Denominator)
	}

	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(TicksPerQuarter)

	var track0 smf.Track
	track0.Add(0, smf.MetaMeter(uint8(song.Numerator), uint8(song.Denominator)))
	track0.Add(0, smf.MetaTempo(song.Tempo))
	track0.Close(0)
	if err := sm.Add(track0); err != nil {
		return fmt.Errorf("error adding tempo track: %w", err)
	}

	var evts []tickEvent
	for _, n := range song.Events {
		// a note on with velocity 0 reads back as a note off, so silent notes
		// are left out like rests
		if n.IsRest || n.Duration <= 0 || n.Velocity == 0 {
			continue
		}
		start := toTicks(n.Start)
		evts = append(evts,
			tickEvent{tick: start, on: true, key: n.Pitch, vel: n.Velocity},
			tickEvent{tick: start + toTicks(n.Duration), key: n.Pitch},
		)
	}
	// note offs sort ahead of note ons sharing a tick, so back to back notes
	// on one key do not cut each other short
	sort.SliceStable(evts, func(i, j int) bool {
		if evts[i].tick != evts[j].tick {
			return evts[i].tick < evts[j].tick
		}
		return !evts[i].on && evts[j].on
	})

	var track1 smf.Track
	track1.Add(0, smf.MetaText(song.Text))
	var last uint32
	for _, e := range evts {
		delta := e.tick - last
		last = e.tick
		if e.on {
			track1.Add(delta, midi.NoteOn(0, e.key, e.vel))
		} else {
			track1.Add(delta, midi.NoteOff(0, e.key))
		}
	}
	track1.Close(0)
	if err := sm.Add(track1); err != nil {
		return fmt.Errorf("error adding note track: %w", err)
	}

	if _, err := sm.WriteTo(w); err != nil {
		return fmt.Errorf("error writing midi file: %w", err)
	}
	return nil
}

func WriteFile(path string, song Song) error {
	var buf bytes.Buffer
	if err := Write(&buf, song); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0666)
}

// Read parses a whole file. gomidi can panic on malformed input, which is
// turned into ErrInvalidFile.
func Read(r io.Reader) (s *smf.SMF, e error) {
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = fmt.Errorf("%w: %v", ErrInvalidFile, r)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	return res, nil
}

func ReadFile(path string) (*smf.SMF, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading midi file: %w", err)
	}
	return Read(bytes.NewReader(dat))
}

// Text returns the first text event of track 1.
func Text(sm *smf.SMF) (string, error) {
	if len(sm.Tracks) < 2 {
		return "", ErrNoText
	}
	for _, evt := range sm.Tracks[1] {
		var text string
		if evt.Message.GetMetaText(&text) {
			return text, nil
		}
	}
	return "", ErrNoText
}

func ReadText(r io.Reader) (string, error) {
	sm, err := Read(r)
	if err != nil {
		return "", err
	}
	return Text(sm)
}

// Notes collects the sounding notes of every track, in beats.
func Notes(sm *smf.SMF) []model.NoteEvent {
	resolution := float64(TicksPerQuarter)
	if mt, ok := sm.TimeFormat.(smf.MetricTicks); ok && mt > 0 {
		resolution = float64(mt)
	}

	var res []model.NoteEvent
	for _, track := range sm.Tracks {
		var absTicks uint64
		open := map[uint8]int{}
		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			msg := midi.Message(evt.Message)
			var ch, key, vel uint8
			switch {
			case msg.GetNoteStart(&ch, &key, &vel):
				if i, ok := open[key]; ok {
					res[i].Duration = float64(absTicks)/resolution - res[i].Start
				}
				open[key] = len(res)
				res = append(res, model.NoteEvent{
					Start:    float64(absTicks) / resolution,
					Pitch:    key,
					Velocity: vel,
				})
			case msg.GetNoteEnd(&ch, &key):
				if i, ok := open[key]; ok {
					res[i].Duration = float64(absTicks)/resolution - res[i].Start
					delete(open, key)
				}
			}
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Start < res[j].Start })
	return res
}

// Tempo is the first tempo change, or 120 when the file has none.
func Tempo(sm *smf.SMF) float64 {
	if changes := sm.TempoChanges(); len(changes) > 0 {
		return changes[0].BPM
	}
	return 120
}
