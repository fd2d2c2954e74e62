package explorer

import (
	"github.com/jsphweid/musictools/chord"
	"github.com/jsphweid/musictools/pcset"
	"github.com/jsphweid/musictools/scale"
)

// Checkbox is one pitch toggle. Offset is semitones above the scale root.
type Checkbox struct {
	Offset  int    `json:"offset"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
	Enabled bool   `json:"enabled"`
}

type ScaleView struct {
	Checkboxes []Checkbox `json:"checkboxes"`
	Root       string     `json:"root"`
	Decimal    int        `json:"decimal"`
	Binary     string     `json:"binary"`
	Canonical  string     `json:"canonical"`
	// Actionable is false for an empty mask, which disables play, copy and
	// rotate
	Actionable bool `json:"actionable"`
}

type IntervalView struct {
	Name     string   `json:"name"`
	Choices  []string `json:"choices"`
	Selected string   `json:"selected"`
}

type ChordView struct {
	// Checkboxes only cover pitches in the scale.
	Checkboxes  []Checkbox     `json:"checkboxes"`
	RootOptions []string       `json:"root_options"`
	Root        string         `json:"root"`
	Decimal     int            `json:"decimal"`
	Canonical   string         `json:"canonical"`
	Intervals   []IntervalView `json:"intervals"`
	Actionable  bool           `json:"actionable"`
}

type Views struct {
	Scale ScaleView `json:"scale"`
	Chord ChordView `json:"chord"`
}

// DeriveViews computes every control value from the canonical state.
func DeriveViews(st State) Views {
	return Views{Scale: scaleView(st.Scale), Chord: chordView(st)}
}

func scaleView(s scale.Scale) ScaleView {
	v := ScaleView{
		Root:       s.RootName(),
		Decimal:    s.Mask.Decimal(),
		Binary:     s.Mask.Binary(),
		Canonical:  s.String(),
		Actionable: !s.Mask.Empty(),
	}
	for i := 0; i < pcset.Size; i++ {
		v.Checkboxes = append(v.Checkboxes, Checkbox{
			Offset:  i,
			Label:   scale.PitchName(s.Root + i),
			Checked: s.Mask.Has(i),
			Enabled: i != 0,
		})
	}
	return v
}

func chordView(st State) ChordView {
	s, c := st.Scale, st.Chord
	v := ChordView{
		RootOptions: []string{},
		Decimal:     c.Decimal(),
		Actionable:  !c.IsEmpty(),
	}
	for _, i := range s.Mask.Indexes() {
		v.Checkboxes = append(v.Checkboxes, Checkbox{
			Offset:  i,
			Label:   scale.PitchName(s.Root + i),
			Checked: c.Mask.Has(i),
			Enabled: i != c.Root,
		})
		if c.Mask.Has(i) {
			v.RootOptions = append(v.RootOptions, scale.PitchName(s.Root+i))
		}
	}
	if c.Root != chord.Unset {
		v.Root = scale.PitchName(s.Root + c.Root)
		v.Canonical = c.Format(s.Root)
	}

	selections := chord.Classify(c.Mask, c.Root)
	for _, e := range chord.Extensions {
		v.Intervals = append(v.Intervals, IntervalView{
			Name:     e.Name,
			Choices:  e.Choices(s.Mask, c.Root),
			Selected: selections[e.Name],
		})
	}
	return v
}
