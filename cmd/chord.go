package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/musictools/chord"
	"github.com/jsphweid/musictools/explorer"
	"github.com/jsphweid/musictools/midi"
	"github.com/jsphweid/musictools/sample"
	"github.com/jsphweid/musictools/scale"
	"github.com/jsphweid/musictools/view"
	"github.com/spf13/cobra"
)

var (
	chordRoot      string
	chordDegrees   []int
	chordIntervals []string
	chordRotations []string
	chordPreview   string
)

func init() {
	rootCmd.AddCommand(chordCmd)
	chordCmd.Flags().StringVar(&chordRoot, "root", "", "chord root by pitch name, must be in the chord")
	chordCmd.Flags().IntSliceVar(&chordDegrees, "degree", nil, "add the scale pitch this many semitones above the scale root")
	chordCmd.Flags().StringArrayVar(&chordIntervals, "interval", nil, "set an interval quality, e.g. 3rd=Minor or 9th=Omit (repeatable)")
	chordCmd.Flags().StringSliceVar(&chordRotations, "rotate", nil, "move the chord root, left or right (repeatable)")
	chordCmd.Flags().StringVar(&chordPreview, "preview", "", "write the chord to this midi file")
}

// chordEdits orders edits the way a user builds a chord: pitches, root,
// qualities, then inversions.
func chordEdits() ([]explorer.Edit, error) {
	var edits []explorer.Edit
	for _, d := range chordDegrees {
		edits = append(edits, explorer.ChordDegree{Degree: d, On: true})
	}
	if chordRoot != "" {
		edits = append(edits, explorer.ChordRoot{Name: chordRoot})
	}
	for _, iv := range chordIntervals {
		name, quality, ok := strings.Cut(iv, "=")
		if !ok {
			return nil, fmt.Errorf("interval %q is not of the form 3rd=Major", iv)
		}
		edits = append(edits, explorer.ChordInterval{Interval: name, Quality: quality})
	}
	for _, r := range chordRotations {
		d, err := explorer.ParseDirection(r)
		if err != nil {
			return nil, err
		}
		edits = append(edits, explorer.ChordRotate{Direction: d})
	}
	return edits, nil
}

var chordCmd = &cobra.Command{
	Use:   "chord <scale>",
	Short: "Builds a chord inside a scale",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := scale.Parse(args[0])
		if err != nil {
			return err
		}
		edits, err := chordEdits()
		if err != nil {
			return err
		}

		sess := explorer.NewSession(explorer.New(s, chord.Empty()))
		for _, e := range edits {
			sess.Mark(e)
		}
		views, err := sess.Sync()
		if err != nil {
			return err
		}

		fmt.Println(view.RenderViews(views))

		if chordPreview != "" {
			st := sess.State()
			if st.Chord.IsEmpty() {
				return fmt.Errorf("chord is empty, nothing to preview")
			}
			if err := midi.WriteFile(chordPreview, sample.Chord(st.Scale, st.Chord)); err != nil {
				return err
			}
			fmt.Printf("Wrote preview to %v\n", chordPreview)
		}
		return nil
	},
}
