package cmd

import (
	"fmt"

	"github.com/jsphweid/musictools/chord"
	"github.com/jsphweid/musictools/explorer"
	"github.com/jsphweid/musictools/midi"
	"github.com/jsphweid/musictools/sample"
	"github.com/jsphweid/musictools/scale"
	"github.com/jsphweid/musictools/view"
	"github.com/spf13/cobra"
)

var (
	scaleRotations []string
	scaleDegrees   []int
	scaleOff       []int
	scalePreview   string
	scaleTranspose int
)

func init() {
	rootCmd.AddCommand(scaleCmd)
	scaleCmd.Flags().StringSliceVar(&scaleRotations, "rotate", nil, "rotate the mode, left or right (repeatable)")
	scaleCmd.Flags().IntSliceVar(&scaleDegrees, "add", nil, "add the degree this many semitones above the root")
	scaleCmd.Flags().IntSliceVar(&scaleOff, "remove", nil, "remove the degree this many semitones above the root")
	scaleCmd.Flags().IntVar(&scaleTranspose, "transpose", 0, "move the root by this many semitones")
	scaleCmd.Flags().StringVar(&scalePreview, "preview", "", "write an ascending preview of the scale to this midi file")
}

var scaleCmd = &cobra.Command{
	Use:   "scale <scale>",
	Short: "Shows a scale like C-2741",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := scale.Parse(args[0])
		if err != nil {
			return err
		}

		sess := explorer.NewSession(explorer.New(s.Transpose(scaleTranspose), chord.Empty()))
		for _, d := range scaleDegrees {
			sess.Mark(explorer.ScaleDegree{Degree: d, On: true})
		}
		for _, d := range scaleOff {
			sess.Mark(explorer.ScaleDegree{Degree: d, On: false})
		}
		for _, r := range scaleRotations {
			d, err := explorer.ParseDirection(r)
			if err != nil {
				return err
			}
			sess.Mark(explorer.ScaleRotate{Direction: d})
		}
		views, err := sess.Sync()
		if err != nil {
			return err
		}

		fmt.Println(view.RenderViews(views))

		if scalePreview != "" {
			if err := midi.WriteFile(scalePreview, sample.Scale(sess.State().Scale)); err != nil {
				return err
			}
			fmt.Printf("Wrote preview to %v\n", scalePreview)
		}
		return nil
	},
}
