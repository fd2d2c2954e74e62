package cmd

import (
	"fmt"
	"log/slog"

	"github.com/jsphweid/musictools/melody"
	"github.com/jsphweid/musictools/midi"
	"github.com/jsphweid/musictools/sample"
	"github.com/jsphweid/musictools/settings"
	"github.com/jsphweid/musictools/util"
	"github.com/jsphweid/musictools/view"
	"github.com/spf13/cobra"
)

var (
	inspectMax   int
	inspectNotes int
)

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntVar(&inspectMax, "max", 0, "inspect at most this many files")
	inspectCmd.Flags().IntVar(&inspectNotes, "notes", 0, "also print the first notes of each file")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file-or-dir>",
	Short: "Prints the settings embedded in generated midi files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := util.GatherAllMidiPaths(args[0], inspectMax)
		if err != nil {
			return err
		}
		var failed int
		for _, path := range paths {
			if err := inspect(path); err != nil {
				slog.Warn("could not inspect", "path", path, "error", err)
				failed++
			}
		}
		fmt.Printf("Inspected %v files, %v failed\n", len(paths), failed)
		return nil
	},
}

func inspect(path string) error {
	sm, err := midi.ReadFile(path)
	if err != nil {
		return err
	}
	text, err := midi.Text(sm)
	if err != nil {
		return err
	}
	s, err := settings.Decode(text)
	if err != nil {
		return err
	}
	notes := midi.Notes(sm)

	fmt.Printf("%v\n", path)
	fmt.Printf("  scale: %v  tempo: %v (file %.2f)  time: %v/%v  length: %v\n",
		s.Scale, s.Tempo, midi.Tempo(sm), s.TimeSignature.Numerator, s.TimeSignature.Denominator, s.Length)
	for i, name := range settings.Names(s) {
		fmt.Printf("  %v = %v\n", name, s.Expressions[i])
	}
	fmt.Printf("  initial x: %v  new x: %v\n", s.InitialX, s.NewX)
	fmt.Printf("  pitch: %v  duration: %v  rest: %v  velocity: %v\n", s.Pitch, s.Duration, s.Rest, s.Velocity)
	fmt.Printf("  notes: %v  beats: %v\n", len(notes), melody.Beats(notes))
	if inspectNotes > 0 {
		fmt.Println(view.RenderEvents(sample.Excerpt(notes, 0, inspectNotes)))
	}
	return nil
}
