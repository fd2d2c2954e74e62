package cmd

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/musictools/constants"
	"github.com/jsphweid/musictools/melody"
	"github.com/jsphweid/musictools/model"
	"github.com/jsphweid/musictools/settings"
	"github.com/jsphweid/musictools/util"
	"github.com/jsphweid/musictools/view"
	"github.com/spf13/cobra"
)

var (
	generateOut    string
	generateEvents bool
	maxSteps       int
)

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&generateOut, "output", "o", "", "midi file to write (default: a new file in MUSICTOOLS_OUT_DIR)")
	generateCmd.Flags().BoolVar(&generateEvents, "events", false, "print the generated notes")
	generateCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "give up after this many notes (default: MUSICTOOLS_MAX_STEPS or 100000)")
}

func stepLimit() int {
	if maxSteps > 0 {
		return maxSteps
	}
	return constants.GetMaxSteps()
}

func defaultOutPath() (string, error) {
	dir := constants.GetOutDir()
	if err := util.EnsureDir(dir); err != nil {
		return "", err
	}
	return filepath.Join(dir, uuid.New().String()+".mid"), nil
}

// render validates and generates s, then writes the midi file to path.
func render(s model.Settings, path string, opts ...melody.Option) ([]model.NoteEvent, error) {
	sess := melody.NewSession(s, append([]melody.Option{melody.WithMaxSteps(stepLimit())}, opts...)...)
	if problems := sess.Validate(); len(problems) > 0 {
		fmt.Println(view.RenderProblems(problems))
		return nil, &melody.NotReadyError{Problems: problems}
	}

	var buf bytes.Buffer
	events, err := sess.Render(&buf)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0666); err != nil {
		return nil, err
	}
	slog.Debug("rendered melody", "path", path, "notes", len(events), "beats", melody.Beats(events))
	return events, nil
}

var generateCmd = &cobra.Command{
	Use:   "generate <settings>",
	Short: "Generates a melody from a settings file",
	Long: `Generates a melody from a .json or .yaml settings file, or from the
settings embedded in a midi file generated earlier.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.LoadFile(args[0])
		if err != nil {
			return err
		}

		out := generateOut
		if out == "" {
			if out, err = defaultOutPath(); err != nil {
				return err
			}
		}

		var opts []melody.Option
		if generateEvents {
			opts = append(opts, melody.WithRests())
		}
		events, err := render(s, out, opts...)
		if err != nil {
			return err
		}

		if generateEvents {
			fmt.Println(view.RenderEvents(events))
		}
		fmt.Printf("Wrote %v events (%v beats) to %v\n", len(events), melody.Beats(events), out)
		return nil
	},
}
