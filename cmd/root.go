package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "musictools",
	Short: "Scale explorer and formula driven melody generator",
	Long: `musictools explores scales and chords as 12 bit pitch class sets and
generates melodies from formulas in one variable x.

Examples:
  musictools scale C-2741 --rotate left
  musictools chord C-2741 --interval 3rd=Major --interval 5th=Perfect
  musictools generate melody.yaml -o melody.mid
  musictools serve --addr :8080`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func Execute() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env", "error", err)
	}
	cobra.CheckErr(rootCmd.Execute())
}
