package cmd

import (
	"fmt"

	"github.com/jsphweid/musictools/constants"
	"github.com/jsphweid/musictools/db"
	"github.com/jsphweid/musictools/settings"
	"github.com/spf13/cobra"
)

var presetOut string

// presetStore is swapped out in tests.
var presetStore = func() (db.Store, error) {
	return db.Connect(constants.GetDynamoEndpoint(), constants.GetDynamoRegion(), constants.GetPresetTable())
}

func init() {
	rootCmd.AddCommand(presetCmd)
	presetCmd.AddCommand(presetSaveCmd, presetLoadCmd, presetListCmd)
	presetLoadCmd.Flags().StringVarP(&presetOut, "output", "o", "", "write the settings to this .json file instead of printing them")
}

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Saves and loads named settings in DynamoDB",
	Long: `Saves and loads named settings in DynamoDB. The table is set with
MUSICTOOLS_PRESET_TABLE; MUSICTOOLS_DYNAMO_ENDPOINT points at a local
DynamoDB.`,
}

var presetSaveCmd = &cobra.Command{
	Use:   "save <name> <settings>",
	Short: "Stores a settings file under name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.LoadFile(args[1])
		if err != nil {
			return err
		}
		store, err := presetStore()
		if err != nil {
			return err
		}
		if err := store.Put(cmd.Context(), args[0], s); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved preset %v\n", args[0])
		return nil
	},
}

var presetLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Prints or writes a stored preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := presetStore()
		if err != nil {
			return err
		}
		s, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if presetOut != "" {
			if err := settings.SaveFile(presetOut, s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote preset %v to %v\n", args[0], presetOut)
			return nil
		}
		text, err := settings.Encode(s)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists stored presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := presetStore()
		if err != nil {
			return err
		}
		names, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}
