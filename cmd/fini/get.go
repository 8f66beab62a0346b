package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var getJSON bool

var getCmd = &cobra.Command{
	Use:   "get FILE SECTION OPTION",
	Short: "Resolve one option",
	Long:  `Resolve one option through argument, environment and file values, then its function chain.`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args[:1])
		if err != nil {
			return err
		}
		section, err := cfg.Section(args[1])
		if err != nil {
			return err
		}
		value, err := section.Value(args[2])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if getJSON {
			enc := json.NewEncoder(out)
			return enc.Encode(value)
		}
		if value == nil {
			return nil
		}
		_, err = fmt.Fprintln(out, value)
		return err
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().BoolVar(&getJSON, "json", false, "Output in JSON format")
}
