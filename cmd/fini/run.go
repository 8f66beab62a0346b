package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/fini/flagbind"
)

var runFormat string

var runCmd = &cobra.Command{
	Use:   "run FILE -- ARGS...",
	Short: "Parse ARGS with the flags FILE declares and print the result",
	Long: `Build flags from the FINI help and metadata in FILE, parse ARGS with them
and print the configuration resolved against the parsed values.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args[:1])
		if err != nil {
			return err
		}

		fs := pflag.NewFlagSet(args[0], pflag.ContinueOnError)
		fs.SetOutput(cmd.ErrOrStderr())
		binding, err := flagbind.Register(fs, cfg.ArgSpecs())
		if err != nil {
			return err
		}
		if err := fs.Parse(args[1:]); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				return nil
			}
			return err
		}
		if err := binding.Apply(cfg); err != nil {
			return err
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "ignoring positional arguments: %v\n", fs.Args())
		}
		return cfg.Dump(cmd.OutOrStdout(), runFormat)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runFormat, "format", "f", "toml", "Output format: toml, yaml or json")
}
