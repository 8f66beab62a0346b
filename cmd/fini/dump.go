package main

import (
	"github.com/spf13/cobra"
)

var (
	dumpFormat string
	dumpRaw    bool
	dumpDebug  bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump FILE...",
	Short: "Print the resolved configuration",
	Long: `Read the files in order and print every resolved option as toml, yaml or json.
With --raw the unresolved store is printed as INI text instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch {
		case dumpDebug:
			_, err = out.Write([]byte(cfg.Debug()))
			return err
		case dumpRaw:
			_, err = out.Write([]byte(cfg.String()))
			return err
		}
		return cfg.Dump(out, dumpFormat)
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "toml", "Output format: toml, yaml or json")
	dumpCmd.Flags().BoolVar(&dumpRaw, "raw", false, "Print stored values without resolving them")
	dumpCmd.Flags().BoolVar(&dumpDebug, "debug", false, "Print sources and function chains of every option")
}
