package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var flagsCmd = &cobra.Command{
	Use:   "flags FILE",
	Short: "List the commandline flags a FINI file declares",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "OPTION\tFLAGS\tACTION\tHELP")
		for _, spec := range cfg.ArgSpecs() {
			help, _, _ := strings.Cut(spec.Help, "\n")
			action := string(spec.Action)
			if spec.Dest != "" {
				action = fmt.Sprintf("%s -> %s=%s", action, spec.Dest, spec.Const)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", spec.Option, strings.Join(spec.Names, ", "), action, help)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(flagsCmd)
}
