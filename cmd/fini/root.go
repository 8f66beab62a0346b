package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/fini"
)

var (
	verbose  bool
	mode     string
	argPairs []string
	envPairs []string
	fmtPairs []string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fini",
	Short: "Inspect FINI configuration files",
	Long: `fini reads INI files whose values may carry help text, flag metadata and
a function chain, and resolves options against commandline and environment
overrides.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logrus.InfoLevel
		if verbose {
			level = logrus.DebugLevel
		}
		logrus.SetLevel(level)
		logrus.SetOutput(os.Stderr)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "", "How to read files: fini, ini or empty for auto")
	rootCmd.PersistentFlags().StringArrayVar(&argPairs, "arg", nil, "Argument override option=value (repeatable)")
	rootCmd.PersistentFlags().StringArrayVar(&envPairs, "env", nil, "Bind option=ENV_VAR (repeatable)")
	rootCmd.PersistentFlags().StringArrayVar(&fmtPairs, "fmt", nil, "Format table entry name=value (repeatable)")
}

// loadConfig reads files in order and binds the override flags.
func loadConfig(files []string) (*fini.Config, error) {
	m := fini.Mode(mode)
	switch m {
	case fini.ModeAuto, fini.ModeFINI, fini.ModeINI:
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	args, err := parsePairs(argPairs)
	if err != nil {
		return nil, fmt.Errorf("--arg: %w", err)
	}
	envNames, err := parsePairs(envPairs)
	if err != nil {
		return nil, fmt.Errorf("--env: %w", err)
	}
	formats, err := parsePairs(fmtPairs)
	if err != nil {
		return nil, fmt.Errorf("--fmt: %w", err)
	}

	b := fini.NewBuilder().
		WithMode(m).
		WithFormats(formats)
	for _, f := range files {
		b.WithFile(f)
	}
	cfg, err := b.Build()
	if err != nil {
		return nil, err
	}

	bindOverrides(cfg, args, envNames)
	return cfg, nil
}

// bindOverrides binds --arg and --env pairs under normalized option names.
func bindOverrides(cfg *fini.Config, args, envNames map[string]string) {
	if len(args) > 0 {
		mapping := make(map[string]any, len(args))
		for k, v := range args {
			mapping[cfg.Store().NormalizeKey(k)] = v
		}
		cfg.SetArgs(mapping)
	}
	if len(envNames) > 0 {
		names := make(map[string]string, len(envNames))
		for k, v := range envNames {
			names[cfg.Store().NormalizeKey(k)] = v
		}
		cfg.SetEnvNames(names)
	}
}

func parsePairs(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, found := strings.Cut(p, "=")
		if !found || k == "" {
			return nil, fmt.Errorf("expected key=value, got %q", p)
		}
		out[k] = v
	}
	return out, nil
}
