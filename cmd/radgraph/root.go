package main

import (
	"github.com/spf13/cobra"

	"radgraph/internal/version"
)

var (
	loadFlags    []string
	configFlag   string
	formatFlag   string
	verboseCount int
	quietFlag    bool
)

var rootCmd = &cobra.Command{
	Use:   "radgraph",
	Short: "radgraph - radial coordinate graph",
	Long: `radgraph stores integer values at coordinates reached from a central
origin by moves along six axes (Ascend, Descend, North, South, East, West).

A command such as A2W2N5-45 walks 2 steps up, 2 west and 5 north, then stores
45 there. Paths that use the same moves in a different order reach the same
coordinate.

Commands operate on a graph built from the --load sources, so a typical run is:
  radgraph --load seed.txt stats
  radgraph --load seed.yaml --load more.txt.gz clusters --threshold 3
  radgraph shell`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("radgraph version {{.Version}}\n")
	rootCmd.PersistentFlags().StringArrayVarP(&loadFlags, "load", "l", nil,
		"Command file to load before running (text, .yaml, .toml; may be .gz or .zst; - for stdin). Repeatable")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"Config file (default: .radgraph/config.toml in the nearest enclosing directory)")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", string(FormatHuman), "Output format (json, human)")
	rootCmd.PersistentFlags().CountVarP(&verboseCount, "verbose", "v", "Increase log output (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress all log output")
}
