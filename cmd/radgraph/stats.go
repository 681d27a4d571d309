package main

import (
	"github.com/spf13/cobra"

	"radgraph/internal/batch"
	"radgraph/internal/graph"
	"radgraph/internal/version"
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"size"},
	Short:   "Show graph size and shape",
	Args:    cobra.NoArgs,
	Run:     runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// StatsResponseCLI summarizes the graph and the load that built it.
type StatsResponseCLI struct {
	Version string `json:"version"`
	graph.Stats
	MaxPermutations int           `json:"maxPermutations"`
	Load            *batch.Result `json:"load,omitempty"`
}

func runStats(cmd *cobra.Command, args []string) {
	ctx, cancel := newContext()
	defer cancel()
	s := mustOpenSession(ctx)
	defer s.Close()

	render(buildStats(s.graph, s.loaded))
}

func buildStats(g *graph.Graph, loaded *batch.Result) *StatsResponseCLI {
	return &StatsResponseCLI{
		Version:         version.Info(),
		Stats:           g.Stats(),
		MaxPermutations: g.Canonicalizer().MaxPermutations(),
		Load:            loaded,
	}
}
