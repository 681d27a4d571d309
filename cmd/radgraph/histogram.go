package main

import (
	"sort"

	"github.com/spf13/cobra"

	"radgraph/internal/graph"
)

var histogramCmd = &cobra.Command{
	Use:   "histogram",
	Short: "Show how often each value occurs",
	Args:  cobra.NoArgs,
	Run:   runHistogram,
}

func init() {
	rootCmd.AddCommand(histogramCmd)
}

// HistogramResponseCLI is the value-frequency table, ordered by value.
type HistogramResponseCLI struct {
	Buckets []HistogramBucket `json:"buckets"`
	Total   int               `json:"total"`
}

// HistogramBucket counts one value.
type HistogramBucket struct {
	Value int `json:"value"`
	Count int `json:"count"`
}

func runHistogram(cmd *cobra.Command, args []string) {
	ctx, cancel := newContext()
	defer cancel()
	s := mustOpenSession(ctx)
	defer s.Close()

	render(buildHistogram(s.graph))
}

func buildHistogram(g *graph.Graph) *HistogramResponseCLI {
	freq := g.ValueFrequencies()
	resp := &HistogramResponseCLI{Buckets: make([]HistogramBucket, 0, len(freq))}
	for v, c := range freq {
		resp.Buckets = append(resp.Buckets, HistogramBucket{Value: v, Count: c})
		resp.Total += c
	}
	sort.Slice(resp.Buckets, func(i, j int) bool { return resp.Buckets[i].Value < resp.Buckets[j].Value })
	return resp
}
