package main

import (
	"github.com/spf13/cobra"

	rgerrors "radgraph/internal/errors"
	"radgraph/internal/graph"
)

var clustersThreshold int

var clustersCmd = &cobra.Command{
	Use:   "clusters",
	Short: "Group nearby values",
	Long: `Find groups of populated nodes joined by links no longer than the threshold.

Link length is the step count between neighbors: siblings on the same line
differ by their last step count, a node and its first child by the child's
last step count. Vacant nodes never join or bridge a cluster and single nodes
are not reported.

The threshold defaults to cluster.defaultThreshold from the config.`,
	Args: cobra.NoArgs,
	Run:  runClusters,
}

func init() {
	clustersCmd.Flags().IntVarP(&clustersThreshold, "threshold", "t", 0, "Maximum link length inside a cluster (positive)")
	rootCmd.AddCommand(clustersCmd)
}

// ClustersResponseCLI lists the clusters found.
type ClustersResponseCLI struct {
	Threshold int             `json:"threshold"`
	Clusters  []graph.Cluster `json:"clusters"`
}

func runClusters(cmd *cobra.Command, args []string) {
	ctx, cancel := newContext()
	defer cancel()
	s := mustOpenSession(ctx)
	defer s.Close()

	threshold := s.cfg.Cluster.DefaultThreshold
	if cmd.Flags().Changed("threshold") {
		threshold = clustersThreshold
	}
	resp, err := findClusters(s.graph, threshold)
	if err != nil {
		fail(err)
	}
	render(resp)
}

// findClusters rejects thresholds below 1; a zero threshold can never join
// two nodes.
func findClusters(g *graph.Graph, threshold int) (*ClustersResponseCLI, error) {
	if threshold <= 0 {
		return nil, rgerrors.Newf(rgerrors.InvalidThreshold, "threshold must be positive, got %d", threshold)
	}
	clusters, err := g.Clusters(threshold)
	if err != nil {
		return nil, err
	}
	if clusters == nil {
		clusters = []graph.Cluster{}
	}
	return &ClustersResponseCLI{Threshold: threshold, Clusters: clusters}, nil
}
