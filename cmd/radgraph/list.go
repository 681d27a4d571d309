package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"radgraph/internal/graph"
)

var (
	listDetails bool
	listVacant  bool
)

var listCmd = &cobra.Command{
	Use:     "list [KEY]",
	Aliases: []string{"display"},
	Short:   "List coordinates and their values",
	Long: `List every node in key order. Vacant placeholders are hidden unless
--vacant is given; --details also prints each node's neighbors.

With KEY, show that coordinate (or an equivalent ordering of it) and its
neighbors. Exits 2 when it does not exist.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listDetails, "details", false, "Show the neighbors of each node")
	listCmd.Flags().BoolVar(&listVacant, "vacant", false, "Include vacant nodes")
	rootCmd.AddCommand(listCmd)
}

// ListResponseCLI lists nodes.
type ListResponseCLI struct {
	Nodes  []NodeCLI `json:"nodes"`
	Size   int       `json:"size"`
	Vacant int       `json:"vacant"`
}

// NodeCLI is one listed node. Value is null for vacant nodes.
type NodeCLI struct {
	Key       string           `json:"key"`
	Value     *int             `json:"value"`
	Depth     int              `json:"depth"`
	Neighbors []graph.Neighbor `json:"neighbors,omitempty"`
}

func runList(cmd *cobra.Command, args []string) {
	ctx, cancel := newContext()
	defer cancel()
	s := mustOpenSession(ctx)
	defer s.Close()

	if len(args) == 0 {
		render(listNodes(s.graph, listDetails, listVacant))
		return
	}
	resp, err := lookupNode(s.graph, args[0])
	if err != nil {
		fail(err)
	}
	render(resp)
	if !resp.Exists {
		s.Close()
		os.Exit(2)
	}
}

func listNodes(g *graph.Graph, details, vacant bool) *ListResponseCLI {
	resp := &ListResponseCLI{Nodes: []NodeCLI{}, Size: g.Size(), Vacant: g.VacantCount()}
	for _, e := range g.Entries() {
		if e.Node.IsVacant() && !vacant {
			continue
		}
		n := NodeCLI{Key: e.Key, Value: valuePtr(e.Node.Value), Depth: e.Node.Location.Depth()}
		if details {
			n.Neighbors, _ = g.Neighbors(e.Key)
		}
		resp.Nodes = append(resp.Nodes, n)
	}
	return resp
}

// LookupResponseCLI is one coordinate and its neighbors. A missing
// coordinate is reported with Exists false, not as an error.
type LookupResponseCLI struct {
	Query  string   `json:"query"`
	Exists bool     `json:"exists"`
	Node   *NodeCLI `json:"node,omitempty"`
	Size   int      `json:"size"`
	Vacant int      `json:"vacant"`
}

func lookupNode(g *graph.Graph, key string) (*LookupResponseCLI, error) {
	n, ok, err := g.Lookup(key)
	if err != nil {
		return nil, err
	}
	resp := &LookupResponseCLI{Query: strings.ToUpper(strings.TrimSpace(key)), Size: g.Size(), Vacant: g.VacantCount()}
	if !ok {
		return resp, nil
	}
	node := NodeCLI{Key: n.Key(), Value: valuePtr(n.Value), Depth: n.Location.Depth()}
	node.Neighbors, _ = g.Neighbors(n.Key())
	resp.Exists = true
	resp.Node = &node
	return resp, nil
}
