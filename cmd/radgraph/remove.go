package main

import (
	"github.com/spf13/cobra"

	rgerrors "radgraph/internal/errors"
	"radgraph/internal/graph"
)

var removeCmd = &cobra.Command{
	Use:     "remove KEY...",
	Aliases: []string{"delete", "rm"},
	Short:   "Clear the value at coordinates",
	Long: `Mark the nodes at the given coordinates vacant. Nodes stay in place so
deeper coordinates remain reachable; only their values are dropped.

Keys are move lists without a value, e.g. A2W2N5 or CENTROID. Reordered moves
find the same node.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

// RemoveResponseCLI reports each removal.
type RemoveResponseCLI struct {
	Results []RemoveResultCLI `json:"results"`
	Size    int               `json:"size"`
	Vacant  int               `json:"vacant"`
}

// RemoveResultCLI is the outcome for one key.
type RemoveResultCLI struct {
	Key      string `json:"key"`
	Node     string `json:"node,omitempty"`
	Removed  bool   `json:"removed"`
	Previous *int   `json:"previous,omitempty"`
	Error    string `json:"error,omitempty"`
	Code     string `json:"code,omitempty"`
}

func runRemove(cmd *cobra.Command, args []string) {
	ctx, cancel := newContext()
	defer cancel()
	s := mustOpenSession(ctx)
	defer s.Close()

	render(applyRemoves(s.graph, args))
}

func applyRemoves(g *graph.Graph, keys []string) *RemoveResponseCLI {
	resp := &RemoveResponseCLI{Results: make([]RemoveResultCLI, 0, len(keys))}
	for _, key := range keys {
		resp.Results = append(resp.Results, removeOne(g, key))
	}
	resp.Size = g.Size()
	resp.Vacant = g.VacantCount()
	return resp
}

func removeOne(g *graph.Graph, key string) RemoveResultCLI {
	res := RemoveResultCLI{Key: key}
	n, _, err := g.Lookup(key)
	if err != nil {
		res.Error = err.Error()
		res.Code = string(rgerrors.CodeOf(err))
		return res
	}
	if n == nil {
		return res
	}
	res.Previous = valuePtr(n.Value)
	if _, ok, err := g.Remove(n.Key()); err != nil || !ok {
		res.Error = "node vanished during removal"
		return res
	}
	res.Node = n.Key()
	res.Removed = true
	return res
}
