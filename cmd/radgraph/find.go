package main

import (
	"os"

	"github.com/spf13/cobra"

	"radgraph/internal/graph"
	"radgraph/internal/pathspec"
)

var findCmd = &cobra.Command{
	Use:   "find COMMAND",
	Short: "Check whether a coordinate holds a value",
	Long: `Look up the coordinate of COMMAND (e.g. A2W2N5-45) and report whether it
exists and holds the given value. Exits 2 when the coordinate does not exist,
3 when it exists with another value.`,
	Args: cobra.ExactArgs(1),
	Run:  runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
}

// FindResponseCLI is the result of a find.
type FindResponseCLI struct {
	Query      string `json:"query"`
	Key        string `json:"key,omitempty"`
	Want       int    `json:"want"`
	Value      *int   `json:"value,omitempty"`
	Exists     bool   `json:"exists"`
	ValueMatch bool   `json:"valueMatch"`
	Exhaustive bool   `json:"exhaustive"`
}

func runFind(cmd *cobra.Command, args []string) {
	ctx, cancel := newContext()
	defer cancel()
	s := mustOpenSession(ctx)
	defer s.Close()

	resp, err := findOne(s.graph, args[0])
	if err != nil {
		fail(err)
	}
	render(resp)

	switch {
	case !resp.Exists:
		s.Close()
		os.Exit(2)
	case !resp.ValueMatch:
		s.Close()
		os.Exit(3)
	}
}

func findOne(g *graph.Graph, raw string) (*FindResponseCLI, error) {
	spec, err := pathspec.Parse(raw)
	if err != nil {
		return nil, err
	}
	r := g.Find(spec)
	resp := &FindResponseCLI{
		Query:      raw,
		Want:       spec.Value,
		Exists:     r.Exists,
		ValueMatch: r.ValueMatch,
		Exhaustive: r.Resolution.Exhaustive,
	}
	if r.Exists {
		resp.Key = r.Key
		resp.Value = valuePtr(g.Node(r.Node).Value)
	}
	return resp, nil
}
