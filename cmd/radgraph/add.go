package main

import (
	"os"

	"github.com/spf13/cobra"

	rgerrors "radgraph/internal/errors"
	"radgraph/internal/graph"
	"radgraph/internal/pathspec"
)

var addCmd = &cobra.Command{
	Use:   "add COMMAND...",
	Short: "Store values at coordinates",
	Long: `Apply one or more commands of the form <moves>-<value>, e.g. A2W2N5-45.

Moves are an axis letter (A, D, N, S, E, W) followed by a step count. Moves
along the same axis pair are merged (N5S2 is N3), and C alone names the origin.
A coordinate that already exists, under this or any reordering of its moves,
is overwritten.

Examples:
  radgraph add A2-45 A2W2-10
  radgraph --load seed.txt add N5E2-7 --format json`,
	Args: cobra.MinimumNArgs(1),
	Run:  runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

// AddResponseCLI reports each command of an add run.
type AddResponseCLI struct {
	Results []AddResultCLI `json:"results"`
	Size    int            `json:"size"`
	Vacant  int            `json:"vacant"`
}

// AddResultCLI is the outcome of one command.
type AddResultCLI struct {
	Command   string `json:"command"`
	Key       string `json:"key,omitempty"`
	Canonical string `json:"canonical,omitempty"`
	Value     int    `json:"value"`
	Previous  *int   `json:"previous,omitempty"`
	Created   int    `json:"created"`
	Outcome   string `json:"outcome,omitempty"`
	Error     string `json:"error,omitempty"`
	Code      string `json:"code,omitempty"`
}

func runAdd(cmd *cobra.Command, args []string) {
	ctx, cancel := newContext()
	defer cancel()
	s := mustOpenSession(ctx)
	defer s.Close()

	resp := applyAdds(s.graph, args)
	render(resp)
	for _, r := range resp.Results {
		if r.Error != "" {
			s.Close()
			os.Exit(1)
		}
	}
}

// applyAdds runs every command, recording failures without stopping.
func applyAdds(g *graph.Graph, commands []string) *AddResponseCLI {
	resp := &AddResponseCLI{Results: make([]AddResultCLI, 0, len(commands))}
	for _, raw := range commands {
		resp.Results = append(resp.Results, addOne(g, raw))
	}
	resp.Size = g.Size()
	resp.Vacant = g.VacantCount()
	return resp
}

func addOne(g *graph.Graph, raw string) AddResultCLI {
	res := AddResultCLI{Command: raw}
	fail := func(err error) AddResultCLI {
		res.Error = err.Error()
		res.Code = string(rgerrors.CodeOf(err))
		return res
	}

	spec, err := pathspec.Parse(raw)
	if err != nil {
		return fail(err)
	}
	report, err := g.Add(spec)
	if err != nil {
		return fail(err)
	}

	res.Key = spec.Key()
	res.Value = report.Value
	res.Created = len(report.Created)
	if report.Replaced() {
		prev := report.Previous
		res.Previous = &prev
	}
	if stored := g.Node(report.Node).Key(); stored != res.Key {
		res.Canonical = stored
	}
	if len(report.Steps) > 0 {
		res.Outcome = report.Steps[len(report.Steps)-1].Outcome.String()
	}
	return res
}
