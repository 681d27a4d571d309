package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"radgraph/internal/graph"
	"radgraph/internal/version"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *AddResponseCLI:
		return formatAddHuman(v), nil
	case *RemoveResponseCLI:
		return formatRemoveHuman(v), nil
	case *FindResponseCLI:
		return formatFindHuman(v), nil
	case *ListResponseCLI:
		return formatListHuman(v), nil
	case *LookupResponseCLI:
		return formatLookupHuman(v), nil
	case *StatsResponseCLI:
		return formatStatsHuman(v), nil
	case *ClustersResponseCLI:
		return formatClustersHuman(v), nil
	case *HistogramResponseCLI:
		return formatHistogramHuman(v), nil
	case *VersionResponseCLI:
		return formatVersionHuman(v), nil
	default:
		return formatJSON(resp)
	}
}

// valueText renders a node value, "vacant" for placeholders.
func valueText(v int) string {
	if v == graph.Vacant {
		return "vacant"
	}
	return strconv.Itoa(v)
}

// valuePtr is nil for vacant values so JSON output carries null.
func valuePtr(v int) *int {
	if v == graph.Vacant {
		return nil
	}
	return &v
}

func formatAddHuman(resp *AddResponseCLI) string {
	var b strings.Builder
	for _, r := range resp.Results {
		if r.Error != "" {
			fmt.Fprintf(&b, "✗ %s: %s\n", r.Command, r.Error)
			continue
		}
		switch {
		case r.Previous != nil:
			fmt.Fprintf(&b, "✓ %s = %d (was %d)\n", r.Key, r.Value, *r.Previous)
		case r.Created > 0:
			fmt.Fprintf(&b, "✓ %s = %d (%d new node%s)\n", r.Key, r.Value, r.Created, plural(r.Created))
		default:
			fmt.Fprintf(&b, "✓ %s = %d\n", r.Key, r.Value)
		}
		if r.Key != r.Canonical && r.Canonical != "" {
			fmt.Fprintf(&b, "  stored as %s\n", r.Canonical)
		}
	}
	fmt.Fprintf(&b, "\nNodes: %d (%d vacant)", resp.Size, resp.Vacant)
	return b.String()
}

func formatRemoveHuman(resp *RemoveResponseCLI) string {
	var b strings.Builder
	for _, r := range resp.Results {
		switch {
		case r.Error != "":
			fmt.Fprintf(&b, "✗ %s: %s\n", r.Key, r.Error)
		case !r.Removed:
			fmt.Fprintf(&b, "- %s: not found\n", r.Key)
		case r.Previous == nil:
			fmt.Fprintf(&b, "✓ %s: already vacant\n", r.Key)
		default:
			fmt.Fprintf(&b, "✓ %s: removed value %d\n", r.Key, *r.Previous)
		}
	}
	fmt.Fprintf(&b, "\nNodes: %d (%d vacant)", resp.Size, resp.Vacant)
	return b.String()
}

func formatFindHuman(resp *FindResponseCLI) string {
	if !resp.Exists {
		s := fmt.Sprintf("%s: not found", resp.Query)
		if !resp.Exhaustive {
			s += " (equivalent orderings not fully searched)"
		}
		return s
	}
	if resp.ValueMatch {
		return fmt.Sprintf("%s: found at %s with value %d", resp.Query, resp.Key, resp.Want)
	}
	return fmt.Sprintf("%s: %s exists but holds %s, not %d", resp.Query, resp.Key, valueText(derefOr(resp.Value)), resp.Want)
}

func derefOr(v *int) int {
	if v == nil {
		return graph.Vacant
	}
	return *v
}

func formatListHuman(resp *ListResponseCLI) string {
	var b strings.Builder
	width := 0
	for _, n := range resp.Nodes {
		if len(n.Key) > width {
			width = len(n.Key)
		}
	}
	for _, n := range resp.Nodes {
		fmt.Fprintf(&b, "%-*s  %s\n", width, n.Key, valueText(derefOr(n.Value)))
		for _, nb := range n.Neighbors {
			fmt.Fprintf(&b, "%*s  %-7s -> %s (%s)\n", width, "", nb.Axis.Name(), nb.Key, valueText(nb.Value))
		}
	}
	fmt.Fprintf(&b, "\nNodes: %d (%d vacant)", resp.Size, resp.Vacant)
	return b.String()
}

func formatLookupHuman(resp *LookupResponseCLI) string {
	if !resp.Exists {
		return fmt.Sprintf("%s: not found", resp.Query)
	}
	return formatListHuman(&ListResponseCLI{Nodes: []NodeCLI{*resp.Node}, Size: resp.Size, Vacant: resp.Vacant})
}

func formatStatsHuman(resp *StatsResponseCLI) string {
	var b strings.Builder
	b.WriteString("radgraph " + resp.Version + "\n")
	b.WriteString(strings.Repeat("=", 40) + "\n")
	fmt.Fprintf(&b, "Graph:       %s\n", resp.ID)
	fmt.Fprintf(&b, "Nodes:       %d\n", resp.Nodes)
	fmt.Fprintf(&b, "  populated: %d\n", resp.Populated)
	fmt.Fprintf(&b, "  vacant:    %d\n", resp.Vacant)
	fmt.Fprintf(&b, "Links:       %d\n", resp.Links)
	fmt.Fprintf(&b, "Max depth:   %d\n", resp.MaxDepth)
	fmt.Fprintf(&b, "Permutation cap: %d", resp.MaxPermutations)
	if resp.Load != nil {
		fmt.Fprintf(&b, "\nLoaded:      %d command%s from %d source%s, %d failure%s",
			resp.Load.Applied, plural(resp.Load.Applied),
			resp.Load.Sources, plural(resp.Load.Sources),
			len(resp.Load.Failures), plural(len(resp.Load.Failures)))
	}
	return b.String()
}

func formatClustersHuman(resp *ClustersResponseCLI) string {
	if len(resp.Clusters) == 0 {
		return fmt.Sprintf("No clusters at threshold %d", resp.Threshold)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d cluster%s at threshold %d\n", len(resp.Clusters), plural(len(resp.Clusters)), resp.Threshold)
	for _, c := range resp.Clusters {
		fmt.Fprintf(&b, "\n#%d  size %d  sum %d\n", c.ID, c.Size, c.Sum)
		fmt.Fprintf(&b, "    %s\n", strings.Join(c.Keys, " "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatHistogramHuman(resp *HistogramResponseCLI) string {
	if len(resp.Buckets) == 0 {
		return "No values stored"
	}
	most := 0
	width := 0
	for _, bk := range resp.Buckets {
		if bk.Count > most {
			most = bk.Count
		}
		if w := len(strconv.Itoa(bk.Value)); w > width {
			width = w
		}
	}
	const barWidth = 40
	var b strings.Builder
	for _, bk := range resp.Buckets {
		n := bk.Count * barWidth / most
		if n == 0 {
			n = 1
		}
		fmt.Fprintf(&b, "%*d | %s %d\n", width, bk.Value, strings.Repeat("#", n), bk.Count)
	}
	fmt.Fprintf(&b, "\n%d value%s, %d distinct", resp.Total, plural(resp.Total), len(resp.Buckets))
	return b.String()
}

func formatVersionHuman(resp *VersionResponseCLI) string {
	if resp.short {
		return resp.Summary
	}
	return version.Full()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
