package main

import (
	"strings"
	"testing"

	"radgraph/internal/graph"
	"radgraph/internal/version"
)

func TestFormatResponse_JSON(t *testing.T) {
	resp := map[string]interface{}{
		"key": "A2W2",
		"num": 42,
	}

	result, err := FormatResponse(resp, FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result, `"key": "A2W2"`) {
		t.Error("JSON output missing expected key")
	}
	if !strings.Contains(result, `"num": 42`) {
		t.Error("JSON output missing expected number")
	}
}

func TestFormatResponse_UnsupportedFormat(t *testing.T) {
	_, err := FormatResponse(map[string]string{"key": "value"}, "xml")
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("error should mention unsupported format, got: %v", err)
	}
}

func TestFormatHuman_UnknownFallsBackToJSON(t *testing.T) {
	result, err := FormatResponse(struct {
		Name string `json:"name"`
	}{"x"}, FormatHuman)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result, `"name": "x"`) {
		t.Errorf("expected JSON fallback, got: %s", result)
	}
}

func TestFormatHuman_Add(t *testing.T) {
	prev := 1
	resp := &AddResponseCLI{
		Results: []AddResultCLI{
			{Command: "A2-45", Key: "A2", Value: 45, Created: 1},
			{Command: "N5-2", Key: "N5", Value: 2, Previous: &prev},
			{Command: "E3N2-9", Key: "E3N2", Canonical: "N2E3", Value: 9, Previous: &prev},
			{Command: "X1-1", Error: "[PARSE_ERROR] bad"},
		},
		Size:   4,
		Vacant: 1,
	}

	out, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"✓ A2 = 45 (1 new node)",
		"✓ N5 = 2 (was 1)",
		"stored as N2E3",
		"✗ X1-1: [PARSE_ERROR] bad",
		"Nodes: 4 (1 vacant)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatHuman_Find(t *testing.T) {
	v := 44
	tests := []struct {
		name string
		resp *FindResponseCLI
		want string
	}{
		{"match", &FindResponseCLI{Query: "N5-45", Key: "N5", Want: 45, Value: &v, Exists: true, ValueMatch: true, Exhaustive: true}, "found at N5 with value 45"},
		{"mismatch", &FindResponseCLI{Query: "N5-45", Key: "N5", Want: 45, Value: &v, Exists: true, Exhaustive: true}, "N5 exists but holds 44, not 45"},
		{"vacant", &FindResponseCLI{Query: "N5-45", Key: "N5", Want: 45, Exists: true, Exhaustive: true}, "holds vacant"},
		{"missing", &FindResponseCLI{Query: "N5-45", Want: 45, Exhaustive: true}, "N5-45: not found"},
		{"capped", &FindResponseCLI{Query: "N5-45", Want: 45}, "not fully searched"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := FormatResponse(tt.resp, FormatHuman)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q missing %q", out, tt.want)
			}
		})
	}
}

func TestFormatHuman_Histogram(t *testing.T) {
	resp := &HistogramResponseCLI{
		Buckets: []HistogramBucket{{Value: -3, Count: 1}, {Value: 4, Count: 4}},
		Total:   5,
	}
	out, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(out, "\n")
	if !strings.HasPrefix(lines[0], "-3 | ##########") {
		t.Errorf("first bar = %q, want a quarter-width bar for -3", lines[0])
	}
	if !strings.Contains(lines[1], strings.Repeat("#", 40)+" 4") {
		t.Errorf("second bar = %q, want a full bar", lines[1])
	}
	if !strings.Contains(out, "5 values, 2 distinct") {
		t.Errorf("missing summary in:\n%s", out)
	}

	empty, _ := FormatResponse(&HistogramResponseCLI{}, FormatHuman)
	if empty != "No values stored" {
		t.Errorf("empty histogram = %q", empty)
	}
}

func TestFormatHuman_Clusters(t *testing.T) {
	resp := &ClustersResponseCLI{
		Threshold: 2,
		Clusters:  []graph.Cluster{{ID: 1, Keys: []string{"A2", "A2W2"}, Size: 2, Sum: 55}},
	}
	out, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"1 cluster at threshold 2", "#1  size 2  sum 55", "A2 A2W2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	none, _ := FormatResponse(&ClustersResponseCLI{Threshold: 1}, FormatHuman)
	if none != "No clusters at threshold 1" {
		t.Errorf("empty clusters = %q", none)
	}
}

func TestFormatJSON_VacantIsNull(t *testing.T) {
	g := graph.New(graph.DefaultOptions())
	if _, err := g.AddCommand("N3E2-5"); err != nil {
		t.Fatal(err)
	}
	out, err := FormatResponse(listNodes(g, true, true), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"value": null`) {
		t.Errorf("vacant nodes should encode as null:\n%s", out)
	}
	if !strings.Contains(out, `"axis": "E"`) {
		t.Errorf("axes should encode as letters:\n%s", out)
	}
}

func TestFormatHuman_Version(t *testing.T) {
	full, err := FormatResponse(newVersionResponse(false), FormatHuman)
	if err != nil {
		t.Fatal(err)
	}
	if full != version.Full() {
		t.Errorf("version output = %q, want %q", full, version.Full())
	}
	if !strings.Contains(full, "Built: "+version.BuildDate) {
		t.Errorf("version output should carry the build date:\n%s", full)
	}

	short, err := FormatResponse(newVersionResponse(true), FormatHuman)
	if err != nil {
		t.Fatal(err)
	}
	if short != version.Info() {
		t.Errorf("--short output = %q, want %q", short, version.Info())
	}

	js, err := FormatResponse(newVersionResponse(true), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(js, `"buildDate"`) || strings.Contains(js, "short") {
		t.Errorf("JSON version output = %s", js)
	}
}
