package pathspec

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	rgerrors "radgraph/internal/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantMoves []Move
		wantValue int
		wantKey   string
	}{
		{
			name:      "help example",
			input:     "A2W2N5-45",
			wantMoves: []Move{{Ascend, 2}, {West, 2}, {North, 5}},
			wantValue: 45,
			wantKey:   "A2W2N5",
		},
		{
			name:      "single move",
			input:     "N5-1",
			wantMoves: []Move{{North, 5}},
			wantValue: 1,
			wantKey:   "N5",
		},
		{
			name:      "lowercase and whitespace",
			input:     "  e12d3-7 ",
			wantMoves: []Move{{East, 12}, {Descend, 3}},
			wantValue: 7,
			wantKey:   "E12D3",
		},
		{
			name:      "negative value",
			input:     "S4--3",
			wantMoves: []Move{{South, 4}},
			wantValue: -3,
			wantKey:   "S4",
		},
		{
			name:      "root shortcut",
			input:     "C-9",
			wantMoves: nil,
			wantValue: 9,
			wantKey:   RootKey,
		},
		{
			name:      "same dimension merged",
			input:     "N2N3E1-4",
			wantMoves: []Move{{North, 5}, {East, 1}},
			wantValue: 4,
			wantKey:   "N5E1",
		},
		{
			name:      "opposite moves cancel to root",
			input:     "N2E1W1S2-4",
			wantMoves: nil,
			wantValue: 4,
			wantKey:   RootKey,
		},
		{
			name:      "zero steps dropped",
			input:     "A0N3-1",
			wantMoves: []Move{{North, 3}},
			wantValue: 1,
			wantKey:   "N3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.wantMoves, spec.Moves); diff != "" {
				t.Errorf("Moves mismatch (-want +got):\n%s", diff)
			}
			if spec.Value != tt.wantValue {
				t.Errorf("Value = %d, want %d", spec.Value, tt.wantValue)
			}
			if spec.Key() != tt.wantKey {
				t.Errorf("Key() = %q, want %q", spec.Key(), tt.wantKey)
			}
			if spec.Raw != tt.input {
				t.Errorf("Raw = %q, want %q", spec.Raw, tt.input)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"no separator", "N5"},
		{"no moves", "-5"},
		{"axis without steps", "N-5"},
		{"axis without steps mid path", "NE2-5"},
		{"digits without axis", "5N2-1"},
		{"unknown letter", "X2-1"},
		{"unknown symbol", "N2*E1-1"},
		{"empty value", "N2-"},
		{"sign only value", "N2--"},
		{"trailing junk", "N2-4x"},
		{"plus sign", "N2-+4"},
		{"root with moves", "CN2-4"},
		{"root mid path", "N2C-4"},
		{"root without value", "C"},
		{"step overflow", "N99999999999999999999-1"},
		{"value overflow", "N1-99999999999999999999"},
		{"vacant sentinel", "N1--9223372036854775808"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) = %+v, want error", tt.input, spec)
			}
			if !rgerrors.HasCode(err, rgerrors.ParseError) {
				t.Errorf("Parse(%q) error = %v, want code %s", tt.input, err, rgerrors.ParseError)
			}
		})
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		key     string
		want    []Move
		wantErr bool
	}{
		{"A2W2", []Move{{Ascend, 2}, {West, 2}}, false},
		{"centroid", nil, false},
		{"C", nil, false},
		{"n3n4", []Move{{North, 7}}, false},
		{"N3-4", nil, true},
		{"", nil, true},
		{"Q1", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := ParseKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseKey(%q) mismatch (-want +got):\n%s", tt.key, diff)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []Move
		want []Move
	}{
		{"empty", nil, nil},
		{"distinct dimensions kept", []Move{{North, 1}, {East, 2}, {Ascend, 3}}, []Move{{North, 1}, {East, 2}, {Ascend, 3}}},
		{"opposite partial", []Move{{North, 5}, {South, 2}}, []Move{{North, 3}}},
		{"opposite overshoot", []Move{{North, 2}, {South, 5}}, []Move{{South, 3}}},
		{"cascade", []Move{{East, 1}, {North, 2}, {South, 2}, {West, 4}}, []Move{{West, 3}}},
		{"negative steps flipped", []Move{{Ascend, -2}}, []Move{{Descend, 2}}},
		{"non-adjacent same dimension kept", []Move{{North, 2}, {East, 1}, {North, 3}}, []Move{{North, 2}, {East, 1}, {North, 3}}},
		{"invalid axis untouched", []Move{{Axis('X'), 2}, {Axis('X'), 3}}, []Move{{Axis('X'), 2}, {Axis('X'), 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Normalize(tt.in)); diff != "" {
				t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPathSpec_Format(t *testing.T) {
	for _, input := range []string{"A2W2N5-45", "C-3", "S4--3"} {
		spec, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", input, err)
		}
		if got := spec.Format(); got != input {
			t.Errorf("Format() = %q, want %q", got, input)
		}
	}
}

func TestAxis(t *testing.T) {
	for _, a := range Axes {
		if !a.Valid() {
			t.Errorf("%s should be valid", a)
		}
		if a.Opposite().Opposite() != a {
			t.Errorf("%s opposite is not an involution", a)
		}
		if a.Opposite().Dimension() != a.Dimension() {
			t.Errorf("%s and its opposite have different dimensions", a)
		}
		if Axes[a.Slot()] != a {
			t.Errorf("Axes[%d] = %s, want %s", a.Slot(), Axes[a.Slot()], a)
		}
	}
	if Centroid.Valid() {
		t.Error("Centroid should not be a movement axis")
	}
	if Axis('Q').Slot() != -1 {
		t.Error("unknown axis should have slot -1")
	}
}

func TestParse_KeepsBlocks(t *testing.T) {
	spec, err := Parse("n2e3w1-1")
	if err != nil {
		t.Fatal(err)
	}
	want := []Move{{North, 2}, {East, 3}, {West, 1}}
	if diff := cmp.Diff(want, spec.Blocks); diff != "" {
		t.Errorf("Blocks mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, spec.Path()); diff != "" {
		t.Errorf("Path() mismatch (-want +got):\n%s", diff)
	}
	if spec.Key() != "N2E2" {
		t.Errorf("Key() = %q, want N2E2", spec.Key())
	}

	bare := &PathSpec{Moves: []Move{{North, 1}}}
	if diff := cmp.Diff(bare.Moves, bare.Path()); diff != "" {
		t.Errorf("Path() without blocks should fall back to Moves:\n%s", diff)
	}
}

func TestKeyBlocks(t *testing.T) {
	tests := []struct {
		key  string
		want []Move
	}{
		{"n3n4", []Move{{North, 3}, {North, 4}}},
		{"E3N2W1", []Move{{East, 3}, {North, 2}, {West, 1}}},
		{"CENTROID", nil},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := KeyBlocks(tt.key)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("KeyBlocks(%q) mismatch (-want +got):\n%s", tt.key, diff)
			}
		})
	}
}
