package batch

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"cmds.txt", Text},
		{"cmds", Text},
		{"cmds.yaml", YAML},
		{"CMDS.YML", YAML},
		{"cmds.toml", TOML},
		{"cmds.toml.gz", TOML},
		{"cmds.yaml.zst", YAML},
		{"cmds.txt.gz", Text},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.name); got != tt.want {
				t.Errorf("DetectFormat(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestDecode_Text(t *testing.T) {
	input := "# seed data\nA2-45\n\n  a2w2-10  \n# done\nN5-1\n"

	src, err := Decode(strings.NewReader(input), "seed.txt")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := []Command{
		{Text: "A2-45", Line: 2, Index: 1},
		{Text: "a2w2-10", Line: 4, Index: 2},
		{Text: "N5-1", Line: 6, Index: 3},
	}
	if diff := cmp.Diff(want, src.Commands); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_YAML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Command
	}{
		{
			name:  "commands key",
			input: "name: seed\ncommands:\n  - A2-45\n  - A2W2-10\n",
			want:  []Command{{Text: "A2-45", Line: 3, Index: 1}, {Text: "A2W2-10", Line: 4, Index: 2}},
		},
		{
			name:  "bare list",
			input: "- N3-1\n- N7-2\n",
			want:  []Command{{Text: "N3-1", Line: 1, Index: 1}, {Text: "N7-2", Line: 2, Index: 2}},
		},
		{
			name:  "empty document",
			input: "",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Decode(strings.NewReader(tt.input), "seed.yaml")
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, src.Commands); diff != "" {
				t.Errorf("commands mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_YAMLErrors(t *testing.T) {
	for _, input := range []string{
		"other: [A1-1]\n",
		"commands: A1-1\n",
		"commands:\n  - {a: 1}\n",
		"commands: [\n",
	} {
		if _, err := Decode(strings.NewReader(input), "bad.yml"); err == nil {
			t.Errorf("Decode(%q) should fail", input)
		}
	}
}

func TestDecode_TOML(t *testing.T) {
	src, err := Decode(strings.NewReader(`commands = ["E3N2-9", " N2E3-1 "]`), "seed.toml")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := []Command{{Text: "E3N2-9", Index: 1}, {Text: "N2E3-1", Index: 2}}
	if diff := cmp.Diff(want, src.Commands); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}

	if _, err := Decode(strings.NewReader(`other = 1`), "seed.toml"); err == nil {
		t.Error("TOML without commands should fail")
	}
}

func TestDecode_Compressed(t *testing.T) {
	plain := "A2-45\nA2W2-10\n"

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	zw.Write([]byte(plain))
	zw.Close()

	var zs bytes.Buffer
	enc, err := zstd.NewWriter(&zs)
	if err != nil {
		t.Fatal(err)
	}
	enc.Write([]byte(plain))
	enc.Close()

	tests := []struct {
		name string
		data []byte
	}{
		{"seed.txt.gz", gz.Bytes()},
		{"seed.txt.zst", zs.Bytes()},
		{"seed-without-suffix", gz.Bytes()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Decode(bytes.NewReader(tt.data), tt.name)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if len(src.Commands) != 2 || src.Commands[1].Text != "A2W2-10" {
				t.Errorf("commands = %+v, want the two plain-text lines", src.Commands)
			}
		})
	}
}
