package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigFile(t *testing.T) {
	base := filepath.Join("some", "dir")
	want := filepath.Join("some", "dir", ".radgraph", "config.toml")
	if got := ConfigFile(base); got != want {
		t.Errorf("ConfigFile(%q) = %q, want %q", base, got, want)
	}
}

func TestEnsureConfigDir(t *testing.T) {
	base := t.TempDir()

	dir, err := EnsureConfigDir(base)
	if err != nil {
		t.Fatalf("EnsureConfigDir failed: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("expected %s to be a directory", dir)
	}

	// Second call is a no-op.
	if _, err := EnsureConfigDir(base); err != nil {
		t.Errorf("second EnsureConfigDir failed: %v", err)
	}
}

func TestFindBase(t *testing.T) {
	root := t.TempDir()
	if _, err := EnsureConfigDir(root); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindBase(nested)
	if err != nil {
		t.Fatalf("FindBase failed: %v", err)
	}
	if got != root {
		t.Errorf("FindBase(%q) = %q, want %q", nested, got, root)
	}

	lonely := t.TempDir()
	got, err = FindBase(lonely)
	if err != nil {
		t.Fatal(err)
	}
	if got != lonely {
		t.Errorf("FindBase without a config dir = %q, want %q", got, lonely)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/cmds.txt", filepath.Join(home, "cmds.txt")},
		{"/abs/cmds.txt", "/abs/cmds.txt"},
		{"rel/~cmds.txt", "rel/~cmds.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandHome(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
