package batch

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

// Format is the layout of a command source.
type Format int

const (
	// Text holds one command per line; blank lines and # comments are skipped.
	Text Format = iota
	// YAML holds a "commands" list, or a bare top-level list.
	YAML
	// TOML holds a commands = [...] array.
	TOML
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	default:
		return "text"
	}
}

// Command is one raw command and where it came from.
type Command struct {
	Text string `json:"command"`
	// Line is the 1-based line in the decompressed source, 0 if the format
	// does not track lines.
	Line int `json:"line,omitempty"`
	// Index is the 1-based position of the command in its source.
	Index int `json:"index"`
}

// Source is a decoded command file.
type Source struct {
	Name     string    `json:"name"`
	Format   Format    `json:"-"`
	Commands []Command `json:"commands"`
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// DetectFormat picks the format from the file name, ignoring a trailing
// .gz or .zst.
func DetectFormat(name string) Format {
	base := strings.ToLower(filepath.Base(name))
	base = strings.TrimSuffix(strings.TrimSuffix(base, ".gz"), ".zst")
	switch filepath.Ext(base) {
	case ".yaml", ".yml":
		return YAML
	case ".toml":
		return TOML
	default:
		return Text
	}
}

// Decode reads a source named name from r. Compression is recognized by its
// magic bytes, so a compressed stream need not carry the .gz or .zst suffix.
func Decode(r io.Reader, name string) (*Source, error) {
	br := bufio.NewReader(r)
	rc, err := decompress(br)
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}

	src := &Source{Name: name, Format: DetectFormat(name)}
	switch src.Format {
	case YAML:
		src.Commands, err = decodeYAML(data)
	case TOML:
		src.Commands, err = decodeTOML(data)
	default:
		src.Commands, err = decodeText(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Format, err)
	}
	return src, nil
}

func decompress(br *bufio.Reader) (io.ReadCloser, error) {
	head, _ := br.Peek(len(zstdMagic))
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return zr, nil
	case bytes.HasPrefix(head, zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	default:
		return io.NopCloser(br), nil
	}
}

func decodeText(data []byte) ([]Command, error) {
	var cmds []Command
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cmds = append(cmds, Command{Text: text, Line: line, Index: len(cmds) + 1})
	}
	return cmds, sc.Err()
}

func decodeYAML(data []byte) ([]Command, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	list := doc.Content[0]
	if list.Kind == yaml.MappingNode {
		list = nil
		for i := 0; i+1 < len(doc.Content[0].Content); i += 2 {
			if doc.Content[0].Content[i].Value == "commands" {
				list = doc.Content[0].Content[i+1]
				break
			}
		}
		if list == nil {
			return nil, fmt.Errorf("no commands key")
		}
	}
	if list.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: commands must be a list", list.Line)
	}

	cmds := make([]Command, 0, len(list.Content))
	for _, item := range list.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: command must be a string", item.Line)
		}
		cmds = append(cmds, Command{Text: strings.TrimSpace(item.Value), Line: item.Line, Index: len(cmds) + 1})
	}
	return cmds, nil
}

type tomlSource struct {
	Commands []string `toml:"commands"`
}

func decodeTOML(data []byte) ([]Command, error) {
	var doc tomlSource
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, err
	}
	if !md.IsDefined("commands") {
		return nil, fmt.Errorf("no commands key")
	}
	cmds := make([]Command, len(doc.Commands))
	for i, c := range doc.Commands {
		cmds[i] = Command{Text: strings.TrimSpace(c), Index: i + 1}
	}
	return cmds, nil
}
