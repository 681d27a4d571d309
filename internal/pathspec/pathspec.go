package pathspec

import (
	"math"
	"strconv"
	"strings"

	rgerrors "radgraph/internal/errors"
)

// Vacant is the reserved value of a placeholder node. Parse rejects it as a
// payload so a real value can never be mistaken for an empty node.
const Vacant = math.MinInt

// RootKey is the coordinate key of the centroid.
const RootKey = "CENTROID"

const separator = '-'

// Move is one axis letter and its step count.
type Move struct {
	Axis  Axis `json:"axis"`
	Steps int  `json:"steps"`
}

func (m Move) String() string {
	return m.Axis.String() + strconv.Itoa(m.Steps)
}

// PathSpec is a parsed command: the moves from the root and the value to store
// at their end. Moves are always normalized; an empty move list targets the root.
// Blocks keeps the moves as written, which canonical lookup permutes.
type PathSpec struct {
	Raw    string `json:"raw,omitempty"`
	Moves  []Move `json:"moves"`
	Blocks []Move `json:"blocks,omitempty"`
	Value  int    `json:"value"`
}

// New builds a PathSpec from moves that did not come through Parse.
// Moves are normalized but axes are not validated.
func New(moves []Move, value int) *PathSpec {
	blocks := make([]Move, len(moves))
	copy(blocks, moves)
	return &PathSpec{Moves: Normalize(moves), Blocks: blocks, Value: value}
}

// Path returns the moves as written, or the normalized moves when the spec
// was built without them.
func (p *PathSpec) Path() []Move {
	if len(p.Blocks) > 0 {
		return p.Blocks
	}
	return p.Moves
}

// Root reports whether the spec targets the centroid.
func (p *PathSpec) Root() bool {
	return len(p.Moves) == 0
}

// Key returns the coordinate key of the spec's target.
func (p *PathSpec) Key() string {
	return Key(p.Moves)
}

// Format renders the spec back into command form, e.g. A2W2N5-45 or C-7.
func (p *PathSpec) Format() string {
	var b strings.Builder
	if p.Root() {
		b.WriteByte(byte(Centroid))
	} else {
		b.WriteString(p.Key())
	}
	b.WriteByte(separator)
	b.WriteString(strconv.Itoa(p.Value))
	return b.String()
}

// Key renders moves as a coordinate key. No moves renders RootKey.
func Key(moves []Move) string {
	if len(moves) == 0 {
		return RootKey
	}
	var b strings.Builder
	for _, m := range moves {
		b.WriteByte(byte(m.Axis))
		b.WriteString(strconv.Itoa(m.Steps))
	}
	return b.String()
}

// Parse turns a raw command into a normalized PathSpec.
//
// Grammar: (Axis Steps)+ '-' Value, or C '-' Value for the root. Input is
// trimmed and upper-cased; Value may be negative.
func Parse(raw string) (*PathSpec, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return nil, parseErr(raw, "empty command")
	}

	moves, i, err := parseMoves(raw, s)
	if err != nil {
		return nil, err
	}
	if i >= len(s) {
		return nil, parseErr(raw, "missing '-' before the value")
	}

	value, err := parseValue(raw, s[i+1:])
	if err != nil {
		return nil, err
	}

	return &PathSpec{Raw: raw, Moves: Normalize(moves), Blocks: moves, Value: value}, nil
}

// ParseKey parses a coordinate key with no value part, such as A2W2 or
// CENTROID, and returns its normalized moves.
func ParseKey(key string) ([]Move, error) {
	moves, err := KeyBlocks(key)
	if err != nil {
		return nil, err
	}
	return Normalize(moves), nil
}

// KeyBlocks parses a coordinate key like ParseKey but returns the moves as
// written. Lookups use it so that every ordering of the written blocks is
// searched.
func KeyBlocks(key string) ([]Move, error) {
	s := strings.ToUpper(strings.TrimSpace(key))
	if s == RootKey || s == string(Centroid) {
		return nil, nil
	}
	if s == "" {
		return nil, parseErr(key, "empty coordinate")
	}
	moves, i, err := parseMoves(key, s)
	if err != nil {
		return nil, err
	}
	if i < len(s) {
		return nil, parseErr(key, "unexpected '-' in a coordinate")
	}
	return moves, nil
}

// parseMoves consumes axis/step pairs up to the separator and returns the
// index the scan stopped at.
func parseMoves(raw, s string) ([]Move, int, error) {
	var moves []Move
	i := 0
	for i < len(s) && s[i] != separator {
		c := s[i]
		switch {
		case c == byte(Centroid):
			if i != 0 || (i+1 < len(s) && s[i+1] != separator) {
				return nil, i, parseErr(raw, "root symbol C must stand alone")
			}
			i++
			return nil, i, nil
		case Axis(c).Valid():
			j := i + 1
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			if j == i+1 {
				return nil, i, parseErr(raw, "axis "+string(c)+" at position "+strconv.Itoa(i)+" has no step count")
			}
			steps, err := strconv.Atoi(s[i+1 : j])
			if err != nil {
				return nil, i, rgerrors.New(rgerrors.ParseError, "step count out of range in "+strconv.Quote(raw), err)
			}
			moves = append(moves, Move{Axis: Axis(c), Steps: steps})
			i = j
		case isDigit(c):
			return nil, i, parseErr(raw, "step count at position "+strconv.Itoa(i)+" has no axis letter")
		default:
			return nil, i, parseErr(raw, "unexpected character "+strconv.QuoteRune(rune(c))+" at position "+strconv.Itoa(i))
		}
	}
	if len(moves) == 0 {
		return nil, i, parseErr(raw, "no moves before the value")
	}
	return moves, i, nil
}

func parseValue(raw, text string) (int, error) {
	digits := strings.TrimPrefix(text, "-")
	if digits == "" {
		return 0, parseErr(raw, "empty value")
	}
	for k := 0; k < len(digits); k++ {
		if !isDigit(digits[k]) {
			return 0, parseErr(raw, "unexpected character "+strconv.QuoteRune(rune(digits[k]))+" in value")
		}
	}
	value, err := strconv.Atoi(text)
	if err != nil {
		return 0, rgerrors.New(rgerrors.ParseError, "value out of range in "+strconv.Quote(raw), err)
	}
	if value == Vacant {
		return 0, parseErr(raw, "value is reserved for vacant nodes")
	}
	return value, nil
}

// Normalize merges consecutive moves along the same dimension into their net
// move and drops moves that net to zero, repeating until no two adjacent moves
// share a dimension. Negative step counts are flipped onto the opposite axis.
// Moves with unrecognized axes are kept as-is.
func Normalize(moves []Move) []Move {
	out := make([]Move, 0, len(moves))
	for _, m := range moves {
		if m.Axis.Valid() {
			if m.Steps < 0 {
				m = Move{Axis: m.Axis.Opposite(), Steps: -m.Steps}
			}
			if m.Steps == 0 {
				continue
			}
		}
		n := len(out)
		if n > 0 && m.Axis.Valid() && out[n-1].Axis.Valid() &&
			out[n-1].Axis.Dimension() == m.Axis.Dimension() {
			net := signed(out[n-1]) + signed(m)
			out = out[:n-1]
			if net != 0 {
				out = append(out, fromSigned(m.Axis, net))
			}
			continue
		}
		out = append(out, m)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func signed(m Move) int {
	if m.Axis.positive() {
		return m.Steps
	}
	return -m.Steps
}

// fromSigned builds a move along like's dimension from a signed net distance.
func fromSigned(like Axis, net int) Move {
	pos := like
	if !pos.positive() {
		pos = pos.Opposite()
	}
	if net < 0 {
		return Move{Axis: pos.Opposite(), Steps: -net}
	}
	return Move{Axis: pos, Steps: net}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func parseErr(raw, msg string) error {
	return rgerrors.New(rgerrors.ParseError, msg, nil).WithDetails(map[string]string{"command": raw})
}
