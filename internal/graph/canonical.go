package graph

import (
	"log/slog"

	"radgraph/internal/pathspec"
)

// Resolution is the outcome of a canonical lookup.
type Resolution struct {
	// Key is the indexed key that matched, empty if none did.
	Key string `json:"key,omitempty"`
	// Node is the matched node, NoNode if none.
	Node NodeID `json:"node"`
	// Candidates is the number of keys checked against the index.
	Candidates int `json:"candidates"`
	// Exhaustive is false when the permutation cap cut the search short, so a
	// miss does not prove that no equivalent node exists.
	Exhaustive bool `json:"exhaustive"`
}

// Found reports whether an equivalent node was located.
func (r Resolution) Found() bool {
	return r.Node != NoNode
}

// Canonicalizer treats reorderings of the same moves as one location. A path
// like N2E3 reaches the same point as E3N2, so a lookup for either must find
// the node stored under the other. Reorderings are taken over the blocks as
// written and normalized afterwards: E3N2W1 finds a node stored from
// N2E3W1, whose key is N2E2.
//
// Coverage is bounded: at most maxPermutations orderings are checked. With the
// default cap every path of up to eight moves is resolved completely; longer
// paths report Exhaustive=false.
type Canonicalizer struct {
	index           *Index
	maxPermutations int
	logger          *slog.Logger
}

// MaxPermutations returns the ordering cap.
func (c *Canonicalizer) MaxPermutations() int {
	return c.maxPermutations
}

// Candidates returns the keys equivalent to moves, the normalized key first.
func (c *Canonicalizer) Candidates(moves []pathspec.Move) ([]string, bool) {
	return pathspec.Permutations(moves, c.maxPermutations)
}

// Resolve looks for an indexed node equivalent to moves, which may be the
// blocks as written. The normalized key is tried before any permutation.
func (c *Canonicalizer) Resolve(moves []pathspec.Move) Resolution {
	exact := pathspec.Key(pathspec.Normalize(moves))
	if id, ok := c.index.byKey[exact]; ok {
		return Resolution{Key: exact, Node: id, Candidates: 1, Exhaustive: true}
	}

	keys, exhaustive := c.Candidates(moves)
	res := Resolution{Node: NoNode, Candidates: len(keys), Exhaustive: exhaustive}
	for _, key := range keys {
		if id, ok := c.index.byKey[key]; ok {
			res.Key = key
			res.Node = id
			res.Exhaustive = true
			c.logger.Debug("Resolved equivalent coordinate", "key", exact, "match", key)
			return res
		}
	}

	if !exhaustive {
		c.logger.Warn("Canonical lookup hit the permutation cap",
			"key", exact,
			"moves", len(moves),
			"cap", c.maxPermutations,
			"orderings", pathspec.PermutationCount(moves, 0))
	}
	return res
}
