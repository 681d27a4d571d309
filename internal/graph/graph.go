// Package graph implements the radgraph spatial structure: an arena of nodes
// linked along six axes around a permanent root, with path-order canonical
// lookup, ordered insertion and threshold-bounded cluster discovery.
//
// A Graph is not safe for concurrent use. Hosts with more than one caller must
// serialize Add and Remove against Clusters and the read queries.
package graph

import (
	"log/slog"

	"github.com/google/uuid"

	"radgraph/internal/pathspec"
	"radgraph/internal/slogutil"
)

// DefaultMaxPermutations bounds canonical lookup to 8! orderings, which covers
// every path of up to eight moves.
const DefaultMaxPermutations = 40320

// Options configures a Graph.
type Options struct {
	// MaxPermutations caps the orderings examined by canonical lookup.
	// Zero or negative means DefaultMaxPermutations.
	MaxPermutations int

	// Logger receives debug traces of mutations and canonical lookups.
	// Nil discards.
	Logger *slog.Logger
}

// DefaultOptions returns the options used by New(DefaultOptions()).
func DefaultOptions() Options {
	return Options{MaxPermutations: DefaultMaxPermutations}
}

// Graph owns the index, the root and the canonicalizer.
type Graph struct {
	id     string
	index  *Index
	root   NodeID
	canon  *Canonicalizer
	logger *slog.Logger
}

// New creates a graph holding only a vacant root.
func New(opts Options) *Graph {
	if opts.MaxPermutations <= 0 {
		opts.MaxPermutations = DefaultMaxPermutations
	}
	logger := opts.Logger
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}

	id := uuid.New().String()
	ix := newIndex()
	root, _ := ix.Insert(newNode(Location{Key: pathspec.RootKey}, Vacant))

	g := &Graph{
		id:     id,
		index:  ix,
		root:   root,
		logger: logger.With("graph", id[:8]),
	}
	g.canon = &Canonicalizer{index: ix, maxPermutations: opts.MaxPermutations, logger: g.logger}
	return g
}

// ID returns the unique identifier of this graph instance.
func (g *Graph) ID() string {
	return g.id
}

// Root returns the centroid.
func (g *Graph) Root() *Node {
	return g.index.Node(g.root)
}

// Index exposes the location index for read-only queries.
func (g *Graph) Index() *Index {
	return g.index
}

// Canonicalizer returns the graph's canonical resolver.
func (g *Graph) Canonicalizer() *Canonicalizer {
	return g.canon
}

// Node returns the node with the given ID, or nil.
func (g *Graph) Node(id NodeID) *Node {
	return g.index.Node(id)
}

// journal records structural changes of one command so they can be undone.
type journal struct {
	links   []linkChange
	created []NodeID
}

type linkChange struct {
	node NodeID
	slot int
	prev NodeID
}

// setLink points node's slot at target, remembering the previous value.
func (g *Graph) setLink(j *journal, node NodeID, slot int, target NodeID) {
	n := g.index.Node(node)
	j.links = append(j.links, linkChange{node: node, slot: slot, prev: n.links[slot]})
	n.links[slot] = target
}

// connect links a to b along axis and b back to a along the opposite axis.
// All link writes go through here so the pair is always updated together.
func (g *Graph) connect(j *journal, a NodeID, axis pathspec.Axis, b NodeID) {
	g.setLink(j, a, axis.Slot(), b)
	g.setLink(j, b, axis.Opposite().Slot(), a)
}

// rollback undoes every change in j, newest first.
func (g *Graph) rollback(j *journal) {
	for i := len(j.links) - 1; i >= 0; i-- {
		c := j.links[i]
		if n := g.index.Node(c.node); n != nil {
			n.links[c.slot] = c.prev
		}
	}
	for i := len(j.created) - 1; i >= 0; i-- {
		if n := g.index.Node(j.created[i]); n != nil {
			g.index.Erase(n.Location.Key)
		}
	}
	g.logger.Debug("Rolled back insertion", "links", len(j.links), "nodes", len(j.created))
}
