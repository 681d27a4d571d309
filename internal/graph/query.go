package graph

import (
	"radgraph/internal/pathspec"
)

// FindResult reports whether a coordinate exists and holds a given value.
type FindResult struct {
	Node       NodeID     `json:"node"`
	Key        string     `json:"key,omitempty"`
	Exists     bool       `json:"exists"`
	ValueMatch bool       `json:"valueMatch"`
	Resolution Resolution `json:"resolution"`
}

// Find looks spec's coordinate up canonically and compares its value with
// spec.Value. A missing coordinate is a normal result, not an error.
func (g *Graph) Find(spec *pathspec.PathSpec) FindResult {
	n, res := g.resolve(spec.Path())
	if n == nil {
		return FindResult{Node: NoNode, Resolution: res}
	}
	return FindResult{
		Node:       n.ID,
		Key:        n.Key(),
		Exists:     true,
		ValueMatch: n.Value == spec.Value,
		Resolution: res,
	}
}

// Lookup resolves a coordinate key, such as "E3N2" or "CENTROID", to its node
// or an equivalent one.
func (g *Graph) Lookup(key string) (*Node, bool, error) {
	moves, err := pathspec.KeyBlocks(key)
	if err != nil {
		return nil, false, err
	}
	n, _ := g.resolve(moves)
	return n, n != nil, nil
}

// Remove marks the node at key vacant. Links and the index entry stay; only the
// payload is dropped. It returns the node and whether one was found.
func (g *Graph) Remove(key string) (*Node, bool, error) {
	n, ok, err := g.Lookup(key)
	if err != nil || !ok {
		return nil, false, err
	}
	prev := n.Value
	n.Value = Vacant
	g.logger.Debug("Removed node value", "key", n.Key(), "previous", prev)
	return n, true, nil
}

// resolve takes the blocks as written.
func (g *Graph) resolve(moves []pathspec.Move) (*Node, Resolution) {
	if len(pathspec.Normalize(moves)) == 0 {
		return g.Root(), Resolution{Key: pathspec.RootKey, Node: g.root, Candidates: 1, Exhaustive: true}
	}
	res := g.canon.Resolve(moves)
	if !res.Found() {
		return nil, res
	}
	return g.index.Node(res.Node), res
}

// Size returns the total number of nodes, root and placeholders included.
func (g *Graph) Size() int {
	return g.index.Size()
}

// VacantCount returns the number of nodes without a payload.
func (g *Graph) VacantCount() int {
	return g.index.CountVacant()
}

// Entry is a key and its node, as produced by Entries.
type Entry struct {
	Key  string
	Node *Node
}

// Entries lists every node in key order.
func (g *Graph) Entries() []Entry {
	keys := g.index.Keys()
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		n, _ := g.index.Find(k)
		entries = append(entries, Entry{Key: k, Node: n})
	}
	return entries
}

// ValueFrequencies counts how often each payload value occurs. Vacant nodes
// are not counted.
func (g *Graph) ValueFrequencies() map[int]int {
	freq := make(map[int]int)
	for _, id := range g.index.byKey {
		n := g.index.nodes[id]
		if !n.IsVacant() {
			freq[n.Value]++
		}
	}
	return freq
}

// Neighbor is one occupied link slot of a node.
type Neighbor struct {
	Axis   pathspec.Axis `json:"axis"`
	Key    string        `json:"key"`
	Value  int           `json:"value"`
	Vacant bool          `json:"vacant"`
}

// Neighbors lists the occupied link slots of the node at key, in slot order
// (ascend, descend, north, south, east, west).
func (g *Graph) Neighbors(key string) ([]Neighbor, bool) {
	n, ok := g.index.Find(key)
	if !ok {
		return nil, false
	}
	var out []Neighbor
	for _, axis := range pathspec.Axes {
		id := n.Link(axis)
		if id == NoNode {
			continue
		}
		m := g.index.Node(id)
		out = append(out, Neighbor{Axis: axis, Key: m.Key(), Value: m.Value, Vacant: m.IsVacant()})
	}
	return out, true
}

// Stats summarizes the graph.
type Stats struct {
	ID        string `json:"id"`
	Nodes     int    `json:"nodes"`
	Vacant    int    `json:"vacant"`
	Populated int    `json:"populated"`
	Links     int    `json:"links"`
	MaxDepth  int    `json:"maxDepth"`
}

// Stats counts nodes, undirected links and the deepest path.
func (g *Graph) Stats() Stats {
	s := Stats{ID: g.id}
	slots := 0
	for _, id := range g.index.byKey {
		n := g.index.nodes[id]
		s.Nodes++
		if n.IsVacant() {
			s.Vacant++
		}
		if d := n.Location.Depth(); d > s.MaxDepth {
			s.MaxDepth = d
		}
		for _, l := range n.links {
			if l != NoNode {
				slots++
			}
		}
	}
	s.Populated = s.Nodes - s.Vacant
	s.Links = slots / 2
	return s
}
