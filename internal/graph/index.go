package graph

import (
	"sort"

	rgerrors "radgraph/internal/errors"
)

// Index maps coordinate keys to nodes and owns the node arena. A NodeID is
// the node's position in the arena.
type Index struct {
	nodes []*Node
	byKey map[string]NodeID
}

func newIndex() *Index {
	return &Index{
		nodes: make([]*Node, 0, 64),
		byKey: make(map[string]NodeID),
	}
}

// Insert registers n under its key and assigns its ID. It fails with
// DuplicateKey if the key is already present; callers resolve through the
// canonicalizer first, so this is an assertion rather than a user error.
func (ix *Index) Insert(n *Node) (NodeID, error) {
	key := n.Location.Key
	if _, ok := ix.byKey[key]; ok {
		return NoNode, rgerrors.Newf(rgerrors.DuplicateKey, "key %q already indexed", key)
	}
	id := NodeID(len(ix.nodes))
	n.ID = id
	ix.nodes = append(ix.nodes, n)
	ix.byKey[key] = id
	return id, nil
}

// Find returns the node stored under key.
func (ix *Index) Find(key string) (*Node, bool) {
	id, ok := ix.byKey[key]
	if !ok {
		return nil, false
	}
	return ix.nodes[id], true
}

// Node returns the node with the given ID, or nil if it was erased.
func (ix *Index) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(ix.nodes) {
		return nil
	}
	return ix.nodes[id]
}

// Erase removes an unlinked node. The root (ID 0) and nodes that still have
// neighbors are never erased; graph deletion is logical and goes through
// Graph.Remove instead.
func (ix *Index) Erase(key string) bool {
	id, ok := ix.byKey[key]
	if !ok || id == 0 || ix.nodes[id].Linked() {
		return false
	}
	delete(ix.byKey, key)
	if int(id) == len(ix.nodes)-1 {
		ix.nodes[id] = nil
		ix.nodes = ix.nodes[:id]
	} else {
		ix.nodes[id] = nil
	}
	return true
}

// Size returns the number of indexed nodes, root included.
func (ix *Index) Size() int {
	return len(ix.byKey)
}

// CountVacant returns the number of placeholder nodes.
func (ix *Index) CountVacant() int {
	count := 0
	for _, id := range ix.byKey {
		if ix.nodes[id].IsVacant() {
			count++
		}
	}
	return count
}

// Keys returns all keys in sorted order.
func (ix *Index) Keys() []string {
	keys := make([]string, 0, len(ix.byKey))
	for k := range ix.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
