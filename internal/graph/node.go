package graph

import "radgraph/internal/pathspec"

// NodeID addresses a node in the index arena. IDs are stable for the life of
// the node.
type NodeID int

// NoNode marks an absent neighbor.
const NoNode NodeID = -1

// Vacant is the value of a placeholder node.
const Vacant = pathspec.Vacant

// Location is the coordinate metadata of a node: its key and the moves that
// reach it from the root. Axes and Steps are index-aligned.
type Location struct {
	Key   string          `json:"key"`
	Axes  []pathspec.Axis `json:"axes"`
	Steps []int           `json:"steps"`
}

func newLocation(moves []pathspec.Move) Location {
	loc := Location{
		Key:   pathspec.Key(moves),
		Axes:  make([]pathspec.Axis, len(moves)),
		Steps: make([]int, len(moves)),
	}
	for i, m := range moves {
		loc.Axes[i] = m.Axis
		loc.Steps[i] = m.Steps
	}
	return loc
}

// Depth is the number of moves from the root.
func (l Location) Depth() int {
	return len(l.Axes)
}

// LastStep is the step count of the final move, or 0 for the root.
func (l Location) LastStep() int {
	if len(l.Steps) == 0 {
		return 0
	}
	return l.Steps[len(l.Steps)-1]
}

// Moves rebuilds the move list of the location.
func (l Location) Moves() []pathspec.Move {
	moves := make([]pathspec.Move, len(l.Axes))
	for i := range l.Axes {
		moves[i] = pathspec.Move{Axis: l.Axes[i], Steps: l.Steps[i]}
	}
	return moves
}

// Node is one point of the structure with a link slot per axis.
//
// A node at depth k uses the two slots along the dimension of Axes[k-1] for
// its chain: the previous member (or the parent, for the first member) and
// the next member with a larger step count. Every other slot holds a child at
// depth k+1. The root's slots all hold children.
type Node struct {
	ID       NodeID   `json:"id"`
	Value    int      `json:"value"`
	Location Location `json:"location"`
	links    [6]NodeID
}

func newNode(loc Location, value int) *Node {
	n := &Node{ID: NoNode, Value: value, Location: loc}
	for i := range n.links {
		n.links[i] = NoNode
	}
	return n
}

// Key is shorthand for n.Location.Key.
func (n *Node) Key() string {
	return n.Location.Key
}

// IsVacant reports whether n is a placeholder without a payload.
func (n *Node) IsVacant() bool {
	return n.Value == Vacant
}

// Link returns the neighbor in direction a, or NoNode.
func (n *Node) Link(a pathspec.Axis) NodeID {
	slot := a.Slot()
	if slot < 0 {
		return NoNode
	}
	return n.links[slot]
}

// Linked reports whether n has any neighbor.
func (n *Node) Linked() bool {
	for _, id := range n.links {
		if id != NoNode {
			return true
		}
	}
	return false
}
