package graph

import (
	"fmt"

	rgerrors "radgraph/internal/errors"
	"radgraph/internal/pathspec"
)

// Outcome is the structural effect of one step of an insertion walk.
type Outcome int

const (
	// Created attached a new node at the open end of a chain.
	Created Outcome = iota
	// SplicedBefore inserted a new node ahead of a neighbor with a larger step count.
	SplicedBefore
	// AdvancedAlongChain moved past a neighbor with a smaller step count.
	AdvancedAlongChain
	// SteppedToNextAxis landed on an existing node and moved to the next move.
	SteppedToNextAxis
	// Revalued overwrote the value of an existing node.
	Revalued
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case SplicedBefore:
		return "spliced-before"
	case AdvancedAlongChain:
		return "advanced-along-chain"
	case SteppedToNextAxis:
		return "stepped-to-next-axis"
	case Revalued:
		return "revalued"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// MarshalText renders the outcome name in JSON output.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Step is one iteration of the insertion walk.
type Step struct {
	Index   int           `json:"index"`
	Axis    pathspec.Axis `json:"axis,omitempty"`
	Steps   int           `json:"steps"`
	Outcome Outcome       `json:"outcome"`
	Node    NodeID        `json:"node"`
}

// InsertReport describes what Add did.
type InsertReport struct {
	Key        string     `json:"key"`
	Node       NodeID     `json:"node"`
	Value      int        `json:"value"`
	Previous   int        `json:"previous"`
	Created    []NodeID   `json:"created,omitempty"`
	Steps      []Step     `json:"steps,omitempty"`
	Resolution Resolution `json:"resolution"`
}

// Replaced reports whether the insert overwrote an existing payload.
func (r *InsertReport) Replaced() bool {
	return len(r.Created) == 0 && r.Previous != Vacant
}

// AddCommand parses raw and inserts it.
func (g *Graph) AddCommand(raw string) (*InsertReport, error) {
	spec, err := pathspec.Parse(raw)
	if err != nil {
		return nil, err
	}
	return g.Add(spec)
}

// Add places spec.Value at the end of spec's path, creating placeholder nodes
// along the way as needed. If an equivalent location already exists, exact key
// or a reordering of the written blocks, that node is revalued instead.
//
// Add is atomic: on error the graph is left exactly as it was.
func (g *Graph) Add(spec *pathspec.PathSpec) (*InsertReport, error) {
	blocks := spec.Path()
	if err := validateMoves(blocks); err != nil {
		return nil, err
	}

	moves := pathspec.Normalize(blocks)
	if len(moves) == 0 {
		return g.revalue(g.root, spec.Value, Resolution{Key: pathspec.RootKey, Node: g.root, Candidates: 1, Exhaustive: true}), nil
	}

	res := g.canon.Resolve(blocks)
	if res.Found() {
		return g.revalue(res.Node, spec.Value, res), nil
	}

	j := &journal{}
	report, err := g.walk(j, moves, spec.Value)
	if err != nil {
		g.rollback(j)
		return nil, err
	}
	report.Resolution = res
	g.logger.Debug("Inserted node",
		"key", report.Key,
		"value", report.Value,
		"created", len(report.Created))
	return report, nil
}

func validateMoves(moves []pathspec.Move) error {
	for i, m := range moves {
		if !m.Axis.Valid() {
			return rgerrors.Newf(rgerrors.InvalidDirection,
				"axis %q at move %d is not one of N, S, E, W, A, D", m.Axis.String(), i+1).
				WithDetails(map[string]interface{}{"move": i + 1, "axis": m.Axis.String()})
		}
	}
	return nil
}

func (g *Graph) revalue(id NodeID, value int, res Resolution) *InsertReport {
	n := g.index.Node(id)
	prev := n.Value
	n.Value = value
	g.logger.Debug("Revalued node", "key", n.Key(), "value", value, "previous", prev)
	idx := n.Location.Depth() - 1
	if idx < 0 {
		idx = 0
	}
	return &InsertReport{
		Key:        n.Key(),
		Node:       id,
		Value:      value,
		Previous:   prev,
		Steps:      []Step{{Index: idx, Outcome: Revalued, Node: id}},
		Resolution: res,
	}
}

// walk follows or extends the per-axis chains from the root. At index i the
// current node is the depth-i node reached so far, or a chain member already
// passed over; its neighbor along moves[i] is either absent or the next chain
// member, ordered by Steps[i].
func (g *Graph) walk(j *journal, moves []pathspec.Move, value int) (*InsertReport, error) {
	report := &InsertReport{Key: pathspec.Key(moves), Node: NoNode, Value: value, Previous: Vacant}
	last := len(moves) - 1
	curr := g.root
	i := 0

	for {
		m := moves[i]
		final := i == last
		next := g.index.Node(curr).Link(m.Axis)

		if next == NoNode {
			id, err := g.place(j, moves, i, value)
			if err != nil {
				return nil, err
			}
			g.connect(j, curr, m.Axis, id)
			report.record(i, m, Created, id)
			if final {
				report.Node = id
				return report, nil
			}
			curr = id
			i++
			continue
		}

		nextSteps, err := g.chainSteps(next, i, m.Axis)
		if err != nil {
			return nil, err
		}

		switch {
		case nextSteps == m.Steps:
			if final {
				n := g.index.Node(next)
				report.Previous = n.Value
				n.Value = value
				report.record(i, m, Revalued, next)
				report.Node = next
				return report, nil
			}
			report.record(i, m, SteppedToNextAxis, next)
			curr = next
			i++

		case nextSteps > m.Steps:
			id, err := g.place(j, moves, i, value)
			if err != nil {
				return nil, err
			}
			g.connect(j, id, m.Axis, next)
			g.connect(j, curr, m.Axis, id)
			report.record(i, m, SplicedBefore, id)
			if final {
				report.Node = id
				return report, nil
			}
			curr = id
			i++

		default:
			report.record(i, m, AdvancedAlongChain, next)
			curr = next
		}
	}
}

// place creates and indexes the node for moves[:i+1]: the target when i is the
// last index, a vacant placeholder otherwise.
func (g *Graph) place(j *journal, moves []pathspec.Move, i int, value int) (NodeID, error) {
	if i < len(moves)-1 {
		value = Vacant
	}
	n := newNode(newLocation(moves[:i+1]), value)
	id, err := g.index.Insert(n)
	if err != nil {
		return NoNode, err
	}
	j.created = append(j.created, id)
	return id, nil
}

// chainSteps returns the step count a chain member recorded for move i.
func (g *Graph) chainSteps(id NodeID, i int, axis pathspec.Axis) (int, error) {
	loc := g.index.Node(id).Location
	if loc.Depth() <= i || loc.Axes[i] != axis {
		return 0, rgerrors.Newf(rgerrors.InternalError,
			"node %q is linked along %s but is not a member of that chain", loc.Key, axis.Name())
	}
	return loc.Steps[i], nil
}

func (r *InsertReport) record(i int, m pathspec.Move, o Outcome, id NodeID) {
	r.Steps = append(r.Steps, Step{Index: i, Axis: m.Axis, Steps: m.Steps, Outcome: o, Node: id})
	if o == Created || o == SplicedBefore {
		r.Created = append(r.Created, id)
	}
}
