package graph

import (
	"sort"

	rgerrors "radgraph/internal/errors"
)

// Cluster is a set of populated nodes connected through edges no longer than
// the threshold it was found with.
type Cluster struct {
	ID    int      `json:"id"`
	Keys  []string `json:"keys"`
	Nodes []NodeID `json:"nodes"`
	Size  int      `json:"size"`
	// Sum is the total of member values.
	Sum int `json:"sum"`
}

// EdgeLength is the step count separating two linked nodes. Chain siblings
// share a depth and differ by their last step; a parent and its first child
// are separated by the child's last step.
func EdgeLength(a, b *Node) int {
	da, db := a.Location.Depth(), b.Location.Depth()
	switch {
	case da == db:
		d := a.Location.LastStep() - b.Location.LastStep()
		if d < 0 {
			d = -d
		}
		return d
	case da > db:
		return a.Location.LastStep()
	default:
		return b.Location.LastStep()
	}
}

// Clusters partitions the populated nodes into connected sets where every
// traversed edge has EdgeLength <= threshold. Vacant nodes neither join nor
// bridge clusters. Sets with a single member are dropped.
//
// Traversal is depth-first from every node in key order; a node already
// placed is never revisited, so the sets are disjoint. Results are ordered by
// size, largest first, then by first key.
func (g *Graph) Clusters(threshold int) ([]Cluster, error) {
	if threshold < 0 {
		return nil, rgerrors.Newf(rgerrors.InvalidThreshold, "threshold %d is negative", threshold).
			WithDetails(map[string]int{"threshold": threshold})
	}

	visited := make(map[NodeID]bool, g.index.Size())
	var clusters []Cluster

	for _, key := range g.index.Keys() {
		start := g.index.byKey[key]
		if visited[start] || g.index.Node(start).IsVacant() {
			continue
		}
		visited[start] = true

		members := g.expand(start, threshold, visited)
		if len(members) < 2 {
			continue
		}
		clusters = append(clusters, g.newCluster(members))
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		if clusters[i].Size != clusters[j].Size {
			return clusters[i].Size > clusters[j].Size
		}
		return clusters[i].Keys[0] < clusters[j].Keys[0]
	})
	for i := range clusters {
		clusters[i].ID = i + 1
	}

	g.logger.Debug("Found clusters", "threshold", threshold, "count", len(clusters))
	return clusters, nil
}

// expand runs an iterative DFS from start and returns the reached members.
func (g *Graph) expand(start NodeID, threshold int, visited map[NodeID]bool) []NodeID {
	stack := []NodeID{start}
	var members []NodeID
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		members = append(members, id)

		n := g.index.Node(id)
		for _, nb := range n.links {
			if nb == NoNode || visited[nb] {
				continue
			}
			m := g.index.Node(nb)
			if m.IsVacant() || EdgeLength(n, m) > threshold {
				continue
			}
			visited[nb] = true
			stack = append(stack, nb)
		}
	}
	return members
}

func (g *Graph) newCluster(members []NodeID) Cluster {
	sort.Slice(members, func(i, j int) bool {
		return g.index.Node(members[i]).Key() < g.index.Node(members[j]).Key()
	})
	c := Cluster{
		Nodes: members,
		Keys:  make([]string, len(members)),
		Size:  len(members),
	}
	for i, id := range members {
		n := g.index.Node(id)
		c.Keys[i] = n.Key()
		c.Sum += n.Value
	}
	return c
}
