package pathspec

import (
	"math"
	"sort"
)

// Permutations returns the distinct coordinate keys reachable by reordering
// the blocks (moves) of a path. Each ordering is normalized before it is
// rendered, so an ordering that brings two moves of one dimension together
// yields the shorter key it collapses to (N2E3W1 reordered as N2W1E3 gives
// N2E2). The normalized key of the unpermuted moves is always first.
//
// At most limit orderings are examined (limit <= 0 means no limit). The
// returned flag is false when orderings remained unexamined, i.e. the key set
// is not a complete equivalence class. A path of n distinct moves has n!
// orderings.
func Permutations(moves []Move, limit int) ([]string, bool) {
	first := Key(Normalize(moves))
	keys := []string{first}
	if len(moves) < 2 {
		return keys, true
	}

	seen := map[string]bool{first: true}
	perm := make([]Move, len(moves))
	copy(perm, moves)
	sort.Slice(perm, func(i, j int) bool { return lessMove(perm[i], perm[j]) })

	examined := 0
	for {
		if limit > 0 && examined >= limit {
			return keys, false
		}
		examined++

		if key := Key(Normalize(perm)); !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}

		if !nextPermutation(perm) {
			return keys, true
		}
	}
}

// PermutationCount returns the number of distinct orderings of moves,
// saturating at max when max > 0 and at math.MaxInt otherwise.
func PermutationCount(moves []Move, max int) int {
	limit := max
	if limit <= 0 {
		limit = math.MaxInt
	}
	counts := make(map[Move]int)
	for _, m := range moves {
		counts[m]++
	}
	// n! / prod(k_i!) computed incrementally to stay small.
	total := 1
	placed := 0
	for _, k := range counts {
		for i := 1; i <= k; i++ {
			placed++
			if total > math.MaxInt/placed {
				return limit
			}
			total = total * placed / i
			if total >= limit {
				return limit
			}
		}
	}
	return total
}

func lessMove(a, b Move) bool {
	if a.Axis != b.Axis {
		return a.Axis < b.Axis
	}
	return a.Steps < b.Steps
}

// nextPermutation rearranges p into its lexicographic successor and reports
// whether one existed. Duplicate moves yield each distinct ordering once.
func nextPermutation(p []Move) bool {
	i := len(p) - 2
	for i >= 0 && !lessMove(p[i], p[i+1]) {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(p) - 1
	for !lessMove(p[i], p[j]) {
		j--
	}
	p[i], p[j] = p[j], p[i]
	for l, r := i+1, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}
