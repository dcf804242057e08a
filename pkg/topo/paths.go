package topo

import "cmp"

// Merge combines the current best path length for a vertex with a newly
// discovered candidate. cur is 0 while no path has been found; cand is always
// at least 1.
type Merge func(cur, cand int) int

// ShortestMerge keeps the smaller length, treating 0 as "no path yet" rather
// than as a real length.
func ShortestMerge(cur, cand int) int {
	if cur == 0 || cand < cur {
		return cand
	}
	return cur
}

// LongestMerge keeps the larger length. Longest paths are well-defined here
// because the graph is acyclic.
func LongestMerge(cur, cand int) int {
	if cand > cur {
		return cand
	}
	return cur
}

// PathLengths computes, for every vertex, the merged path length in edges
// from source, in a single pass over the topological order.
//
// Slot i of the result holds the best length from source to index i, or 0 if
// i is the source itself or unreachable from it. The two meanings of 0 are
// deliberately not distinguished; callers that need reachability should track
// it separately (the source can never be re-relaxed, since every edge targets
// a strictly higher index).
//
// The frontier is processed in ascending index order. Because edges only go
// from lower to higher index, a vertex can only be relaxed by vertices with
// a smaller index, so each vertex is final when reached and no vertex is ever
// reprocessed. Total cost is O(V + E).
func PathLengths[V cmp.Ordered](g *Graph[V], merge Merge, source Index) []int {
	n := g.Len()
	dist := make([]int, n)
	reached := make([]bool, n)
	reached[source] = true

	for x := int(source); x < n; x++ {
		if !reached[x] {
			continue
		}
		for _, y := range g.Successors(Index(x)) {
			dist[y] = merge(dist[y], dist[x]+1)
			reached[y] = true
		}
	}
	return dist
}

// ShortestFrom returns the shortest path length in edges from source to every
// vertex, with the 0 sentinel of [PathLengths].
func ShortestFrom[V cmp.Ordered](g *Graph[V], source Index) []int {
	return PathLengths(g, ShortestMerge, source)
}

// LongestFrom returns the longest path length in edges from source to every
// vertex, with the 0 sentinel of [PathLengths].
func LongestFrom[V cmp.Ordered](g *Graph[V], source Index) []int {
	return PathLengths(g, LongestMerge, source)
}
