package topo

import (
	"cmp"

	"github.com/google/uuid"
)

// transitive builds a new Graph over the same vertices and indices as g,
// keeping edge (x, y) iff keep accepts the longest path length from x to y.
// The vertex tables are shared with g (both are immutable); only the edge
// table is new.
func transitive[V cmp.Ordered](g *Graph[V], keep func(length int) bool) *Graph[V] {
	n := g.Len()
	succ := make([][]Index, n)
	for x := 0; x < n; x++ {
		lengths := LongestFrom(g, Index(x))
		// Only indices above x can be reachable, so the 0 sentinel
		// never conflates "unreachable" with "is the source" here.
		for y := x + 1; y < n; y++ {
			if keep(lengths[y]) {
				succ[x] = append(succ[x], Index(y))
			}
		}
	}
	return &Graph[V]{
		epoch: uuid.New(),
		verts: g.verts,
		index: g.index,
		succ:  succ,
	}
}

// Closure returns the transitive closure of g: an edge (x, y) exists iff any
// path from x to y exists in g. Cost is O(V*(V+E)).
func Closure[V cmp.Ordered](g *Graph[V]) *Graph[V] {
	return transitive(g, func(length int) bool { return length != 0 })
}

// Reduction returns the transitive reduction of g: the minimal edge set with
// the same reachability relation. For a DAG an edge (x, y) survives iff the
// longest path from x to y is exactly one hop - any longer path would make
// the direct edge redundant. Cost is O(V*(V+E)).
//
// Reduction and Closure commute: Reduction(Closure(g)) equals Reduction(g)
// and Closure(Reduction(g)) equals Closure(g).
func Reduction[V cmp.Ordered](g *Graph[V]) *Graph[V] {
	return transitive(g, func(length int) bool { return length == 1 })
}
