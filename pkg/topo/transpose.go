package topo

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
)

// Transpose returns g with every edge reversed. Vertices are renumbered as
// n-1-i, which keeps the indexing invariant intact: reversing all edges of a
// topologically sorted DAG exactly reverses its valid order.
//
// The reverse edge table is built in a single pass over all edges, so the
// cost is O(V + E). Transpose commutes with [Closure] and [Reduction], and
// applying it twice yields the original adjacency structure.
func Transpose[V cmp.Ordered](g *Graph[V]) *Graph[V] {
	n := g.Len()
	verts := make([]V, n)
	index := make(map[V]Index, n)
	succ := make([][]Index, n)

	for i, v := range g.verts {
		j := Index(n - 1 - i)
		verts[j] = v
		index[v] = j
	}

	for i := range g.succ {
		for _, s := range g.succ[i] {
			// Edge i->s becomes (n-1-s)->(n-1-i).
			succ[n-1-int(s)] = append(succ[n-1-int(s)], Index(n-1-i))
		}
	}
	for i := range succ {
		slices.Sort(succ[i])
	}

	return &Graph[V]{
		epoch: uuid.New(),
		verts: verts,
		index: index,
		succ:  succ,
	}
}
