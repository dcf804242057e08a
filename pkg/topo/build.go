package topo

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// CycleError proves the input graph is not acyclic. Walk is a closed walk in
// original vertex terms: the first and last vertex are identical and every
// consecutive pair is an edge of the input. A self-loop on a is reported as
// [a, a].
type CycleError[V cmp.Ordered] struct {
	Walk []V
}

// Error implements the error interface.
func (e *CycleError[V]) Error() string {
	parts := make([]string, len(e.Walk))
	for i, v := range e.Walk {
		parts[i] = fmt.Sprint(v)
	}
	return "graph contains a cycle: " + strings.Join(parts, " -> ")
}

// Build converts an adjacency map into a topologically indexed [Graph], or
// fails with a [*CycleError] if any directed cycle exists.
//
// Only the map's keys become vertices: n equals the number of distinct keys,
// and successors that never appear as a key are dropped (they have no
// outgoing edges and no index). Duplicate successors are tolerated. The input
// map is never mutated.
//
// Build is deterministic: the resulting index assignment depends only on the
// contents of adj, with ties broken by the natural order of V.
func Build[V cmp.Ordered](adj map[V][]V) (*Graph[V], error) {
	verts := slices.Sorted(maps.Keys(adj))
	index := make(map[V]Index, len(verts))

	order := sortCandidate(adj, verts)
	for i, v := range order {
		index[v] = Index(i)
	}

	// The sort silently tolerates cycles, so the invariant is verified
	// explicitly: every edge must go from a lower index to a higher one.
	for _, u := range order {
		for _, v := range sortedSuccessors(adj, index, u) {
			if index[u] >= index[v] {
				return nil, &CycleError[V]{Walk: witness(adj, index, u, v)}
			}
		}
	}

	succ := make([][]Index, len(order))
	for i, u := range order {
		targets := sortedSuccessors(adj, index, u)
		ix := make([]Index, len(targets))
		for k, v := range targets {
			ix[k] = index[v]
		}
		slices.Sort(ix)
		succ[i] = slices.Compact(ix)
	}

	return &Graph[V]{
		epoch: uuid.New(),
		verts: order,
		index: index,
		succ:  succ,
	}, nil
}

// Run builds a Graph from adj and passes it to fn, keeping the view and its
// indices scoped to the callback. If construction fails the [*CycleError] is
// returned and fn is never called.
func Run[V cmp.Ordered](adj map[V][]V, fn func(*Graph[V]) error) error {
	g, err := Build(adj)
	if err != nil {
		return err
	}
	return fn(g)
}

// sortCandidate produces a candidate topological order of verts via iterative
// DFS postorder. Roots and successors are taken in ascending vertex order so
// the result is independent of map iteration order. Cycles are tolerated
// here; Build catches them in the verification pass.
func sortCandidate[V cmp.Ordered](adj map[V][]V, verts []V) []V {
	const (
		white = iota
		gray
		black
	)

	color := make(map[V]int, len(verts))
	post := make([]V, 0, len(verts))

	var dfs func(v V)
	dfs = func(v V) {
		color[v] = gray
		for _, s := range uniqueKeyed(adj, v) {
			if color[s] == white {
				dfs(s)
			}
		}
		color[v] = black
		post = append(post, v)
	}

	for _, v := range verts {
		if color[v] == white {
			dfs(v)
		}
	}

	slices.Reverse(post)
	return post
}

// uniqueKeyed returns the successors of v that are themselves keys of adj,
// deduplicated and in ascending vertex order.
func uniqueKeyed[V cmp.Ordered](adj map[V][]V, v V) []V {
	ss := make([]V, 0, len(adj[v]))
	for _, s := range adj[v] {
		if _, ok := adj[s]; ok {
			ss = append(ss, s)
		}
	}
	slices.Sort(ss)
	return slices.Compact(ss)
}

// sortedSuccessors is uniqueKeyed restricted to vertices that received an
// index. Build assigns an index to every key, so this only filters non-keys.
func sortedSuccessors[V cmp.Ordered](adj map[V][]V, index map[V]Index, u V) []V {
	ss := uniqueKeyed(adj, u)
	out := ss[:0:len(ss)]
	for _, s := range ss {
		if _, ok := index[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// witness builds the closed walk proving the violating edge (u, v) lies on a
// cycle: u followed by a path from v back to u in the input graph. For a
// self-loop the path from v to u is the single vertex itself, giving [u, u].
func witness[V cmp.Ordered](adj map[V][]V, index map[V]Index, u, v V) []V {
	path := findPath(adj, v, u, map[V]bool{})
	return append([]V{u}, path...)
}

// findPath returns a path from x to target (inclusive of both) following the
// input adjacency, or nil if target is unreachable from x. Successors are
// explored in ascending vertex order for determinism.
func findPath[V cmp.Ordered](adj map[V][]V, x, target V, seen map[V]bool) []V {
	if x == target {
		return []V{x}
	}
	seen[x] = true
	for _, s := range uniqueKeyed(adj, x) {
		if seen[s] {
			continue
		}
		if p := findPath(adj, s, target, seen); p != nil {
			return append([]V{x}, p...)
		}
	}
	return nil
}
