// Package topo converts arbitrary finite directed graphs into a dense,
// topologically indexed form and provides the algorithm family built on it.
//
// # Overview
//
// The input is an adjacency map from a vertex type V to its successors. Build
// either proves the graph is cyclic (returning a concrete witness walk) or
// assigns every vertex a dense index in [0, n) such that every edge points
// from a lower index to a higher one. Once a graph is in this normalized form,
// reachability, transitive closure and reduction, shortest and longest path
// lengths, path enumeration, and transposition all become simple array and
// range computations instead of general graph search.
//
// # Indexing Invariant
//
// For every edge (u, v) of a constructed [Graph], Index(u) < Index(v). This is
// the central invariant of the package: index order is a valid topological
// order. Indices are only meaningful relative to the one construction that
// produced them and must never be carried from one Graph to another. Each
// Graph carries a unique epoch tag (see [Graph.Epoch]) so callers that persist
// or cache derived data can detect stale indices. The [Run] form scopes the
// Graph to a callback, which is the recommended way to keep indices from
// escaping the construction they belong to.
//
// # Determinism
//
// Ties between vertices with no ordering constraint are broken by the natural
// order of V, never by map iteration order, so the same adjacency map always
// produces the same indexing.
//
// # Construction
//
//	adj := map[string][]string{
//	    "app":   {"lib-a", "lib-b"},
//	    "lib-a": {"lib-b"},
//	    "lib-b": nil,
//	}
//	err := topo.Run(adj, func(g *topo.Graph[string]) error {
//	    order := make([]string, 0, g.Len())
//	    for _, i := range g.Indices() {
//	        order = append(order, g.Vertex(i))
//	    }
//	    // order is ["app", "lib-a", "lib-b"]
//	    return nil
//	})
//
// On failure the returned error is a [*CycleError] carrying the closed walk:
//
//	var cyc *topo.CycleError[string]
//	if errors.As(err, &cyc) {
//	    fmt.Println(cyc.Walk) // e.g. [a b c a]
//	}
//
// # Immutability
//
// A Graph is never mutated after construction. Every transformation
// ([Transpose], [Closure], [Reduction]) returns a new, independent Graph.
// Because of this, any number of goroutines may read the same Graph
// concurrently without synchronization.
package topo
