package topo

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
)

// Index is the dense position of a vertex in one graph's topological order.
// Valid values lie in [0, n) for the Graph that assigned them. An Index from
// one Graph is meaningless on any other Graph, including graphs derived from
// the same input.
type Index int

// Graph is an immutable view over a validated, index-assigned directed
// acyclic graph. For every edge (u, v) the source index is strictly smaller
// than the target index.
//
// The zero value is not usable - obtain a Graph from [Build] or [Run], or
// from one of the transformations ([Transpose], [Closure], [Reduction]).
type Graph[V cmp.Ordered] struct {
	epoch uuid.UUID
	verts []V          // index -> vertex
	index map[V]Index  // vertex -> index
	succ  [][]Index    // index -> ascending successor indices, all > source
}

// Len returns the number of vertices, which equals the number of keys in the
// adjacency map the graph was built from.
func (g *Graph[V]) Len() int { return len(g.verts) }

// Epoch returns the unique tag of this construction. Two Graphs share an
// epoch only if they are the same construction; transformations always
// allocate a fresh epoch even though they may share vertex tables.
func (g *Graph[V]) Epoch() uuid.UUID { return g.epoch }

// Indices returns every index of the graph in ascending order.
// The returned slice is freshly allocated and owned by the caller.
func (g *Graph[V]) Indices() []Index {
	ix := make([]Index, len(g.verts))
	for i := range ix {
		ix[i] = Index(i)
	}
	return ix
}

// Vertex returns the vertex assigned to index i. It panics if i is out of
// [0, Len()), mirroring slice semantics; every index obtained from this Graph
// is in range by construction.
func (g *Graph[V]) Vertex(i Index) V { return g.verts[i] }

// Index returns the index assigned to v and true, or zero and false if v was
// not a key of the adjacency map. Absent vertices are a normal input, not an
// error.
func (g *Graph[V]) Index(v V) (Index, bool) {
	i, ok := g.index[v]
	return i, ok
}

// Successors returns the successor indices of i in ascending order, with
// duplicates removed. Every returned index is strictly greater than i.
// The returned slice should not be modified - use it as a read-only view.
func (g *Graph[V]) Successors(i Index) []Index { return g.succ[i] }

// Vertices maps a sequence of indices back to their vertices, preserving
// order. It is a convenience for reporting enumeration results in original
// vertex terms.
func (g *Graph[V]) Vertices(ix []Index) []V {
	vs := make([]V, len(ix))
	for k, i := range ix {
		vs[k] = g.verts[i]
	}
	return vs
}

// AdjacencyMap recovers the graph as an adjacency map. Successor slices are
// sorted in ascending vertex order. Rebuilding a Graph from the result yields
// the same structure, which makes this the round-trip check for
// transformations.
func (g *Graph[V]) AdjacencyMap() map[V][]V {
	m := make(map[V][]V, len(g.verts))
	for i, v := range g.verts {
		ss := g.Vertices(g.succ[i])
		slices.Sort(ss)
		m[v] = ss
	}
	return m
}

// VertexSuccessors is one entry of an adjacency list: a vertex paired with
// its direct successors.
type VertexSuccessors[V cmp.Ordered] struct {
	Vertex     V
	Successors []V
}

// AdjacencyList recovers the graph as an ordered adjacency list. Entries are
// in index order and successors are in index order, so the result is fully
// deterministic.
func (g *Graph[V]) AdjacencyList() []VertexSuccessors[V] {
	out := make([]VertexSuccessors[V], len(g.verts))
	for i, v := range g.verts {
		out[i] = VertexSuccessors[V]{Vertex: v, Successors: g.Vertices(g.succ[i])}
	}
	return out
}
