package graph

import (
	"encoding/json"
	"slices"

	"github.com/toposcope/toposcope/pkg/errors"
	"github.com/toposcope/toposcope/pkg/topo"
)

// Graph is the canonical serialization format for directed graphs.
// Used for API payloads, storage, caching, and cross-tool compatibility.
type Graph struct {
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is a single vertex of the wire format. ID doubles as the display
// label.
type Node struct {
	ID string `json:"id" bson:"id"`
}

// Edge represents a directed edge between two declared nodes.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// FromAdjacency converts an adjacency map into the wire format. Nodes are
// sorted by ID and each node's edges by target ID, so the result is
// deterministic regardless of map iteration order. Successors that are not
// keys of the map are declared as nodes too, preserving the full input for
// round-tripping; the engine drops them later per its own contract.
func FromAdjacency(adj map[string][]string) Graph {
	ids := make(map[string]bool, len(adj))
	var g Graph
	for v, succs := range adj {
		ids[v] = true
		for _, s := range succs {
			ids[s] = true
		}
		ss := slices.Clone(succs)
		slices.Sort(ss)
		for _, s := range slices.Compact(ss) {
			g.Edges = append(g.Edges, Edge{From: v, To: s})
		}
	}
	for id := range ids {
		g.Nodes = append(g.Nodes, Node{ID: id})
	}
	sortGraph(&g)
	return g
}

// FromView converts a constructed topological view back into the wire
// format, e.g. after a closure, reduction, or transpose.
func FromView(g *topo.Graph[string]) Graph {
	out := Graph{Nodes: make([]Node, 0, g.Len())}
	for _, entry := range g.AdjacencyList() {
		out.Nodes = append(out.Nodes, Node{ID: entry.Vertex})
		for _, s := range entry.Successors {
			out.Edges = append(out.Edges, Edge{From: entry.Vertex, To: s})
		}
	}
	sortGraph(&out)
	return out
}

// Adjacency converts the wire format into the adjacency-map input of the
// engine. Every declared node becomes a key (so isolated nodes keep their
// index), and edge endpoints must be declared nodes.
func (g Graph) Adjacency() (map[string][]string, error) {
	adj := make(map[string][]string, len(g.Nodes))
	for _, n := range g.Nodes {
		if err := errors.ValidateVertexID(n.ID); err != nil {
			return nil, err
		}
		if _, dup := adj[n.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate node id %q", n.ID)
		}
		adj[n.ID] = nil
	}
	for _, e := range g.Edges {
		if _, ok := adj[e.From]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "edge source %q is not a declared node", e.From)
		}
		if _, ok := adj[e.To]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "edge target %q is not a declared node", e.To)
		}
		adj[e.From] = append(adj[e.From], e.To)
	}
	return adj, nil
}

// Marshal serializes the graph as indented JSON.
func Marshal(g Graph) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Graph.
func Unmarshal(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid graph document")
	}
	return g, nil
}

// sortGraph puts nodes and edges into the canonical order: nodes by ID,
// edges by (from, to).
func sortGraph(g *Graph) {
	slices.SortFunc(g.Nodes, func(a, b Node) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	slices.SortFunc(g.Edges, func(a, b Edge) int {
		if a.From != b.From {
			if a.From < b.From {
				return -1
			}
			return 1
		}
		switch {
		case a.To < b.To:
			return -1
		case a.To > b.To:
			return 1
		default:
			return 0
		}
	})
}
