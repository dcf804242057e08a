package graph

import (
	"slices"
	"testing"

	"github.com/toposcope/toposcope/pkg/errors"
	"github.com/toposcope/toposcope/pkg/topo"
)

func TestFromAdjacency_Deterministic(t *testing.T) {
	adj := map[string][]string{
		"b": {"c"},
		"a": {"c", "b"},
		"c": nil,
	}

	g := FromAdjacency(adj)

	wantNodes := []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	if !slices.Equal(g.Nodes, wantNodes) {
		t.Errorf("Nodes = %v, want %v", g.Nodes, wantNodes)
	}
	wantEdges := []Edge{{From: "a", To: "b"}, {From: "a", To: "c"}, {From: "b", To: "c"}}
	if !slices.Equal(g.Edges, wantEdges) {
		t.Errorf("Edges = %v, want %v", g.Edges, wantEdges)
	}
}

func TestFromAdjacency_DeclaresNonKeySuccessors(t *testing.T) {
	g := FromAdjacency(map[string][]string{"a": {"ghost"}})

	if !slices.Contains(g.Nodes, Node{ID: "ghost"}) {
		t.Errorf("Nodes = %v, want ghost declared", g.Nodes)
	}
}

func TestAdjacency_RoundTrip(t *testing.T) {
	in := map[string][]string{
		"a": {"b", "c"},
		"b": {"c"},
		"c": nil,
	}

	adj, err := FromAdjacency(in).Adjacency()
	if err != nil {
		t.Fatalf("Adjacency() error = %v", err)
	}
	if len(adj) != 3 {
		t.Fatalf("recovered %d keys, want 3", len(adj))
	}
	for v, want := range in {
		got := slices.Clone(adj[v])
		slices.Sort(got)
		ws := slices.Clone(want)
		slices.Sort(ws)
		if !slices.Equal(got, ws) {
			t.Errorf("successors of %q = %v, want %v", v, got, ws)
		}
	}
}

func TestAdjacency_RejectsDanglingEdge(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a"}},
		Edges: []Edge{{From: "a", To: "missing"}},
	}

	_, err := g.Adjacency()
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Adjacency() error = %v, want INVALID_INPUT", err)
	}
}

func TestAdjacency_RejectsDuplicateNode(t *testing.T) {
	g := Graph{Nodes: []Node{{ID: "a"}, {ID: "a"}}}

	_, err := g.Adjacency()
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Adjacency() error = %v, want INVALID_INPUT", err)
	}
}

func TestAdjacency_RejectsBadVertexID(t *testing.T) {
	g := Graph{Nodes: []Node{{ID: ""}}}

	_, err := g.Adjacency()
	if !errors.Is(err, errors.ErrCodeInvalidVertex) {
		t.Errorf("Adjacency() error = %v, want INVALID_VERTEX", err)
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	g := FromAdjacency(map[string][]string{"a": {"b"}, "b": nil})

	data, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	back, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !slices.Equal(back.Nodes, g.Nodes) || !slices.Equal(back.Edges, g.Edges) {
		t.Errorf("round trip = %+v, want %+v", back, g)
	}
}

func TestUnmarshal_Invalid(t *testing.T) {
	_, err := Unmarshal([]byte("{not json"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Unmarshal() error = %v, want INVALID_FORMAT", err)
	}
}

func TestFromView_Normalized(t *testing.T) {
	g, err := topo.Build(map[string][]string{
		"a": {"b", "c"},
		"b": {"c"},
		"c": nil,
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	out := FromView(topo.Reduction(g))
	wantEdges := []Edge{{From: "a", To: "b"}, {From: "b", To: "c"}}
	if !slices.Equal(out.Edges, wantEdges) {
		t.Errorf("Edges = %v, want %v", out.Edges, wantEdges)
	}
	if len(out.Nodes) != 3 {
		t.Errorf("len(Nodes) = %d, want 3", len(out.Nodes))
	}
}
