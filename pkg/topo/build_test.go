package topo

import (
	"errors"
	"slices"
	"testing"
)

// canonical is the example graph used throughout the package tests:
//
//	a -> b, x, d, e
//	b -> d
//	x -> d, e
//	d -> e
//
// Its deterministic index order is [a, x, b, d, e].
func canonical() map[string][]string {
	return map[string][]string{
		"a": {"b", "x", "d", "e"},
		"b": {"d"},
		"x": {"d", "e"},
		"d": {"e"},
		"e": nil,
	}
}

func mustBuild(t *testing.T, adj map[string][]string) *Graph[string] {
	t.Helper()
	g, err := Build(adj)
	if err != nil {
		t.Fatalf("Build() error = %v, want nil", err)
	}
	return g
}

func TestBuild_Order(t *testing.T) {
	g := mustBuild(t, canonical())

	if g.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", g.Len())
	}
	want := []string{"a", "x", "b", "d", "e"}
	got := g.Vertices(g.Indices())
	if !slices.Equal(got, want) {
		t.Errorf("vertex order = %v, want %v", got, want)
	}
}

func TestBuild_IndexMonotonicity(t *testing.T) {
	g := mustBuild(t, canonical())

	for _, i := range g.Indices() {
		for _, s := range g.Successors(i) {
			if s <= i {
				t.Errorf("edge %d -> %d violates index order", i, s)
			}
		}
	}
}

func TestBuild_Bijection(t *testing.T) {
	g := mustBuild(t, canonical())

	for _, i := range g.Indices() {
		v := g.Vertex(i)
		j, ok := g.Index(v)
		if !ok || j != i {
			t.Errorf("Index(Vertex(%d)) = %d, %v, want %d, true", i, j, ok, i)
		}
	}
}

func TestBuild_AbsentVertex(t *testing.T) {
	g := mustBuild(t, canonical())

	if _, ok := g.Index("zzz"); ok {
		t.Error("Index(zzz) ok = true, want false")
	}
}

func TestBuild_DropsNonKeySuccessors(t *testing.T) {
	// "ghost" never appears as a key, so it gets no index and the edge
	// to it is dropped.
	g := mustBuild(t, map[string][]string{
		"a": {"b", "ghost"},
		"b": nil,
	})

	if g.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", g.Len())
	}
	if _, ok := g.Index("ghost"); ok {
		t.Error("Index(ghost) ok = true, want false")
	}
	ai, _ := g.Index("a")
	if got := g.Vertices(g.Successors(ai)); !slices.Equal(got, []string{"b"}) {
		t.Errorf("Successors(a) = %v, want [b]", got)
	}
}

func TestBuild_DeduplicatesEdges(t *testing.T) {
	g := mustBuild(t, map[string][]string{
		"a": {"b", "b", "b"},
		"b": nil,
	})

	ai, _ := g.Index("a")
	if got := len(g.Successors(ai)); got != 1 {
		t.Errorf("len(Successors(a)) = %d, want 1", got)
	}
}

func TestBuild_Empty(t *testing.T) {
	g := mustBuild(t, map[string][]string{})

	if g.Len() != 0 {
		t.Errorf("Len() = %d, want 0", g.Len())
	}
	if len(g.Indices()) != 0 {
		t.Errorf("Indices() = %v, want empty", g.Indices())
	}
}

func TestBuild_Deterministic(t *testing.T) {
	// Same input must yield the same order on every construction, even
	// though map iteration order varies between runs.
	want := mustBuild(t, canonical()).Vertices(mustBuild(t, canonical()).Indices())
	for run := 0; run < 10; run++ {
		got := mustBuild(t, canonical()).Vertices(mustBuild(t, canonical()).Indices())
		if !slices.Equal(got, want) {
			t.Fatalf("run %d: order = %v, want %v", run, got, want)
		}
	}
}

func TestBuild_Cycle(t *testing.T) {
	adj := map[string][]string{
		"a": {"b", "x"},
		"b": {"c", "x"},
		"c": {"a", "x"},
		"x": nil,
	}

	_, err := Build(adj)
	var cyc *CycleError[string]
	if !errors.As(err, &cyc) {
		t.Fatalf("Build() error = %v, want *CycleError", err)
	}

	if len(cyc.Walk) < 2 {
		t.Fatalf("witness %v too short", cyc.Walk)
	}
	if cyc.Walk[0] != cyc.Walk[len(cyc.Walk)-1] {
		t.Errorf("witness %v is not a closed walk", cyc.Walk)
	}
	for _, v := range []string{"a", "b", "c"} {
		if !slices.Contains(cyc.Walk, v) {
			t.Errorf("witness %v missing %q", cyc.Walk, v)
		}
	}
	// Every consecutive pair must be a real edge of the input.
	for i := 0; i+1 < len(cyc.Walk); i++ {
		if !slices.Contains(adj[cyc.Walk[i]], cyc.Walk[i+1]) {
			t.Errorf("witness step %s -> %s is not an input edge", cyc.Walk[i], cyc.Walk[i+1])
		}
	}
}

func TestBuild_SelfLoop(t *testing.T) {
	_, err := Build(map[string][]string{"a": {"a"}})

	var cyc *CycleError[string]
	if !errors.As(err, &cyc) {
		t.Fatalf("Build() error = %v, want *CycleError", err)
	}
	if !slices.Equal(cyc.Walk, []string{"a", "a"}) {
		t.Errorf("witness = %v, want [a a]", cyc.Walk)
	}
}

func TestBuild_TwoNodeCycle(t *testing.T) {
	_, err := Build(map[string][]string{
		"a": {"b"},
		"b": {"a"},
	})
	var cyc *CycleError[string]
	if !errors.As(err, &cyc) {
		t.Fatalf("Build() error = %v, want *CycleError", err)
	}
	if cyc.Walk[0] != cyc.Walk[len(cyc.Walk)-1] {
		t.Errorf("witness = %v, want a closed walk", cyc.Walk)
	}
}

func TestRun_ScopesGraph(t *testing.T) {
	called := false
	err := Run(canonical(), func(g *Graph[string]) error {
		called = true
		if g.Len() != 5 {
			t.Errorf("Len() = %d, want 5", g.Len())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if !called {
		t.Error("callback was not invoked")
	}
}

func TestRun_CycleSkipsCallback(t *testing.T) {
	err := Run(map[string][]string{"a": {"a"}}, func(g *Graph[string]) error {
		t.Error("callback invoked on cyclic input")
		return nil
	})
	var cyc *CycleError[string]
	if !errors.As(err, &cyc) {
		t.Fatalf("Run() error = %v, want *CycleError", err)
	}
}

func TestAdjacencyMap_RoundTrip(t *testing.T) {
	in := canonical()
	g := mustBuild(t, in)

	got := g.AdjacencyMap()
	if len(got) != len(in) {
		t.Fatalf("recovered map has %d keys, want %d", len(got), len(in))
	}
	for v, want := range in {
		ws := slices.Clone(want)
		slices.Sort(ws)
		if !slices.Equal(got[v], ws) {
			t.Errorf("successors of %q = %v, want %v", v, got[v], ws)
		}
	}
}

func TestAdjacencyList_Ordered(t *testing.T) {
	g := mustBuild(t, canonical())

	list := g.AdjacencyList()
	wantOrder := []string{"a", "x", "b", "d", "e"}
	for i, entry := range list {
		if entry.Vertex != wantOrder[i] {
			t.Errorf("entry %d vertex = %q, want %q", i, entry.Vertex, wantOrder[i])
		}
	}
}

func TestEpoch_UniquePerConstruction(t *testing.T) {
	g1 := mustBuild(t, canonical())
	g2 := mustBuild(t, canonical())

	if g1.Epoch() == g2.Epoch() {
		t.Error("two constructions share an epoch")
	}
	if tr := Transpose(g1); tr.Epoch() == g1.Epoch() {
		t.Error("transpose shares the source epoch")
	}
}

func TestBuild_IntVertices(t *testing.T) {
	g := mustBuild2(t, map[int][]int{
		10: {20},
		20: {30},
		30: nil,
	})
	if g.Len() != 3 {
		t.Errorf("Len() = %d, want 3", g.Len())
	}
	i, ok := g.Index(10)
	if !ok || i != 0 {
		t.Errorf("Index(10) = %d, %v, want 0, true", i, ok)
	}
}

func mustBuild2(t *testing.T, adj map[int][]int) *Graph[int] {
	t.Helper()
	g, err := Build(adj)
	if err != nil {
		t.Fatalf("Build() error = %v, want nil", err)
	}
	return g
}
