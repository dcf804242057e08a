package topo

import "cmp"

// Tree is a prefix-sharing representation of a set of paths. Every root-to-
// leaf traversal spells one path. Children appear in ascending index order.
type Tree struct {
	Index    Index
	Children []*Tree
}

// Paths flattens the tree into the list of its root-to-leaf paths.
func (t *Tree) Paths() [][]Index {
	if len(t.Children) == 0 {
		return [][]Index{{t.Index}}
	}
	var out [][]Index
	for _, c := range t.Children {
		for _, p := range c.Paths() {
			out = append(out, append([]Index{t.Index}, p...))
		}
	}
	return out
}

// DFS returns every maximal path starting at a: each path follows edges until
// it reaches a vertex with no successors. The result is finite because the
// graph is acyclic, but can be exponential in size on dense graphs - that is
// genuine path blow-up, not a defect. Paths are in ascending successor order.
func DFS[V cmp.Ordered](g *Graph[V], a Index) [][]Index {
	succ := g.Successors(a)
	if len(succ) == 0 {
		return [][]Index{{a}}
	}
	var out [][]Index
	for _, s := range succ {
		for _, p := range DFS(g, s) {
			out = append(out, append([]Index{a}, p...))
		}
	}
	return out
}

// DFSTree returns the maximal paths starting at a as a single tree sharing
// common prefixes. Tree.Paths of the result equals DFS(g, a).
func DFSTree[V cmp.Ordered](g *Graph[V], a Index) *Tree {
	succ := g.Successors(a)
	children := make([]*Tree, len(succ))
	for i, s := range succ {
		children[i] = DFSTree(g, s)
	}
	if len(children) == 0 {
		children = nil
	}
	return &Tree{Index: a, Children: children}
}

// AllPaths returns every simple path from a to b, inclusive of both
// endpoints. Successors with an index above b are pruned: any useful
// intermediate vertex must lie strictly between a and b in index order.
// AllPaths(g, a, a) is nil - a zero-length path does not count as a path.
func AllPaths[V cmp.Ordered](g *Graph[V], a, b Index) [][]Index {
	if a == b {
		return nil
	}
	var out [][]Index
	for _, tail := range pathTails(g, a, b) {
		out = append(out, append([]Index{a}, tail...))
	}
	return out
}

// pathTails returns every path from a successor of x through b, inclusive of
// b. AllPaths is exactly x prepended to each tail.
func pathTails[V cmp.Ordered](g *Graph[V], x, b Index) [][]Index {
	var out [][]Index
	for _, s := range g.Successors(x) {
		if s > b {
			break
		}
		if s == b {
			out = append(out, []Index{b})
			continue
		}
		for _, tail := range pathTails(g, s, b) {
			out = append(out, append([]Index{s}, tail...))
		}
	}
	return out
}

// AllPathsTree returns the solution set of [AllPaths] as a single tree
// sharing common prefixes. Branches that cannot reach b are pruned entirely.
//
// Unlike AllPaths, which returns nil for a == b, the tree form returns a lone
// root node, since a tree cannot represent an empty path set. The same lone
// root is returned when b is unreachable from a.
func AllPathsTree[V cmp.Ordered](g *Graph[V], a, b Index) *Tree {
	return &Tree{Index: a, Children: tailTrees(g, a, b)}
}

// tailTrees builds the pruned subtrees below x for paths ending at b.
func tailTrees[V cmp.Ordered](g *Graph[V], x, b Index) []*Tree {
	var out []*Tree
	for _, s := range g.Successors(x) {
		if s > b {
			break
		}
		if s == b {
			out = append(out, &Tree{Index: b})
			continue
		}
		if sub := tailTrees(g, s, b); sub != nil {
			out = append(out, &Tree{Index: s, Children: sub})
		}
	}
	return out
}
