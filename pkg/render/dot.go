// Package render turns normalized graphs into Graphviz DOT and SVG output.
//
// Rendering is a collaborator of the engine, not part of it: it consumes the
// wire format (pkg/graph) so anything that can be serialized can be drawn,
// including closures, reductions, and transposes.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/toposcope/toposcope/pkg/graph"
)

// DOT returns a Graphviz DOT representation of the graph.
//
// The output is a complete digraph that can be rendered with Graphviz tools
// (dot, neato, etc.) or programmatically with [SVG]. rankdir=TB keeps the
// topological flow top-to-bottom, matching index order.
func DOT(g graph.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph toposcope {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, shape=box, style=\"filled,rounded\", fillcolor=white];\n\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %q;\n", n.ID)
	}
	if len(g.Edges) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// SVG renders DOT source to a complete SVG document using Graphviz.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse dot: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render svg: %w", err)
	}
	return buf.Bytes(), nil
}
