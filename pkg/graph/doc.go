// Package graph defines the canonical serialization format for directed
// graphs exchanged with toposcope.
//
// # Overview
//
// The format is a flat node/edge listing used for API requests and responses,
// persistent storage, caching, and cross-tool integration:
//
//	{
//	  "nodes": [
//	    {"id": "app"},
//	    {"id": "lib-a"},
//	    {"id": "lib-b"}
//	  ],
//	  "edges": [
//	    {"from": "app", "to": "lib-a"},
//	    {"from": "lib-a", "to": "lib-b"}
//	  ]
//	}
//
// It is designed for round-trip fidelity: import, normalize, export, and
// re-import produce identical results. Node order in exported documents is
// always sorted by ID, so equal graphs serialize to equal bytes.
//
// # Relationship to the engine
//
// The engine in pkg/topo consumes adjacency maps; [Graph.Adjacency] and
// [FromView] convert between the wire format and that input type. Edges that
// reference an ID not declared in nodes are rejected at decode time rather
// than silently dropped, since a hand-written document with a dangling edge
// is almost always a typo.
package graph
