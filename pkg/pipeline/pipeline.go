// Package pipeline provides the core load → normalize → transform flow shared
// by the CLI and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read a graph from JSON or a TOML manifest
//  2. Normalize: topologically index the graph, or fail with a cycle witness
//  3. Transform/Query: closure, reduction, transpose, path lengths, paths
//
// Each stage can be run independently or as part of the complete pipeline.
// By centralizing this logic, CLI and API behave identically.
//
// # Caching
//
// Closure and reduction results are memoized through a [cache.Cache] keyed by
// a content hash of the serialized input graph, so repeated requests for the
// same dependency set skip the O(V*(V+E)) recomputation.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), logger)
//	g, err := runner.Load("deps.toml")
//	if err != nil {
//	    return err
//	}
//	out, err := runner.Transform(ctx, g, pipeline.TransformReduction)
package pipeline

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/toposcope/toposcope/pkg/cache"
	"github.com/toposcope/toposcope/pkg/errors"
	"github.com/toposcope/toposcope/pkg/graph"
	"github.com/toposcope/toposcope/pkg/manifest"
	"github.com/toposcope/toposcope/pkg/topo"
)

// Transform names accepted by [Runner.Transform].
const (
	TransformClosure   = "closure"
	TransformReduction = "reduction"
	TransformTranspose = "transpose"
)

// ValidTransforms is the set of supported transform names.
var ValidTransforms = map[string]bool{
	TransformClosure:   true,
	TransformReduction: true,
	TransformTranspose: true,
}

// DefaultCacheTTL bounds how long memoized transform results are kept.
// Keys are content-addressed, so the TTL only limits cache growth.
const DefaultCacheTTL = 24 * time.Hour

// Runner executes pipeline stages with shared caching and logging.
type Runner struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewRunner creates a Runner. A nil cache disables memoization and a nil
// logger discards output.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{cache: c, logger: logger}
}

// Load reads a graph from path: TOML manifests by extension, JSON otherwise.
func (r *Runner) Load(path string) (graph.Graph, error) {
	if manifest.Supports(path) {
		return manifest.Load(path)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return graph.Graph{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s", path)
	}
	if err != nil {
		return graph.Graph{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return graph.Unmarshal(data)
}

// Normalize topologically indexes g and returns it in canonical form together
// with the vertex order. A cyclic input fails with a GRAPH_CYCLE error whose
// cause is the engine's *topo.CycleError, so callers can recover the witness
// walk with errors.As.
func (r *Runner) Normalize(g graph.Graph) (graph.Graph, []string, error) {
	adj, err := g.Adjacency()
	if err != nil {
		return graph.Graph{}, nil, err
	}

	var out graph.Graph
	var order []string
	err = topo.Run(adj, func(tg *topo.Graph[string]) error {
		out = graph.FromView(tg)
		out.Name = g.Name
		order = tg.Vertices(tg.Indices())
		return nil
	})
	if err != nil {
		return graph.Graph{}, nil, wrapCycle(g, err)
	}
	return out, order, nil
}

// Transform applies the named transform to g and returns the resulting graph
// in canonical form. Closure and reduction results are memoized; transpose is
// linear and always computed directly.
func (r *Runner) Transform(ctx context.Context, g graph.Graph, name string) (graph.Graph, error) {
	if !ValidTransforms[name] {
		return graph.Graph{}, errors.New(errors.ErrCodeUnsupported, "unknown transform %q", name)
	}

	adj, err := g.Adjacency()
	if err != nil {
		return graph.Graph{}, err
	}

	var key string
	if name != TransformTranspose {
		input, err := graph.Marshal(g)
		if err != nil {
			return graph.Graph{}, errors.Wrap(errors.ErrCodeInternal, err, "marshal input graph")
		}
		key = cache.TransformKey(name, input)
		if data, ok, err := r.cache.Get(ctx, key); err != nil {
			r.logger.Warnf("cache get failed: %v", err)
		} else if ok {
			r.logger.Debugf("cache hit for %s", name)
			return graph.Unmarshal(data)
		}
	}

	start := time.Now()
	var out graph.Graph
	err = topo.Run(adj, func(tg *topo.Graph[string]) error {
		var derived *topo.Graph[string]
		switch name {
		case TransformClosure:
			derived = topo.Closure(tg)
		case TransformReduction:
			derived = topo.Reduction(tg)
		case TransformTranspose:
			derived = topo.Transpose(tg)
		}
		out = graph.FromView(derived)
		out.Name = g.Name
		return nil
	})
	if err != nil {
		return graph.Graph{}, wrapCycle(g, err)
	}
	r.logger.Debugf("%s computed in %s", name, time.Since(start).Round(time.Millisecond))

	if key != "" {
		data, err := graph.Marshal(out)
		if err == nil {
			if err := r.cache.Set(ctx, key, data, DefaultCacheTTL); err != nil {
				r.logger.Warnf("cache set failed: %v", err)
			}
		}
	}
	return out, nil
}

// VertexLength pairs a vertex with its path length from the queried source.
type VertexLength struct {
	Vertex string `json:"vertex"`
	Length int    `json:"length"`
}

// Lengths computes shortest or longest path lengths from source to every
// vertex, reported in index order. A length of 0 means the vertex is the
// source itself or unreachable from it.
func (r *Runner) Lengths(g graph.Graph, source string, longest bool) ([]VertexLength, error) {
	adj, err := g.Adjacency()
	if err != nil {
		return nil, err
	}

	var out []VertexLength
	err = topo.Run(adj, func(tg *topo.Graph[string]) error {
		src, ok := tg.Index(source)
		if !ok {
			return errors.New(errors.ErrCodeVertexNotFound, "vertex %q is not in the graph", source)
		}
		merge := topo.ShortestMerge
		if longest {
			merge = topo.LongestMerge
		}
		lengths := topo.PathLengths(tg, merge, src)
		out = make([]VertexLength, tg.Len())
		for _, i := range tg.Indices() {
			out[i] = VertexLength{Vertex: tg.Vertex(i), Length: lengths[i]}
		}
		return nil
	})
	if err != nil {
		return nil, wrapCycle(g, err)
	}
	return out, nil
}

// Paths enumerates every simple path from one vertex to another, in original
// vertex terms. Querying a vertex against itself yields no paths.
func (r *Runner) Paths(g graph.Graph, from, to string) ([][]string, error) {
	adj, err := g.Adjacency()
	if err != nil {
		return nil, err
	}

	var out [][]string
	err = topo.Run(adj, func(tg *topo.Graph[string]) error {
		a, ok := tg.Index(from)
		if !ok {
			return errors.New(errors.ErrCodeVertexNotFound, "vertex %q is not in the graph", from)
		}
		b, ok := tg.Index(to)
		if !ok {
			return errors.New(errors.ErrCodeVertexNotFound, "vertex %q is not in the graph", to)
		}
		for _, p := range topo.AllPaths(tg, a, b) {
			out = append(out, tg.Vertices(p))
		}
		return nil
	})
	if err != nil {
		return nil, wrapCycle(g, err)
	}
	return out, nil
}

// wrapCycle tags engine cycle failures with the GRAPH_CYCLE code and passes
// every other error through unchanged.
func wrapCycle(g graph.Graph, err error) error {
	var cyc *topo.CycleError[string]
	if stderrors.As(err, &cyc) {
		name := g.Name
		if name == "" {
			name = "graph"
		}
		return errors.Wrap(errors.ErrCodeGraphCycle, err, "%s is not acyclic", name)
	}
	return err
}
