// Package manifest loads adjacency manifests written in TOML.
//
// A manifest names a graph and lists each vertex with its direct successors:
//
//	name = "build"
//
//	[deps]
//	app = ["lib-a", "lib-b"]
//	lib-a = ["lib-b"]
//	lib-b = []
//
// Successors that never appear as a key are allowed; they are carried into
// the wire format as declared nodes and handled by the engine's own contract.
package manifest

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/toposcope/toposcope/pkg/errors"
	"github.com/toposcope/toposcope/pkg/graph"
)

// manifestFile mirrors the TOML document structure.
type manifestFile struct {
	Name string              `toml:"name"`
	Deps map[string][]string `toml:"deps"`
}

// Load reads and parses the manifest at path.
func Load(path string) (graph.Graph, error) {
	if err := errors.ValidatePath(path); err != nil {
		return graph.Graph{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return graph.Graph{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s", path)
	}
	if err != nil {
		return graph.Graph{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read manifest %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML manifest bytes into the wire format. Vertex identifiers
// are validated; the graph itself is not checked for cycles here - that is
// the engine's job.
func Parse(data []byte) (graph.Graph, error) {
	var mf manifestFile
	if err := toml.Unmarshal(data, &mf); err != nil {
		return graph.Graph{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid manifest")
	}
	if len(mf.Deps) == 0 {
		return graph.Graph{}, errors.New(errors.ErrCodeInvalidFormat, "manifest has no [deps] table")
	}

	for v, succs := range mf.Deps {
		if err := errors.ValidateVertexID(v); err != nil {
			return graph.Graph{}, err
		}
		for _, s := range succs {
			if err := errors.ValidateVertexID(s); err != nil {
				return graph.Graph{}, err
			}
		}
	}

	g := graph.FromAdjacency(mf.Deps)
	g.Name = strings.TrimSpace(mf.Name)
	return g, nil
}

// Supports reports whether path looks like a TOML manifest.
func Supports(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".toml")
}
