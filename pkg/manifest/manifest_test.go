package manifest

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/toposcope/toposcope/pkg/errors"
	"github.com/toposcope/toposcope/pkg/graph"
)

const sample = `
name = "build"

[deps]
app = ["lib-a", "lib-b"]
lib-a = ["lib-b"]
lib-b = []
`

func TestParse(t *testing.T) {
	g, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if g.Name != "build" {
		t.Errorf("Name = %q, want %q", g.Name, "build")
	}
	wantNodes := []graph.Node{{ID: "app"}, {ID: "lib-a"}, {ID: "lib-b"}}
	if !slices.Equal(g.Nodes, wantNodes) {
		t.Errorf("Nodes = %v, want %v", g.Nodes, wantNodes)
	}
	wantEdges := []graph.Edge{
		{From: "app", To: "lib-a"},
		{From: "app", To: "lib-b"},
		{From: "lib-a", To: "lib-b"},
	}
	if !slices.Equal(g.Edges, wantEdges) {
		t.Errorf("Edges = %v, want %v", g.Edges, wantEdges)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"NotTOML", "= broken", errors.ErrCodeInvalidFormat},
		{"NoDeps", `name = "x"`, errors.ErrCodeInvalidFormat},
		{"BadVertex", "[deps]\n\"" + strings.Repeat("x", 300) + "\" = []", errors.ErrCodeInvalidVertex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			if !errors.Is(err, tt.code) {
				t.Errorf("Parse() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deps.toml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(g.Nodes) != 3 {
		t.Errorf("len(Nodes) = %d, want 3", len(g.Nodes))
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestSupports(t *testing.T) {
	if !Supports("deps.toml") || !Supports("DEPS.TOML") {
		t.Error("Supports() rejected a TOML path")
	}
	if Supports("graph.json") {
		t.Error("Supports() accepted a JSON path")
	}
}
