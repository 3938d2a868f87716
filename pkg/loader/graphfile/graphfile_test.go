package graphfile

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gridmind-ai/gridmind/backend/pkg/loader"
	loaderio "github.com/gridmind-ai/gridmind/backend/pkg/loader/io"
	"github.com/gridmind-ai/gridmind/backend/pkg/topo"
)

func writeInput(t *testing.T, name, content string) loader.InputFile {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	return loader.NewInputFile(path)
}

func TestParseFileJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    topo.Topology
	}{
		{
			"edges with explicit nodes",
			`{"nodes": ["a", "b", "c"], "edges": [["a", "b"], ["b", "c"]]}`,
			topo.Topology{
				Nodes: []string{"a", "b", "c"},
				Edges: []topo.Edge{{"a", "b"}, {"b", "c"}},
			},
		},
		{
			"edges without nodes fall back to endpoints",
			`{"edges": [["c", "a"], ["a", "b"]]}`,
			topo.Topology{
				Nodes: []string{"a", "b", "c"},
				Edges: []topo.Edge{{"c", "a"}, {"a", "b"}},
			},
		},
		{
			"numeric values are stringified",
			`{"edges": [[1, 2], [2, 3.5]]}`,
			topo.Topology{
				Nodes: []string{"1", "2", "3.5"},
				Edges: []topo.Edge{{"1", "2"}, {"2", "3.5"}},
			},
		},
		{
			"short pairs are skipped",
			`{"edges": [["a"], ["a", "b"], "junk"]}`,
			topo.Topology{
				Nodes: []string{"a", "b"},
				Edges: []topo.Edge{{"a", "b"}},
			},
		},
		{
			"adjacency array",
			`[["a", ["b", "c"]], ["b", ["c"]]]`,
			topo.Topology{
				Nodes: []string{"a", "b", "c"},
				Edges: []topo.Edge{{"a", "b"}, {"a", "c"}, {"b", "c"}},
			},
		},
		{
			"adjacency entries without neighbor list are skipped",
			`[["a", "b"], ["b", ["c"]]]`,
			topo.Topology{
				Nodes: []string{"b", "c"},
				Edges: []topo.Edge{{"b", "c"}},
			},
		},
		{
			"trailing commas are repaired",
			`{"edges": [["a", "b"],], "nodes": ["a", "b",],}`,
			topo.Topology{
				Nodes: []string{"a", "b"},
				Edges: []topo.Edge{{"a", "b"}},
			},
		},
		{
			"scalar document yields empty topology",
			`42`,
			topo.Topology{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := writeInput(t, "graph.json", tt.content)

			got := ParseFile(context.Background(), loaderio.NewIOFileLoader(), file)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestParseFileCSV(t *testing.T) {
	file := writeInput(t, "graph.csv", "a, b\nb, c\nonlyone\n")

	got := ParseFile(context.Background(), loaderio.NewIOFileLoader(), file)

	want := topo.Topology{
		Nodes: []string{"a", "b", "c"},
		Edges: []topo.Edge{{"a", "b"}, {"b", "c"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestParseFileTSVUsesCommas(t *testing.T) {
	file := writeInput(t, "graph.tsv", "x,y\ny,z\n")

	got := ParseFile(context.Background(), loaderio.NewIOFileLoader(), file)

	want := topo.Topology{
		Nodes: []string{"x", "y", "z"},
		Edges: []topo.Edge{{"x", "y"}, {"y", "z"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestParseFileTXT(t *testing.T) {
	file := writeInput(t, "graph.txt", "a b extra\nb c\n\nskipme\n")

	got := ParseFile(context.Background(), loaderio.NewIOFileLoader(), file)

	want := topo.Topology{
		Nodes: []string{"a", "b", "c"},
		Edges: []topo.Edge{{"a", "b"}, {"b", "c"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestParseFileMissing(t *testing.T) {
	file := loader.NewInputFile("/nonexistent/graph.json")

	got := ParseFile(context.Background(), loaderio.NewIOFileLoader(), file)
	if !got.Empty() {
		t.Fatalf("expected empty topology, got %#v", got)
	}
}

func TestParseText(t *testing.T) {
	got := ParseText("s1 d1\r\ns2 d2\nnot-an-edge\n")

	want := topo.Topology{
		Nodes: []string{"d1", "d2", "s1", "s2"},
		Edges: []topo.Edge{{"s1", "d1"}, {"s2", "d2"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestParseTextEmpty(t *testing.T) {
	if got := ParseText(""); !got.Empty() {
		t.Fatalf("expected empty topology, got %#v", got)
	}
}
