package chart

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gridmind-ai/gridmind/backend/pkg/layout"
	"github.com/gridmind-ai/gridmind/backend/pkg/topo"
)

func sampleTopology() topo.Topology {
	return topo.Topology{
		Nodes: []string{"变电站A", "变电站B", "馈线1"},
		Edges: []topo.Edge{
			{Src: "变电站A", Dst: "变电站B"},
			{Src: "变电站B", Dst: "馈线1"},
		},
	}
}

func TestTopologyMissingData(t *testing.T) {
	cases := []struct {
		name string
		in   topo.Topology
	}{
		{"empty", topo.Topology{}},
		{"no edges", topo.Topology{Nodes: []string{"a", "b"}}},
		{"no nodes", topo.Topology{Edges: []topo.Edge{{Src: "a", Dst: "b"}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Topology(tc.in, TopologyOptions{}); !errors.Is(err, ErrMissingTopology) {
				t.Errorf("Topology() error = %v, want %v", err, ErrMissingTopology)
			}
		})
	}
}

func TestRenderTopologyHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderTopology(&buf, sampleTopology(), TopologyOptions{}); err != nil {
		t.Fatalf("RenderTopology() error = %v", err)
	}

	html := buf.String()
	for _, want := range []string{topologyTitle, nodeColor, edgeColor, "变电站A", "变电站B", "馈线1"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered HTML missing %q", want)
		}
	}
}

func TestRenderTopologyLayoutError(t *testing.T) {
	var buf bytes.Buffer
	err := RenderTopology(&buf, topo.Topology{}, TopologyOptions{Layout: "circular"})
	if !errors.Is(err, ErrMissingTopology) {
		t.Fatalf("RenderTopology() error = %v, want %v", err, ErrMissingTopology)
	}
	if buf.Len() != 0 {
		t.Errorf("RenderTopology() wrote %d bytes on error", buf.Len())
	}
}

func TestNodePositionsLayouts(t *testing.T) {
	top := sampleTopology()

	spring := nodePositions(top, TopologyOptions{})
	if len(spring) != 3 {
		t.Fatalf("spring positions = %d nodes, want 3", len(spring))
	}
	again := nodePositions(top, TopologyOptions{Layout: "spring"})
	for name, p := range spring {
		if again[name] != p {
			t.Errorf("spring layout not deterministic for %s: %v vs %v", name, p, again[name])
		}
	}

	circular := nodePositions(top, TopologyOptions{Layout: "circular"})
	want := layout.Circular(top.Nodes)
	for name, p := range want {
		if circular[name] != p {
			t.Errorf("circular layout mismatch for %s: %v vs %v", name, circular[name], p)
		}
	}

	random := nodePositions(top, TopologyOptions{Layout: "grid"})
	wantRandom := layout.Random(top.Nodes, layout.DefaultSeed)
	for name, p := range wantRandom {
		if random[name] != p {
			t.Errorf("unknown layout should fall back to random, got %v want %v", random[name], p)
		}
	}
}

func TestPixelPositions(t *testing.T) {
	pos := layout.Positions{
		"a": {-1, -1},
		"b": {1, 1},
		"c": {0, 0},
	}
	px := pixelPositions(pos, 900, 750, 60)

	if px["a"] != [2]float32{60, 690} {
		t.Errorf("bottom-left corner = %v, want [60 690]", px["a"])
	}
	if px["b"] != [2]float32{840, 60} {
		t.Errorf("top-right corner = %v, want [840 60]", px["b"])
	}
	if px["c"] != [2]float32{450, 375} {
		t.Errorf("center = %v, want [450 375]", px["c"])
	}
}

func TestPixelPositionsSingleNode(t *testing.T) {
	px := pixelPositions(layout.Positions{"only": {0, 0}}, 900, 750, 60)
	if px["only"] != [2]float32{450, 375} {
		t.Errorf("single node = %v, want [450 375]", px["only"])
	}
}
