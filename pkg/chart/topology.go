// Package chart renders topology and timeseries artifacts. Topologies become
// interactive HTML pages, timeseries become PNG line charts.
package chart

import (
	"errors"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/gridmind-ai/gridmind/backend/pkg/layout"
	"github.com/gridmind-ai/gridmind/backend/pkg/topo"
)

// ErrMissingTopology is returned when the topology lacks nodes or edges.
var ErrMissingTopology = errors.New("输入数据必须包含 'nodes' 与 'edges'。")

const topologyTitle = "拓扑结构图"

const (
	canvasWidth  = 900
	canvasHeight = 750
	canvasMargin = 60
)

const (
	nodeSymbolSize = 40
	nodeColor      = "#AAB6C4"
	nodeBorder     = "black"
	edgeColor      = "#1f77b4"
	edgeWidth      = 2
)

// TopologyOptions selects node placement for Topology.
type TopologyOptions struct {
	// Layout picks the placement algorithm: spring (the default), circular,
	// kamada_kawai, or random placement for any other value.
	Layout string
	// Seed drives the spring and random layouts. Zero means seed 42.
	Seed int64
}

// Topology builds a graph chart with precomputed node positions. Both the
// node list and the edge list must be non-empty.
func Topology(t topo.Topology, opt TopologyOptions) (*charts.Graph, error) {
	if len(t.Nodes) == 0 || len(t.Edges) == 0 {
		return nil, ErrMissingTopology
	}

	// Repeated input rows must not draw twice or double the spring attraction.
	t = topo.Dedupe(t)

	px := pixelPositions(nodePositions(t, opt), canvasWidth, canvasHeight, canvasMargin)

	nodes := make([]opts.GraphNode, 0, len(t.Nodes))
	for _, name := range t.Nodes {
		p := px[name]
		nodes = append(nodes, opts.GraphNode{
			Name:       name,
			X:          p[0],
			Y:          p[1],
			SymbolSize: nodeSymbolSize,
			ItemStyle:  &opts.ItemStyle{Color: nodeColor, BorderColor: nodeBorder},
		})
	}

	links := make([]opts.GraphLink, 0, len(t.Edges))
	for _, e := range t.Edges {
		links = append(links, opts.GraphLink{Source: e.Src, Target: e.Dst})
	}

	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: topologyTitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: topologyTitle,
			Width:     "900px",
			Height:    "750px",
		}),
	)
	graph.AddSeries("topology", nodes, links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Layout: "none",
			Roam:   opts.Bool(true),
		}),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Color:    "black",
			Position: "inside",
		}),
		charts.WithLineStyleOpts(opts.LineStyle{
			Color: edgeColor,
			Width: edgeWidth,
		}),
	)

	return graph, nil
}

// RenderTopology writes the chart page HTML to w.
func RenderTopology(w io.Writer, t topo.Topology, opt TopologyOptions) error {
	graph, err := Topology(t, opt)
	if err != nil {
		return err
	}

	return graph.Render(w)
}

func nodePositions(t topo.Topology, opt TopologyOptions) layout.Positions {
	seed := opt.Seed
	if seed == 0 {
		seed = layout.DefaultSeed
	}

	switch opt.Layout {
	case "", "spring":
		return layout.Spring(t.Nodes, t.Edges, seed, layout.DefaultIterations)
	case "circular":
		return layout.Circular(t.Nodes)
	case "kamada_kawai":
		return layout.KamadaKawai(t.Nodes, t.Edges)
	default:
		return layout.Random(t.Nodes, seed)
	}
}

// pixelPositions maps layout coordinates onto the canvas, keeping a margin on
// every side. The vertical axis is flipped because screen y grows downward.
func pixelPositions(pos layout.Positions, width, height, margin float64) map[string][2]float32 {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range pos {
		minX = math.Min(minX, p[0])
		maxX = math.Max(maxX, p[0])
		minY = math.Min(minY, p[1])
		maxY = math.Max(maxY, p[1])
	}

	spanX := maxX - minX
	spanY := maxY - minY
	innerW := width - 2*margin
	innerH := height - 2*margin

	out := make(map[string][2]float32, len(pos))
	for name, p := range pos {
		x := width / 2
		if spanX > 0 {
			x = margin + (p[0]-minX)/spanX*innerW
		}
		y := height / 2
		if spanY > 0 {
			y = margin + (maxY-p[1])/spanY*innerH
		}
		out[name] = [2]float32{float32(x), float32(y)}
	}

	return out
}
