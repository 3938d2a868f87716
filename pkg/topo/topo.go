package topo

import (
	"fmt"
	"sort"
	"strings"
)

// Edge is a directed connection between two named nodes.
type Edge struct {
	Src string `json:"src"`
	Dst string `json:"dst"`
}

// Topology is a directed graph given as a node list and an edge list.
// Node order is meaningful: layout algorithms place nodes in list order.
type Topology struct {
	Nodes []string `json:"nodes"`
	Edges []Edge   `json:"edges"`
}

// Empty reports whether the topology has neither nodes nor edges.
func (t Topology) Empty() bool {
	return len(t.Nodes) == 0 && len(t.Edges) == 0
}

// Merge combines two topologies. Node sets are unioned and sorted, edge
// lists are concatenated in order.
func Merge(a, b Topology) Topology {
	seen := make(map[string]bool, len(a.Nodes)+len(b.Nodes))
	nodes := make([]string, 0, len(a.Nodes)+len(b.Nodes))
	for _, n := range a.Nodes {
		if !seen[n] {
			seen[n] = true
			nodes = append(nodes, n)
		}
	}
	for _, n := range b.Nodes {
		if !seen[n] {
			seen[n] = true
			nodes = append(nodes, n)
		}
	}
	sort.Strings(nodes)

	edges := make([]Edge, 0, len(a.Edges)+len(b.Edges))
	edges = append(edges, a.Edges...)
	edges = append(edges, b.Edges...)

	return Topology{Nodes: nodes, Edges: edges}
}

// NodesFromEdges returns the sorted unique endpoints of edges. It is the
// fallback node list for inputs that only name edges.
func NodesFromEdges(edges []Edge) []string {
	seen := make(map[string]bool, len(edges)*2)
	nodes := make([]string, 0, len(edges)*2)
	for _, e := range edges {
		if !seen[e.Src] {
			seen[e.Src] = true
			nodes = append(nodes, e.Src)
		}
		if !seen[e.Dst] {
			seen[e.Dst] = true
			nodes = append(nodes, e.Dst)
		}
	}
	sort.Strings(nodes)

	return nodes
}

// Dedupe removes repeated directed edges, keeping first occurrence order.
// The node list is passed through unchanged.
func Dedupe(t Topology) Topology {
	seen := make(map[Edge]bool, len(t.Edges))
	edges := make([]Edge, 0, len(t.Edges))
	for _, e := range t.Edges {
		if !seen[e] {
			seen[e] = true
			edges = append(edges, e)
		}
	}

	return Topology{Nodes: t.Nodes, Edges: edges}
}

// Summarize renders the one-line topology description used in prompts.
// At most 5 sample edges are listed.
func Summarize(t Topology) string {
	if t.Empty() {
		return "[图拓扑] 无输入"
	}

	sample := "无"
	if len(t.Edges) > 0 {
		limit := len(t.Edges)
		if limit > 5 {
			limit = 5
		}
		parts := make([]string, 0, limit)
		for _, e := range t.Edges[:limit] {
			parts = append(parts, fmt.Sprintf("%s->%s", e.Src, e.Dst))
		}
		sample = strings.Join(parts, ", ")
	}

	return fmt.Sprintf("[图拓扑] 节点数: %d, 边数: %d, 示例边: %s", len(t.Nodes), len(t.Edges), sample)
}
