package graphfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gridmind-ai/gridmind/backend/pkg/loader"
	"github.com/gridmind-ai/gridmind/backend/pkg/topo"

	"github.com/kaptinlin/jsonrepair"
)

// ParseFile reads a topology from file. Supported formats:
//   - .json: {"edges": [["a","b"], ...]} with optional "nodes", or an
//     adjacency array [[node, [neighbors...]], ...]
//   - .csv/.tsv: comma-separated rows, first two cells per row
//   - anything else: whitespace-separated fields, first two per line
//
// When the node list is absent it falls back to the sorted unique edge
// endpoints. Malformed input yields an empty topology, never an error.
func ParseFile(ctx context.Context, l loader.FileLoader, file loader.InputFile) topo.Topology {
	data, err := l.Load(ctx, file)
	if err != nil {
		return topo.Topology{}
	}

	switch file.Ext {
	case ".json":
		return parseJSON(data)
	case ".csv", ".tsv":
		return parseCSV(data)
	default:
		return ParseText(string(data))
	}
}

// ParseText parses whitespace-separated "src dst" lines, one edge per line.
// Lines with fewer than two fields are skipped.
func ParseText(text string) topo.Topology {
	var edges []topo.Edge
	for _, line := range strings.Split(text, "\n") {
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		edges = append(edges, topo.Edge{Src: parts[0], Dst: parts[1]})
	}

	return withFallbackNodes(nil, edges)
}

func parseJSON(data []byte) topo.Topology {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		repaired, rerr := jsonrepair.JSONRepair(string(data))
		if rerr != nil {
			return topo.Topology{}
		}
		if err := json.Unmarshal([]byte(repaired), &raw); err != nil {
			return topo.Topology{}
		}
	}

	var (
		edges []topo.Edge
		nodes []string
	)

	switch v := raw.(type) {
	case map[string]any:
		if list, ok := v["edges"].([]any); ok {
			for _, e := range list {
				pair, ok := e.([]any)
				if !ok || len(pair) < 2 {
					continue
				}
				edges = append(edges, topo.Edge{
					Src: stringify(pair[0]),
					Dst: stringify(pair[1]),
				})
			}
		}
		if list, ok := v["nodes"].([]any); ok {
			nodes = make([]string, 0, len(list))
			for _, n := range list {
				nodes = append(nodes, stringify(n))
			}
		}
	case []any:
		// adjacency array: [[node, [neighbors...]], ...]
		for _, item := range v {
			entry, ok := item.([]any)
			if !ok || len(entry) < 2 {
				continue
			}
			neighbors, ok := entry[1].([]any)
			if !ok {
				continue
			}
			src := stringify(entry[0])
			for _, dst := range neighbors {
				edges = append(edges, topo.Edge{Src: src, Dst: stringify(dst)})
			}
		}
	}

	return withFallbackNodes(nodes, edges)
}

func parseCSV(data []byte) topo.Topology {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var edges []topo.Edge
	for {
		row, err := r.Read()
		if err != nil {
			break
		}
		if len(row) < 2 {
			continue
		}
		edges = append(edges, topo.Edge{
			Src: strings.TrimSpace(row[0]),
			Dst: strings.TrimSpace(row[1]),
		})
	}

	return withFallbackNodes(nil, edges)
}

func withFallbackNodes(nodes []string, edges []topo.Edge) topo.Topology {
	if len(nodes) == 0 && len(edges) > 0 {
		nodes = topo.NodesFromEdges(edges)
	}

	return topo.Topology{Nodes: nodes, Edges: edges}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", t)
	}
}
