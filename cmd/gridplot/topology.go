package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridmind-ai/gridmind/backend/pkg/chart"
	"github.com/gridmind-ai/gridmind/backend/pkg/loader"
	"github.com/gridmind-ai/gridmind/backend/pkg/loader/graphfile"
	loaderio "github.com/gridmind-ai/gridmind/backend/pkg/loader/io"
)

func newTopologyCmd() *cobra.Command {
	var (
		input  string
		output string
		layout string
	)

	cmd := &cobra.Command{
		Use:     "topology",
		Short:   "Render a topology graph to an interactive HTML chart",
		Example: `  gridplot topology -i graph.json -o topology.html --layout spring`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTopology(cmd.Context(), input, output, layout)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "graph file (json or csv)")
	cmd.Flags().StringVarP(&output, "output", "o", "topology.html", "output HTML file")
	cmd.Flags().StringVar(&layout, "layout", "spring", "node placement (spring, circular, kamada_kawai, random)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runTopology(ctx context.Context, input, output, layout string) error {
	t := graphfile.ParseFile(ctx, loaderio.NewIOFileLoader(), loader.NewInputFile(input))

	var buf bytes.Buffer
	if err := chart.RenderTopology(&buf, t, chart.TopologyOptions{Layout: layout}); err != nil {
		return err
	}

	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return err
	}

	fmt.Printf("✅ 拓扑结构图已保存为：%s\n", output)

	return nil
}
