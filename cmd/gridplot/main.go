// Package main provides the gridplot CLI for rendering chart files from
// grid monitoring data.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gridplot",
		Short: "Render grid topology and time-series charts",
		Long: `gridplot renders chart files from grid monitoring data.

topology reads a graph description (nodes + edges) and writes an
interactive HTML page; timeseries reads a timestamped CSV table and
writes a PNG line chart.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newTopologyCmd())
	rootCmd.AddCommand(newTimeseriesCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
