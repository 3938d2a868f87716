package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gridmind-ai/gridmind/backend/pkg/chart"
	"github.com/gridmind-ai/gridmind/backend/pkg/common"
	"github.com/gridmind-ai/gridmind/backend/pkg/loader"
	loaderio "github.com/gridmind-ai/gridmind/backend/pkg/loader/io"
	"github.com/gridmind-ai/gridmind/backend/pkg/loader/seriesfile"
)

func newTimeseriesCmd() *cobra.Command {
	var (
		input    string
		output   string
		tsColumn string
		title    string
	)

	cmd := &cobra.Command{
		Use:     "timeseries",
		Short:   "Render a time-series table to a PNG line chart",
		Example: `  gridplot timeseries -i data.csv -o result.png --ts-col timestamp --title 负荷曲线`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTimeseries(cmd.Context(), input, output, tsColumn, title)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "CSV data file")
	cmd.Flags().StringVarP(&output, "output", "o", "result.png", "output PNG file")
	cmd.Flags().StringVar(&tsColumn, "ts-col", common.DefaultTsColumn, "timestamp column name")
	cmd.Flags().StringVar(&title, "title", "", "chart title")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runTimeseries(ctx context.Context, input, output, tsColumn, title string) error {
	frame, dropped, err := seriesfile.ParseFrame(ctx, loaderio.NewIOFileLoader(), loader.NewInputFile(input), tsColumn)
	if err != nil {
		return err
	}
	if dropped > 0 {
		fmt.Printf("提示：有 %d 行时间解析失败，已忽略。\n", dropped)
	}

	opt := chart.TimeseriesOptions{
		Title: title,
		Name:  filepath.Base(input),
	}

	var buf bytes.Buffer
	if err := chart.RenderTimeseries(&buf, frame, opt); err != nil {
		return err
	}

	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return err
	}

	fmt.Printf("✅ 图像已保存：%s\n", output)

	return nil
}
