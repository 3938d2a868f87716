package chart

import (
	"errors"
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/gridmind-ai/gridmind/backend/pkg/series"
)

// ErrNoSeries is returned when no column has a single plottable value.
var ErrNoSeries = errors.New("未找到可绘制的数值列。")

const (
	defaultChartWidth  = 1920
	defaultChartHeight = 960
)

// TimeseriesOptions controls the PNG line chart.
type TimeseriesOptions struct {
	// Title of the chart. Empty falls back to the stem of Name.
	Title string
	// Name is the source file name, only used for the title fallback.
	Name string
	// Width and Height of the canvas in pixels. Zero picks 1920x960.
	Width  int
	Height int
}

// Timeseries builds a line chart with one series per frame column. NaN cells
// are skipped, single-point series are padded so the x-range stays valid.
func Timeseries(f series.Frame, opt TimeseriesOptions) (*chart.Chart, error) {
	plots := make([]chart.Series, 0, len(f.Columns))
	for _, col := range f.Columns {
		n := min(len(f.Timestamps), len(col.Values))

		xs := make([]time.Time, 0, n)
		ys := make([]float64, 0, n)
		for i := 0; i < n; i++ {
			if math.IsNaN(col.Values[i]) {
				continue
			}
			xs = append(xs, f.Timestamps[i])
			ys = append(ys, col.Values[i])
		}
		if len(xs) == 0 {
			continue
		}
		if len(xs) == 1 {
			xs = append(xs, xs[0].Add(time.Second))
			ys = append(ys, ys[0])
		}

		plots = append(plots, chart.TimeSeries{Name: col.Name, XValues: xs, YValues: ys})
	}
	if len(plots) == 0 {
		return nil, ErrNoSeries
	}

	width := opt.Width
	if width <= 0 {
		width = defaultChartWidth
	}
	height := opt.Height
	if height <= 0 {
		height = defaultChartHeight
	}

	grid := chart.Style{StrokeColor: chart.ColorAlternateGray.WithAlpha(128), StrokeWidth: 1.0}
	ch := &chart.Chart{
		Title:      chartTitle(opt),
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 24}},
		XAxis:      chart.XAxis{Name: "Time", GridMajorStyle: grid},
		YAxis:      chart.YAxis{Name: "Value", GridMajorStyle: grid},
		Series:     plots,
	}
	ch.Elements = []chart.Renderable{chart.Legend(ch)}

	return ch, nil
}

// RenderTimeseries encodes the line chart as PNG to w.
func RenderTimeseries(w io.Writer, f series.Frame, opt TimeseriesOptions) error {
	ch, err := Timeseries(f, opt)
	if err != nil {
		return err
	}

	return ch.Render(chart.PNG, w)
}

func chartTitle(opt TimeseriesOptions) string {
	if opt.Title != "" {
		return opt.Title
	}
	if opt.Name == "" {
		return ""
	}

	base := filepath.Base(opt.Name)

	return strings.TrimSuffix(base, filepath.Ext(base))
}
