package series

import (
	"fmt"
	"strings"
	"time"
)

// Series is a plain sequence of sampled values.
type Series []float64

// Column is one numeric column of a frame. NaN marks cells that could not
// be parsed.
type Column struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Frame is a timestamp-indexed table ready for charting. Timestamps and
// every column have equal length, sorted ascending by timestamp.
type Frame struct {
	Timestamps []time.Time `json:"timestamps"`
	Columns    []Column    `json:"columns"`
}

// Summarize renders the one-line series description used in prompts.
// At most 8 sample values are listed, formatted to two decimals.
func Summarize(values Series) string {
	if len(values) == 0 {
		return "[时序] 无输入"
	}

	mn, mx := values[0], values[0]
	sum := 0.0
	for _, v := range values {
		if v < mn {
			mn = v
		}
		if v > mx {
			mx = v
		}
		sum += v
	}
	mean := sum / float64(len(values))

	trend := "持平"
	switch first, last := values[0], values[len(values)-1]; {
	case last > first:
		trend = "上升"
	case last < first:
		trend = "下降"
	}

	limit := len(values)
	if limit > 8 {
		limit = 8
	}
	samples := make([]string, 0, limit)
	for _, v := range values[:limit] {
		samples = append(samples, fmt.Sprintf("%.2f", v))
	}

	return fmt.Sprintf(
		"[时序] 点数: %d, 范围: [%.2f, %.2f], 均值: %.2f, 趋势: %s, 示例: %s",
		len(values), mn, mx, mean, trend, strings.Join(samples, ", "),
	)
}
