package seriesfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gridmind-ai/gridmind/backend/pkg/loader"
	"github.com/gridmind-ai/gridmind/backend/pkg/series"

	"github.com/araddon/dateparse"
)

// ParseFrame reads a CSV into a timestamp-indexed frame for charting.
// The header must contain tsColumn. Timestamp cells are normalized
// (年/月 become dashes, 日 is removed) and parsed permissively; rows whose
// timestamp fails to parse are dropped, and the count of dropped rows is
// returned. Rows sort ascending by timestamp. Columns where every non-blank
// cell parses as a number are taken as-is; when no such column exists, every
// remaining column is coerced with NaN marking the failures.
func ParseFrame(
	ctx context.Context,
	l loader.FileLoader,
	file loader.InputFile,
	tsColumn string,
) (series.Frame, int, error) {
	data, err := l.Load(ctx, file)
	if err != nil {
		return series.Frame{}, 0, err
	}
	data = bytes.TrimPrefix(data, []byte("\uFEFF"))

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return series.Frame{}, 0, err
	}
	if len(rows) == 0 {
		return series.Frame{}, 0, fmt.Errorf("未找到时间列 '%s'，现有列：[]", tsColumn)
	}

	header := rows[0]
	tsIdx := -1
	for i, name := range header {
		if name == tsColumn {
			tsIdx = i
			break
		}
	}
	if tsIdx < 0 {
		return series.Frame{}, 0, fmt.Errorf(
			"未找到时间列 '%s'，现有列：%s", tsColumn, columnList(header),
		)
	}

	type keyed struct {
		ts  time.Time
		row []string
	}

	kept := make([]keyed, 0, len(rows)-1)
	dropped := 0
	for _, row := range rows[1:] {
		cell := ""
		if tsIdx < len(row) {
			cell = row[tsIdx]
		}
		ts, err := dateparse.ParseAny(normalizeTimestamp(cell))
		if err != nil {
			dropped++
			continue
		}
		kept = append(kept, keyed{ts: ts, row: row})
	}
	if len(kept) == 0 {
		return series.Frame{}, dropped, errors.New("时间列无法解析为有效日期。")
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].ts.Before(kept[j].ts) })

	type parsed struct {
		name    string
		values  []float64
		numeric bool
	}

	cols := make([]parsed, 0, len(header))
	for i, name := range header {
		if i == tsIdx {
			continue
		}
		values := make([]float64, len(kept))
		numeric := true
		for j, k := range kept {
			cell := ""
			if i < len(k.row) {
				cell = strings.TrimSpace(k.row[i])
			}
			if cell == "" {
				values[j] = math.NaN()
				continue
			}
			f, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				values[j] = math.NaN()
				numeric = false
				continue
			}
			values[j] = f
		}
		cols = append(cols, parsed{name: name, values: values, numeric: numeric})
	}

	columns := make([]series.Column, 0, len(cols))
	for _, c := range cols {
		if c.numeric {
			columns = append(columns, series.Column{Name: c.name, Values: c.values})
		}
	}
	if len(columns) == 0 {
		for _, c := range cols {
			columns = append(columns, series.Column{Name: c.name, Values: c.values})
		}
	}
	if len(columns) == 0 {
		return series.Frame{}, dropped, errors.New("未找到可绘制的数值列。")
	}

	timestamps := make([]time.Time, len(kept))
	for i, k := range kept {
		timestamps[i] = k.ts
	}

	return series.Frame{Timestamps: timestamps, Columns: columns}, dropped, nil
}

func normalizeTimestamp(cell string) string {
	cell = strings.TrimSpace(cell)
	cell = strings.ReplaceAll(cell, "年", "-")
	cell = strings.ReplaceAll(cell, "月", "-")
	cell = strings.ReplaceAll(cell, "日", "")

	return cell
}

// columnList renders header names the way the error message expects,
// e.g. ['date', 'load'].
func columnList(header []string) string {
	quoted := make([]string, len(header))
	for i, h := range header {
		quoted[i] = "'" + h + "'"
	}

	return "[" + strings.Join(quoted, ", ") + "]"
}
