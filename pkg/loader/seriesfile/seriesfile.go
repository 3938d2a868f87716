package seriesfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gridmind-ai/gridmind/backend/pkg/loader"

	"github.com/kaptinlin/jsonrepair"
)

// ParseFile reads a value sequence from file. A .json file contributes its
// top-level array elements, or its object values in document order; anything
// else is read as CSV with every float-parsable cell collected in reading
// order. Values coerce permissively: numbers, numeric strings, and bools all
// count. Malformed input yields nil, never an error.
func ParseFile(ctx context.Context, l loader.FileLoader, file loader.InputFile) []float64 {
	data, err := l.Load(ctx, file)
	if err != nil {
		return nil
	}

	if file.Ext == ".json" {
		return parseJSON(data)
	}

	return parseCSV(data)
}

// ParseText splits text on newlines and commas and collects every
// float-parsable token.
func ParseText(text string) []float64 {
	var values []float64
	for _, token := range strings.Split(strings.ReplaceAll(text, "\n", ","), ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			continue
		}
		values = append(values, f)
	}

	return values
}

func parseJSON(data []byte) []float64 {
	if values, ok := decodeValues(data); ok {
		return values
	}

	repaired, err := jsonrepair.JSONRepair(string(data))
	if err != nil {
		return nil
	}
	values, _ := decodeValues([]byte(repaired))

	return values
}

// decodeValues walks the top-level array or object with a token decoder so
// object values keep their document order.
func decodeValues(data []byte) ([]float64, bool) {
	if !json.Valid(data) {
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, true
	}
	delim, isDelim := tok.(json.Delim)
	if !isDelim || (delim != '[' && delim != '{') {
		return nil, true
	}

	var values []float64
	for dec.More() {
		if delim == '{' {
			if _, err := dec.Token(); err != nil {
				break
			}
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			break
		}
		if f, ok := coerce(v); ok {
			values = append(values, f)
		}
	}

	return values, true
}

func parseCSV(data []byte) []float64 {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var values []float64
	for {
		row, err := r.Read()
		if err != nil {
			break
		}
		for _, cell := range row {
			f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				continue
			}
			values = append(values, f)
		}
	}

	return values
}

func coerce(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
