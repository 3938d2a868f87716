package seriesfile

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gridmind-ai/gridmind/backend/pkg/loader"
	loaderio "github.com/gridmind-ai/gridmind/backend/pkg/loader/io"
)

func writeInput(t *testing.T, name, content string) loader.InputFile {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	return loader.NewInputFile(path)
}

func TestParseFileJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []float64
	}{
		{
			"array with mixed coercible values",
			`[1, "2.5", true, "x", null, 4]`,
			[]float64{1, 2.5, 1, 4},
		},
		{
			"object values in document order",
			`{"b": 2, "a": 1, "c": 3}`,
			[]float64{2, 1, 3},
		},
		{
			"nested values are skipped",
			`[1, [2, 3], {"v": 4}, 5]`,
			[]float64{1, 5},
		},
		{
			"trailing comma is repaired",
			`[1, 2,]`,
			[]float64{1, 2},
		},
		{
			"scalar document yields nothing",
			`3.5`,
			nil,
		},
		{
			"hopeless input yields nothing",
			`{{{`,
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := writeInput(t, "series.json", tt.content)

			got := ParseFile(context.Background(), loaderio.NewIOFileLoader(), file)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestParseFileCSV(t *testing.T) {
	file := writeInput(t, "series.csv", "1, 2\n3, abc\n 4.5 \n")

	got := ParseFile(context.Background(), loaderio.NewIOFileLoader(), file)

	want := []float64{1, 2, 3, 4.5}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestParseFileTXT(t *testing.T) {
	file := writeInput(t, "series.txt", "5\n6\nseven\n")

	got := ParseFile(context.Background(), loaderio.NewIOFileLoader(), file)

	want := []float64{5, 6}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestParseFileMissing(t *testing.T) {
	file := loader.NewInputFile("/nonexistent/series.json")

	if got := ParseFile(context.Background(), loaderio.NewIOFileLoader(), file); got != nil {
		t.Fatalf("expected nil, got %#v", got)
	}
}

func TestParseText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []float64
	}{
		{"commas", "1, 2, 3", []float64{1, 2, 3}},
		{"newlines become commas", "1\n2\n3", []float64{1, 2, 3}},
		{"mixed separators and junk", "1, x\n2,,3", []float64{1, 2, 3}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseText(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %#v, got %#v", tt.want, got)
			}
		})
	}
}
