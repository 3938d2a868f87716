package transcript

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gridmind-ai/gridmind/backend/pkg/loader"
	loaderio "github.com/gridmind-ai/gridmind/backend/pkg/loader/io"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantInput  string
		wantOutput string
	}{
		{
			"both segments",
			"Input: 请分析拓扑\nOutput: 两个节点相连\n",
			"请分析拓扑",
			"两个节点相连",
		},
		{
			"multi-line segments",
			"Input:\n第一行\n第二行\nOutput:\n答案一\n答案二\n",
			"第一行\n第二行",
			"答案一\n答案二",
		},
		{
			"markers are case-insensitive and may be indented",
			"  INPUT: question\n  output: answer\n",
			"question",
			"answer",
		},
		{
			"preamble before markers is discarded",
			"some header\njunk\nInput: q\n",
			"q",
			"",
		},
		{
			"marker remainder keeps inner spacing for output",
			"Output:   padded answer\nmore",
			"",
			"padded answer\nmore",
		},
		{
			"no markers",
			"just some text\n",
			"",
			"",
		},
		{
			"empty",
			"",
			"",
			"",
		},
		{
			"colons inside segment lines are kept",
			"Input: q\ntime: 12:30\n",
			"q\ntime: 12:30",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, output := Parse(tt.content)
			if input != tt.wantInput {
				t.Fatalf("expected input %q, got %q", tt.wantInput, input)
			}
			if output != tt.wantOutput {
				t.Fatalf("expected output %q, got %q", tt.wantOutput, output)
			}
		})
	}
}

func TestParseWindowsLineEndings(t *testing.T) {
	input, output := Parse("Input: q\r\nOutput: a\r\nsecond\r\n")

	if input != "q" {
		t.Fatalf("expected input %q, got %q", "q", input)
	}
	if output != "a\nsecond" {
		t.Fatalf("expected output %q, got %q", "a\nsecond", output)
	}
}

func TestFindPairedOutput(t *testing.T) {
	dir := t.TempDir()

	write := func(name string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		return path
	}

	in := write("case1.txt")
	want := write("case1_out.txt")

	if got := FindPairedOutput(in); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFindPairedOutputPreference(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "case.txt")

	for _, name := range []string{"case.txt", "case.out.txt", "case_out.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	want := filepath.Join(dir, "case.out.txt")
	if got := FindPairedOutput(in); got != want {
		t.Fatalf("expected dotted candidate first, got %q", got)
	}
}

func TestFindPairedOutputMissing(t *testing.T) {
	if got := FindPairedOutput(filepath.Join(t.TempDir(), "alone.txt")); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestFindAssociatedImage(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "topology.json")

	want := filepath.Join(dir, "topology.png")
	if err := os.WriteFile(want, []byte("x"), 0o644); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got := FindAssociatedImage(in); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFindAssociatedImageMissing(t *testing.T) {
	if got := FindAssociatedImage(filepath.Join(t.TempDir(), "nothing.json")); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestResolveOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chat.txt")
	content := "Input: q\nOutput: canned answer\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got := ResolveOutput(
		context.Background(), loaderio.NewIOFileLoader(), loader.NewInputFile(path),
	)
	if got != "canned answer" {
		t.Fatalf("expected %q, got %q", "canned answer", got)
	}
}

func TestResolveOutputFallsBackToPairedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chat.txt")
	if err := os.WriteFile(path, []byte("Input: q\n"), 0o644); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	paired := filepath.Join(dir, "chat.out.txt")
	if err := os.WriteFile(paired, []byte("full paired content"), 0o644); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got := ResolveOutput(
		context.Background(), loaderio.NewIOFileLoader(), loader.NewInputFile(path),
	)
	if got != "full paired content" {
		t.Fatalf("expected paired content, got %q", got)
	}
}

func TestResolveOutputEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chat.txt")
	if err := os.WriteFile(path, []byte("Input: only\n"), 0o644); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got := ResolveOutput(
		context.Background(), loaderio.NewIOFileLoader(), loader.NewInputFile(path),
	)
	if got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
