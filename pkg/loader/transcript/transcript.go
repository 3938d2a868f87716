// Package transcript implements the Input:/Output: text file convention.
// A transcript carries the user's prompt text after an "Input:" marker line
// and the canned playback answer after an "Output:" marker line.
package transcript

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gridmind-ai/gridmind/backend/pkg/loader"
)

// Parse extracts the Input: and Output: segments from content. Marker lines
// are matched case-insensitively after trimming; the remainder of a marker
// line joins its segment when non-blank, and every following line is taken
// raw until the next marker. Lines before the first marker are discarded.
// Both segments are trimmed at the end.
func Parse(content string) (string, string) {
	if content == "" {
		return "", ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	var (
		inputLines  []string
		outputLines []string
		mode        string
	)

	for _, line := range strings.Split(content, "\n") {
		low := strings.ToLower(strings.TrimSpace(line))

		if strings.HasPrefix(low, "input:") {
			mode = "input"
			if rest := afterColon(line); strings.TrimSpace(rest) != "" {
				inputLines = append(inputLines, strings.TrimSpace(rest))
			}
			continue
		}
		if strings.HasPrefix(low, "output:") {
			mode = "output"
			if rest := afterColon(line); strings.TrimSpace(rest) != "" {
				outputLines = append(outputLines, strings.TrimLeftFunc(rest, unicode.IsSpace))
			}
			continue
		}

		switch mode {
		case "input":
			inputLines = append(inputLines, line)
		case "output":
			outputLines = append(outputLines, line)
		}
	}

	return strings.TrimSpace(strings.Join(inputLines, "\n")),
		strings.TrimSpace(strings.Join(outputLines, "\n"))
}

// FindPairedOutput returns the first existing sibling answer file for path,
// trying base.out.txt, base_out.txt, and base-out.txt in that order.
// Empty when none exists.
func FindPairedOutput(path string) string {
	if path == "" {
		return ""
	}

	base := strings.TrimSuffix(path, filepath.Ext(path))
	for _, candidate := range []string{
		base + ".out.txt",
		base + "_out.txt",
		base + "-out.txt",
	} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// FindAssociatedImage returns a same-stem .jpg/.png/.jpeg image next to
// path, falling back to the working directory. Empty when none exists.
func FindAssociatedImage(path string) string {
	if path == "" {
		return ""
	}

	name := filepath.Base(path)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	dir := filepath.Dir(path)

	exts := []string{".jpg", ".png", ".jpeg"}

	candidates := make([]string, 0, len(exts)*2)
	for _, ext := range exts {
		candidates = append(candidates, filepath.Join(dir, stem+ext))
	}
	if cwd, err := os.Getwd(); err == nil {
		for _, ext := range exts {
			candidates = append(candidates, filepath.Join(cwd, stem+ext))
		}
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// ResolveOutput returns the playback text for file: its Output segment,
// else the full content of the paired answer file, else empty.
func ResolveOutput(ctx context.Context, l loader.FileLoader, file loader.InputFile) string {
	data, err := l.Load(ctx, file)
	if err != nil {
		return ""
	}

	_, output := Parse(string(data))
	if output != "" {
		return output
	}

	paired := FindPairedOutput(file.Path)
	if paired == "" {
		return ""
	}

	content, err := l.Load(ctx, loader.NewInputFile(paired))
	if err != nil {
		return ""
	}

	return string(content)
}

func afterColon(line string) string {
	if idx := strings.Index(line, ":"); idx >= 0 {
		return line[idx+1:]
	}

	return ""
}
