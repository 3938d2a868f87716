package image

import (
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gridmind-ai/gridmind/backend/pkg/loader"
	loaderio "github.com/gridmind-ai/gridmind/backend/pkg/loader/io"
)

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}
	return path
}

func TestDescribeRGBA(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "photo.png", image.NewRGBA(image.Rect(0, 0, 12, 8)))

	got := Describe(context.Background(), loaderio.NewIOFileLoader(), loader.NewInputFile(path))
	want := "[图像] 尺寸: 12x8, 模式: RGBA"
	if got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}

func TestDescribeGray(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "scan.png", image.NewGray(image.Rect(0, 0, 5, 7)))

	got := Describe(context.Background(), loaderio.NewIOFileLoader(), loader.NewInputFile(path))
	want := "[图像] 尺寸: 5x7, 模式: L"
	if got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}

func TestDescribePaletted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icon.gif")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create icon.gif: %v", err)
	}
	img := image.NewPaletted(image.Rect(0, 0, 4, 4), color.Palette{color.Black, color.White})
	if err := gif.Encode(f, img, nil); err != nil {
		f.Close()
		t.Fatalf("encode icon.gif: %v", err)
	}
	f.Close()

	got := Describe(context.Background(), loaderio.NewIOFileLoader(), loader.NewInputFile(path))
	want := "[图像] 尺寸: 4x4, 模式: P"
	if got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}

func TestDescribeUnreadable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(path, []byte("not an image at all"), 0o644); err != nil {
		t.Fatalf("write broken.png: %v", err)
	}

	got := Describe(context.Background(), loaderio.NewIOFileLoader(), loader.NewInputFile(path))
	if got != Unreadable {
		t.Errorf("Describe() = %q, want %q", got, Unreadable)
	}
}

func TestDescribeNoImage(t *testing.T) {
	l := loaderio.NewIOFileLoader()

	if got := Describe(context.Background(), l, loader.InputFile{}); got != NoImage {
		t.Errorf("Describe(empty) = %q, want %q", got, NoImage)
	}

	missing := loader.NewInputFile(filepath.Join(t.TempDir(), "nope.jpg"))
	if got := Describe(context.Background(), l, missing); got != NoImage {
		t.Errorf("Describe(missing) = %q, want %q", got, NoImage)
	}
}
