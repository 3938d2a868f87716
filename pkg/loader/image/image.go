package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gridmind-ai/gridmind/backend/pkg/loader"
)

const (
	// NoImage is the description used when no image was provided.
	NoImage = "[无图像输入]"
	// Unreadable is the description used when the image header cannot be decoded.
	Unreadable = "[图像] 无法获取尺寸信息"
)

// Describe reads the image header and renders the one-line description used
// in prompts, e.g. "[图像] 尺寸: 640x480, 模式: RGB". The mode mirrors the
// names an imaging library would report for the file's pixel layout.
func Describe(ctx context.Context, l loader.FileLoader, file loader.InputFile) string {
	if file.Path == "" {
		return NoImage
	}

	data, err := l.Load(ctx, file)
	if err != nil {
		return NoImage
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Unreadable
	}

	return fmt.Sprintf("[图像] 尺寸: %dx%d, 模式: %s", cfg.Width, cfg.Height, modeName(cfg.ColorModel))
}

func modeName(m color.Model) string {
	if _, ok := m.(color.Palette); ok {
		return "P"
	}

	switch m {
	case color.GrayModel, color.Gray16Model:
		return "L"
	case color.CMYKModel:
		return "CMYK"
	case color.NRGBAModel, color.NRGBA64Model, color.NYCbCrAModel:
		return "RGBA"
	case color.RGBAModel, color.RGBA64Model, color.YCbCrModel:
		return "RGB"
	default:
		return "RGB"
	}
}
