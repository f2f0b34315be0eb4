// Package render produces finished images of a drawing outside the editor
// window: headless rasterization, scaling, an optional drop shadow and PNG
// or TIFF encoding.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/example/vectoredit/internal/raster"
	"github.com/example/vectoredit/internal/shape"
)

// Options controls Image.
type Options struct {
	Width, Height int
	Background    color.RGBA
	// Scale resizes the rendered canvas. Zero means 1.
	Scale float64
	// Shadow adds a drop shadow around the canvas when set.
	Shadow *ShadowOptions
	// Decorations draws selection handles of selected shapes when set.
	Decorations *shape.Decorations
}

// Image renders shapes bottom first onto a fresh canvas.
func Image(shapes []*shape.Shape, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", opts.Width, opts.Height)
	}
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	raster.Clear(img, opts.Background)
	deco := shape.DefaultDecorations()
	if opts.Decorations != nil {
		deco = *opts.Decorations
	}
	for _, s := range shapes {
		if s.Selected && opts.Decorations == nil {
			plain := *s
			plain.Selected = false
			plain.Draw(img, deco)
			continue
		}
		s.Draw(img, deco)
	}
	if opts.Scale > 0 && opts.Scale != 1 {
		img = Scale(img, opts.Scale)
	}
	if opts.Shadow != nil {
		img = ApplyShadow(img, *opts.Shadow).Image
	}
	return img, nil
}

// Scale resizes img by factor with Catmull-Rom resampling.
func Scale(img *image.RGBA, factor float64) *image.RGBA {
	b := img.Bounds()
	w := int(float64(b.Dx())*factor + 0.5)
	h := int(float64(b.Dy())*factor + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Encode writes img in the format named by the extension of path: .tif and
// .tiff produce TIFF, everything else PNG.
func Encode(w io.Writer, path string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		if err := tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return fmt.Errorf("encode tiff: %w", err)
		}
	default:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
	}
	return nil
}
