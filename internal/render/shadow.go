package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions describes a drop shadow cast by the opaque pixels of an
// exported drawing.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// ShadowResult is the output of ApplyShadow.
type ShadowResult struct {
	Image *image.RGBA
	// Offset is where the top-left corner of the drawing landed on the
	// enlarged canvas.
	Offset image.Point
}

// DefaultShadowOptions is the shadow used by `render --shadow`.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{Radius: 12, Offset: image.Pt(8, 8), Opacity: 0.5}
}

// ApplyShadow returns img on a canvas grown to hold a blurred copy of its
// alpha channel, shifted by opts.Offset. The result is zero based.
func ApplyShadow(img *image.RGBA, opts ShadowOptions) ShadowResult {
	if img == nil {
		return ShadowResult{}
	}
	if img.Bounds().Empty() || opts.Opacity <= 0 {
		return ShadowResult{Image: img}
	}
	opacity := min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)

	src := img.Bounds()
	padded := src.Inset(-radius)
	cast := padded.Add(opts.Offset)
	canvas := src.Union(cast)

	mask := image.NewGray(padded.Sub(padded.Min))
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			if a := img.RGBAAt(x, y).A; a != 0 {
				mask.SetGray(x-padded.Min.X, y-padded.Min.Y, color.Gray{Y: a})
			}
		}
	}
	mask = blurGray(mask, radius)

	dst := image.NewRGBA(canvas.Sub(canvas.Min))
	tint := image.NewUniform(color.RGBA{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(dst, mask.Bounds().Add(cast.Min.Sub(canvas.Min)), tint, image.Point{}, mask, image.Point{}, draw.Over)
	draw.Draw(dst, src.Sub(canvas.Min), img, src.Min, draw.Over)
	return ShadowResult{Image: dst, Offset: src.Min.Sub(canvas.Min)}
}

// blurGray is a separable box blur of the given radius.
func blurGray(src *image.Gray, radius int) *image.Gray {
	out := image.NewGray(src.Bounds())
	if radius <= 0 {
		copy(out.Pix, src.Pix)
		return out
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	tmp := image.NewGray(src.Bounds())
	boxPass(src.Pix, tmp.Pix, w, h, 1, src.Stride, radius)
	boxPass(tmp.Pix, out.Pix, h, w, tmp.Stride, 1, radius)
	return out
}

// boxPass averages n samples spaced step apart along each of lines lines
// that start stride apart.
func boxPass(in, out []uint8, n, lines, step, stride, radius int) {
	prefix := make([]int, n+1)
	for l := 0; l < lines; l++ {
		base := l * stride
		for i := 0; i < n; i++ {
			prefix[i+1] = prefix[i] + int(in[base+i*step])
		}
		for i := 0; i < n; i++ {
			lo := max(i-radius, 0)
			hi := min(i+radius, n-1)
			out[base+i*step] = uint8((prefix[hi+1] - prefix[lo]) / (hi - lo + 1))
		}
	}
}
