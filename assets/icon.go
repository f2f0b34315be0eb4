// Package assets provides the application icon. The icon is drawn with the
// editor's own shapes, so every size is rendered on demand.
package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"slices"
	"sync"

	"golang.org/x/image/colornames"

	"github.com/example/vectoredit/internal/geom"
	"github.com/example/vectoredit/internal/raster"
	"github.com/example/vectoredit/internal/shape"
)

var sizes = []int{16, 32, 48, 64, 128}

var (
	mu       sync.Mutex
	pngCache = map[int][]byte{}
)

// iconShapes lays out the icon on a 64x64 grid.
func iconShapes(scale float64) []*shape.Shape {
	pt := func(x, y float64) geom.Point { return geom.Pt(x*scale, y*scale) }
	w := max(scale*2, 1)
	return []*shape.Shape{
		shape.NewRectangle(pt(6, 10), 34*scale, 28*scale,
			shape.Style{Fill: colornames.Lightblue, Stroke: colornames.Blue, StrokeWidth: w}),
		shape.NewEllipse(pt(40, 40), 16*scale, 16*scale,
			shape.Style{Fill: colornames.Orange, Stroke: colornames.Darkorange, StrokeWidth: w}),
		shape.NewBezier(pt(6, 56), pt(20, 30), pt(34, 70), pt(58, 8),
			shape.Style{Stroke: colornames.Purple, StrokeWidth: w}),
	}
}

// IconSizes lists the sizes IconImage renders.
func IconSizes() []int {
	return slices.Clone(sizes)
}

// IconImage renders the icon at size x size pixels.
func IconImage(size int) (image.Image, error) {
	if !slices.Contains(sizes, size) {
		return nil, fmt.Errorf("icon %dpx not available", size)
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	raster.Clear(img, colornames.White)
	for _, s := range iconShapes(float64(size) / 64) {
		s.Draw(img, shape.DefaultDecorations())
	}
	return img, nil
}

// IconPNG returns the icon encoded as PNG.
func IconPNG(size int) ([]byte, error) {
	mu.Lock()
	defer mu.Unlock()
	if data, ok := pngCache[size]; ok {
		return slices.Clone(data), nil
	}
	img, err := IconImage(size)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	pngCache[size] = buf.Bytes()
	return slices.Clone(buf.Bytes()), nil
}
