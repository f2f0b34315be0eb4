// Package raster scan-converts lines, rectangles, circles, ellipses,
// polygons and Bezier curves into an *image.RGBA. Pixels are written opaque
// without blending and every write outside the surface is dropped.
package raster

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/example/vectoredit/internal/geom"
)

// BezierSegments is the fixed number of line segments used to draw a cubic
// Bezier curve.
const BezierSegments = 100

func plot(dst *image.RGBA, x, y int, c color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(dst.Rect) {
		return
	}
	i := dst.PixOffset(x, y)
	s := dst.Pix[i : i+4 : i+4]
	s[0] = c.R
	s[1] = c.G
	s[2] = c.B
	s[3] = c.A
}

// span fills the row y from x0 to x1 inclusive, clipped to dst.
func span(dst *image.RGBA, x0, x1, y int, c color.RGBA) {
	b := dst.Rect
	if y < b.Min.Y || y >= b.Max.Y {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x0 < b.Min.X {
		x0 = b.Min.X
	}
	if x1 > b.Max.X-1 {
		x1 = b.Max.X - 1
	}
	for x := x0; x <= x1; x++ {
		plot(dst, x, y, c)
	}
}

// Clear paints the whole surface with c.
func Clear(dst *image.RGBA, c color.RGBA) {
	b := dst.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		span(dst, b.Min.X, b.Max.X-1, y, c)
	}
}

// DrawLine draws a one pixel line with Bresenham's algorithm. Both
// endpoints are included.
func DrawLine(dst *image.RGBA, x1, y1, x2, y2 int, c color.RGBA) {
	brush(dst, x1, y1, x2, y2, func(x, y int) { plot(dst, x, y, c) })
}

func brush(dst *image.RGBA, x1, y1, x2, y2 int, stamp func(x, y int)) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}
	err := dx - dy
	for {
		stamp(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawThickLine draws a line stamping a square brush of the given
// thickness at every Bresenham step. A thickness below 2 is DrawLine.
func DrawThickLine(dst *image.RGBA, x1, y1, x2, y2 int, c color.RGBA, thickness int) {
	if thickness < 2 {
		DrawLine(dst, x1, y1, x2, y2, c)
		return
	}
	r := thickness / 2
	lo := -r
	hi := thickness - r - 1
	brush(dst, x1, y1, x2, y2, func(x, y int) {
		for py := y + lo; py <= y+hi; py++ {
			span(dst, x+lo, x+hi, py, c)
		}
	})
}

// DrawRectangle draws the box at (x, y) of size w x h. Filled boxes cover
// rows [y, y+h) and columns [x, x+w); outlines draw the four edges, each
// clipped independently.
func DrawRectangle(dst *image.RGBA, x, y, w, h int, c color.RGBA, fill bool) {
	if w <= 0 || h <= 0 {
		return
	}
	if fill {
		for row := y; row < y+h; row++ {
			span(dst, x, x+w-1, row, c)
		}
		return
	}
	span(dst, x, x+w-1, y, c)
	span(dst, x, x+w-1, y+h-1, c)
	for row := y; row < y+h; row++ {
		plot(dst, x, row, c)
		plot(dst, x+w-1, row, c)
	}
}

// DrawCircle draws a circle of radius r around (cx, cy). Filled circles use
// one horizontal span per row; outlines use the midpoint algorithm with
// eight-way symmetry.
func DrawCircle(dst *image.RGBA, cx, cy, r int, c color.RGBA, fill bool) {
	if r < 0 {
		return
	}
	if fill {
		for dy := -r; dy <= r; dy++ {
			dx := int(math.Sqrt(float64(r*r - dy*dy)))
			span(dst, cx-dx, cx+dx, cy+dy, c)
		}
		return
	}
	x, y := 0, r
	d := 3 - 2*r
	circlePoints(dst, cx, cy, x, y, c)
	for y >= x {
		x++
		if d > 0 {
			y--
			d += 4*(x-y) + 10
		} else {
			d += 4*x + 6
		}
		circlePoints(dst, cx, cy, x, y, c)
	}
}

func circlePoints(dst *image.RGBA, cx, cy, x, y int, c color.RGBA) {
	plot(dst, cx+x, cy+y, c)
	plot(dst, cx-x, cy+y, c)
	plot(dst, cx+x, cy-y, c)
	plot(dst, cx-x, cy-y, c)
	plot(dst, cx+y, cy+x, c)
	plot(dst, cx-y, cy+x, c)
	plot(dst, cx+y, cy-x, c)
	plot(dst, cx-y, cy-x, c)
}

// DrawEllipse draws an axis aligned ellipse with radii rx, ry around
// (cx, cy). Outlines use the two region midpoint algorithm.
func DrawEllipse(dst *image.RGBA, cx, cy, rx, ry int, c color.RGBA, fill bool) {
	if rx < 0 || ry < 0 {
		return
	}
	if fill {
		if ry == 0 {
			span(dst, cx-rx, cx+rx, cy, c)
			return
		}
		for y := cy - ry; y <= cy+ry; y++ {
			ny := float64(y-cy) / float64(ry)
			sq := ny * ny
			if sq > 1 {
				continue
			}
			dx := float64(rx) * math.Sqrt(1-sq)
			span(dst, int(float64(cx)-dx), int(float64(cx)+dx), y, c)
		}
		return
	}

	// flat ellipses collapse to a run on their axis
	if ry == 0 {
		span(dst, cx-rx, cx+rx, cy, c)
		return
	}
	if rx == 0 {
		for y := cy - ry; y <= cy+ry; y++ {
			plot(dst, cx, y, c)
		}
		return
	}

	rx2 := int64(rx) * int64(rx)
	ry2 := int64(ry) * int64(ry)
	twoRx2 := 2 * rx2
	twoRy2 := 2 * ry2
	var x int64
	y := int64(ry)
	var px int64
	py := twoRx2 * y
	quad := func() {
		plot(dst, cx+int(x), cy+int(y), c)
		plot(dst, cx-int(x), cy+int(y), c)
		plot(dst, cx+int(x), cy-int(y), c)
		plot(dst, cx-int(x), cy-int(y), c)
	}
	quad()

	// region 1: slope above -1, step in x
	p := int64(math.Round(float64(ry2) - float64(rx2*int64(ry)) + 0.25*float64(rx2)))
	for px < py {
		x++
		px += twoRy2
		if p < 0 {
			p += ry2 + px
		} else {
			y--
			py -= twoRx2
			p += ry2 + px - py
		}
		quad()
	}

	// region 2: slope below -1, step in y
	fx := float64(x) + 0.5
	fy := float64(y - 1)
	p = int64(math.Round(float64(ry2)*fx*fx + float64(rx2)*fy*fy - float64(rx2*ry2)))
	for y > 0 {
		y--
		py -= twoRx2
		if p > 0 {
			p += rx2 - py
		} else {
			x++
			px += twoRy2
			p += rx2 - py + px
		}
		quad()
	}
}

// DrawPolyline joins consecutive points with DrawLine. Fewer than two
// points draw nothing.
func DrawPolyline(dst *image.RGBA, pts []geom.Point, c color.RGBA) {
	DrawThickPolyline(dst, pts, c, 1, false)
}

// DrawThickPolyline joins consecutive points with lines of the given
// thickness, closing the path when closed is set.
func DrawThickPolyline(dst *image.RGBA, pts []geom.Point, c color.RGBA, thickness int, closed bool) {
	if len(pts) < 2 {
		return
	}
	for i := 0; i < len(pts)-1; i++ {
		a, b := pts[i], pts[i+1]
		DrawThickLine(dst, int(a.X), int(a.Y), int(b.X), int(b.Y), c, thickness)
	}
	if closed && len(pts) > 2 {
		a, b := pts[len(pts)-1], pts[0]
		DrawThickLine(dst, int(a.X), int(a.Y), int(b.X), int(b.Y), c, thickness)
	}
}

// DrawBezier draws the cubic curve p0..p3 as BezierSegments straight lines.
func DrawBezier(dst *image.RGBA, p0, p1, p2, p3 geom.Point, c color.RGBA) {
	DrawPolyline(dst, geom.Flatten(p0, p1, p2, p3, BezierSegments), c)
}

// DrawFilledPolygon fills pts with the even-odd rule. Each row is sampled
// at its pixel center and spans run between pairs of edge crossings.
func DrawFilledPolygon(dst *image.RGBA, pts []geom.Point, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	r := geom.Bounds(pts)
	y0 := int(math.Floor(r.Min.Y))
	y1 := int(math.Ceil(r.Max.Y))
	if y0 < dst.Rect.Min.Y {
		y0 = dst.Rect.Min.Y
	}
	if y1 > dst.Rect.Max.Y-1 {
		y1 = dst.Rect.Max.Y - 1
	}
	xs := make([]float64, 0, len(pts))
	for y := y0; y <= y1; y++ {
		sy := float64(y) + 0.5
		xs = xs[:0]
		for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
			a, b := pts[i], pts[j]
			if (a.Y > sy) == (b.Y > sy) {
				continue
			}
			xs = append(xs, a.X+(sy-a.Y)*(b.X-a.X)/(b.Y-a.Y))
		}
		sort.Float64s(xs)
		for k := 0; k+1 < len(xs); k += 2 {
			left := int(math.Ceil(xs[k] - 0.5))
			right := int(math.Floor(xs[k+1] - 0.5))
			if right >= left {
				span(dst, left, right, y, c)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
