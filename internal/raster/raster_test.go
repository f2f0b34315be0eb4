package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/tdewolff/test"

	"github.com/example/vectoredit/internal/geom"
)

var black = color.RGBA{A: 255}

func surface(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func set(img *image.RGBA, x, y int) bool {
	return img.RGBAAt(x, y).A != 0
}

func count(img *image.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if set(img, x, y) {
				n++
			}
		}
	}
	return n
}

func TestDrawRectangleNegativeOrigin(t *testing.T) {
	img := surface(20, 20)
	DrawRectangle(img, -5, -5, 10, 10, black, true)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			test.That(t, set(img, x, y), x, y)
		}
	}
	test.T(t, count(img), 25)
	test.That(t, !set(img, 5, 0))
	test.That(t, !set(img, 0, 5))
}

func TestDrawRectangleOutline(t *testing.T) {
	img := surface(20, 20)
	DrawRectangle(img, 2, 3, 5, 4, black, false)
	test.That(t, set(img, 2, 3))
	test.That(t, set(img, 6, 3))
	test.That(t, set(img, 2, 6))
	test.That(t, set(img, 6, 6))
	test.That(t, !set(img, 4, 4), "interior")
	test.That(t, !set(img, 7, 3), "past right edge")
	test.T(t, count(img), 14)
}

func TestDrawRectangleClippedOutline(t *testing.T) {
	img := surface(10, 10)
	DrawRectangle(img, -3, 4, 20, 3, black, false)
	test.That(t, set(img, 0, 4))
	test.That(t, set(img, 9, 6))
	test.That(t, !set(img, 5, 5))
}

func TestDrawRectangleDegenerate(t *testing.T) {
	img := surface(10, 10)
	DrawRectangle(img, 2, 2, 0, 5, black, true)
	DrawRectangle(img, 2, 2, 5, 0, black, false)
	DrawRectangle(img, 2, 2, -4, -4, black, false)
	test.T(t, count(img), 0)
}

func TestDrawLine(t *testing.T) {
	img := surface(10, 10)
	DrawLine(img, 0, 0, 4, 2, black)
	for _, p := range []image.Point{{0, 0}, {1, 0}, {2, 1}, {3, 1}, {4, 2}} {
		test.That(t, set(img, p.X, p.Y), p)
	}
	test.T(t, count(img), 5)

	img = surface(10, 10)
	DrawLine(img, 3, 3, 3, 3, black)
	test.T(t, count(img), 1)
}

func TestDrawLineOutOfBounds(t *testing.T) {
	img := surface(10, 10)
	DrawLine(img, -100, -100, 200, 200, black)
	for i := 0; i < 10; i++ {
		test.That(t, set(img, i, i), i)
	}
	test.T(t, count(img), 10)

	img = surface(10, 10)
	DrawLine(img, -50, 5, -10, 40, black)
	test.T(t, count(img), 0)
}

func TestDrawThickLine(t *testing.T) {
	img := surface(20, 20)
	DrawThickLine(img, 5, 10, 15, 10, black, 3)
	test.That(t, set(img, 5, 9))
	test.That(t, set(img, 5, 11))
	test.That(t, set(img, 4, 10))
	test.That(t, !set(img, 5, 8))
	test.That(t, !set(img, 5, 12))
	test.T(t, count(img), 13*3)

	one := surface(20, 20)
	DrawThickLine(one, 5, 10, 15, 10, black, 1)
	test.T(t, count(one), 11)
}

func TestDrawCircle(t *testing.T) {
	img := surface(21, 21)
	DrawCircle(img, 10, 10, 5, black, false)
	test.That(t, set(img, 15, 10))
	test.That(t, set(img, 5, 10))
	test.That(t, set(img, 10, 5))
	test.That(t, set(img, 10, 15))
	test.That(t, !set(img, 10, 10), "outline leaves the center empty")

	img = surface(21, 21)
	DrawCircle(img, 10, 10, 5, black, true)
	test.That(t, set(img, 10, 10))
	test.That(t, set(img, 15, 10))
	test.That(t, !set(img, 16, 10))
	test.That(t, !set(img, 14, 6), "corner of the bounding box")

	img = surface(5, 5)
	DrawCircle(img, 2, 2, -1, black, true)
	DrawCircle(img, 100, 100, 3, black, false)
	test.T(t, count(img), 0)
}

func TestDrawOffSurface(t *testing.T) {
	img := surface(10, 10)
	DrawRectangle(img, 20, 20, 5, 5, black, true)
	DrawRectangle(img, -30, 2, 10, 4, black, false)
	DrawCircle(img, -20, -20, 6, black, true)
	DrawCircle(img, 5, 40, 8, black, true)
	test.T(t, count(img), 0)
}

func TestDrawFlatEllipse(t *testing.T) {
	img := surface(100, 20)
	DrawEllipse(img, 50, 10, 40, 0, black, false)
	test.T(t, count(img), 81)
	test.That(t, set(img, 10, 10))
	test.That(t, set(img, 90, 10))

	img = surface(20, 100)
	DrawEllipse(img, 10, 50, 0, 30, black, false)
	test.T(t, count(img), 61)
	test.That(t, set(img, 10, 20))
	test.That(t, set(img, 10, 80))
}

func TestDrawEllipse(t *testing.T) {
	img := surface(41, 41)
	DrawEllipse(img, 20, 20, 10, 5, black, true)
	for x := 10; x <= 30; x++ {
		test.That(t, set(img, x, 20), x)
	}
	test.That(t, !set(img, 9, 20))
	test.That(t, set(img, 20, 15))
	test.That(t, !set(img, 21, 15), "top row is a single pixel")
	test.That(t, !set(img, 20, 14))

	img = surface(41, 41)
	DrawEllipse(img, 20, 20, 10, 5, black, false)
	test.That(t, set(img, 20, 15))
	test.That(t, set(img, 20, 25))
	test.That(t, !set(img, 20, 20))

	img = surface(41, 41)
	DrawEllipse(img, 20, 20, 6, 0, black, true)
	test.T(t, count(img), 13)
	test.That(t, set(img, 14, 20))
	test.That(t, set(img, 26, 20))

	img = surface(10, 10)
	DrawEllipse(img, 5, 5, -2, 3, black, false)
	test.T(t, count(img), 0)
}

func TestDrawPolyline(t *testing.T) {
	img := surface(10, 10)
	DrawPolyline(img, nil, black)
	DrawPolyline(img, []geom.Point{geom.Pt(3, 3)}, black)
	test.T(t, count(img), 0)

	DrawPolyline(img, []geom.Point{geom.Pt(0, 0), geom.Pt(5, 0), geom.Pt(5, 5)}, black)
	test.T(t, count(img), 11)
}

func TestDrawThickPolylineClosed(t *testing.T) {
	tri := []geom.Point{geom.Pt(1, 1), geom.Pt(8, 1), geom.Pt(8, 8)}
	open := surface(10, 10)
	DrawThickPolyline(open, tri, black, 1, false)
	closed := surface(10, 10)
	DrawThickPolyline(closed, tri, black, 1, true)
	test.That(t, !set(open, 4, 4))
	test.That(t, set(closed, 4, 4))
}

func TestDrawBezier(t *testing.T) {
	img := surface(120, 120)
	DrawBezier(img, geom.Pt(10, 10), geom.Pt(10, 100), geom.Pt(100, 100), geom.Pt(100, 10), black)
	test.That(t, set(img, 10, 10))
	test.That(t, set(img, 100, 10))
	test.That(t, set(img, 55, 77), "curve midpoint")
	test.That(t, !set(img, 55, 20))
}

func TestDrawFilledPolygon(t *testing.T) {
	img := surface(20, 20)
	square := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10)}
	DrawFilledPolygon(img, square, black)
	test.T(t, count(img), 100)
	test.That(t, set(img, 9, 9))
	test.That(t, !set(img, 10, 9))

	img = surface(20, 20)
	DrawFilledPolygon(img, square[:2], black)
	test.T(t, count(img), 0)

	img = surface(20, 20)
	shifted := []geom.Point{geom.Pt(-5, -5), geom.Pt(5, -5), geom.Pt(5, 5), geom.Pt(-5, 5)}
	DrawFilledPolygon(img, shifted, black)
	test.T(t, count(img), 25)
}

func TestClear(t *testing.T) {
	img := surface(4, 3)
	c := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	Clear(img, c)
	test.T(t, count(img), 12)
	test.T(t, img.RGBAAt(3, 2), c)
}
