package geom

import (
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func near(a, b Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestRotate(t *testing.T) {
	c := Pt(10, 10)
	tests := []struct {
		p    Point
		deg  float64
		want Point
	}{
		{Pt(10, 0), 0, Pt(10, 0)},
		{Pt(10, 0), 90, Pt(20, 10)},
		{Pt(10, 0), 180, Pt(10, 20)},
		{Pt(10, 0), 270, Pt(0, 10)},
		{Pt(20, 10), -90, Pt(10, 0)},
	}
	for _, tt := range tests {
		got := Rotate(tt.p, c, tt.deg)
		test.That(t, near(got, tt.want), "rotate", tt.p, tt.deg, "got", got, "want", tt.want)
	}
}

func TestRotateRoundTrip(t *testing.T) {
	pts := []Point{Pt(1, 2), Pt(-3, 7.5), Pt(100, -42)}
	c := Pt(5, 5)
	back := RotateAll(RotateAll(pts, c, 37.5), c, -37.5)
	for i := range pts {
		test.That(t, near(back[i], pts[i]), i, back[i])
	}
}

func TestNormalizeAngle(t *testing.T) {
	test.Float(t, NormalizeAngle(0), 0)
	test.Float(t, NormalizeAngle(360), 0)
	test.Float(t, NormalizeAngle(-90), 270)
	test.Float(t, NormalizeAngle(725), 5)
	test.That(t, NormalizeAngle(-1e-20) < 360)
}

func TestWrapDelta(t *testing.T) {
	test.Float(t, WrapDelta(350), -10)
	test.Float(t, WrapDelta(-350), 10)
	test.Float(t, WrapDelta(180), 180)
	test.Float(t, WrapDelta(-180), 180)
	test.Float(t, WrapDelta(45), 45)
}

func TestSnap(t *testing.T) {
	test.Float(t, Snap(7, 15), 0)
	test.Float(t, Snap(8, 15), 15)
	test.Float(t, Snap(-22, 15), -15)
	test.Float(t, Snap(3, 0), 3)
}

func TestSnapDirection(t *testing.T) {
	a := Pt(10, 10)
	got := SnapDirection(a, Pt(20, 11), 45)
	test.That(t, math.Abs(got.Y-10) < 1e-9, got)
	test.That(t, math.Abs(Distance(a, got)-Distance(a, Pt(20, 11))) < 1e-9, got)

	got = SnapDirection(a, Pt(19, 21), 45)
	test.That(t, math.Abs((got.X-10)-(got.Y-10)) < 1e-9, "diagonal", got)
	test.T(t, SnapDirection(a, a, 45), a)
}

func TestHeading(t *testing.T) {
	c := Pt(0, 0)
	test.Float(t, Heading(c, Pt(0, -10)), 0)
	test.Float(t, Heading(c, Pt(10, 0)), 90)
	test.Float(t, Heading(c, Pt(0, 10)), 180)
	test.Float(t, Heading(c, Pt(-10, 0)), 270)
}

func TestInPolygon(t *testing.T) {
	square := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}
	test.That(t, InPolygon(Pt(5, 5), square))
	test.That(t, !InPolygon(Pt(15, 5), square))
	test.That(t, !InPolygon(Pt(5, 5), square[:2]))

	// bow tie: side lobes are inside, the top notch is not
	star := []Point{Pt(0, 0), Pt(20, 20), Pt(20, 0), Pt(0, 20)}
	test.That(t, InPolygon(Pt(3, 10), star))
	test.That(t, !InPolygon(Pt(10, 3), star))
}

func TestNearSegment(t *testing.T) {
	a, b := Pt(0, 0), Pt(100, 0)
	test.That(t, NearSegment(Pt(50, 4), a, b, 5))
	test.That(t, NearSegment(Pt(50, -5), a, b, 5))
	test.That(t, !NearSegment(Pt(50, 6), a, b, 5))
	test.That(t, !NearSegment(Pt(-3, 0), a, b, 5), "projection before start")
	test.That(t, !NearSegment(Pt(103, 0), a, b, 5), "projection after end")
	test.That(t, !NearSegment(Pt(0, 0), a, a, 5), "degenerate segment")
}

func TestNearPath(t *testing.T) {
	tri := []Point{Pt(0, 0), Pt(100, 0), Pt(100, 100)}
	test.That(t, !NearPath(Pt(50, 50), tri, false, 2))
	test.That(t, NearPath(Pt(50, 50), tri, true, 2))
	test.That(t, !NearPath(Pt(0, 0), tri[:1], true, 2))
}

func TestCubic(t *testing.T) {
	p0, p1, p2, p3 := Pt(0, 0), Pt(0, 100), Pt(100, 100), Pt(100, 0)
	test.That(t, near(Cubic(p0, p1, p2, p3, 0), p0))
	test.That(t, near(Cubic(p0, p1, p2, p3, 1), p3))
	test.That(t, near(Cubic(p0, p1, p2, p3, 0.5), Pt(50, 75)))

	pts := Flatten(p0, p1, p2, p3, 10)
	test.T(t, len(pts), 11)
	test.That(t, near(pts[10], p3))
}

func TestBounds(t *testing.T) {
	r := Bounds([]Point{Pt(3, -1), Pt(-2, 4), Pt(0, 0)})
	test.T(t, r, Rect{Min: Pt(-2, -1), Max: Pt(3, 4)})
	test.T(t, r.Center(), Pt(0.5, 1.5))
	test.Float(t, r.Dx(), 5)
	test.Float(t, r.Dy(), 5)
	test.T(t, Bounds(nil), Rect{})
}
