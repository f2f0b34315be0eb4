// Package geom holds the floating point geometry shared by the shape model
// and the editor: points, rotation about a center, point-in-polygon and
// segment distance tests and cubic Bezier evaluation.
package geom

import (
	"image"
	"math"
)

// Point is a position in surface coordinates. Y grows downwards.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// FromImage converts an integer image point.
func FromImage(p image.Point) Point { return Point{X: float64(p.X), Y: float64(p.Y)} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul scales p by f.
func (p Point) Mul(f float64) Point { return Point{p.X * f, p.Y * f} }

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Len returns the length of p as a vector.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Lerp interpolates between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Image truncates p to integer pixel coordinates.
func (p Point) Image() image.Point { return image.Point{X: int(p.X), Y: int(p.Y)} }

// Distance returns the euclidean distance between a and b.
func Distance(a, b Point) float64 { return math.Hypot(b.X-a.X, b.Y-a.Y) }

// Rotate rotates p about center by deg degrees, clockwise on screen.
func Rotate(p, center Point, deg float64) Point {
	if deg == 0 {
		return p
	}
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx := p.X - center.X
	dy := p.Y - center.Y
	return Point{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

// RotateAll rotates every point of pts about center and returns a new slice.
func RotateAll(pts []Point, center Point, deg float64) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Rotate(p, center, deg)
	}
	return out
}

// NormalizeAngle maps deg into [0,360).
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// WrapDelta maps an angle difference into (-180,180].
func WrapDelta(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}

// Snap rounds deg to the nearest multiple of step.
func Snap(deg, step float64) float64 {
	if step <= 0 {
		return deg
	}
	return math.Round(deg/step) * step
}

// SnapDirection moves p so that the direction from anchor to p is a
// multiple of step degrees. The distance from anchor is kept.
func SnapDirection(anchor, p Point, step float64) Point {
	v := p.Sub(anchor)
	length := v.Len()
	if length == 0 {
		return p
	}
	rad := Snap(math.Atan2(v.Y, v.X)*180/math.Pi, step) * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Point{anchor.X + length*cos, anchor.Y + length*sin}
}

// Heading returns the direction from center to p in degrees, where 0 is
// straight up and angles grow clockwise. The result is in [0,360).
func Heading(center, p Point) float64 {
	dx := p.X - center.X
	dy := p.Y - center.Y
	return NormalizeAngle(math.Atan2(dx, -dy) * 180 / math.Pi)
}

// InPolygon reports whether p lies inside poly using the even-odd rule.
func InPolygon(p Point, poly []Point) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// SegmentDistance returns the perpendicular distance from p to the infinite
// line through a and b together with the projection parameter of p onto
// a->b. A degenerate segment reports ok == false.
func SegmentDistance(p, a, b Point) (dist, t float64, ok bool) {
	ab := b.Sub(a)
	length := ab.Len()
	if length == 0 {
		return 0, 0, false
	}
	dist = math.Abs(ab.Y*p.X-ab.X*p.Y+b.X*a.Y-b.Y*a.X) / length
	t = p.Sub(a).Dot(ab) / (length * length)
	return dist, t, true
}

// NearSegment reports whether p is within tol of the segment a-b: the
// perpendicular distance is at most tol and the projection falls on the
// segment.
func NearSegment(p, a, b Point, tol float64) bool {
	dist, t, ok := SegmentDistance(p, a, b)
	if !ok {
		return false
	}
	return dist <= tol && t >= 0 && t <= 1
}

// NearPath reports whether p is within tol of any edge of pts. When closed
// is set the edge from the last point back to the first is included.
func NearPath(p Point, pts []Point, closed bool, tol float64) bool {
	if len(pts) < 2 {
		return false
	}
	for i := 0; i < len(pts)-1; i++ {
		if NearSegment(p, pts[i], pts[i+1], tol) {
			return true
		}
	}
	if closed && len(pts) > 2 {
		return NearSegment(p, pts[len(pts)-1], pts[0], tol)
	}
	return false
}

// Cubic evaluates the cubic Bezier p0,p1,p2,p3 at t using the Bernstein basis.
func Cubic(p0, p1, p2, p3 Point, t float64) Point {
	u := 1 - t
	uu := u * u
	tt := t * t
	a := uu * u
	b := 3 * uu * t
	c := 3 * u * tt
	d := tt * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// Flatten approximates the cubic Bezier with n straight segments and returns
// the n+1 sample points.
func Flatten(p0, p1, p2, p3 Point, n int) []Point {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, n+1)
	pts[0] = p0
	for i := 1; i <= n; i++ {
		pts[i] = Cubic(p0, p1, p2, p3, float64(i)/float64(n))
	}
	return pts
}

// Rect is an axis aligned bounding box.
type Rect struct {
	Min, Max Point
}

// Bounds returns the bounding box of pts. An empty slice yields the zero Rect.
func Bounds(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

// Center returns the middle of r.
func (r Rect) Center() Point { return r.Min.Lerp(r.Max, 0.5) }

// Dx returns the width of r.
func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }

// Dy returns the height of r.
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// Union returns the smallest Rect containing r and s.
func (r Rect) Union(s Rect) Rect {
	return Bounds([]Point{r.Min, r.Max, s.Min, s.Max})
}

// Image returns the integer rectangle covering r.
func (r Rect) Image() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Min.X)), int(math.Floor(r.Min.Y)),
		int(math.Ceil(r.Max.X))+1, int(math.Ceil(r.Max.Y))+1,
	)
}
