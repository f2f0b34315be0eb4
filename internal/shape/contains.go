package shape

import "github.com/example/vectoredit/internal/geom"

const (
	baseTolerance = 5
	// hitSegments is the flattening used when hit testing a curve.
	hitSegments = 40
)

// Tolerance is the distance within which a point counts as touching the
// stroke of s: 5px plus half of any stroke width beyond one pixel.
func (s *Shape) Tolerance() float64 {
	if s.StrokeWidth > 1 {
		return baseTolerance + (s.StrokeWidth-1)/2
	}
	return baseTolerance
}

// Contains reports whether p hits s. A selected shape is also hit through
// any of its handles or its rotation handle.
func (s *Shape) Contains(p geom.Point) bool {
	if s.Selected {
		if _, ok := s.HitHandle(p); ok {
			return true
		}
		if s.HitRotationHandle(p) {
			return true
		}
	}
	tol := s.Tolerance()
	switch s.Kind {
	case Rectangle:
		if s.Angle == 0 {
			return p.X >= s.Position.X && p.X <= s.Position.X+s.Width &&
				p.Y >= s.Position.Y && p.Y <= s.Position.Y+s.Height
		}
		return geom.InPolygon(p, s.Vertices())
	case Ellipse:
		if s.RadiusX <= 0 || s.RadiusY <= 0 {
			return false
		}
		l := geom.Rotate(p, s.Position, -s.Angle)
		dx := (l.X - s.Position.X) / s.RadiusX
		dy := (l.Y - s.Position.Y) / s.RadiusY
		return dx*dx+dy*dy <= 1
	case Line:
		pts := s.Vertices()
		return geom.NearSegment(p, pts[0], pts[1], tol)
	case Polyline:
		pts := s.Vertices()
		if s.Filled() && geom.InPolygon(p, pts) {
			return true
		}
		return geom.NearPath(p, pts, s.Closed, tol)
	case RegularPolygon:
		return geom.InPolygon(p, s.Vertices())
	case Bezier:
		pts := s.Vertices()
		for _, cp := range pts {
			if geom.Distance(p, cp) <= HandleRadius {
				return true
			}
		}
		curve := geom.Flatten(pts[0], pts[1], pts[2], pts[3], hitSegments)
		return geom.NearPath(p, curve, false, tol)
	}
	return false
}
