package shape

import "github.com/example/vectoredit/internal/geom"

// HandleKind names a grab point on a selected shape.
type HandleKind int

const (
	TopLeft HandleKind = iota
	TopRight
	BottomLeft
	BottomRight
	Left
	Right
	Top
	Bottom
	Start
	End
	Vertex
	Control
)

var handleNames = [...]string{
	"top-left", "top-right", "bottom-left", "bottom-right",
	"left", "right", "top", "bottom",
	"start", "end", "vertex", "control",
}

func (k HandleKind) String() string {
	if k < 0 || int(k) >= len(handleNames) {
		return "handle"
	}
	return handleNames[k]
}

// Handle is a grab point in screen coordinates. Index numbers the vertex of
// a polyline or polygon and the control point (0..3) of a Bezier curve.
type Handle struct {
	Kind  HandleKind
	Index int
	Pos   geom.Point
}

// Hit radii in pixels.
const (
	HandleRadius         = 10
	RotationHandleRadius = 8
	rotationOffset       = 15
)

// Same reports whether h and o refer to the same grab point.
func (h Handle) Same(o Handle) bool { return h.Kind == o.Kind && h.Index == o.Index }

// SubPoint reports whether dragging h edits a single defining point
// (polyline vertex or Bezier control point) rather than resizing. Polygon
// vertices share the Vertex kind but resize the whole polygon.
func (h Handle) SubPoint() bool { return h.Kind == Vertex || h.Kind == Control }

// Handles returns the grab points of s in screen coordinates.
func (s *Shape) Handles() []Handle {
	c := s.Center()
	switch s.Kind {
	case Rectangle:
		f := s.frame()
		return []Handle{
			{Kind: TopLeft, Pos: geom.Rotate(f[0], c, s.Angle)},
			{Kind: TopRight, Pos: geom.Rotate(f[1], c, s.Angle)},
			{Kind: BottomLeft, Pos: geom.Rotate(f[3], c, s.Angle)},
			{Kind: BottomRight, Pos: geom.Rotate(f[2], c, s.Angle)},
		}
	case Ellipse:
		return []Handle{
			{Kind: Left, Pos: geom.Rotate(geom.Pt(c.X-s.RadiusX, c.Y), c, s.Angle)},
			{Kind: Right, Pos: geom.Rotate(geom.Pt(c.X+s.RadiusX, c.Y), c, s.Angle)},
			{Kind: Top, Pos: geom.Rotate(geom.Pt(c.X, c.Y-s.RadiusY), c, s.Angle)},
			{Kind: Bottom, Pos: geom.Rotate(geom.Pt(c.X, c.Y+s.RadiusY), c, s.Angle)},
		}
	case Line:
		pts := s.Vertices()
		return []Handle{{Kind: Start, Pos: pts[0]}, {Kind: End, Pos: pts[1]}}
	}
	pts := s.Vertices()
	kind := Vertex
	if s.Kind == Bezier {
		kind = Control
	}
	hs := make([]Handle, len(pts))
	for i, p := range pts {
		hs[i] = Handle{Kind: kind, Index: i, Pos: p}
	}
	return hs
}

// RotationHandle returns the rotation grab point of s together with the
// anchor on the top edge it hangs from. Both follow the rotation.
func (s *Shape) RotationHandle() (anchor, handle geom.Point) {
	c := s.Center()
	var top geom.Point
	switch s.Kind {
	case Ellipse:
		top = geom.Pt(c.X, c.Y-s.RadiusY)
	case RegularPolygon:
		top = geom.Pt(c.X, c.Y-s.Radius)
	default:
		f := s.frame()
		top = f[0].Lerp(f[1], 0.5)
	}
	anchor = geom.Rotate(top, c, s.Angle)
	handle = geom.Rotate(geom.Pt(top.X, top.Y-rotationOffset), c, s.Angle)
	return anchor, handle
}

// HitHandle returns the first handle within HandleRadius of p. Only selected
// shapes expose handles.
func (s *Shape) HitHandle(p geom.Point) (Handle, bool) {
	if !s.Selected {
		return Handle{}, false
	}
	for _, h := range s.Handles() {
		if geom.Distance(p, h.Pos) <= HandleRadius {
			return h, true
		}
	}
	return Handle{}, false
}

// HitRotationHandle reports whether p grabs the rotation handle of a
// selected shape.
func (s *Shape) HitRotationHandle(p geom.Point) bool {
	if !s.Selected {
		return false
	}
	_, h := s.RotationHandle()
	return geom.Distance(p, h) <= RotationHandleRadius
}

// SelectHandle makes h the active handle. Selecting a handle of a rotated
// line, polyline or curve folds the rotation into its points so the handle
// can be dragged in screen space.
func (s *Shape) SelectHandle(h Handle) {
	s.bake()
	for _, cur := range s.Handles() {
		if cur.Same(h) {
			h.Pos = cur.Pos
			break
		}
	}
	s.active = &h
}

// ClearHandle drops the active handle.
func (s *Shape) ClearHandle() { s.active = nil }

// ActiveHandle returns the active handle, if any.
func (s *Shape) ActiveHandle() (Handle, bool) {
	if s.active == nil {
		return Handle{}, false
	}
	return *s.active, true
}
