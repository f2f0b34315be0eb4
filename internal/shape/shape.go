// Package shape implements the drawable primitives of the editor:
// rectangles, ellipses, lines, polylines, regular polygons and cubic Bezier
// curves.
//
// A Shape stores its geometry unrotated. Angle is the accumulated rotation
// about Center and every on-screen coordinate (vertices, handles, hit tests,
// rendering) is derived from the canonical geometry on demand.
package shape

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/example/vectoredit/internal/geom"
)

// Kind tags the geometry a Shape carries.
type Kind int

const (
	Rectangle Kind = iota
	Ellipse
	Line
	Polyline
	RegularPolygon
	Bezier
)

var kindNames = [...]string{
	Rectangle:      "rectangle",
	Ellipse:        "ellipse",
	Line:           "line",
	Polyline:       "polyline",
	RegularPolygon: "polygon",
	Bezier:         "bezier",
}

// ErrUnknownKind is returned when a kind name cannot be resolved.
var ErrUnknownKind = errors.New("unknown shape kind")

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	return []Kind{Rectangle, Ellipse, Line, Polyline, RegularPolygon, Bezier}
}

// ParseKind resolves a kind name. "rect", "circle" and "curve" are accepted
// as aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rectangle", "rect":
		return Rectangle, nil
	case "ellipse", "circle":
		return Ellipse, nil
	case "line":
		return Line, nil
	case "polyline":
		return Polyline, nil
	case "polygon", "regularpolygon":
		return RegularPolygon, nil
	case "bezier", "curve":
		return Bezier, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Polygon side limits.
const (
	MinSides     = 3
	MaxSides     = 6
	DefaultSides = 5
)

// Style is the paint applied to a shape.
type Style struct {
	Fill        color.RGBA
	Stroke      color.RGBA
	StrokeWidth float64
}

// DefaultStyle is white fill, black one pixel stroke.
func DefaultStyle() Style {
	return Style{
		Fill:        color.RGBA{255, 255, 255, 255},
		Stroke:      color.RGBA{0, 0, 0, 255},
		StrokeWidth: 1,
	}
}

// Shape is one drawable primitive. Which geometry fields are meaningful
// depends on Kind:
//
//	Rectangle       Position (top-left), Width, Height
//	Ellipse         Position (center), RadiusX, RadiusY
//	Line            Position (start), End
//	Polyline        Points, Closed; Position mirrors Points[0]
//	RegularPolygon  Position (center), Sides, Radius
//	Bezier          Position (start), Control1, Control2, End
type Shape struct {
	ID          uuid.UUID
	Kind        Kind
	Position    geom.Point
	Fill        color.RGBA
	Stroke      color.RGBA
	StrokeWidth float64
	Angle       float64
	Selected    bool

	Width, Height    float64
	RadiusX, RadiusY float64
	End              geom.Point
	Control1         geom.Point
	Control2         geom.Point
	Points           []geom.Point
	Closed           bool
	Sides            int
	Radius           float64

	active *Handle
}

func newShape(k Kind, pos geom.Point, st Style) *Shape {
	if st.StrokeWidth <= 0 {
		st.StrokeWidth = 1
	}
	return &Shape{
		ID:          uuid.New(),
		Kind:        k,
		Position:    pos,
		Fill:        st.Fill,
		Stroke:      st.Stroke,
		StrokeWidth: st.StrokeWidth,
	}
}

// NewRectangle returns a w x h rectangle with its top-left corner at pos.
func NewRectangle(pos geom.Point, w, h float64, st Style) *Shape {
	s := newShape(Rectangle, pos, st)
	s.Width, s.Height = w, h
	return s
}

// NewEllipse returns an ellipse centered at center.
func NewEllipse(center geom.Point, rx, ry float64, st Style) *Shape {
	s := newShape(Ellipse, center, st)
	s.RadiusX, s.RadiusY = rx, ry
	return s
}

// NewLine returns a line segment from start to end.
func NewLine(start, end geom.Point, st Style) *Shape {
	s := newShape(Line, start, st)
	s.End = end
	return s
}

// NewPolyline returns an open polyline through pts.
func NewPolyline(pts []geom.Point, st Style) *Shape {
	s := newShape(Polyline, geom.Point{}, st)
	s.Points = append([]geom.Point(nil), pts...)
	if len(s.Points) > 0 {
		s.Position = s.Points[0]
	}
	return s
}

// NewRegularPolygon returns a polygon with the given number of sides
// inscribed in a circle of radius r around center. Out of range side counts
// fall back to DefaultSides.
func NewRegularPolygon(center geom.Point, sides int, r float64, st Style) *Shape {
	s := newShape(RegularPolygon, center, st)
	s.Sides = DefaultSides
	s.SetSides(sides)
	s.Radius = r
	return s
}

// NewBezier returns a cubic curve from start to end with two control points.
func NewBezier(start, c1, c2, end geom.Point, st Style) *Shape {
	s := newShape(Bezier, start, st)
	s.Control1, s.Control2, s.End = c1, c2, end
	return s
}

// Style returns the paint of s.
func (s *Shape) Style() Style {
	return Style{Fill: s.Fill, Stroke: s.Stroke, StrokeWidth: s.StrokeWidth}
}

// SetStyle replaces the paint of s.
func (s *Shape) SetStyle(st Style) {
	s.Fill = st.Fill
	s.Stroke = st.Stroke
	if st.StrokeWidth > 0 {
		s.StrokeWidth = st.StrokeWidth
	}
}

// Filled reports whether s paints a body. A fill with zero alpha is "no
// fill", and lines, open polylines and curves never have a body.
func (s *Shape) Filled() bool {
	if s.Fill.A == 0 {
		return false
	}
	switch s.Kind {
	case Line, Bezier:
		return false
	case Polyline:
		return s.Closed && len(s.Points) > 2
	}
	return true
}

// SetSides changes the side count of a regular polygon. Values outside
// [MinSides, MaxSides] are ignored.
func (s *Shape) SetSides(n int) {
	if s.Kind != RegularPolygon || n < MinSides || n > MaxSides {
		return
	}
	s.Sides = n
}

// SetClosed opens or closes a polyline.
func (s *Shape) SetClosed(closed bool) {
	if s.Kind == Polyline {
		s.Closed = closed
	}
}

// AddPoint appends a vertex to a polyline. The point is given in screen
// coordinates, so a rotated polyline is first re-based to angle zero.
func (s *Shape) AddPoint(p geom.Point) {
	if s.Kind != Polyline {
		return
	}
	s.bake()
	s.Points = append(s.Points, p)
	s.Position = s.Points[0]
}

// Center returns the rotation center of s.
func (s *Shape) Center() geom.Point {
	switch s.Kind {
	case Rectangle:
		return geom.Pt(s.Position.X+s.Width/2, s.Position.Y+s.Height/2)
	case Ellipse, RegularPolygon:
		return s.Position
	case Line:
		return s.Position.Lerp(s.End, 0.5)
	case Polyline, Bezier:
		return geom.Bounds(s.controlPoints()).Center()
	}
	return s.Position
}

// Rotate adds delta degrees to the rotation angle. The canonical geometry is
// not touched.
func (s *Shape) Rotate(delta float64) {
	s.Angle = geom.NormalizeAngle(s.Angle + delta)
}

// controlPoints returns the canonical defining points of the point based
// kinds: line endpoints, polyline vertices or the four Bezier points.
func (s *Shape) controlPoints() []geom.Point {
	switch s.Kind {
	case Line:
		return []geom.Point{s.Position, s.End}
	case Polyline:
		return s.Points
	case Bezier:
		return []geom.Point{s.Position, s.Control1, s.Control2, s.End}
	}
	return nil
}

func (s *Shape) setControlPoints(pts []geom.Point) {
	switch s.Kind {
	case Line:
		s.Position, s.End = pts[0], pts[1]
	case Polyline:
		s.Points = pts
		if len(pts) > 0 {
			s.Position = pts[0]
		}
	case Bezier:
		s.Position, s.Control1, s.Control2, s.End = pts[0], pts[1], pts[2], pts[3]
	}
}

// bake folds the rotation of a point based shape into its points.
func (s *Shape) bake() {
	if s.Angle == 0 {
		return
	}
	switch s.Kind {
	case Line, Polyline, Bezier:
	default:
		return
	}
	s.setControlPoints(geom.RotateAll(s.controlPoints(), s.Center(), s.Angle))
	s.Angle = 0
}

// frame returns the unrotated local box of s as top-left, top-right,
// bottom-right, bottom-left.
func (s *Shape) frame() [4]geom.Point {
	var r geom.Rect
	switch s.Kind {
	case Rectangle:
		r = geom.Rect{Min: s.Position, Max: geom.Pt(s.Position.X+s.Width, s.Position.Y+s.Height)}
	case Ellipse:
		r = geom.Rect{
			Min: geom.Pt(s.Position.X-s.RadiusX, s.Position.Y-s.RadiusY),
			Max: geom.Pt(s.Position.X+s.RadiusX, s.Position.Y+s.RadiusY),
		}
	case RegularPolygon:
		r = geom.Rect{
			Min: geom.Pt(s.Position.X-s.Radius, s.Position.Y-s.Radius),
			Max: geom.Pt(s.Position.X+s.Radius, s.Position.Y+s.Radius),
		}
	default:
		r = geom.Bounds(s.controlPoints())
	}
	return [4]geom.Point{r.Min, geom.Pt(r.Max.X, r.Min.Y), r.Max, geom.Pt(r.Min.X, r.Max.Y)}
}

// ellipseSegments is the polygon resolution of a rotated ellipse.
const ellipseSegments = 36

// Vertices returns the on-screen outline points of s: the rectangle corners
// (clockwise from top-left), a 36 point approximation of an ellipse, the
// polygon vertices, or the rotated defining points of a line, polyline or
// curve.
func (s *Shape) Vertices() []geom.Point {
	c := s.Center()
	switch s.Kind {
	case Rectangle:
		f := s.frame()
		return geom.RotateAll(f[:], c, s.Angle)
	case Ellipse:
		pts := make([]geom.Point, ellipseSegments)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / ellipseSegments
			sin, cos := math.Sincos(a)
			pts[i] = geom.Pt(c.X+s.RadiusX*cos, c.Y+s.RadiusY*sin)
		}
		return geom.RotateAll(pts, c, s.Angle)
	case RegularPolygon:
		return geom.RotateAll(s.polygonVertices(), c, s.Angle)
	}
	return geom.RotateAll(s.controlPoints(), c, s.Angle)
}

// polygonVertices returns the unrotated vertices of a regular polygon,
// starting straight up from the center.
func (s *Shape) polygonVertices() []geom.Point {
	n := s.Sides
	if n < MinSides || n > MaxSides {
		n = DefaultSides
	}
	pts := make([]geom.Point, n)
	step := 2 * math.Pi / float64(n)
	for i := range pts {
		a := -math.Pi/2 + float64(i)*step
		sin, cos := math.Sincos(a)
		pts[i] = geom.Pt(s.Position.X+s.Radius*cos, s.Position.Y+s.Radius*sin)
	}
	return pts
}

// Bounds returns the axis aligned box of the rotated geometry. Curves use
// their control hull.
func (s *Shape) Bounds() geom.Rect {
	if s.Kind == Ellipse {
		sin, cos := math.Sincos(s.Angle * math.Pi / 180)
		hx := math.Sqrt(s.RadiusX*s.RadiusX*cos*cos + s.RadiusY*s.RadiusY*sin*sin)
		hy := math.Sqrt(s.RadiusX*s.RadiusX*sin*sin + s.RadiusY*s.RadiusY*cos*cos)
		return geom.Rect{
			Min: geom.Pt(s.Position.X-hx, s.Position.Y-hy),
			Max: geom.Pt(s.Position.X+hx, s.Position.Y+hy),
		}
	}
	return geom.Bounds(s.Vertices())
}

// Clone returns a deep copy with a fresh ID. The copy is not selected and
// has no active handle.
func (s *Shape) Clone() *Shape {
	c := *s
	c.ID = uuid.New()
	c.Selected = false
	c.active = nil
	c.Points = append([]geom.Point(nil), s.Points...)
	return &c
}

// Move translates s by delta, or drags the active handle by delta when one
// is selected.
func (s *Shape) Move(delta geom.Point) {
	if s.active != nil {
		to := s.active.Pos.Add(delta)
		s.Resize(to, false)
		s.active.Pos = to
		return
	}
	s.Position = s.Position.Add(delta)
	switch s.Kind {
	case Line:
		s.End = s.End.Add(delta)
	case Bezier:
		s.Control1 = s.Control1.Add(delta)
		s.Control2 = s.Control2.Add(delta)
		s.End = s.End.Add(delta)
	case Polyline:
		for i := range s.Points {
			s.Points[i] = s.Points[i].Add(delta)
		}
	}
}

// String describes s for listings.
func (s *Shape) String() string {
	b := s.Bounds()
	return fmt.Sprintf("%s at (%.0f,%.0f)-(%.0f,%.0f)", s.Kind, b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
}
