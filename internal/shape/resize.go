package shape

import (
	"math"

	"github.com/example/vectoredit/internal/geom"
)

// minPolygonRadius is the smallest radius a polygon can be dragged to.
const minPolygonRadius = 5

// Resize moves the active handle to the screen point to. With constrain set
// rectangles and ellipses keep their aspect ratio and lines snap to 45
// degree steps. Without an active handle Resize does nothing.
func (s *Shape) Resize(to geom.Point, constrain bool) {
	if s.active == nil {
		return
	}
	h := *s.active
	switch s.Kind {
	case Rectangle:
		s.resizeRect(h.Kind, to, constrain)
	case Ellipse:
		s.resizeEllipse(h.Kind, to, constrain)
	case RegularPolygon:
		if r := geom.Distance(s.Position, to); r > minPolygonRadius {
			s.Radius = r
		}
	case Line:
		s.bake()
		switch h.Kind {
		case Start:
			if constrain {
				to = geom.SnapDirection(s.End, to, 45)
			}
			s.Position = to
		case End:
			if constrain {
				to = geom.SnapDirection(s.Position, to, 45)
			}
			s.End = to
		}
	case Polyline:
		s.bake()
		if h.Kind == Vertex && h.Index >= 0 && h.Index < len(s.Points) {
			s.Points[h.Index] = to
			s.Position = s.Points[0]
		}
	case Bezier:
		s.bake()
		if h.Kind != Control {
			return
		}
		switch h.Index {
		case 0:
			s.Position = to
		case 1:
			s.Control1 = to
		case 2:
			s.Control2 = to
		case 3:
			s.End = to
		}
	}
}

// resizeRect drags one corner of a rectangle. The opposite corner keeps its
// screen position even when the rectangle is rotated.
func (s *Shape) resizeRect(k HandleKind, to geom.Point, constrain bool) {
	var opp int
	switch k {
	case TopLeft:
		opp = 2
	case TopRight:
		opp = 3
	case BottomLeft:
		opp = 1
	case BottomRight:
		opp = 0
	default:
		return
	}
	before := geom.Rotate(s.frame()[opp], s.Center(), s.Angle)
	l := geom.Rotate(to, s.Center(), -s.Angle)

	x0, y0 := s.Position.X, s.Position.Y
	x1, y1 := x0+s.Width, y0+s.Height
	var w, h float64
	switch k {
	case TopLeft:
		w, h = x1-l.X, y1-l.Y
	case TopRight:
		w, h = l.X-x0, y1-l.Y
	case BottomLeft:
		w, h = x1-l.X, l.Y-y0
	case BottomRight:
		w, h = l.X-x0, l.Y-y0
	}
	if constrain && s.Width > 0 && s.Height > 0 && w > 0 && h > 0 {
		ratio := s.Width / s.Height
		if w/h > ratio {
			w = h * ratio
		} else {
			h = w / ratio
		}
	}
	w = math.Max(w, 1)
	h = math.Max(h, 1)
	switch k {
	case TopLeft:
		s.Position = geom.Pt(x1-w, y1-h)
	case TopRight:
		s.Position = geom.Pt(x0, y1-h)
	case BottomLeft:
		s.Position = geom.Pt(x1-w, y0)
	}
	s.Width, s.Height = w, h

	if s.Angle != 0 {
		after := geom.Rotate(s.frame()[opp], s.Center(), s.Angle)
		s.Position = s.Position.Add(before.Sub(after))
	}
}

// resizeEllipse drags one axis handle of an ellipse about its fixed center.
func (s *Shape) resizeEllipse(k HandleKind, to geom.Point, constrain bool) {
	c := s.Position
	l := geom.Rotate(to, c, -s.Angle)
	ratio := 1.0
	if s.RadiusX > 0 && s.RadiusY > 0 {
		ratio = s.RadiusX / s.RadiusY
	}
	switch k {
	case Left, Right:
		rx := l.X - c.X
		if k == Left {
			rx = c.X - l.X
		}
		s.RadiusX = math.Max(rx, 1)
		if constrain {
			s.RadiusY = math.Max(s.RadiusX/ratio, 1)
		}
	case Top, Bottom:
		ry := l.Y - c.Y
		if k == Top {
			ry = c.Y - l.Y
		}
		s.RadiusY = math.Max(ry, 1)
		if constrain {
			s.RadiusX = math.Max(s.RadiusY*ratio, 1)
		}
	}
}
