package shape

import (
	"image"
	"image/color"
	"math"

	"github.com/example/vectoredit/internal/geom"
	"github.com/example/vectoredit/internal/raster"
)

// Decorations are the colors of the selection overlay.
type Decorations struct {
	Selection    color.RGBA
	Handle       color.RGBA
	ActiveHandle color.RGBA
	HandleBorder color.RGBA
	Rotation     color.RGBA
	ControlArm   color.RGBA
}

// DefaultDecorations returns blue handles with a red active handle, a
// green rotation handle and gray Bezier arms.
func DefaultDecorations() Decorations {
	return Decorations{
		Selection:    color.RGBA{0, 0, 255, 255},
		Handle:       color.RGBA{0, 0, 255, 255},
		ActiveHandle: color.RGBA{255, 0, 0, 255},
		HandleBorder: color.RGBA{0, 0, 0, 255},
		Rotation:     color.RGBA{0, 128, 0, 255},
		ControlArm:   color.RGBA{128, 128, 128, 255},
	}
}

const (
	handleSize         = 6
	rotationMarkRadius = 5
)

// thickness returns the stroke width in whole pixels, at least one.
func (s *Shape) thickness() int {
	t := int(math.Round(s.StrokeWidth))
	if t < 1 {
		return 1
	}
	return t
}

// Draw renders s into dst. Selected shapes also get the selection outline,
// their handles and the rotation handle painted with deco.
func (s *Shape) Draw(dst *image.RGBA, deco Decorations) {
	s.drawBody(dst)
	if s.Selected {
		s.drawSelection(dst, deco)
	}
}

func (s *Shape) drawBody(dst *image.RGBA) {
	t := s.thickness()
	switch s.Kind {
	case Rectangle:
		if s.Angle == 0 {
			x, y := int(s.Position.X), int(s.Position.Y)
			w, h := int(s.Width), int(s.Height)
			if s.Filled() {
				raster.DrawRectangle(dst, x, y, w, h, s.Fill, true)
			}
			for i := 0; i < t && 2*i < w && 2*i < h; i++ {
				raster.DrawRectangle(dst, x+i, y+i, w-2*i, h-2*i, s.Stroke, false)
			}
			return
		}
		s.drawPolygon(dst, s.Vertices(), t)
	case Ellipse:
		if s.Angle == 0 {
			cx, cy := int(s.Position.X), int(s.Position.Y)
			rx, ry := int(s.RadiusX), int(s.RadiusY)
			if s.Filled() {
				raster.DrawEllipse(dst, cx, cy, rx, ry, s.Fill, true)
			}
			for i := 0; i < t && rx-i >= 0 && ry-i >= 0; i++ {
				raster.DrawEllipse(dst, cx, cy, rx-i, ry-i, s.Stroke, false)
			}
			return
		}
		s.drawPolygon(dst, s.Vertices(), t)
	case RegularPolygon:
		s.drawPolygon(dst, s.Vertices(), t)
	case Line:
		pts := s.Vertices()
		raster.DrawThickLine(dst, int(pts[0].X), int(pts[0].Y), int(pts[1].X), int(pts[1].Y), s.Stroke, t)
	case Polyline:
		pts := s.Vertices()
		if s.Filled() {
			raster.DrawFilledPolygon(dst, pts, s.Fill)
		}
		if len(pts) == 1 {
			raster.DrawThickLine(dst, int(pts[0].X), int(pts[0].Y), int(pts[0].X), int(pts[0].Y), s.Stroke, t)
			return
		}
		raster.DrawThickPolyline(dst, pts, s.Stroke, t, s.Closed)
	case Bezier:
		pts := s.Vertices()
		if t == 1 {
			raster.DrawBezier(dst, pts[0], pts[1], pts[2], pts[3], s.Stroke)
			return
		}
		curve := geom.Flatten(pts[0], pts[1], pts[2], pts[3], raster.BezierSegments)
		raster.DrawThickPolyline(dst, curve, s.Stroke, t, false)
	}
}

func (s *Shape) drawPolygon(dst *image.RGBA, pts []geom.Point, t int) {
	if s.Filled() {
		raster.DrawFilledPolygon(dst, pts, s.Fill)
	}
	raster.DrawThickPolyline(dst, pts, s.Stroke, t, true)
}

func (s *Shape) drawSelection(dst *image.RGBA, deco Decorations) {
	var outline []geom.Point
	if s.Kind == RegularPolygon {
		outline = s.Vertices()
	} else {
		f := s.frame()
		outline = geom.RotateAll(f[:], s.Center(), s.Angle)
	}
	raster.DrawThickPolyline(dst, outline, deco.Selection, 1, true)

	if s.Kind == Bezier {
		pts := s.Vertices()
		line(dst, pts[0], pts[1], deco.ControlArm)
		line(dst, pts[3], pts[2], deco.ControlArm)
	}

	active, hasActive := s.ActiveHandle()
	for _, h := range s.Handles() {
		c := deco.Handle
		if hasActive && active.Same(h) {
			c = deco.ActiveHandle
		}
		x := int(h.Pos.X - handleSize/2)
		y := int(h.Pos.Y - handleSize/2)
		raster.DrawRectangle(dst, x, y, handleSize, handleSize, c, true)
		raster.DrawRectangle(dst, x, y, handleSize, handleSize, deco.HandleBorder, false)
	}

	anchor, rot := s.RotationHandle()
	line(dst, anchor, rot, deco.Rotation)
	raster.DrawCircle(dst, int(rot.X), int(rot.Y), rotationMarkRadius, deco.Rotation, true)
	raster.DrawCircle(dst, int(rot.X), int(rot.Y), rotationMarkRadius, deco.HandleBorder, false)
}

func line(dst *image.RGBA, a, b geom.Point, c color.RGBA) {
	raster.DrawLine(dst, int(a.X), int(a.Y), int(b.X), int(b.Y), c)
}
