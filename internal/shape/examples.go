package shape

import (
	"golang.org/x/image/colornames"

	"github.com/example/vectoredit/internal/geom"
)

// Examples returns the demonstration drawing shown on first start: one
// rectangle, ellipse, line, curve and polyline.
func Examples() []*Shape {
	white := colornames.White
	return []*Shape{
		NewRectangle(geom.Pt(50, 50), 100, 70,
			Style{Fill: colornames.Lightblue, Stroke: colornames.Blue, StrokeWidth: 2}),
		NewEllipse(geom.Pt(250, 100), 80, 40,
			Style{Fill: colornames.Lightgreen, Stroke: colornames.Green, StrokeWidth: 2}),
		NewLine(geom.Pt(50, 200), geom.Pt(200, 250),
			Style{Fill: white, Stroke: colornames.Red, StrokeWidth: 3}),
		NewBezier(geom.Pt(250, 180), geom.Pt(300, 100), geom.Pt(380, 250), geom.Pt(450, 200),
			Style{Fill: white, Stroke: colornames.Purple, StrokeWidth: 3}),
		NewPolyline([]geom.Point{
			geom.Pt(100, 300), geom.Pt(150, 350), geom.Pt(200, 320), geom.Pt(250, 370), geom.Pt(300, 330),
		}, Style{Fill: white, Stroke: colornames.Orange, StrokeWidth: 2}),
	}
}
