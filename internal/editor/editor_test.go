package editor

import (
	"context"
	"image"
	"image/color"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vectoredit/internal/geom"
	"github.com/example/vectoredit/internal/shape"
)

func click(e *Editor, x, y float64) {
	p := geom.Pt(x, y)
	e.StartDrawing(p, false)
	e.EndDrawing(p, false)
}

func drag(e *Editor, from, to geom.Point, shift bool) {
	e.StartDrawing(from, shift)
	e.ContinueDrawing(from.Lerp(to, 0.5), shift)
	e.ContinueDrawing(to, shift)
	e.EndDrawing(to, shift)
}

func TestPolylineConstruction(t *testing.T) {
	e := New()
	e.SetMode(ModePolyline)
	click(e, 0, 0)
	click(e, 10, 0)
	click(e, 10, 10)
	require.IsType(t, ConstructingPolyline{}, e.Interaction())

	assert.True(t, e.CompletePolyline())
	require.Equal(t, 1, e.Len())
	s := e.Shapes()[0]
	assert.Equal(t, shape.Polyline, s.Kind)
	assert.Equal(t, []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10)}, s.Points)
	assert.False(t, e.Busy())

	click(e, 50, 50)
	assert.Equal(t, 2, e.Len(), "next click starts a new polyline")
}

func TestCompletePolylineTooShort(t *testing.T) {
	e := New()
	e.SetMode(ModePolyline)
	click(e, 5, 5)
	assert.Equal(t, 1, e.Len())
	assert.False(t, e.CompletePolyline())
	assert.Equal(t, 0, e.Len())
	assert.False(t, e.CompletePolyline(), "nothing to complete")
}

func TestSetModeCompletesPolyline(t *testing.T) {
	e := New()
	e.SetMode(ModePolyline)
	click(e, 0, 0)
	click(e, 20, 0)
	e.SetMode(ModeSelect)
	assert.Equal(t, 1, e.Len())
	assert.False(t, e.Busy())

	e.SetMode(ModePolyline)
	click(e, 40, 40)
	e.SetMode(ModeRectangle)
	assert.Equal(t, 1, e.Len(), "single point polyline is discarded")
}

func TestCancelDrawing(t *testing.T) {
	e := New()
	e.SetMode(ModeRectangle)
	e.StartDrawing(geom.Pt(0, 0), false)
	e.ContinueDrawing(geom.Pt(10, 10), false)
	require.Equal(t, 1, e.Len())

	e.CancelDrawing()
	assert.Equal(t, 0, e.Len())
	assert.False(t, e.Busy())
	e.CancelDrawing()
	assert.Equal(t, 0, e.Len())

	e.SetMode(ModePolyline)
	click(e, 0, 0)
	click(e, 5, 5)
	e.CancelDrawing()
	assert.Equal(t, 0, e.Len())
}

func TestCreateShapes(t *testing.T) {
	e := New(WithSides(4))

	e.SetMode(ModeRectangle)
	drag(e, geom.Pt(10, 10), geom.Pt(0, 30), false)
	r := e.Shapes()[0]
	assert.Equal(t, geom.Pt(0, 10), r.Position)
	assert.Equal(t, 10.0, r.Width)
	assert.Equal(t, 20.0, r.Height)
	assert.False(t, r.Selected, "new shapes are not selected")
	assert.Nil(t, e.Selected())

	drag(e, geom.Pt(10, 10), geom.Pt(0, 30), true)
	sq := e.Shapes()[1]
	assert.Equal(t, geom.Pt(-10, 10), sq.Position)
	assert.Equal(t, 20.0, sq.Width)
	assert.Equal(t, 20.0, sq.Height)

	e.SetMode(ModeEllipse)
	drag(e, geom.Pt(0, 0), geom.Pt(20, 10), false)
	el := e.Shapes()[2]
	assert.Equal(t, geom.Pt(10, 5), el.Position)
	assert.Equal(t, 10.0, el.RadiusX)
	assert.Equal(t, 5.0, el.RadiusY)

	e.SetMode(ModeBezier)
	drag(e, geom.Pt(0, 0), geom.Pt(30, 60), false)
	b := e.Shapes()[3]
	assert.Equal(t, geom.Pt(30, 60), b.End)
	assert.InDelta(t, 10, b.Control1.X, 1e-9)
	assert.InDelta(t, 20, b.Control1.Y, 1e-9)
	assert.InDelta(t, 20, b.Control2.X, 1e-9)
	assert.InDelta(t, 40, b.Control2.Y, 1e-9)

	e.SetMode(ModePolygon)
	drag(e, geom.Pt(100, 100), geom.Pt(100, 50), false)
	p := e.Shapes()[4]
	assert.Equal(t, shape.RegularPolygon, p.Kind)
	assert.Equal(t, 50.0, p.Radius)
	assert.Equal(t, 4, p.Sides)

	e.SetMode(ModeLine)
	drag(e, geom.Pt(0, 0), geom.Pt(50, 48), true)
	l := e.Shapes()[5]
	assert.InDelta(t, l.End.X, l.End.Y, 1e-9, "snapped to the diagonal")
	assert.False(t, e.Busy())
}

func TestDegenerateShapeStays(t *testing.T) {
	e := New()
	e.SetMode(ModeRectangle)
	click(e, 5, 5)
	require.Equal(t, 1, e.Len())
	assert.Equal(t, 0.0, e.Shapes()[0].Width)
}

func TestTopmostSelection(t *testing.T) {
	var got []*shape.Shape
	bottom := shape.NewRectangle(geom.Pt(0, 0), 50, 50, shape.DefaultStyle())
	top := shape.NewRectangle(geom.Pt(25, 25), 50, 50, shape.DefaultStyle())
	e := New(WithShapes(bottom, top), WithSelectionListener(func(s *shape.Shape) { got = append(got, s) }))

	click(e, 45, 45)
	require.NotNil(t, e.Selected())
	assert.Equal(t, top.ID, e.Selected().ID)
	assert.True(t, top.Selected)
	assert.False(t, bottom.Selected)

	click(e, 45, 45)
	assert.Len(t, got, 1, "reselecting the same shape is not a change")

	click(e, 5, 5)
	assert.Equal(t, bottom.ID, e.Selected().ID)
	assert.False(t, top.Selected)

	click(e, 200, 200)
	assert.Nil(t, e.Selected())
	require.Len(t, got, 3)
	assert.Nil(t, got[2])
}

func TestDragMovesSelection(t *testing.T) {
	r := shape.NewRectangle(geom.Pt(0, 0), 50, 50, shape.DefaultStyle())
	e := New(WithShapes(r))
	drag(e, geom.Pt(10, 10), geom.Pt(30, 15), false)
	assert.Equal(t, geom.Pt(20, 5), r.Position)
	assert.True(t, r.Selected)
	assert.False(t, e.Busy())
}

func TestResizeGesture(t *testing.T) {
	r := shape.NewRectangle(geom.Pt(0, 0), 100, 50, shape.DefaultStyle())
	e := New(WithShapes(r))
	require.True(t, e.Select(r.ID))

	e.StartDrawing(geom.Pt(100, 50), false)
	in, ok := e.Interaction().(Resizing)
	require.True(t, ok)
	assert.Equal(t, shape.BottomRight, in.Handle.Kind)

	e.ContinueDrawing(geom.Pt(120, 70), false)
	e.EndDrawing(geom.Pt(120, 70), false)
	assert.Equal(t, 120.0, r.Width)
	assert.Equal(t, 70.0, r.Height)
	_, active := r.ActiveHandle()
	assert.False(t, active, "release clears the handle")

	e.StartDrawing(geom.Pt(0, 0), true)
	e.ContinueDrawing(geom.Pt(60, 0), true)
	e.EndDrawing(geom.Pt(60, 0), true)
	assert.InDelta(t, 60, r.Width, 1e-9)
	assert.InDelta(t, 35, r.Height, 1e-9)
}

func TestRotationGesture(t *testing.T) {
	r := shape.NewRectangle(geom.Pt(0, 0), 100, 50, shape.DefaultStyle())
	e := New(WithShapes(r))
	require.True(t, e.Select(r.ID))

	e.StartDrawing(geom.Pt(50, -15), false)
	in, ok := e.Interaction().(Rotating)
	require.True(t, ok)
	assert.Equal(t, geom.Pt(50, 25), in.Center)

	e.ContinueDrawing(geom.Pt(100, 25), false)
	assert.InDelta(t, 90, r.Angle, 1e-9)
	e.ContinueDrawing(geom.Pt(50, -100), false)
	assert.InDelta(t, 0, geom.WrapDelta(r.Angle), 1e-9)
	e.EndDrawing(geom.Pt(50, -100), false)
	assert.False(t, e.Busy())

	_, handle := r.RotationHandle()
	e.StartDrawing(handle, true)
	// heading 50 degrees snaps to 45
	e.ContinueDrawing(geom.Pt(50+100*0.766044443, 25-100*0.642787610), true)
	assert.InDelta(t, 45, r.Angle, 1e-6)
	// a further 7 degrees stays below half a step
	e.ContinueDrawing(geom.Pt(50+100*0.788010754, 25-100*0.615661475), true)
	assert.InDelta(t, 45, r.Angle, 1e-6)
	e.EndDrawing(geom.Pt(0, 0), true)
}

func TestEditingSubpoint(t *testing.T) {
	b := shape.NewBezier(geom.Pt(0, 0), geom.Pt(50, 100), geom.Pt(150, 100), geom.Pt(200, 0), shape.DefaultStyle())
	e := New(WithShapes(b))
	require.True(t, e.Select(b.ID))

	e.StartDrawing(geom.Pt(52, 98), false)
	in, ok := e.Interaction().(EditingSubpoint)
	require.True(t, ok)
	assert.Equal(t, 1, in.Index)

	e.ContinueDrawing(geom.Pt(60, 120), false)
	e.EndDrawing(geom.Pt(60, 120), false)
	assert.Equal(t, geom.Pt(60, 120), b.Control1)
	assert.Equal(t, geom.Pt(0, 0), b.Position)
}

func TestPolygonVertexResizes(t *testing.T) {
	p := shape.NewRegularPolygon(geom.Pt(50, 50), 5, 20, shape.DefaultStyle())
	e := New(WithShapes(p))
	require.True(t, e.Select(p.ID))

	e.StartDrawing(p.Handles()[0].Pos, false)
	in, ok := e.Interaction().(Resizing)
	require.True(t, ok, "got %v", e.Interaction())
	assert.Equal(t, shape.Vertex, in.Handle.Kind)

	e.ContinueDrawing(geom.Pt(50, 10), false)
	e.EndDrawing(geom.Pt(50, 10), false)
	assert.InDelta(t, 40.0, p.Radius, 1e-9)
	assert.Equal(t, geom.Pt(50, 50), p.Position)
}

func TestDeleteAndDuplicate(t *testing.T) {
	r := shape.NewRectangle(geom.Pt(0, 0), 10, 10, shape.DefaultStyle())
	e := New(WithShapes(r))
	assert.False(t, e.DeleteSelected())
	assert.Nil(t, e.Duplicate())

	require.True(t, e.Select(r.ID))
	d := e.Duplicate()
	require.NotNil(t, d)
	assert.NotEqual(t, r.ID, d.ID)
	assert.Equal(t, geom.Pt(10, 10), d.Position)
	assert.Equal(t, d.ID, e.Selected().ID)
	assert.False(t, r.Selected)
	assert.Equal(t, 2, e.Len())

	assert.True(t, e.DeleteSelected())
	assert.Equal(t, 1, e.Len())
	assert.Nil(t, e.Selected())
}

func TestStyleSetters(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	p := shape.NewRegularPolygon(geom.Pt(50, 50), 5, 20, shape.DefaultStyle())
	e := New(WithShapes(p))

	e.SetFill(red)
	assert.NotEqual(t, red, p.Fill, "no selection, no change")

	require.True(t, e.Select(p.ID))
	e.SetFill(red)
	e.SetStroke(red)
	e.SetStrokeWidth(4)
	e.SetStrokeWidth(-1)
	e.SetSides(3)
	e.SetSides(9)
	assert.Equal(t, red, p.Fill)
	assert.Equal(t, red, p.Stroke)
	assert.Equal(t, 4.0, p.StrokeWidth)
	assert.Equal(t, 3, p.Sides)
	assert.Equal(t, 3, e.Sides())
	assert.Equal(t, shape.DefaultStyle(), e.Defaults())

	e.SetDefaults(shape.Style{Fill: red, Stroke: red})
	assert.Equal(t, 1.0, e.Defaults().StrokeWidth)
}

func TestReplaceAndExamples(t *testing.T) {
	e := New()
	e.LoadExamples()
	assert.Equal(t, 5, e.Len())
	e.SetMode(ModePolyline)
	click(e, 1, 1)
	e.Replace(nil)
	assert.Equal(t, 0, e.Len())
	assert.False(t, e.Busy())
}

func TestRender(t *testing.T) {
	bg := color.RGBA{10, 20, 30, 255}
	red := color.RGBA{255, 0, 0, 255}
	r := shape.NewRectangle(geom.Pt(2, 2), 5, 5, shape.Style{Fill: red, Stroke: red, StrokeWidth: 1})
	e := New(WithShapes(r))
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	e.Render(img, bg)
	assert.Equal(t, bg, img.RGBAAt(0, 0))
	assert.Equal(t, red, img.RGBAAt(4, 4))
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("lasso")
	assert.Error(t, err)
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	require.NotNil(t, l)
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))

	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	custom := slog.New(slog.NewTextHandler(&discard{}, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetLogger(custom)
	assert.Same(t, custom, Logger())
	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

type discard struct{}

func (*discard) Write(p []byte) (int, error) { return len(p), nil }
