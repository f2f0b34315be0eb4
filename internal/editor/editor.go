// Package editor turns pointer gestures into edits of an ordered list of
// shapes. It owns the tool mode, the selection and the gesture in progress.
//
// An Editor is not safe for concurrent use; the front end drives it from
// its event goroutine.
package editor

import (
	"image"
	"image/color"
	"math"

	"github.com/google/uuid"

	"github.com/example/vectoredit/internal/geom"
	"github.com/example/vectoredit/internal/raster"
	"github.com/example/vectoredit/internal/shape"
)

// Rotation snapping step in degrees when shift is held.
const rotationSnap = 15

// DuplicateOffset is how far Duplicate shifts the copy.
var DuplicateOffset = geom.Pt(10, 10)

// Editor is the shape editing state machine.
type Editor struct {
	shapes   []*shape.Shape
	selected uuid.UUID
	mode     Mode
	state    Interaction
	defaults shape.Style
	sides    int
	deco     shape.Decorations
	onSelect func(*shape.Shape)
}

// Option configures an Editor.
type Option func(*Editor)

// WithStyle sets the paint for new shapes.
func WithStyle(st shape.Style) Option { return func(e *Editor) { e.defaults = st } }

// WithSides sets the side count for new polygons.
func WithSides(n int) Option {
	return func(e *Editor) {
		if n >= shape.MinSides && n <= shape.MaxSides {
			e.sides = n
		}
	}
}

// WithDecorations sets the selection overlay colors.
func WithDecorations(d shape.Decorations) Option { return func(e *Editor) { e.deco = d } }

// WithSelectionListener registers fn to be called whenever a different
// shape (or none) becomes selected.
func WithSelectionListener(fn func(*shape.Shape)) Option {
	return func(e *Editor) { e.onSelect = fn }
}

// WithShapes seeds the drawing.
func WithShapes(shapes ...*shape.Shape) Option {
	return func(e *Editor) { e.shapes = append(e.shapes, shapes...) }
}

// New returns an editor in select mode.
func New(opts ...Option) *Editor {
	e := &Editor{
		state:    Idle{},
		defaults: shape.DefaultStyle(),
		sides:    shape.DefaultSides,
		deco:     shape.DefaultDecorations(),
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, s := range e.shapes {
		s.Selected = false
		s.ClearHandle()
	}
	return e
}

// Shapes returns the drawing in z-order, bottom first.
func (e *Editor) Shapes() []*shape.Shape {
	out := make([]*shape.Shape, len(e.shapes))
	copy(out, e.shapes)
	return out
}

// Len returns the number of shapes.
func (e *Editor) Len() int { return len(e.shapes) }

// Shape returns the shape with the given ID.
func (e *Editor) Shape(id uuid.UUID) *shape.Shape {
	s, _ := e.find(id)
	return s
}

// Selected returns the selected shape or nil.
func (e *Editor) Selected() *shape.Shape {
	if e.selected == uuid.Nil {
		return nil
	}
	return e.Shape(e.selected)
}

// Mode returns the active tool.
func (e *Editor) Mode() Mode { return e.mode }

// Interaction returns the gesture in progress.
func (e *Editor) Interaction() Interaction { return e.state }

// Busy reports whether a gesture is in progress.
func (e *Editor) Busy() bool {
	_, idle := e.state.(Idle)
	return !idle
}

// Defaults returns the paint used for new shapes.
func (e *Editor) Defaults() shape.Style { return e.defaults }

// SetDefaults changes the paint used for new shapes.
func (e *Editor) SetDefaults(st shape.Style) {
	if st.StrokeWidth <= 0 {
		st.StrokeWidth = e.defaults.StrokeWidth
	}
	e.defaults = st
}

// Sides returns the side count used for new polygons.
func (e *Editor) Sides() int { return e.sides }

// Decorations returns the selection overlay colors.
func (e *Editor) Decorations() shape.Decorations { return e.deco }

// SetDecorations changes the selection overlay colors.
func (e *Editor) SetDecorations(d shape.Decorations) { e.deco = d }

func (e *Editor) find(id uuid.UUID) (*shape.Shape, int) {
	if id == uuid.Nil {
		return nil, -1
	}
	for i, s := range e.shapes {
		if s.ID == id {
			return s, i
		}
	}
	return nil, -1
}

func (e *Editor) remove(id uuid.UUID) bool {
	_, i := e.find(id)
	if i < 0 {
		return false
	}
	e.shapes = append(e.shapes[:i], e.shapes[i+1:]...)
	if e.selected == id {
		e.setSelected(uuid.Nil)
	}
	return true
}

// setSelected marks id as the only selected shape, drops every active
// handle and notifies the listener when the selection changed.
func (e *Editor) setSelected(id uuid.UUID) {
	if _, i := e.find(id); i < 0 {
		id = uuid.Nil
	}
	for _, s := range e.shapes {
		s.Selected = s.ID == id
		s.ClearHandle()
	}
	if id == e.selected {
		return
	}
	e.selected = id
	sel := e.Selected()
	Logger().Debug("editor: selection changed", "id", id)
	if e.onSelect != nil {
		e.onSelect(sel)
	}
}

// Select selects the shape with the given ID.
func (e *Editor) Select(id uuid.UUID) bool {
	if s, _ := e.find(id); s == nil {
		return false
	}
	e.setSelected(id)
	return true
}

// ClearSelection deselects everything.
func (e *Editor) ClearSelection() { e.setSelected(uuid.Nil) }

// SetMode switches the tool. A polyline under construction is completed, a
// shape being drawn is kept as is and every other gesture is dropped.
func (e *Editor) SetMode(m Mode) {
	e.commitPending()
	if s := e.Selected(); s != nil {
		s.ClearHandle()
	}
	e.state = Idle{}
	if m != e.mode {
		Logger().Debug("editor: mode", "from", e.mode, "to", m)
	}
	e.mode = m
}

// commitPending finishes creation gestures so that a new one can start.
func (e *Editor) commitPending() {
	switch e.state.(type) {
	case ConstructingPolyline:
		e.CompletePolyline()
	case DrawingNew:
		e.state = Idle{}
	}
}

// StartDrawing handles a pointer press at p.
func (e *Editor) StartDrawing(p geom.Point, shift bool) {
	if e.mode == ModeSelect {
		e.startSelect(p)
		return
	}
	if e.mode == ModePolyline {
		if st, ok := e.state.(ConstructingPolyline); ok {
			if s, _ := e.find(st.ID); s != nil {
				s.AddPoint(p)
				return
			}
		}
		e.commitPending()
		s := shape.NewPolyline([]geom.Point{p}, e.defaults)
		e.shapes = append(e.shapes, s)
		e.state = ConstructingPolyline{ID: s.ID}
		Logger().Debug("editor: polyline started", "id", s.ID)
		return
	}
	e.commitPending()
	s := e.create(p)
	if s == nil {
		return
	}
	e.shapes = append(e.shapes, s)
	e.state = DrawingNew{ID: s.ID, Start: p}
	Logger().Debug("editor: drawing", "kind", s.Kind, "id", s.ID)
}

func (e *Editor) startSelect(p geom.Point) {
	if sel := e.Selected(); sel != nil {
		if sel.HitRotationHandle(p) {
			c := sel.Center()
			sel.ClearHandle()
			e.state = Rotating{ID: sel.ID, Center: c, Last: geom.Heading(c, p)}
			Logger().Debug("editor: rotating", "id", sel.ID)
			return
		}
		if h, ok := sel.HitHandle(p); ok {
			sel.SelectHandle(h)
			if h.SubPoint() && sel.Kind != shape.RegularPolygon {
				e.state = EditingSubpoint{ID: sel.ID, Index: h.Index}
			} else {
				e.state = Resizing{ID: sel.ID, Handle: h}
			}
			Logger().Debug("editor: handle", "id", sel.ID, "handle", h.Kind, "index", h.Index)
			return
		}
	}
	for i := len(e.shapes) - 1; i >= 0; i-- {
		s := e.shapes[i]
		if s.Contains(p) {
			e.setSelected(s.ID)
			e.state = Dragging{ID: s.ID, Last: p}
			return
		}
	}
	e.setSelected(uuid.Nil)
	e.state = Idle{}
}

// create returns the zero size shape a drawing mode starts with.
func (e *Editor) create(p geom.Point) *shape.Shape {
	k, ok := e.mode.kind()
	if !ok {
		return nil
	}
	switch k {
	case shape.Rectangle:
		return shape.NewRectangle(p, 0, 0, e.defaults)
	case shape.Ellipse:
		return shape.NewEllipse(p, 0, 0, e.defaults)
	case shape.Line:
		return shape.NewLine(p, p, e.defaults)
	case shape.Bezier:
		return shape.NewBezier(p, p, p, p, e.defaults)
	case shape.RegularPolygon:
		return shape.NewRegularPolygon(p, e.sides, 0, e.defaults)
	}
	return nil
}

// ContinueDrawing handles pointer motion to p while a button is held.
func (e *Editor) ContinueDrawing(p geom.Point, shift bool) {
	id := target(e.state)
	if id == uuid.Nil {
		return
	}
	s, _ := e.find(id)
	if s == nil {
		Logger().Debug("editor: gesture target vanished", "id", id)
		e.state = Idle{}
		return
	}
	switch st := e.state.(type) {
	case Dragging:
		s.Move(p.Sub(st.Last))
		st.Last = p
		e.state = st
	case Resizing, EditingSubpoint:
		s.Resize(p, shift)
	case Rotating:
		cur := geom.Heading(st.Center, p)
		delta := geom.WrapDelta(cur - st.Last)
		if shift {
			delta = geom.Snap(delta, rotationSnap)
			st.Last = geom.NormalizeAngle(st.Last + delta)
		} else {
			st.Last = cur
		}
		if delta != 0 {
			s.Rotate(delta)
		}
		e.state = st
	case DrawingNew:
		sizeFromDrag(s, st.Start, p, shift)
	}
}

// sizeFromDrag shapes a new s from the press point start to p.
func sizeFromDrag(s *shape.Shape, start, p geom.Point, shift bool) {
	dx, dy := p.X-start.X, p.Y-start.Y
	switch s.Kind {
	case shape.Rectangle:
		if shift {
			size := math.Max(math.Abs(dx), math.Abs(dy))
			s.Width, s.Height = size, size
			s.Position = geom.Pt(toward(start.X, dx, 0, size), toward(start.Y, dy, 0, size))
			return
		}
		s.Width, s.Height = math.Abs(dx), math.Abs(dy)
		s.Position = geom.Pt(math.Min(start.X, p.X), math.Min(start.Y, p.Y))
	case shape.Ellipse:
		if shift {
			r := math.Max(math.Abs(dx), math.Abs(dy)) / 2
			s.RadiusX, s.RadiusY = r, r
			s.Position = geom.Pt(toward(start.X, dx, r, 2*r), toward(start.Y, dy, r, 2*r))
			return
		}
		s.RadiusX, s.RadiusY = math.Abs(dx)/2, math.Abs(dy)/2
		s.Position = geom.Pt(math.Min(start.X, p.X)+s.RadiusX, math.Min(start.Y, p.Y)+s.RadiusY)
	case shape.Line:
		if shift {
			p = geom.SnapDirection(start, p, 45)
		}
		s.End = p
	case shape.Bezier:
		s.End = p
		s.Control1 = start.Lerp(p, 1.0/3)
		s.Control2 = start.Lerp(p, 2.0/3)
	case shape.RegularPolygon:
		s.Position = start
		s.Radius = geom.Distance(start, p)
	}
}

// toward returns the coordinate of a box edge (plus offset) anchored at
// start and growing by size in the direction of d.
func toward(start, d, offset, size float64) float64 {
	if d < 0 {
		return start - size + offset
	}
	return start + offset
}

// EndDrawing handles the pointer release at p.
func (e *Editor) EndDrawing(p geom.Point, shift bool) {
	switch e.mode {
	case ModeSelect:
		if s := e.Selected(); s != nil {
			s.ClearHandle()
		}
		e.state = Idle{}
	case ModePolyline:
	default:
		if st, ok := e.state.(DrawingNew); ok {
			e.ContinueDrawing(p, shift)
			Logger().Debug("editor: drawn", "id", st.ID)
			e.state = Idle{}
		}
	}
}

// CompletePolyline finishes the polyline under construction. One with
// fewer than two points is removed. It reports whether a polyline was kept.
func (e *Editor) CompletePolyline() bool {
	st, ok := e.state.(ConstructingPolyline)
	if !ok {
		return false
	}
	e.state = Idle{}
	s, _ := e.find(st.ID)
	if s == nil {
		return false
	}
	if len(s.Points) < 2 {
		e.remove(st.ID)
		Logger().Debug("editor: polyline discarded", "id", st.ID)
		return false
	}
	Logger().Debug("editor: polyline completed", "id", st.ID, "points", len(s.Points))
	return true
}

// CancelDrawing drops any shape being created and resets the gesture.
// Calling it with nothing in progress does nothing.
func (e *Editor) CancelDrawing() {
	switch st := e.state.(type) {
	case DrawingNew:
		e.remove(st.ID)
	case ConstructingPolyline:
		e.remove(st.ID)
	}
	if s := e.Selected(); s != nil {
		s.ClearHandle()
	}
	e.state = Idle{}
}

// DeleteSelected removes the selected shape.
func (e *Editor) DeleteSelected() bool {
	sel := e.Selected()
	if sel == nil {
		return false
	}
	if target(e.state) == sel.ID {
		e.state = Idle{}
	}
	return e.remove(sel.ID)
}

// Duplicate adds a copy of the selected shape shifted by DuplicateOffset
// and selects it.
func (e *Editor) Duplicate() *shape.Shape {
	sel := e.Selected()
	if sel == nil {
		return nil
	}
	c := sel.Clone()
	c.Move(DuplicateOffset)
	e.shapes = append(e.shapes, c)
	e.setSelected(c.ID)
	return c
}

// Add appends shapes on top of the drawing.
func (e *Editor) Add(shapes ...*shape.Shape) {
	for _, s := range shapes {
		if s == nil {
			continue
		}
		s.Selected = false
		s.ClearHandle()
		e.shapes = append(e.shapes, s)
	}
}

// Remove deletes the shape with the given ID.
func (e *Editor) Remove(id uuid.UUID) bool {
	if target(e.state) == id {
		e.state = Idle{}
	}
	return e.remove(id)
}

// Replace swaps the whole drawing, dropping the selection and any gesture.
func (e *Editor) Replace(shapes []*shape.Shape) {
	e.CancelDrawing()
	e.setSelected(uuid.Nil)
	e.shapes = nil
	e.Add(shapes...)
}

// LoadExamples replaces the drawing with the demonstration shapes.
func (e *Editor) LoadExamples() {
	e.Replace(shape.Examples())
}

// SetFill changes the fill of the selected shape.
func (e *Editor) SetFill(c color.RGBA) {
	if s := e.Selected(); s != nil {
		s.Fill = c
	}
}

// SetStroke changes the stroke color of the selected shape.
func (e *Editor) SetStroke(c color.RGBA) {
	if s := e.Selected(); s != nil {
		s.Stroke = c
	}
}

// SetStrokeWidth changes the stroke width of the selected shape. Widths
// below or equal to zero are ignored.
func (e *Editor) SetStrokeWidth(w float64) {
	if w <= 0 {
		return
	}
	if s := e.Selected(); s != nil {
		s.StrokeWidth = w
	}
}

// SetSides changes the side count of a selected polygon and of polygons
// drawn from now on. Counts outside 3..6 are ignored.
func (e *Editor) SetSides(n int) {
	if n < shape.MinSides || n > shape.MaxSides {
		return
	}
	e.sides = n
	if s := e.Selected(); s != nil {
		s.SetSides(n)
	}
}

// SetClosed opens or closes a selected polyline.
func (e *Editor) SetClosed(closed bool) {
	if s := e.Selected(); s != nil {
		s.SetClosed(closed)
	}
}

// Render clears dst to background and draws every shape bottom first.
func (e *Editor) Render(dst *image.RGBA, background color.RGBA) {
	raster.Clear(dst, background)
	for _, s := range e.shapes {
		s.Draw(dst, e.deco)
	}
}
