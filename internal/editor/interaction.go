package editor

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/example/vectoredit/internal/geom"
	"github.com/example/vectoredit/internal/shape"
)

// Mode is the active tool.
type Mode int

const (
	ModeSelect Mode = iota
	ModeRectangle
	ModeEllipse
	ModeLine
	ModeBezier
	ModePolyline
	ModePolygon
)

var modeNames = [...]string{"select", "rectangle", "ellipse", "line", "bezier", "polyline", "polygon"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Modes lists every tool in toolbar order.
func Modes() []Mode {
	return []Mode{ModeSelect, ModeRectangle, ModeEllipse, ModeLine, ModeBezier, ModePolyline, ModePolygon}
}

// ParseMode resolves a tool name.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// kind returns the shape created by a drawing mode.
func (m Mode) kind() (shape.Kind, bool) {
	switch m {
	case ModeRectangle:
		return shape.Rectangle, true
	case ModeEllipse:
		return shape.Ellipse, true
	case ModeLine:
		return shape.Line, true
	case ModeBezier:
		return shape.Bezier, true
	case ModePolyline:
		return shape.Polyline, true
	case ModePolygon:
		return shape.RegularPolygon, true
	}
	return 0, false
}

// Interaction is the gesture in progress. It is one of Idle, Dragging,
// Resizing, Rotating, EditingSubpoint, ConstructingPolyline or DrawingNew.
type Interaction interface {
	interaction()
	fmt.Stringer
}

// Idle means no gesture is in progress.
type Idle struct{}

// Dragging moves the whole shape with the pointer.
type Dragging struct {
	ID   uuid.UUID
	Last geom.Point
}

// Resizing drags a resize handle.
type Resizing struct {
	ID     uuid.UUID
	Handle shape.Handle
}

// Rotating turns a shape about Center. Last is the pointer heading in
// degrees the previous rotation step was measured from.
type Rotating struct {
	ID     uuid.UUID
	Center geom.Point
	Last   float64
}

// EditingSubpoint drags a single polyline vertex or Bezier control point.
type EditingSubpoint struct {
	ID    uuid.UUID
	Index int
}

// ConstructingPolyline collects clicks into the polyline ID until it is
// completed or cancelled.
type ConstructingPolyline struct {
	ID uuid.UUID
}

// DrawingNew sizes a freshly created shape from Start to the pointer.
type DrawingNew struct {
	ID    uuid.UUID
	Start geom.Point
}

func (Idle) interaction()                 {}
func (Dragging) interaction()             {}
func (Resizing) interaction()             {}
func (Rotating) interaction()             {}
func (EditingSubpoint) interaction()      {}
func (ConstructingPolyline) interaction() {}
func (DrawingNew) interaction()           {}

func (Idle) String() string                 { return "idle" }
func (Dragging) String() string             { return "dragging" }
func (r Resizing) String() string           { return "resizing " + r.Handle.Kind.String() }
func (Rotating) String() string             { return "rotating" }
func (e EditingSubpoint) String() string    { return fmt.Sprintf("editing point %d", e.Index) }
func (ConstructingPolyline) String() string { return "drawing polyline" }
func (DrawingNew) String() string           { return "drawing" }

// target returns the shape ID an interaction operates on.
func target(in Interaction) uuid.UUID {
	switch in := in.(type) {
	case Dragging:
		return in.ID
	case Resizing:
		return in.ID
	case Rotating:
		return in.ID
	case EditingSubpoint:
		return in.ID
	case ConstructingPolyline:
		return in.ID
	case DrawingNew:
		return in.ID
	}
	return uuid.Nil
}
