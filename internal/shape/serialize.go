package shape

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/example/vectoredit/internal/geom"
	"github.com/example/vectoredit/internal/palette"
)

// Data is the persistent form of a Shape. Kind specific geometry lives in
// Properties under camel case keys.
type Data struct {
	Type            string         `json:"type" yaml:"type"`
	ID              string         `json:"id,omitempty" yaml:"id,omitempty"`
	Position        geom.Point     `json:"position" yaml:"position"`
	Fill            string         `json:"fill" yaml:"fill"`
	Stroke          string         `json:"stroke" yaml:"stroke"`
	StrokeThickness float64        `json:"strokeThickness" yaml:"strokeThickness"`
	RotationAngle   float64        `json:"rotationAngle,omitempty" yaml:"rotationAngle,omitempty"`
	Properties      map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Property keys.
const (
	propWidth    = "width"
	propHeight   = "height"
	propRadiusX  = "radiusX"
	propRadiusY  = "radiusY"
	propEnd      = "endPoint"
	propControl1 = "control1"
	propControl2 = "control2"
	propPoints   = "points"
	propClosed   = "closed"
	propSides    = "sides"
	propRadius   = "radius"
)

// Serialize returns the persistent form of s.
func (s *Shape) Serialize() Data {
	d := Data{
		Type:            s.Kind.String(),
		ID:              s.ID.String(),
		Position:        s.Position,
		Fill:            palette.Hex(s.Fill),
		Stroke:          palette.Hex(s.Stroke),
		StrokeThickness: s.StrokeWidth,
		RotationAngle:   s.Angle,
		Properties:      map[string]any{},
	}
	switch s.Kind {
	case Rectangle:
		d.Properties[propWidth] = s.Width
		d.Properties[propHeight] = s.Height
	case Ellipse:
		d.Properties[propRadiusX] = s.RadiusX
		d.Properties[propRadiusY] = s.RadiusY
	case Line:
		d.Properties[propEnd] = s.End
	case Polyline:
		d.Properties[propPoints] = append([]geom.Point(nil), s.Points...)
		d.Properties[propClosed] = s.Closed
	case RegularPolygon:
		d.Properties[propSides] = s.Sides
		d.Properties[propRadius] = s.Radius
	case Bezier:
		d.Properties[propControl1] = s.Control1
		d.Properties[propControl2] = s.Control2
		d.Properties[propEnd] = s.End
	}
	return d
}

// Deserialize rebuilds a Shape from d. Missing properties leave the zero
// value; a missing or malformed ID gets a fresh one.
func Deserialize(d Data) (*Shape, error) {
	k, err := ParseKind(d.Type)
	if err != nil {
		return nil, err
	}
	st := Style{StrokeWidth: d.StrokeThickness}
	if d.Fill != "" {
		if st.Fill, err = palette.Parse(d.Fill); err != nil {
			return nil, fmt.Errorf("fill: %w", err)
		}
	}
	if d.Stroke != "" {
		if st.Stroke, err = palette.Parse(d.Stroke); err != nil {
			return nil, fmt.Errorf("stroke: %w", err)
		}
	} else {
		st.Stroke = DefaultStyle().Stroke
	}
	s := newShape(k, d.Position, st)
	if id, err := uuid.Parse(d.ID); err == nil {
		s.ID = id
	}
	s.Angle = geom.NormalizeAngle(d.RotationAngle)

	p := props(d.Properties)
	switch k {
	case Rectangle:
		s.Width = p.number(propWidth)
		s.Height = p.number(propHeight)
	case Ellipse:
		s.RadiusX = p.number(propRadiusX)
		s.RadiusY = p.number(propRadiusY)
	case Line:
		if s.End, err = p.point(propEnd); err != nil {
			return nil, err
		}
	case Polyline:
		if s.Points, err = p.points(propPoints); err != nil {
			return nil, err
		}
		if len(s.Points) == 0 {
			s.Points = []geom.Point{d.Position}
		}
		s.Position = s.Points[0]
		s.Closed = p.bool(propClosed)
	case RegularPolygon:
		s.Sides = DefaultSides
		s.SetSides(int(p.number(propSides)))
		s.Radius = p.number(propRadius)
	case Bezier:
		if s.Control1, err = p.point(propControl1); err != nil {
			return nil, err
		}
		if s.Control2, err = p.point(propControl2); err != nil {
			return nil, err
		}
		if s.End, err = p.point(propEnd); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// props reads loosely typed values as produced by the JSON and YAML
// decoders as well as by Serialize.
type props map[string]any

func (p props) number(key string) float64 {
	f, _ := toFloat(p[key])
	return f
}

func (p props) bool(key string) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

func (p props) point(key string) (geom.Point, error) {
	v, ok := p[key]
	if !ok {
		return geom.Point{}, nil
	}
	pt, err := toPoint(v)
	if err != nil {
		return geom.Point{}, fmt.Errorf("%s: %w", key, err)
	}
	return pt, nil
}

func (p props) points(key string) ([]geom.Point, error) {
	switch v := p[key].(type) {
	case nil:
		return nil, nil
	case []geom.Point:
		return append([]geom.Point(nil), v...), nil
	case []any:
		out := make([]geom.Point, 0, len(v))
		for i, e := range v {
			pt, err := toPoint(e)
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
			}
			out = append(out, pt)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s: unexpected %T", key, v)
	}
}

func toPoint(v any) (geom.Point, error) {
	switch v := v.(type) {
	case geom.Point:
		return v, nil
	case *geom.Point:
		if v == nil {
			return geom.Point{}, nil
		}
		return *v, nil
	case map[string]any:
		x, okX := toFloat(v["x"])
		y, okY := toFloat(v["y"])
		if !okX || !okY {
			return geom.Point{}, fmt.Errorf("point needs numeric x and y")
		}
		return geom.Pt(x, y), nil
	case []any:
		if len(v) != 2 {
			return geom.Point{}, fmt.Errorf("point needs two coordinates")
		}
		x, okX := toFloat(v[0])
		y, okY := toFloat(v[1])
		if !okX || !okY {
			return geom.Point{}, fmt.Errorf("point needs numeric coordinates")
		}
		return geom.Pt(x, y), nil
	}
	return geom.Point{}, fmt.Errorf("unexpected point %T", v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
