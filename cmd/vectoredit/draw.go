package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/vectoredit/internal/geom"
	"github.com/example/vectoredit/internal/palette"
	"github.com/example/vectoredit/internal/shape"
)

// drawCmd appends one shape to a drawing.
type drawCmd struct {
	file   string
	output string
	fill   string
	stroke string
	width  float64
	angle  float64
	sides  int
	closed bool
	kind   shape.Kind
	values []float64
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	cfg := r.settings()
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.file, "file", "", "drawing to add the shape to (created when missing)")
	fs.StringVar(&d.output, "output", "", "output file path (defaults to -file)")
	fs.StringVar(&d.fill, "fill", palette.Name(cfg.Editor.Fill), "fill color name, hex value or none")
	fs.StringVar(&d.stroke, "stroke", palette.Name(cfg.Editor.Stroke), "stroke color name, hex value or none")
	fs.Float64Var(&d.width, "width", cfg.Editor.StrokeWidth, "stroke width in pixels")
	fs.Float64Var(&d.angle, "angle", 0, "rotation in degrees about the shape's center")
	fs.IntVar(&d.sides, "sides", cfg.Editor.Sides, "sides of a polygon (3-6)")
	fs.BoolVar(&d.closed, "closed", false, "close a polyline into a polygon")

	flagArgs, positionals, err := splitDrawArgs(fs, args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) < 1 {
		return nil, &UsageError{of: d}
	}
	if d.kind, err = shape.ParseKind(positionals[0]); err != nil {
		return nil, err
	}
	if d.values, err = parseNumbers(positionals[1:]); err != nil {
		return nil, err
	}
	if err := checkArity(d.kind, len(d.values)); err != nil {
		return nil, err
	}
	if d.file == "" {
		return nil, fmt.Errorf("input file is required")
	}
	if d.output == "" {
		d.output = d.file
	}
	if d.width < 1 {
		d.width = 1
	}
	if d.sides < shape.MinSides || d.sides > shape.MaxSides {
		return nil, fmt.Errorf("sides must be between %d and %d", shape.MinSides, shape.MaxSides)
	}
	return d, nil
}

// arity lists how many numbers each kind takes. Polylines take any even
// count of at least four.
var arity = map[shape.Kind]string{
	shape.Rectangle:      "x y width height",
	shape.Ellipse:        "cx cy rx ry",
	shape.Line:           "x1 y1 x2 y2",
	shape.RegularPolygon: "cx cy radius",
	shape.Bezier:         "x0 y0 c1x c1y c2x c2y x1 y1",
	shape.Polyline:       "x1 y1 x2 y2 [x y ...]",
}

func checkArity(k shape.Kind, n int) error {
	want := len(strings.Fields(arity[k]))
	if k == shape.Polyline {
		if n >= 4 && n%2 == 0 {
			return nil
		}
	} else if n == want {
		return nil
	}
	return fmt.Errorf("%s requires %s", k, arity[k])
}

func parseNumbers(args []string) ([]float64, error) {
	vals := make([]float64, len(args))
	for i, raw := range args {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", raw)
		}
		vals[i] = v
	}
	return vals, nil
}

func (d *drawCmd) style() (shape.Style, error) {
	fill, err := palette.Parse(d.fill)
	if err != nil {
		return shape.Style{}, fmt.Errorf("fill: %w", err)
	}
	stroke, err := palette.Parse(d.stroke)
	if err != nil {
		return shape.Style{}, fmt.Errorf("stroke: %w", err)
	}
	return shape.Style{Fill: fill, Stroke: stroke, StrokeWidth: d.width}, nil
}

// build creates the shape described by the positional arguments.
func (d *drawCmd) build(st shape.Style) *shape.Shape {
	v := d.values
	var s *shape.Shape
	switch d.kind {
	case shape.Rectangle:
		s = shape.NewRectangle(geom.Pt(v[0], v[1]), v[2], v[3], st)
	case shape.Ellipse:
		s = shape.NewEllipse(geom.Pt(v[0], v[1]), v[2], v[3], st)
	case shape.Line:
		s = shape.NewLine(geom.Pt(v[0], v[1]), geom.Pt(v[2], v[3]), st)
	case shape.RegularPolygon:
		s = shape.NewRegularPolygon(geom.Pt(v[0], v[1]), d.sides, v[2], st)
	case shape.Bezier:
		s = shape.NewBezier(geom.Pt(v[0], v[1]), geom.Pt(v[2], v[3]), geom.Pt(v[4], v[5]), geom.Pt(v[6], v[7]), st)
	case shape.Polyline:
		pts := make([]geom.Point, 0, len(v)/2)
		for i := 0; i+1 < len(v); i += 2 {
			pts = append(pts, geom.Pt(v[i], v[i+1]))
		}
		s = shape.NewPolyline(pts, st)
		s.SetClosed(d.closed)
	}
	if d.angle != 0 {
		s.Rotate(d.angle)
	}
	return s
}

func (d *drawCmd) Run() error {
	st, err := d.style()
	if err != nil {
		return err
	}
	dr, err := openDrawing(d.file, d.settings(), true)
	if err != nil {
		return err
	}
	s := d.build(st)
	dr.shapes = append(dr.shapes, s)
	saved, err := dr.save(d.output)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.errOut(), "added %s %s to %s\n", s.Kind, s.ID, saved)
	d.notifySave(saved)
	return nil
}

// splitDrawArgs separates flags from positionals so flags may follow the
// shape. Negative numbers stay positional.
func splitDrawArgs(fs *flag.FlagSet, args []string) ([]string, []string, error) {
	var flags []string
	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		if _, err := strconv.ParseFloat(arg, 64); err == nil {
			positionals = append(positionals, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		parts := strings.SplitN(name, "=", 2)
		base := strings.ToLower(parts[0])
		f := fs.Lookup(base)
		if f == nil {
			return nil, nil, fmt.Errorf("flag provided but not defined: %s", arg)
		}
		norm := "-" + base
		if len(parts) == 2 {
			flags = append(flags, norm+"="+parts[1])
			continue
		}
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			flags = append(flags, norm)
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag %s requires a value", arg)
		}
		flags = append(flags, norm, args[i+1])
		i++
	}
	return flags, positionals, nil
}
