package main

import (
	"flag"
	"fmt"

	"github.com/example/vectoredit/internal/palette"
	"github.com/example/vectoredit/internal/shape"
)

type listCmd struct {
	file string
	*root
	fs *flag.FlagSet
}

func parseListCmd(args []string, r *root) (*listCmd, error) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	cmd := &listCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.file, "file", "", "drawing to list")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() == 1 && cmd.file == "" {
		cmd.file = fs.Arg(0)
	} else if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	if cmd.file == "" {
		return nil, fmt.Errorf("input file is required")
	}
	return cmd, nil
}

// describe is the one-line summary printed for a shape.
func describe(idx int, s *shape.Shape) string {
	b := s.Bounds()
	line := fmt.Sprintf("%3d  %s  %-9s (%.0f,%.0f)-(%.0f,%.0f)  fill=%s stroke=%s width=%g",
		idx, s.ID, s.Kind, b.Min.X, b.Min.Y, b.Max.X, b.Max.Y,
		palette.Name(s.Fill), palette.Name(s.Stroke), s.StrokeWidth)
	if s.Angle != 0 {
		line += fmt.Sprintf(" angle=%g", s.Angle)
	}
	switch s.Kind {
	case shape.RegularPolygon:
		line += fmt.Sprintf(" sides=%d", s.Sides)
	case shape.Polyline:
		line += fmt.Sprintf(" points=%d closed=%t", len(s.Points), s.Closed)
	}
	return line
}

func (c *listCmd) Run() error {
	d, err := openDrawing(c.file, c.settings(), false)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out(), "%dx%d background %s, %d shapes\n", d.width, d.height, palette.Name(d.background), len(d.shapes))
	for i, s := range d.shapes {
		fmt.Fprintln(c.out(), describe(i, s))
	}
	return nil
}

func (c *listCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

type colorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	cmd := &colorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	colors := palette.Colors()
	if len(colors) == 0 {
		fmt.Fprintln(c.out(), "no colors available")
		return nil
	}
	ed := c.settings().Editor
	fmt.Fprintln(c.out(), "available palette colors (F marks the default fill, S the default stroke):")
	for idx, entry := range colors {
		marker := []byte("  ")
		if entry.Color == ed.Fill {
			marker[0] = 'F'
		}
		if entry.Color == ed.Stroke {
			marker[1] = 'S'
		}
		hex := palette.Hex(entry.Color)
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", entry.Color.R, entry.Color.G, entry.Color.B)
		fmt.Fprintf(c.out(), "%s %2d: %-12s %s %s\n", marker, idx, entry.Name, hex, block)
	}
	fmt.Fprintln(c.out(), "SVG color names, #RRGGBB[AA] and none are accepted as well")
	return nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

type examplesCmd struct {
	output string
	*root
	fs *flag.FlagSet
}

func parseExamplesCmd(args []string, r *root) (*examplesCmd, error) {
	fs := flag.NewFlagSet("examples", flag.ExitOnError)
	cmd := &examplesCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.output, "output", "examples.yaml", "where to write the example drawing")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *examplesCmd) Run() error {
	d := newDrawing(c.settings())
	d.shapes = shape.Examples()
	saved, err := d.save(c.output)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.errOut(), "saved %s\n", saved)
	c.notifySave(saved)
	return nil
}

func (c *examplesCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
