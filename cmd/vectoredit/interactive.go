package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/example/vectoredit/internal/editor"
	"github.com/example/vectoredit/internal/geom"
	"github.com/example/vectoredit/internal/palette"
	"github.com/example/vectoredit/internal/render"
)

// commandList collects repeated -e flags.
type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// interactiveCmd drives an editor from typed gestures, one per line.
type interactiveCmd struct {
	file  string
	execs commandList
	in    io.Reader

	drawing *drawing
	ed      *editor.Editor
	*root
	fs *flag.FlagSet
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	i := &interactiveCmd{root: r, fs: fs, in: os.Stdin}
	fs.Usage = usageFunc(i)
	fs.StringVar(&i.file, "file", "", "drawing to load and save")
	fs.Var(&i.execs, "e", "execute a command instead of reading stdin (may be specified multiple times)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: i}
	}
	return i, nil
}

func (i *interactiveCmd) open() error {
	d, err := openDrawing(i.file, i.settings(), true)
	if err != nil {
		return err
	}
	cfg := i.settings()
	i.drawing = d
	i.ed = editor.New(
		editor.WithStyle(cfg.Editor.Style()),
		editor.WithSides(cfg.Editor.Sides),
		editor.WithShapes(d.shapes...),
	)
	return nil
}

func (i *interactiveCmd) Run() error {
	if err := i.open(); err != nil {
		return err
	}
	if len(i.execs) > 0 {
		for _, line := range i.execs {
			done, err := i.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	fmt.Fprintln(i.out(), "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(i.in)
	for {
		fmt.Fprint(i.out(), "> ")
		if !scanner.Scan() {
			break
		}
		done, err := i.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(i.errOut(), err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

const interactiveHelp = `commands:
  mode <select|rectangle|ellipse|line|bezier|polyline|polygon>
  down <x> <y> [shift]    press at a canvas point
  move <x> <y> [shift]    drag to a canvas point
  up <x> <y> [shift]      release at a canvas point
  click <x> <y> [shift]   press and release
  complete | cancel | delete | duplicate
  select <index|id|none>
  fill <color> | stroke <color> | width <n> | sides <n> | close | open
  list | state | examples
  save [path] | export <path>
  exit`

// executeLine runs one command and reports whether the session should end.
func (i *interactiveCmd) executeLine(line string) (bool, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false, nil
	}
	ed := i.ed
	name, rest := strings.ToLower(args[0]), args[1:]
	switch name {
	case "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprintln(i.out(), interactiveHelp)
	case "mode":
		if len(rest) != 1 {
			return false, fmt.Errorf("usage: mode <name>")
		}
		m, err := editor.ParseMode(rest[0])
		if err != nil {
			return false, err
		}
		ed.SetMode(m)
	case "down", "move", "up", "click":
		p, shift, err := pointArgs(rest)
		if err != nil {
			return false, fmt.Errorf("%s: %w", name, err)
		}
		switch name {
		case "down":
			ed.StartDrawing(p, shift)
		case "move":
			ed.ContinueDrawing(p, shift)
		case "up":
			ed.EndDrawing(p, shift)
		case "click":
			ed.StartDrawing(p, shift)
			ed.EndDrawing(p, shift)
		}
	case "complete":
		if !ed.CompletePolyline() {
			fmt.Fprintln(i.out(), "no polyline kept")
		}
	case "cancel":
		ed.CancelDrawing()
	case "delete":
		if !ed.DeleteSelected() {
			fmt.Fprintln(i.out(), "nothing selected")
		}
	case "duplicate":
		if ed.Duplicate() == nil {
			fmt.Fprintln(i.out(), "nothing selected")
		}
	case "select":
		if len(rest) != 1 {
			return false, fmt.Errorf("usage: select <index|id|none>")
		}
		if err := i.selectShape(rest[0]); err != nil {
			return false, err
		}
	case "fill", "stroke":
		if len(rest) != 1 {
			return false, fmt.Errorf("usage: %s <color>", name)
		}
		c, err := palette.Parse(rest[0])
		if err != nil {
			return false, err
		}
		// the selection takes the paint when there is one
		st := ed.Defaults()
		switch {
		case name == "fill" && ed.Selected() != nil:
			ed.SetFill(c)
		case ed.Selected() != nil:
			ed.SetStroke(c)
		case name == "fill":
			st.Fill = c
			ed.SetDefaults(st)
		default:
			st.Stroke = c
			ed.SetDefaults(st)
		}
	case "width":
		if len(rest) != 1 {
			return false, fmt.Errorf("usage: width <n>")
		}
		w, err := strconv.ParseFloat(rest[0], 64)
		if err != nil || w < 1 {
			return false, fmt.Errorf("invalid width %q", rest[0])
		}
		if ed.Selected() != nil {
			ed.SetStrokeWidth(w)
		} else {
			st := ed.Defaults()
			st.StrokeWidth = w
			ed.SetDefaults(st)
		}
	case "sides":
		if len(rest) != 1 {
			return false, fmt.Errorf("usage: sides <n>")
		}
		n, err := strconv.Atoi(rest[0])
		if err != nil {
			return false, fmt.Errorf("invalid sides %q", rest[0])
		}
		ed.SetSides(n)
	case "close", "open":
		ed.SetClosed(name == "close")
	case "examples":
		ed.LoadExamples()
	case "list":
		for idx, s := range ed.Shapes() {
			fmt.Fprintln(i.out(), describe(idx, s))
		}
	case "state":
		i.printState()
	case "save":
		path := i.file
		if len(rest) > 0 {
			path = rest[0]
		}
		if path == "" {
			return false, fmt.Errorf("usage: save <path>")
		}
		i.drawing.shapes = ed.Shapes()
		saved, err := i.drawing.save(path)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(i.out(), "saved %s\n", saved)
		i.notifySave(saved)
	case "export":
		if len(rest) != 1 {
			return false, fmt.Errorf("usage: export <path>")
		}
		if err := i.export(rest[0]); err != nil {
			return false, err
		}
	default:
		return false, fmt.Errorf("unknown command %q", args[0])
	}
	return false, nil
}

// pointArgs parses "x y [shift]".
func pointArgs(args []string) (geom.Point, bool, error) {
	if len(args) < 2 || len(args) > 3 {
		return geom.Point{}, false, fmt.Errorf("expected x y [shift]")
	}
	vals, err := parseNumbers(args[:2])
	if err != nil {
		return geom.Point{}, false, err
	}
	shift := false
	if len(args) == 3 {
		if !strings.EqualFold(args[2], "shift") {
			return geom.Point{}, false, fmt.Errorf("unexpected %q", args[2])
		}
		shift = true
	}
	return geom.Pt(vals[0], vals[1]), shift, nil
}

func (i *interactiveCmd) selectShape(arg string) error {
	if strings.EqualFold(arg, "none") {
		i.ed.ClearSelection()
		return nil
	}
	if idx, err := strconv.Atoi(arg); err == nil {
		shapes := i.ed.Shapes()
		if idx < 0 || idx >= len(shapes) {
			return fmt.Errorf("no shape at index %d", idx)
		}
		i.ed.Select(shapes[idx].ID)
		return nil
	}
	id, err := uuid.Parse(arg)
	if err != nil {
		return fmt.Errorf("invalid selection %q", arg)
	}
	if !i.ed.Select(id) {
		return fmt.Errorf("no shape with id %s", id)
	}
	return nil
}

func (i *interactiveCmd) printState() {
	ed := i.ed
	fmt.Fprintf(i.out(), "mode %s, %s, %d shapes\n", ed.Mode(), ed.Interaction(), ed.Len())
	if sel := ed.Selected(); sel != nil {
		idx := 0
		for n, s := range ed.Shapes() {
			if s.ID == sel.ID {
				idx = n
			}
		}
		fmt.Fprintf(i.out(), "selected %s\n", describe(idx, sel))
	}
}

func (i *interactiveCmd) export(path string) error {
	d := i.drawing
	img, err := render.Image(i.ed.Shapes(), render.Options{Width: d.width, Height: d.height, Background: d.background})
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.Encode(out, path, img); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	fmt.Fprintf(i.out(), "exported %s\n", path)
	i.notifyExport(path)
	return nil
}
