package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/vectoredit/internal/geom"
	"github.com/example/vectoredit/internal/shape"
)

func testRoot() (*root, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &root{program: "vectoredit", stdout: &out, stderr: &errOut}, &out, &errOut
}

func TestParseDrawErrors(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"rectangle", "0", "0", "10", "10"}, "input file is required"},
		{[]string{"-file", "a.yaml", "rectangle", "0", "0", "10"}, "rectangle requires x y width height"},
		{[]string{"-file", "a.yaml", "polyline", "0", "0", "10"}, "polyline requires"},
		{[]string{"-file", "a.yaml", "star", "0", "0"}, "unknown shape kind"},
		{[]string{"-file", "a.yaml", "line", "0", "x", "1", "1"}, `invalid number "x"`},
		{[]string{"-file", "a.yaml", "-sides", "9", "polygon", "0", "0", "5"}, "sides must be between 3 and 6"},
	}
	for _, tt := range tests {
		_, err := parseDrawCmd(tt.args, nil)
		if err == nil {
			t.Errorf("%v: expected error", tt.args)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%v: error %q does not mention %q", tt.args, err, tt.want)
		}
	}
}

func TestParseDrawFlagsAfterShape(t *testing.T) {
	d, err := parseDrawCmd([]string{"line", "-5", "-5", "10", "10", "-file", "a.yaml", "-stroke=blue", "-width", "3"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.kind != shape.Line || d.file != "a.yaml" || d.output != "a.yaml" || d.stroke != "blue" || d.width != 3 {
		t.Fatalf("unexpected command %+v", d)
	}
	if len(d.values) != 4 || d.values[0] != -5 {
		t.Fatalf("negative numbers should stay positional: %v", d.values)
	}
}

func TestParseDrawUsage(t *testing.T) {
	_, err := parseDrawCmd(nil, nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	help := uerr.Error()
	for _, want := range []string{"Usage: vectoredit draw", "Kinds:", "-fill", "-closed"} {
		if !strings.Contains(help, want) {
			t.Errorf("help does not mention %q:\n%s", want, help)
		}
	}
}

func TestDrawAndList(t *testing.T) {
	r, out, _ := testRoot()
	path := filepath.Join(t.TempDir(), "doc.yaml")

	for _, args := range [][]string{
		{"-file", path, "rectangle", "10", "20", "30", "40", "-fill", "red"},
		{"-file", path, "-sides", "6", "polygon", "100", "100", "25"},
		{"-file", path, "-closed", "polyline", "0", "0", "10", "0", "10", "10"},
	} {
		d, err := parseDrawCmd(args, r)
		if err != nil {
			t.Fatalf("parse %v: %v", args, err)
		}
		if err := d.Run(); err != nil {
			t.Fatalf("run %v: %v", args, err)
		}
	}

	dr, err := openDrawing(path, r.settings(), false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(dr.shapes) != 3 {
		t.Fatalf("got %d shapes", len(dr.shapes))
	}
	if s := dr.shapes[0]; s.Kind != shape.Rectangle || s.Position != geom.Pt(10, 20) || s.Width != 30 || s.Fill.R != 255 {
		t.Errorf("rectangle %+v", s)
	}
	if s := dr.shapes[1]; s.Kind != shape.RegularPolygon || s.Sides != 6 || s.Radius != 25 {
		t.Errorf("polygon %+v", s)
	}
	if s := dr.shapes[2]; !s.Closed || len(s.Points) != 3 {
		t.Errorf("polyline %+v", s)
	}

	l, err := parseListCmd([]string{"-file", path}, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Run(); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{"800x600", "3 shapes", "rectangle", "sides=6", "closed=true"} {
		if !strings.Contains(got, want) {
			t.Errorf("list output missing %q:\n%s", want, got)
		}
	}
}

func TestExamplesAndRender(t *testing.T) {
	r, _, errOut := testRoot()
	dir := t.TempDir()
	doc := filepath.Join(dir, "examples.json")
	ex, err := parseExamplesCmd([]string{"-output", doc}, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := ex.Run(); err != nil {
		t.Fatal(err)
	}

	img := filepath.Join(dir, "out.png")
	rc, err := parseRenderCmd([]string{"-file", doc, "-output", img, "-scale", "0.5"}, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := rc.Run(); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(img)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 400 || cfg.Height != 300 {
		t.Errorf("rendered %dx%d", cfg.Width, cfg.Height)
	}
	if !strings.Contains(errOut.String(), "exported") {
		t.Errorf("missing export message: %q", errOut.String())
	}
}

func TestParseRenderErrors(t *testing.T) {
	for _, args := range [][]string{
		{"-output", "a.png"},
		{"-file", "a.yaml"},
		{"-file", "a.yaml", "-output", "a.png", "-scale", "0"},
		{"-file", "a.yaml", "-output", "a.png", "-background", "nocolor"},
	} {
		if _, err := parseRenderCmd(args, nil); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestInteractiveExec(t *testing.T) {
	r, out, _ := testRoot()
	path := filepath.Join(t.TempDir(), "doc.yaml")
	args := []string{"-file", path}
	for _, c := range []string{
		"mode rectangle",
		"down 10 10",
		"move 50 30 shift",
		"up 50 30 shift",
		"mode select",
		"click 20 20",
		"fill blue",
		"state",
		"save",
	} {
		args = append(args, "-e", c)
	}
	i, err := parseInteractiveCmd(args, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := i.Run(); err != nil {
		t.Fatal(err)
	}

	dr, err := openDrawing(path, r.settings(), false)
	if err != nil {
		t.Fatal(err)
	}
	if len(dr.shapes) != 1 {
		t.Fatalf("got %d shapes", len(dr.shapes))
	}
	s := dr.shapes[0]
	if s.Width != 40 || s.Height != 40 {
		t.Errorf("shift should draw a square: %vx%v", s.Width, s.Height)
	}
	if s.Fill.B != 255 || s.Fill.R != 0 {
		t.Errorf("fill %v", s.Fill)
	}
	if !strings.Contains(out.String(), "selected") {
		t.Errorf("state output %q", out.String())
	}
}

func TestInteractiveReportsErrors(t *testing.T) {
	r, out, errOut := testRoot()
	i, err := parseInteractiveCmd(nil, r)
	if err != nil {
		t.Fatal(err)
	}
	i.in = strings.NewReader("mode line\nclick 0 0 ctrl\nbogus\nclick 0 0\nlist\nexit\nmode select\n")
	if err := i.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(errOut.String(), `unknown command "bogus"`) || !strings.Contains(errOut.String(), `unexpected "ctrl"`) {
		t.Errorf("errors %q", errOut.String())
	}
	if !strings.Contains(out.String(), "line") {
		t.Errorf("list output %q", out.String())
	}
	if i.ed.Mode().String() != "line" {
		t.Errorf("commands after exit were run")
	}
}

func TestConfigPrint(t *testing.T) {
	r, out, _ := testRoot()
	c, err := parseConfigCmd([]string{"print"}, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "[editor]") {
		t.Errorf("config output %q", out.String())
	}
	c, _ = parseConfigCmd([]string{"bogus"}, r)
	if err := c.Run(); err == nil {
		t.Errorf("expected error for unknown subcommand")
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	r, _, _ := testRoot()
	err := r.dispatch("frobnicate", nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}
