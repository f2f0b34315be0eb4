package main

import (
	"flag"
	"os"

	"github.com/example/vectoredit/internal/appstate"
	"github.com/example/vectoredit/internal/editor"
)

// editCmd opens the editor window.
type editCmd struct {
	file     string
	output   string
	export   string
	saveDir  string
	width    int
	height   int
	examples bool
	*root
	fs *flag.FlagSet
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	cfg := r.settings()
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.file, "file", "", "drawing to open (.yaml, .yml or .json); created on save when missing")
	fs.StringVar(&e.output, "output", "", "where Ctrl+S saves (defaults to -file)")
	fs.StringVar(&e.export, "export", "", "where Ctrl+E writes the rendered image (.png or .tiff)")
	fs.StringVar(&e.saveDir, "save-dir", cfg.SaveDir, "directory for unnamed saves and exports")
	fs.IntVar(&e.width, "width", 0, "canvas width for a new drawing")
	fs.IntVar(&e.height, "height", 0, "canvas height for a new drawing")
	fs.BoolVar(&e.examples, "examples", cfg.Editor.Examples, "start a new drawing with the example shapes")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: e}
	}
	if e.output == "" {
		e.output = e.file
	}
	if e.saveDir == "" {
		if wd, err := os.Getwd(); err == nil {
			e.saveDir = wd
		}
	}
	return e, nil
}

// newEditor builds the editor for d with the configured defaults.
func (e *editCmd) newEditor(d *drawing) *editor.Editor {
	cfg := e.settings()
	ed := editor.New(
		editor.WithStyle(cfg.Editor.Style()),
		editor.WithSides(cfg.Editor.Sides),
		editor.WithDecorations(e.uiTheme().Decorations()),
		editor.WithShapes(d.shapes...),
	)
	if !d.loaded && e.examples {
		ed.LoadExamples()
	}
	return ed
}

func (e *editCmd) Run() error {
	d, err := openDrawing(e.file, e.settings(), true)
	if err != nil {
		return err
	}
	if !d.loaded {
		if e.width > 0 {
			d.width = e.width
		}
		if e.height > 0 {
			d.height = e.height
		}
	}
	st := appstate.New(
		appstate.WithEditor(e.newEditor(d)),
		appstate.WithDocument(e.output),
		appstate.WithExport(e.export),
		appstate.WithSaveDir(e.saveDir),
		appstate.WithCanvas(d.width, d.height, d.background),
		appstate.WithTheme(e.uiTheme()),
		appstate.WithNotifier(e.notifier),
	)
	st.Run()
	return nil
}
