package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/example/vectoredit/internal/clipboard"
	"github.com/example/vectoredit/internal/palette"
	"github.com/example/vectoredit/internal/render"
)

// renderCmd exports a drawing to an image without opening a window.
type renderCmd struct {
	file        string
	output      string
	scale       float64
	background  string
	shadow      bool
	decorations bool
	toClipboard bool
	*root
	fs *flag.FlagSet
}

func (c *renderCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	c := &renderCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "drawing to render")
	fs.StringVar(&c.output, "output", "", "image file to write (.png or .tiff)")
	fs.Float64Var(&c.scale, "scale", 1, "scale factor applied to the rendered image")
	fs.StringVar(&c.background, "background", "", "background color (defaults to the drawing's)")
	fs.BoolVar(&c.shadow, "shadow", false, "add a drop shadow around the image")
	fs.BoolVar(&c.decorations, "selection", false, "draw the selection outline and handles of selected shapes")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&c.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" {
		return nil, fmt.Errorf("input file is required")
	}
	if c.output == "" && !c.toClipboard {
		return nil, fmt.Errorf("output file is required unless copying to the clipboard")
	}
	if c.scale <= 0 {
		return nil, fmt.Errorf("scale must be positive")
	}
	if c.background != "" {
		if _, err := palette.Parse(c.background); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *renderCmd) options(d *drawing) render.Options {
	opts := render.Options{Width: d.width, Height: d.height, Background: d.background, Scale: c.scale}
	if c.background != "" {
		opts.Background, _ = palette.Parse(c.background)
	}
	if c.shadow {
		so := render.DefaultShadowOptions()
		opts.Shadow = &so
	}
	if c.decorations {
		deco := c.uiTheme().Decorations()
		opts.Decorations = &deco
	}
	return opts
}

func (c *renderCmd) Run() error {
	d, err := openDrawing(c.file, c.settings(), false)
	if err != nil {
		return err
	}
	img, err := render.Image(d.shapes, c.options(d))
	if err != nil {
		return err
	}
	if c.output != "" {
		out, err := os.Create(c.output)
		if err != nil {
			return err
		}
		if err := render.Encode(out, c.output, img); err != nil {
			if cerr := out.Close(); cerr != nil {
				log.Printf("error closing %q: %v", out.Name(), cerr)
			}
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		saved := c.output
		if abs, err := filepath.Abs(c.output); err == nil {
			saved = abs
		}
		fmt.Fprintf(c.errOut(), "exported %s\n", saved)
		c.notifyExport(saved)
	}
	if c.toClipboard {
		if err := clipboard.WriteImage(img); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		detail := filepath.Base(c.file)
		fmt.Fprintf(c.errOut(), "copied %s to clipboard\n", detail)
		c.notifyCopy(detail, img)
	}
	return nil
}
