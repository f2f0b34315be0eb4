package main

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"path/filepath"

	"github.com/example/vectoredit/internal/config"
	"github.com/example/vectoredit/internal/document"
	"github.com/example/vectoredit/internal/shape"
)

// drawing is a document decoded for use by a command.
type drawing struct {
	width, height int
	background    color.RGBA
	shapes        []*shape.Shape
	loaded        bool
}

// newDrawing returns an empty drawing sized by the editor settings.
func newDrawing(cfg *config.Config) *drawing {
	return &drawing{width: cfg.Editor.Width, height: cfg.Editor.Height, background: cfg.Editor.Background}
}

// openDrawing loads path. A missing file yields an empty drawing when
// allowMissing is set.
func openDrawing(path string, cfg *config.Config, allowMissing bool) (*drawing, error) {
	if path == "" {
		return newDrawing(cfg), nil
	}
	doc, err := document.Load(path)
	if err != nil {
		if allowMissing && errors.Is(err, fs.ErrNotExist) {
			if _, ferr := document.FormatFor(path); ferr != nil {
				return nil, ferr
			}
			return newDrawing(cfg), nil
		}
		return nil, err
	}
	bg, err := doc.BackgroundColor()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	shapes, err := doc.Decoded()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &drawing{width: doc.Width, height: doc.Height, background: bg, shapes: shapes, loaded: true}, nil
}

func (d *drawing) document() *document.Document {
	return document.FromShapes(d.width, d.height, d.background, d.shapes)
}

// save writes the drawing and returns the absolute path written.
func (d *drawing) save(path string) (string, error) {
	if err := document.Save(path, d.document()); err != nil {
		return "", err
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs, nil
	}
	return path, nil
}
