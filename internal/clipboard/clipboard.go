// Package clipboard moves drawings in and out of the system clipboard:
// rendered canvases as PNG images and shapes as YAML text that another
// editor window can paste.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/example/vectoredit/internal/document"
	"github.com/example/vectoredit/internal/shape"
)

var errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")

// ErrNoShapes is returned by PasteShapes when the clipboard text holds no
// shapes.
var ErrNoShapes = errors.New("clipboard does not contain shapes")

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeShapes returns the clipboard text for shapes.
func EncodeShapes(shapes []*shape.Shape) (string, error) {
	doc := document.FromShapes(0, 0, color.RGBA{255, 255, 255, 255}, shapes)
	b, err := document.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeShapes parses clipboard text produced by EncodeShapes. Every shape
// gets a fresh ID so pasting twice yields distinct shapes.
func DecodeShapes(text string) ([]*shape.Shape, error) {
	doc, err := document.Unmarshal([]byte(text))
	if err != nil {
		return nil, err
	}
	shapes, err := doc.Decoded()
	if err != nil {
		return nil, err
	}
	if len(shapes) == 0 {
		return nil, ErrNoShapes
	}
	out := make([]*shape.Shape, len(shapes))
	for i, s := range shapes {
		out[i] = s.Clone()
	}
	return out, nil
}

// CopyShapes places shapes on the clipboard as text.
func CopyShapes(shapes []*shape.Shape) error {
	text, err := EncodeShapes(shapes)
	if err != nil {
		return err
	}
	return WriteText(text)
}

// PasteShapes reads shapes from the clipboard text.
func PasteShapes() ([]*shape.Shape, error) {
	text, err := ReadText()
	if err != nil {
		return nil, err
	}
	return DecodeShapes(text)
}
