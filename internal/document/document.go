// Package document reads and writes drawings. A document is a canvas size,
// a background color and the serialized shapes in z-order, stored as JSON
// or YAML depending on the file extension.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/vectoredit/internal/palette"
	"github.com/example/vectoredit/internal/shape"
)

// Version is written into every saved document.
const Version = 1

// Default canvas size.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// ErrUnknownFormat is returned for file extensions other than .json, .yaml
// and .yml.
var ErrUnknownFormat = errors.New("unknown document format")

// Format selects the encoding of a document.
type Format int

const (
	JSON Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "json"
}

// FormatFor picks the format from the extension of path.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Document is the on-disk form of a drawing.
type Document struct {
	Version    int          `json:"version" yaml:"version"`
	Width      int          `json:"width" yaml:"width"`
	Height     int          `json:"height" yaml:"height"`
	Background string       `json:"background" yaml:"background"`
	Shapes     []shape.Data `json:"shapes" yaml:"shapes"`
}

// New returns an empty document of the given size on a white background.
func New(width, height int) *Document {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Document{Version: Version, Width: width, Height: height, Background: "#FFFFFF"}
}

// FromShapes builds a document holding shapes.
func FromShapes(width, height int, background color.RGBA, shapes []*shape.Shape) *Document {
	d := New(width, height)
	d.Background = palette.Hex(background)
	d.Shapes = make([]shape.Data, 0, len(shapes))
	for _, s := range shapes {
		d.Shapes = append(d.Shapes, s.Serialize())
	}
	return d
}

// BackgroundColor parses the background, defaulting to white.
func (d *Document) BackgroundColor() (color.RGBA, error) {
	if d.Background == "" {
		return color.RGBA{255, 255, 255, 255}, nil
	}
	c, err := palette.Parse(d.Background)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("background: %w", err)
	}
	return c, nil
}

// Decoded returns the shapes of d. The first shape that fails to decode
// aborts with an error naming its index.
func (d *Document) Decoded() ([]*shape.Shape, error) {
	out := make([]*shape.Shape, 0, len(d.Shapes))
	for i, data := range d.Shapes {
		s, err := shape.Deserialize(data)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// Decode reads a document in format f.
func Decode(r io.Reader, f Format) (*Document, error) {
	d := &Document{}
	switch f {
	case YAML:
		if err := yaml.NewDecoder(r).Decode(d); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(d); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	}
	if d.Width <= 0 {
		d.Width = DefaultWidth
	}
	if d.Height <= 0 {
		d.Height = DefaultHeight
	}
	if d.Version == 0 {
		d.Version = Version
	}
	return d, nil
}

// Encode writes d in format f.
func Encode(w io.Writer, f Format, d *Document) error {
	switch f {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

// Load reads the document at path.
func Load(path string) (*Document, error) {
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	d, err := Decode(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Save writes d to path, creating parent directories as needed.
func Save(path string, d *Document) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(file, f, d); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Marshal returns d as YAML text, used for clipboard copies of shapes.
func Marshal(d *Document) ([]byte, error) {
	var sb strings.Builder
	if err := Encode(&sb, YAML, d); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// Unmarshal parses text produced by Marshal. JSON input is accepted as well
// since it is valid YAML.
func Unmarshal(b []byte) (*Document, error) {
	return Decode(strings.NewReader(string(b)), YAML)
}
