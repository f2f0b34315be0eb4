package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/vectoredit/internal/palette"
	"github.com/example/vectoredit/internal/shape"
	"github.com/example/vectoredit/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Export bool
	Copy   bool
}

// Editor holds the defaults for new drawings and new shapes.
type Editor struct {
	Fill        color.RGBA
	Stroke      color.RGBA
	StrokeWidth float64
	Sides       int
	Background  color.RGBA
	Width       int
	Height      int
	Examples    bool
}

// Style returns the style new shapes are created with.
func (e Editor) Style() shape.Style {
	return shape.Style{Fill: e.Fill, Stroke: e.Stroke, StrokeWidth: e.StrokeWidth}
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Notify  Notify
	Editor  Editor
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	st := shape.DefaultStyle()
	return &Config{
		Theme: "", // empty lets the env var or the built-in theme apply
		Editor: Editor{
			Fill:        st.Fill,
			Stroke:      st.Stroke,
			StrokeWidth: st.StrokeWidth,
			Sides:       shape.DefaultSides,
			Background:  color.RGBA{255, 255, 255, 255},
			Width:       800,
			Height:      600,
			Examples:    true,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	e := c.Editor
	sb.WriteString("[editor]\n")
	fmt.Fprintf(&sb, "fill = %s\n", palette.Name(e.Fill))
	fmt.Fprintf(&sb, "stroke = %s\n", palette.Name(e.Stroke))
	fmt.Fprintf(&sb, "stroke_width = %g\n", e.StrokeWidth)
	fmt.Fprintf(&sb, "sides = %d\n", e.Sides)
	fmt.Fprintf(&sb, "background = %s\n", palette.Name(e.Background))
	fmt.Fprintf(&sb, "width = %d\n", e.Width)
	fmt.Fprintf(&sb, "height = %d\n", e.Height)
	fmt.Fprintf(&sb, "examples = %v\n", e.Examples)
	sb.WriteString("\n")

	// sorted for stable output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, palette.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
