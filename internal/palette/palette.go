// Package palette holds the drawing colors offered by the editor and parses
// color specifications used by documents, config files and the CLI.
package palette

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/colornames"
)

// Color is a palette entry with its display name.
type Color struct {
	Name  string
	Color color.RGBA
}

// None is the fully transparent color. A fill of None is not drawn.
var None = color.RGBA{}

var (
	mu      sync.RWMutex
	entries = []Color{
		{"White", colornames.White},
		{"Black", colornames.Black},
		{"Red", colornames.Red},
		{"Green", colornames.Green},
		{"Blue", colornames.Blue},
		{"Yellow", colornames.Yellow},
		{"Orange", colornames.Orange},
		{"Purple", colornames.Purple},
		{"Gray", colornames.Gray},
	}
)

// Colors returns a copy of the palette.
func Colors() []Color {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Color, len(entries))
	copy(out, entries)
	return out
}

// Len returns the number of palette entries.
func Len() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(entries)
}

// At returns the color at idx, wrapping out of range indexes.
func At(idx int) color.RGBA {
	mu.RLock()
	defer mu.RUnlock()
	if len(entries) == 0 {
		return colornames.Black
	}
	idx %= len(entries)
	if idx < 0 {
		idx += len(entries)
	}
	return entries[idx].Color
}

// Index returns the palette index of c or -1.
func Index(c color.RGBA) int {
	mu.RLock()
	defer mu.RUnlock()
	for i, e := range entries {
		if e.Color == c {
			return i
		}
	}
	return -1
}

// Ensure makes sure c is present in the palette and returns its index.
func Ensure(c color.RGBA, name string) int {
	mu.Lock()
	defer mu.Unlock()
	for idx, e := range entries {
		if e.Color == c {
			if name != "" && e.Name == "" {
				entries[idx].Name = name
			}
			return idx
		}
	}
	if name == "" {
		name = Hex(c)
	}
	entries = append(entries, Color{Name: name, Color: c})
	return len(entries) - 1
}

// Name returns the palette name of c, falling back to its hex form.
func Name(c color.RGBA) string {
	if c.A == 0 {
		return "none"
	}
	mu.RLock()
	defer mu.RUnlock()
	for _, e := range entries {
		if e.Color == c {
			return e.Name
		}
	}
	return Hex(c)
}

// Hex formats c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func Hex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// Parse accepts a palette name, an SVG color name, #RRGGBB, #RRGGBBAA or
// "none".
func Parse(s string) (color.RGBA, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if key == "none" || key == "transparent" {
		return None, nil
	}
	mu.RLock()
	for _, e := range entries {
		if strings.EqualFold(e.Name, key) {
			mu.RUnlock()
			return e.Color, nil
		}
	}
	mu.RUnlock()
	if c, ok := colornames.Map[key]; ok {
		return c, nil
	}
	if strings.HasPrefix(key, "#") {
		return parseHex(key[1:], s)
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q", s)
}

func parseHex(hex, orig string) (color.RGBA, error) {
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want #RRGGBB or #RRGGBBAA", orig)
	}
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", orig, err)
	}
	if len(hex) == 6 {
		return color.RGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 255}, nil
	}
	return color.RGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
}
