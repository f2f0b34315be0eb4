package theme

import (
	"image/color"

	"github.com/example/vectoredit/internal/shape"
)

// Theme defines the colors of the editor window and of the selection
// overlay drawn on top of shapes.
type Theme struct {
	Name string

	// Window
	Background color.RGBA // behind the canvas and panels
	Foreground color.RGBA // text

	// Panels
	StatusBackground   color.RGBA
	ToolbarBackground  color.RGBA
	ShortcutBackground color.RGBA
	ShortcutText       color.RGBA

	// Buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	// Selection overlay
	Selection    color.RGBA
	Handle       color.RGBA
	ActiveHandle color.RGBA
	HandleBorder color.RGBA
	Rotation     color.RGBA
	ControlArm   color.RGBA

	// Canvas backdrop for transparent documents
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	deco := shape.DefaultDecorations()
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		StatusBackground:      color.RGBA{235, 235, 235, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		ShortcutBackground:    color.RGBA{235, 235, 235, 255},
		ShortcutText:          color.RGBA{60, 60, 60, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		Selection:             deco.Selection,
		Handle:                deco.Handle,
		ActiveHandle:          deco.ActiveHandle,
		HandleBorder:          deco.HandleBorder,
		Rotation:              deco.Rotation,
		ControlArm:            deco.ControlArm,
		CheckerLight:          color.RGBA{220, 220, 220, 255},
		CheckerDark:           color.RGBA{192, 192, 192, 255},
	}
}

// Decorations returns the selection overlay colors of t.
func (t *Theme) Decorations() shape.Decorations {
	return shape.Decorations{
		Selection:    t.Selection,
		Handle:       t.Handle,
		ActiveHandle: t.ActiveHandle,
		HandleBorder: t.HandleBorder,
		Rotation:     t.Rotation,
		ControlArm:   t.ControlArm,
	}
}
