// Package theme defines the colour palette shared by the selection
// overlay and the annotation editor, with named themes loadable from
// embedded defaults, user files or system directories.
package theme

import (
	"image/color"
)

// Theme is the full colour set for the UI. Scrim and LabelBack carry
// straight (non-premultiplied) alpha; everything else is opaque.
type Theme struct {
	Name string

	// Selection overlay
	Scrim           color.RGBA
	SelectionBorder color.RGBA
	SelectionHandle color.RGBA
	LabelText       color.RGBA
	LabelBack       color.RGBA

	// Editor chrome
	Background        color.RGBA
	Foreground        color.RGBA
	ToolbarBackground color.RGBA
	ButtonBackground  color.RGBA
	ButtonHover       color.RGBA
	ButtonActive      color.RGBA
	ButtonText        color.RGBA
	ButtonBorder      color.RGBA

	// Canvas backdrop
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the built-in light theme used when nothing is
// configured.
func Default() *Theme {
	return &Theme{
		Name:              "Default",
		Scrim:             color.RGBA{0, 0, 0, 100},
		SelectionBorder:   color.RGBA{0, 122, 204, 255},
		SelectionHandle:   color.RGBA{0, 122, 204, 255},
		LabelText:         color.RGBA{255, 255, 255, 255},
		LabelBack:         color.RGBA{0, 0, 0, 180},
		Background:        color.RGBA{220, 220, 220, 255},
		Foreground:        color.RGBA{0, 0, 0, 255},
		ToolbarBackground: color.RGBA{220, 220, 220, 255},
		ButtonBackground:  color.RGBA{200, 200, 200, 255},
		ButtonHover:       color.RGBA{180, 180, 180, 255},
		ButtonActive:      color.RGBA{150, 150, 150, 255},
		ButtonText:        color.RGBA{0, 0, 0, 255},
		ButtonBorder:      color.RGBA{0, 0, 0, 255},
		CheckerLight:      color.RGBA{220, 220, 220, 255},
		CheckerDark:       color.RGBA{192, 192, 192, 255},
	}
}
