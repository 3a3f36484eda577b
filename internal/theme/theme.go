// Package theme holds the colour palette of the overlay chrome.
package theme

import (
	"image/color"
)

// Theme defines the colours of the toolbar and the text field drawn by the
// overlay host. The annotation colours themselves are fixed per tool.
type Theme struct {
	Name string

	// Shown where no backdrop is loaded.
	Backdrop color.RGBA

	// Toolbar
	ToolbarBackground     color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonActive          color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA
	// Tint over the toolbar while annotation is disabled.
	DisabledTint color.RGBA

	// Open text field
	FieldBackground color.RGBA
	FieldBorder     color.RGBA
	FieldText       color.RGBA
	Caret           color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Backdrop:              color.RGBA{240, 240, 240, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonActive:          color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		DisabledTint:          color.RGBA{255, 255, 255, 128},
		FieldBackground:       color.RGBA{255, 255, 255, 200},
		FieldBorder:           color.RGBA{90, 90, 90, 255},
		FieldText:             color.RGBA{0, 0, 0, 255},
		Caret:                 color.RGBA{0, 0, 0, 255},
	}
}
