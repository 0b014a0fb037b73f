package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// slideshowTheme wraps an existing theme and paints the window background
// black so that letterboxing around images disappears.
type slideshowTheme struct {
	fyne.Theme
}

var _ fyne.Theme = (*slideshowTheme)(nil)

// Color overrides the background; everything else comes from the base theme.
func (t *slideshowTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if name == theme.ColorNameBackground {
		return color.Black
	}
	return t.Theme.Color(name, theme.VariantDark)
}

// NewSlideshowTheme creates the theme wrapper around baseTheme.
func NewSlideshowTheme(baseTheme fyne.Theme) fyne.Theme {
	return &slideshowTheme{Theme: baseTheme}
}
