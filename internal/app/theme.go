package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// DigitizerTheme provides a custom theme for the digitizer windows.
type DigitizerTheme struct{}

var _ fyne.Theme = (*DigitizerTheme)(nil)

func (t *DigitizerTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x15, G: 0x65, B: 0xC0, A: 0xFF} // Blue, as the region fill
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0xFF, G: 0xEB, B: 0x3B, A: 0x80} // Yellow, as region edges
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *DigitizerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *DigitizerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *DigitizerTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 13
	default:
		return theme.DefaultTheme().Size(name)
	}
}
