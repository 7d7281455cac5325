// Package lipgloss provides theme implementations using the Lipgloss styling library.
package lipgloss

import (
	"fmt"

	"github.com/fwojciec/grantview"
)

// Compile-time interface verification.
var _ grantview.Theme = (*Theme)(nil)

// Theme implements grantview.Theme with Lipgloss-compatible colors.
type Theme struct {
	styles  grantview.Styles
	palette grantview.Palette
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() grantview.Styles {
	return t.styles
}

// Palette returns the semantic color palette for this theme.
func (t *Theme) Palette() grantview.Palette {
	return t.palette
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// ByName returns the theme called "dark" or "light".
func ByName(name string) (*Theme, error) {
	switch name {
	case "", "dark":
		return DarkTheme(), nil
	case "light":
		return LightTheme(), nil
	}
	return nil, fmt.Errorf("unknown theme %q", name)
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
func DarkTheme() *Theme {
	p := grantview.Palette{
		// Base colors (Catppuccin Mocha)
		Background: "#1e1e2e",
		Foreground: "#cdd6f4",
		Muted:      "#6c7086",
		Surface:    "#313244",
		Border:     "#45475a",

		Success: "#a6e3a1",
		Warning: "#f9e2af",
		Error:   "#f38ba8",
		Info:    "#89b4fa",

		Cyan:   "#89dceb",
		Purple: "#cba6f7",
		Pink:   "#f5c2e7",
	}
	return &Theme{
		palette: p,
		styles: grantview.Styles{
			Title:       grantview.ColorPair{Foreground: p.Purple},
			Score:       grantview.ColorPair{Foreground: p.Pink},
			ActiveTab:   grantview.ColorPair{Foreground: p.Background, Background: p.Purple},
			InactiveTab: grantview.ColorPair{Foreground: "#a6adc8", Background: p.Surface},
			Bar:         grantview.ColorPair{Foreground: p.Purple},
			BarTrack:    grantview.ColorPair{Foreground: p.Border},
			Strength:    grantview.ColorPair{Foreground: p.Success},
			Weakness:    grantview.ColorPair{Foreground: p.Warning},
			Notice:      grantview.ColorPair{Foreground: p.Cyan},
		},
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	p := grantview.Palette{
		// Base colors (Catppuccin Latte)
		Background: "#eff1f5",
		Foreground: "#4c4f69",
		Muted:      "#9ca0b0",
		Surface:    "#e6e9ef",
		Border:     "#bcc0cc",

		Success: "#40a02b",
		Warning: "#df8e1d",
		Error:   "#d20f39",
		Info:    "#1e66f5",

		Cyan:   "#04a5e5",
		Purple: "#8839ef",
		Pink:   "#ea76cb",
	}
	return &Theme{
		palette: p,
		styles: grantview.Styles{
			Title:       grantview.ColorPair{Foreground: p.Purple},
			Score:       grantview.ColorPair{Foreground: p.Pink},
			ActiveTab:   grantview.ColorPair{Foreground: "#ffffff", Background: p.Purple},
			InactiveTab: grantview.ColorPair{Foreground: "#6c6f85", Background: p.Surface},
			Bar:         grantview.ColorPair{Foreground: p.Purple},
			BarTrack:    grantview.ColorPair{Foreground: p.Border},
			Strength:    grantview.ColorPair{Foreground: p.Success},
			Weakness:    grantview.ColorPair{Foreground: p.Warning},
			Notice:      grantview.ColorPair{Foreground: p.Cyan},
		},
	}
}
