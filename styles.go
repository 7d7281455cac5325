package grantview

// ColorPair represents a foreground and background color combination.
// Colors should be hex strings in "#RRGGBB" format (e.g., "#ff0000" for red).
// Empty strings are valid and indicate no color override (use terminal default).
type ColorPair struct {
	Foreground string
	Background string
}

// Palette holds the semantic colors of a theme.
type Palette struct {
	Background string
	Foreground string
	Muted      string
	Surface    string
	Border     string

	// Status colors
	Success string
	Warning string
	Error   string
	Info    string

	// Accents
	Cyan   string
	Purple string
	Pink   string
}

// Styles contains color pairs for the visual elements of the results views.
type Styles struct {
	Title       ColorPair // Page and section titles
	Score       ColorPair // Overall score next to the badge
	ActiveTab   ColorPair // Selected tab label
	InactiveTab ColorPair // Other tab labels
	Bar         ColorPair // Filled part of a chart bar
	BarTrack    ColorPair // Unfilled part of a chart bar
	Strength    ColorPair // Strength statements
	Weakness    ColorPair // Weakness statements
	Notice      ColorPair // Status line notices
}

// Theme provides styles and palette for rendering.
// Different implementations can provide light/dark variants.
type Theme interface {
	Styles() Styles
	Palette() Palette
}
