package bubbletea

import "github.com/charmbracelet/bubbles/key"

// AppKeyMap defines the bindings available on every screen.
type AppKeyMap struct {
	Upload   key.Binding
	Settings key.Binding
	Quit     key.Binding
}

// DefaultAppKeyMap returns the global key bindings.
func DefaultAppKeyMap() AppKeyMap {
	return AppKeyMap{
		Upload: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new evaluation"),
		),
		Settings: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "settings"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// UploadKeyMap defines the key bindings for the upload screen.
type UploadKeyMap struct {
	Submit      key.Binding
	Remove      key.Binding
	Browse      key.Binding
	EditPath    key.Binding
	Cancel      key.Binding
	CloseBrowse key.Binding
}

// DefaultUploadKeyMap returns the default upload bindings.
func DefaultUploadKeyMap() UploadKeyMap {
	return UploadKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "evaluate"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove file"),
		),
		Browse: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "browse"),
		),
		EditPath: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "type a path"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		CloseBrowse: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "close browser"),
		),
	}
}

// ResultsKeyMap defines the key bindings for the results screen.
type ResultsKeyMap struct {
	Up           key.Binding
	Down         key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	GotoTop      key.Binding
	GotoBottom   key.Binding
	NextTab      key.Binding
	PrevTab      key.Binding
	Visual       key.Binding
	Detailed     key.Binding
	Critique     key.Binding
	Budget       key.Binding
	Report       key.Binding
}

// DefaultResultsKeyMap returns vim-style scrolling plus tab and report bindings.
func DefaultResultsKeyMap() ResultsKeyMap {
	return ResultsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "go to top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous tab"),
		),
		Visual: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "dashboard"),
		),
		Detailed: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "scoring"),
		),
		Critique: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "critique"),
		),
		Budget: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "budget"),
		),
		Report: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "report link"),
		),
	}
}

// SettingsKeyMap defines the key bindings for the settings screen.
type SettingsKeyMap struct {
	Next key.Binding
	Prev key.Binding
	Save key.Binding
}

// DefaultSettingsKeyMap returns the default settings bindings.
func DefaultSettingsKeyMap() SettingsKeyMap {
	return SettingsKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s", "enter"),
			key.WithHelp("ctrl+s", "save"),
		),
	}
}
