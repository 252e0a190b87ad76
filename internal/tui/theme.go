package tui

import "github.com/charmbracelet/lipgloss"

// palette is the colour set behind every style. Dark mode swaps the whole
// palette, which is how the dark-mode toggle reaches the presentation layer.
type palette struct {
	text    lipgloss.Color
	muted   lipgloss.Color
	border  lipgloss.Color
	accent  lipgloss.Color
	success lipgloss.Color
	warn    lipgloss.Color
	danger  lipgloss.Color
	tabOff  lipgloss.Color
}

var darkPalette = palette{
	text:    "#cdd6f4",
	muted:   "#a6adc8",
	border:  "#585b70",
	accent:  "#89b4fa",
	success: "#a6e3a1",
	warn:    "#f9e2af",
	danger:  "#f38ba8",
	tabOff:  "#7f849c",
}

var lightPalette = palette{
	text:    "#4c4f69",
	muted:   "#6c6f85",
	border:  "#acb0be",
	accent:  "#1e66f5",
	success: "#40a02b",
	warn:    "#df8e1d",
	danger:  "#d20f39",
	tabOff:  "#9ca0b0",
}

// theme bundles the styles the render functions use.
type theme struct {
	title    lipgloss.Style
	tabOn    lipgloss.Style
	tabOff   lipgloss.Style
	text     lipgloss.Style
	muted    lipgloss.Style
	success  lipgloss.Style
	warn     lipgloss.Style
	danger   lipgloss.Style
	box      lipgloss.Style
	selected lipgloss.Style
}

func newTheme(dark bool) theme {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	return theme{
		title:    lipgloss.NewStyle().Bold(true).Underline(true).Foreground(p.text),
		tabOn:    lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		tabOff:   lipgloss.NewStyle().Foreground(p.tabOff),
		text:     lipgloss.NewStyle().Foreground(p.text),
		muted:    lipgloss.NewStyle().Foreground(p.muted),
		success:  lipgloss.NewStyle().Foreground(p.success),
		warn:     lipgloss.NewStyle().Foreground(p.warn),
		danger:   lipgloss.NewStyle().Foreground(p.danger),
		box:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border).Padding(0, 1),
		selected: lipgloss.NewStyle().Bold(true).Foreground(p.accent),
	}
}
