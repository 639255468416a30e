package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/starpusher/internal/core"
)

// Theme contains the styles used by the menus and the board.
type Theme struct {
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemSolved  lipgloss.Style
	MenuDescription lipgloss.Style
	MenuControls    lipgloss.Style

	// Board maps screen cell colours to terminal styles.
	// Colours missing from the map render unstyled.
	Board map[core.Color]lipgloss.Style
}

func fg(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:       fg("226").Bold(true), // Star yellow
		MenuItemNormal:  fg("252"),
		MenuItemActive:  fg("51").Bold(true),
		MenuItemSolved:  fg("46"),
		MenuDescription: fg("245"),
		MenuControls:    fg("241"),
		Board: map[core.Color]lipgloss.Style{
			core.ColorRed:          fg("1"),
			core.ColorGreen:        fg("2"),
			core.ColorYellow:       fg("3"),
			core.ColorBlue:         fg("4"),
			core.ColorMagenta:      fg("5"),
			core.ColorCyan:         fg("6"),
			core.ColorWhite:        fg("7"),
			core.ColorBrightRed:    fg("9"),
			core.ColorBrightGreen:  fg("10"),
			core.ColorBrightYellow: fg("11"),
			core.ColorBrightBlue:   fg("12"),
			core.ColorBrightCyan:   fg("14"),
			core.ColorBrightWhite:  fg("15"),
			core.ColorOrange:       fg("208"),
			core.ColorGray:         fg("245"),
			core.ColorDarkGray:     fg("238"),
			core.ColorBrown:        fg("130"),
		},
	}
}

// MonochromeTheme returns a grayscale theme. Stars and goals stay apart by
// weight rather than hue.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.MenuTitle = fg("255").Bold(true)
	theme.MenuItemActive = fg("255").Bold(true)
	theme.MenuItemSolved = fg("250")

	theme.Board = map[core.Color]lipgloss.Style{
		core.ColorGray:     fg("245"),
		core.ColorDarkGray: fg("238"),
		core.ColorBrown:    fg("242"),
		core.ColorGreen:    fg("242"),
		core.ColorRed:      fg("250"),
	}
	for _, c := range []core.Color{
		core.ColorYellow, core.ColorBrightGreen, core.ColorBrightCyan,
		core.ColorBrightWhite, core.ColorBrightYellow,
	} {
		theme.Board[c] = fg("255").Bold(true)
	}
	return theme
}

// cellStyle returns the board style for a colour.
func (t Theme) cellStyle(c core.Color) lipgloss.Style {
	if style, ok := t.Board[c]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Global theme variable (can be changed at runtime)
var menuTheme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(theme Theme) {
	menuTheme = theme
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return menuTheme
}
