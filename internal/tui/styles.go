// SPDX-License-Identifier: Unlicense OR MIT

package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorSwipe  = lipgloss.Color("#EF4444")
	colorPress  = lipgloss.Color("#10B981")
	colorSquare = lipgloss.Color("#6366F1")
	colorMuted  = lipgloss.Color("#6B7280")
	colorTitle  = lipgloss.Color("#7C3AED")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorTitle)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	swipeStyle  = lipgloss.NewStyle().Foreground(colorSwipe)
	pressStyle  = lipgloss.NewStyle().Foreground(colorPress)
	squareStyle = lipgloss.NewStyle().Foreground(colorSquare)
	statusStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true, false, false, false).
			BorderForeground(colorMuted)
)
