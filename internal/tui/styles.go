package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	primaryColor = lipgloss.Color("#7C3AED") // Purple
	accentColor  = lipgloss.Color("#F59E0B") // Amber
	mutedColor   = lipgloss.Color("#6B7280") // Gray
	textColor    = lipgloss.Color("#F3F4F6") // Light gray
	markColor    = lipgloss.Color("#10B981") // Green

	// Title bar
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	DirStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	// File list
	ListItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	SelectedListItemStyle = lipgloss.NewStyle().
				Foreground(textColor).
				Background(primaryColor).
				Bold(true).
				PaddingLeft(0)

	MarkedItemStyle = lipgloss.NewStyle().
			Foreground(markColor).
			Bold(true)

	// Status preview line
	StatusStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	// Edit form
	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(14)

	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true).
				Width(14)

	BatchBannerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 2)

	FocusedButtonStyle = lipgloss.NewStyle().
				Foreground(textColor).
				Background(primaryColor).
				Bold(true).
				Padding(0, 2)

	SuggestionStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			PaddingLeft(14)
)
