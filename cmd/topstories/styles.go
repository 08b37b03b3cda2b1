package main

import "github.com/charmbracelet/lipgloss"

// Color palette
const (
	colorPrimary = "#7D56F4"
	colorSuccess = "#04B575"
	colorError   = "#FF0000"
	colorInfo    = "#626262"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPrimary)).
			MarginTop(1)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSuccess))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorError))

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorInfo)).
			PaddingLeft(2)
)
