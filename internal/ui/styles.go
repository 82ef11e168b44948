package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
// - Default (white/black): primary text
// - Accent (soft purple #A78BFA): file paths, dataset identifiers
// - Muted (gray): secondary info, hints
// - No colored success/error/warning - use unicode symbols only

var (
	// Accent style for file paths and dataset identifiers
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for section headers
	Bold = lipgloss.NewStyle().Bold(true)
)
