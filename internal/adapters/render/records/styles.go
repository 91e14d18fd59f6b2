package records

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	column   lipgloss.Style
	cell     lipgloss.Style
	normal   lipgloss.Style
	elevated lipgloss.Style
	symptom  lipgloss.Style
	current  lipgloss.Style
	empty    lipgloss.Style
	section  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		column:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Underline(true),
		cell:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		normal:   lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		elevated: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		symptom:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		current:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		empty:    lipgloss.NewStyle().Faint(true),
		section:  lipgloss.NewStyle().MarginTop(1),
	}
}
