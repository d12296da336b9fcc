package ui

import "github.com/charmbracelet/lipgloss"

// Styles collects the lipgloss styles shared by all pages.
type Styles struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Card       lipgloss.Style
	CardName   lipgloss.Style
	CardPrice  lipgloss.Style
	Category   lipgloss.Style
	Accept     lipgloss.Style
	Reject     lipgloss.Style
	Help       lipgloss.Style
	Error      lipgloss.Style
	Selected   lipgloss.Style
	GroupTotal lipgloss.Style
}

// DefaultStyles returns the standard color scheme.
func DefaultStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Subtitle:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Card:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 3).Width(44),
		CardName:   lipgloss.NewStyle().Bold(true),
		CardPrice:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114")),
		Category:   lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("39")),
		Accept:     lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		Reject:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Selected:   lipgloss.NewStyle().Reverse(true),
		GroupTotal: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
	}
}

// UserDot renders a colored membership dot for a table user.
func UserDot(hexColor string) string {
	if hexColor == "" {
		return "●"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor)).Render("●")
}
