package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title        lipgloss.Style
	Notice       lipgloss.Style
	Prompt       lipgloss.Style
	InputBox     lipgloss.Style
	RoleActive   lipgloss.Style
	RoleInactive lipgloss.Style
	Loading      lipgloss.Style
	ResultTitle  lipgloss.Style
	ResultSource lipgloss.Style
	Summary      lipgloss.Style
	Empty        lipgloss.Style
	Error        lipgloss.Style
	Help         lipgloss.Style
	Main         lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Notice: lipgloss.NewStyle().Faint(true).MarginBottom(1),
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		InputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		RoleActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("78")).
			Padding(0, 1),
		RoleInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1),
		Loading:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		ResultTitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true).Underline(true),
		ResultSource: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Summary:      lipgloss.NewStyle(),
		Empty:        lipgloss.NewStyle().Faint(true),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:         lipgloss.NewStyle().Faint(true).MarginTop(1),
		Main:         lipgloss.NewStyle().Padding(1, 2),
	}
}
