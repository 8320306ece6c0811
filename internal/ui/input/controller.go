package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"gamesearch/internal/domain"
)

const placeholder = "Search for news, guides, jobs..."

// Controller owns the query text and the selected role.
// The text input widget is the only storage for the query, so what is
// displayed is always what will be submitted.
type Controller struct {
	textInput textinput.Model
	role      domain.Role
}

// New creates a focused controller with an empty query
func New(role domain.Role) *Controller {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "" // Prompt is handled in the view
	ti.Focus()

	return &Controller{
		textInput: ti,
		role:      role,
	}
}

// Query returns the current query text
func (c *Controller) Query() string {
	return c.textInput.Value()
}

// SetQuery replaces the query text without trimming or validation.
// The input is single-line: tabs and line breaks become spaces, and invalid
// UTF-8 and other control characters are dropped.
func (c *Controller) SetQuery(text string) {
	c.textInput.SetValue(text)
}

// Role returns the selected role
func (c *Controller) Role() domain.Role {
	return c.role
}

// SetRole replaces the selected role
func (c *Controller) SetRole(role domain.Role) {
	c.role = role
}

// ToggleRole switches to the other role and returns it
func (c *Controller) ToggleRole() domain.Role {
	c.role = c.role.Next()
	return c.role
}

// Submit snapshots the current query and role. An empty query is submitted as is.
func (c *Controller) Submit() domain.SearchRequest {
	return domain.SearchRequest{
		Query: c.textInput.Value(),
		Role:  c.role,
	}
}

// Update feeds keystrokes and cursor blinks to the text input
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.textInput, cmd = c.textInput.Update(msg)
	return cmd
}

// SetWidth sets the visible width of the text input
func (c *Controller) SetWidth(width int) {
	if width < 1 {
		width = 1
	}
	c.textInput.Width = width
}

// View renders the text input
func (c *Controller) View() string {
	return c.textInput.View()
}

// Blink returns the cursor blink command to start with
func (c *Controller) Blink() tea.Cmd {
	return textinput.Blink
}
