package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"gamesearch/internal/domain"
	"gamesearch/internal/ui/state"
)

const (
	appTitle      = "Personalized Gaming Search"
	privacyNotice = "We don't log your searches. No ads, no trackers."
	noResultsText = "No results."
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width       int
	Height      int
	InputView   string // rendered text input, bound to the query text
	Role        domain.Role
	Request     state.RequestState
	SpinnerView string
	HelpView    string
}

// ResultBlock is the display form of one search result
type ResultBlock struct {
	LinkText   string
	Href       string
	SourceLine string
	Summary    string
}

// View is what the screen shows, derived from ViewState and nothing else
type View struct {
	Role     domain.Role
	Loading  bool
	Results  []ResultBlock
	NoResult bool   // settled successfully with an empty result set
	Error    string // settled with a failure
}

// BuildView derives the screen contents from the current state
func BuildView(s ViewState) View {
	v := View{
		Role:    s.Role,
		Loading: state.IsPending(s.Request),
	}

	switch req := s.Request.(type) {
	case state.Success:
		v.Results = make([]ResultBlock, 0, len(req.Results))
		for _, r := range req.Results {
			v.Results = append(v.Results, ResultBlock{
				LinkText:   r.Title,
				Href:       r.URL,
				SourceLine: "Source: " + r.Source,
				Summary:    r.Summary,
			})
		}
		v.NoResult = len(req.Results) == 0
	case state.Failure:
		v.Error = req.Reason
	}

	return v
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view
func (r *Renderer) Render(s ViewState) string {
	v := BuildView(s)
	width := s.Width
	if width <= 0 {
		width = 80
	}
	contentWidth := width - 4 // main container padding

	content := &strings.Builder{}

	content.WriteString(r.styles.Title.Render(appTitle))
	content.WriteString("\n")
	content.WriteString(r.styles.Notice.Render(privacyNotice))
	content.WriteString("\n")

	content.WriteString(r.renderRoles(v.Role))
	content.WriteString("\n")
	content.WriteString(r.styles.InputBox.Width(contentWidth - 2).Render(
		r.styles.Prompt.Render("Search: ") + s.InputView,
	))
	content.WriteString("\n\n")

	switch {
	case v.Loading:
		content.WriteString(r.styles.Loading.Render(strings.TrimSpace(s.SpinnerView + " Loading...")))
		content.WriteString("\n")
	case v.Error != "":
		content.WriteString(r.styles.Error.Render("Error: " + v.Error))
		content.WriteString("\n")
	case v.NoResult:
		content.WriteString(r.styles.Empty.Render(noResultsText))
		content.WriteString("\n")
	}

	for i, block := range v.Results {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(r.renderResult(block, contentWidth))
		content.WriteString("\n")
	}

	if s.HelpView != "" {
		content.WriteString(r.styles.Help.Render(s.HelpView))
	}

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderRoles(selected domain.Role) string {
	parts := make([]string, 0, len(domain.Roles))
	for _, role := range domain.Roles {
		if role == selected {
			parts = append(parts, r.styles.RoleActive.Render(role.Label()))
		} else {
			parts = append(parts, r.styles.RoleInactive.Render(role.Label()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (r *Renderer) renderResult(b ResultBlock, width int) string {
	title := r.styles.ResultTitle.Render(b.LinkText)
	if b.Href != "" {
		title = Hyperlink(b.Href, title)
	}

	lines := []string{
		title,
		r.styles.ResultSource.Render(b.SourceLine),
	}
	if b.Summary != "" {
		lines = append(lines, r.styles.Summary.Width(width).Render(b.Summary))
	}
	return strings.Join(lines, "\n")
}

// Hyperlink wraps text in an OSC 8 link so supporting terminals open href on click
func Hyperlink(href, text string) string {
	return ansi.SetHyperlink(href) + text + ansi.ResetHyperlink()
}

// PlainResults formats results for non-interactive output
func PlainResults(results domain.ResultSet) string {
	if len(results) == 0 {
		return noResultsText + "\n"
	}

	b := &strings.Builder{}
	for i, res := range results {
		fmt.Fprintf(b, "%d. %s\n", i+1, res.Title)
		fmt.Fprintf(b, "   Source: %s\n", res.Source)
		fmt.Fprintf(b, "   URL: %s\n", res.URL)
		if res.Summary != "" {
			fmt.Fprintf(b, "   %s\n", res.Summary)
		}
		b.WriteString("\n")
	}
	return b.String()
}
