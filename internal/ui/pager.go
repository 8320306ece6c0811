package ui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"gamesearch/internal/domain"
	"gamesearch/internal/ui/views"
)

// resultsPager shows a result set in the ov pager. It satisfies tea.ExecCommand
// so Bubble Tea hands over the terminal while it runs.
type resultsPager struct {
	content string
	run     func(r io.Reader) error
}

func newResultsPager(results domain.ResultSet) *resultsPager {
	return &resultsPager{
		content: views.PlainResults(results),
		run:     runOv,
	}
}

func (p *resultsPager) Run() error {
	return p.run(strings.NewReader(p.content))
}

// ov talks to the terminal through tcell, so the standard streams are not used
func (p *resultsPager) SetStdin(io.Reader)  {}
func (p *resultsPager) SetStdout(io.Writer) {}
func (p *resultsPager) SetStderr(io.Writer) {}

func runOv(r io.Reader) error {
	root, err := oviewer.NewRoot(r)
	if err != nil {
		return fmt.Errorf("failed to open pager: %w", err)
	}
	return root.Run()
}

// openPager suspends the UI and pages the results
func openPager(p tea.ExecCommand) tea.Cmd {
	return tea.Exec(p, func(err error) tea.Msg {
		return pagerClosedMsg{err: err}
	})
}
