package ui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gamesearch/internal/config"
	"gamesearch/internal/domain"
	"gamesearch/internal/eventbus"
	"gamesearch/internal/search"
	"gamesearch/internal/ui/input"
	"gamesearch/internal/ui/lifecycle"
	"gamesearch/internal/ui/state"
	"gamesearch/internal/ui/views"
)

// Model is the Bubble Tea model. Update is the only place state changes:
// key messages go to the input controller, settle messages to the lifecycle manager.
type Model struct {
	bus    eventbus.EventBus
	config *config.Config

	width   int
	height  int
	help    help.Model
	keys    keyMap
	spinner spinner.Model

	input     *input.Controller
	lifecycle *lifecycle.Manager
	renderer  *views.Renderer

	newPager func(results domain.ResultSet) tea.ExecCommand
}

// NewModel creates a new UI model. Searches run under ctx.
func NewModel(ctx context.Context, bus eventbus.EventBus, cfg *config.Config, searcher search.Searcher) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

	return &Model{
		bus:     bus,
		config:  cfg,
		help:    help.New(),
		keys:    newKeyMap(),
		spinner: sp,
		input:   input.New(cfg.DefaultRole),
		lifecycle: lifecycle.NewManager(ctx, searcher, bus, lifecycle.Options{
			DiscardStale: cfg.DiscardStale,
		}),
		renderer: views.NewRenderer(),
		newPager: func(results domain.ResultSet) tea.ExecCommand {
			return newResultsPager(results)
		},
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.input.Blink()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// border, padding and the "Search: " prompt
		m.input.SetWidth(msg.Width - 4 - 4 - len("Search: "))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case lifecycle.SettledMsg:
		m.lifecycle.Settle(msg)
		return m, nil

	case spinner.TickMsg:
		if !state.IsPending(m.lifecycle.State()) {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerClosedMsg:
		if msg.err != nil {
			slog.Error("pager failed", "error", msg.err)
		}
		return m, nil
	}

	return m, m.input.Update(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()

	case key.Matches(msg, m.keys.ToggleRole):
		role := m.input.ToggleRole()
		if m.bus != nil {
			m.bus.Publish(eventbus.RoleChangedEvent{Role: role})
		}
		return m, nil

	case key.Matches(msg, m.keys.Pager):
		results := state.Results(m.lifecycle.State())
		if len(results) == 0 {
			return m, nil
		}
		return m, openPager(m.newPager(results))
	}

	return m, m.input.Update(msg)
}

// submit hands the current query and role to the lifecycle manager
func (m *Model) submit() tea.Cmd {
	wasPending := state.IsPending(m.lifecycle.State())
	cmd := m.lifecycle.Dispatch(m.input.Submit())
	if wasPending {
		return cmd
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

// View renders the UI
func (m *Model) View() string {
	s := views.ViewState{
		Width:       m.width,
		Height:      m.height,
		InputView:   m.input.View(),
		Role:        m.input.Role(),
		Request:     m.lifecycle.State(),
		SpinnerView: m.spinner.View(),
	}
	if m.config.UISettings.ShowHelp {
		s.HelpView = m.help.View(m.keys)
	}
	return m.renderer.Render(s)
}
