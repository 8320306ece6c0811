// Package lifecycle owns the request state machine: it issues searches and
// applies their outcomes. Every method must be called from the Bubble Tea
// update loop; the only concurrent part is the tea.Cmd returned by Dispatch.
package lifecycle

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gamesearch/internal/domain"
	"gamesearch/internal/eventbus"
	"gamesearch/internal/search"
	"gamesearch/internal/ui/state"
)

// SettledMsg carries the outcome of one dispatched request back to the update loop
type SettledMsg struct {
	Seq     uint64
	Request domain.SearchRequest
	Results domain.ResultSet
	Err     error
	Elapsed time.Duration
}

// Options configures a Manager
type Options struct {
	// DiscardStale drops outcomes of requests that were superseded by a newer
	// submission. When false, whichever outcome arrives last is displayed.
	DiscardStale bool
}

// Manager is the single writer of the request state
type Manager struct {
	ctx      context.Context
	searcher search.Searcher
	bus      eventbus.EventBus
	opts     Options

	current state.RequestState
	seq     uint64
}

// NewManager creates a manager in the Idle state. Requests run under ctx,
// so cancelling it abandons everything still in flight.
func NewManager(ctx context.Context, searcher search.Searcher, bus eventbus.EventBus, opts Options) *Manager {
	return &Manager{
		ctx:      ctx,
		searcher: searcher,
		bus:      bus,
		opts:     opts,
		current:  state.Idle{},
	}
}

// State returns the current request state
func (m *Manager) State() state.RequestState {
	return m.current
}

// Latest returns the sequence number of the most recent dispatch
func (m *Manager) Latest() uint64 {
	return m.seq
}

// Dispatch moves to Pending, dropping any displayed results, and returns the
// command that performs the call. Earlier requests are neither cancelled nor awaited.
func (m *Manager) Dispatch(req domain.SearchRequest) tea.Cmd {
	m.seq++
	seq := m.seq
	m.current = state.Pending{Seq: seq}

	slog.Info("search dispatched", "seq", seq, "role", req.Role, "query_len", len(req.Query))
	m.publish(eventbus.SearchDispatchedEvent{Seq: seq, Role: req.Role, QueryLen: len(req.Query)})

	ctx, searcher := m.ctx, m.searcher
	return func() tea.Msg {
		start := time.Now()
		results, err := searcher.Search(ctx, req)
		return SettledMsg{
			Seq:     seq,
			Request: req,
			Results: results,
			Err:     err,
			Elapsed: time.Since(start),
		}
	}
}

// Settle applies an outcome and reports whether it changed the state.
// The result is always a terminal state, never Pending.
func (m *Manager) Settle(msg SettledMsg) bool {
	if m.opts.DiscardStale && msg.Seq != m.seq {
		slog.Debug("stale search outcome discarded", "seq", msg.Seq, "latest", m.seq)
		m.publish(eventbus.StaleResponseDiscardedEvent{Seq: msg.Seq, Latest: m.seq})
		return false
	}

	if msg.Err != nil {
		reason := search.Reason(msg.Err)
		m.current = state.Failure{Seq: msg.Seq, Reason: reason, Err: msg.Err}

		slog.Debug("search failed", "seq", msg.Seq, "error", msg.Err, "elapsed", msg.Elapsed)
		m.publish(eventbus.SearchFailedEvent{Seq: msg.Seq, Reason: reason, Err: msg.Err, Duration: msg.Elapsed})
		return true
	}

	results := msg.Results
	if results == nil {
		results = domain.ResultSet{}
	}
	m.current = state.Success{Seq: msg.Seq, Results: results}

	slog.Info("search settled", "seq", msg.Seq, "results", len(results), "elapsed", msg.Elapsed)
	m.publish(eventbus.SearchSucceededEvent{Seq: msg.Seq, Results: len(results), Duration: msg.Elapsed})
	return true
}

func (m *Manager) publish(event eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(event)
	}
}
