package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gamesearch/internal/config"
	"gamesearch/internal/domain"
	"gamesearch/internal/eventbus"
	"gamesearch/internal/logging"
	"gamesearch/internal/search"
	"gamesearch/internal/ui"
	"gamesearch/internal/ui/views"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the whole program; it returns the exit status so deferred cleanup always runs
func run(args []string, stdout, stderr io.Writer) int {
	var (
		configPath  string
		endpoint    string
		role        string
		query       string
		writeConfig bool
	)
	fs := flag.NewFlagSet("gamesearch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&configPath, "config", "", "Path to config file (default "+config.DefaultPath()+")")
	fs.StringVar(&endpoint, "endpoint", "", "Search service base URL (overrides config)")
	fs.StringVar(&role, "role", "", "Role to search as: gamer or developer (overrides config)")
	fs.StringVar(&query, "q", "", "Run a single search, print the results and exit")
	fs.BoolVar(&writeConfig, "write-config", false, "Write the effective config (file plus flags) to the config path and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	oneShot := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "q" {
			oneShot = true
		}
	})

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	logReady := make(chan struct{})
	subscribeDiagnostics(bus, logReady)

	configSvc := config.NewConfigServiceWithBus(bus, configPath)
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	if err := applyOverrides(cfg, endpoint, role); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	closeLog, err := logging.Setup(cfg.Log)
	if err != nil {
		fmt.Fprintf(stderr, "Could not open log file: %v\n", err)
		return 1
	}
	defer closeLog()
	close(logReady)

	if writeConfig {
		if err := configSvc.Save(cfg); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Config written to %s\n", configSvc.Path())
		return 0
	}

	// Cancelled on interrupt; abandons any search still in flight
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := search.NewClient(cfg.Endpoint, search.WithTimeout(time.Duration(cfg.RequestTimeout)))
	slog.Info("starting", "endpoint", client.URL(), "role", cfg.DefaultRole, "one_shot", oneShot)

	if oneShot {
		req := domain.SearchRequest{Query: query, Role: cfg.DefaultRole}
		if err := runOnce(ctx, client, req, stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", search.Reason(err))
			slog.Error("one-shot search failed", "error", err)
			return 1
		}
		return 0
	}

	p := tea.NewProgram(ui.NewModel(ctx, bus, cfg, client), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		slog.Error("error running program", "error", err)
		fmt.Fprintf(stderr, "Error running program: %v\n", err)
		return 1
	}
	slog.Info("UI exited normally")
	return 0
}

// applyOverrides layers command-line values over the loaded config
func applyOverrides(cfg *config.Config, endpoint, role string) error {
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if role != "" {
		r, err := domain.ParseRole(role)
		if err != nil {
			return err
		}
		cfg.DefaultRole = r
	}
	return cfg.Validate()
}

// runOnce performs a single search and prints the results as plain text
func runOnce(ctx context.Context, searcher search.Searcher, req domain.SearchRequest, w io.Writer) error {
	results, err := searcher.Search(ctx, req)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, views.PlainResults(results))
	return err
}

// subscribeDiagnostics logs bus events. Handlers wait for ready so that
// nothing is logged before the log file is open. Query text is never logged.
func subscribeDiagnostics(bus eventbus.EventBus, ready <-chan struct{}) {
	on := func(t eventbus.EventType, log func(eventbus.DomainEvent)) {
		bus.Subscribe(t, func(e eventbus.DomainEvent) {
			<-ready
			log(e)
		})
	}

	on(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigLoadedEvent); ok {
			slog.Debug("config loaded", "path", event.Path, "endpoint", event.Endpoint)
		}
	})
	on(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigSavedEvent); ok {
			slog.Info("config saved", "path", event.Path)
		}
	})
	on(eventbus.EventSearchDispatched, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchDispatchedEvent); ok {
			slog.Debug("diagnostic: search dispatched", "seq", event.Seq, "role", event.Role, "query_len", event.QueryLen)
		}
	})
	on(eventbus.EventSearchSucceeded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchSucceededEvent); ok {
			slog.Debug("diagnostic: search succeeded", "seq", event.Seq, "results", event.Results, "duration", event.Duration)
		}
	})
	on(eventbus.EventSearchFailed, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchFailedEvent); ok {
			slog.Warn("diagnostic: search failed", "seq", event.Seq, "reason", event.Reason, "duration", event.Duration)
		}
	})
	on(eventbus.EventStaleResponseDiscarded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.StaleResponseDiscardedEvent); ok {
			slog.Info("diagnostic: superseded response dropped", "seq", event.Seq, "latest", event.Latest)
		}
	})
	on(eventbus.EventRoleChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.RoleChangedEvent); ok {
			slog.Debug("role changed", "role", event.Role)
		}
	})
}
