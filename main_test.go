package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamesearch/internal/config"
	"gamesearch/internal/domain"
	"gamesearch/internal/eventbus"
	"gamesearch/internal/search"
)

func TestApplyOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, applyOverrides(cfg, "https://search.example.com", "developer"))
	assert.Equal(t, "https://search.example.com", cfg.Endpoint)
	assert.Equal(t, domain.RoleDeveloper, cfg.DefaultRole)

	cfg = config.DefaultConfig()
	require.NoError(t, applyOverrides(cfg, "", ""))
	assert.Equal(t, config.DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, domain.RoleGamer, cfg.DefaultRole)

	assert.Error(t, applyOverrides(config.DefaultConfig(), "", "admin"))
	assert.Error(t, applyOverrides(config.DefaultConfig(), "not a url", ""))
}

func TestRunOnce(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		_, _ = io.WriteString(w, `[{"title":"Hollow Knight guide","url":"http://g","source":"IGN","summary":"bosses"}]`)
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := runOnce(context.Background(), search.NewClient(srv.URL), domain.SearchRequest{Query: "hollow", Role: domain.RoleGamer}, &out)
	require.NoError(t, err)

	assert.JSONEq(t, `{"query":"hollow","role":"gamer"}`, gotBody)
	assert.Equal(t, "1. Hollow Knight guide\n   Source: IGN\n   URL: http://g\n   bosses\n\n", out.String())
}

func TestRunOnceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error": "Query is missing"}`)
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := runOnce(context.Background(), search.NewClient(srv.URL), domain.SearchRequest{Query: "", Role: domain.RoleGamer}, &out)
	require.Error(t, err)
	assert.Equal(t, "Query is missing", search.Reason(err))
	assert.Empty(t, out.String())
}

// isolate keeps config and log files out of the developer's home
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	return dir
}

func TestRunWriteConfig(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "gamesearch.toml")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", path, "-endpoint", "https://search.example.com", "-role", "developer", "-write-config"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), path)

	cfg, err := config.NewConfigServiceAt(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "https://search.example.com", cfg.Endpoint)
	assert.Equal(t, domain.RoleDeveloper, cfg.DefaultRole)
}

func TestRunOneShot(t *testing.T) {
	dir := isolate(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"title":"Celeste speedrun","url":"http://c","source":"Polygon","summary":"tech"}]`)
	}))
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", filepath.Join(dir, "missing.toml"), "-endpoint", srv.URL, "-q", "celeste"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "1. Celeste speedrun")
}

func TestRunExitCodes(t *testing.T) {
	dir := isolate(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error": "Query is missing"}`)
	}))
	defer srv.Close()
	cfgPath := filepath.Join(dir, "missing.toml")

	tests := []struct {
		name   string
		args   []string
		code   int
		stderr string
	}{
		{"help", []string{"-h"}, 0, "-write-config"},
		{"unknown flag", []string{"-nope"}, 2, "-nope"},
		{"bad role", []string{"-config", cfgPath, "-role", "admin"}, 2, "invalid role"},
		{"backend rejects", []string{"-config", cfgPath, "-endpoint", srv.URL, "-q", ""}, 1, "Query is missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.code, run(tt.args, &stdout, &stderr))
			assert.Contains(t, stderr.String(), tt.stderr)
		})
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestDiagnosticsWaitForLogSetup(t *testing.T) {
	isolate(t)
	out := &lockedBuffer{}
	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})))

	bus := eventbus.New()
	defer bus.Close()
	ready := make(chan struct{})
	subscribeDiagnostics(bus, ready)

	bus.Publish(eventbus.ConfigLoadedEvent{Path: "/tmp/config.toml", Endpoint: "http://localhost:5001"})
	bus.Publish(eventbus.SearchDispatchedEvent{Seq: 1, Role: domain.RoleGamer, QueryLen: 5})
	bus.Publish(eventbus.SearchSucceededEvent{Seq: 1, Results: 3})

	time.Sleep(50 * time.Millisecond)
	assert.NotContains(t, out.String(), "config loaded")

	close(ready)
	require.Eventually(t, func() bool {
		s := out.String()
		return strings.Contains(s, "config loaded") &&
			strings.Contains(s, "search dispatched") &&
			strings.Contains(s, "search succeeded")
	}, time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), "query_len=5")
}
