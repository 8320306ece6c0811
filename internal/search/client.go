// Package search is the HTTP transport to the remote search service.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gamesearch/internal/domain"
)

const maxResponseBytes = 8 << 20

// Searcher runs one search against the service
type Searcher interface {
	Search(ctx context.Context, req domain.SearchRequest) (domain.ResultSet, error)
}

var _ Searcher = (*Client)(nil)

// Client posts search requests to {endpoint}/search
type Client struct {
	url        string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds each call. Zero leaves calls unbounded.
// The http.Client passed with WithHTTPClient is never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a client for the service at endpoint (scheme and host, optional base path)
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		url:        strings.TrimRight(endpoint, "/") + "/search",
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// URL returns the full search URL
func (c *Client) URL() string {
	return c.url
}

// Search sends exactly one POST and returns the results in the order received.
// Failures are *TransportError, *StatusError or *MalformedResponseError.
func (c *Client) Search(ctx context.Context, req domain.SearchRequest) (domain.ResultSet, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	return decodeResults(data)
}

func decodeResults(data []byte) (domain.ResultSet, error) {
	var results domain.ResultSet
	if err := json.Unmarshal(data, &results); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &MalformedResponseError{Err: fmt.Errorf("expected a JSON array of results: %w", err)}
		}
		return nil, &MalformedResponseError{Err: err}
	}
	if results == nil {
		results = domain.ResultSet{}
	}
	return results, nil
}

// errorMessage extracts "error" from a JSON error body, if there is one
func errorMessage(data []byte) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return ""
	}
	return envelope.Error
}
