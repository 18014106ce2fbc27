// Package swapi is a minimal client for the Star Wars API people, starship,
// planet and species resources.
package swapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mwiater/holonet/internal/logging"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

var (
	// ErrUnavailable reports a transport failure or a non-200 response.
	ErrUnavailable = errors.New("swapi unavailable")
	// ErrMalformed reports a body that could not be decoded or lacks a required field.
	ErrMalformed = errors.New("swapi response malformed")
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// StatusError is returned for any non-200 response.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("swapi %s returned status: %s", e.URL, e.Status)
}

// Is lets errors.Is(err, ErrUnavailable) match status failures.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnavailable
}

// Client talks to one swapi base URL. It is safe for concurrent use.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// New returns a Client whose every call is bounded by timeout.
func New(baseURL string, timeout time.Duration, userAgent string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Close drops idle keep-alive connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// BaseURL returns the API root this client queries.
func (c *Client) BaseURL() string { return c.baseURL }

// ListPage fetches one page of the people listing.
func (c *Client) ListPage(ctx context.Context, page int) (Page, error) {
	endpoint := c.baseURL + "/people/?page=" + strconv.Itoa(page)
	var out Page
	if err := c.getJSON(ctx, endpoint, pageSchema, &out); err != nil {
		return Page{}, fmt.Errorf("list people page %d: %w", page, err)
	}
	return out, nil
}

// Search runs the people exact-search endpoint for query.
func (c *Client) Search(ctx context.Context, query string) ([]Character, error) {
	endpoint := c.baseURL + "/people/?search=" + url.QueryEscape(query)
	var out Page
	if err := c.getJSON(ctx, endpoint, pageSchema, &out); err != nil {
		return nil, fmt.Errorf("search people %q: %w", query, err)
	}
	return out.Results, nil
}

// Starship fetches a starship by absolute URL.
func (c *Client) Starship(ctx context.Context, resourceURL string) (Starship, error) {
	var out Starship
	if err := c.getJSON(ctx, resourceURL, starshipSchema, &out); err != nil {
		return Starship{}, fmt.Errorf("starship: %w", err)
	}
	return out, nil
}

// Planet fetches a planet by absolute URL.
func (c *Client) Planet(ctx context.Context, resourceURL string) (Planet, error) {
	var out Planet
	if err := c.getJSON(ctx, resourceURL, planetSchema, &out); err != nil {
		return Planet{}, fmt.Errorf("planet: %w", err)
	}
	return out, nil
}

// Species fetches a species by absolute URL.
func (c *Client) Species(ctx context.Context, resourceURL string) (Species, error) {
	var out Species
	if err := c.getJSON(ctx, resourceURL, speciesSchema, &out); err != nil {
		return Species{}, fmt.Errorf("species: %w", err)
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, schema gojsonschema.JSONLoader, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: build request for %s: %v", ErrUnavailable, endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	logging.LogRequest("out", req.Method, endpoint, 0)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logging.LogRequest("in", req.Method, endpoint, resp.StatusCode)
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return &StatusError{URL: endpoint, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrUnavailable, endpoint, err)
	}
	logging.LogRequest("in", req.Method, endpoint, resp.StatusCode, zap.Int("bytes", len(body)))
	if err := validate(schema, body, endpoint); err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrMalformed, endpoint, err)
	}
	return nil
}
