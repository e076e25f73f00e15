// Package seed fetches the starter tasks from a remote placeholder API.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nibzard/daily/internal/todo"
)

// Defaults for the seed source.
const (
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"
	DefaultLimit   = 5
	DefaultTimeout = 10 * time.Second
)

// maxBody caps how much of the response is read.
const maxBody = 4 << 20

// record is the shape served by the placeholder API. Only id, title and
// completed are trusted.
type record struct {
	UserID    int    `json:"userId"`
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Client reads seed tasks over HTTP.
type Client struct {
	BaseURL    string
	Limit      int
	HTTPClient *http.Client
}

// New returns a client for baseURL with the default limit and timeout.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Limit:      DefaultLimit,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Fetch returns the first Limit tasks from the source.
func (c *Client) Fetch(ctx context.Context) ([]todo.Task, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	url := strings.TrimRight(base, "/") + "/todos"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("seed: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("seed: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("seed: fetch %s: unexpected status %s", url, resp.Status)
	}

	var records []record
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&records); err != nil {
		return nil, fmt.Errorf("seed: decode response: %w", err)
	}

	return normalize(records, c.limit()), nil
}

func (c *Client) limit() int {
	if c.Limit <= 0 {
		return DefaultLimit
	}
	return c.Limit
}

// normalize converts up to limit external records into tasks.
func normalize(records []record, limit int) []todo.Task {
	if len(records) > limit {
		records = records[:limit]
	}
	tasks := make([]todo.Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, todo.Task{
			ID:          r.ID,
			Title:       strings.TrimSpace(r.Title),
			Description: "",
			Completed:   r.Completed,
		})
	}
	return tasks
}
