// File path: internal/zotero/client.go
package zotero

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bioailab/zotero-agent/internal/common"
	"github.com/bioailab/zotero-agent/internal/config"
)

// ErrNotFound signals that the requested key does not exist in the library.
var ErrNotFound = errors.New("zotero: item not found")

// retryDelay is the pause before the single idempotent retry on 429/5xx.
// Tests shrink it to avoid real sleeps.
var retryDelay = 500 * time.Millisecond

// APIError preserves the upstream status for non-404 failures.
type APIError struct {
	StatusCode int
	Path       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zotero: %s returned HTTP %d", e.Path, e.StatusCode)
}

// Client talks to the Zotero Web API v3 for one group or user library.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// New constructs a client scoped to the library identified by the
// configuration.
func New(cfg config.Config) *Client {
	logger := common.Logger()
	prefix := "groups"
	if cfg.LibraryType == "user" {
		prefix = "users"
	}
	baseURL := fmt.Sprintf("%s/%s/%s", cfg.BaseURL, prefix, cfg.LibraryID)
	logger.Info("zotero: client configured", "library", cfg.LibraryID, "type", cfg.LibraryType, "timeout", cfg.Timeout)
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
	}
}

func (c *Client) Item(ctx context.Context, key string) (*Item, error) {
	var item Item
	status, err := c.getJSON(ctx, "/items/"+url.PathEscape(key), nil, &item)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (c *Client) Children(ctx context.Context, key string, limit int) ([]Item, error) {
	if limit <= 0 {
		limit = 200
	}
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	var items []Item
	status, err := c.getJSON(ctx, "/items/"+url.PathEscape(key)+"/children", query, &items)
	if err != nil {
		return nil, err
	}
	// An item without children answers 404 on some library versions;
	// either way it means "no children".
	if status == http.StatusNotFound {
		return nil, nil
	}
	return items, nil
}

func (c *Client) FullText(ctx context.Context, key string) (*FullText, error) {
	var text FullText
	status, err := c.getJSON(ctx, "/items/"+url.PathEscape(key)+"/fulltext", nil, &text)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if text.Content == "" {
		return nil, nil
	}
	return &text, nil
}

func (c *Client) Search(ctx context.Context, query string, limit, start int) ([]Item, int, error) {
	values := url.Values{
		"q":     {query},
		"qmode": {"everything"},
	}
	return c.listItems(ctx, "/items", values, limit, start)
}

func (c *Client) TopItems(ctx context.Context, limit, start int) ([]Item, int, error) {
	return c.listItems(ctx, "/items/top", url.Values{}, limit, start)
}

func (c *Client) listItems(ctx context.Context, path string, values url.Values, limit, start int) ([]Item, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if start < 0 {
		start = 0
	}
	values.Set("limit", strconv.Itoa(limit))
	values.Set("start", strconv.Itoa(start))
	var items []Item
	status, err := c.getJSON(ctx, path, values, &items)
	if err != nil {
		return nil, 0, err
	}
	if status == http.StatusNotFound {
		return nil, 0, nil
	}
	return items, len(items), nil
}

// getJSON performs one GET against the library, decoding the body into out
// unless the upstream answered 404 (returned as a plain status so callers
// can map it to their own absence semantics). A 429 or 5xx response is
// retried once after a short delay; the requests are idempotent GETs.
func (c *Client) getJSON(ctx context.Context, path string, values url.Values, out interface{}) (int, error) {
	logger := common.Logger()
	reqURL := c.baseURL + path
	if len(values) > 0 {
		reqURL += "?" + values.Encode()
	}

	var resp *http.Response
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return 0, fmt.Errorf("zotero: build request: %w", err)
		}
		req.Header.Set("Zotero-API-Version", "3")
		req.Header.Set("Zotero-API-Key", c.apiKey)

		resp, err = c.httpClient.Do(req)
		if err != nil {
			return 0, fmt.Errorf("zotero: request %s: %w", path, err)
		}
		if !retryableStatus(resp.StatusCode) || attempt >= 1 {
			break
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		logger.Warn("zotero: retrying after upstream error", "path", path, "status", resp.StatusCode)
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return http.StatusNotFound, nil
	case resp.StatusCode != http.StatusOK:
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Path: path}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("zotero: decode %s: %w", path, err)
	}
	return resp.StatusCode, nil
}

func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
