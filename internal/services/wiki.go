package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/peonbot/peon/internal/errs"
)

// WikiClient fetches page summaries from the Wikipedia REST API.
type WikiClient struct {
	client  *http.Client
	baseURL string
}

// NewWikiClient creates a client for the English Wikipedia.
func NewWikiClient() *WikiClient {
	return &WikiClient{
		client:  &http.Client{Timeout: httpTimeout},
		baseURL: "https://en.wikipedia.org",
	}
}

// Summary returns the formatted first summary for query, or an unavailable
// error when the page cannot be resolved.
func (w *WikiClient) Summary(ctx context.Context, query string) (string, error) {
	// the summary endpoint wants article titles, which use underscores
	title := strings.ReplaceAll(query, " ", "_")
	u := fmt.Sprintf("%s/api/rest_v1/page/summary/%s", w.baseURL, url.PathEscape(title))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("building wiki request: %w", err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return "", errs.Unavailablef("wiki is unreachable")
	}
	defer resp.Body.Close()

	var reply struct {
		Title       string `json:"title"`
		Extract     string `json:"extract"`
		ContentURLs struct {
			Desktop struct {
				Page string `json:"page"`
			} `json:"desktop"`
		} `json:"content_urls"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", errs.Unavailablef("unexpected wiki reply")
	}
	if reply.Title == "" || reply.Extract == "" {
		return "", errs.Unavailablef("no wiki summary for %q", query)
	}

	return fmt.Sprintf("%s:\n%s\n(%s)", reply.Title, reply.Extract, reply.ContentURLs.Desktop.Page), nil
}
