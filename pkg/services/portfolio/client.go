// Package portfolio is the client for the portfolio side of the backend:
// the investment/transaction document per user and the project catalogue.
// It also derives the chart annotations and money views computed from
// transaction histories.
package portfolio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/nicolasberthel/enerfolio/pkg/adapters"
	"github.com/nicolasberthel/enerfolio/pkg/models/api"
	"github.com/nicolasberthel/enerfolio/pkg/models/domain"
)

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: opts.BaseURL, http: httpClient}
}

// GetPortfolio fetches the canonical investment and transaction data for one
// user.
func (c *Client) GetPortfolio(ctx context.Context, userID string) (domain.Portfolio, error) {
	var payload api.Portfolio
	if err := c.getJSON(ctx, fmt.Sprintf("portfolio/%s", url.PathEscape(userID)), &payload); err != nil {
		return domain.Portfolio{}, fmt.Errorf("fetching portfolio for %s: %w", userID, err)
	}
	p, err := adapters.MapApiPortfolioToDomain(payload)
	if err != nil {
		return domain.Portfolio{}, fmt.Errorf("mapping portfolio for %s: %w", userID, err)
	}
	return p, nil
}

// ListProjects fetches the catalogue of investable projects.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var payload []api.Project
	if err := c.getJSON(ctx, "projects", &payload); err != nil {
		return nil, fmt.Errorf("fetching projects: %w", err)
	}
	projects := make([]domain.Project, 0, len(payload))
	for _, p := range payload {
		projects = append(projects, adapters.MapApiProjectToDomain(p))
	}
	return projects, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	u := fmt.Sprintf("%s/%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
