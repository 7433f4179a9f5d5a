// Package upstream is the HTTP client for the panel backend API, the service
// that fronts the acquirer portals and the row store. This package only
// consumes the API; it owns no server-side behavior.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/DavidRSR1/verifica/internal/model"
)

// renewalHeader carries a refreshed bearer token when the upstream decides
// the current one is past half its lifetime.
const renewalHeader = "renovacao-automatica-jwt"

// Client provides methods for fetching catalog data, table rows and KPI
// summaries from the panel backend API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a panel API client for the given base URL. The token is
// sent as a bearer credential on every request and is replaced automatically
// when the upstream issues a renewal.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		token: token,
	}
}

// Token returns the bearer token currently in use.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Providers fetches the list of acquirer integrations.
func (c *Client) Providers(ctx context.Context) ([]model.Provider, error) {
	var providers []model.Provider
	if err := c.get(ctx, "/api/providers", nil, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

// Stations fetches the stations reachable through a provider.
func (c *Client) Stations(ctx context.Context, provider string) ([]model.Station, error) {
	var stations []model.Station
	path := fmt.Sprintf("/api/%s/postos", url.PathEscape(provider))
	if err := c.get(ctx, path, nil, &stations); err != nil {
		return nil, err
	}
	return stations, nil
}

// Sales fetches the sale rows of one station for a date range.
func (c *Client) Sales(ctx context.Context, provider string, q Query) ([]model.Row, error) {
	var rows []model.Row
	path := fmt.Sprintf("/api/%s/vendas", url.PathEscape(provider))
	if err := c.get(ctx, path, q.values(), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Reimbursements fetches the reimbursement rows of one station for a date
// range. byPayment selects server-side grouping by payment date instead of
// sale date; it only affects which rows arrive.
func (c *Client) Reimbursements(ctx context.Context, provider string, q Query, byPayment bool) ([]model.Row, error) {
	params := q.values()
	if byPayment {
		params.Set("by_pagamento", "1")
	} else {
		params.Set("by_pagamento", "0")
	}

	var rows []model.Row
	path := fmt.Sprintf("/api/%s/reembolsos", url.PathEscape(provider))
	if err := c.get(ctx, path, params, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Resumo fetches the KPI summary of one station for a date range.
func (c *Client) Resumo(ctx context.Context, provider string, q Query) (Resumo, error) {
	var resumo Resumo
	path := fmt.Sprintf("/api/%s/resumo", url.PathEscape(provider))
	if err := c.get(ctx, path, q.values(), &resumo); err != nil {
		return Resumo{}, err
	}
	return resumo, nil
}

// get executes a GET against the panel API and decodes the JSON body into
// out. A non-success status surfaces the response body as the error message.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if renewed := resp.Header.Get(renewalHeader); renewed != "" {
		c.setToken(renewed)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("panel api %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.Unmarshal(body, out)
}
