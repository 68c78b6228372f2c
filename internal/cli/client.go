// Package cli implements treasuryctl, a terminal client for the treasury API.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/middleware"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/request"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/response"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
)

// Client calls the treasury REST API.
type Client struct {
	http   *resty.Client
	apiKey string
}

// NewClient returns a client for the server at baseURL. apiKey is only needed for the
// developer endpoints.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(15*time.Second).
			SetRetryCount(2).
			SetHeader("Accept", "application/json"),
		apiKey: apiKey,
	}
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
	Details any
}

func (e *APIError) Error() string {
	if e.Details != nil && e.Details != "" {
		return fmt.Sprintf("server returned %d: %s (%v)", e.Status, e.Message, e.Details)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx).SetError(&response.ErrorResponse{})
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req := c.newRequest(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}
	return send(req, method, path)
}

func send(req *resty.Request, method, path string) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr := &APIError{Status: resp.StatusCode(), Message: resp.Status()}
		if e, ok := resp.Error().(*response.ErrorResponse); ok && e.Error != "" {
			apiErr.Message, apiErr.Details = e.Error, e.Details
		}
		return apiErr
	}
	return nil
}

// State fetches the whole snapshot.
func (c *Client) State(ctx context.Context) (model.Snapshot, error) {
	var snap model.Snapshot
	err := c.do(ctx, resty.MethodGet, "/api/state", nil, &snap)
	return snap, err
}

// RunPolicy evaluates the policy on the server.
func (c *Client) RunPolicy(ctx context.Context) (model.PolicyDecision, error) {
	var decision model.PolicyDecision
	err := c.do(ctx, resty.MethodPost, "/api/policy/run", nil, &decision)
	return decision, err
}

// RunScenario applies any shock parameters that are set and runs the scenario.
func (c *Client) RunScenario(ctx context.Context, update request.UpdateScenarioRequest) (model.ScenarioConfig, model.ScenarioResult, error) {
	var cfg model.ScenarioConfig
	if update.AssetDropPct != nil || update.ExpenseRisePct != nil {
		if err := c.do(ctx, resty.MethodPut, "/api/scenario", update, &cfg); err != nil {
			return cfg, model.ScenarioResult{}, err
		}
	}

	var result model.ScenarioResult
	if err := c.do(ctx, resty.MethodPost, "/api/scenario/run", nil, &result); err != nil {
		return cfg, result, err
	}

	if update.AssetDropPct == nil && update.ExpenseRisePct == nil {
		var state struct {
			Config model.ScenarioConfig `json:"config"`
		}
		if err := c.do(ctx, resty.MethodGet, "/api/scenario", nil, &state); err != nil {
			return cfg, result, err
		}
		cfg = state.Config
	}
	return cfg, result, nil
}

// Logs fetches one page of the activity log. It signs the request with a fresh time token.
func (c *Client) Logs(ctx context.Context, category string, perPage int) (model.LogResponse, error) {
	var page model.LogResponse
	if c.apiKey == "" {
		return page, errors.New("an API key is required for the activity log")
	}

	req := c.newRequest(ctx).
		SetHeader("X-API-Key", c.apiKey).
		SetHeader("X-Time-Token", middleware.GenerateTimeToken(c.apiKey)).
		SetQueryParam("perPage", strconv.Itoa(perPage)).
		SetResult(&page)
	if category != "" {
		req.SetQueryParam("category", category)
	}
	err := send(req, resty.MethodGet, "/api/developer/logs")
	return page, err
}

// Version fetches the server version information.
func (c *Client) Version(ctx context.Context) (model.VersionInfo, error) {
	var info model.VersionInfo
	err := c.do(ctx, resty.MethodGet, "/api/system/version", nil, &info)
	return info, err
}
