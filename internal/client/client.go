package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/flakeprobe/flakeprobe/internal/config"
	"github.com/flakeprobe/flakeprobe/internal/logging"
	"github.com/flakeprobe/flakeprobe/internal/models"
)

const flakyTestsQuery = `query ($limit: Int!, $projectID: String!) {
	flakyTests(limit: $limit, projectID: $projectID) {
		testID
		testName
		passRate
		failureRate
		runCount
		lastFailure
	}
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

type flakyTestsResponse struct {
	Data *struct {
		FlakyTests *[]models.TestRecord `json:"flakyTests"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// Client probes a flaky-test intelligence server over HTTP. All calls
// are synchronous and bounded by per-call timeouts; there is no retry.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	healthTimeout time.Duration
	queryTimeout  time.Duration
}

func New(cfg *config.Config) *Client {
	return &Client{
		baseURL:       strings.TrimRight(cfg.Server.BaseURL, "/"),
		httpClient:    &http.Client{},
		healthTimeout: cfg.Server.HealthTimeout(),
		queryTimeout:  cfg.Server.QueryTimeout(),
	}
}

// CheckHealth performs the liveness check against /healthz.
func (c *Client) CheckHealth(ctx context.Context) (*models.HealthStatus, error) {
	const op = "health check"

	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	url := c.baseURL + "/healthz"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	logging.Debug().
		Str("method", http.MethodGet).
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("liveness request")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &ProtocolError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var health models.HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, &ShapeError{Op: op, Reason: fmt.Sprintf("failed to decode response: %v", err)}
	}

	return &health, nil
}

// QueryFlakyTests fetches per-test outcome statistics for a project,
// capped at limit records.
func (c *Client) QueryFlakyTests(ctx context.Context, limit int, projectID string) ([]models.TestRecord, error) {
	const op = "statistics query"

	ctx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()

	reqBody := graphQLRequest{
		Query: flakyTestsQuery,
		Variables: map[string]any{
			"limit":     limit,
			"projectID": projectID,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ShapeError{Op: op, Reason: fmt.Sprintf("failed to marshal request: %v", err)}
	}

	url := c.baseURL + "/query"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	logging.Debug().
		Str("method", http.MethodPost).
		Str("url", url).
		Int("status", resp.StatusCode).
		Int("body_bytes", len(body)).
		Dur("duration", time.Since(start)).
		Msg("statistics request")

	if resp.StatusCode != http.StatusOK {
		return nil, &ProtocolError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var result flakyTestsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &ShapeError{Op: op, Reason: fmt.Sprintf("failed to unmarshal response: %v", err), Raw: string(body)}
	}

	if len(result.Errors) > 0 {
		return nil, &ShapeError{Op: op, Reason: fmt.Sprintf("server returned %d GraphQL error(s): %s", len(result.Errors), result.Errors[0].Message), Raw: string(body)}
	}

	if result.Data == nil || result.Data.FlakyTests == nil {
		return nil, &ShapeError{Op: op, Reason: "response is missing data.flakyTests", Raw: string(body)}
	}

	return *result.Data.FlakyTests, nil
}
