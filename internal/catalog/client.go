package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/myorders/internal/config"
	"github.com/jafarshop/myorders/internal/metrics"
	"github.com/jafarshop/myorders/pkg/errors"
)

const serviceName = "catalog"

type Client struct {
	endpoint    string
	accessToken string
	httpClient  *http.Client
	metrics     *metrics.Registry
	logger      *zap.Logger
}

// NewClient creates a new catalog search GraphQL client
func NewClient(cfg config.CatalogConfig, reg *metrics.Registry, logger *zap.Logger) *Client {
	// Normalize base URL - remove trailing slashes
	endpoint := strings.TrimSuffix(cfg.BaseURL, "/") + "/graphql"

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		endpoint:    endpoint,
		accessToken: cfg.AccessToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: reg,
		logger:  logger,
	}
}

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLResponse represents a GraphQL response
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError represents a GraphQL error
type GraphQLError struct {
	Message string   `json:"message"`
	Path    []string `json:"path,omitempty"`
}

// Execute executes a GraphQL query
func (c *Client) Execute(ctx context.Context, operation, query string, variables map[string]interface{}) (gqlResp *GraphQLResponse, err error) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		c.metrics.ObserveUpstream(serviceName, operation, elapsed.Seconds(), err)
		c.logger.Debug("Catalog query", zap.String("operation", operation), zap.Duration("elapsed", elapsed), zap.Error(err))
	}()

	reqBody := GraphQLRequest{
		Query:     query,
		Variables: variables,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, c.upstreamErr(operation, fmt.Errorf("failed to marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, c.upstreamErr(operation, fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set("X-Access-Token", c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.upstreamErr(operation, fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.upstreamErr(operation, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.upstreamErr(operation, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body)))
	}

	var graphQLResp GraphQLResponse
	if err := json.Unmarshal(body, &graphQLResp); err != nil {
		return nil, c.upstreamErr(operation, fmt.Errorf("failed to unmarshal response: %w", err))
	}

	if len(graphQLResp.Errors) > 0 {
		return nil, c.upstreamErr(operation, fmt.Errorf("graphQL errors: %v", graphQLResp.Errors))
	}

	return &graphQLResp, nil
}

func (c *Client) upstreamErr(operation string, err error) error {
	return &errors.ErrUpstream{Service: serviceName, Method: operation, Err: err}
}
