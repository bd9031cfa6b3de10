package erp

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

const serviceName = "erp"

// statusOK is the envelope status of a successful ERP call
const statusOK = "ok"

type Client struct {
	baseURL    string
	hostName   string
	httpClient *http.Client
	metrics    *metrics.Registry
	logger     *zap.Logger
}

// NewClient creates a new ERP order service client
func NewClient(cfg config.ERPConfig, reg *metrics.Registry, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	hostName := cfg.HostName
	if hostName == "" {
		hostName = "localhost"
	}

	return &Client{
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		hostName: hostName,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: reg,
		logger:  logger,
	}
}

// Response is the envelope every ERP method answers with
type Response struct {
	Status    string          `json:"status"`
	Msg       string          `json:"msg,omitempty"`
	Data      json.RawMessage `json:"data"`
	ExtraInfo json.RawMessage `json:"extra_info,omitempty"`
}

// Call invokes an ERP method with the given parameters
func (c *Client) Call(ctx context.Context, method string, params map[string]interface{}) (resp *Response, err error) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		c.metrics.ObserveUpstream(serviceName, method, elapsed.Seconds(), err)
		c.logger.Debug("ERP call", zap.String("method", method), zap.Duration("elapsed", elapsed), zap.Error(err))
	}()

	jsonData, err := json.Marshal(params)
	if err != nil {
		return nil, c.upstreamErr(method, fmt.Errorf("failed to marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, c.upstreamErr(method, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.upstreamErr(method, fmt.Errorf("failed to execute request: %w", err))
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, c.upstreamErr(method, fmt.Errorf("failed to read response: %w", err))
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, c.upstreamErr(method, fmt.Errorf("status %d, body: %s", httpResp.StatusCode, string(body)))
	}

	var envelope Response
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, c.upstreamErr(method, fmt.Errorf("failed to unmarshal response: %w", err))
	}

	if envelope.Status != statusOK {
		return nil, c.upstreamErr(method, fmt.Errorf("status %q: %s", envelope.Status, envelope.Msg))
	}

	return &envelope, nil
}

func (c *Client) upstreamErr(method string, err error) error {
	return &errors.ErrUpstream{Service: serviceName, Method: method, Err: err}
}
