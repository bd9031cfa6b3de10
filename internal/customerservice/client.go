package customerservice

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
	"github.com/jafarshop/myorders/internal/domain"
	"github.com/jafarshop/myorders/internal/metrics"
	"github.com/jafarshop/myorders/pkg/errors"
)

const serviceName = "customer_service"

type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	metrics    *metrics.Registry
	logger     *zap.Logger
}

// NewClient creates a new customer-service data source client
func NewClient(cfg config.CustomerServiceConfig, reg *metrics.Registry, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		apiToken: cfg.APIToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: reg,
		logger:  logger,
	}
}

type lineRef struct {
	OrderLineID int64 `json:"orderline_id"`
}

type request struct {
	Data []lineRef `json:"data"`
}

type response struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func (c *Client) call(ctx context.Context, method string, lineIDs []int64, out interface{}) (err error) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		c.metrics.ObserveUpstream(serviceName, method, elapsed.Seconds(), err)
		c.logger.Debug("Customer-service call", zap.String("method", method), zap.Duration("elapsed", elapsed), zap.Error(err))
	}()

	payload := request{Data: make([]lineRef, 0, len(lineIDs))}
	for _, id := range lineIDs {
		payload.Data = append(payload.Data, lineRef{OrderLineID: id})
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return c.upstreamErr(method, fmt.Errorf("failed to marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, bytes.NewBuffer(jsonData))
	if err != nil {
		return c.upstreamErr(method, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.upstreamErr(method, fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.upstreamErr(method, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return c.upstreamErr(method, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body)))
	}

	var envelope response
	if err := json.Unmarshal(body, &envelope); err != nil {
		return c.upstreamErr(method, fmt.Errorf("failed to unmarshal response: %w", err))
	}
	if envelope.Status != "ok" {
		return c.upstreamErr(method, fmt.Errorf("status %q", envelope.Status))
	}

	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return c.upstreamErr(method, fmt.Errorf("failed to parse data: %w", err))
	}
	return nil
}

func (c *Client) upstreamErr(method string, err error) error {
	return &errors.ErrUpstream{Service: serviceName, Method: method, Err: err}
}

// OrdersInfo fetches comments and shipping notes for a batch of order lines
func (c *Client) OrdersInfo(ctx context.Context, lineIDs []int64) ([]domain.CommentAnnotation, error) {
	var entries []struct {
		OrderLineID int64  `json:"orderline_id"`
		Comment     string `json:"comment"`
		Shipping    string `json:"shipping"`
	}
	if err := c.call(ctx, "OrdersInfo", lineIDs, &entries); err != nil {
		return nil, err
	}

	annotations := make([]domain.CommentAnnotation, 0, len(entries))
	for _, e := range entries {
		annotations = append(annotations, domain.CommentAnnotation{
			LineID:   e.OrderLineID,
			Comment:  e.Comment,
			Shipping: e.Shipping,
		})
	}
	return annotations, nil
}

// OrdersStates fetches the shipping record and status history of order lines
func (c *Client) OrdersStates(ctx context.Context, lineIDs []int64) ([]domain.OrderStates, error) {
	var entries []struct {
		OrderLineID    int64  `json:"orderline_id"`
		ShippingType   string `json:"shipping_type"`
		Shipping       string `json:"shipping"`
		ShippingAddr   string `json:"shipping_addr"`
		DeliveryNum    string `json:"delivery_num"`
		DeliveryStatus string `json:"delivery_status"`
		Canceled       bool   `json:"canceled"`
		DeliveryDate   string `json:"delivery_date"`
		SalesOffice    int64  `json:"sales_office"`
		States         []struct {
			ID   int64  `json:"id"`
			Date string `json:"date"`
		} `json:"states"`
	}
	if err := c.call(ctx, "OrdersStates", lineIDs, &entries); err != nil {
		return nil, err
	}

	result := make([]domain.OrderStates, 0, len(entries))
	for _, e := range entries {
		states := make([]domain.StateEntry, 0, len(e.States))
		for _, s := range e.States {
			states = append(states, domain.StateEntry{StatusCode: s.ID, Date: s.Date})
		}
		result = append(result, domain.OrderStates{
			OrderID:         e.OrderLineID,
			ShippingType:    e.ShippingType,
			Shipping:        e.Shipping,
			ShippingAddr:    e.ShippingAddr,
			DeliveryNum:     e.DeliveryNum,
			DeliveryStatus:  e.DeliveryStatus,
			Canceled:        e.Canceled,
			DeliveryDate:    e.DeliveryDate,
			SalesOfficeCode: e.SalesOffice,
			States:          states,
		})
	}
	return result, nil
}
