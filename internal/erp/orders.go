package erp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/myorders/internal/domain"
	"github.com/jafarshop/myorders/pkg/errors"
)

// OrdersQuery holds the filters of one order list page
type OrdersQuery struct {
	DateFrom    *int64
	DateTo      *int64
	Office      string
	Delivery    string
	LineStatus  string
	OrderNumber string
	BrandName   string
	Page        int
	PerPage     int
	Language    string
}

// OrdersResult is one page of order lines plus the facet payload of the whole result set
type OrdersResult struct {
	Lines  []domain.OrderLineRecord
	Facets domain.RawFacets
}

type orderLine struct {
	ContractOrderID          int64           `json:"ContractOrderID"`
	NumOrderLine             int64           `json:"NumOrderLine"`
	WareID                   int64           `json:"WareID"`
	WareName                 string          `json:"WareName"`
	WareNum                  string          `json:"WareNum"`
	TradeMarkName            string          `json:"TradeMarkName"`
	Quantity                 int64           `json:"Quantity"`
	CurrentClientPrice       decimal.Decimal `json:"CurrentClientPrice"`
	ContractOrderLineStateID int64           `json:"ContractOrderLineStateID"`
	OrderDate                string          `json:"OrderDate"`
	OrderNum                 string          `json:"OrderNum"`
	SalesOfficeName          string          `json:"SalesOfficeName"`
	OrdersCountTotal         int64           `json:"OrdersCountTotal"`
	OrdersCountTotalArc      int64           `json:"OrdersCountTotalArc"`
	// The ERP spells "Cancel" with a Cyrillic Es
	OrdersSumTotalNotCancel *decimal.Decimal `json:"OrdersSumTotalNotСancel"`
}

type extraInfo struct {
	OrderSaleOffices []struct {
		SalesOfficeID   int64  `json:"SalesOfficeID"`
		SalesOfficeName string `json:"SalesOfficeName"`
	} `json:"OrderSaleOffices"`
	OrderTerms []struct {
		TermsID   int64  `json:"TermsID"`
		TermsName string `json:"TermsName"`
	} `json:"OrderTerms"`
	OrderStatuses []struct {
		OrderStateID   int64  `json:"OrderStateID"`
		OrderStateName string `json:"OrderStateName"`
	} `json:"OrderStatuses"`
}

// GetOrders fetches one page of the caller's order lines
func (c *Client) GetOrders(ctx context.Context, sessionToken string, q OrdersQuery) (*OrdersResult, error) {
	params := map[string]interface{}{
		"IsArc":                    0,
		"OrderDateFrom":            q.DateFrom,
		"OrderDateTo":              q.DateTo,
		"ContractOrderStateID":     "",
		"SalesOfficeID":            q.Office,
		"TermsShipID":              q.Delivery,
		"ContractOrderLineStateID": q.LineStatus,
		"OrderNum":                 q.OrderNumber,
		"FindWareStr":              q.BrandName,
		"PageNo":                   q.Page,
		"ElemOnPage":               q.PerPage,
		"Language":                 q.Language,
		"UserSessionID":            sessionToken,
	}

	resp, err := c.Call(ctx, "GetOrders", params)
	if err != nil {
		return nil, err
	}

	var lines []orderLine
	if len(resp.Data) > 0 && string(resp.Data) != "null" {
		if err := json.Unmarshal(resp.Data, &lines); err != nil {
			return nil, c.upstreamErr("GetOrders", fmt.Errorf("failed to parse order lines: %w", err))
		}
	}

	var extra extraInfo
	if len(resp.ExtraInfo) > 0 && string(resp.ExtraInfo) != "null" {
		if err := json.Unmarshal(resp.ExtraInfo, &extra); err != nil {
			return nil, c.upstreamErr("GetOrders", fmt.Errorf("failed to parse facets: %w", err))
		}
	}

	result := &OrdersResult{
		Lines:  make([]domain.OrderLineRecord, 0, len(lines)),
		Facets: domain.RawFacets{},
	}
	for _, l := range lines {
		result.Lines = append(result.Lines, domain.OrderLineRecord{
			OrderID:                 l.ContractOrderID,
			LineID:                  l.NumOrderLine,
			WareID:                  l.WareID,
			WareName:                l.WareName,
			WareNum:                 l.WareNum,
			TradeMark:               l.TradeMarkName,
			Quantity:                l.Quantity,
			UnitPrice:               l.CurrentClientPrice,
			StatusCode:              l.ContractOrderLineStateID,
			OrderDate:               l.OrderDate,
			OrderNumber:             l.OrderNum,
			OfficeName:              l.SalesOfficeName,
			OrdersCountTotal:        l.OrdersCountTotal,
			OrdersCountTotalArc:     l.OrdersCountTotalArc,
			OrdersSumTotalNotCancel: l.OrdersSumTotalNotCancel,
		})
	}

	for _, o := range extra.OrderSaleOffices {
		result.Facets[domain.FacetOffices] = append(result.Facets[domain.FacetOffices],
			domain.FacetOption{Value: o.SalesOfficeID, Label: o.SalesOfficeName})
	}
	for _, t := range extra.OrderTerms {
		result.Facets[domain.FacetDelivery] = append(result.Facets[domain.FacetDelivery],
			domain.FacetOption{Value: t.TermsID, Label: t.TermsName})
	}
	for _, s := range extra.OrderStatuses {
		result.Facets[domain.FacetStatus] = append(result.Facets[domain.FacetStatus],
			domain.FacetOption{Value: s.OrderStateID, Label: s.OrderStateName})
	}

	return result, nil
}

// SessionRegister asks the ERP for a fresh session token for the caller
func (c *Client) SessionRegister(ctx context.Context, clientIP, currentToken string) (string, error) {
	params := map[string]interface{}{
		"Mode":          "0",
		"IPUser":        clientIP,
		"UserSessionID": currentToken,
		"HostName":      c.hostName,
	}

	resp, err := c.Call(ctx, "SessionReg", params)
	if err != nil {
		return "", err
	}

	var data []struct {
		UserSessionID string `json:"UserSessionID"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return "", c.upstreamErr("SessionReg", fmt.Errorf("failed to parse session: %w", err))
	}
	if len(data) == 0 || data[0].UserSessionID == "" {
		return "", &errors.ErrUpstream{Service: serviceName, Method: "SessionReg", Err: fmt.Errorf("empty session in response")}
	}

	return data[0].UserSessionID, nil
}
