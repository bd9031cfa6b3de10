package erp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/myorders/internal/config"
	"github.com/jafarshop/myorders/internal/domain"
	"github.com/jafarshop/myorders/internal/metrics"
	"github.com/jafarshop/myorders/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.ERPConfig{BaseURL: server.URL + "/", Timeout: time.Second}, metrics.NewRegistry(), zap.NewNop())
}

func decodeParams(t *testing.T, r *http.Request) map[string]interface{} {
	t.Helper()
	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	var params map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &params))
	return params
}

func TestClient_GetOrders(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/GetOrders", r.URL.Path)
		params := decodeParams(t, r)
		assert.Equal(t, "token-1", params["UserSessionID"])
		assert.Equal(t, float64(0), params["IsArc"])
		assert.Equal(t, float64(2), params["PageNo"])
		assert.Equal(t, float64(20), params["ElemOnPage"])
		assert.Equal(t, "uk", params["Language"])
		assert.Equal(t, float64(1700000000), params["OrderDateFrom"])
		assert.Nil(t, params["OrderDateTo"])

		w.Write([]byte(`{
			"status": "ok",
			"data": [{
				"ContractOrderID": 10, "NumOrderLine": 101, "WareID": 555, "WareName": "Brake pad",
				"WareNum": "BP-1", "TradeMarkName": "Bosch", "Quantity": 2, "CurrentClientPrice": 99.9,
				"ContractOrderLineStateID": 3, "OrderDate": "2024-03-01T10:20:30", "OrderNum": "A-10",
				"SalesOfficeName": "Kyiv", "OrdersCountTotal": 5, "OrdersCountTotalArc": 1,
				"OrdersSumTotalNotСancel": 1234.56
			}],
			"extra_info": {
				"OrderSaleOffices": [{"SalesOfficeID": 7, "SalesOfficeName": "Kyiv"}],
				"OrderTerms": [{"TermsID": 2, "TermsName": "raw courier"}],
				"OrderStatuses": [{"OrderStateID": 3, "OrderStateName": "In transit"}]
			}
		}`))
	})

	from := int64(1700000000)
	result, err := client.GetOrders(context.Background(), "token-1", OrdersQuery{
		DateFrom: &from, Page: 2, PerPage: 20, Language: "uk",
	})
	require.NoError(t, err)
	require.Len(t, result.Lines, 1)

	line := result.Lines[0]
	assert.Equal(t, int64(10), line.OrderID)
	assert.Equal(t, int64(101), line.LineID)
	assert.Equal(t, int64(555), line.WareID)
	assert.Equal(t, "99.9", line.UnitPrice.String())
	assert.Equal(t, int64(198), line.LineTotal())
	require.NotNil(t, line.OrdersSumTotalNotCancel)
	assert.Equal(t, "1234.56", line.OrdersSumTotalNotCancel.String())

	assert.Equal(t, []domain.FacetOption{{Value: 7, Label: "Kyiv"}}, result.Facets[domain.FacetOffices])
	assert.Equal(t, []domain.FacetOption{{Value: 2, Label: "raw courier"}}, result.Facets[domain.FacetDelivery])
	assert.Equal(t, []domain.FacetOption{{Value: 3, Label: "In transit"}}, result.Facets[domain.FacetStatus])
}

func TestClient_GetOrders_Empty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok", "data": [], "extra_info": {}}`))
	})

	result, err := client.GetOrders(context.Background(), "stale", OrdersQuery{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Empty(t, result.Lines)
	assert.Empty(t, result.Facets)
}

func TestClient_GetOrders_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-ok envelope",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"status": "error", "msg": "session expired"}`))
			},
		},
		{
			name: "http failure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			_, err := client.GetOrders(context.Background(), "t", OrdersQuery{})
			require.Error(t, err)

			var upstream *errors.ErrUpstream
			require.ErrorAs(t, err, &upstream)
			assert.Equal(t, "erp", upstream.Service)
			assert.Equal(t, "GetOrders", upstream.Method)
		})
	}
}

func TestClient_SessionRegister(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/SessionReg", r.URL.Path)
		params := decodeParams(t, r)
		assert.Equal(t, "0", params["Mode"])
		assert.Equal(t, "10.0.0.1", params["IPUser"])
		assert.Equal(t, "old", params["UserSessionID"])
		assert.Equal(t, "localhost", params["HostName"])

		w.Write([]byte(`{"status": "ok", "data": [{"UserSessionID": "fresh"}]}`))
	})

	token, err := client.SessionRegister(context.Background(), "10.0.0.1", "old")
	require.NoError(t, err)
	assert.Equal(t, "fresh", token)
}

func TestClient_SessionRegister_EmptyData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok", "data": []}`))
	})

	_, err := client.SessionRegister(context.Background(), "10.0.0.1", "old")
	require.Error(t, err)
}
