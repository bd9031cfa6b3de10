package service

import (
	"github.com/jafarshop/myorders/internal/domain"
	"github.com/jafarshop/myorders/internal/erp"
)

// ListParams are the filters of an order list request
type ListParams struct {
	BrandName       string
	DateFrom        *int64
	DateTo          *int64
	Delivery        string
	Office          string
	OrderNumber     string
	OrderItemStatus string
	Page            int
	PerPage         int
	Language        string
}

func (p ListParams) erpQuery() erp.OrdersQuery {
	return erp.OrdersQuery{
		DateFrom:    p.DateFrom,
		DateTo:      p.DateTo,
		Office:      p.Office,
		Delivery:    p.Delivery,
		LineStatus:  p.OrderItemStatus,
		OrderNumber: p.OrderNumber,
		BrandName:   p.BrandName,
		Page:        p.Page,
		PerPage:     p.PerPage,
		Language:    p.Language,
	}
}

// OrderList is the result of an order list request
type OrderList struct {
	Orders   []domain.OrderSummary
	Facets   domain.FacetSet
	PerPage  int
	Page     int
	Previous int
	Next     int
}

// OrderDetail is the shipping record and fulfillment timeline of one order line
type OrderDetail struct {
	OrderItemID    int64
	Shipping       string
	ShippingAddr   string
	DeliveryNum    string
	DeliveryStatus string
	Canceled       bool
	DeliveryDate   *string
	Office         *domain.Office
	Type           domain.ShippingType
	Timeline       domain.FulfillmentTimeline
}
