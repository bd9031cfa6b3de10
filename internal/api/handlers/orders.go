package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/jafarshop/myorders/internal/api/middleware"
	"github.com/jafarshop/myorders/internal/config"
	"github.com/jafarshop/myorders/internal/domain"
	"github.com/jafarshop/myorders/internal/service"
	"github.com/jafarshop/myorders/internal/session"
	"github.com/jafarshop/myorders/pkg/errors"
)

const (
	filterDateLayout = "2006-01-02T15:04:05Z"
	orderDateFormat  = "2006-01-02 15:04"
	pageSizeCookie   = "orders_page_size"
)

// Languages the ERP can localize order data into, in preference order
var erpLanguages = []string{"uk", "ru", "en"}

var languageMatcher = language.NewMatcher([]language.Tag{
	language.Ukrainian,
	language.Russian,
	language.English,
})

// OrdersService serves the order list and the order line timeline
type OrdersService interface {
	List(ctx context.Context, sess *session.Session, clientIP string, params service.ListParams) (*service.OrderList, error)
	Detail(ctx context.Context, orderLineID int64) (*service.OrderDetail, error)
}

type OrderLineStatusResponse struct {
	Name         *string          `json:"name"`
	Comment      string           `json:"comment"`
	Delivery     string           `json:"delivery"`
	Image        *string          `json:"image"`
	Position     *domain.Position `json:"position"`
	Color        *string          `json:"color"`
	ShowExpected *bool            `json:"show_expected"`
	ShowComment  *bool            `json:"show_comment"`
}

type OrderLineResponse struct {
	ID            int64                   `json:"id"`
	ProductID     *string                 `json:"product_id"`
	Image         *string                 `json:"image"`
	Title         string                  `json:"title"`
	Description   string                  `json:"description"`
	DescriptionEN string                  `json:"description_en"`
	DescriptionRU string                  `json:"description_ru"`
	DescriptionUK string                  `json:"description_uk"`
	Trademark     string                  `json:"trademark"`
	TrademarkSlug string                  `json:"trademark_slug"`
	UPC           string                  `json:"upc"`
	WareID        int64                   `json:"ware_id"`
	Slug          string                  `json:"slug"`
	Status        OrderLineStatusResponse `json:"status"`
	Quantity      int64                   `json:"quantity"`
	Price         int64                   `json:"price"`
	PriceItem     int64                   `json:"price_item"`
}

// OrderResponse is one order of the list
type OrderResponse struct {
	ID     int64               `json:"id"`
	Number string              `json:"number"`
	Office string              `json:"office"`
	Date   string              `json:"date"`
	List   []OrderLineResponse `json:"list"`
	Total  int64               `json:"total"`
}

type FacetOptionResponse struct {
	Value int64  `json:"value"`
	Label string `json:"label"`
}

type OrderListResponse struct {
	Orders      []OrderResponse       `json:"orders"`
	Offices     []FacetOptionResponse `json:"offices"`
	Delivery    []FacetOptionResponse `json:"delivery"`
	Status      []FacetOptionResponse `json:"status"`
	Total       *int64                `json:"total"`
	Pages       *int64                `json:"pages"`
	OrdersTotal *int64                `json:"orders_total"`
	PerPage     int                   `json:"per_page"`
	CurrentPage int                   `json:"current_page"`
	Previous    int                   `json:"previous"`
	Next        int                   `json:"next"`
}

type TimelineStateResponse struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Image     *string         `json:"image"`
	ImageList *string         `json:"image_list"`
	Color     string          `json:"color"`
	Date      *string         `json:"date"`
	Active    bool            `json:"active"`
	Position  domain.Position `json:"position"`
}

type OfficeResponse struct {
	ID      string `json:"id"`
	Code    int64  `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// OrderStatesResponse is the shipping record and timeline of one order line
type OrderStatesResponse struct {
	Shipping       string                  `json:"shipping"`
	ShippingAddr   string                  `json:"shipping_addr"`
	DeliveryNum    string                  `json:"delivery_num"`
	DeliveryStatus string                  `json:"delivery_status"`
	Canceled       bool                    `json:"canceled"`
	DeliveryDate   *string                 `json:"delivery_date"`
	Office         *OfficeResponse         `json:"office"`
	States         []TimelineStateResponse `json:"states"`
	Percent        int                     `json:"percent"`
	TotalActive    int                     `json:"total_active"`
	Current        *int64                  `json:"current"`
	OrderItemID    int64                   `json:"order_item_id"`
	Color          *string                 `json:"color"`
	Image          *string                 `json:"image"`
	Type           domain.ShippingType     `json:"type"`
}

// HandleListOrders handles GET /v1/orders
func HandleListOrders(svc OrdersService, cfg config.OrdersConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.Status(http.StatusNoContent)
			return
		}

		params := service.ListParams{
			BrandName:       c.Query("brand_name"),
			DateFrom:        filterTimestamp(c.Query("date_from"), 3, 0),
			DateTo:          filterTimestamp(c.Query("date_to"), 23, 59),
			Delivery:        c.Query("delivery"),
			Office:          c.Query("office"),
			OrderNumber:     c.Query("order_number"),
			OrderItemStatus: c.Query("order_item_status"),
			Page:            1,
			PerPage:         cfg.DefaultPageSize,
			Language:        negotiateLanguage(c.GetHeader("Accept-Language")),
		}
		if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
			params.Page = page
		}
		if raw, err := c.Cookie(pageSizeCookie); err == nil {
			if perPage, err := strconv.Atoi(raw); err == nil && perPage > 0 {
				params.PerPage = perPage
			}
		}

		list, err := svc.List(c.Request.Context(), sess, c.ClientIP(), params)
		if err != nil {
			respondError(c, logger, "Failed to list orders", err)
			return
		}

		c.JSON(http.StatusOK, newOrderListResponse(list))
	}
}

// HandleGetOrderStates handles GET /v1/orders/:order_id/states
func HandleGetOrderStates(svc OrdersService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := middleware.GetSessionFromContext(c); !ok {
			c.Status(http.StatusNoContent)
			return
		}

		orderLineID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
		if err != nil || orderLineID <= 0 {
			c.Status(http.StatusNoContent)
			return
		}

		detail, err := svc.Detail(c.Request.Context(), orderLineID)
		if err != nil {
			switch err.(type) {
			case *errors.ErrNotFound:
				c.Status(http.StatusNoContent)
				return
			case *errors.ErrUnavailable:
				logger.Warn("Order states source unavailable",
					zap.String("request_id", middleware.GetRequestID(c)),
					zap.Int64("order_line_id", orderLineID),
					zap.Error(err),
				)
				c.Status(http.StatusNoContent)
				return
			}
			respondError(c, logger, "Failed to get order states", err)
			return
		}

		c.JSON(http.StatusOK, newOrderStatesResponse(detail))
	}
}

func respondError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	logger.Error(msg, zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
	if _, ok := err.(*errors.ErrMalformedDate); ok {
		c.JSON(http.StatusBadGateway, gin.H{"error": "invalid upstream data"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// filterTimestamp pins a date filter to the given time of its day and returns Unix seconds
func filterTimestamp(raw string, hour, minute int) *int64 {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(filterDateLayout, raw)
	if err != nil {
		return nil
	}
	ts := time.Date(t.Year(), t.Month(), t.Day(), hour, minute, t.Second(), 0, time.UTC).Unix()
	return &ts
}

func negotiateLanguage(acceptLanguage string) string {
	_, index := language.MatchStrings(languageMatcher, acceptLanguage)
	return erpLanguages[index]
}

func newOrderListResponse(list *service.OrderList) OrderListResponse {
	resp := OrderListResponse{
		Orders:      make([]OrderResponse, 0, len(list.Orders)),
		Offices:     facetOptions(list.Facets.Offices),
		Delivery:    facetOptions(list.Facets.Delivery),
		Status:      facetOptions(list.Facets.Status),
		Total:       list.Facets.Total,
		Pages:       list.Facets.Pages,
		OrdersTotal: list.Facets.OrdersTotal,
		PerPage:     list.PerPage,
		CurrentPage: list.Page,
		Previous:    list.Previous,
		Next:        list.Next,
	}

	for _, order := range list.Orders {
		lines := make([]OrderLineResponse, len(order.Lines))
		for i, l := range order.Lines {
			lines[i] = OrderLineResponse{
				ID:            l.ID,
				Image:         l.Image,
				Title:         l.Title,
				Description:   l.Description,
				DescriptionEN: l.DescriptionEN,
				DescriptionRU: l.DescriptionRU,
				DescriptionUK: l.DescriptionUK,
				Trademark:     l.Trademark,
				TrademarkSlug: l.TrademarkSlug,
				UPC:           l.UPC,
				WareID:        l.WareID,
				Slug:          l.Slug,
				Status:        OrderLineStatusResponse(l.Status),
				Quantity:      l.Quantity,
				Price:         l.Total,
				PriceItem:     l.UnitPrice,
			}
			if l.ProductID != "" {
				productID := l.ProductID
				lines[i].ProductID = &productID
			}
		}

		resp.Orders = append(resp.Orders, OrderResponse{
			ID:     order.ID,
			Number: order.Number,
			Office: order.Office,
			Date:   order.Date.Format(orderDateFormat),
			List:   lines,
			Total:  order.Total,
		})
	}

	return resp
}

func facetOptions(options []domain.FacetOption) []FacetOptionResponse {
	out := make([]FacetOptionResponse, len(options))
	for i, o := range options {
		out[i] = FacetOptionResponse(o)
	}
	return out
}

func newOrderStatesResponse(detail *service.OrderDetail) OrderStatesResponse {
	timeline := detail.Timeline
	resp := OrderStatesResponse{
		Shipping:       detail.Shipping,
		ShippingAddr:   detail.ShippingAddr,
		DeliveryNum:    detail.DeliveryNum,
		DeliveryStatus: detail.DeliveryStatus,
		Canceled:       detail.Canceled,
		DeliveryDate:   detail.DeliveryDate,
		States:         make([]TimelineStateResponse, len(timeline.States)),
		Percent:        timeline.Percent,
		TotalActive:    timeline.TotalActive,
		Current:        timeline.Current,
		OrderItemID:    detail.OrderItemID,
		Color:          timeline.Color,
		Image:          timeline.Image,
		Type:           detail.Type,
	}

	for i, s := range timeline.States {
		resp.States[i] = TimelineStateResponse(s)
	}

	if detail.Office != nil {
		resp.Office = &OfficeResponse{
			ID:      detail.Office.ID.String(),
			Code:    detail.Office.Code,
			Name:    detail.Office.Name,
			Address: detail.Office.Address,
			Phone:   detail.Office.Phone,
		}
	}

	return resp
}
