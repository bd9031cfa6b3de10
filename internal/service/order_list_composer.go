package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/myorders/internal/domain"
	"github.com/jafarshop/myorders/internal/metrics"
	"github.com/jafarshop/myorders/pkg/errors"
)

// Accepted ERP order date layouts, tried in order
var orderDateLayouts = []string{
	"2006-01-02T15:04:05.000000",
	"2006-01-02T15:04:05",
}

// ParseOrderDate parses an ERP order timestamp
func ParseOrderDate(raw string) (time.Time, error) {
	for _, layout := range orderDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &errors.ErrMalformedDate{Field: "order date", Value: raw}
}

// OrderListComposer groups enriched ERP lines into order summaries
type OrderListComposer struct {
	metrics *metrics.Registry
	logger  *zap.Logger
}

// NewOrderListComposer creates a new order list composer
func NewOrderListComposer(reg *metrics.Registry, logger *zap.Logger) *OrderListComposer {
	return &OrderListComposer{
		metrics: reg,
		logger:  logger,
	}
}

type orderGroup struct {
	head  domain.OrderLineRecord
	lines []domain.OrderLineRecord
}

// groupByOrder groups line records by order id in first-seen order
func groupByOrder(records []domain.OrderLineRecord) []orderGroup {
	index := make(map[int64]int)
	var groups []orderGroup
	for _, r := range records {
		i, ok := index[r.OrderID]
		if !ok {
			i = len(groups)
			index[r.OrderID] = i
			groups = append(groups, orderGroup{head: r})
		}
		groups[i].lines = append(groups[i].lines, r)
	}
	return groups
}

// Compose stitches ERP line records with catalog, comment and status data into order summaries.
// A line whose order date matches no accepted layout fails the whole batch.
func (c *OrderListComposer) Compose(
	records []domain.OrderLineRecord,
	products ProductSet,
	comments Annotations,
	taxonomy domain.StatusTaxonomy,
) ([]domain.OrderSummary, error) {
	groups := groupByOrder(records)
	summaries := make([]domain.OrderSummary, 0, len(groups))

	for _, g := range groups {
		summary := domain.OrderSummary{
			ID:     g.head.OrderID,
			Number: g.head.OrderNumber,
			Office: g.head.OfficeName,
			Lines:  make([]domain.OrderLineView, 0, len(g.lines)),
		}
		for i, r := range g.lines {
			date, err := ParseOrderDate(r.OrderDate)
			if err != nil {
				return nil, err
			}
			if i == 0 {
				summary.Date = date
			}

			view := c.lineView(r, products, comments, taxonomy)
			summary.Total += view.Total
			summary.Lines = append(summary.Lines, view)
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func (c *OrderListComposer) lineView(
	r domain.OrderLineRecord,
	products ProductSet,
	comments Annotations,
	taxonomy domain.StatusTaxonomy,
) domain.OrderLineView {
	product, found := products.Lookup(r.WareID)
	if !found {
		c.logger.Warn("Order line product missing from catalog",
			zap.Int64("order_id", r.OrderID),
			zap.Int64("line_id", r.LineID),
			zap.Int64("ware_id", r.WareID),
		)
		c.metrics.Miss("catalog")
		product = domain.ProductView{
			Title:         r.WareName,
			Description:   r.WareName,
			TrademarkName: r.TradeMark,
			UPC:           r.WareNum,
		}
	}

	view := domain.OrderLineView{
		ID:            r.LineID,
		ProductID:     product.ID,
		Image:         product.DefaultImage(),
		Title:         product.Title,
		Description:   product.Description,
		DescriptionEN: product.DescriptionEN,
		DescriptionRU: product.DescriptionRU,
		DescriptionUK: product.DescriptionUK,
		Trademark:     product.TrademarkName,
		TrademarkSlug: product.TrademarkSlug,
		UPC:           product.UPC,
		WareID:        r.WareID,
		Slug:          product.Slug,
		Quantity:      r.Quantity,
		Total:         r.LineTotal(),
		UnitPrice:     r.UnitPrice.Floor().IntPart(),
	}

	if def, ok := taxonomy.Lookup(r.StatusCode); ok {
		position := def.Position
		showExpected := def.ShowExpected
		showComment := def.ShowComment
		view.Status = domain.LineStatus{
			Name:         &def.Title,
			Image:        def.ImageList,
			Position:     &position,
			Color:        &def.Color,
			ShowExpected: &showExpected,
			ShowComment:  &showComment,
		}
	} else {
		c.logger.Warn("Order line status has no configuration",
			zap.Int64("line_id", r.LineID),
			zap.Int64("status_code", r.StatusCode),
		)
		c.metrics.Miss("status")
	}

	if note, ok := comments.Lookup(r.LineID); ok {
		view.Status.Comment = note.Comment
		view.Status.Delivery = note.Shipping
	}

	return view
}
