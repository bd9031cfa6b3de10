package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/jafarshop/myorders/internal/domain"
	"github.com/jafarshop/myorders/internal/metrics"
)

// CommentSource fetches per-line comments from the customer-service data source
type CommentSource interface {
	OrdersInfo(ctx context.Context, lineIDs []int64) ([]domain.CommentAnnotation, error)
}

// Annotations maps order line ids to their comments
type Annotations map[int64]domain.CommentAnnotation

// Lookup returns the annotation of a line; ok is false when there is none
func (a Annotations) Lookup(lineID int64) (domain.CommentAnnotation, bool) {
	c, ok := a[lineID]
	return c, ok
}

// CommentEnricher fetches customer-service comments for order lines
type CommentEnricher struct {
	source  CommentSource
	metrics *metrics.Registry
	logger  *zap.Logger
}

// NewCommentEnricher creates a new comment enricher
func NewCommentEnricher(source CommentSource, reg *metrics.Registry, logger *zap.Logger) *CommentEnricher {
	return &CommentEnricher{
		source:  source,
		metrics: reg,
		logger:  logger,
	}
}

// Enrich fetches annotations for all lines in one batch. Failures are logged
// and produce an empty mapping.
func (e *CommentEnricher) Enrich(ctx context.Context, lineIDs []int64) Annotations {
	if len(lineIDs) == 0 {
		return Annotations{}
	}

	entries, err := e.source.OrdersInfo(ctx, lineIDs)
	if err != nil {
		e.logger.Error("Customer-service order info failed", zap.Int("lines", len(lineIDs)), zap.Error(err))
		e.metrics.Miss("comment_source")
		return Annotations{}
	}

	result := make(Annotations, len(entries))
	for _, entry := range entries {
		result[entry.LineID] = entry
	}
	return result
}
