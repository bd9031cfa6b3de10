package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/jafarshop/myorders/internal/domain"
	"github.com/jafarshop/myorders/internal/metrics"
)

// ProductSearcher batch-resolves ware ids against the catalog index
type ProductSearcher interface {
	SearchByWareIDs(ctx context.Context, wareIDs []int64, limit int) ([]domain.ProductView, error)
}

// ProductSet is the catalog result for one request
type ProductSet struct {
	byWare map[int64]domain.ProductView
}

// NewProductSet indexes products by ware id, later duplicates overwrite earlier ones
func NewProductSet(products []domain.ProductView) ProductSet {
	s := ProductSet{byWare: make(map[int64]domain.ProductView, len(products))}
	for _, p := range products {
		s.byWare[p.WareID] = p
	}
	return s
}

// Lookup returns the product for a ware id; ok is false on a catalog miss
func (s ProductSet) Lookup(wareID int64) (domain.ProductView, bool) {
	p, ok := s.byWare[wareID]
	return p, ok
}

// Len returns the number of resolved ware ids
func (s ProductSet) Len() int {
	return len(s.byWare)
}

// CatalogEnricher resolves ware ids to catalog product views
type CatalogEnricher struct {
	searcher ProductSearcher
	metrics  *metrics.Registry
	logger   *zap.Logger
}

// NewCatalogEnricher creates a new catalog enricher
func NewCatalogEnricher(searcher ProductSearcher, reg *metrics.Registry, logger *zap.Logger) *CatalogEnricher {
	return &CatalogEnricher{
		searcher: searcher,
		metrics:  reg,
		logger:   logger,
	}
}

// Enrich resolves the ware ids with a single index query. It never fails:
// an unavailable index yields an empty set and every line falls back.
func (e *CatalogEnricher) Enrich(ctx context.Context, wareIDs []int64, limit int) ProductSet {
	ids := distinct(wareIDs)
	if len(ids) == 0 {
		return NewProductSet(nil)
	}
	if limit < len(ids) {
		limit = len(ids)
	}

	products, err := e.searcher.SearchByWareIDs(ctx, ids, limit)
	if err != nil {
		e.logger.Error("Catalog lookup failed, rendering lines from ERP data",
			zap.Int("ware_ids", len(ids)),
			zap.Error(err),
		)
		e.metrics.Miss("catalog_source")
		return NewProductSet(nil)
	}

	set := NewProductSet(products)
	e.logger.Debug("Catalog lookup", zap.Int("ware_ids", len(ids)), zap.Int("found", set.Len()))
	return set
}

func distinct(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
