package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/myorders/internal/domain"
	"github.com/jafarshop/myorders/internal/metrics"
)

func TestCatalogEnricher_Enrich(t *testing.T) {
	searcher := &fakeProducts{products: []domain.ProductView{
		{WareID: 11, Title: "first"},
		{WareID: 12, Title: "only"},
		{WareID: 11, Title: "second"},
	}}
	e := NewCatalogEnricher(searcher, nil, zap.NewNop())

	set := e.Enrich(context.Background(), []int64{11, 12, 11, 13}, 2)

	assert.Equal(t, 1, searcher.calls, "one query for the whole batch")
	assert.Equal(t, []int64{11, 12, 13}, searcher.gotIDs)
	assert.Equal(t, 3, searcher.gotLimit, "limit covers every distinct id")
	assert.Equal(t, 2, set.Len())

	p, ok := set.Lookup(11)
	require.True(t, ok)
	assert.Equal(t, "second", p.Title, "later duplicates win")

	_, ok = set.Lookup(13)
	assert.False(t, ok)
}

func TestCatalogEnricher_KeepsLargerLimit(t *testing.T) {
	searcher := &fakeProducts{}
	e := NewCatalogEnricher(searcher, nil, zap.NewNop())

	e.Enrich(context.Background(), []int64{1}, 50)

	assert.Equal(t, 50, searcher.gotLimit)
}

func TestCatalogEnricher_EmptyInput(t *testing.T) {
	searcher := &fakeProducts{}
	e := NewCatalogEnricher(searcher, nil, zap.NewNop())

	set := e.Enrich(context.Background(), nil, 20)

	assert.Equal(t, 0, searcher.calls)
	assert.Equal(t, 0, set.Len())
}

func TestCatalogEnricher_SourceFailure(t *testing.T) {
	reg := metrics.NewRegistry()
	e := NewCatalogEnricher(&fakeProducts{err: errUnavailable}, reg, zap.NewNop())

	set := e.Enrich(context.Background(), []int64{1, 2}, 20)

	assert.Equal(t, 0, set.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.EnrichmentMisses.WithLabelValues("catalog_source")))
}

func TestCommentEnricher_Enrich(t *testing.T) {
	source := &fakeComments{entries: []domain.CommentAnnotation{
		{LineID: 1, Comment: "Leave at the door"},
		{LineID: 3, Shipping: "TTN 2045000123"},
	}}
	e := NewCommentEnricher(source, nil, zap.NewNop())

	notes := e.Enrich(context.Background(), []int64{1, 2, 3})

	assert.Equal(t, 1, source.calls)
	c, ok := notes.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "Leave at the door", c.Comment)
	_, ok = notes.Lookup(2)
	assert.False(t, ok)
	c, ok = notes.Lookup(3)
	require.True(t, ok)
	assert.Equal(t, "TTN 2045000123", c.Shipping)
}

func TestCommentEnricher_EmptyInputSkipsCall(t *testing.T) {
	source := &fakeComments{}
	e := NewCommentEnricher(source, nil, zap.NewNop())

	notes := e.Enrich(context.Background(), nil)

	assert.Equal(t, 0, source.calls)
	assert.Empty(t, notes)
}

func TestCommentEnricher_SourceFailure(t *testing.T) {
	reg := metrics.NewRegistry()
	e := NewCommentEnricher(&fakeComments{err: errUnavailable}, reg, zap.NewNop())

	notes := e.Enrich(context.Background(), []int64{1})

	assert.NotNil(t, notes)
	assert.Empty(t, notes)
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.EnrichmentMisses.WithLabelValues("comment_source")))
}
