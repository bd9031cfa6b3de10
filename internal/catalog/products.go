package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jafarshop/myorders/internal/domain"
)

// WareIDFilter builds the search expression matching any of the given ware ids.
// Duplicate ids are collapsed, first occurrence order kept.
func WareIDFilter(wareIDs []int64) string {
	seen := make(map[int64]struct{}, len(wareIDs))
	terms := make([]string, 0, len(wareIDs))
	for _, id := range wareIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		terms = append(terms, "ware_id:"+strconv.FormatInt(id, 10))
	}
	return strings.Join(terms, " OR ")
}

// SearchByWareIDs runs one index query for the whole id set and returns the matched products
func (c *Client) SearchByWareIDs(ctx context.Context, wareIDs []int64, limit int) ([]domain.ProductView, error) {
	if len(wareIDs) == 0 {
		return nil, nil
	}

	variables := map[string]interface{}{
		"query": WareIDFilter(wareIDs),
		"first": limit,
	}

	resp, err := c.Execute(ctx, "productsByWareIds", ProductsByWareIDsQuery, variables)
	if err != nil {
		return nil, err
	}

	var result productsResult
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, c.upstreamErr("productsByWareIds", fmt.Errorf("failed to parse products: %w", err))
	}

	products := make([]domain.ProductView, 0, len(result.Products.Nodes))
	for _, node := range result.Products.Nodes {
		products = append(products, node.toDomain())
	}
	return products, nil
}

func (n productNode) toDomain() domain.ProductView {
	p := domain.ProductView{
		ID:            n.ID,
		WareID:        n.WareID,
		Title:         n.Title,
		Description:   n.Description,
		DescriptionEN: n.DescriptionEN,
		DescriptionRU: n.DescriptionRU,
		DescriptionUK: n.DescriptionUK,
		UPC:           n.UPC,
		Slug:          n.Slug,
		Images:        make([]domain.ProductImage, 0, len(n.Images)),
	}
	if n.Trademark != nil {
		p.TrademarkName = n.Trademark.Description
		p.TrademarkSlug = n.Trademark.Slug
	}
	for _, img := range n.Images {
		p.Images = append(p.Images, domain.ProductImage{Original: img.Original, DisplayOrder: img.DisplayOrder})
	}
	return p
}
