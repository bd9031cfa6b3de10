package service

import (
	"github.com/jafarshop/myorders/internal/domain"
)

type labelKey struct {
	category domain.FacetCategory
	code     int64
}

// labelOverrides replace ERP facet labels for well-known delivery terms
var labelOverrides = map[labelKey]string{
	{domain.FacetDelivery, 1}: "Pickup",
	{domain.FacetDelivery, 2}: "Courier Company",
	{domain.FacetDelivery, 3}: "Carrier",
}

// facetCategories lists every category in response order
var facetCategories = []domain.FacetCategory{
	domain.FacetOffices,
	domain.FacetDelivery,
	domain.FacetStatus,
}

// OfficeNames maps partner office codes to directory display names
type OfficeNames map[int64]string

// FacetBuilder turns the raw ERP facet payload into labeled option lists
type FacetBuilder struct{}

// NewFacetBuilder creates a new facet builder
func NewFacetBuilder() *FacetBuilder {
	return &FacetBuilder{}
}

// OfficeCodes returns the office codes referenced by the raw payload
func OfficeCodes(raw domain.RawFacets) []int64 {
	codes := make([]int64, 0, len(raw[domain.FacetOffices]))
	for _, o := range raw[domain.FacetOffices] {
		codes = append(codes, o.Value)
	}
	return codes
}

// Build labels the facet options and computes totals from the counters
// embedded in the first line of the batch
func (b *FacetBuilder) Build(raw domain.RawFacets, lines []domain.OrderLineRecord, perPage int, offices OfficeNames) domain.FacetSet {
	set := domain.FacetSet{
		Offices:  []domain.FacetOption{},
		Delivery: []domain.FacetOption{},
		Status:   []domain.FacetOption{},
	}
	if len(lines) == 0 {
		return set
	}

	for _, category := range facetCategories {
		options := make([]domain.FacetOption, 0, len(raw[category]))
		for _, opt := range raw[category] {
			options = append(options, domain.FacetOption{
				Value: opt.Value,
				Label: b.label(category, opt, offices),
			})
		}

		switch category {
		case domain.FacetOffices:
			set.Offices = options
		case domain.FacetDelivery:
			set.Delivery = options
		case domain.FacetStatus:
			set.Status = options
		}
	}

	first := lines[0]
	var total int64
	if first.OrdersSumTotalNotCancel != nil {
		total = first.OrdersSumTotalNotCancel.IntPart()
	}
	ordersTotal := first.OrdersCountTotal + first.OrdersCountTotalArc
	var pages int64
	if perPage > 0 {
		pages = (ordersTotal + int64(perPage) - 1) / int64(perPage)
	}

	set.Total = &total
	set.OrdersTotal = &ordersTotal
	set.Pages = &pages
	return set
}

func (b *FacetBuilder) label(category domain.FacetCategory, opt domain.FacetOption, offices OfficeNames) string {
	switch category {
	case domain.FacetOffices:
		if name, ok := offices[opt.Value]; ok && name != "" {
			return name
		}
	case domain.FacetDelivery:
		if label, ok := labelOverrides[labelKey{category, opt.Value}]; ok {
			return label
		}
	case domain.FacetStatus:
	}
	return opt.Label
}
