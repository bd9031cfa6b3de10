package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineRecord is one order line as returned by the ERP order list query
type OrderLineRecord struct {
	OrderID     int64
	LineID      int64
	WareID      int64
	WareName    string
	WareNum     string
	TradeMark   string
	Quantity    int64
	UnitPrice   decimal.Decimal
	StatusCode  int64
	OrderDate   string
	OrderNumber string
	OfficeName  string

	// Aggregate counters the ERP embeds in every line of the batch
	OrdersCountTotal        int64
	OrdersCountTotalArc     int64
	OrdersSumTotalNotCancel *decimal.Decimal
}

// LineTotal is floor(unit price) times quantity, never negative
func (r OrderLineRecord) LineTotal() int64 {
	total := r.UnitPrice.Floor().IntPart() * r.Quantity
	if total < 0 {
		return 0
	}
	return total
}

// ProductImage is one image of a catalog product
type ProductImage struct {
	Original     string
	DisplayOrder int
}

// ProductView is the presentation data for a product from the catalog index
type ProductView struct {
	ID            string
	WareID        int64
	Title         string
	Description   string
	DescriptionEN string
	DescriptionRU string
	DescriptionUK string
	TrademarkName string
	TrademarkSlug string
	UPC           string
	Slug          string
	Images        []ProductImage
}

// DefaultImage returns the image flagged with display order 1
func (p ProductView) DefaultImage() *string {
	for _, img := range p.Images {
		if img.DisplayOrder == 1 {
			original := img.Original
			return &original
		}
	}
	return nil
}

// CommentAnnotation holds the customer-service notes for one order line
type CommentAnnotation struct {
	LineID   int64
	Comment  string
	Shipping string
}

// StatusDefinition is the display configuration of one ERP status code
type StatusDefinition struct {
	ID           int64
	Code         int64 // zero when not bound to an ERP status
	Title        string
	Position     Position
	Color        string
	Image        *string
	ImageList    *string
	ShowExpected bool
	ShowComment  bool
}

// Office is a partner directory entry
type Office struct {
	ID        uuid.UUID
	Code      int64
	Name      string
	Address   string
	Phone     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LineStatus is the status block rendered on an order line
type LineStatus struct {
	Name         *string
	Comment      string
	Delivery     string
	Image        *string
	Position     *Position
	Color        *string
	ShowExpected *bool
	ShowComment  *bool
}

// OrderLineView is one line of an order summary
type OrderLineView struct {
	ID            int64
	ProductID     string
	Image         *string
	Title         string
	Description   string
	DescriptionEN string
	DescriptionRU string
	DescriptionUK string
	Trademark     string
	TrademarkSlug string
	UPC           string
	WareID        int64
	Slug          string
	Status        LineStatus
	Quantity      int64
	Total         int64
	UnitPrice     int64
}

// OrderSummary groups the lines of one order
type OrderSummary struct {
	ID     int64
	Number string
	Office string
	Date   time.Time
	Lines  []OrderLineView
	Total  int64
}

// FacetOption is one selectable filter value
type FacetOption struct {
	Value int64
	Label string
}

// FacetSet is the filter options and pagination totals of an order list
type FacetSet struct {
	Offices     []FacetOption
	Delivery    []FacetOption
	Status      []FacetOption
	Total       *int64
	OrdersTotal *int64
	Pages       *int64
}

// StateEntry is one raw status-history entry of an order
type StateEntry struct {
	StatusCode int64
	Date       string
}

// OrderStates is the customer-service shipping record of one order line
type OrderStates struct {
	OrderID         int64
	ShippingType    string
	Shipping        string
	ShippingAddr    string
	DeliveryNum     string
	DeliveryStatus  string
	Canceled        bool
	DeliveryDate    string
	SalesOfficeCode int64
	States          []StateEntry
}

// TimelineState is one step of a fulfillment timeline
type TimelineState struct {
	ID        int64
	Title     string
	Image     *string
	ImageList *string
	Color     string
	Date      *string
	Active    bool
	Position  Position
}

// FulfillmentTimeline is the ordered status history of an order with its progress
type FulfillmentTimeline struct {
	States      []TimelineState
	Percent     int
	Current     *int64
	Color       *string
	Image       *string
	TotalActive int
}

// RawFacets is the facet payload of the ERP order query, labels as the ERP sent them
type RawFacets map[FacetCategory][]FacetOption
