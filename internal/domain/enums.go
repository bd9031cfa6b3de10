package domain

// Position marks where a status sits in the fulfillment lifecycle.
// The stored marker is passed through as is; only pickup and last change ordering.
type Position string

const (
	PositionNormal Position = ""
	PositionPickup Position = "pickup"
	PositionLast   Position = "last"
)

// IsBoundary reports whether the position designates a synthetic boundary state
func (p Position) IsBoundary() bool {
	return p == PositionPickup || p == PositionLast
}

// IsValid checks if the position marker is known
func (p Position) IsValid() bool {
	switch p {
	case PositionNormal, PositionPickup, PositionLast:
		return true
	default:
		return false
	}
}

// FacetCategory is one of the filterable dimensions offered with the order list
type FacetCategory int

const (
	FacetOffices FacetCategory = iota
	FacetDelivery
	FacetStatus
)

// String returns the response key for the category
func (c FacetCategory) String() string {
	switch c {
	case FacetOffices:
		return "offices"
	case FacetDelivery:
		return "delivery"
	case FacetStatus:
		return "status"
	default:
		return "unknown"
	}
}

// ShippingType is the normalized shipping kind shown on the order detail page
type ShippingType string

const (
	ShippingOffice  ShippingType = "office"
	ShippingClient  ShippingType = "client"
	ShippingCarrier ShippingType = "np"
)

var shippingTypes = map[string]ShippingType{
	"Самовывоз":         ShippingOffice,
	"ДоКлиента":         ShippingClient,
	"СиламиПеревозчика": ShippingCarrier,
}

// ParseShippingType maps the customer-service shipping label to a ShippingType.
// Unknown labels fall back to office pickup.
func ParseShippingType(raw string) ShippingType {
	if t, ok := shippingTypes[raw]; ok {
		return t
	}
	return ShippingOffice
}
