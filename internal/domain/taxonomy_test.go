package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatusTaxonomy(t *testing.T) {
	tax := NewStatusTaxonomy([]StatusDefinition{
		{ID: 1, Code: 10, Title: "Accepted"},
		{ID: 2, Code: 10, Title: "Duplicate"},
		{ID: 3, Code: 0, Title: "Picked up", Position: PositionPickup},
		{ID: 4, Code: 40, Title: "Delivered", Position: PositionLast},
		{ID: 5, Code: 50, Title: "Also last", Position: PositionLast},
	})

	def, ok := tax.Lookup(10)
	require.True(t, ok)
	assert.Equal(t, "Accepted", def.Title)

	_, ok = tax.Lookup(0)
	assert.False(t, ok, "unbound definitions are not addressable by code")

	pickup, ok := tax.Pickup()
	require.True(t, ok)
	assert.Equal(t, int64(3), pickup.ID)

	last, ok := tax.Last()
	require.True(t, ok)
	assert.Equal(t, int64(4), last.ID)

	assert.Equal(t, 3, tax.Len())
}

func TestStatusTaxonomy_NoBoundaries(t *testing.T) {
	tax := NewStatusTaxonomy(nil)

	_, ok := tax.Pickup()
	assert.False(t, ok)
	_, ok = tax.Last()
	assert.False(t, ok)
	_, ok = tax.Lookup(5)
	assert.False(t, ok)
}

func TestOrderLineRecord_LineTotal(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		quantity int64
		want     int64
	}{
		{name: "floors unit price", price: "10.99", quantity: 3, want: 30},
		{name: "whole price", price: "250", quantity: 2, want: 500},
		{name: "zero quantity", price: "5.5", quantity: 0, want: 0},
		{name: "negative clamps to zero", price: "5", quantity: -1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := OrderLineRecord{UnitPrice: mustDecimal(t, tt.price), Quantity: tt.quantity}
			assert.Equal(t, tt.want, r.LineTotal())
		})
	}
}

func TestProductView_DefaultImage(t *testing.T) {
	p := ProductView{Images: []ProductImage{{Original: "/2.jpg", DisplayOrder: 2}, {Original: "/1.jpg", DisplayOrder: 1}}}
	require.NotNil(t, p.DefaultImage())
	assert.Equal(t, "/1.jpg", *p.DefaultImage())

	assert.Nil(t, ProductView{}.DefaultImage())
}

func TestParseShippingType(t *testing.T) {
	assert.Equal(t, ShippingClient, ParseShippingType("ДоКлиента"))
	assert.Equal(t, ShippingCarrier, ParseShippingType("СиламиПеревозчика"))
	assert.Equal(t, ShippingOffice, ParseShippingType("Самовывоз"))
	assert.Equal(t, ShippingOffice, ParseShippingType("unknown"))
}

func TestFacetCategory_String(t *testing.T) {
	assert.Equal(t, "offices", FacetOffices.String())
	assert.Equal(t, "delivery", FacetDelivery.String())
	assert.Equal(t, "status", FacetStatus.String())
}
