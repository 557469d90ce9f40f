package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequest(t *testing.T) {
	req := buildRequest("order-123", []Item{
		{ID: "p1", Title: "Pomada", Quantity: 2, UnitPrice: 25.90},
		{ID: "p2", Title: "Shampoo", Quantity: 1, UnitPrice: 39.90},
	})

	assert.Equal(t, "order-123", req.ExternalReference)
	require.Len(t, req.Items, 2)

	first := req.Items[0]
	assert.Equal(t, "p1", first.ID)
	assert.Equal(t, "Pomada", first.Title)
	assert.Equal(t, 2, first.Quantity)
	assert.Equal(t, 25.90, first.UnitPrice)
	assert.Equal(t, "BRL", first.CurrencyID)
}

func TestBuildRequestNoItems(t *testing.T) {
	req := buildRequest("order-456", nil)
	assert.Equal(t, "order-456", req.ExternalReference)
	assert.Empty(t, req.Items)
}
