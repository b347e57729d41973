package purchase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-labs/shop-backend/internal/cart"
)

func TestRecordComputesTotals(t *testing.T) {
	repo := NewInMemoryRepository()
	recorder := NewRecorder(repo)

	p, err := recorder.Record("owner-1", []cart.LineItem{
		{ProductID: "p1", Name: "Keyboard", Price: 10, Quantity: 2},
		{ProductID: "p2", Name: "Mouse", Price: 5, Quantity: 1},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, p.UID)
	assert.Equal(t, "owner-1", p.Owner)
	require.Len(t, p.Products, 2)
	assert.Equal(t, 20.0, p.Products[0].TotalPrice)
	assert.Equal(t, 5.0, p.Products[1].TotalPrice)
	assert.Equal(t, 25.0, p.TotalAmount)

	// the aggregate always equals the sum of the line totals
	sum := 0.0
	for _, item := range p.Products {
		sum += item.TotalPrice
	}
	assert.Equal(t, sum, p.TotalAmount)
}

func TestListByProduct(t *testing.T) {
	repo := NewInMemoryRepository()
	recorder := NewRecorder(repo)

	_, err := recorder.Record("owner-1", []cart.LineItem{
		{ProductID: "p1", Name: "Keyboard", Price: 10, Quantity: 1},
	})
	require.NoError(t, err)
	_, err = recorder.Record("owner-2", []cart.LineItem{
		{ProductID: "p2", Name: "Mouse", Price: 5, Quantity: 1},
	})
	require.NoError(t, err)

	matches, err := recorder.ListByProduct("p1")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "owner-1", matches[0].Owner)

	none, err := recorder.ListByProduct("p3")
	require.NoError(t, err)
	assert.Empty(t, none)
}
