package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCreateValidatesInput(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	cases := []struct {
		name        string
		productName string
		description string
		price       float64
		quantity    int
	}{
		{"empty name", "", "a desc", 10, 1},
		{"empty description", "Keyboard", "", 10, 1},
		{"negative price", "Keyboard", "a desc", -1, 1},
		{"zero quantity", "Keyboard", "a desc", 10, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(tc.productName, tc.description, tc.price, tc.quantity)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestServiceCreateAssignsUID(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	p, err := svc.Create("Keyboard", "mechanical", 49.9, 3)
	require.NoError(t, err)
	assert.NotEmpty(t, p.UID)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := svc.GetByUID(p.UID)
	require.NoError(t, err)
	assert.Equal(t, p.UID, got.UID)
}

func TestServiceUpdateValidatesFields(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	p, err := svc.Create("Keyboard", "mechanical", 49.9, 3)
	require.NoError(t, err)

	badPrice := -5.0
	_, err = svc.Update(p.UID, Update{Price: &badPrice})
	assert.ErrorIs(t, err, ErrInvalidInput)

	badQty := 0
	_, err = svc.Update(p.UID, Update{Quantity: &badQty})
	assert.ErrorIs(t, err, ErrInvalidInput)

	newName := "Keyboard v2"
	updated, err := svc.Update(p.UID, Update{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Keyboard v2", updated.Name)
	// untouched fields survive a partial update
	assert.Equal(t, 49.9, updated.Price)
}

func TestServiceSoftDeleteBlocksFurtherEdits(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	p, err := svc.Create("Keyboard", "mechanical", 49.9, 3)
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(p.UID))

	newName := "Keyboard v2"
	_, err = svc.Update(p.UID, Update{Name: &newName})
	assert.ErrorIs(t, err, ErrDeleted)

	assert.ErrorIs(t, svc.SoftDelete(p.UID), ErrDeleted)
}

func TestServiceListPaginates(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	for i := 0; i < 5; i++ {
		_, err := svc.Create("Keyboard", "mechanical", 10, 1)
		require.NoError(t, err)
	}

	page, total, err := svc.List(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, page, 2)

	_, _, err = svc.List(0, 2)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
