package inventory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryDecrement(t *testing.T) {
	l := NewMemoryLedger([]Stock{{ProductID: "p1", Quantity: 5}})

	qty, err := l.TryDecrement("p1", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, qty)

	_, err = l.TryDecrement("p1", 3)
	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 2, insufficient.Available)
	assert.Equal(t, 3, insufficient.Requested)

	// failed decrement left the counter untouched
	s, err := l.Stock("p1")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Quantity)
}

func TestTryDecrementMissingAndDeleted(t *testing.T) {
	l := NewMemoryLedger([]Stock{{ProductID: "gone", Quantity: 4, Deleted: true}})

	_, err := l.TryDecrement("nope", 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = l.TryDecrement("gone", 1)
	assert.ErrorIs(t, err, ErrDeleted)

	_, err = l.Increment("gone", 1)
	assert.ErrorIs(t, err, ErrDeleted)

	assert.False(t, l.IsAvailable("gone"))
	assert.False(t, l.IsAvailable("nope"))
}

// Concurrent decrements against one product must never oversell: the number
// of successes is bounded by the initial quantity and the counter never goes
// negative.
func TestTryDecrementNoOversell(t *testing.T) {
	const initial = 50
	const workers = 200

	l := NewMemoryLedger([]Stock{{ProductID: "p1", Quantity: initial}})

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.TryDecrement("p1", 1); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, initial, successes)
	s, err := l.Stock("p1")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Quantity)
}

func TestIncrement(t *testing.T) {
	l := NewMemoryLedger([]Stock{{ProductID: "p1", Quantity: 1}})
	qty, err := l.Increment("p1", 4)
	require.NoError(t, err)
	assert.Equal(t, 5, qty)
}
