package purchase

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefront-labs/shop-backend/internal/cart"
)

// Recorder turns cart line items into an immutable purchase snapshot and
// persists it. It never touches inventory or cart state; the checkout
// orchestrator owns those.
type Recorder struct {
	repo Repository
}

func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo}
}

func (r *Recorder) Record(owner string, items []cart.LineItem) (Purchase, error) {
	snapshot := make([]LineItem, 0, len(items))
	total := 0.0
	for _, item := range items {
		lineTotal := item.Price * float64(item.Quantity)
		snapshot = append(snapshot, LineItem{
			ProductID:  item.ProductID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
			TotalPrice: lineTotal,
		})
		total += lineTotal
	}

	p := Purchase{
		UID:         uuid.NewString(),
		Owner:       owner,
		Products:    snapshot,
		TotalAmount: total,
		CreatedAt:   time.Now().UTC(),
	}
	if err := r.repo.Create(p); err != nil {
		return Purchase{}, err
	}
	return p, nil
}

func (r *Recorder) ListByOwner(owner string) ([]Purchase, error) {
	return r.repo.ListByOwner(owner)
}

func (r *Recorder) ListByProduct(productID string) ([]Purchase, error) {
	return r.repo.ListByProduct(productID)
}
