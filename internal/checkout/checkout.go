package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/storefront-labs/shop-backend/internal/cart"
	"github.com/storefront-labs/shop-backend/internal/inventory"
	"github.com/storefront-labs/shop-backend/internal/purchase"
)

// State names the phase a checkout is in. A failed checkout reports the
// state it aborted from so callers can tell a clean rejection (Validating)
// from a partially applied commit (Committing).
type State string

const (
	StatePending    State = "PENDING"
	StateValidating State = "VALIDATING"
	StateCommitting State = "COMMITTING"
	StateCompleted  State = "COMPLETED"
	StateAborted    State = "ABORTED"
)

var (
	ErrCartNotFound = errors.New("cart not found for this owner")
	ErrEmptyCart    = errors.New("cart is empty")
)

// ProductNotFoundError names the cart line whose product no longer exists.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// ProductUnavailableError names a cart line whose product was soft-deleted
// after it entered the cart. Validation re-checks deletion against the live
// record; the cart snapshot is never trusted for availability.
type ProductUnavailableError struct {
	ProductID string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %s is deleted and cannot be purchased", e.ProductID)
}

// Error wraps a checkout failure with the state it aborted in.
type Error struct {
	State State
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("checkout aborted during %s: %v", e.State, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Carts is the slice of the cart service the orchestrator drives.
type Carts interface {
	Get(owner string) (cart.Cart, error)
	Clear(owner string) (cart.Cart, error)
}

// Ledger is the slice of the inventory ledger the orchestrator drives.
// TryDecrement is the true enforcement point against oversell; Stock only
// feeds the advisory validation pass.
type Ledger interface {
	TryDecrement(productID string, amount int) (int, error)
	Stock(productID string) (inventory.Stock, error)
}

type Recorder interface {
	Record(owner string, items []cart.LineItem) (purchase.Purchase, error)
}

// Orchestrator turns "cart -> purchase + stock decrement + empty cart" into
// one logical operation over three independently stored aggregates. There is
// no cross-aggregate transaction: stock safety rests entirely on the
// ledger's conditional decrement, and a commit-phase failure leaves earlier
// decrements of the same request applied (documented trade-off; the caller
// must resubmit).
type Orchestrator struct {
	carts    Carts
	ledger   Ledger
	recorder Recorder

	validateLimit int

	mu     sync.Mutex
	owners map[string]*sync.Mutex
}

func NewOrchestrator(carts Carts, ledger Ledger, recorder Recorder) *Orchestrator {
	return &Orchestrator{
		carts:         carts,
		ledger:        ledger,
		recorder:      recorder,
		validateLimit: 8,
		owners:        make(map[string]*sync.Mutex),
	}
}

// Checkout runs the purchase flow for one owner:
// load cart -> validate every line -> decrement stock -> record purchase ->
// clear cart. At most one checkout per owner runs at a time in this process,
// so a double submit observes the emptied cart and gets ErrEmptyCart instead
// of re-committing.
func (o *Orchestrator) Checkout(ctx context.Context, owner string) (purchase.Purchase, error) {
	lock := o.ownerLock(owner)
	lock.Lock()
	defer lock.Unlock()

	c, err := o.carts.Get(owner)
	if err != nil {
		if errors.Is(err, cart.ErrNotFound) {
			return purchase.Purchase{}, &Error{State: StatePending, Err: ErrCartNotFound}
		}
		return purchase.Purchase{}, &Error{State: StatePending, Err: err}
	}
	if c.Empty() {
		return purchase.Purchase{}, &Error{State: StatePending, Err: ErrEmptyCart}
	}

	if err := o.validate(ctx, c.Items); err != nil {
		return purchase.Purchase{}, &Error{State: StateValidating, Err: err}
	}

	// Snapshot the line items now; totals are fixed at this instant.
	items := make([]cart.LineItem, len(c.Items))
	copy(items, c.Items)

	if err := ctx.Err(); err != nil {
		return purchase.Purchase{}, &Error{State: StateValidating, Err: err}
	}

	// Commit pass. State can have moved since validation, so each
	// conditional decrement may still fail; when it does, decrements
	// already applied in this pass stay applied and no purchase record is
	// written.
	for _, item := range items {
		if _, err := o.ledger.TryDecrement(item.ProductID, item.Quantity); err != nil {
			return purchase.Purchase{}, &Error{State: StateCommitting, Err: err}
		}
	}

	p, err := o.recorder.Record(owner, items)
	if err != nil {
		return purchase.Purchase{}, &Error{State: StateCommitting, Err: err}
	}

	if _, err := o.carts.Clear(owner); err != nil {
		return purchase.Purchase{}, &Error{State: StateCommitting, Err: err}
	}

	return p, nil
}

// validate is the advisory pass: every line's product must exist, be
// undeleted and hold enough stock. Any failure aborts with zero mutation.
func (o *Orchestrator) validate(ctx context.Context, items []cart.LineItem) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(o.validateLimit)

	for _, item := range items {
		item := item
		g.Go(func() error {
			s, err := o.ledger.Stock(item.ProductID)
			if err != nil {
				if errors.Is(err, inventory.ErrNotFound) {
					return &ProductNotFoundError{ProductID: item.ProductID}
				}
				return err
			}
			if s.Deleted {
				return &ProductUnavailableError{ProductID: item.ProductID}
			}
			if s.Quantity < item.Quantity {
				return &inventory.InsufficientStockError{
					ProductID: item.ProductID,
					Available: s.Quantity,
					Requested: item.Quantity,
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func (o *Orchestrator) ownerLock(owner string) *sync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()
	lock, ok := o.owners[owner]
	if !ok {
		lock = &sync.Mutex{}
		o.owners[owner] = lock
	}
	return lock
}
