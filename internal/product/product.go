package product

import "time"

// Product is a stock-bearing catalog item. Quantity is only ever changed
// through the inventory ledger's conditional operations; once DeletedAt is
// set the product is immutable and unpurchasable.
type Product struct {
	UID         string     `json:"uid"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Quantity    int        `json:"quantity"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

func (p Product) Deleted() bool {
	return p.DeletedAt != nil
}

// Update carries the optional fields of a product update. Nil means
// "leave unchanged".
type Update struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
}
