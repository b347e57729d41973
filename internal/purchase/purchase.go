package purchase

import "time"

// LineItem is an immutable snapshot of one purchased product.
type LineItem struct {
	ProductID  string  `json:"productId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"totalPrice"`
}

// Purchase is created exactly once per successful checkout and never mutated
// afterward.
type Purchase struct {
	UID         string     `json:"uid"`
	Owner       string     `json:"owner"`
	Products    []LineItem `json:"products"`
	TotalAmount float64    `json:"totalAmount"`
	CreatedAt   time.Time  `json:"createdAt"`
}
