package cart

// LineItem is one product entry in a cart, carrying the name/price snapshot
// taken when the product was added.
type LineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Cart holds the line items of one owner. TotalPrice is derived and is
// recomputed after every mutation, never trusted on its own.
type Cart struct {
	UID        string     `json:"uid"`
	Owner      string     `json:"owner"`
	Items      []LineItem `json:"products"`
	TotalPrice float64    `json:"totalPrice"`
}

func (c *Cart) RecomputeTotal() {
	total := 0.0
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	c.TotalPrice = total
}

func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}
