package cart

import (
	"errors"

	"github.com/google/uuid"

	"github.com/storefront-labs/shop-backend/internal/product"
)

var (
	ErrProductUnavailable = errors.New("product is unavailable")
	ErrProductNotInCart   = errors.New("product not found in cart")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
)

// ProductSource resolves the live product a snapshot is taken from when an
// item enters the cart.
type ProductSource interface {
	GetByUID(uid string) (product.Product, error)
}

type Service struct {
	repo     Repository
	products ProductSource
}

func NewService(repo Repository, products ProductSource) *Service {
	return &Service{repo: repo, products: products}
}

// Create provisions the single cart an owner may have.
func (s *Service) Create(owner string) (Cart, error) {
	c := Cart{
		UID:   uuid.NewString(),
		Owner: owner,
		Items: []LineItem{},
	}
	if err := s.repo.Create(c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (s *Service) Get(owner string) (Cart, error) {
	return s.repo.GetByOwner(owner)
}

// AddItem snapshots the product's current name and price into the cart. A
// product already present merges by summing quantities instead of adding a
// duplicate line.
func (s *Service) AddItem(owner, productID string, quantity int) (Cart, error) {
	if quantity < 1 {
		return Cart{}, ErrInvalidQuantity
	}

	c, err := s.repo.GetByOwner(owner)
	if err != nil {
		return Cart{}, err
	}

	p, err := s.products.GetByUID(productID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return Cart{}, ErrProductUnavailable
		}
		return Cart{}, err
	}
	if p.Deleted() {
		return Cart{}, ErrProductUnavailable
	}

	merged := false
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		c.Items = append(c.Items, LineItem{
			ProductID: p.UID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  quantity,
		})
	}

	c.RecomputeTotal()
	if err := s.repo.Save(c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

// RemoveOneUnit decrements a line by one and drops the line when it reaches
// zero.
func (s *Service) RemoveOneUnit(owner, productID string) (Cart, error) {
	c, err := s.repo.GetByOwner(owner)
	if err != nil {
		return Cart{}, err
	}

	idx := -1
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Cart{}, ErrProductNotInCart
	}

	if c.Items[idx].Quantity > 1 {
		c.Items[idx].Quantity--
	} else {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	}

	c.RecomputeTotal()
	if err := s.repo.Save(c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

// Clear empties the cart. Checkout calls this after recording a purchase.
func (s *Service) Clear(owner string) (Cart, error) {
	c, err := s.repo.GetByOwner(owner)
	if err != nil {
		return Cart{}, err
	}
	c.Items = []LineItem{}
	c.TotalPrice = 0
	if err := s.repo.Save(c); err != nil {
		return Cart{}, err
	}
	return c, nil
}
