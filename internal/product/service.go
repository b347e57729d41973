package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid product input")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(name, description string, price float64, quantity int) (Product, error) {
	if name == "" || description == "" || price < 0 || quantity < 1 {
		return Product{}, ErrInvalidInput
	}
	now := time.Now().UTC()
	return s.repo.Create(Product{
		UID:         uuid.NewString(),
		Name:        name,
		Description: description,
		Price:       price,
		Quantity:    quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *Service) List(page, limit int) ([]Product, int, error) {
	if page < 1 || limit < 1 {
		return nil, 0, ErrInvalidInput
	}
	return s.repo.List(page, limit)
}

func (s *Service) GetByUID(uid string) (Product, error) {
	return s.repo.GetByUID(uid)
}

func (s *Service) Update(uid string, upd Update) (Product, error) {
	if upd.Price != nil && *upd.Price < 0 {
		return Product{}, ErrInvalidInput
	}
	if upd.Quantity != nil && *upd.Quantity < 1 {
		return Product{}, ErrInvalidInput
	}
	return s.repo.Update(uid, upd)
}

func (s *Service) SoftDelete(uid string) error {
	return s.repo.SoftDelete(uid, time.Now().UTC())
}
