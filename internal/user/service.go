package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidInput = errors.New("invalid user input")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create persists a new user with a hashed password. The provisioning saga
// calls this as its first step; cart provisioning happens afterwards.
func (s *Service) Create(name, email, password string) (User, error) {
	if name == "" || !strings.Contains(email, "@") || len(password) < 6 {
		return User{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByEmail(email); err == nil {
		return User{}, ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	return s.repo.Create(User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  string(hashed),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *Service) Authenticate(email, password string) (User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetByID(id string) (User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return User{}, err
	}
	if u.Deleted() {
		return User{}, ErrNotFound
	}
	return u, nil
}

// SoftDelete marks the user inactive. The provisioning saga uses it to
// compensate a failed cart creation.
func (s *Service) SoftDelete(id string) error {
	return s.repo.SoftDelete(id, time.Now().UTC())
}
