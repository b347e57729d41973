package provisioning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/storefront-labs/shop-backend/internal/user"
)

// ProvisioningError reports a registration whose remote cart creation failed.
// The wrapped error keeps the remote status/message when one was received.
type ProvisioningError struct {
	Owner string
	Err   error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("cart provisioning failed for user %s: %v", e.Owner, e.Err)
}

func (e *ProvisioningError) Unwrap() error {
	return e.Err
}

// Users is the slice of the user service the saga drives.
type Users interface {
	Create(name, email, password string) (user.User, error)
	SoftDelete(id string) error
}

// Minter mints the short-lived credential presented to the cart service.
type Minter interface {
	Mint(owner string) (string, error)
}

// Carts is the remote cart API.
type Carts interface {
	CreateCart(ctx context.Context, owner, token string) (RemoteCart, error)
	GetCart(ctx context.Context, owner string) (RemoteCart, error)
}

// Saga coordinates user creation with remote cart creation. The two live in
// different services with no shared transaction, so the saga compensates:
// when the cart call fails, the just-created user is soft-deleted before the
// error is returned, and registration never reports success for a cartless
// user.
type Saga struct {
	users  Users
	minter Minter
	carts  Carts
	log    *slog.Logger
}

func NewSaga(users Users, minter Minter, carts Carts, log *slog.Logger) *Saga {
	if log == nil {
		log = slog.Default()
	}
	return &Saga{users: users, minter: minter, carts: carts, log: log}
}

// Register runs the saga: persist the user, mint the scoped credential, call
// the remote cart endpoint, compensate on failure.
func (s *Saga) Register(ctx context.Context, name, email, password string) (user.User, RemoteCart, error) {
	u, err := s.users.Create(name, email, password)
	if err != nil {
		// Nothing was provisioned yet; no network call, no compensation.
		return user.User{}, RemoteCart{}, err
	}

	token, err := s.minter.Mint(u.ID)
	if err != nil {
		return user.User{}, RemoteCart{}, s.compensate(u, err)
	}

	remote, err := s.carts.CreateCart(ctx, u.ID, token)
	if err != nil {
		if errors.Is(err, ErrAlreadyProvisioned) {
			// A previous attempt (e.g. one that timed out after the
			// remote side committed) already created the cart.
			s.log.Info("cart already provisioned, treating as success", "owner", u.ID)
			if existing, getErr := s.carts.GetCart(ctx, u.ID); getErr == nil {
				return u, existing, nil
			}
			return u, RemoteCart{Owner: u.ID}, nil
		}
		return user.User{}, RemoteCart{}, s.compensate(u, err)
	}

	return u, remote, nil
}

// compensate soft-deletes the user created earlier in this saga run. If the
// compensation itself fails, the orphaned row is logged loudly; that is the
// one spot where manual cleanup may be needed.
func (s *Saga) compensate(u user.User, cause error) error {
	if err := s.users.SoftDelete(u.ID); err != nil {
		s.log.Error("compensation failed, orphaned user left behind",
			"owner", u.ID, "cause", cause, "error", err)
	} else {
		s.log.Warn("registration rolled back after provisioning failure",
			"owner", u.ID, "cause", cause)
	}
	return &ProvisioningError{Owner: u.ID, Err: cause}
}
