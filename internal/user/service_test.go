package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHashesPassword(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	u, err := svc.Create("Alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "secret123", u.Password)

	got, err := svc.Authenticate("alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestCreateValidatesInput(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	cases := []struct {
		name, email, password string
	}{
		{"", "alice@example.com", "secret123"},
		{"Alice", "not-an-email", "secret123"},
		{"Alice", "alice@example.com", "short"},
	}
	for _, tc := range cases {
		_, err := svc.Create(tc.name, tc.email, tc.password)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	_, err := svc.Create("Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Create("Other Alice", "alice@example.com", "secret123")
	assert.ErrorIs(t, err, ErrEmailExists)
}

// An email held only by a soft-deleted account is free to register again.
func TestCreateReusesSoftDeletedEmail(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	first, err := svc.Create("Alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	require.NoError(t, svc.SoftDelete(first.ID))

	second, err := svc.Create("Alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	svc := NewService(NewInMemoryRepository())
	_, err := svc.Create("Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Authenticate("alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetByIDHidesDeletedUsers(t *testing.T) {
	svc := NewService(NewInMemoryRepository())
	u, err := svc.Create("Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(u.ID))

	_, err = svc.GetByID(u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
