package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	user *User
}

func (s *stubUserRepo) FindByUsername(context.Context, string) (*User, error) {
	if s.user == nil {
		return nil, ErrInvalidCredentials
	}
	return s.user, nil
}

func TestAuthenticateWithPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("correctpass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	svc := NewService(&stubUserRepo{user: &User{
		ID: 1, Username: "karim", Role: "manager", PasswordHash: string(hashed), IsActive: true,
	}})

	user, err := svc.Authenticate(context.Background(), "karim", "correctpass")
	require.NoError(t, err)
	assert.Equal(t, "manager", user.Role)

	_, err = svc.Authenticate(context.Background(), "karim", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateLegacyAccountWithoutPassword(t *testing.T) {
	svc := NewService(&stubUserRepo{user: &User{
		ID: 2, Username: "yassin", Role: "staff", IsActive: true,
	}})

	user, err := svc.Authenticate(context.Background(), "yassin", "")
	require.NoError(t, err)
	assert.Equal(t, "yassin", user.Username)
}

func TestAuthenticateRejectsInactiveAndUnknown(t *testing.T) {
	svc := NewService(&stubUserRepo{user: &User{
		ID: 3, Username: "ancien", Role: "staff", IsActive: false,
	}})
	_, err := svc.Authenticate(context.Background(), "ancien", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	svc = NewService(&stubUserRepo{})
	_, err = svc.Authenticate(context.Background(), "inconnu", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
