package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuswatch/campuswatch-be/internal/models"
)

func TestUserService_Register(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	user, err := svc.Register("Alice", "alice@campus.edu", "hunter22", models.RoleCitizen, "555-0100")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@campus.edu", user.Email)
	assert.Equal(t, models.RoleCitizen, user.Role)
	assert.Equal(t, "555-0100", user.Phone)
	assert.Equal(t, 0, user.RewardPoints)
	assert.Empty(t, user.PasswordHash, "password hash must never leave the service")
	assert.False(t, user.CreatedAt.IsZero())
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	_, err := svc.Register("Alice", "alice@campus.edu", "hunter22", models.RoleCitizen, "")
	require.NoError(t, err)

	_, err = svc.Register("Other Alice", "alice@campus.edu", "different", models.RolePolice, "")
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserService_Register_Validation(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	tests := []struct {
		name                  string
		userName, email, pass string
		role                  models.Role
	}{
		{"missing name", "", "a@b.c", "pw", models.RoleCitizen},
		{"missing email", "A", "", "pw", models.RoleCitizen},
		{"missing password", "A", "a@b.c", "", models.RoleCitizen},
		{"unknown role", "A", "a@b.c", "pw", models.Role("Superhero")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(tt.userName, tt.email, tt.pass, tt.role, "")
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUserService_Authenticate(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	registered, err := svc.Register("Bob", "bob@campus.edu", "s3cret", models.RolePolice, "")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		user, err := svc.Authenticate("bob@campus.edu", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.Equal(t, models.RolePolice, user.Role)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate("bob@campus.edu", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate("nobody@campus.edu", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserService_GetUserByID_NotFound(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	_, err := svc.GetUserByID("no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}
