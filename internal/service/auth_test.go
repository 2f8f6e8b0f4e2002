package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loren166/foodgram-project-react/internal/service"
	"github.com/loren166/foodgram-project-react/internal/testhelpers"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewAuthService(db, "test-secret")

	user, err := svc.Register("chef@example.com", "chef", "Ann", "Lee", "password123")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "password123", user.PasswordHash, "password must be hashed")

	token, err := svc.Login("chef@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.Login("chef@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestRegisterDuplicate(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewAuthService(db, "test-secret")

	_, err := svc.Register("chef@example.com", "chef", "Ann", "Lee", "password123")
	require.NoError(t, err)

	_, err = svc.Register("chef@example.com", "other", "Bob", "Ray", "password123")
	assert.ErrorIs(t, err, service.ErrUserExists)

	_, err = svc.Register("other@example.com", "chef", "Bob", "Ray", "password123")
	assert.ErrorIs(t, err, service.ErrUserExists)
}

func TestTokenRoundTrip(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewAuthService(db, "test-secret")

	user, err := svc.Register("chef@example.com", "chef", "Ann", "Lee", "password123")
	require.NoError(t, err)

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "chef", claims.Username)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := service.NewAuthService(db, "test-secret")

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)

	// a token signed with a different secret must not validate
	other := service.NewAuthService(db, "other-secret")
	user, err := other.Register("chef@example.com", "chef", "Ann", "Lee", "password123")
	require.NoError(t, err)
	token, err := other.GenerateToken(user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}
