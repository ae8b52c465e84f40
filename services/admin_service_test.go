package services_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshvali1990/Society-maintenance-tracker/services"
)

func TestAdminAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewAdminService(db, testConfig())

	created, err := svc.CreateAdmin("ravi", "secret123", "admin")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", created.Password)

	admin, err := svc.Authenticate("ravi", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, admin.ID)

	_, err = svc.Authenticate("ravi", "wrong")
	assert.ErrorIs(t, err, services.ErrPasswordIncorrect)

	_, err = svc.Authenticate("nobody", "secret123")
	assert.ErrorIs(t, err, services.ErrAdminNotFound)
}

func TestCreateAdminDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewAdminService(db, testConfig())

	_, err := svc.CreateAdmin("ravi", "secret123", "admin")
	require.NoError(t, err)

	_, err = svc.CreateAdmin("ravi", "other456", "admin")
	assert.ErrorIs(t, err, services.ErrUsernameAlreadyUsed)
}

func TestEnsureDefaultAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewAdminService(db, testConfig())

	require.NoError(t, svc.EnsureDefaultAdmin())
	// 重复调用不应再创建
	require.NoError(t, svc.EnsureDefaultAdmin())

	admin, err := svc.Authenticate("admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)
}

func TestJWTGenerateAndValidate(t *testing.T) {
	svc := services.NewJWTService(testConfig())

	tokenString, err := svc.GenerateToken(7, "admin")
	require.NoError(t, err)

	token, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(7), claims["user_id"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "society-maintenance-tracker", claims["iss"])

	_, err = svc.ValidateToken(tokenString + "tampered")
	assert.Error(t, err)
}
