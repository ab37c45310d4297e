package handlers_test

import (
	"testing"

	"github.com/AlexYeap93/ridealong-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupDB(t)
	r := setupRouter(db)

	w := doRequest(r, "POST", "/api/auth/register", "", payload{
		"username": "alex",
		"email":    "alex@example.com",
		"password": "password123",
		"userType": "rider",
	})
	requireStatus(t, w, 201)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])

	w = doRequest(r, "POST", "/api/auth/login", "", payload{
		"email":    "alex@example.com",
		"password": "password123",
	})
	requireStatus(t, w, 200)
	body = decodeBody(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	// Token grants access to protected routes
	w = doRequest(r, "GET", "/api/users/profile", token, nil)
	requireStatus(t, w, 200)
	body = decodeBody(t, w)
	assert.Equal(t, "alex", body["username"])

	// Password hashes never leak
	var user models.User
	require.NoError(t, db.Where("email = ?", "alex@example.com").First(&user).Error)
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := setupDB(t)
	r := setupRouter(db)

	createUser(t, db, "alex", models.UserTypeRider)

	w := doRequest(r, "POST", "/api/auth/login", "", payload{
		"email":    "alex@example.com",
		"password": "wrong-password",
	})
	requireStatus(t, w, 401)

	w = doRequest(r, "POST", "/api/auth/login", "", payload{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	requireStatus(t, w, 401)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	db := setupDB(t)
	r := setupRouter(db)

	w := doRequest(r, "GET", "/api/users/profile", "", nil)
	requireStatus(t, w, 401)

	w = doRequest(r, "GET", "/api/users/profile", "not-a-token", nil)
	requireStatus(t, w, 401)
}

func TestUpdateProfile(t *testing.T) {
	db := setupDB(t)
	r := setupRouter(db)

	rider := createUser(t, db, "alex", models.UserTypeRider)

	w := doRequest(r, "PUT", "/api/users/profile", authToken(t, rider), payload{
		"phoneNumber": "555-0100",
	})
	requireStatus(t, w, 200)

	var user models.User
	require.NoError(t, db.First(&user, rider.ID).Error)
	assert.Equal(t, "555-0100", user.PhoneNumber)
	assert.Equal(t, "alex", user.Username)
}
