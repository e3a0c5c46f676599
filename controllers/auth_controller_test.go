package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SabinGhost19/RoomBooking/config"
	"github.com/SabinGhost19/RoomBooking/models"
)

func TestRegisterAndLogin(t *testing.T) {
	r := newTestServer(t)

	register := map[string]interface{}{
		"email":     "alice@example.com",
		"username":  "alice",
		"full_name": "Alice Doe",
		"password":  "secret123",
	}

	t.Run("register", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/auth/register", "", register)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		body := decodeBody(t, w)
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "alice@example.com", user["email"])
		assert.NotContains(t, user, "password", "the hash never leaves the server")
	})

	t.Run("duplicate email", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/auth/register", "", register)
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "conflict", decodeBody(t, w)["kind"])
	})

	t.Run("duplicate username", func(t *testing.T) {
		dup := map[string]interface{}{
			"email": "alice2@example.com", "username": "alice",
			"full_name": "Other Alice", "password": "secret123",
		}
		w := doRequest(t, r, http.MethodPost, "/api/auth/register", "", dup)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid payload", func(t *testing.T) {
		bad := map[string]interface{}{
			"email": "not-an-email", "username": "x",
			"full_name": "X", "password": "123",
		}
		w := doRequest(t, r, http.MethodPost, "/api/auth/register", "", bad)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "validation_error", decodeBody(t, w)["kind"])
	})

	t.Run("login and use the token", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
			"email": "alice@example.com", "password": "secret123",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := decodeBody(t, w)
		assert.Equal(t, "bearer", body["token_type"])
		token := body["access_token"].(string)
		require.NotEmpty(t, token)

		me := doRequest(t, r, http.MethodGet, "/api/users/me", "Bearer "+token, nil)
		require.Equal(t, http.StatusOK, me.Code)
		user := decodeBody(t, me)["user"].(map[string]interface{})
		assert.Equal(t, "alice", user["username"])
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
			"email": "alice@example.com", "password": "wrong-secret",
		})
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "unauthorized", decodeBody(t, w)["kind"])
	})

	t.Run("unknown email", func(t *testing.T) {
		w := doRequest(t, r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
			"email": "nobody@example.com", "password": "whatever1",
		})
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestDeactivatedAccount(t *testing.T) {
	r := newTestServer(t)
	u := seedUser(t, "ghost", false)
	token := bearer(t, u)

	require.NoError(t, config.DB.Model(&models.User{}).
		Where("id = ?", u.ID).Update("is_active", false).Error)

	w := doRequest(t, r, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "account is deactivated", decodeBody(t, w)["message"])
}

func TestAuthRequired(t *testing.T) {
	r := newTestServer(t)

	for _, path := range []string{"/api/users/me", "/api/bookings/my", "/api/notifications"} {
		w := doRequest(t, r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := doRequest(t, r, http.MethodGet, "/api/users/me", "Bearer not.a.token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
