package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountCreateAndGet(t *testing.T) {
	api := newTestAPI(t)
	id, _ := api.createAccount("Alice", "alice@example.com")

	status, body := api.do(http.MethodGet, fmt.Sprintf("/account/%d", id), nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(id), body["id"])
	assert.Equal(t, "Alice", body["username"])
	assert.Equal(t, "alice@example.com", body["email"])
	assert.NotContains(t, body, "password")

	created, err := time.Parse(time.RFC3339, body["creation_time"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), created, time.Minute)
}

func TestAccountCreate_Conflict(t *testing.T) {
	api := newTestAPI(t)
	api.createAccount("Alice", "alice@example.com")

	status, body := api.do(http.MethodPost, "/account", map[string]string{
		"name": "Alice", "email": "other@example.com", "password": "Abcdefg1",
	}, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "account already exists", body["message"])
}

func TestAccountCreate_ValidationFailures(t *testing.T) {
	api := newTestAPI(t)

	status, body := api.do(http.MethodPost, "/account", map[string]string{
		"name": "Alice", "email": "alice@example.com", "password": "abcdefg1",
	}, nil)
	require.Equal(t, http.StatusBadRequest, status)
	violations, ok := body["message"].([]any)
	require.True(t, ok, "message: %v", body["message"])
	require.Len(t, violations, 1)
	assert.Equal(t, map[string]any{
		"field":   "password",
		"message": "the password must contain at least one uppercase letter",
	}, violations[0])

	status, body = api.do(http.MethodPost, "/account", map[string]string{"name": "Alice"}, nil)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Len(t, body["message"], 2)

	status, body = api.do(http.MethodPost, "/account", "{not json", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid JSON payload", body["message"])
}

func TestAccountGet_NotFound(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/account/7", "/account/0", "/account/-3", "/account/abc"} {
		status, body := api.do(http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusNotFound, status, path)
		assert.Equal(t, "account not found", body["message"], path)
	}
}

func TestAccountPatch(t *testing.T) {
	api := newTestAPI(t)
	id, _ := api.createAccount("Alice", "alice@example.com")
	api.createAccount("Bob", "bob@example.com")
	path := fmt.Sprintf("/account/%d", id)

	t.Run("empty payload changes nothing", func(t *testing.T) {
		status, body := api.do(http.MethodPatch, path, map[string]any{}, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Alice", body["username"])
		_, isNumber := body["creation_time"].(float64)
		assert.True(t, isNumber, "creation_time should be epoch seconds")
	})

	t.Run("taken name", func(t *testing.T) {
		status, body := api.do(http.MethodPatch, path, map[string]string{"name": "Bob"}, nil)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "name is taken", body["message"])
	})

	t.Run("rename", func(t *testing.T) {
		status, body := api.do(http.MethodPatch, path, map[string]string{"name": "Alicia"}, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Alicia", body["username"])

		_, got := api.do(http.MethodGet, path, nil, nil)
		assert.Equal(t, "Alicia", got["username"])
		assert.Equal(t, "alice@example.com", got["email"])
	})

	t.Run("invalid field", func(t *testing.T) {
		status, _ := api.do(http.MethodPatch, path, map[string]string{"email": "nope"}, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("missing account", func(t *testing.T) {
		status, body := api.do(http.MethodPatch, "/account/99", map[string]string{"name": "Carol"}, nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "account not found", body["message"])
	})
}

func TestAccountPatch_PasswordRotatesCredentials(t *testing.T) {
	api := newTestAPI(t)
	id, old := api.createAccount("Alice", "alice@example.com")

	status, _ := api.do(http.MethodPatch, fmt.Sprintf("/account/%d", id), map[string]string{"password": "Newpass99"}, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = api.do(http.MethodPost, "/listing", map[string]string{"title": "bike", "description": "red"}, old)
	assert.Equal(t, http.StatusUnauthorized, status)

	api.createListing(&creds{email: old.email, password: "Newpass99"}, "bike", "red")
}

func TestAccountDelete_CascadesListings(t *testing.T) {
	api := newTestAPI(t)
	id, alice := api.createAccount("Alice", "alice@example.com")
	listingID := api.createListing(alice, "bike", "red")
	path := fmt.Sprintf("/account/%d", id)

	status, body := api.do(http.MethodDelete, path, nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "success", body["status"])

	status, _ = api.do(http.MethodGet, path, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = api.do(http.MethodGet, fmt.Sprintf("/listing/%d", listingID), nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "advertisement not found", body["message"])

	status, _ = api.do(http.MethodDelete, path, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
