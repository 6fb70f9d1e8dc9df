package identity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	return NewClient(&config.IdentityConfig{
		BaseURL: baseURL,
		APIKey:  "anon-key",
		Timeout: 5 * time.Second,
	})
}

func TestSignUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/signup", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "ana@example.com", payload["email"])

		json.NewEncoder(w).Encode(map[string]string{
			"id":    "9f6f6a7e-0000-0000-0000-000000000001",
			"email": "ana@example.com",
		})
	}))
	defer server.Close()

	user, err := testClient(server.URL).SignUp("ana@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, "9f6f6a7e-0000-0000-0000-000000000001", user.ID)
	assert.Equal(t, "ana@example.com", user.Email)
}

func TestSignUpProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"msg": "User already registered"})
	}))
	defer server.Close()

	_, err := testClient(server.URL).SignUp("ana@example.com", "secret-pass")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "User already registered")
}

func TestSignIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "jwt-token",
			"expires_in":   3600,
		})
	}))
	defer server.Close()

	session, err := testClient(server.URL).SignIn("ana@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", session.AccessToken)
	assert.Equal(t, 3600, session.ExpiresIn)
}

func TestSignInBadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error":             "invalid_grant",
			"error_description": "Invalid login credentials",
		})
	}))
	defer server.Close()

	_, err := testClient(server.URL).SignIn("ana@example.com", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid login credentials")
}

func TestSignOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/logout", r.URL.Path)
		assert.Equal(t, "global", r.URL.Query().Get("scope"))
		assert.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	assert.NoError(t, testClient(server.URL).SignOut("jwt-token"))
}

func TestCurrentUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user", r.URL.Path)
		assert.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]string{
			"id":    "9f6f6a7e-0000-0000-0000-000000000001",
			"email": "ana@example.com",
		})
	}))
	defer server.Close()

	user, err := testClient(server.URL).CurrentUser("jwt-token")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
}
