package assetstore

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

func testConfig(baseURL string) *config.AssetStoreConfig {
	return &config.AssetStoreConfig{
		BaseURL:   baseURL,
		CloudName: "demo",
		APIKey:    "key",
		APISecret: "secret",
		Folder:    "catalog",
		Timeout:   5 * time.Second,
	}
}

func TestUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demo/image/upload", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "catalog", r.FormValue("folder"))
		assert.Contains(t, r.FormValue("public_id"), "catalog/")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "logo.png", header.Filename)

		json.NewEncoder(w).Encode(map[string]string{
			"secure_url": "https://res.cloudinary.com/demo/image/upload/catalog/abc",
			"public_id":  "catalog/abc",
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	result, err := client.Upload("logo.png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "catalog/abc", result.AssetID)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/catalog/abc", result.URL)
}

func TestUploadFailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"Invalid image file"}}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	result, err := client.Upload("logo.png", []byte("not-an-image"))
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestUploadIncompleteResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"secure_url": "https://x"})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.Upload("logo.png", []byte("png-bytes"))
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demo/image/destroy", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "catalog/abc", r.FormValue("public_id"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	assert.NoError(t, client.Delete("catalog/abc"))
}

func TestDeleteFailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	assert.Error(t, client.Delete("catalog/missing"))
}

func TestBuildURL(t *testing.T) {
	client := NewClient(testConfig("https://api.example.com/v1_1"))

	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/catalog/abc",
		client.BuildURL("catalog/abc", nil))

	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/w_300,h_200,c_fill/catalog/abc",
		client.BuildURL("catalog/abc", &TransformOptions{Width: 300, Height: 200}))

	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/w_300,c_fill/catalog/abc",
		client.BuildURL("catalog/abc", &TransformOptions{Width: 300}))

	// Package-level variant goes through the initialized default client
	Initialize(testConfig("https://api.example.com/v1_1"))
	assert.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/w_300,h_300,c_fill/catalog/abc",
		BuildURL("catalog/abc", &TransformOptions{Width: 300, Height: 300}))
}
